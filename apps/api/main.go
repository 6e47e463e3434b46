package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/mustyhq/musty/apps/api/echo"
	"github.com/mustyhq/musty/core"
	"github.com/mustyhq/musty/core/academic"
	"github.com/mustyhq/musty/core/assist"
	"github.com/mustyhq/musty/core/resource"
	"github.com/mustyhq/musty/core/study"
	dummyassist "github.com/mustyhq/musty/services/assistant/dummy"
	geminiassist "github.com/mustyhq/musty/services/assistant/gemini"
	logsvc "github.com/mustyhq/musty/services/logger"
	"github.com/mustyhq/musty/storage/database"
	snapshotdb "github.com/mustyhq/musty/storage/snapshot"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up the local snapshot store; a broken data dir degrades to an
	// in-memory store instead of taking the app down.
	backend, err := snapshotdb.NewFileBackend(conf.Snapshot.Dir)
	if err != nil {
		logger.Error(fmt.Sprintf("snapshot dir unavailable, falling back to memory: %v", err), err)
		backend = snapshotdb.NewMemoryBackend()
	}
	store := snapshotdb.Open(backend, logger)

	stopWatch, err := snapshotdb.Watch(store, logger)
	if err != nil {
		logger.Error(fmt.Sprintf("snapshot watcher disabled: %v", err), err)
	} else {
		defer stopWatch()
	}

	// set up DB (resource library)
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error("failed to close database", err)
		}
	}()

	// set up services
	studySvc := study.NewService(store)
	academicSvc := academic.NewService(snapshotdb.NewAcademicRepository(backend))
	resourceSvc := resource.NewService(database.NewResourceRepository(db))

	var assistClient assist.Client
	if conf.Assistant.Backend == "gemini" {
		assistClient, err = geminiassist.NewService(context.Background(), conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up assistant: %v", err), err)
		}
	} else {
		assistClient = dummyassist.NewService()
	}
	assistSvc := assist.NewService(assistClient)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	study.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err = http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:        conf,
			Logger:      logger,
			StudySvc:    studySvc,
			AcademicSvc: academicSvc,
			ResourceSvc: resourceSvc,
			AssistSvc:   assistSvc,
			Validate:    validate,
			Translator:  translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
