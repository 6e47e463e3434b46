package main

import (
	"log"
	"os"

	"github.com/mustyhq/musty/core"
	logsvc "github.com/mustyhq/musty/services/logger"
	"github.com/mustyhq/musty/storage/database"
	snapshotdb "github.com/mustyhq/musty/storage/snapshot"
)

func main() {
	defer os.Exit(0)

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	errAndDie(database.CreateIfNotExist(conf), logger)
	db, err := database.Open(conf)
	errAndDie(err, logger)
	defer db.Close()
	errAndDie(database.Ping(db), logger)

	// set up the snapshot store
	backend, err := snapshotdb.NewFileBackend(conf.Snapshot.Dir)
	errAndDie(err, logger)
	store := snapshotdb.Open(backend, logger)

	// start CLI
	cli := commandLine{
		db:    db,
		store: store,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error, logger core.Logger) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
