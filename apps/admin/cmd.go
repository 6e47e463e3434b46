package main

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	snapshotdb "github.com/mustyhq/musty/storage/snapshot"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db    *sqlx.DB
	store *snapshotdb.Store
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run database migrations (up, down, status, ...)")
	fmt.Println("  seed                   - load sample resources into the database")
	fmt.Println("  inspect                - summarize the local snapshot store")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seed":
		return cli.seed()
	case "inspect":
		return cli.inspect()
	default:
		cli.printUsage()
		return errHelp
	}
}
