package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	"studycoach/core"
	appfs "studycoach/fs"
	"studycoach/storage/database"
)

var (
	errHelp = errors.New("help provided")

	// mockable
	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		goose.SetBaseFS(appfs.FS)
		if err := goose.SetDialect("postgres"); err != nil {
			return err
		}
		return goose.Run(command, db, dir, args...)
	}
	createDBFunc = database.CreateIfNotExist
)

type commandLine struct {
	conf *core.Config
	db   *sql.DB
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  createdb - create the app database and user if they do not exist")
	fmt.Println("  migrate COMMAND [ARGS] - run a goose migration command (up, down, status, ...)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "createdb":
		return createDBFunc(cli.conf)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) migrate(args []string) error {
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], cli.db, "migrations", arguments...)
}
