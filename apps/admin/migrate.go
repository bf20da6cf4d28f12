package main

import (
	"github.com/jmoiron/sqlx"

	"github.com/Yazi0/SmartTuitionManager/storage/database"
)

var migrateRunFunc = func(command string, db *sqlx.DB, args ...string) error { // mockable
	return database.RunMigrationCommand(command, db, args...)
}

func (cli *commandLine) migrate(args []string) error {
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return migrateRunFunc(args[0], cli.db, arguments...)
}
