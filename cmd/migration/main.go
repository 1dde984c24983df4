package main

import (
	"agency/cmd/migration/initialize"
	"agency/cmd/migration/seed"
	"agency/config"
	"agency/internal/database"
	"agency/internal/logger"
	"flag"
	"fmt"
	"os"
)

const usage = `usage: migration [flags] <command>

commands:
  up        apply pending migrations and initialize essential data (default)
  down      roll back migrations, -steps at a time
  seed      apply migrations and load development data
`

func main() {
	steps := flag.Int("steps", 1, "number of migrations to roll back with down")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	if err := run(command, *steps); err != nil {
		logger.New("migration").Function("main").Er("migration failed", err, "command", command)
		os.Exit(1)
	}
}

func run(command string, steps int) error {
	log := logger.New("migration")

	config, err := config.InitConfig()
	if err != nil {
		return log.Err("failed to load config", err)
	}
	logger.Init(config.GeneralLogFormat, config.GeneralLogLevel)

	db, err := database.New(config)
	if err != nil {
		return log.Err("failed to connect to database", err)
	}
	defer db.Close()

	switch command {
	case "up":
		if _, err := db.Migrate(); err != nil {
			return err
		}
		return initialize.InitializeTables(db.SQL, config, log)
	case "down":
		_, err := db.Rollback(steps)
		return err
	case "seed":
		if _, err := db.Migrate(); err != nil {
			return err
		}
		if err := initialize.InitializeTables(db.SQL, config, log); err != nil {
			return err
		}
		return seed.Seed(db.SQL, config, log)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}
