package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"todobackend/db"
)

type Options struct {
	DatabaseURL string `long:"database-url" env:"DB_URL" required:"true" description:"Postgres connection URL"`
	Schema      string `long:"schema" env:"DB_SCHEMA" default:"public" description:"Schema holding the tables"`
	Down        bool   `long:"down" description:"Roll migrations back instead of applying them"`
	Steps       int    `long:"steps" default:"0" description:"Number of migrations to apply or roll back (0 means all)"`
	Version     bool   `long:"version" description:"Print the current migration version and exit"`
}

// migrator is the subset of *migrate.Migrate this tool drives
type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Version() (uint, bool, error)
}

func main() {
	_ = godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		log.Printf("❌ Migration failed: %v", err)
		os.Exit(1)
	}
}

func run(opts Options) error {
	if !opts.Down && !opts.Version && opts.Steps == 0 {
		// full upgrade also creates the schema
		conn, err := db.NewConnection(opts.DatabaseURL)
		if err != nil {
			return err
		}
		defer conn.Close()
		return db.RunMigrations(conn, opts.DatabaseURL, opts.Schema)
	}

	m, err := db.NewMigrator(opts.DatabaseURL, opts.Schema)
	if err != nil {
		return err
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Printf("⚠️ Failed to close migrator: source=%v database=%v", srcErr, dbErr)
		}
	}()

	return apply(m, opts)
}

func apply(m migrator, opts Options) error {
	if opts.Steps < 0 {
		return fmt.Errorf("--steps must not be negative")
	}

	var err error
	switch {
	case opts.Version:
		err = nil
	case opts.Down && opts.Steps > 0:
		log.Printf("⬇️ Rolling back %d migration(s)", opts.Steps)
		err = m.Steps(-opts.Steps)
	case opts.Down:
		log.Printf("⬇️ Rolling back all migrations")
		err = m.Down()
	case opts.Steps > 0:
		log.Printf("⬆️ Applying %d migration(s)", opts.Steps)
		err = m.Steps(opts.Steps)
	default:
		log.Printf("⬆️ Applying all pending migrations")
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Printf("✅ No migrations applied")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	log.Printf("✅ Migration version %d (dirty: %t)", version, dirty)
	return nil
}
