package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/JaimeStill/sysprompts/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "Path to config.toml")
		dsn        = fs.String("dsn", "", "Database connection string (overrides config)")
		up         = fs.Bool("up", false, "Run all up migrations")
		down       = fs.Bool("down", false, "Run all down migrations")
		steps      = fs.Int("steps", 0, "Number of migrations (positive=up, negative=down)")
		version    = fs.Bool("version", false, "Print current migration version")
		force      = fs.Int("force", -1, "Force set version (use with caution)")
	)
	fs.SetOutput(stdout)
	if err := fs.Parse(args); err != nil {
		return err
	}

	forceSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "force" {
			forceSet = true
		}
	})

	if !*up && !*down && *steps == 0 && !*version && !forceSet {
		fmt.Fprintln(stdout, "usage: migrate [-config path] [-dsn url] [-up|-down|-steps N|-version|-force N]")
		fs.PrintDefaults()
		return nil
	}

	url, err := resolveURL(*configPath, *dsn)
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	switch {
	case *version:
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("get version: %w", err)
		}
		fmt.Fprintf(stdout, "version: %d, dirty: %v\n", v, dirty)
	case forceSet:
		if err := m.Force(*force); err != nil {
			return fmt.Errorf("force version: %w", err)
		}
		fmt.Fprintf(stdout, "forced to version %d\n", *force)
	case *up:
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("run up migrations: %w", err)
		}
		fmt.Fprintln(stdout, "migrations applied successfully")
	case *down:
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("run down migrations: %w", err)
		}
		fmt.Fprintln(stdout, "migrations reverted successfully")
	default:
		if err := m.Steps(*steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("run migrations: %w", err)
		}
		fmt.Fprintf(stdout, "applied %d migration steps\n", *steps)
	}

	return nil
}

// resolveURL returns the explicit DSN or builds one from the database
// section of the service configuration.
func resolveURL(configPath, dsn string) (string, error) {
	if dsn != "" {
		return dsn, nil
	}

	cfg, err := config.Load(configPath, nil)
	if err != nil {
		return "", err
	}
	if !cfg.UsesDatabase() {
		if err := cfg.Database.Finalize(config.DatabaseEnv); err != nil {
			return "", fmt.Errorf("database: %w", err)
		}
	}
	return cfg.Database.URL(), nil
}
