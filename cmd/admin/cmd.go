package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	appMigrations "github.com/yigit/uniadmin/internal/app/migrations"
	"github.com/yigit/uniadmin/internal/bootstrap"
	"github.com/yigit/uniadmin/internal/seed"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	storage *bootstrap.Storage
	logger  zerolog.Logger
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate [-status]  - apply pending migrations, or list the applied ones")
	fmt.Fprintln(cli.out, "  seed               - load the sample university into an empty store")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	migrateCmd := flag.NewFlagSet("migrate", flag.ContinueOnError)
	migrateCmd.SetOutput(cli.out)
	migrateStatus := migrateCmd.Bool("status", false, "List applied migration versions instead of migrating.")

	switch args[1] {
	case "migrate":
		if err := migrateCmd.Parse(args[2:]); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return errHelp
			}
			return err
		}
		if *migrateStatus {
			return cli.migrationStatus(ctx)
		}
		applied, err := cli.storage.Migrate(ctx, cli.logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "%d migration(s) applied\n", applied)
		return nil
	case "seed":
		if err := seed.CreateDefaultData(ctx, cli.storage.Store, cli.logger); err != nil {
			return fmt.Errorf("seeding finished with errors: %w", err)
		}
		fmt.Fprintln(cli.out, "seed complete")
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) migrationStatus(ctx context.Context) error {
	if cli.storage.Postgres == nil {
		fmt.Fprintln(cli.out, "memory store: no migrations")
		return nil
	}
	migrator := appMigrations.NewMigrator(cli.storage.Postgres.Pool, appMigrations.Files(), cli.logger)
	versions, err := migrator.AppliedVersions(ctx)
	if err != nil {
		return err
	}
	for _, v := range versions {
		fmt.Fprintln(cli.out, v)
	}
	return nil
}
