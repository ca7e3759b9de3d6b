package main

import (
	"context"
	"fmt"

	"github.com/cqroot/prompt"
	"github.com/cqroot/prompt/input"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/i474232898/astro-dashboard/internal/store"
	"github.com/i474232898/astro-dashboard/internal/user"
)

func databaseFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "database",
		Aliases: []string{"d"},
		Usage:   "Path to the SQLite database file",
		EnvVars: []string{"DATABASE_PATH"},
		Value:   "astrodash.db",
	}
}

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply database migrations and exit",
		Flags: []cli.Flag{
			databaseFlag(),
		},
		Action: func(ctx *cli.Context) error {
			path := ctx.String("database")
			if err := store.Migrate(path); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			log.WithFields(log.Fields{"database": path}).Info("migrations applied")
			return nil
		},
	}
}

func createUserCmd() *cli.Command {
	return &cli.Command{
		Name:  "create-user",
		Usage: "Interactively create an account",
		Description: "Prompts for a username and password and creates the account with every\n" +
			"dashboard sector enabled, exactly as the signup endpoint would.",
		Flags: []cli.Flag{
			databaseFlag(),
		},
		Action: func(ctx *cli.Context) error {
			path := ctx.String("database")
			if err := store.Migrate(path); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			db, err := store.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			username, err := prompt.New().Ask("Username:").Input("stargazer")
			if err != nil {
				return err
			}
			password, err := prompt.New().Ask("Password:").Input("", input.WithEchoMode(input.EchoNone))
			if err != nil {
				return err
			}

			u, err := user.NewService(db).Signup(context.Background(), username, password)
			if err != nil {
				return err
			}

			fmt.Printf("Created user %s (%s)\n", u.Username, u.ID)
			return nil
		},
	}
}
