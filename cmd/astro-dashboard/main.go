package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "astro-dashboard",
		Usage: "Personalized NASA data dashboard service",
		Description: "Aggregates NASA feeds (APOD, Mars weather, near-earth objects, DONKI CME\n" +
			"events and the image library) into per-user dashboards gated by stored\n" +
			"sector preferences. Configuration is read from the environment or a .env\n" +
			"file; see internal/config for the supported keys.",
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
			createUserCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
