// Command migrate applies or reverts the embedded Postgres migrations.
//
//	migrate up      apply every pending migration
//	migrate down    revert the latest migration
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/salone-skillshub/skillshub/internal/infrastructure/db/postgres"
	"github.com/salone-skillshub/skillshub/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	dsn := flag.String("database-url", os.Getenv("DATABASE_URL"), "Postgres connection URL")
	level := flag.String("log-level", "info", "log level")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] up|down\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logger.Init(logger.Options{Level: *level, Pretty: true, Service: "skillshub-migrate"})

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *dsn == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}

	if err := postgres.Migrate(*dsn, flag.Arg(0), log.With().Str("component", "migrate").Logger()); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}
