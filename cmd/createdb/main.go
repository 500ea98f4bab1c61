package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/yukikurage/mars-colony-api/internal/credentials"
	"github.com/yukikurage/mars-colony-api/internal/database"
	"github.com/yukikurage/mars-colony-api/internal/logging"
	"github.com/yukikurage/mars-colony-api/internal/seed"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	flag.Usage = func() {
		os.Stderr.WriteString("Usage: createdb [<db file>]\n")
	}
	flag.Parse()

	path := "mars_explorer.db"
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	logger := logging.New(os.Stdout, os.Getenv("LOG_LEVEL"), "")

	storage := database.NewStorage(logger)
	if err := storage.Initialize(database.SQLiteLocation(path)); err != nil {
		logger.Error("failed to open database", slog.String("path", path), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	db, err := storage.OpenSession()
	if err != nil {
		logger.Error("failed to open session", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := database.Migrate(db, logger); err != nil {
		logger.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	result, err := seed.Run(db, credentials.NewBcryptHasher(bcrypt.DefaultCost), logger)
	if err != nil {
		logger.Error("failed to seed database", slog.String("error", err.Error()))
		storage.Close()
		os.Exit(1)
	}
	logger.Info("database ready", slog.String("path", path), slog.Bool("seeded", result.Created))
}
