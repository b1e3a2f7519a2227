package main

import (
	"context"
	"flag"
	"os"

	"uhs-recruit/internal/repository"
	"uhs-recruit/internal/service"
	"uhs-recruit/pkg/config"
	"uhs-recruit/pkg/database"
	"uhs-recruit/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	email := flag.String("email", "", "admin user email")
	password := flag.String("password", "", "new password")
	flag.Parse()

	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	if envErr != nil {
		log.Warn().Msg(".env file not found, relying on system env")
	}

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	db, err := database.ConnectDB(cfg.DB, cfg.App.Env)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	auth := service.NewAuthService(
		repository.NewAdminUserRepo(db),
		repository.NewUserRepo(db),
		repository.NewSessionRepo(db),
		cfg.Session.TTL,
	)
	if err := auth.ResetAdminPassword(context.Background(), *email, *password); err != nil {
		log.Fatal().Err(err).Str("email", *email).Msg("password reset failed")
	}

	log.Info().Str("email", *email).Msg("password reset; existing sessions revoked")
}
