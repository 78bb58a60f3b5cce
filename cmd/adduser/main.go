package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"school-admin-db/internal/config"
	"school-admin-db/internal/db"
	"school-admin-db/internal/logger"
	"school-admin-db/internal/model"

	"golang.org/x/crypto/bcrypt"
)

// adduser creates an API account from the command line:
//
//	adduser -username admin -password secret -role admin
func main() {
	username := flag.String("username", "", "login name")
	password := flag.String("password", "", "plaintext password, hashed before storage")
	role := flag.String("role", string(model.RoleStaff), "admin, guard or staff")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "username and password are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Get()

	database, err := db.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	ctx := context.Background()
	if err := db.Bootstrap(ctx, database); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap schema")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	repo := db.NewRepository(database)
	id, err := repo.InsertUser(ctx, model.User{
		Username:     *username,
		PasswordHash: string(hash),
		Role:         model.Role(*role),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create user")
	}

	log.Info().Int64("id", id).Str("username", *username).Str("role", *role).Msg("User created")
}
