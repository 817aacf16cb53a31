package main

import (
	"context"
	"os"
	"strings"

	"github.com/ssafuel/station-gateway/internal/config"
	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/internal/repository"
	"github.com/ssafuel/station-gateway/internal/services"
	"github.com/ssafuel/station-gateway/pkg/logger"
	"github.com/ssafuel/station-gateway/pkg/pg"
)

// Usage:
//
//	cli migrate --env=.env --dir=./migrations
//	cli seed --env=.env --name=root --email=root@example.com --password=secret
func main() {
	envPath := argValue("--env=", ".env")
	if _, err := os.Open(envPath); err != nil {
		envPath = ""
	}
	err := config.Load(envPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
	}

	pgConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	switch command() {
	case "seed":
		runSeed(pgConf)
	default:
		runMigrations(pgConf)
	}
}

func runMigrations(pgConf pg.Config) {
	dir := argValue("--dir=", "./migrations")
	if _, err := os.Open(dir); err != nil {
		logger.Error("failed to open the migrations dir", "error", err)
		return
	}
	if err := pg.Migrate(pgConf, dir); err != nil {
		logger.Error("migration: error running migrations", "error", err)
	}
}

// runSeed bootstraps the first superadmin so the portal has a login to start
// from. Safe to re-run: a duplicate email fails on the unique index.
func runSeed(pgConf pg.Config) {
	name := argValue("--name=", "superadmin")
	email := argValue("--email=", "")
	password := argValue("--password=", "")
	if email == "" || password == "" {
		logger.Error("seed: --email= and --password= are required")
		return
	}

	db, err := pg.CreateReadWrite(pgConf, pgConf, false)
	if err != nil {
		logger.Error("seed: failed connecting to pg", "error", err)
		return
	}

	hash, err := services.HashPassword(password)
	if err != nil {
		logger.Error("seed: failed to hash password", "error", err)
		return
	}

	accounts := repository.NewAccountRepository(db)
	sa, err := accounts.CreateSuperAdmin(context.Background(), &model.SuperAdmin{
		Name:     name,
		Email:    email,
		Password: hash,
		Status:   model.AccountStatusActive,
	})
	if err != nil {
		logger.Error("seed: failed to create superadmin", "error", err)
		return
	}
	logger.Info("seed: superadmin created", "id", sa.ID, "email", sa.Email)
}

func command() string {
	for _, v := range os.Args[1:] {
		if !strings.HasPrefix(v, "--") {
			return v
		}
	}
	return "migrate"
}

func argValue(prefix, fallback string) string {
	for _, v := range os.Args {
		if strings.HasPrefix(v, prefix) {
			return strings.TrimPrefix(v, prefix)
		}
	}
	return fallback
}
