package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/HarmoniApp/backend-sub000/internal/config"
	"github.com/HarmoniApp/backend-sub000/internal/repository"
	"github.com/HarmoniApp/backend-sub000/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation to perform (1: insert roles, 2: insert predefined shifts, 3: insert random employees, 4: insert random absences)")
	flag.IntVar(&n, "n", 0, "number of records to insert (defaults to the configured seed count)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if n <= 0 {
		n = cfg.Seed.EmployeeCount
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database connection pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open only builds the pool object, it does not connect, so ping explicitly
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to connect to the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 1:
		err = seed.InsertRoles(repo)
	case 2:
		err = seed.InsertPredefinedShifts(repo)
	case 3:
		err = seed.InsertEmployees(repo, n)
	case 4:
		err = seed.InsertAbsences(repo, n)
	default:
		logger.Error("no operation specified")
		return
	}

	if err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seeding finished", "op", op)
}
