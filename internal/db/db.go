package db

import (
	"context"
	"fmt"

	"github.com/senyabanana/solosphere/internal/router/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InitDb инициализирует подключение к базе данных и возвращает пул соединений.
func InitDb(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	dbUser := cfg.PostgresUser
	dbPassword := cfg.PostgresPass
	dbHost := cfg.PostgresHost
	dbPort := cfg.PostgresPort
	dbName := cfg.PostgresDB

	databaseUrl := cfg.PostgresConn
	if databaseUrl == "" {
		if dbUser == "" || dbPassword == "" || dbHost == "" || dbPort == "" || dbName == "" {
			return nil, fmt.Errorf("one or more database connection environment variables are missing")
		}
		databaseUrl = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPassword, dbHost, dbPort, dbName)
	}

	dbPool, err := pgxpool.New(ctx, databaseUrl)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err = dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return dbPool, nil
}

// ConnString возвращает строку подключения для миграций.
func ConnString(cfg config.Config) string {
	if cfg.PostgresConn != "" {
		return cfg.PostgresConn
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.PostgresUser, cfg.PostgresPass, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
}
