package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS case_studies (
			id          BIGINT PRIMARY KEY,
			title       TEXT NOT NULL,
			client      TEXT NOT NULL,
			date        TEXT NOT NULL,
			duration    TEXT NOT NULL,
			industry    TEXT NOT NULL,
			category    TEXT NOT NULL,
			image       TEXT NOT NULL,
			side_images JSONB NOT NULL DEFAULT '[]',
			content     JSONB NOT NULL DEFAULT '[]'
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure case_studies table: %w", err)
	}
	return nil
}
