package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storeseed/internal/backend/common"
)

// Adapter inserts directly over a pgx connection pool. Assigned ids come
// back through RETURNING.
type Adapter struct {
	pool *pgxpool.Pool
	qb   squirrel.StatementBuilderType
}

func Connect(ctx context.Context, url string) (*Adapter, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection URL: %w", err)
	}

	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	config.MaxConns = 2
	config.MinConns = 0
	config.MaxConnLifetime = 15 * time.Minute
	config.MaxConnIdleTime = 3 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Adapter{
		pool: pool,
		qb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

func (a *Adapter) Insert(ctx context.Context, collection string, records []map[string]any) ([]map[string]any, error) {
	if len(records) == 0 {
		return nil, nil
	}
	if !common.ValidIdentifier(collection) {
		return nil, fmt.Errorf("invalid collection name: %s", collection)
	}

	columns := common.Columns(records[0])
	for _, col := range columns {
		if !common.ValidIdentifier(col) {
			return nil, fmt.Errorf("invalid column name: %s", col)
		}
	}

	builder := a.qb.Insert(collection).Columns(columns...)
	for _, record := range records {
		values := make([]any, len(columns))
		for i, col := range columns {
			values[i] = record[col]
		}
		builder = builder.Values(values...)
	}

	query, args, err := builder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	rows, err := a.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// RETURNING yields rows in insertion order, so the nth id belongs to
	// the nth submitted record.
	var confirmed []map[string]any
	for i := 0; rows.Next() && i < len(records); i++ {
		var id any
		if err := rows.Scan(&id); err != nil {
			return confirmed, err
		}
		row := make(map[string]any, len(records[i])+1)
		for col, val := range records[i] {
			row[col] = val
		}
		row["id"] = id
		confirmed = append(confirmed, row)
	}
	return confirmed, rows.Err()
}

func (a *Adapter) Truncate(ctx context.Context, collection string) error {
	if !common.ValidIdentifier(collection) {
		return fmt.Errorf("invalid collection name: %s", collection)
	}
	_, err := a.pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", collection))
	return err
}

func (a *Adapter) Close() error {
	if a.pool != nil {
		a.pool.Close()
	}
	return nil
}
