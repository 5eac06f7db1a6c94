package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"storeseed/internal/backend/common"
)

// Adapter seeds a local SQLite file, useful for development runs without a
// remote backend. Requires a SQLite new enough for RETURNING (3.35+).
type Adapter struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

func Open(path string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Adapter{
		db: db,
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
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

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var confirmed []map[string]any
	for i := 0; rows.Next() && i < len(records); i++ {
		var id int64
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
	if _, err := a.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", collection)); err != nil {
		return err
	}
	// Reset the autoincrement counter; the table may not be in
	// sqlite_sequence, so the error is ignored.
	a.db.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = ?", collection)
	return nil
}

func (a *Adapter) Close() error {
	return a.db.Close()
}
