package backend

import "context"

// Record is one row expressed as column name → value, both as submitted to
// the backend and as echoed back from it.
type Record = map[string]any

// Backend is a store that accepts batched inserts and echoes the rows it
// durably persisted, including the ids it assigned.
type Backend interface {
	// Insert writes records into collection as one remote call. The
	// returned slice holds the confirmed rows; a nil slice with a nil
	// error means the backend accepted the write without echoing rows.
	Insert(ctx context.Context, collection string, records []Record) ([]Record, error)

	// Truncate removes every row from collection.
	Truncate(ctx context.Context, collection string) error

	Close() error
}
