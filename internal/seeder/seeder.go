package seeder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"storeseed/internal/backend"
	"storeseed/internal/gen"
	"storeseed/internal/models"
)

const (
	usersCollection    = "users"
	productsCollection = "products"
	ordersCollection   = "orders"
)

// ErrEmptyIDPool signals that an insert stage confirmed no rows, leaving
// later stages without ids to reference.
var ErrEmptyIDPool = errors.New("no confirmed ids")

type Seeder struct {
	backend   backend.Backend
	generator *gen.Generator
}

func New(b backend.Backend, g *gen.Generator) *Seeder {
	return &Seeder{backend: b, generator: g}
}

// Run executes the pipeline: users, then products, then orders wired to
// the ids the first two stages got back. An empty id pool after either of
// the first two stages aborts the run; zero generated orders only skips
// the last stage. The report covers every stage that ran, including the
// one that caused an abort.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Report, error) {
	report := &Report{}

	if opts.Truncate {
		if err := s.truncate(ctx); err != nil {
			return report, err
		}
	}

	users := s.generator.Users(opts.Users)
	stage, userIDs := s.runStage(ctx, usersCollection, userRecords(users), opts.Batch)
	report.Stages = append(report.Stages, stage)
	if len(userIDs) == 0 {
		return report, fmt.Errorf("%w for %s, aborting", ErrEmptyIDPool, usersCollection)
	}

	products := s.generator.Products(opts.Products)
	stage, productIDs := s.runStage(ctx, productsCollection, productRecords(products), opts.Batch)
	report.Stages = append(report.Stages, stage)
	if len(productIDs) == 0 {
		return report, fmt.Errorf("%w for %s, aborting", ErrEmptyIDPool, productsCollection)
	}

	color.Cyan("\n🌱 Generating %d orders using %d users and %d products...", opts.Orders, len(userIDs), len(productIDs))
	orders := s.generator.Orders(opts.Orders, userIDs, productIDs)
	if len(orders) == 0 {
		color.Yellow("⚠️  No orders generated, skipping order insertion")
		return report, nil
	}

	stage, _ = s.runStage(ctx, ordersCollection, orderRecords(orders), opts.Batch)
	report.Stages = append(report.Stages, stage)
	return report, nil
}

// InsertBatches splits records into contiguous chunks of at most batchSize
// and submits each chunk as one backend call, strictly in order. A failed
// chunk is logged and skipped; the remaining chunks are still submitted.
// Returns the rows the backend confirmed plus a per-batch result list.
func (s *Seeder) InsertBatches(ctx context.Context, collection string, records []backend.Record, batchSize int) ([]backend.Record, []BatchResult) {
	if batchSize <= 0 {
		batchSize = 100
	}

	color.Cyan("\n📝 Inserting %d records into %q in batches of %d...", len(records), collection, batchSize)

	var confirmed []backend.Record
	var results []BatchResult

	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		chunk := records[start:end]

		result := BatchResult{Index: start/batchSize + 1, Submitted: len(chunk)}
		rows, err := s.backend.Insert(ctx, collection, chunk)
		switch {
		case err != nil:
			result.Err = err
			color.Red("  ❌ Batch %d: failed: %v", result.Index, err)
		case len(rows) > 0:
			confirmed = append(confirmed, rows...)
			result.Confirmed = len(rows)
			color.Green("  ✅ Batch %d: inserted %d records", result.Index, len(rows))
		}
		// Success without echoed rows confirms nothing, which is fine.
		results = append(results, result)
	}

	color.Green("Finished %q: %d of %d records confirmed", collection, len(confirmed), len(records))
	return confirmed, results
}

func (s *Seeder) runStage(ctx context.Context, collection string, records []backend.Record, batch int) (StageReport, []int64) {
	confirmed, results := s.InsertBatches(ctx, collection, records, batch)
	return StageReport{
		Collection: collection,
		Generated:  len(records),
		Submitted:  len(records),
		Confirmed:  len(confirmed),
		Batches:    results,
	}, extractIDs(confirmed)
}

// truncate clears collections in reverse dependency order so foreign key
// constraints hold.
func (s *Seeder) truncate(ctx context.Context) error {
	color.Yellow("🗑️  Truncating collections...")
	for _, collection := range []string{ordersCollection, productsCollection, usersCollection} {
		if err := s.backend.Truncate(ctx, collection); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", collection, err)
		}
	}
	return nil
}

// extractIDs pulls the id column out of confirmed rows. Backends echo ids
// in whatever shape their transport uses: pgx hands back int64/int32,
// JSON decoding yields float64 or json.Number.
func extractIDs(rows []backend.Record) []int64 {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		switch id := row["id"].(type) {
		case int64:
			ids = append(ids, id)
		case int32:
			ids = append(ids, int64(id))
		case int:
			ids = append(ids, int64(id))
		case float64:
			ids = append(ids, int64(id))
		case json.Number:
			if n, err := id.Int64(); err == nil {
				ids = append(ids, n)
			}
		}
	}
	return ids
}

func userRecords(users []models.User) []backend.Record {
	records := make([]backend.Record, len(users))
	for i, u := range users {
		records[i] = u.Fields()
	}
	return records
}

func productRecords(products []models.Product) []backend.Record {
	records := make([]backend.Record, len(products))
	for i, p := range products {
		records[i] = p.Fields()
	}
	return records
}

func orderRecords(orders []models.Order) []backend.Record {
	records := make([]backend.Record, len(orders))
	for i, o := range orders {
		records[i] = o.Fields()
	}
	return records
}
