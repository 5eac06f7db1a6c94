package backend

import (
	"context"
	"fmt"

	"storeseed/internal/backend/postgres"
	"storeseed/internal/backend/rest"
	"storeseed/internal/backend/sqlite"
	"storeseed/internal/config"
)

// Open builds and connects the backend the config selects. Connection and
// credential problems surface here, before any data is generated.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	url, err := cfg.ServiceURL()
	if err != nil {
		return nil, err
	}

	switch cfg.Backend.Provider {
	case "rest":
		key, err := cfg.ServiceKey()
		if err != nil {
			return nil, err
		}
		return rest.New(url, key), nil
	case "postgresql", "postgres":
		return postgres.Connect(ctx, url)
	case "sqlite", "sqlite3":
		return sqlite.Open(url)
	default:
		return nil, fmt.Errorf("unsupported backend provider: %s", cfg.Backend.Provider)
	}
}
