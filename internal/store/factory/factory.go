package factory

import (
	"context"
	"fmt"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/store"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/store/es"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/store/inmem"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/store/mongo"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/store/pg"
)

// NewStore creates a store.Store from an environment-derived config.
func NewStore(ctx context.Context, cfg *StoreConfig) (store.Store, error) {
	switch cfg.Type {
	case store.Mongo:
		if cfg.Mongo == nil {
			return nil, fmt.Errorf("missing MongoDB configuration")
		}
		return mongo.NewStore(ctx, *cfg.Mongo)

	case store.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}
		return es.NewStore(ctx, *cfg.Es)

	case store.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		return pg.NewStore(ctx, pool)

	case store.InMem:
		return inmem.NewStore(), nil

	default:
		return nil, fmt.Errorf(string(store.ErrUnsupportedStore), cfg.Type)
	}
}
