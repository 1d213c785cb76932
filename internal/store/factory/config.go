package factory

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/store"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/store/es"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/store/mongo"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/store/pg"
)

type StoreConfig struct {
	store.Type
	Mongo *mongo.Config
	Es    *es.ClientConfig
	Pg    *pg.Config
}

func LoadEnv() (*StoreConfig, error) {
	storeType := store.Type(os.Getenv("STORE_TYPE"))
	if storeType == "" {
		storeType = store.Mongo
	}
	if storeType != store.Mongo && storeType != store.ES && storeType != store.PG && storeType != store.InMem {
		slog.Error("Invalid STORE_TYPE environment variable value", "value", storeType)
		return nil, fmt.Errorf(
			"invalid STORE_TYPE environment variable value: %s, expected one of %v",
			storeType,
			[]store.Type{store.Mongo, store.ES, store.PG, store.InMem})
	}

	var mongoCfg *mongo.Config
	if storeType == store.Mongo {
		mongoCfg = &mongo.Config{
			URI:              os.Getenv("MONGO_URI"),
			Database:         envOr("MONGO_DATABASE", "digestpaper"),
			SourceCollection: envOr("MONGO_SOURCE_COLLECTION", "headlines_architecture"),
			DestCollection:   envOr("MONGO_DEST_COLLECTION", "articles_published"),
		}
		if mongoCfg.URI == "" {
			slog.Error("MongoDB configuration is incomplete", "uri", mongoCfg.URI)
			return nil, fmt.Errorf("MONGO_URI environment variable is not set")
		}
	}

	var esCfg *es.ClientConfig
	if storeType == store.ES {
		esCfg = &es.ClientConfig{
			Addresses:   strings.Split(os.Getenv("ES_ADDRESSES"), ","),
			SourceIndex: envOr("ES_SOURCE_INDEX", "source_articles"),
			DestIndex:   envOr("ES_DEST_INDEX", "published_articles"),
			Username:    os.Getenv("ES_USERNAME"),
			Password:    os.Getenv("ES_PASSWORD"),
		}
		if len(esCfg.Addresses) == 0 || esCfg.Addresses[0] == "" {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", esCfg.Addresses)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: ES_ADDRESSES is missing")
		}
	}

	var pgCfg *pg.Config
	if storeType == store.PG {
		pgCfg = &pg.Config{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
		}
		if pgCfg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
	}

	return &StoreConfig{
		Type:  storeType,
		Mongo: mongoCfg,
		Es:    esCfg,
		Pg:    pgCfg,
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
