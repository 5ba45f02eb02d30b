// Package instance объявляет конкретный экземпляр CMS: какие коллекции,
// глобалы, редактор, сборщик и адаптер базы в нём используются.
package instance

import (
	"fmt"

	"payloadkit/internal/cms"
	"payloadkit/internal/collections"
	"payloadkit/internal/config"
	"payloadkit/internal/db"
	"payloadkit/internal/db/mongodb"
	"payloadkit/internal/db/postgres"
	"payloadkit/internal/globals"

	"go.uber.org/zap"
)

// Adapter выбирает адаптер по имени. uri передаётся как есть, даже пустой.
func Adapter(kind, uri, pgSchema string, log *zap.Logger) (db.Adapter, error) {
	k, err := db.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	switch k {
	case db.KindPostgres:
		return postgres.NewAdapter(postgres.Args{
			Pool:       postgres.PoolArgs{ConnectionString: uri},
			SchemaName: pgSchema,
			Logger:     log,
		}), nil
	default:
		return mongodb.NewAdapter(mongodb.Args{URL: uri, Logger: log}), nil
	}
}

// Build собирает корневую конфигурацию экземпляра.
func Build(cfg config.Config, log *zap.Logger) (*cms.Configuration, error) {
	adapter, err := Adapter(cfg.DBAdapter, cfg.DatabaseURI, cfg.DBSchema, log)
	if err != nil {
		return nil, fmt.Errorf("instance: %w", err)
	}
	conf, err := cms.BuildConfig(cms.Configuration{
		Admin: cms.Admin{
			User:    collections.Users.Slug,
			Bundler: cms.WebpackBundler(),
		},
		Editor:      cms.SlateEditor(cms.SlateOptions{}),
		Collections: collections.All(),
		Globals:     globals.All(),
		Plugins:     []cms.Plugin{},
		DB:          adapter,
	})
	if err != nil {
		return nil, fmt.Errorf("instance: %w", err)
	}
	return conf, nil
}
