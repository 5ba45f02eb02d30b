package db

import (
	"context"
	"fmt"
	"strings"

	"payloadkit/internal/schema"
)

// Kind: выбранный движок хранения
type Kind string

const (
	KindMongoDB  Kind = "mongodb"
	KindPostgres Kind = "postgres"
)

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mongodb", "mongo", "mongoose":
		return KindMongoDB, nil
	case "postgres", "postgresql", "pg":
		return KindPostgres, nil
	default:
		return "", fmt.Errorf("unknown database adapter %q (allowed: mongodb|postgres)", s)
	}
}

// Schema: логическая модель, которую адаптер привязывает к хранилищу
type Schema struct {
	Collections []schema.Collection
	Globals     []schema.Global
}

// Adapter связывает логическую модель с конкретным хранилищем.
// URL не валидируется при создании: ошибки всплывают на Connect.
type Adapter interface {
	Name() string
	URL() string
	Connect(ctx context.Context) error
	Migrate(ctx context.Context, s Schema) error
	Close(ctx context.Context) error
}
