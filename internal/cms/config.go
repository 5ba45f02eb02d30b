package cms

import (
	"errors"
	"fmt"
	"strings"

	"payloadkit/internal/db"
	"payloadkit/internal/schema"
)

var (
	ErrAdminUserNotFound = errors.New("admin.user does not name a declared collection")
	ErrAdminUserNotAuth  = errors.New("admin.user collection does not have auth enabled")
	ErrNoEditor          = errors.New("editor is required")
	ErrNoDatabaseAdapter = errors.New("db adapter is required")
)

type Admin struct {
	User    string  // слаг auth-коллекции для входа в админку
	Bundler Bundler // чем собирать админку
}

// Configuration: единое значение, которое получает CMS при старте.
// После BuildConfig не меняется.
type Configuration struct {
	Admin       Admin
	Editor      schema.Editor
	Collections []schema.Collection
	Globals     []schema.Global
	Plugins     []Plugin
	DB          db.Adapter
}

// ValidationError: блокирующие проблемы схемы
type ValidationError struct {
	Issues []schema.Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, it := range e.Issues {
		parts = append(parts, it.String())
	}
	return "schema has blocking issues: " + strings.Join(parts, "; ")
}

// BuildConfig собирает конфигурацию из деклараций. Декларации копируются,
// плагины применяются по порядку, затем проверяются слаги, поля и admin.user.
// Строку подключения адаптера не проверяет.
func BuildConfig(in Configuration) (*Configuration, error) {
	cfg := &Configuration{
		Admin:       in.Admin,
		Editor:      schema.CloneEditor(in.Editor),
		Collections: make([]schema.Collection, 0, len(in.Collections)),
		Globals:     make([]schema.Global, 0, len(in.Globals)),
		Plugins:     append([]Plugin(nil), in.Plugins...),
		DB:          in.DB,
	}
	for _, c := range in.Collections {
		cfg.Collections = append(cfg.Collections, c.Clone())
	}
	for _, g := range in.Globals {
		cfg.Globals = append(cfg.Globals, g.Clone())
	}

	for _, p := range cfg.Plugins {
		if p.Apply == nil {
			continue
		}
		if err := p.Apply(cfg); err != nil {
			return nil, fmt.Errorf("plugin %s: %w", p.Name, err)
		}
	}

	if strings.TrimSpace(cfg.Editor.Name) == "" {
		return nil, ErrNoEditor
	}
	if cfg.DB == nil {
		return nil, ErrNoDatabaseAdapter
	}
	if issues := schema.Lint(cfg.Collections, cfg.Globals); len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	if err := cfg.resolveAdminUser(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveAdminUser: пустой admin.user → первая auth-коллекция.
func (c *Configuration) resolveAdminUser() error {
	if strings.TrimSpace(c.Admin.User) == "" {
		for _, col := range c.Collections {
			if col.IsAuth() {
				c.Admin.User = col.Slug
				return nil
			}
		}
		return ErrAdminUserNotFound
	}
	col, ok := c.Collection(c.Admin.User)
	if !ok || col.Slug != c.Admin.User {
		return fmt.Errorf("%w: %q", ErrAdminUserNotFound, c.Admin.User)
	}
	if !col.IsAuth() {
		return fmt.Errorf("%w: %q", ErrAdminUserNotAuth, c.Admin.User)
	}
	return nil
}

// Collection ищет коллекцию по слагу: сначала точно, потом регистронезависимо.
func (c *Configuration) Collection(slug string) (schema.Collection, bool) {
	for _, col := range c.Collections {
		if col.Slug == slug {
			return col, true
		}
	}
	sl := strings.ToLower(strings.TrimSpace(slug))
	for _, col := range c.Collections {
		if strings.ToLower(col.Slug) == sl {
			return col, true
		}
	}
	return schema.Collection{}, false
}

func (c *Configuration) Global(slug string) (schema.Global, bool) {
	sl := strings.ToLower(strings.TrimSpace(slug))
	for _, g := range c.Globals {
		if strings.ToLower(g.Slug) == sl {
			return g, true
		}
	}
	return schema.Global{}, false
}

// UploadCollections: коллекции с upload, в порядке объявления.
func (c *Configuration) UploadCollections() []schema.Collection {
	var out []schema.Collection
	for _, col := range c.Collections {
		if col.IsUpload() {
			out = append(out, col)
		}
	}
	return out
}

// Schema: логическая модель для адаптера
func (c *Configuration) Schema() db.Schema {
	return db.Schema{Collections: c.Collections, Globals: c.Globals}
}
