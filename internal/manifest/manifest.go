package manifest

import (
	"io"

	"payloadkit/internal/cms"
	"payloadkit/internal/schema"

	"gopkg.in/yaml.v3"
)

// Manifest: описание собранного экземпляра для людей и диффов.
// Строку подключения не содержит: только имя адаптера и признак, задана ли она.
type Manifest struct {
	Admin       Admin         `yaml:"admin"`
	Editor      schema.Editor `yaml:"editor"`
	Collections []Collection  `yaml:"collections"`
	Globals     []Global      `yaml:"globals"`
	Plugins     []string      `yaml:"plugins"`
	DB          DB            `yaml:"db"`
}

type Admin struct {
	User    string `yaml:"user"`
	Bundler string `yaml:"bundler"`
}

type DB struct {
	Adapter string `yaml:"adapter"`
	URLSet  bool   `yaml:"urlSet"`
}

type Field struct {
	Name     string         `yaml:"name"`
	Type     string         `yaml:"type"`
	Label    string         `yaml:"label"`
	Required bool           `yaml:"required,omitempty"`
	Unique   bool           `yaml:"unique,omitempty"`
	Implicit bool           `yaml:"implicit,omitempty"`
	Editor   *schema.Editor `yaml:"editor,omitempty"`
}

type Upload struct {
	StaticURL string `yaml:"staticURL"`
	StaticDir string `yaml:"staticDir"`
}

type Collection struct {
	Slug       string  `yaml:"slug"`
	Auth       bool    `yaml:"auth,omitempty"`
	UseAPIKey  bool    `yaml:"useAPIKey,omitempty"`
	UseAsTitle string  `yaml:"useAsTitle,omitempty"`
	Upload     *Upload `yaml:"upload,omitempty"`
	Fields     []Field `yaml:"fields"`
}

type Global struct {
	Slug   string  `yaml:"slug"`
	Fields []Field `yaml:"fields"`
}

func FromConfig(c *cms.Configuration) Manifest {
	m := Manifest{
		Admin:       Admin{User: c.Admin.User, Bundler: c.Admin.Bundler.Name},
		Editor:      schema.CloneEditor(c.Editor),
		Collections: make([]Collection, 0, len(c.Collections)),
		Globals:     make([]Global, 0, len(c.Globals)),
		Plugins:     make([]string, 0, len(c.Plugins)),
	}
	if c.DB != nil {
		m.DB = DB{Adapter: c.DB.Name(), URLSet: c.DB.URL() != ""}
	}
	for _, p := range c.Plugins {
		m.Plugins = append(m.Plugins, p.Name)
	}

	for _, col := range c.Collections {
		declared := map[string]struct{}{}
		for _, f := range col.Fields {
			declared[f.Name] = struct{}{}
		}
		mc := Collection{
			Slug:       col.Slug,
			Auth:       col.IsAuth(),
			UseAsTitle: col.Admin.UseAsTitle,
		}
		if col.Auth != nil {
			mc.UseAPIKey = col.Auth.UseAPIKey
		}
		if col.Upload != nil {
			mc.Upload = &Upload{StaticURL: col.Upload.StaticURL, StaticDir: col.Upload.StaticDir}
		}
		for _, f := range col.AllFields() {
			_, isDeclared := declared[f.Name]
			mc.Fields = append(mc.Fields, field(f, !isDeclared))
		}
		m.Collections = append(m.Collections, mc)
	}

	for _, g := range c.Globals {
		mg := Global{Slug: g.Slug}
		for _, f := range g.Fields {
			mg.Fields = append(mg.Fields, field(f, false))
		}
		m.Globals = append(m.Globals, mg)
	}
	return m
}

func field(f schema.Field, implicit bool) Field {
	out := Field{
		Name:     f.Name,
		Type:     string(f.Kind),
		Label:    f.DisplayLabel(),
		Required: f.Required,
		Unique:   f.Unique,
		Implicit: implicit,
	}
	if f.Editor != nil {
		e := schema.CloneEditor(*f.Editor)
		out.Editor = &e
	}
	return out
}

func Encode(w io.Writer, m Manifest) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}

// Decode нужен для сравнения манифестов (например, в CI).
func Decode(r io.Reader) (Manifest, error) {
	var m Manifest
	err := yaml.NewDecoder(r).Decode(&m)
	return m, err
}
