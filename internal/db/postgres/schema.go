package postgres

import (
	"fmt"
	"strings"
	"unicode"

	"payloadkit/internal/db"
	"payloadkit/internal/schema"
)

const DefaultSchemaName = "public"

// Statement: один DDL-шаг; Key нужен для логов и стабильного порядка.
type Statement struct {
	Key string
	SQL string
}

func sqlIdent(s string) string { return `"` + strings.ReplaceAll(s, `"`, `""`) + `"` }

// snake переводит camelCase имя поля в snake_case колонку (siteName → site_name).
func snake(s string) string {
	var b strings.Builder
	rs := []rune(s)
	for i, r := range rs {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(rs[i-1]) || unicode.IsDigit(rs[i-1]) ||
				(i+1 < len(rs) && unicode.IsLower(rs[i+1]) && unicode.IsUpper(rs[i-1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if r == '-' {
			r = '_'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// tableName: слаг → имя таблицы (дефисы в подчёркивания)
func tableName(slug string) string { return snake(slug) }

func mapType(f schema.Field) (string, error) {
	switch f.Kind {
	case schema.KindText, schema.KindTextarea, schema.KindEmail:
		return "text", nil
	case schema.KindRichText:
		// дерево узлов редактора храним как есть
		return "jsonb", nil
	default:
		return "", fmt.Errorf("unknown field kind: %s", f.Kind)
	}
}

// GenerateDDL возвращает упорядоченный список идемпотентных DDL-шагов:
// схема, таблицы коллекций, таблицы глобалов, уникальные индексы.
func GenerateDDL(schemaName string, s db.Schema) ([]Statement, error) {
	if strings.TrimSpace(schemaName) == "" {
		schemaName = DefaultSchemaName
	}
	sch := sqlIdent(schemaName)

	out := []Statement{{
		Key: "000_schema",
		SQL: fmt.Sprintf("create schema if not exists %s;", sch),
	}}
	var indexes []Statement

	for _, c := range s.Collections {
		tbl := tableName(c.Slug)
		cols, err := columns(c.Slug, c.AllFields())
		if err != nil {
			return nil, err
		}
		if c.Auth != nil && c.Auth.UseAPIKey {
			cols = append(cols, `"enable_api_key" boolean null`, `"api_key" text null`)
		}
		out = append(out, Statement{
			Key: "100_" + schemaName + "." + tbl,
			SQL: createTable(sch, tbl, cols),
		})

		for _, f := range c.AllFields() {
			if !f.Unique {
				continue
			}
			col := snake(f.Name)
			indexes = append(indexes, Statement{
				Key: "300_" + schemaName + "." + tbl + "_" + col + "_uq",
				SQL: fmt.Sprintf("create unique index if not exists %s on %s.%s(%s);",
					sqlIdent(tbl+"_"+col+"_uq"), sch, sqlIdent(tbl), sqlIdent(col)),
			})
		}
	}

	for _, g := range s.Globals {
		tbl := tableName(g.Slug)
		cols, err := columns(g.Slug, g.Fields)
		if err != nil {
			return nil, err
		}
		out = append(out, Statement{
			Key: "200_" + schemaName + "." + tbl,
			SQL: createTable(sch, tbl, cols),
		})
	}

	return append(out, indexes...), nil
}

func columns(slug string, fields []schema.Field) ([]string, error) {
	var cols []string
	seen := map[string]struct{}{"id": {}, "created_at": {}, "updated_at": {}}

	for _, f := range fields {
		col := snake(f.Name)
		if _, exists := seen[col]; exists {
			return nil, fmt.Errorf("%s: field %q duplicates a system or another column", slug, f.Name)
		}
		seen[col] = struct{}{}

		typ, err := mapType(f)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", slug, f.Name, err)
		}
		null := "null"
		if f.Required {
			null = "not null"
		}
		cols = append(cols, fmt.Sprintf("%s %s %s", sqlIdent(col), typ, null))
	}
	return cols, nil
}

func createTable(sch, tbl string, cols []string) string {
	all := []string{
		`"id" serial primary key`,
	}
	all = append(all, cols...)
	all = append(all,
		`"updated_at" timestamp(3) with time zone not null default now()`,
		`"created_at" timestamp(3) with time zone not null default now()`,
	)
	return fmt.Sprintf("create table if not exists %s.%s (\n  %s\n);",
		sch, sqlIdent(tbl), strings.Join(all, ",\n  "))
}
