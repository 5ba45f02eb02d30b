package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var slugRe = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// Коды проблем схемы
const (
	IssueSlugInvalid         = "slug_invalid"
	IssueSlugDuplicate       = "slug_duplicate"
	IssueFieldNameEmpty      = "field_name_empty"
	IssueFieldNameDuplicate  = "field_name_duplicate"
	IssueFieldKindUnknown    = "field_kind_unknown"
	IssueEditorOnNonRichText = "editor_on_non_richtext"
	IssueUseAsTitleUnknown   = "use_as_title_unknown"
)

type Issue struct {
	Schema  string `json:"schema" yaml:"schema"` // "collections.<slug>" | "globals.<slug>"
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

func (i Issue) String() string {
	if i.Field != "" {
		return fmt.Sprintf("%s.%s: %s", i.Schema, i.Field, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Schema, i.Message)
}

func ValidSlug(s string) bool { return slugRe.MatchString(s) }

// Lint проверяет коллекции и глобалы на базовые противоречия.
// Коллекции и глобалы: разные пространства имён слагов.
func Lint(collections []Collection, globals []Global) []Issue {
	var issues []Issue

	seen := map[string]struct{}{}
	for _, c := range collections {
		owner := "collections." + c.Slug
		if _, dup := seen[c.Slug]; dup {
			issues = append(issues, Issue{Schema: owner, Code: IssueSlugDuplicate,
				Message: fmt.Sprintf("collection slug %q declared more than once", c.Slug)})
		}
		seen[c.Slug] = struct{}{}
		issues = append(issues, lintOne(owner, c.Slug, c.AllFields())...)

		if t := strings.TrimSpace(c.Admin.UseAsTitle); t != "" {
			if _, ok := c.Field(t); !ok {
				issues = append(issues, Issue{Schema: owner, Field: t, Code: IssueUseAsTitleUnknown,
					Message: fmt.Sprintf("admin.useAsTitle %q is not a field of %q", t, c.Slug)})
			}
		}
	}

	seen = map[string]struct{}{}
	for _, g := range globals {
		owner := "globals." + g.Slug
		if _, dup := seen[g.Slug]; dup {
			issues = append(issues, Issue{Schema: owner, Code: IssueSlugDuplicate,
				Message: fmt.Sprintf("global slug %q declared more than once", g.Slug)})
		}
		seen[g.Slug] = struct{}{}
		issues = append(issues, lintOne(owner, g.Slug, g.Fields)...)
	}
	return issues
}

func lintOne(owner, slug string, fields []Field) []Issue {
	var issues []Issue
	if !ValidSlug(slug) {
		issues = append(issues, Issue{Schema: owner, Code: IssueSlugInvalid,
			Message: fmt.Sprintf("slug %q must match %s", slug, slugRe.String())})
	}
	names := map[string]struct{}{}
	for i, f := range fields {
		if strings.TrimSpace(f.Name) == "" {
			issues = append(issues, Issue{Schema: owner, Code: IssueFieldNameEmpty,
				Message: fmt.Sprintf("field #%d has empty name", i)})
			continue
		}
		if _, dup := names[f.Name]; dup {
			issues = append(issues, Issue{Schema: owner, Field: f.Name, Code: IssueFieldNameDuplicate,
				Message: fmt.Sprintf("field %q declared more than once", f.Name)})
		}
		names[f.Name] = struct{}{}

		if !f.Kind.Valid() {
			issues = append(issues, Issue{Schema: owner, Field: f.Name, Code: IssueFieldKindUnknown,
				Message: fmt.Sprintf("unknown field kind %q (allowed: text|textarea|richText|email)", f.Kind)})
		}
		if f.Editor != nil && f.Kind != KindRichText {
			issues = append(issues, Issue{Schema: owner, Field: f.Name, Code: IssueEditorOnNonRichText,
				Message: "editor can only be set on richText fields"})
		}
	}
	return issues
}

// Validate: проверка одной коллекции (без межсхемных правил).
func (c Collection) Validate() error {
	return issuesErr(Lint([]Collection{c}, nil))
}

func (g Global) Validate() error {
	return issuesErr(Lint(nil, []Global{g}))
}

func issuesErr(issues []Issue) error {
	if len(issues) == 0 {
		return nil
	}
	errs := make([]error, 0, len(issues))
	for _, it := range issues {
		errs = append(errs, errors.New(it.String()))
	}
	return errors.Join(errs...)
}
