package api

import (
	"testing"

	"payloadkit/internal/collections"
	"payloadkit/internal/globals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Code+":"+e.Field)
	}
	return out
}

func TestValidateDocument_PostRequiresTitle(t *testing.T) {
	col := collections.Posts
	errs := ValidateDocument(col.AllFields(), map[string]any{"content": "body"}, false, managedFields(col))
	assert.Equal(t, []string{"required:title"}, codes(errs))

	errs = ValidateDocument(col.AllFields(), map[string]any{"title": "   "}, false, managedFields(col))
	assert.Equal(t, []string{"required:title"}, codes(errs))
}

func TestValidateDocument_PartialSkipsRequired(t *testing.T) {
	col := collections.Posts
	errs := ValidateDocument(col.AllFields(), map[string]any{"content": "only body"}, true, managedFields(col))
	assert.Empty(t, errs)
}

func TestValidateDocument_TypesAndUnknown(t *testing.T) {
	col := collections.Posts
	doc := map[string]any{
		"title":     float64(42),
		"content":   "ok",
		"author":    "nobody",
		"id":        "abc",
		"createdAt": "2024-01-01T00:00:00Z",
	}
	errs := ValidateDocument(col.AllFields(), doc, false, managedFields(col))
	assert.Equal(t, []string{"unknown_field:author", "type_mismatch:title"}, codes(errs))
}

func TestValidateDocument_UserEmail(t *testing.T) {
	col := collections.Users
	managed := managedFields(col)

	errs := ValidateDocument(col.AllFields(), map[string]any{}, false, managed)
	assert.Equal(t, []string{"required:email"}, codes(errs))

	errs = ValidateDocument(col.AllFields(), map[string]any{"email": "not-an-address"}, false, managed)
	assert.Equal(t, []string{"type_mismatch:email"}, codes(errs))

	doc := map[string]any{"email": "dev@example.com", "password": "secret", "enableAPIKey": true, "apiKey": "k"}
	assert.Empty(t, ValidateDocument(col.AllFields(), doc, false, managed))
}

func TestValidateDocument_MediaCaptionElements(t *testing.T) {
	col := collections.Media
	managed := managedFields(col)

	ok := map[string]any{
		"alt": "logo",
		"caption": []any{
			map[string]any{"type": "p", "children": []any{
				map[string]any{"text": "see "},
				map[string]any{"type": "link", "url": "https://example.com", "children": []any{map[string]any{"text": "here"}}},
			}},
		},
	}
	assert.Empty(t, ValidateDocument(col.AllFields(), ok, false, managed))

	bad := map[string]any{
		"alt": "logo",
		"caption": []any{
			map[string]any{"type": "p", "children": []any{
				map[string]any{"type": "h1", "children": []any{map[string]any{"text": "big"}}},
			}},
		},
	}
	errs := ValidateDocument(col.AllFields(), bad, false, managed)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrElementNotAllowed, errs[0].Code)
	assert.Contains(t, errs[0].Message, "h1")

	notArray := map[string]any{"alt": "logo", "caption": "plain"}
	assert.Equal(t, []string{"type_mismatch:caption"}, codes(ValidateDocument(col.AllFields(), notArray, false, managed)))
}

func TestValidateDocument_MediaUploadFieldsAreManaged(t *testing.T) {
	col := collections.Media
	errs := ValidateDocument(col.AllFields(), map[string]any{"alt": "x"}, false, managedFields(col))
	assert.Empty(t, errs)

	// у posts нет upload: filename неизвестно
	errs = ValidateDocument(collections.Posts.AllFields(), map[string]any{"title": "t", "filename": "a.png"}, false, managedFields(collections.Posts))
	assert.Equal(t, []string{"unknown_field:filename"}, codes(errs))
}

func TestValidateDocument_Settings(t *testing.T) {
	g := globals.Settings
	assert.Empty(t, ValidateDocument(g.Fields, map[string]any{"siteName": "Acme"}, true, nil))
	assert.Equal(t, []string{"type_mismatch:siteName"}, codes(ValidateDocument(g.Fields, map[string]any{"siteName": true}, true, nil)))
}
