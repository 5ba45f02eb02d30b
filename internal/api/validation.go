package api

import (
	"fmt"
	"net/http"
	"net/mail"
	"sort"
	"strings"

	"payloadkit/internal/schema"

	"github.com/gin-gonic/gin"
)

type FieldError struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Коды ошибок, которыми будем пользоваться
const (
	ErrRequired          = "required"
	ErrTypeMismatch      = "type_mismatch"
	ErrUnknownField      = "unknown_field"
	ErrElementNotAllowed = "element_not_allowed"
)

// системные поля, которые документ может нести всегда
var systemFields = map[string]struct{}{"id": {}, "createdAt": {}, "updatedAt": {}}

// slate: узлы без type и абзацы разрешены всегда
var baseElements = map[string]struct{}{"": {}, "p": {}, "paragraph": {}}

func ferr(code, field, msg string) FieldError {
	return FieldError{Code: code, Field: field, Message: msg}
}

// ValidateDocument проверяет документ против полей схемы.
// partial=true даёт PATCH-семантику: required не проверяется.
// managed: поля, которыми распоряжается сервер: не обязательны и
// допустимы, даже если не объявлены.
func ValidateDocument(fields []schema.Field, doc map[string]any, partial bool, managed map[string]struct{}) []FieldError {
	var errs []FieldError

	byName := make(map[string]schema.Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	// 1) required
	if !partial {
		for _, f := range fields {
			if !f.Required {
				continue
			}
			if _, skipped := managed[f.Name]; skipped {
				continue
			}
			if isEmpty(doc[f.Name]) {
				errs = append(errs, ferr(ErrRequired, f.Name, "Field '"+f.Name+"' is required"))
			}
		}
	}

	// 2) неизвестные поля и типы; порядок ключей стабилен
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		val := doc[name]
		if _, ok := systemFields[name]; ok {
			continue
		}
		f, ok := byName[name]
		if _, isManaged := managed[name]; !ok && isManaged {
			continue
		}
		if !ok {
			errs = append(errs, ferr(ErrUnknownField, name, "Field '"+name+"' is not declared"))
			continue
		}
		if val == nil {
			continue
		}
		errs = append(errs, checkKind(f, val)...)
	}
	return errs
}

// ValidateCollectionDocument: ValidateDocument с учётом служебных полей коллекции.
func ValidateCollectionDocument(col schema.Collection, doc map[string]any, partial bool) []FieldError {
	return ValidateDocument(col.AllFields(), doc, partial, managedFields(col))
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	default:
		return false
	}
}

func checkKind(f schema.Field, val any) []FieldError {
	switch f.Kind {
	case schema.KindText, schema.KindTextarea:
		if _, ok := val.(string); !ok {
			return []FieldError{ferr(ErrTypeMismatch, f.Name, "Field '"+f.Name+"' expected string")}
		}
	case schema.KindEmail:
		s, ok := val.(string)
		if !ok {
			return []FieldError{ferr(ErrTypeMismatch, f.Name, "Field '"+f.Name+"' expected string")}
		}
		if _, err := mail.ParseAddress(s); err != nil {
			return []FieldError{ferr(ErrTypeMismatch, f.Name, "Field '"+f.Name+"' expected email address")}
		}
	case schema.KindRichText:
		nodes, ok := val.([]any)
		if !ok {
			return []FieldError{ferr(ErrTypeMismatch, f.Name, "Field '"+f.Name+"' expected array of rich text nodes")}
		}
		if f.Editor != nil && len(f.Editor.Elements) > 0 {
			allowed := map[string]struct{}{}
			for _, e := range f.Editor.Elements {
				allowed[e] = struct{}{}
			}
			if bad := firstDisallowed(nodes, allowed); bad != "" {
				return []FieldError{ferr(ErrElementNotAllowed, f.Name,
					fmt.Sprintf("Element '%s' is not allowed in '%s'", bad, f.Name))}
			}
		}
	}
	return nil
}

// firstDisallowed обходит дерево slate-узлов и возвращает первый запрещённый type.
func firstDisallowed(nodes []any, allowed map[string]struct{}) string {
	for _, n := range nodes {
		m, ok := n.(map[string]any)
		if !ok {
			continue
		}
		typ, _ := m["type"].(string)
		if _, base := baseElements[typ]; !base {
			if _, ok := allowed[typ]; !ok {
				return typ
			}
		}
		if children, ok := m["children"].([]any); ok {
			if bad := firstDisallowed(children, allowed); bad != "" {
				return bad
			}
		}
	}
	return ""
}

func statusForErrors(errs []FieldError) int {
	if len(errs) == 0 {
		return http.StatusOK
	}
	return http.StatusUnprocessableEntity
}

// managedFields: метаданные upload проставляет сервер при загрузке,
// секреты auth-коллекций в схеме не объявлены.
func managedFields(c schema.Collection) map[string]struct{} {
	out := map[string]struct{}{}
	if c.IsUpload() {
		out["filename"], out["mimeType"], out["url"] = struct{}{}, struct{}{}, struct{}{}
	}
	if c.IsAuth() {
		out["password"] = struct{}{}
		if c.Auth.UseAPIKey {
			out["enableAPIKey"], out["apiKey"] = struct{}{}, struct{}{}
		}
	}
	return out
}

// POST /api/:slug/_validate[?partial=true]
func ValidateHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		col, ok := s.Conf.Collection(c.Param("slug"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
			return
		}
		var doc map[string]any
		if err := c.ShouldBindJSON(&doc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		partial := strings.EqualFold(c.Query("partial"), "true")
		respondValidation(c, ValidateCollectionDocument(col, doc, partial))
	}
}

// POST /api/globals/:slug/_validate: глобалы всегда частичные
func ValidateGlobalHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		g, ok := s.Conf.Global(c.Param("slug"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Global not found"})
			return
		}
		var doc map[string]any
		if err := c.ShouldBindJSON(&doc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		respondValidation(c, ValidateDocument(g.Fields, doc, true, nil))
	}
}

func respondValidation(c *gin.Context, errs []FieldError) {
	if len(errs) > 0 {
		c.JSON(statusForErrors(errs), gin.H{"errors": errs})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
