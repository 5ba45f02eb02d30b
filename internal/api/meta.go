package api

import (
	"net/http"

	"payloadkit/internal/schema"

	"github.com/gin-gonic/gin"
)

// ===== META HANDLERS =====

type metaListItem struct {
	Slug   string `json:"slug"`
	Kind   string `json:"kind"` // "collection" | "global"
	Auth   bool   `json:"auth,omitempty"`
	Upload bool   `json:"upload,omitempty"`
}

func MetaListHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		out := make([]metaListItem, 0, len(s.Conf.Collections)+len(s.Conf.Globals))
		for _, col := range s.Conf.Collections {
			out = append(out, metaListItem{Slug: col.Slug, Kind: "collection", Auth: col.IsAuth(), Upload: col.IsUpload()})
		}
		for _, g := range s.Conf.Globals {
			out = append(out, metaListItem{Slug: g.Slug, Kind: "global"})
		}
		c.JSON(http.StatusOK, out)
	}
}

type metaField struct {
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Label    string         `json:"label"`
	Required bool           `json:"required"`
	Unique   bool           `json:"unique,omitempty"`
	Editor   *schema.Editor `json:"editor,omitempty"`
}

type metaUpload struct {
	StaticURL string `json:"staticURL"`
}

type metaCollection struct {
	Slug       string      `json:"slug"`
	Auth       bool        `json:"auth"`
	UseAsTitle string      `json:"useAsTitle,omitempty"`
	Upload     *metaUpload `json:"upload,omitempty"`
	Fields     []metaField `json:"fields"`
}

type metaGlobal struct {
	Slug   string      `json:"slug"`
	Fields []metaField `json:"fields"`
}

func toMetaFields(fields []schema.Field) []metaField {
	out := make([]metaField, 0, len(fields))
	for _, f := range fields {
		out = append(out, metaField{
			Name:     f.Name,
			Type:     string(f.Kind),
			Label:    f.DisplayLabel(),
			Required: f.Required,
			Unique:   f.Unique,
			Editor:   f.Editor,
		})
	}
	return out
}

func MetaCollectionHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		col, ok := s.Conf.Collection(c.Param("slug"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
			return
		}
		out := metaCollection{
			Slug:       col.Slug,
			Auth:       col.IsAuth(),
			UseAsTitle: col.Admin.UseAsTitle,
			Fields:     toMetaFields(col.AllFields()),
		}
		if col.Upload != nil {
			out.Upload = &metaUpload{StaticURL: col.Upload.StaticURL}
		}
		c.JSON(http.StatusOK, out)
	}
}

func MetaGlobalHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		g, ok := s.Conf.Global(c.Param("slug"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Global not found"})
			return
		}
		c.JSON(http.StatusOK, metaGlobal{Slug: g.Slug, Fields: toMetaFields(g.Fields)})
	}
}

// MetaAdminHandler: что выбрано для админки: пользователь, сборщик, редактор, адаптер.
func MetaAdminHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		adapter := ""
		if s.Conf.DB != nil {
			adapter = s.Conf.DB.Name()
		}
		plugins := make([]string, 0, len(s.Conf.Plugins))
		for _, p := range s.Conf.Plugins {
			plugins = append(plugins, p.Name)
		}
		c.JSON(http.StatusOK, gin.H{
			"user":    s.Conf.Admin.User,
			"bundler": s.Conf.Admin.Bundler.Name,
			"editor":  s.Conf.Editor,
			"db":      adapter,
			"plugins": plugins,
		})
	}
}
