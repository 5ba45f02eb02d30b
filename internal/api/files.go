package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// POST /api/:slug/_upload
// multipart: file (обязателен), _payload (JSON остальных полей документа, опционально)
func UploadFileHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		col, ok := s.Conf.Collection(c.Param("slug"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
			return
		}
		if !col.IsUpload() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Collection '" + col.Slug + "' does not accept uploads"})
			return
		}
		blobs := s.Blobs[col.Slug]
		if blobs == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "blob store not configured"})
			return
		}

		file, hdr, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "multipart file not found (field name 'file')"})
			return
		}
		defer file.Close()

		// сначала документ: при ошибках файл не сохраняем
		doc := map[string]any{}
		if raw := c.PostForm("_payload"); strings.TrimSpace(raw) != "" {
			if err := json.Unmarshal([]byte(raw), &doc); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid _payload JSON"})
				return
			}
		}
		if errs := ValidateDocument(col.AllFields(), doc, false, managedFields(col)); len(errs) > 0 {
			c.JSON(statusForErrors(errs), gin.H{"errors": errs})
			return
		}

		key, size, sum, err := blobs.Put(safeName(hdr), file)
		if err != nil {
			s.log.Error("store upload", zap.String("collection", col.Slug), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "store error", "details": err.Error()})
			return
		}

		p, _ := blobs.Path(key)
		mime := "application/octet-stream"
		if mt, err := mimetype.DetectFile(p); err == nil {
			mime = mt.String()
		}

		url := strings.TrimRight(col.Upload.StaticURL, "/") + "/" + key
		doc["filename"] = key
		doc["mimeType"] = mime
		doc["url"] = url

		s.log.Info("upload stored",
			zap.String("collection", col.Slug),
			zap.String("filename", key),
			zap.Int64("size", size),
			zap.String("mime", mime))

		c.JSON(http.StatusCreated, gin.H{
			"filename": key,
			"mimeType": mime,
			"filesize": size,
			"sha256":   sum,
			"url":      url,
			"doc":      doc,
		})
	}
}

func safeName(h *multipart.FileHeader) string {
	if h == nil {
		return ""
	}
	return h.Filename
}

// GET <staticURL>/:file
func StaticFileHandler(s *Server, slug string) gin.HandlerFunc {
	return func(c *gin.Context) {
		blobs := s.Blobs[slug]
		if blobs == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		p, err := blobs.Path(c.Param("file"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file name"})
			return
		}
		st, err := os.Stat(p)
		if errors.Is(err, os.ErrNotExist) || (err == nil && st.IsDir()) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("stat: %v", err)})
			return
		}
		if mt, err := mimetype.DetectFile(p); err == nil {
			c.Header("Content-Type", mt.String())
		}
		c.File(p)
	}
}
