// api/router.go
package api

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"payloadkit/internal/cms"
	"payloadkit/internal/logging"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server: dev-поверхность над собранной конфигурацией (метаданные схем,
// проверка документов, загрузка и раздача файлов upload-коллекций).
type Server struct {
	Conf  *cms.Configuration
	Blobs map[string]BlobStore // slug upload-коллекции -> хранилище
	log   *zap.Logger
}

// NewServer: staticDir относительные пути резолвятся от filesRoot.
func NewServer(conf *cms.Configuration, filesRoot string, log *zap.Logger) *Server {
	s := &Server{
		Conf:  conf,
		Blobs: map[string]BlobStore{},
		log:   logging.OrNop(log).Named("api"),
	}
	for _, c := range conf.UploadCollections() {
		dir := c.Upload.StaticDir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(filesRoot, dir)
		}
		s.Blobs[c.Slug] = NewLocalBlobStore(dir)
	}
	return s
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	apiGroup := r.Group("/api")
	{
		// статические "служебные" маршруты: СНАЧАЛА
		apiGroup.GET("/meta", MetaListHandler(s))
		apiGroup.GET("/meta/admin", MetaAdminHandler(s))
		apiGroup.GET("/meta/collections/:slug", MetaCollectionHandler(s))
		apiGroup.GET("/meta/globals/:slug", MetaGlobalHandler(s))
		apiGroup.POST("/globals/:slug/_validate", ValidateGlobalHandler(s))

		apiGroup.POST("/:slug/_validate", ValidateHandler(s))
		apiGroup.POST("/:slug/_upload", UploadFileHandler(s))
	}

	// раздача файлов по staticURL каждой upload-коллекции
	for _, c := range s.Conf.UploadCollections() {
		prefix := "/" + strings.Trim(c.Upload.StaticURL, "/")
		r.GET(prefix+"/:file", StaticFileHandler(s, c.Slug))
	}
	return r
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}

// RunServer слушает addr до отмены ctx, затем корректно гасит сервер.
func RunServer(ctx context.Context, addr string, s *Server) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
