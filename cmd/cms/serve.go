package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payloadkit/internal/api"
	"payloadkit/internal/cms"
	"payloadkit/internal/instance"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Connect the database adapter and run the dev API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&a.port, "port", "", "HTTP port (env CMS_PORT)")
	cmd.Flags().StringVar(&a.filesRoot, "files-root", "", "Root for upload static dirs (env CMS_FILES_ROOT)")
	cmd.Flags().BoolVar(&a.migrate, "auto-migrate", false, "Run migrations before serving (env CMS_AUTO_MIGRATE)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	conf, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer a.close(conf)

	if a.cfg.AutoMigrate {
		if err := conf.DB.Migrate(ctx, conf.Schema()); err != nil {
			return err
		}
		a.log.Info("migrations applied", zap.String("adapter", conf.DB.Name()))
	}

	srv := api.NewServer(conf, a.cfg.FilesRoot, a.log)
	return api.RunServer(ctx, ":"+a.cfg.Port, srv)
}

// connect собирает конфигурацию и подключает адаптер.
// Пустой или битый DATABASE_URI даёт ошибку именно здесь.
func (a *app) connect(ctx context.Context) (*cms.Configuration, error) {
	conf, err := instance.Build(a.cfg, a.log)
	if err != nil {
		return nil, err
	}
	if err := conf.DB.Connect(ctx); err != nil {
		return nil, err
	}
	a.log.Info("database connected", zap.String("adapter", conf.DB.Name()))
	return conf, nil
}

func (a *app) close(conf *cms.Configuration) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conf.DB.Close(ctx); err != nil {
		a.log.Warn("close database", zap.Error(err))
	}
}
