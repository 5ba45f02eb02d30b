// Package main: команда cms, точка входа экземпляра (dev-сервер, миграции, печать манифеста, сид).
package main

import (
	"fmt"
	"io"
	"os"

	"payloadkit/internal/config"
	"payloadkit/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app хранит общее состояние команд: флаги, загруженный конфиг и логгер.
type app struct {
	configPath string
	logLevel   string
	port       string
	dbAdapter  string
	filesRoot  string
	migrate    bool
	serverURL  string
	apiKey     string

	cfg config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "cms",
		Short:         "Payload CMS instance: dev server, migrations, manifest, seed",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "config.json", "Path to JSON config (optional)")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug|info|warn|error (env CMS_LOG_LEVEL)")
	pf.StringVar(&a.dbAdapter, "db-adapter", "", "Database adapter: mongodb|postgres (env CMS_DB_ADAPTER)")

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newMigrateCmd(a))
	root.AddCommand(newPrintCmd(a))
	root.AddCommand(newSeedCmd(a, nil))
	return root
}

// init: дефолты → JSON → ENV → флаги, затем логгер.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, val string) {
		if flags.Changed(name) {
			*dst = val
		}
	}
	override("log-level", &cfg.LogLevel, a.logLevel)
	override("db-adapter", &cfg.DBAdapter, a.dbAdapter)
	override("port", &cfg.Port, a.port)
	override("files-root", &cfg.FilesRoot, a.filesRoot)
	override("server-url", &cfg.ServerURL, a.serverURL)
	override("api-key", &cfg.APIKey, a.apiKey)
	if flags.Changed("auto-migrate") {
		cfg.AutoMigrate = a.migrate
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cfg = cfg
	a.log = log
	return nil
}

func execute(args []string, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func main() {
	if err := execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
