package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"payloadkit/internal/db"
	"payloadkit/internal/logging"

	"go.uber.org/zap"
)

var ErrNotConnected = errors.New("postgres: not connected")

type PoolArgs struct {
	ConnectionString string
}

// Args повторяет форму postgresAdapter({pool: {connectionString}}).
type Args struct {
	Pool       PoolArgs
	SchemaName string
	Logger     *zap.Logger
}

type Adapter struct {
	args Args
	log  *zap.Logger
	db   *sql.DB
}

var _ db.Adapter = (*Adapter)(nil)

// NewAdapter не ходит в сеть и не проверяет строку подключения.
func NewAdapter(args Args) *Adapter {
	if args.SchemaName == "" {
		args.SchemaName = DefaultSchemaName
	}
	return &Adapter{args: args, log: logging.OrNop(args.Logger).Named("postgres")}
}

func (a *Adapter) Name() string       { return string(db.KindPostgres) }
func (a *Adapter) URL() string        { return a.args.Pool.ConnectionString }
func (a *Adapter) SchemaName() string { return a.args.SchemaName }

// DB: открытый пул (nil до Connect).
func (a *Adapter) DB() *sql.DB { return a.db }

func (a *Adapter) Connect(ctx context.Context) error {
	if a.db != nil {
		return nil
	}
	conn, err := Open(ctx, a.args.Pool.ConnectionString)
	if err != nil {
		return fmt.Errorf("postgres connect: %w", err)
	}
	a.db = conn
	a.log.Info("connected", zap.String("schema", a.args.SchemaName))
	return nil
}

func (a *Adapter) Migrate(ctx context.Context, s db.Schema) error {
	if a.db == nil {
		return ErrNotConnected
	}
	stmts, err := GenerateDDL(a.args.SchemaName, s)
	if err != nil {
		return fmt.Errorf("postgres generate ddl: %w", err)
	}
	return ApplyDDL(ctx, a.db, stmts, a.log)
}

func (a *Adapter) Close(context.Context) error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}
