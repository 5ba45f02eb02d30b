package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func TestAdapter_MigrateIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}
	ctx := t.Context()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("payload"),
		tcpostgres.WithUsername("payload"),
		tcpostgres.WithPassword("payload"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	uri, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	a := NewAdapter(Args{Pool: PoolArgs{ConnectionString: uri}, SchemaName: "cms"})
	require.NoError(t, a.Connect(ctx))
	t.Cleanup(func() { _ = a.Close(ctx) })

	require.NoError(t, a.Migrate(ctx, testSchema()))
	require.NoError(t, a.Migrate(ctx, testSchema()), "second run must be a no-op")

	var n int
	err = a.DB().QueryRowContext(ctx,
		`select count(*) from information_schema.tables where table_schema = 'cms'`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = a.DB().ExecContext(ctx, `insert into "cms"."posts"("title") values ('hello')`)
	require.NoError(t, err)
	_, err = a.DB().ExecContext(ctx, `insert into "cms"."posts"("content") values ('no title')`)
	require.Error(t, err, "title is required")
}

func TestAdapter_ConnectFailsOnEmptyURL(t *testing.T) {
	if testing.Short() {
		t.Skip("dials localhost")
	}
	t.Setenv("PGHOST", "127.0.0.1")
	t.Setenv("PGPORT", "1")
	a := NewAdapter(Args{})
	err := a.Connect(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres connect:")
}
