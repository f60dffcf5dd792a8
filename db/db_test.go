package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnectSQLiteAndEnsureSchema(t *testing.T) {
	conn, err := ConnectSQLite(":memory:", time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ctx := context.Background()
	require.NoError(t, EnsureSchema(ctx, conn, DialectSQLite))
	// Second run is a no-op.
	require.NoError(t, EnsureSchema(ctx, conn, DialectSQLite))

	var count int
	require.NoError(t, conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count))
	require.Zero(t, count)
}

func TestEnsureSchemaUnknownDialect(t *testing.T) {
	conn, err := ConnectSQLite(":memory:", time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Error(t, EnsureSchema(context.Background(), conn, "oracle"))
}
