package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/sredowan/uhud-builders-new/internal/store"
	"github.com/sredowan/uhud-builders-new/internal/store/storetest"
)

// TestPostgresStoreContract runs the shared contract suite against a real
// database. Set TEST_DATABASE_URL to enable, e.g.
// postgres://localhost:5432/uhud_test?sslmode=disable
func TestPostgresStoreContract(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	storetest.RunSuite(t, func(t *testing.T) store.Store {
		s, err := NewFromPool(pool)
		require.NoError(t, err)
		truncate(t, pool)
		return noClose{s}
	})
}

func truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`TRUNCATE project_units, projects, gallery_items, contact_messages, site_settings`)
	require.NoError(t, err)
}

// noClose keeps the shared pool open across suite cases
type noClose struct {
	*Store
}

func (noClose) Close() {}
