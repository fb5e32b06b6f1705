package storage

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/jmhodges/clock"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) (*Store, clock.FakeClock) {
	t.Helper()

	clk := clock.NewFake()
	path := filepath.Join(t.TempDir(), "app.db")
	store, err := Open(path, clk, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, clk
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunMigrationsCreatesDocumentStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(db, DefaultMigrations()))

	for _, table := range []string{"app_store", "store_meta", "schema_migrations"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoErrorf(t, err, "expected table %s to exist", table)
	}
}

func TestOpenRefusesNewerSchemaVersion(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db, DefaultMigrations()))
	_, err = db.Exec(`UPDATE store_meta SET value = ? WHERE key = 'schema_version'`, CurrentSchemaVersion()+1)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	store, err := Open(path, clock.NewFake(), discardLogger())
	if store != nil {
		t.Cleanup(func() { _ = store.Close() })
	}
	require.ErrorIs(t, err, ErrSchemaTooNew)
}

func TestKVSetGetRemoveRoundTrip(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "doc", []byte(`{"a":1}`)))
	doc, ok, err := store.Get(ctx, "doc")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"a":1}`, string(doc))

	require.NoError(t, store.Set(ctx, "doc", []byte(`{"a":2}`)))
	doc, ok, err = store.Get(ctx, "doc")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"a":2}`, string(doc))

	require.NoError(t, store.Remove(ctx, "doc"))
	_, ok, err = store.Get(ctx, "doc")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestKVSurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.db")
	ctx := context.Background()

	store, err := Open(path, clock.NewFake(), discardLogger())
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, KeySettings, []byte(`{"notifications":false}`)))
	require.NoError(t, store.Close())

	reopened, err := Open(path, clock.NewFake(), discardLogger())
	require.NoError(t, err)
	defer reopened.Close()

	doc, ok, err := reopened.Get(ctx, KeySettings)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"notifications":false}`, string(doc))
}

func TestRemoveIsIndependentPerKey(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyReminders, []byte(`[]`)))
	require.NoError(t, store.Set(ctx, KeySavedTips, []byte(`["1"]`)))
	require.NoError(t, store.Set(ctx, KeySettings, []byte(`{}`)))

	require.NoError(t, store.Remove(ctx, KeySavedTips))

	_, ok, err := store.Get(ctx, KeySavedTips)
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = store.Get(ctx, KeyReminders)
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = store.Get(ctx, KeySettings)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestWipeClearsAllDocumentsAndLoadsReturnDefaults(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Reminders.Create(ctx, CreateReminderRequest{Title: "Gmail", Interval: Interval30})
	require.NoError(t, err)
	_, err = store.SavedTips.Toggle(ctx, "3")
	require.NoError(t, err)
	off := false
	store.Settings.Update(ctx, SettingsPatch{Vibration: &off})

	store.Wipe(ctx)

	require.Empty(t, store.Reminders.List(ctx))
	require.Empty(t, store.SavedTips.ListSaved(ctx))
	require.Equal(t, DefaultSettings(), store.Settings.Load(ctx))
}
