package bus

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudlens/fraudlens/internal/service"
	"github.com/fraudlens/fraudlens/internal/storage"
)

func TestWatcherRejectsInMemoryDatabase(t *testing.T) {
	_, err := NewWatcher(":memory:", storage.RecordsKey, "self", nil, nil)
	require.Error(t, err)
}

func TestWatcherSignalsExternalWrites(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "watched.db")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The "local" handle owns the watcher.
	local, err := storage.NewSQLiteKV(dbPath)
	require.NoError(t, err)
	defer func() { _ = local.Close() }()

	// A second handle stands in for another process.
	external, err := storage.NewSQLiteKV(dbPath)
	require.NoError(t, err)
	defer func() { _ = external.Close() }()

	b := New()
	defer b.Close()
	signals, cancelSub := b.Subscribe()
	defer cancelSub()

	watcher, err := NewWatcher(dbPath, storage.RecordsKey, local.InstanceID(), local, b)
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()
	watcher.Start(ctx)

	require.NoError(t, external.Set(ctx, storage.RecordsKey, `[]`))

	select {
	case sig := <-signals:
		assert.Equal(t, service.SignalExternalChange, sig.Kind)
	case <-time.After(5 * time.Second):
		t.Fatal("external write produced no signal")
	}
}

func TestWatcherIgnoresOwnWrites(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "watched.db")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	local, err := storage.NewSQLiteKV(dbPath)
	require.NoError(t, err)
	defer func() { _ = local.Close() }()

	b := New()
	defer b.Close()
	signals, cancelSub := b.Subscribe()
	defer cancelSub()

	watcher, err := NewWatcher(dbPath, storage.RecordsKey, local.InstanceID(), local, b)
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()
	watcher.Start(ctx)

	require.NoError(t, local.Set(ctx, storage.RecordsKey, `[]`))

	select {
	case sig := <-signals:
		t.Fatalf("own write surfaced as %s signal", sig.Kind)
	case <-time.After(settleDelay * 4):
		// Silence is the correct outcome: the same-process channel already
		// covered this mutation.
	}
}
