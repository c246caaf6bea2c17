package bus

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fraudlens/fraudlens/internal/common"
	"github.com/fraudlens/fraudlens/internal/service"
)

// settleDelay coalesces the burst of filesystem events a single SQLite
// write produces (main db, -wal and -shm files) into one signal.
const settleDelay = 150 * time.Millisecond

// OriginReader reports which store instance last wrote a key. The
// watcher uses it to tell this process's writes apart from another
// process's — only the latter may surface as an external change signal.
type OriginReader interface {
	LastWriter(ctx context.Context, key string) (string, error)
}

// Watcher raises SignalExternalChange when another process mutates the
// persisted record collection. It watches the database file's directory,
// waits for the write burst to settle, then checks the last-writer stamp
// and stays silent for writes made through this process's own handle —
// those already produced a same-process signal from the store itself.
type Watcher struct {
	fsw       *fsnotify.Watcher
	origin    OriginReader
	publisher service.Publisher
	dbPath    string
	key       string
	selfID    string
	done      chan struct{}
}

// NewWatcher creates a watcher for the database at dbPath. selfID is the
// owning store handle's instance id.
func NewWatcher(dbPath, key, selfID string, origin OriginReader, publisher service.Publisher) (*Watcher, error) {
	if dbPath == ":memory:" {
		return nil, fmt.Errorf("cannot watch an in-memory database")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}

	if err := fsw.Add(filepath.Dir(dbPath)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch database directory: %w", err)
	}

	return &Watcher{
		fsw:       fsw,
		origin:    origin,
		publisher: publisher,
		dbPath:    dbPath,
		key:       key,
		selfID:    selfID,
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching in a background goroutine until ctx is cancelled
// or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.run(ctx)
}

// Close stops the watcher and releases the filesystem watch.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
	default:
		close(w.done)
	}
	return w.fsw.Close()
}

func (w *Watcher) run(ctx context.Context) {
	// The timer is parked until a relevant event arrives.
	settle := time.NewTimer(settleDelay)
	if !settle.Stop() {
		<-settle.C
	}

	base := filepath.Base(w.dbPath)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !strings.HasPrefix(filepath.Base(event.Name), base) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			settle.Reset(settleDelay)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			common.LogWarn("filesystem watcher error", common.Fields{"error": err.Error()})
		case <-settle.C:
			w.checkOrigin(ctx)
		}
	}
}

// checkOrigin publishes an external-change signal unless the last write
// came from this process's own store handle.
func (w *Watcher) checkOrigin(ctx context.Context) {
	writer, err := w.origin.LastWriter(ctx, w.key)
	if err != nil {
		common.LogWarn("failed to read last-writer stamp", common.Fields{
			"key":   w.key,
			"error": err.Error(),
		})
		return
	}
	if writer == "" || writer == w.selfID {
		return
	}

	w.publisher.Publish(service.Signal{
		At:   time.Now().UTC(),
		Kind: service.SignalExternalChange,
	})
}
