package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fraudlens/fraudlens/internal/common"
	"github.com/fraudlens/fraudlens/internal/model"
	"github.com/fraudlens/fraudlens/internal/service"
)

// RecordsKey is the single kv key under which the full record collection
// is persisted, as a JSON array ordered most-recent-first.
const RecordsKey = "fraud_records"

// RecordStore implements service.RecordStore on top of a SQLiteKV
// handle. Every mutation is a whole-collection read-modify-write: the
// current array is loaded, adjusted, and written back. There is no
// cross-process locking, so two processes mutating concurrently race and
// the last full-collection write wins. That lost-update window is an
// accepted limitation of the single-key layout; fixing it would mean
// moving the canonical collection behind a server, not adding locks here.
type RecordStore struct {
	kv        *SQLiteKV
	publisher service.Publisher
}

// NewRecordStore creates a record store over kv. The publisher receives
// one signal per successful mutation; it may be nil when nothing
// subscribes (e.g. one-shot CLI invocations).
func NewRecordStore(kv *SQLiteKV, publisher service.Publisher) *RecordStore {
	return &RecordStore{
		kv:        kv,
		publisher: publisher,
	}
}

// Load returns the persisted collection, most-recent-first. Missing or
// corrupt data degrades to an empty collection — the underlying storage
// is left untouched until the next successful write replaces it.
func (s *RecordStore) Load(ctx context.Context) []model.FraudRecord {
	raw, ok, err := s.kv.Get(ctx, RecordsKey)
	if err != nil {
		common.LogWarn("record store read failed, serving empty collection", common.Fields{
			"key":   RecordsKey,
			"error": err.Error(),
		})
		return []model.FraudRecord{}
	}
	if !ok {
		return []model.FraudRecord{}
	}

	var records []model.FraudRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		common.LogWarn("persisted record data corrupted, serving empty collection", common.Fields{
			"key":   RecordsKey,
			"error": err.Error(),
		})
		return []model.FraudRecord{}
	}
	if records == nil {
		return []model.FraudRecord{}
	}
	return records
}

// Append prepends record to the collection and writes the whole
// collection back. Write failures are returned to the caller; persisted
// state then lags what the caller submitted until a later write succeeds.
func (s *RecordStore) Append(ctx context.Context, record model.FraudRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(&record); err != nil {
		return err
	}

	records := s.Load(ctx)
	updated := make([]model.FraudRecord, 0, len(records)+1)
	updated = append(updated, record)
	updated = append(updated, records...)

	if err := s.write(ctx, updated); err != nil {
		return err
	}

	s.publish(service.SignalRecordAppended)
	return nil
}

// Remove drops every record whose id matches and writes the remainder
// back. An unknown id is a no-op, not an error.
func (s *RecordStore) Remove(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	records := s.Load(ctx)
	remaining := make([]model.FraudRecord, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			remaining = append(remaining, r)
		}
	}

	if err := s.write(ctx, remaining); err != nil {
		return err
	}

	s.publish(service.SignalRecordRemoved)
	return nil
}

// Clear replaces the collection with an empty one.
func (s *RecordStore) Clear(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if err := s.write(ctx, []model.FraudRecord{}); err != nil {
		return err
	}

	s.publish(service.SignalStoreCleared)
	return nil
}

// Close closes the underlying database handle.
func (s *RecordStore) Close() error {
	return s.kv.Close()
}

func (s *RecordStore) write(ctx context.Context, records []model.FraudRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStoreWrite, err)
	}
	if err := s.kv.Set(ctx, RecordsKey, string(data)); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStoreWrite, err)
	}
	return nil
}

// publish emits a change signal after a committed write. The mutation is
// the source of truth; notification is best-effort and must never undo it.
func (s *RecordStore) publish(kind service.SignalKind) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(service.Signal{
		At:   time.Now().UTC(),
		Kind: kind,
	})
}
