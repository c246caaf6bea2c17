// Package service defines the interfaces wiring the application together.
// Consumers receive these as injected instances constructed once at
// startup; nothing reaches for a global store or a stringly-typed event
// name.
package service

import (
	"context"
	"time"

	"github.com/fraudlens/fraudlens/internal/model"
)

// RecordStore is the contract for the persistent fraud record
// collection. The store exclusively owns the canonical collection; every
// other component holds only transient read-only copies from Load and
// must re-read after a change signal rather than caching across one.
//
// Load never fails from the caller's point of view: missing or corrupt
// persisted data degrades to an empty collection. Mutations surface
// their errors — a failed write may leave persisted state behind what
// the caller believes until the next successful write.
type RecordStore interface {
	Load(ctx context.Context) []model.FraudRecord
	Append(ctx context.Context, record model.FraudRecord) error
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Close() error
}

// Predictor calls the external fraud-scoring service for a transaction.
// Any transport failure, non-2xx status, or unusable response body is
// returned as an error; a nil error guarantees the prediction validated.
type Predictor interface {
	Predict(ctx context.Context, input model.TransactionInput) (model.RawPrediction, error)
}

// SignalKind identifies what kind of store change a signal announces.
type SignalKind string

// Signal kinds. ExternalChange is only ever emitted for mutations made
// by another process; the other three fire once per local mutation.
const (
	SignalRecordAppended SignalKind = "record-appended"
	SignalRecordRemoved  SignalKind = "record-removed"
	SignalStoreCleared   SignalKind = "store-cleared"
	SignalExternalChange SignalKind = "external-change"
)

// Signal announces that the store changed. It deliberately carries no
// record-level payload: subscribers must re-read the full store, never
// apply a diff. Duplicate or reordered signals must be harmless.
type Signal struct {
	At   time.Time
	Kind SignalKind
}

// Publisher is the write side of the change notification bus. Publish is
// fire-and-forget and never blocks the mutation that triggered it.
type Publisher interface {
	Publish(sig Signal)
}

// Bus is the full change notification surface: local publishes plus
// subscriptions covering both local and external change signals.
type Bus interface {
	Publisher
	// Subscribe registers a new subscriber and returns its signal channel
	// along with a cancel function that must be called to release it.
	Subscribe() (<-chan Signal, func())
}
