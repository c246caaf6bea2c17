// Package pipeline glues the submission flow together: validate the
// input, call the prediction service, classify (or synthesize an error
// record on prediction failure), assign identity, and write through the
// record store. The store's own publisher announces the change.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fraudlens/fraudlens/internal/classify"
	"github.com/fraudlens/fraudlens/internal/common"
	"github.com/fraudlens/fraudlens/internal/model"
	"github.com/fraudlens/fraudlens/internal/service"
)

// Orchestrator drives one transaction submission end to end.
type Orchestrator struct {
	store     service.RecordStore
	predictor service.Predictor
	now       func() time.Time
	newID     func() string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock substitutes the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithIDGenerator substitutes record id generation, for tests.
func WithIDGenerator(newID func() string) Option {
	return func(o *Orchestrator) {
		o.newID = newID
	}
}

// New creates an orchestrator writing through store and scoring via
// predictor.
func New(store service.RecordStore, predictor service.Predictor, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:     store,
		predictor: predictor,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Submit scores and persists one transaction, returning the created
// record. A prediction failure still yields a persisted record — status
// error, score 0, factors describing what went wrong — so every consumer
// renders a uniform shape and the failure stays on the audit trail. If
// ctx is cancelled before the prediction lands (the submitting view went
// away), the late response is discarded and nothing is persisted.
func (o *Orchestrator) Submit(ctx context.Context, input model.TransactionInput) (model.FraudRecord, error) {
	if err := input.Validate(); err != nil {
		return model.FraudRecord{}, common.NewUserError("transaction rejected", fmt.Errorf("%w: %w", common.ErrInvalidInput, err))
	}

	raw, predictErr := o.predictor.Predict(ctx, input)
	if ctx.Err() != nil {
		common.LogDebug("discarding prediction response after cancellation", common.Fields{
			"amount": input.Amount,
		})
		return model.FraudRecord{}, ctx.Err()
	}

	var record model.FraudRecord
	if predictErr != nil {
		common.LogWarn("prediction failed, recording error outcome", common.Fields{
			"error": predictErr.Error(),
		})
		record = errorRecord(input, predictErr)
	} else {
		record = classify.Classify(input, raw)
	}

	record.ID = o.newID()
	record.Timestamp = o.now().UTC().Format(time.RFC3339)

	if err := o.store.Append(ctx, record); err != nil {
		return model.FraudRecord{}, common.NewUserError("failed to save fraud record", err)
	}

	common.LogInfo("fraud record created", common.Fields{
		"id":        record.ID,
		"status":    string(record.Status),
		"riskScore": record.RiskScore,
	})
	return record, nil
}

// errorRecord synthesizes the uniform shape downstream views render when
// the prediction service could not be used. It is visually distinguished
// by its status; the factors say why.
func errorRecord(input model.TransactionInput, cause error) model.FraudRecord {
	return model.FraudRecord{
		Amount:    input.Amount,
		Type:      input.Type,
		Day:       input.Day,
		PairCode:  input.PairCode,
		PartOfDay: input.PartOfDay,
		RiskScore: 0,
		Status:    model.StatusError,
		Factors: []string{
			"Prediction unavailable",
			fmt.Sprintf("Reason: %v", cause),
		},
	}
}
