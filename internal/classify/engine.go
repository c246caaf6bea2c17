// Package classify implements the risk classification engine: a pure
// mapping from a validated prediction response plus transaction
// attributes to a status, a risk score, and an explainable factor list.
package classify

import (
	"math"

	"github.com/fraudlens/fraudlens/internal/model"
)

// Status thresholds. The explicit fraud flag always wins; probabilities
// strictly above SuspiciousThreshold are suspicious, everything else is
// normal.
const (
	SuspiciousThreshold = 0.3
	highScoreThreshold  = 0.7
	unusualThreshold    = 0.5
	highAmountThreshold = 1000
)

// Factor strings appended to a record's explanation list. Order of
// evaluation is fixed; callers may rely on it.
const (
	FactorHighAmount      = "High transaction amount"
	FactorUnusualTime     = "Unusual transaction time"
	FactorCashOut         = "Cash out transaction"
	FactorHighProbability = "High fraud probability score"
	FactorUnusualPattern  = "Unusual transaction pattern"
)

// Classify maps a transaction and its validated prediction to a
// FraudRecord. It is pure: identical inputs always produce an identical
// status, risk score, and factor list. The caller owns id and timestamp
// assignment, and must have checked raw.Validate() first — an unvalidated
// response is a prediction failure, not classification input.
func Classify(input model.TransactionInput, raw model.RawPrediction) model.FraudRecord {
	probability := raw.ProbabilityValue()

	var status model.RecordStatus
	switch {
	case raw.FraudFlag():
		status = model.StatusFraud
	case probability > SuspiciousThreshold:
		status = model.StatusSuspicious
	default:
		status = model.StatusNormal
	}

	return model.FraudRecord{
		Amount:    input.Amount,
		Type:      input.Type,
		Day:       input.Day,
		PairCode:  input.PairCode,
		PartOfDay: input.PartOfDay,
		RiskScore: riskScore(probability),
		Status:    status,
		Factors:   factors(input, probability),
	}
}

// riskScore converts a probability to an integer score, clamped to
// [0,100] so malformed inputs can never escape the documented range.
func riskScore(probability float64) int {
	score := int(math.Round(probability * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// factors derives the explanation list. Each predicate appends its fixed
// string in this exact order; duplicates are never removed.
func factors(input model.TransactionInput, probability float64) []string {
	fs := []string{}
	if input.Amount > highAmountThreshold {
		fs = append(fs, FactorHighAmount)
	}
	if input.PartOfDay == model.PartNight {
		fs = append(fs, FactorUnusualTime)
	}
	if input.Type == model.TypeCashOut {
		fs = append(fs, FactorCashOut)
	}
	if probability > highScoreThreshold {
		fs = append(fs, FactorHighProbability)
	}
	if probability > unusualThreshold {
		fs = append(fs, FactorUnusualPattern)
	}
	return fs
}
