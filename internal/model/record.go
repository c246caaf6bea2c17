// Package model defines the core domain models used throughout the application.
package model

// RecordStatus is the terminal classification outcome assigned to a record.
type RecordStatus string

// Record status constants.
const (
	StatusNormal     RecordStatus = "normal"
	StatusSuspicious RecordStatus = "suspicious"
	StatusFraud      RecordStatus = "fraud"
	StatusError      RecordStatus = "error"
)

// Valid reports whether s is one of the known record statuses.
func (s RecordStatus) Valid() bool {
	switch s {
	case StatusNormal, StatusSuspicious, StatusFraud, StatusError:
		return true
	}
	return false
}

// FraudRecord is the persisted outcome of classifying one submitted
// transaction. Records are immutable once created; deletion followed by
// re-creation is the only way to change one.
//
// Timestamp is kept as an ISO-8601 string rather than a time.Time because
// previously persisted data may hold values this code did not write;
// consumers that need a time.Time must parse it and handle failure.
type FraudRecord struct {
	ID        string          `json:"id"`
	Timestamp string          `json:"timestamp"`
	Amount    float64         `json:"amount"`
	Type      TransactionType `json:"type"`
	Day       int             `json:"day"`
	PairCode  PairCode        `json:"pairCode"`
	PartOfDay PartOfDay       `json:"partOfDay"`
	RiskScore int             `json:"riskScore"`
	Status    RecordStatus    `json:"status"`
	Factors   []string        `json:"factors"`
}
