package model

import (
	"errors"
	"fmt"
	"math"
)

// TransactionType describes the kind of transaction being scored.
type TransactionType string

// Transaction type constants, matching the prediction service's vocabulary.
const (
	TypePayment  TransactionType = "PAYMENT"
	TypeTransfer TransactionType = "TRANSFER"
	TypeCashOut  TransactionType = "CASH_OUT"
	TypeCashIn   TransactionType = "CASH_IN"
	TypeDebit    TransactionType = "DEBIT"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypePayment, TypeTransfer, TypeCashOut, TypeCashIn, TypeDebit:
		return true
	}
	return false
}

// PairCode identifies the parties on each side of a transaction.
type PairCode string

// Pair code constants.
const (
	PairCustomerToCustomer PairCode = "customer-to-customer"
	PairCustomerToMerchant PairCode = "customer-to-merchant"
)

// Valid reports whether p is one of the known pair codes.
func (p PairCode) Valid() bool {
	return p == PairCustomerToCustomer || p == PairCustomerToMerchant
}

// PartOfDay is the coarse time-of-day bucket a transaction occurred in.
type PartOfDay string

// Part-of-day constants.
const (
	PartMorning   PartOfDay = "morning"
	PartAfternoon PartOfDay = "afternoon"
	PartEvening   PartOfDay = "evening"
	PartNight     PartOfDay = "night"
)

// Valid reports whether p is one of the known part-of-day values.
func (p PartOfDay) Valid() bool {
	switch p {
	case PartMorning, PartAfternoon, PartEvening, PartNight:
		return true
	}
	return false
}

// Input validation errors.
var (
	ErrInvalidAmount    = errors.New("amount must be a positive finite number")
	ErrInvalidDay       = errors.New("day must be between 1 and 31")
	ErrInvalidType      = errors.New("unknown transaction type")
	ErrInvalidPairCode  = errors.New("unknown transaction pair code")
	ErrInvalidPartOfDay = errors.New("unknown part of day")
)

// TransactionInput is the user-supplied description of a transaction to
// score. It is immutable once submitted.
type TransactionInput struct {
	Amount    float64         `json:"amount"`
	Day       int             `json:"day"`
	Type      TransactionType `json:"type"`
	PairCode  PairCode        `json:"transaction_pair_code"`
	PartOfDay PartOfDay       `json:"part_of_the_day"`
}

// Validate checks every field and returns the first violation found.
func (in TransactionInput) Validate() error {
	if in.Amount <= 0 || math.IsInf(in.Amount, 0) || math.IsNaN(in.Amount) {
		return fmt.Errorf("%w: got %v", ErrInvalidAmount, in.Amount)
	}
	if in.Day < 1 || in.Day > 31 {
		return fmt.Errorf("%w: got %d", ErrInvalidDay, in.Day)
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, in.Type)
	}
	if !in.PairCode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPairCode, in.PairCode)
	}
	if !in.PartOfDay.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPartOfDay, in.PartOfDay)
	}
	return nil
}
