package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionInputValidate(t *testing.T) {
	valid := TransactionInput{
		Amount:    250,
		Day:       15,
		Type:      TypeTransfer,
		PairCode:  PairCustomerToCustomer,
		PartOfDay: PartEvening,
	}

	tests := []struct {
		name    string
		mutate  func(*TransactionInput)
		wantErr error
	}{
		{"valid input", func(*TransactionInput) {}, nil},
		{"zero amount", func(in *TransactionInput) { in.Amount = 0 }, ErrInvalidAmount},
		{"negative amount", func(in *TransactionInput) { in.Amount = -10 }, ErrInvalidAmount},
		{"NaN amount", func(in *TransactionInput) { in.Amount = math.NaN() }, ErrInvalidAmount},
		{"infinite amount", func(in *TransactionInput) { in.Amount = math.Inf(1) }, ErrInvalidAmount},
		{"day too low", func(in *TransactionInput) { in.Day = 0 }, ErrInvalidDay},
		{"day too high", func(in *TransactionInput) { in.Day = 32 }, ErrInvalidDay},
		{"unknown type", func(in *TransactionInput) { in.Type = "WIRE" }, ErrInvalidType},
		{"lowercase type rejected", func(in *TransactionInput) { in.Type = "payment" }, ErrInvalidType},
		{"unknown pair code", func(in *TransactionInput) { in.PairCode = "merchant-to-merchant" }, ErrInvalidPairCode},
		{"unknown part of day", func(in *TransactionInput) { in.PartOfDay = "midnight" }, ErrInvalidPartOfDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)

			err := input.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTransactionInputBoundaryDays(t *testing.T) {
	for _, day := range []int{1, 31} {
		input := TransactionInput{
			Amount:    1,
			Day:       day,
			Type:      TypeDebit,
			PairCode:  PairCustomerToMerchant,
			PartOfDay: PartNight,
		}
		assert.NoError(t, input.Validate(), "day %d should be accepted", day)
	}
}
