package predict

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudlens/fraudlens/internal/common"
	"github.com/fraudlens/fraudlens/internal/model"
)

func testInput() model.TransactionInput {
	return model.TransactionInput{
		Amount:    750,
		Day:       21,
		Type:      model.TypeTransfer,
		PairCode:  model.PairCustomerToCustomer,
		PartOfDay: model.PartEvening,
	}
}

func TestClientPredict(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"isFraud": false, "probability": 0.42, "model_version": "3"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	raw, err := client.Predict(context.Background(), testInput())
	require.NoError(t, err)

	require.NotNil(t, raw.IsFraud)
	assert.False(t, *raw.IsFraud)
	require.NotNil(t, raw.Probability)
	assert.Equal(t, 0.42, *raw.Probability)

	// Wire field names are the scoring service's vocabulary, not ours.
	assert.Equal(t, 750.0, gotBody["amount"])
	assert.Equal(t, 21.0, gotBody["day"])
	assert.Equal(t, "TRANSFER", gotBody["type"])
	assert.Equal(t, "customer-to-customer", gotBody["transaction_pair_code"])
	assert.Equal(t, "evening", gotBody["part_of_the_day"])
}

func TestClientPredictFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "internal error", http.StatusInternalServerError)
			},
			wantErr: common.ErrPredictionFailed,
		},
		{
			name: "malformed JSON body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"probability": `))
			},
			wantErr: common.ErrPredictionResponse,
		},
		{
			name: "response carries no signal",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"model_version": "3"}`))
			},
			wantErr: common.ErrPredictionResponse,
		},
		{
			name: "probability out of range",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"probability": 3.5}`))
			},
			wantErr: common.ErrPredictionResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := NewClient(server.URL).Predict(context.Background(), testInput())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClientPredictNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // Shut down before calling: connection refused.

	_, err := NewClient(server.URL).Predict(context.Background(), testInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrPredictionFailed)
}

func TestClientPredictHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"probability": 0.1}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Predict(ctx, testInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
