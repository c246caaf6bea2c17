package project

import (
	"strings"
	"time"

	"github.com/fraudlens/fraudlens/internal/model"
)

// GridRow is the flattened, display-ready shape of one record for
// tabular consumers. Values are preformatted strings so the rendering
// layer has no formatting decisions left to make.
type GridRow struct {
	ID        string
	Time      string
	Type      string
	Amount    float64
	RiskScore int
	Status    model.RecordStatus
	Factors   string
}

// GridRows projects the collection into display rows, preserving the
// store's most-recent-first order. A timestamp that fails to parse is
// shown verbatim rather than dropping the row — the grid is the one
// consumer that must account for every record.
func GridRows(records []model.FraudRecord) []GridRow {
	rows := make([]GridRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, GridRow{
			ID:        r.ID,
			Time:      displayTime(r.Timestamp),
			Type:      string(r.Type),
			Amount:    r.Amount,
			RiskScore: r.RiskScore,
			Status:    r.Status,
			Factors:   strings.Join(r.Factors, "; "),
		})
	}
	return rows
}

func displayTime(timestamp string) string {
	ts, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return timestamp
	}
	return ts.Local().Format("2006-01-02 15:04")
}
