package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/fraudlens/fraudlens/internal/common"
	"github.com/fraudlens/fraudlens/internal/model"
	"github.com/fraudlens/fraudlens/internal/service"
	"github.com/fraudlens/fraudlens/internal/storage"
)

// databasePath resolves the configured database location, defaulting to
// the user's data directory.
func databasePath() (string, error) {
	if path := viper.GetString("db.path"); path != "" {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "fraudlens", "fraudlens.db"), nil
}

// openStore opens the persistent record store, wired to publisher (which
// may be nil for one-shot commands that nothing subscribes to).
func openStore(publisher service.Publisher) (*storage.RecordStore, *storage.SQLiteKV, error) {
	path, err := databasePath()
	if err != nil {
		return nil, nil, err
	}

	kv, err := storage.NewSQLiteKV(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open record database: %w", err)
	}
	return storage.NewRecordStore(kv, publisher), kv, nil
}

// apiURL returns the configured prediction endpoint.
func apiURL() (string, error) {
	url := viper.GetString("api.url")
	if url == "" {
		return "", fmt.Errorf("%w: api.url", common.ErrMissingConfig)
	}
	return url, nil
}

// parseInput assembles and validates a TransactionInput from flag values.
func parseInput(amount float64, day int, txType, pairCode, partOfDay string) (model.TransactionInput, error) {
	input := model.TransactionInput{
		Amount:    amount,
		Day:       day,
		Type:      model.TransactionType(txType),
		PairCode:  model.PairCode(pairCode),
		PartOfDay: model.PartOfDay(partOfDay),
	}
	if err := input.Validate(); err != nil {
		return model.TransactionInput{}, err
	}
	return input, nil
}
