package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/faturaflow/faturaflow/internal/classify"
	"github.com/faturaflow/faturaflow/internal/engine"
	"github.com/faturaflow/faturaflow/internal/grammar"
	"github.com/faturaflow/faturaflow/internal/storage"
)

func databasePath() (string, error) {
	dbPath := viper.GetString("database.path")
	if dbPath != "" {
		return dbPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "faturaflow", "faturaflow.db"), nil
}

func openStorage() (*storage.SQLiteStorage, error) {
	dbPath, err := databasePath()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

func buildEngine(store *storage.SQLiteStorage) (*engine.Engine, error) {
	registry, err := grammar.DefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load grammars: %w", err)
	}

	opts := []engine.Option{
		engine.WithLearnedThreshold(viper.GetFloat64("classifier.learned_threshold")),
	}
	if store != nil {
		opts = append(opts, engine.WithLearnedMatcher(classify.NewMatcher(store)))
	}

	return engine.New(registry, opts...), nil
}
