package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Veraticus/subwatch/internal/config"
	"github.com/Veraticus/subwatch/internal/service"
	"github.com/Veraticus/subwatch/internal/storage"
)

// openStore opens the configured subscription store. The special path
// ":memory:" selects the in-memory store, which lives only for the
// duration of the command.
func openStore() (service.Store, error) {
	path := config.ExpandPath(viper.GetString("database.path"))

	if path == ":memory:" {
		return storage.NewMemoryStore(), nil
	}

	if path == "" {
		var err error
		path, err = config.DefaultDatabasePath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
	}

	store, err := storage.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open subscription store: %w", err)
	}
	return store, nil
}
