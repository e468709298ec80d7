package storage

import (
	"fmt"

	"paramrun/internal/config"
	"paramrun/internal/domain"
)

// Storage persists and loads the last run (e.g. for the failures viewer).
// Saving an output that was loaded before replaces it, which is how the
// viewer persists resolved flags.
type Storage interface {
	Save(output *domain.RunOutput) error
	Load() (*domain.RunOutput, error)
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

// New returns the store selected by cfg.Store
func New(cfg *config.Config) (Storage, error) {
	switch cfg.Store {
	case "", "json":
		return NewJSONStorage(cfg), nil
	case "mysql":
		return NewMySQLStorage(cfg.MySQLDSN)
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
