package history

import (
	"fmt"

	"runbeam/harmony-validator/pkg/config"
	"runbeam/harmony-validator/pkg/telemetry/logging"
)

// Open creates the store selected by cfg.Backend.
func Open(cfg config.HistoryConfig, logger *logging.Logger) (Store, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryStore(cfg.Memory.MaxRecords), nil
	case "sqlite", "":
		return NewSQLiteStore(cfg.SQLite, logger)
	default:
		return nil, fmt.Errorf("unsupported history backend %q", cfg.Backend)
	}
}
