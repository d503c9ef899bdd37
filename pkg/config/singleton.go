package config

import (
	"fmt"
	"sync"
)

var (
	// globalConfig is the process-wide configuration used by the CLI.
	globalConfig *Config

	configMutex sync.RWMutex
	initOnce    sync.Once
)

// Initialize loads the tool configuration once per process and stores it
// globally. An empty path looks for DefaultConfigFile and falls back to
// defaults when it is absent; a non-empty path must exist.
//
// Subsequent calls are ignored.
func Initialize(path string) error {
	var initErr error

	initOnce.Do(func() {
		cfg, err := LoadOrDefault(path, path != "")
		if err != nil {
			initErr = err
			return
		}
		SetConfig(cfg)
	})

	return initErr
}

// GetConfig returns the global configuration, or nil before Initialize.
func GetConfig() *Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalConfig
}

// SetConfig replaces the global configuration. Commands use it after
// applying flag overrides; tests use it to inject fixtures.
func SetConfig(cfg *Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalConfig = cfg
}

// ReloadConfig re-reads path, e.g. when the watch command sees the tool's
// own configuration change. On failure the current configuration is kept.
func ReloadConfig(path string) error {
	cfg, err := LoadOrDefault(path, path != "")
	if err != nil {
		return fmt.Errorf("failed to reload configuration: %w", err)
	}

	SetConfig(cfg)
	return nil
}

// MustGetConfig is GetConfig for code paths that run after a successful
// Initialize. It panics otherwise.
func MustGetConfig() *Config {
	cfg := GetConfig()
	if cfg == nil {
		panic("configuration not initialized: call Initialize first")
	}
	return cfg
}
