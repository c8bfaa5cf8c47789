// Package file provides the TOML-backed configuration store.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driven"
	"github.com/weft-labs/sigscout-cli/internal/logger"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is a file-based implementation of driven.ConfigStore
// using TOML. The configuration lives in a single file within the
// sigscout config directory.
type ConfigStore struct {
	mu       sync.Mutex
	filePath string
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.sigscout/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".sigscout")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	return &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Path returns the config file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Load reads the persisted configuration, returning the defaults when
// no file has been written yet. Unknown sources and cadences present
// in the file are preserved as-is; missing known ones are backfilled
// with defaults so partial files behave predictably.
func (s *ConfigStore) Load(_ context.Context) (domain.PipelineConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		return domain.DefaultPipelineConfig(), nil
	}
	if err != nil {
		return domain.PipelineConfig{}, fmt.Errorf("reading config file: %w", err)
	}

	cfg := domain.DefaultPipelineConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return domain.PipelineConfig{}, fmt.Errorf("parsing config file: %w", err)
	}
	if cfg.Sources == nil {
		cfg.Sources = domain.DefaultPipelineConfig().Sources
	}
	if cfg.FetchIntervals == nil {
		cfg.FetchIntervals = domain.DefaultPipelineConfig().FetchIntervals
	}
	return cfg, nil
}

// Save persists the configuration atomically: write to a temp file in
// the same directory, then rename over the target.
func (s *ConfigStore) Save(_ context.Context, cfg domain.PipelineConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.filePath), ".config-*.toml")
	if err != nil {
		return fmt.Errorf("creating temp config file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp config file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting config file permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.filePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing config file: %w", err)
	}
	return nil
}

// Watch invokes fn whenever the config file changes on disk, until the
// context is cancelled. External edits to the file trigger fn exactly
// like in-process saves; fn runs on the watcher goroutine and should
// return quickly.
func (s *ConfigStore) Watch(ctx context.Context, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}

	// Watch the directory, not the file: atomic rename-based saves
	// replace the inode and a file watch would go stale.
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching config directory: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.filePath {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				logger.Debug("Config file changed: %s", event.Op)
				fn()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Config watcher error: %v", err)
			}
		}
	}()

	return nil
}
