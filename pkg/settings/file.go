package settings

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/cecil-the-coder/chatmodel-kit/pkg/types"
)

// document is the on-disk properties layout. Environment variables override
// the file.
type document struct {
	Provider        string  `yaml:"provider" env:"CHATMODEL_PROVIDER"`
	Temperature     float64 `yaml:"temperature" env:"CHATMODEL_TEMPERATURE"`
	MaxRetries      int     `yaml:"maxRetries" env:"CHATMODEL_MAX_RETRIES"`
	TopP            float64 `yaml:"topP" env:"CHATMODEL_TOP_P"`
	Timeout         int     `yaml:"timeout" env:"CHATMODEL_TIMEOUT"`
	MaxOutputTokens int     `yaml:"maxOutputTokens" env:"CHATMODEL_MAX_OUTPUT_TOKENS"`
}

func documentFrom(s types.SettingsSnapshot) document {
	return document{
		Provider:        s.DefaultProvider,
		Temperature:     s.Temperature,
		MaxRetries:      s.MaxRetries,
		TopP:            s.TopP,
		Timeout:         s.Timeout,
		MaxOutputTokens: s.MaxOutputTokens,
	}
}

func (d document) snapshot() types.SettingsSnapshot {
	return types.SettingsSnapshot{
		DefaultProvider: d.Provider,
		Temperature:     d.Temperature,
		MaxRetries:      d.MaxRetries,
		TopP:            d.TopP,
		Timeout:         d.Timeout,
		MaxOutputTokens: d.MaxOutputTokens,
	}
}

// FileSource serves settings loaded from a YAML properties file. Reload picks
// up external edits; Snapshot may be called concurrently with Reload.
type FileSource struct {
	path string

	mu       sync.RWMutex
	snapshot types.SettingsSnapshot
}

// LoadFile reads path, applies environment overrides and validates the result.
// A missing file yields the defaults.
func LoadFile(path string) (*FileSource, error) {
	f := &FileSource{path: path}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the file the source reads.
func (f *FileSource) Path() string {
	return f.path
}

// Reload re-reads the file. On error the previous snapshot is kept.
func (f *FileSource) Reload() error {
	snap, err := load(f.path)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.snapshot = snap
	f.mu.Unlock()
	return nil
}

// Snapshot returns the most recently loaded settings.
func (f *FileSource) Snapshot() types.SettingsSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snapshot
}

func load(path string) (types.SettingsSnapshot, error) {
	doc := documentFrom(Defaults())

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// defaults apply
		case err != nil:
			return types.SettingsSnapshot{}, fmt.Errorf("failed to read settings file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return types.SettingsSnapshot{}, fmt.Errorf("failed to parse settings file %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&doc); err != nil {
		return types.SettingsSnapshot{}, fmt.Errorf("failed to apply settings environment overrides: %w", err)
	}

	snap := doc.snapshot()
	if err := Validate(snap); err != nil {
		return types.SettingsSnapshot{}, fmt.Errorf("invalid settings: %w", err)
	}
	return snap, nil
}
