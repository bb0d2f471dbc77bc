// Package settings adapts persisted configuration stores into
// types.SettingsSnapshot values for the resolver. Adapters only read; nothing
// is written back.
package settings

import (
	"errors"
	"fmt"

	"github.com/cecil-the-coder/chatmodel-kit/pkg/types"
)

// Defaults mirrors the values a fresh installation starts with.
func Defaults() types.SettingsSnapshot {
	return types.SettingsSnapshot{
		Temperature:     0.7,
		MaxRetries:      3,
		TopP:            0.9,
		Timeout:         60,
		MaxOutputTokens: 0,
	}
}

// Validate checks the ranges the settings layer guarantees to the resolver.
// The provider name is not checked here; the resolver reports it.
func Validate(s types.SettingsSnapshot) error {
	var errs []error
	if s.Temperature < 0 || s.Temperature > 2 {
		errs = append(errs, fmt.Errorf("temperature %v out of range [0, 2]", s.Temperature))
	}
	if s.TopP < 0 || s.TopP > 1 {
		errs = append(errs, fmt.Errorf("topP %v out of range [0, 1]", s.TopP))
	}
	if s.MaxRetries < 0 {
		errs = append(errs, errors.New("maxRetries cannot be negative"))
	}
	if s.Timeout < 0 {
		errs = append(errs, errors.New("timeout cannot be negative"))
	}
	if s.MaxOutputTokens < 0 {
		errs = append(errs, errors.New("maxOutputTokens cannot be negative"))
	}
	return errors.Join(errs...)
}

// Static serves one fixed snapshot.
type Static struct {
	snapshot types.SettingsSnapshot
}

func NewStatic(s types.SettingsSnapshot) *Static {
	return &Static{snapshot: s}
}

func (s *Static) Snapshot() types.SettingsSnapshot {
	return s.snapshot
}
