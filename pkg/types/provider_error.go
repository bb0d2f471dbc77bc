package types

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownProvider matches any *UnknownProviderError.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrInvalidProviderName matches any *InvalidProviderNameError.
	ErrInvalidProviderName = errors.New("invalid provider name")
)

// UnknownProviderError reports a resolved provider with no registered
// construction strategy. It means the registry and the enumeration have
// drifted apart and must be treated as fatal.
type UnknownProviderError struct {
	Provider ProviderType
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("no chat model factory registered for provider %q", string(e.Provider))
}

// Is reports whether target is ErrUnknownProvider.
func (e *UnknownProviderError) Is(target error) bool {
	return target == ErrUnknownProvider
}

// InvalidProviderNameError reports a provider name that does not match any
// ProviderType, typically corrupted or stale persisted state.
type InvalidProviderNameError struct {
	Raw string
}

func (e *InvalidProviderNameError) Error() string {
	if e.Raw == "" {
		return fmt.Sprintf("no provider configured (expected one of: %s)", ProviderTypeNames())
	}
	return fmt.Sprintf("invalid provider name %q (expected one of: %s)", e.Raw, ProviderTypeNames())
}

// Is reports whether target is ErrInvalidProviderName.
func (e *InvalidProviderNameError) Is(target error) bool {
	return target == ErrInvalidProviderName
}
