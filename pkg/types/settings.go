package types

// SettingsSnapshot is a read-only view of the persisted configuration at the
// moment of a call. It is owned by an external settings subsystem.
type SettingsSnapshot struct {
	// DefaultProvider is the persisted provider name, unparsed.
	DefaultProvider string  `json:"provider" yaml:"provider"`
	Temperature     float64 `json:"temperature" yaml:"temperature"`
	MaxRetries      int     `json:"max_retries" yaml:"maxRetries"`
	TopP            float64 `json:"top_p" yaml:"topP"`
	// Timeout in seconds.
	Timeout int `json:"timeout" yaml:"timeout"`
	// MaxOutputTokens of 0 means "use DefaultMaxOutputTokens".
	MaxOutputTokens int `json:"max_output_tokens" yaml:"maxOutputTokens"`
}

// SettingsSource produces the current settings snapshot. Implementations must
// tolerate concurrent external updates between calls.
type SettingsSource interface {
	Snapshot() SettingsSnapshot
}

// SettingsSourceFunc adapts a function to SettingsSource.
type SettingsSourceFunc func() SettingsSnapshot

// Snapshot calls f().
func (f SettingsSourceFunc) Snapshot() SettingsSnapshot {
	return f()
}
