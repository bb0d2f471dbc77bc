// Package types defines the core data structures and capabilities shared by the
// chat model kit. It includes the closed set of provider identifiers, the
// per-request model configuration, the persisted settings snapshot, the
// construction strategy interface implemented by every provider, and the error
// kinds reported while resolving a provider.
package types
