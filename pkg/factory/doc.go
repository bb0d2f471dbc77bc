// Package factory provides the provider registry: an immutable table mapping
// every provider type to its chat model construction strategy, plus the
// default table wiring each supported backend.
package factory
