// Package resolver decides which provider handles a chat request and builds
// the client for it.
//
// A request is resolved in three steps: the provider is chosen (explicit
// override, else the persisted default, else the resolver's own default), a
// ModelConfig is merged from the persisted settings and the request, and the
// provider's construction strategy is looked up in the registry and invoked
// once with that config.
//
// Settings are read from the SettingsSource on every call; nothing is cached.
package resolver
