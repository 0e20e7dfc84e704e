// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Volkov

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the tether
// client. It is populated by merging values from environment variables,
// command-line flags, an optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version string.
	App App `envPrefix:"APP_"`

	// Server identifies the Capture server to connect to.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds transport settings for outbound requests.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Discovery holds the static server-candidate list consumed when no
	// explicit host is configured.
	Discovery Discovery `envPrefix:"DISCOVERY_"`

	// Cache bounds the two image cache tiers.
	Cache Cache `envPrefix:"CACHE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config
	// flag; when non-empty the file is parsed and merged on top of the
	// values already loaded.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running client.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server identifies the target Capture server and its credentials.
type Server struct {
	// Host is the server host name or IP address.
	// Env: SERVER_HOST
	Host string `env:"HOST"`

	// Port is the server control port. Capture servers default to 52505.
	// Env: SERVER_PORT
	Port int `env:"PORT"`

	// Password is the optional plain-text session password. It is never
	// sent as-is; the adapter hashes it with SHA-1 per the protocol.
	// Env: SERVER_PASSWORD
	Password string `env:"PASSWORD"`
}

// Adapter holds transport settings for the outbound HTTP client.
type Adapter struct {
	// ProtocolVersion is the protocol tag sent with connectToService.
	// Env: ADAPTER_PROTOCOL_VERSION
	ProtocolVersion string `env:"PROTOCOL_VERSION"`

	// RequestTimeout bounds regular calls (state, image, property).
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// PollTimeout bounds the getServerChanges long poll. Must exceed the
	// server-side hold time (~60 s).
	// Env: ADAPTER_POLL_TIMEOUT
	PollTimeout time.Duration `env:"POLL_TIMEOUT"`
}

// Discovery holds the static list of candidate servers.
type Discovery struct {
	// Candidates is a list of "host:port" entries tried in order when no
	// explicit SERVER_HOST is configured.
	// Env: DISCOVERY_CANDIDATES (comma-separated)
	Candidates []string `env:"CANDIDATES" envSeparator:","`
}

// Cache bounds the image cache tiers. Zero values fall back to defaults.
type Cache struct {
	// ThumbnailEntries caps the number of cached thumbnails.
	// Env: CACHE_THUMBNAIL_ENTRIES
	ThumbnailEntries int `env:"THUMBNAIL_ENTRIES"`

	// ThumbnailCost caps the approximate byte cost of the thumbnail tier.
	// Env: CACHE_THUMBNAIL_COST
	ThumbnailCost int64 `env:"THUMBNAIL_COST"`

	// PreviewEntries caps the number of cached full previews.
	// Env: CACHE_PREVIEW_ENTRIES
	PreviewEntries int `env:"PREVIEW_ENTRIES"`

	// PreviewCost caps the approximate byte cost of the preview tier.
	// Env: CACHE_PREVIEW_COST
	PreviewCost int64 `env:"PREVIEW_COST"`

	// ThumbnailEdge is the long edge, in pixels, requested for thumbnails.
	// Env: CACHE_THUMBNAIL_EDGE
	ThumbnailEdge int `env:"THUMBNAIL_EDGE"`
}

// GetStructuredConfig loads, merges, and validates the client configuration
// from all available sources in the following priority order (earlier sources
// win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source fails
// to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
