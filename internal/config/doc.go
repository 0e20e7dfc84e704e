// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Volkov

// Package config loads the tether client configuration.
//
// Values are merged from environment variables, command-line flags, an
// optional JSON file, and built-in defaults, in that priority order. The
// merged [StructuredConfig] is validated before use; [GetClientConfig]
// exposes the client-facing view.
package config
