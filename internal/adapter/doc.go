// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Volkov

// Package adapter implements the transport layer talking to a Capture
// tethering server.
//
// The primary abstraction is [SessionAPI]: a session-scoped HTTP client that
// connects with connectToService, then issues getServerState /
// getServerChanges / getImage / setProperty calls carrying the session id.
//
// Error values defined in errors.go form the client-wide error taxonomy;
// callers are expected to branch with [errors.Is] rather than inspect HTTP
// status codes.
package adapter
