// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Volkov

// Package client wires the session adapter, long-poll loop, merge engine,
// and image cache into a single connection lifecycle.
package client
