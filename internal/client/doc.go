// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the operator console runtime.
//
// It starts the collection engines, the optional status server and the
// terminal UI, and tears them down in reverse order when the operator quits.
package client
