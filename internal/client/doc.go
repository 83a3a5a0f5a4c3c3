// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It picks the phase to run (init, calc or check), drives the terminal UI
// through it and reports failures by error kind.
package client
