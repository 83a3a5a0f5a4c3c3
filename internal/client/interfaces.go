// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

//go:generate mockgen -source=interfaces.go -destination=../mock/client_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-mutual-friends/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI is the interactive surface the application drives. The terminal
// implementation lives in internal/tui.
type UI interface {
	// SelectMode asks which phase to run.
	SelectMode(ctx context.Context) (string, error)

	// Login signs in to the identity provider and returns the friend list.
	Login(ctx context.Context) ([]string, error)

	// RunPhase runs phase while showing its progress.
	RunPhase(ctx context.Context, title string, phase func(ctx context.Context) error) error

	ShowEnrollment(ctx context.Context, e models.Enrollment) error
	ShowComputation(ctx context.Context, c models.Computation) error
	ShowReport(ctx context.Context, r models.RevealReport) error
	ShowHistory(ctx context.Context, items []models.Enrollment) error
	ShowError(ctx context.Context, kind, cause string) error
}
