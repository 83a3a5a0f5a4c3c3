// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer that talks to the identity
// provider holding the user's friend list.
//
// The primary abstraction is [IdentityProvider], which decouples the login
// flow from the underlying protocol. The package ships a VRChat REST
// implementation ([NewVRChatAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrAuthenticationFailed] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-mutual-friends/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// IdentityProvider is the external collaborator that yields the ordered list
// of opaque friend identifiers. Implementations keep the session state
// (cookies) between calls.
type IdentityProvider interface {
	// Authenticate logs in with username and password. If the account has a
	// second factor enabled, the returned error wraps
	// [ErrSecondFactorRequired] and is a *[SecondFactorError] listing the
	// offered methods. Wrong credentials yield [ErrAuthenticationFailed].
	Authenticate(ctx context.Context, creds models.Credentials) (models.Session, error)

	// SubmitSecondFactor verifies code with the given method and completes
	// the login started by Authenticate.
	SubmitSecondFactor(ctx context.Context, method models.SecondFactorMethod, code string) (models.Session, error)

	// ListFriends returns the friend identifiers of the logged-in user in
	// provider order.
	ListFriends(ctx context.Context) ([]string, error)
}
