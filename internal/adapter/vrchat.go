// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/MKhiriev/go-mutual-friends/internal/config"
	"github.com/MKhiriev/go-mutual-friends/internal/logger"
	"github.com/MKhiriev/go-mutual-friends/internal/utils"
	"github.com/MKhiriev/go-mutual-friends/models"
)

// currentUser is the body of GET /auth/user. When a second factor is still
// pending only RequiresTwoFactorAuth is set.
type currentUser struct {
	models.Session
	RequiresTwoFactorAuth []models.SecondFactorMethod `json:"requiresTwoFactorAuth"`
}

type verifyRequest struct {
	Code string `json:"code"`
}

type verifyResponse struct {
	Verified bool `json:"verified"`
}

type vrchatAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger

	mu      sync.Mutex
	pending []models.SecondFactorMethod
}

// NewVRChatAdapter constructs the VRChat REST implementation of
// [IdentityProvider]. The session cookie issued on login is kept in the
// client's cookie jar and sent with every later request.
//
// Returns an error if cfg.BaseURL cannot be parsed as a valid URL.
func NewVRChatAdapter(cfg config.Adapter, info models.AppBuildInfo, logger *logger.Logger) (IdentityProvider, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout, info.UserAgent())

	return &vrchatAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Authenticate implements [IdentityProvider]. The provider expects both
// basic-auth parts URL-encoded.
func (v *vrchatAdapter) Authenticate(ctx context.Context, creds models.Credentials) (models.Session, error) {
	resp, err := v.client.R().
		SetContext(ctx).
		SetBasicAuth(url.QueryEscape(strings.TrimSpace(creds.Username)), url.QueryEscape(strings.TrimSpace(creds.Password))).
		Get("/auth/user")
	if err != nil {
		return models.Session{}, fmt.Errorf("authenticate request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	return v.session(resp.Body())
}

// SubmitSecondFactor implements [IdentityProvider].
func (v *vrchatAdapter) SubmitSecondFactor(ctx context.Context, method models.SecondFactorMethod, code string) (models.Session, error) {
	if !v.offered(method) {
		return models.Session{}, fmt.Errorf("%w: %q", ErrUnsupportedSecondFactor, method)
	}

	resp, err := v.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(verifyRequest{Code: strings.TrimSpace(code)}).
		Post("/auth/twofactorauth/" + string(method) + "/verify")
	if err != nil {
		return models.Session{}, fmt.Errorf("verify second factor request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	var verified verifyResponse
	if err = json.Unmarshal(resp.Body(), &verified); err != nil {
		return models.Session{}, fmt.Errorf("%w: decode verify response: %v", ErrUnexpectedResponse, err)
	}
	if !verified.Verified {
		return models.Session{}, fmt.Errorf("%w: %s code rejected", ErrAuthenticationFailed, method)
	}
	v.logger.Debug().Str("method", string(method)).Msg("second factor verified")

	return v.currentSession(ctx)
}

// ListFriends implements [IdentityProvider].
func (v *vrchatAdapter) ListFriends(ctx context.Context) ([]string, error) {
	session, err := v.currentSession(ctx)
	if err != nil {
		return nil, err
	}
	v.logger.Debug().Str("user_id", session.UserID).Int("friends", len(session.Friends)).Msg("friend list fetched")
	return session.Friends, nil
}

func (v *vrchatAdapter) currentSession(ctx context.Context) (models.Session, error) {
	resp, err := v.client.R().
		SetContext(ctx).
		Get("/auth/user")
	if err != nil {
		return models.Session{}, fmt.Errorf("current user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	return v.session(resp.Body())
}

func (v *vrchatAdapter) session(body []byte) (models.Session, error) {
	var user currentUser
	if err := json.Unmarshal(body, &user); err != nil {
		return models.Session{}, fmt.Errorf("%w: decode current user: %v", ErrUnexpectedResponse, err)
	}

	v.mu.Lock()
	v.pending = user.RequiresTwoFactorAuth
	v.mu.Unlock()

	if len(user.RequiresTwoFactorAuth) > 0 {
		return models.Session{}, &SecondFactorError{Methods: user.RequiresTwoFactorAuth}
	}
	if user.UserID == "" {
		return models.Session{}, fmt.Errorf("%w: current user without id", ErrUnexpectedResponse)
	}

	return user.Session, nil
}

func (v *vrchatAdapter) offered(method models.SecondFactorMethod) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Contains(v.pending, method)
}
