// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-mutual-friends/internal/adapter"
)

// ErrUserQuit is returned when the user leaves a prompt with ctrl+c.
var ErrUserQuit = errors.New("вышел из программы")

// humanizeError shortens provider and network errors shown under a form.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, adapter.ErrAuthenticationFailed):
		return "Неверный логин, пароль или код"
	case errors.Is(err, adapter.ErrRateLimited):
		return "Слишком много попыток, повторите позже"
	case errors.Is(err, adapter.ErrUnsupportedSecondFactor):
		return "Этот способ подтверждения недоступен"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или сервер недоступен"
	}

	return err.Error()
}
