package service

import (
	"errors"

	"github.com/MKhiriev/go-mutual-friends/internal/crypto"
)

var (
	// ErrEmptyInput aliases the crypto sentinel so callers can match either.
	ErrEmptyInput = crypto.ErrEmptyInput

	ErrLoginState = errors.New("login step not allowed in current state")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
