// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-mutual-friends/internal/adapter"
	"github.com/MKhiriev/go-mutual-friends/internal/bundle"
	"github.com/MKhiriev/go-mutual-friends/internal/crypto"
	"github.com/MKhiriev/go-mutual-friends/internal/identifier"
	"github.com/MKhiriev/go-mutual-friends/internal/store"
	"github.com/MKhiriev/go-mutual-friends/internal/validators"
)

// kinds is ordered: more specific kinds first.
var kinds = []struct {
	err  error
	kind string
}{
	{identifier.ErrInvalidFormat, "FormatError"},
	{store.ErrBundleNotFound, "IOError"},
	{store.ErrIO, "IOError"},
	{bundle.ErrDecompression, "DecompressionError"},
	{bundle.ErrTooLarge, "BundleTooLarge"},
	{bundle.ErrDeserialization, "DeserializationError"},
	{bundle.ErrBundleMismatch, "BundleMismatch"},
	{bundle.ErrPassphraseRequired, "PassphraseRequired"},
	{crypto.ErrSealOpen, "PassphraseRejected"},
	{crypto.ErrCryptoConfigMismatch, "CryptoConfigMismatch"},
	{crypto.ErrEmptyInput, "EmptyInputError"},
	{crypto.ErrCapacityExceeded, "CapacityExceeded"},
	{crypto.ErrMalformedCiphertext, "DeserializationError"},
	{validators.ErrMissingBundle, "DeserializationError"},
	{adapter.ErrSecondFactorRequired, "SecondFactorRequired"},
	{adapter.ErrAuthenticationFailed, "AuthenticationFailed"},
	{adapter.ErrUnsupportedSecondFactor, "AuthenticationFailed"},
	{adapter.ErrRateLimited, "ProviderUnavailable"},
	{adapter.ErrUnexpectedResponse, "ProviderUnavailable"},
	{ErrLoginState, "LoginStateError"},
	{context.Canceled, "Canceled"},
	{context.DeadlineExceeded, "Timeout"},
}

// Describe returns the error kind reported to the user together with the
// error text. Unknown errors are reported as "InternalError".
func Describe(err error) (kind, cause string) {
	if err == nil {
		return "", ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind, err.Error()
		}
	}
	return "InternalError", err.Error()
}
