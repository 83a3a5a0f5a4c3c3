package adapter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-mutual-friends/models"
)

var (
	ErrSecondFactorRequired    = errors.New("second factor required")
	ErrAuthenticationFailed    = errors.New("authentication failed")
	ErrUnsupportedSecondFactor = errors.New("unsupported second factor method")
	ErrRateLimited             = errors.New("rate limited by identity provider")
	ErrUnexpectedResponse      = errors.New("unexpected identity provider response")
)

// SecondFactorError reports which second-factor methods the provider
// offered. It matches [ErrSecondFactorRequired] with [errors.Is].
type SecondFactorError struct {
	Methods []models.SecondFactorMethod
}

func (e *SecondFactorError) Error() string {
	methods := make([]string, len(e.Methods))
	for i, m := range e.Methods {
		methods[i] = string(m)
	}
	return fmt.Sprintf("%s (%s)", ErrSecondFactorRequired, strings.Join(methods, ", "))
}

func (e *SecondFactorError) Unwrap() error {
	return ErrSecondFactorRequired
}

// SecondFactorMethods extracts the offered methods from err, or nil if err
// is not a second-factor request.
func SecondFactorMethods(err error) []models.SecondFactorMethod {
	var sfe *SecondFactorError
	if errors.As(err, &sfe) {
		return sfe.Methods
	}
	return nil
}
