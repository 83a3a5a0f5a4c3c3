package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-mutual-friends/internal/adapter"
	"github.com/MKhiriev/go-mutual-friends/internal/logger"
	"github.com/MKhiriev/go-mutual-friends/models"
)

// LoginState is a step of the identity-provider login.
type LoginState int

const (
	AwaitingCredentials LoginState = iota
	AwaitingSecondFactor
	Authenticated
)

func (s LoginState) String() string {
	switch s {
	case AwaitingCredentials:
		return "awaiting credentials"
	case AwaitingSecondFactor:
		return "awaiting second factor"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("LoginState(%d)", int(s))
	}
}

// LoginFlow drives the identity provider through
// AwaitingCredentials → (AwaitingSecondFactor) → Authenticated.
// A failed step keeps the current state so it can be retried; calling a
// step out of order returns [ErrLoginState].
type LoginFlow struct {
	provider adapter.IdentityProvider
	logger   *logger.Logger

	mu      sync.Mutex
	state   LoginState
	methods []models.SecondFactorMethod
	session models.Session
}

func NewLoginFlow(provider adapter.IdentityProvider, log *logger.Logger) *LoginFlow {
	return &LoginFlow{provider: provider, logger: log}
}

// State returns the current step.
func (f *LoginFlow) State() LoginState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Methods returns the second-factor methods offered by the provider.
func (f *LoginFlow) Methods() []models.SecondFactorMethod {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.methods
}

// Session returns the authenticated session, or a zero value before login.
func (f *LoginFlow) Session() models.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

// SubmitCredentials starts the login.
func (f *LoginFlow) SubmitCredentials(ctx context.Context, creds models.Credentials) (LoginState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != AwaitingCredentials {
		return f.state, fmt.Errorf("%w: credentials submitted while %s", ErrLoginState, f.state)
	}

	session, err := f.provider.Authenticate(ctx, creds)
	switch {
	case err == nil:
		f.authenticated(session)
	case errors.Is(err, adapter.ErrSecondFactorRequired):
		f.state = AwaitingSecondFactor
		f.methods = adapter.SecondFactorMethods(err)
		f.logger.Info().Interface("methods", f.methods).Msg("second factor required")
	default:
		return f.state, fmt.Errorf("login: %w", err)
	}

	return f.state, nil
}

// SubmitSecondFactor completes a login that requires a second factor. An
// empty method selects the first one the provider offered.
func (f *LoginFlow) SubmitSecondFactor(ctx context.Context, method models.SecondFactorMethod, code string) (LoginState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != AwaitingSecondFactor {
		return f.state, fmt.Errorf("%w: second factor submitted while %s", ErrLoginState, f.state)
	}
	if method == "" && len(f.methods) > 0 {
		method = f.methods[0]
	}

	session, err := f.provider.SubmitSecondFactor(ctx, method, code)
	if err != nil {
		return f.state, fmt.Errorf("second factor: %w", err)
	}

	f.authenticated(session)
	return f.state, nil
}

// Friends fetches the friend list of the authenticated user.
func (f *LoginFlow) Friends(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != Authenticated {
		return nil, fmt.Errorf("%w: friends requested while %s", ErrLoginState, f.state)
	}

	friends, err := f.provider.ListFriends(ctx)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	return friends, nil
}

func (f *LoginFlow) authenticated(session models.Session) {
	f.state = Authenticated
	f.methods = nil
	f.session = session
	f.logger.Info().Str("user_id", session.UserID).Str("display_name", session.DisplayName).Msg("logged in")
}
