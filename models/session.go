package models

// SecondFactorMethod names a second-factor verification channel offered by
// the identity provider.
type SecondFactorMethod string

const (
	SecondFactorTOTP     SecondFactorMethod = "totp"
	SecondFactorEmailOTP SecondFactorMethod = "emailotp"
	SecondFactorOTP      SecondFactorMethod = "otp"
)

// Session is an authenticated identity-provider session.
type Session struct {
	// UserID is the provider identifier of the logged-in user
	// (usr_xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx).
	UserID string `json:"id"`

	// DisplayName is shown in the TUI after login.
	DisplayName string `json:"displayName"`

	// Friends lists the provider identifiers of the user's friends in the
	// order returned by the provider.
	Friends []string `json:"friends"`
}

// Credentials are the username and password typed by the user.
type Credentials struct {
	Username string
	Password string
}
