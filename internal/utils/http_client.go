package utils

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://api.vrchat.cloud/api/1", 30*time.Second, "go-mutual-friends/1.0.0")
//	resp, err := client.R().Get("/auth/user")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance bound to
// baseURL. Every request carries userAgent and gives up after timeout.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and cookie jar, so session cookies set by
// one provider login never leak into another.
func NewHTTPClient(baseURL string, timeout time.Duration, userAgent string) *HTTPClient {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		cli.SetTimeout(timeout)
	}
	return &HTTPClient{Client: cli}
}
