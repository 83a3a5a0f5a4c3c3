// Package utils provides general-purpose helper utilities
// used across different parts of the application:
// the preconfigured resty HTTP client and the bundle ID generator.
package utils
