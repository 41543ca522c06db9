// Package redact provides utilities for redacting sensitive information
// from error strings before they are logged. Error messages can carry
// connection strings, credentials, tokens, or email addresses; they must
// be scrubbed before entering the log stream and are never written to
// HTTP responses at all.
package redact

import "regexp"

// Redaction placeholders
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
)

// Precompiled redaction patterns
var (
	// Database connection strings with inline credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// password=... / password: ... fragments
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)

	// Standard three-part base64url-encoded JWT tokens
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// Email addresses
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// String returns s with credentials, tokens, and email addresses replaced
// by placeholders.
func String(s string) string {
	s = dbConnRegex.ReplaceAllString(s, RedactedCredentialPlaceholder+"@")
	s = passwordRegex.ReplaceAllString(s, "$1$2"+RedactedCredentialPlaceholder)
	s = jwtTokenRegex.ReplaceAllString(s, RedactedJWTPlaceholder)
	s = emailRegex.ReplaceAllString(s, RedactedEmailPlaceholder)
	return s
}

// Error redacts err's message. Returns an empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
