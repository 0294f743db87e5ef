// Package redact scrubs sensitive information from strings before they are
// logged. Error values routinely drag connection strings, credentials, or
// raw SQL along with them; everything that reaches a log sink goes through
// here first.
package redact

import "regexp"

// Placeholder is substituted for every redacted fragment.
const Placeholder = "[REDACTED]"

var patterns = []*regexp.Regexp{
	// Connection strings with inline credentials
	regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`),

	// Credential-looking key/value pairs
	regexp.MustCompile(`(?i)(password|passwd|secret|token|api[_-]?key)(['"\s:=]+)[^'"&\s]{3,}`),

	// JWT tokens (three base64url segments, first two starting with eyJ)
	regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),

	// Email addresses
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),

	// SQL fragments that can leak schema or data
	regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE)\s+[\s\w,*()='"$]+\s+(FROM|INTO|SET|WHERE)\b[^;]*`),
}

// String returns s with every sensitive fragment replaced by the placeholder.
func String(s string) string {
	for _, p := range patterns {
		s = p.ReplaceAllString(s, Placeholder)
	}
	return s
}

// Error returns the redacted message of err, or "" for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
