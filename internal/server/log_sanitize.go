package server

import (
	"regexp"
)

// controlChars matches non-printable characters that model or user text can
// smuggle into a log line (everything below 0x20 except tab).
var controlChars = regexp.MustCompile(`[\x00-\x08\x0b-\x1f\x7f]`)

// SanitizeLogLines performs minimal redaction on log lines for safe exposure
func SanitizeLogLines(lines []string) []string {
	if len(lines) == 0 {
		return lines
	}
	out := make([]string, len(lines))
	credentialPatterns := []struct {
		regex       *regexp.Regexp
		replacement string
	}{
		{regex: regexp.MustCompile(`(?i)password=[^\s]+`), replacement: "password=[redacted]"},
		{regex: regexp.MustCompile(`(?i)api_key=[^\s]+`), replacement: "api_key=[redacted]"},
		{regex: regexp.MustCompile(`(?i)apikey=[^\s]+`), replacement: "apikey=[redacted]"},
		{regex: regexp.MustCompile(`(?i)secret=[^\s]+`), replacement: "secret=[redacted]"},
		{regex: regexp.MustCompile(`(?i)token=[^\s]+`), replacement: "token=[redacted]"},
		{regex: regexp.MustCompile(`(?i)access_key=[^\s]+`), replacement: "access_key=[redacted]"},
		{regex: regexp.MustCompile(`(?i)secret_key=[^\s]+`), replacement: "secret_key=[redacted]"},
		{regex: regexp.MustCompile(`(?i)session_token=[^\s]+`), replacement: "session_token=[redacted]"},
		{regex: regexp.MustCompile(`(?i)authorization:\s*bearer\s+[a-z0-9\-._~+/=]+`), replacement: "authorization: Bearer [redacted]"},
		{regex: regexp.MustCompile(`AKIA[0-9A-Z]{16}`), replacement: "[redacted access key id]"},
		{regex: regexp.MustCompile(`(?i)-----BEGIN( RSA)? PRIVATE KEY-----[\s\S]+?-----END( RSA)? PRIVATE KEY-----`), replacement: "[redacted private key]"},
		{regex: regexp.MustCompile(`(?i)https?://[^:@\s]+:[^@\s]+@`), replacement: "http://[redacted]:[redacted]@"},
		{regex: regexp.MustCompile(`(?i)masterUsername[:=]\s*[^\s,}]+`), replacement: "masterUsername=[redacted]"},
		{regex: regexp.MustCompile(`(?i)(aws_|gcp_|azure_)?(access|secret|session)_key[^\s]*=\S+`), replacement: "$1$2_key=[redacted]"},
		{regex: regexp.MustCompile(`(?i)(env|environment)\s+variable\s+[A-Z0-9_]+=[^\s]+`), replacement: "environment variable [redacted]"},
		{regex: regexp.MustCompile(`(?i)(password|secret|token)\s*"[^"]+"`), replacement: "$1\"[redacted]\""},
		{regex: regexp.MustCompile(`(?i)(password|secret|token)\s*'[^']+'`), replacement: "$1'[redacted]'"},
	}

	for i, l := range lines {
		l = controlChars.ReplaceAllString(l, "")
		for _, pattern := range credentialPatterns {
			l = pattern.regex.ReplaceAllString(l, pattern.replacement)
		}
		out[i] = l
	}
	return out
}
