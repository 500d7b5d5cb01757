// Package redact strips sensitive values from error text before it is logged.
// Database drivers echo DSNs, SQL literals, file paths and host addresses in
// their errors; none of that belongs in a log line.
package redact

import "regexp"

// Placeholders substituted for redacted values.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedValuePlaceholder      = "[REDACTED_VALUE]"
	RedactedSQLValuesPlaceholder  = "[SQL_VALUES_REDACTED]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order; earlier rules consume text later ones would
// otherwise partially match (e.g. the userinfo part of a DSN).
var rules = []rule{
	{
		// scheme://user:password@
		regexp.MustCompile(`(?i)\b(?:postgres(?:ql)?|sqlite3?|file)://[^@\s/]+@`),
		RedactedCredentialPlaceholder,
	},
	{
		// key=value DSN parameters
		regexp.MustCompile(`(?i)\b(?:password|passwd|pwd)\s*[=:]\s*\S+`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\bVALUES\s*\([^)]*\)`),
		"VALUES " + RedactedSQLValuesPlaceholder,
	},
	{
		// quoted SQL string literals
		regexp.MustCompile(`'(?:[^']|'')*'`),
		RedactedValuePlaceholder,
	},
	{
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		RedactedEmailPlaceholder,
	},
	{
		regexp.MustCompile(`(?:/[\w.-]+){2,}`),
		RedactedPathPlaceholder,
	},
	{
		regexp.MustCompile(`\b\d{1,3}(?:\.\d{1,3}){3}(?::\d{1,5})?\b`),
		RedactedHostPlaceholder,
	},
	{
		regexp.MustCompile(`\b[A-Za-z][\w.-]*:\d{2,5}\b`),
		RedactedHostPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
