package util

import "regexp"

var reSecret = regexp.MustCompile(`(?i)((?:api[_-]?key|secret|token|passw(?:or)?d)[=:]|(?:--?(?:api[_-]?key|secret|token|passw(?:or)?d))\s+)(\S+)`)

// RedactSecrets masks values passed as key=value or as the argument after
// a --token style flag in a command line.
func RedactSecrets(s string) string {
	return reSecret.ReplaceAllString(s, "${1}[redacted]")
}
