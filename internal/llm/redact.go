package llm

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

const redacted = "[REDACTED]"

// RedactString replaces every secret in s and truncates the result to limit
// bytes (on a rune boundary). A limit <= 0 disables truncation.
func RedactString(s string, secrets []string, limit int) string {
	for _, secret := range secrets {
		if secret != "" {
			s = strings.ReplaceAll(s, secret, redacted)
		}
	}
	if limit > 0 && len(s) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "…"
	}
	return s
}

// RedactBody returns a provider response body in a form safe to hand back to
// clients: parsed JSON when the redacted body still parses, otherwise the
// redacted (and truncated) text.
func RedactBody(body []byte, secrets []string, limit int) any {
	full := RedactString(string(body), secrets, 0)
	if limit <= 0 || len(full) <= limit {
		var v any
		if err := json.Unmarshal([]byte(full), &v); err == nil {
			return v
		}
	}
	return RedactString(full, nil, limit)
}
