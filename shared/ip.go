package shared

import (
	"net"
	"strings"
)

// NormalizeIP returns the trimmed IP when it is syntactically valid, "" otherwise.
func NormalizeIP(ip string) string {
	v := strings.TrimSpace(ip)
	if v == "" {
		return ""
	}
	if net.ParseIP(v) == nil {
		return ""
	}
	return v
}
