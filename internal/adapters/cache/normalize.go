package cache

import (
	"regexp"
	"strings"
)

var commaSpacing = regexp.MustCompile(`\s*,\s*`)

// NormalizeAddress produces the cache key for an address: lower-cased,
// trimmed, whitespace runs collapsed to one space and spaces around commas
// removed, so "Av. Arce  123,  Sopocachi" and "av. arce 123, sopocachi"
// share a key.
func NormalizeAddress(address string) string {
	s := strings.ToLower(address)
	s = strings.Join(strings.Fields(s), " ")
	return commaSpacing.ReplaceAllString(s, ",")
}
