package galextract

import (
	"strings"
	"unicode/utf8"
)

// looksLikePath reports whether a decoded name slot plausibly holds a stored
// path rather than payload bytes that follow the directory. The format keeps
// no entry count, so the first rejected name is what ends directory parsing.
func looksLikePath(name string) bool {
	if name == "" {
		return false
	}
	// Too short to be a meaningful path
	if utf8.RuneCountInString(name) < 3 {
		return false
	}
	// Low control bytes mean the decoder chewed on binary data
	if strings.ContainsAny(name, "\x00\x01\x02\x03") {
		return false
	}
	// No printable content at all
	allControl := true
	for _, r := range name {
		if r >= 32 {
			allControl = false
			break
		}
	}
	if allControl {
		return false
	}
	// Known payload signatures, e.g. "BM" for bitmap headers
	for _, prefix := range rejectPrefixes {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	return true
}
