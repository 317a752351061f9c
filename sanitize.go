package galextract

import (
	"os"
	"strings"
	"unicode/utf8"
)

const illegalChars = `<>:"/\|?*`

// sanitizeName maps an archive-internal path onto a filesystem-safe relative
// path. Backslashes become the platform separator (stored paths use DOS-style
// separators), a leading separator is stripped so nothing roots itself, and
// every remaining illegal or control character is replaced per component so
// the separators survive. The result is clamped to maxNameLen.
func sanitizeName(name string) string {
	sep := string(os.PathSeparator)
	name = strings.ReplaceAll(name, "\\", sep)
	name = strings.TrimLeft(name, sep)

	parts := strings.Split(name, sep)
	for i, part := range parts {
		parts[i] = strings.Map(func(r rune) rune {
			if r < 32 || strings.ContainsRune(illegalChars, r) {
				return '_'
			}
			return r
		}, part)
	}
	name = strings.Join(parts, sep)

	if utf8.RuneCountInString(name) > maxNameLen {
		name = string([]rune(name)[:maxNameLen])
	}
	return name
}
