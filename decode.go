package galextract

import (
	"bytes"

	"golang.org/x/text/encoding/japanese"
)

// decodeName decodes a fixed-width name slot: everything up to the first zero
// byte, interpreted as Shift-JIS. The decoder substitutes U+FFFD for byte
// sequences that are not valid Shift-JIS, so this never fails; garbage in,
// garbage string out, and the path validator sorts it from real names.
func decodeName(slot []byte) string {
	if i := bytes.IndexByte(slot, 0); i >= 0 {
		slot = slot[:i]
	}
	name, err := japanese.ShiftJIS.NewDecoder().String(string(slot))
	if err != nil {
		// The decoder replaces rather than errors, but keep the raw bytes as
		// a fallback just in case.
		return string(slot)
	}
	return name
}
