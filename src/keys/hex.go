package keys

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// FormatError describes malformed hex text or a wrong-length key record.
// It is always caused by untrusted external input and is recoverable by the
// caller.
type FormatError struct {
	Reason string
	Pos    int // offset of the offending character, or -1 when not positional
}

func (e *FormatError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("keys: %s at position %d", e.Reason, e.Pos)
	}
	return "keys: " + e.Reason
}

// EncodeHex returns the canonical lowercase hex form of b, two characters
// per byte with no separators.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeHex decodes hex text, accepting either case. It fails with a
// *FormatError when the input has odd length or contains a character
// outside [0-9a-fA-F].
func DecodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, &FormatError{Reason: "odd length hex string", Pos: len(s) - 1}
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		pos := strings.IndexFunc(s, func(r rune) bool {
			return !isHexDigit(r)
		})
		return nil, &FormatError{Reason: "invalid hex character", Pos: pos}
	}
	return b, nil
}

func isHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	}
	return false
}
