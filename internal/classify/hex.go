package classify

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// hexPrefix and hexSuffix delimit the hex-escape wrapper that password
// recovery tools such as hashcat emit for passwords containing bytes that
// are not printable ASCII.
const (
	hexPrefix = "$HEX["
	hexSuffix = "]"
)

// ErrMalformedHexEscape is returned when a candidate matches the $HEX[...]
// wrapper but its payload is not an even-length hexadecimal string.
// Callers decide whether to abort the run or skip the record; the error must
// not be silently ignored.
var ErrMalformedHexEscape = errors.New("malformed $HEX[...] payload")

// DecodeHexEscape recovers the raw form of a hex-escaped password.
//
// A candidate of the form $HEX[<hex-digits>] (hex digits case-insensitive)
// is decoded to raw bytes and reinterpreted as Latin-1, one byte per
// character. This matches what cracking tools produce for non-ASCII
// passwords. Candidates that do not match the wrapper pass through
// unchanged.
func DecodeHexEscape(candidate string) (string, error) {
	if !strings.HasPrefix(candidate, hexPrefix) || !strings.HasSuffix(candidate, hexSuffix) {
		return candidate, nil
	}

	payload := candidate[len(hexPrefix) : len(candidate)-len(hexSuffix)]
	raw, err := hex.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedHexEscape, err)
	}

	// Latin-1 decoding is total: every byte maps to exactly one rune.
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedHexEscape, err)
	}
	return string(decoded), nil
}
