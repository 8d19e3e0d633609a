package classify

import (
	"errors"
	"testing"
)

// TestDecodeHexEscape verifies $HEX[...] recovery, Latin-1 reinterpretation
// of high bytes, and pass-through of candidates without the wrapper.
func TestDecodeHexEscape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		candidate string
		want      string
	}{
		{
			name:      "plain candidate passes through",
			candidate: "hunter2",
			want:      "hunter2",
		},
		{
			name:      "ascii payload",
			candidate: "$HEX[70617373776f7264]",
			want:      "password",
		},
		{
			name:      "uppercase hex digits",
			candidate: "$HEX[70617373776F7264]",
			want:      "password",
		},
		{
			name:      "latin-1 high bytes",
			candidate: "$HEX[6d61f1616e61]",
			want:      "mañana",
		},
		{
			name:      "empty payload decodes to empty string",
			candidate: "$HEX[]",
			want:      "",
		},
		{
			name:      "prefix without closing bracket passes through",
			candidate: "$HEX[70",
			want:      "$HEX[70",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := DecodeHexEscape(tt.candidate)
			if err != nil {
				t.Fatalf("DecodeHexEscape(%q) returned error: %v", tt.candidate, err)
			}
			if got != tt.want {
				t.Errorf("DecodeHexEscape(%q) = %q, want %q", tt.candidate, got, tt.want)
			}
		})
	}
}

// TestDecodeHexEscapeMalformed verifies that broken payloads return
// ErrMalformedHexEscape instead of a silent pass-through.
func TestDecodeHexEscapeMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		candidate string
	}{
		{
			name:      "non-hex characters",
			candidate: "$HEX[zz]",
		},
		{
			name:      "odd digit count",
			candidate: "$HEX[123]",
		},
		{
			name:      "embedded space",
			candidate: "$HEX[70 61]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeHexEscape(tt.candidate)
			if !errors.Is(err, ErrMalformedHexEscape) {
				t.Errorf("DecodeHexEscape(%q) error = %v, want ErrMalformedHexEscape", tt.candidate, err)
			}
		})
	}
}
