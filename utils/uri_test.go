package utils

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeURI(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain ascii", "hello", "hello"},
		{"space", "hello world", "hello%20world"},
		{"reserved kept", "a#b?c=d&e;f/g:h@i+j$k,l", "a#b?c=d&e;f/g:h@i+j$k,l"},
		{"marks kept", "-_.!~*'()", "-_.!~*'()"},
		{"percent", "100%", "100%25"},
		{"newline", "line\nbreak", "line%0Abreak"},
		{"cjk", "记事本", "%E8%AE%B0%E4%BA%8B%E6%9C%AC"},
		{"emoji", "😀", "%F0%9F%98%80"},
		{"brackets", "[x]{y}", "%5Bx%5D%7By%7D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EncodeURI(tt.input))
		})
	}
}

func TestDecodeURI(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"no escapes", "hello", "hello", false},
		{"space", "hello%20world", "hello world", false},
		{"lowercase hex", "%e8%ae%b0", "记", false},
		{"reserved escape kept", "%23%2F%3f", "%23%2F%3f", false},
		{"percent", "100%25", "100%", false},
		{"truncated escape", "abc%2", "", true},
		{"bad hex", "%ZZ", "", true},
		{"truncated sequence", "%E8%AE", "", true},
		{"bad continuation", "%E8%41%B0", "", true},
		{"overlong", "%C0%AF", "", true},
		{"surrogate", "%ED%A0%80", "", true},
		{"lone continuation", "%80", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeURI(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedURI)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEncodeTwice(t *testing.T) {
	assert.Equal(t, "a%2520b", EncodeTwice("a b"))
	assert.Equal(t, "%2523tag", EncodeTwice("%23tag"))

	got, err := DecodeTwice("a%2520b")
	require.NoError(t, err)
	assert.Equal(t, "a b", got)
}

func TestDecodeTwiceRoundTrip(t *testing.T) {
	fixed := []string{
		"",
		"plain",
		"#;/?:@&=+$,",
		"%23 already escaped %25",
		"%E8%AE%B0",
		"多行\n文本\t😀",
	}
	for _, s := range fixed {
		got, err := DecodeTwice(EncodeTwice(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	roundTrip := func(s string) bool {
		got, err := DecodeTwice(EncodeTwice(s))
		return err == nil && got == s
	}
	// quick generates strings from arbitrary runes, which are always valid UTF-8.
	require.NoError(t, quick.Check(roundTrip, &quick.Config{MaxCount: 2000}))
}
