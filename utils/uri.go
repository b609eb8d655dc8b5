package utils

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Characters left untouched by EncodeURI, matching ECMAScript encodeURI.
const uriUnescaped = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789" +
	"-_.!~*'()" + ";/?:@&=+$,#"

// Escapes for these characters survive DecodeURI, matching ECMAScript decodeURI.
const uriReserved = ";/?:@&=+$,#"

const upperhex = "0123456789ABCDEF"

var ErrMalformedURI = errors.New("URI malformed")

// EncodeURI percent-encodes s the way ECMAScript encodeURI does. Invalid
// UTF-8 is replaced with U+FFFD first.
func EncodeURI(s string) string {
	s = strings.ToValidUTF8(s, "�")

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < utf8.RuneSelf && strings.IndexByte(uriUnescaped, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0F])
	}
	return b.String()
}

// DecodeURI reverses EncodeURI with ECMAScript decodeURI semantics: escapes of
// reserved characters are kept verbatim and malformed sequences are an error.
func DecodeURI(s string) (string, error) {
	if strings.IndexByte(s, '%') < 0 {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '%' {
			b.WriteByte(s[i])
			i++
			continue
		}

		c, ok := unhexAt(s, i)
		if !ok {
			return "", ErrMalformedURI
		}

		if c < utf8.RuneSelf {
			if strings.IndexByte(uriReserved, c) >= 0 {
				b.WriteString(s[i : i+3])
			} else {
				b.WriteByte(c)
			}
			i += 3
			continue
		}

		n := utf8SequenceLen(c)
		if n == 0 {
			return "", ErrMalformedURI
		}
		seq := make([]byte, 1, utf8.UTFMax)
		seq[0] = c
		j := i + 3
		for k := 1; k < n; k++ {
			cc, ok := unhexAt(s, j)
			if !ok || cc&0xC0 != 0x80 {
				return "", ErrMalformedURI
			}
			seq = append(seq, cc)
			j += 3
		}
		if r, size := utf8.DecodeRune(seq); (r == utf8.RuneError && size <= 1) || size != n {
			return "", ErrMalformedURI
		}
		b.Write(seq)
		i = j
	}
	return b.String(), nil
}

// EncodeTwice is the stored form of record titles and contents.
func EncodeTwice(s string) string {
	return EncodeURI(EncodeURI(s))
}

// DecodeTwice reverses EncodeTwice.
func DecodeTwice(s string) (string, error) {
	once, err := DecodeURI(s)
	if err != nil {
		return "", err
	}
	return DecodeURI(once)
}

func unhexAt(s string, i int) (byte, bool) {
	if i+2 >= len(s) || s[i] != '%' {
		return 0, false
	}
	hi, ok1 := unhex(s[i+1])
	lo, ok2 := unhex(s[i+2])
	if !ok1 || !ok2 {
		return 0, false
	}
	return hi<<4 | lo, true
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func utf8SequenceLen(lead byte) int {
	switch {
	case lead >= 0xC2 && lead <= 0xDF:
		return 2
	case lead >= 0xE0 && lead <= 0xEF:
		return 3
	case lead >= 0xF0 && lead <= 0xF4:
		return 4
	}
	return 0
}
