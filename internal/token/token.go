package token

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// ErrInvalidToken reports input that cannot be read as a fixed-width fingerprint.
var ErrInvalidToken = errors.New("invalid token")

// Token is an immutable fixed-width fingerprint. The zero value means "no token".
type Token struct {
	raw   string // big-endian bytes, left padded to a whole byte
	width int
}

// ParseHex parses a hexadecimal fingerprint. The width is four bits per digit,
// so leading zeros are significant.
func ParseHex(s string) (Token, error) {
	digits := strings.TrimSpace(s)
	digits = strings.TrimPrefix(strings.TrimPrefix(digits, "0x"), "0X")
	if digits == "" {
		return Token{}, fmt.Errorf("%w: empty value", ErrInvalidToken)
	}
	width := len(digits) * 4
	padded := digits
	if len(padded)%2 == 1 {
		padded = "0" + padded
	}
	raw, err := hex.DecodeString(padded)
	if err != nil {
		return Token{}, fmt.Errorf("%w: %q is not hexadecimal", ErrInvalidToken, s)
	}
	return Token{raw: string(raw), width: width}, nil
}

// MustParseHex is ParseHex for literals known to be valid.
func MustParseHex(s string) Token {
	t, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FromUint64 builds a token of the given width (1..64 bits) from v.
func FromUint64(v uint64, width int) (Token, error) {
	if width < 1 || width > 64 {
		return Token{}, fmt.Errorf("%w: width %d outside 1..64", ErrInvalidToken, width)
	}
	if width < 64 && v>>uint(width) != 0 {
		return Token{}, fmt.Errorf("%w: value %#x exceeds %d bits", ErrInvalidToken, v, width)
	}
	n := (width + 7) / 8
	raw := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		raw[i] = byte(v)
		v >>= 8
	}
	return Token{raw: string(raw), width: width}, nil
}

// Width returns the declared bit width, or 0 for the zero token.
func (t Token) Width() int {
	return t.width
}

// IsZero reports whether t is the zero value (no token).
func (t Token) IsZero() bool {
	return t.width == 0
}

// Uint64 returns the token value when it fits in 64 bits.
func (t Token) Uint64() (uint64, bool) {
	if t.width == 0 || t.width > 64 {
		return 0, false
	}
	var v uint64
	for i := 0; i < len(t.raw); i++ {
		v = v<<8 | uint64(t.raw[i])
	}
	return v, true
}

// String returns the token as lowercase hexadecimal, width/4 digits long.
func (t Token) String() string {
	if t.width == 0 {
		return ""
	}
	s := hex.EncodeToString([]byte(t.raw))
	digits := (t.width + 3) / 4
	if len(s) > digits {
		s = s[len(s)-digits:]
	}
	return s
}

// DifferingBits counts the bit positions where t and other differ. Both
// tokens must share a width; callers check that first.
func (t Token) DifferingBits(other Token) int {
	count := 0
	for i := 0; i < len(t.raw) && i < len(other.raw); i++ {
		count += bits.OnesCount8(t.raw[i] ^ other.raw[i])
	}
	return count
}

// MarshalText implements encoding.TextMarshaler.
func (t Token) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text yields the zero token.
func (t *Token) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*t = Token{}
		return nil
	}
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
