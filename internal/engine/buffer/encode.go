package buffer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// EncodeFunc appends the on-disk form of r to dst and returns the result.
// Save calls it once per codepoint, which lets a host escape or convert
// individual characters (control characters, unmappable runes) on the way out.
type EncodeFunc func(dst []byte, r rune) []byte

// EncodeUTF8 writes every codepoint as UTF-8. It is the default encoder.
func EncodeUTF8(dst []byte, r rune) []byte {
	return utf8.AppendRune(dst, r)
}

// EncodeLatin1 writes ISO-8859-1. Codepoints outside Latin-1 become '?'.
func EncodeLatin1(dst []byte, r rune) []byte {
	if b, ok := charmap.ISO8859_1.EncodeRune(r); ok {
		return append(dst, b)
	}
	return append(dst, '?')
}

// EncoderByName resolves a configured encoding name.
func EncoderByName(name string) (EncodeFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return EncodeUTF8, nil
	case "latin1", "latin-1", "iso-8859-1":
		return EncodeLatin1, nil
	default:
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
}
