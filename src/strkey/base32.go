package strkey

import "strings"

const (
	base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"
	base32Pad      = '='
	invalidIndex   = 0xFF
)

var base32DecodeMap [256]byte

func init() {
	for i := range base32DecodeMap {
		base32DecodeMap[i] = invalidIndex
	}
	for i := 0; i < len(base32Alphabet); i++ {
		base32DecodeMap[base32Alphabet[i]] = byte(i)
	}
}

// EncodeBase32 packs src 5 bits at a time into the RFC4648 base32 alphabet.
// Unless omitPadding is set, the output is padded with '=' to a multiple of 8
// characters.
func EncodeBase32(src []byte, omitPadding bool) string {
	out := make([]byte, 0, (len(src)*8+4)/5+7)

	var acc uint32
	var bits uint
	for _, c := range src {
		acc = acc<<8 | uint32(c)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out = append(out, base32Alphabet[(acc>>bits)&0x1F])
		}
	}
	if bits > 0 {
		out = append(out, base32Alphabet[(acc<<(5-bits))&0x1F])
	}

	if !omitPadding {
		for len(out)%8 != 0 {
			out = append(out, base32Pad)
		}
	}

	return string(out)
}

// DecodeBase32 is the inverse of EncodeBase32. Trailing padding is ignored,
// every other character contributes exactly 5 bits and the output holds
// floor(n*5/8) bytes where n is the number of unpadded characters; a trailing
// partial byte is dropped. The only error is a character outside the
// alphabet.
func DecodeBase32(s string) ([]byte, error) {
	s = strings.TrimRight(s, string(base32Pad))

	out := make([]byte, 0, len(s)*5/8)

	var acc uint32
	var bits uint
	for i := 0; i < len(s); i++ {
		v := base32DecodeMap[s[i]]
		if v == invalidIndex {
			return nil, NewMalformedError(InvalidBase32, "illegal character %q at offset %d", s[i], i)
		}
		acc = acc<<5 | uint32(v)
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(acc>>bits))
		}
	}

	return out, nil
}
