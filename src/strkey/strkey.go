package strkey

import (
	"bytes"
	"encoding/binary"
	"strings"

	"github.com/sigurn/crc16"
)

// VersionByte is the leading byte of a decoded StrKey. Its top 5 bits index
// the base32 alphabet, which is why every kind of key starts with a fixed
// letter.
type VersionByte byte

const (
	//VersionByteAccountID is the version byte of account ids (G...)
	VersionByteAccountID VersionByte = 6 << 3
	//VersionByteMuxedAccount is the version byte of multiplexed accounts (M...)
	VersionByteMuxedAccount VersionByte = 12 << 3
	//VersionByteSeed is the version byte of Ed25519 secret seeds (S...)
	VersionByteSeed VersionByte = 18 << 3
	//VersionBytePreAuthTx is the version byte of pre-authorized transaction
	//hashes (T...)
	VersionBytePreAuthTx VersionByte = 19 << 3
	//VersionByteHashX is the version byte of sha256 hash signers (X...)
	VersionByteHashX VersionByte = 23 << 3
	//VersionByteSignedPayload is the version byte of signed payload signers
	//(P...)
	VersionByteSignedPayload VersionByte = 15 << 3
	//VersionByteContract is the version byte of contract ids (C...)
	VersionByteContract VersionByte = 2 << 3
	//VersionByteLiquidityPool is the version byte of liquidity pool ids (L...)
	VersionByteLiquidityPool VersionByte = 11 << 3
	//VersionByteClaimableBalance is the version byte of claimable balance ids
	//(B...)
	VersionByteClaimableBalance VersionByte = 1 << 3
)

const (
	// minEncodedLength is the length of the shortest possible text: 3 bytes
	// (version byte and checksum) need ceil(3*8/5) characters.
	minEncodedLength = 5

	ed25519Length = 32
	muxedLength   = ed25519Length + 8

	claimableBalanceLength = 1 + 32

	signedPayloadMinLength = ed25519Length + 4 + 4
	signedPayloadMaxLength = ed25519Length + 4 + maxSignedPayloadSize
)

var crcTable = crc16.MakeTable(crc16.CRC16_XMODEM)

var versionNames = map[VersionByte]string{
	VersionByteAccountID:        "AccountID",
	VersionByteMuxedAccount:     "MuxedAccount",
	VersionByteSeed:             "Seed",
	VersionBytePreAuthTx:        "PreAuthTx",
	VersionByteHashX:            "HashX",
	VersionByteSignedPayload:    "SignedPayload",
	VersionByteContract:         "Contract",
	VersionByteLiquidityPool:    "LiquidityPool",
	VersionByteClaimableBalance: "ClaimableBalance",
}

// String returns the name of the identifier kind.
func (v VersionByte) String() string {
	if name, ok := versionNames[v]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether v is one of the defined version bytes.
func (v VersionByte) Valid() bool {
	_, ok := versionNames[v]
	return ok
}

// ParseVersionByte returns the version byte named name, as printed by
// VersionByte.String. The comparison is case-insensitive.
func ParseVersionByte(name string) (VersionByte, error) {
	for v, n := range versionNames {
		if strings.EqualFold(n, name) {
			return v, nil
		}
	}
	return 0, NewMalformedError(InvalidVersionByte, "unknown kind %q", name)
}

// validPayloadLength checks n against the fixed, or ranged, payload length of
// the version byte.
func (v VersionByte) validPayloadLength(n int) bool {
	switch v {
	case VersionByteMuxedAccount:
		return n == muxedLength
	case VersionByteClaimableBalance:
		return n == claimableBalanceLength
	case VersionByteSignedPayload:
		return n >= signedPayloadMinLength && n <= signedPayloadMaxLength
	default:
		return n == ed25519Length
	}
}

// Encode builds version ++ payload, appends its CRC16/XMODEM checksum in
// little-endian order and returns the unpadded base32 text.
func Encode(version VersionByte, src []byte) (string, error) {
	if !version.Valid() {
		return "", NewMalformedError(InvalidVersionByte, "0x%02x", byte(version))
	}
	if !version.validPayloadLength(len(src)) {
		return "", NewMalformedError(InvalidLength, "%s payload of %d bytes", version, len(src))
	}

	raw := make([]byte, 0, 1+len(src)+2)
	raw = append(raw, byte(version))
	raw = append(raw, src...)
	raw = binary.LittleEndian.AppendUint16(raw, checksum(raw))

	return EncodeBase32(raw, true), nil
}

// MustEncode is like Encode but panics on error. It is meant for payloads of
// known-good length, such as public keys held in a [32]byte.
func MustEncode(version VersionByte, src []byte) string {
	s, err := Encode(version, src)
	if err != nil {
		panic(err)
	}
	return s
}

// Decode returns the payload of src after checking that it is a canonical
// StrKey of the expected version.
func Decode(expected VersionByte, src string) ([]byte, error) {
	if !expected.Valid() {
		return nil, NewMalformedError(InvalidVersionByte, "expected 0x%02x", byte(expected))
	}

	raw, err := decodeString(src)
	if err != nil {
		return nil, err
	}

	version := VersionByte(raw[0])
	if !version.Valid() {
		return nil, NewMalformedError(InvalidVersionByte, "0x%02x", raw[0])
	}
	if version != expected {
		return nil, NewMalformedError(VersionMismatch, "got %s, want %s", version, expected)
	}

	vp := raw[:len(raw)-2]
	payload := vp[1:]
	if !version.validPayloadLength(len(payload)) {
		return nil, NewMalformedError(InvalidLength, "%s payload of %d bytes", version, len(payload))
	}

	expectedSum := binary.LittleEndian.Uint16(raw[len(raw)-2:])
	if sum := checksum(vp); sum != expectedSum {
		return nil, NewMalformedError(InvalidChecksum, "got 0x%04x, want 0x%04x", sum, expectedSum)
	}

	return bytes.Clone(payload), nil
}

// MustDecode is like Decode but panics on error.
func MustDecode(expected VersionByte, src string) []byte {
	payload, err := Decode(expected, src)
	if err != nil {
		panic(err)
	}
	return payload
}

// Version decodes only the version byte of src, without checking the payload
// or the checksum. It lets callers dispatch on the kind of a key they do not
// know in advance.
func Version(src string) (VersionByte, error) {
	if len(src) < 2 {
		return 0, NewMalformedError(InvalidLength, "text of %d characters", len(src))
	}

	raw, err := DecodeBase32(src[:2])
	if err != nil {
		return 0, err
	}

	version := VersionByte(raw[0])
	if !version.Valid() {
		return 0, NewMalformedError(InvalidVersionByte, "0x%02x", raw[0])
	}

	return version, nil
}

// IsValid reports whether src decodes as a StrKey of the given version.
func IsValid(version VersionByte, src string) bool {
	_, err := Decode(version, src)
	return err == nil
}

// decodeString enforces the canonical form of src and returns the raw bytes,
// which are at least 3 bytes long.
func decodeString(src string) ([]byte, error) {
	if len(src) < minEncodedLength {
		return nil, NewMalformedError(InvalidLength, "text of %d characters, minimum is %d", len(src), minEncodedLength)
	}

	// A full unused character, or non-zero bits in the unused tail of the last
	// character, would let several texts decode to the same bytes.
	leftoverBits := uint(len(src)*5) % 8
	if leftoverBits >= 5 {
		return nil, NewMalformedError(NonCanonical, "unused leftover character")
	}
	if leftoverBits > 0 {
		last := base32DecodeMap[src[len(src)-1]]
		if last == invalidIndex {
			return nil, NewMalformedError(InvalidBase32, "illegal character %q at offset %d", src[len(src)-1], len(src)-1)
		}
		if last&(byte(1)<<leftoverBits-1) != 0 {
			return nil, NewMalformedError(NonCanonical, "non-zero leftover bits")
		}
	}

	if bytes.IndexByte([]byte(src), base32Pad) >= 0 {
		return nil, NewMalformedError(InvalidBase32, "padding is not allowed")
	}

	return DecodeBase32(src)
}

func checksum(data []byte) uint16 {
	return crc16.Checksum(data, crcTable)
}
