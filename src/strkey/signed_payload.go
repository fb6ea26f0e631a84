package strkey

import (
	"bytes"
	"encoding/binary"
)

const maxSignedPayloadSize = 64

// SignedPayload is a signer made of an Ed25519 account and an arbitrary
// payload that the account must sign.
type SignedPayload struct {
	signer  string
	payload []byte
}

// NewSignedPayload checks that signer is a G... address and that payload is
// between 1 and 64 bytes long.
func NewSignedPayload(signer string, payload []byte) (*SignedPayload, error) {
	if _, err := DecodeAccountID(signer); err != nil {
		return nil, err
	}
	if len(payload) == 0 || len(payload) > maxSignedPayloadSize {
		return nil, NewMalformedError(InvalidLength, "signed payload of %d bytes, expected 1 to %d", len(payload), maxSignedPayloadSize)
	}
	return &SignedPayload{
		signer:  signer,
		payload: bytes.Clone(payload),
	}, nil
}

// Signer returns the G... address of the account.
func (sp *SignedPayload) Signer() string {
	return sp.signer
}

// Payload returns a copy of the payload.
func (sp *SignedPayload) Payload() []byte {
	return bytes.Clone(sp.payload)
}

// Encode returns the P... text of the signed payload. The inner structure is
//
//  public key (32) | payload length (u32 big-endian) | payload | zero padding
//
// with the padding bringing the payload to a multiple of 4 bytes.
func (sp *SignedPayload) Encode() (string, error) {
	pub, err := DecodeAccountID(sp.signer)
	if err != nil {
		return "", err
	}

	pad := (4 - len(sp.payload)%4) % 4
	raw := make([]byte, 0, ed25519Length+4+len(sp.payload)+pad)
	raw = append(raw, pub...)
	raw = binary.BigEndian.AppendUint32(raw, uint32(len(sp.payload)))
	raw = append(raw, sp.payload...)
	raw = append(raw, make([]byte, pad)...)

	return Encode(VersionByteSignedPayload, raw)
}

// DecodeSignedPayload parses a P... text.
func DecodeSignedPayload(address string) (*SignedPayload, error) {
	raw, err := Decode(VersionByteSignedPayload, address)
	if err != nil {
		return nil, err
	}

	pub := raw[:ed25519Length]
	rest := raw[ed25519Length:]

	size := binary.BigEndian.Uint32(rest[:4])
	rest = rest[4:]
	if size == 0 || size > maxSignedPayloadSize {
		return nil, NewMalformedError(InvalidPayload, "declared payload length %d", size)
	}

	pad := (4 - int(size)%4) % 4
	if int(size)+pad != len(rest) {
		return nil, NewMalformedError(InvalidPayload, "declared payload length %d for %d remaining bytes", size, len(rest))
	}
	for _, b := range rest[size:] {
		if b != 0 {
			return nil, NewMalformedError(InvalidPayload, "non-zero padding")
		}
	}

	signer, err := EncodeAccountID(pub)
	if err != nil {
		return nil, err
	}

	return &SignedPayload{
		signer:  signer,
		payload: bytes.Clone(rest[:size]),
	}, nil
}
