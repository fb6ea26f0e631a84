package strkey

import "encoding/binary"

// EncodeMuxedAccount returns the M... address combining an Ed25519 public key
// and a 64-bit multiplexing id.
func EncodeMuxedAccount(pub []byte, id uint64) (string, error) {
	if len(pub) != ed25519Length {
		return "", NewMalformedError(InvalidLength, "public key of %d bytes", len(pub))
	}
	payload := make([]byte, 0, muxedLength)
	payload = append(payload, pub...)
	payload = binary.BigEndian.AppendUint64(payload, id)
	return Encode(VersionByteMuxedAccount, payload)
}

// DecodeMuxedAccount splits an M... address into its public key and id.
func DecodeMuxedAccount(address string) (pub []byte, id uint64, err error) {
	payload, err := Decode(VersionByteMuxedAccount, address)
	if err != nil {
		return nil, 0, err
	}
	return payload[:ed25519Length], binary.BigEndian.Uint64(payload[ed25519Length:]), nil
}

// MuxedBaseAddress returns the G... address underlying an M... address.
func MuxedBaseAddress(address string) (string, error) {
	pub, _, err := DecodeMuxedAccount(address)
	if err != nil {
		return "", err
	}
	return EncodeAccountID(pub)
}
