// Package strkey implements the text encoding used for ledger identifiers.
//
// A StrKey is the unpadded base32 encoding of a version byte, a payload and a
// two byte checksum:
//
//  [version byte][payload][crc16 little-endian]
//
// The version byte determines both the first character of the resulting text
// (G for accounts, S for seeds, M for multiplexed accounts and so on) and the
// length of the payload. The checksum is CRC16/XMODEM over the version byte
// and the payload, so any single character typo is detected on decoding.
//
// Decoding is strict: the text must be in canonical base32 form, with no
// padding and no unused non-zero trailing bits, the version byte must match
// the one requested by the caller, and the payload length must be the one
// prescribed for that version byte. Every failure is reported as a
// MalformedError.
//
// Signed payloads and multiplexed accounts carry a nested structure inside
// the payload. SignedPayload and the muxed helpers encode and decode that
// structure before handing it to the generic envelope.
package strkey
