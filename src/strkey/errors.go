package strkey

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrType classifies a MalformedError.
type ErrType uint32

const (
	// InvalidBase32 is a character outside the base32 alphabet.
	InvalidBase32 ErrType = iota
	// NonCanonical is a text whose trailing bits are not a canonical
	// unpadded base32 encoding.
	NonCanonical
	// InvalidLength is a text or payload of the wrong length.
	InvalidLength
	// InvalidVersionByte is a leading byte that is not one of the defined
	// version bytes.
	InvalidVersionByte
	// VersionMismatch is a valid version byte that differs from the one the
	// caller expects.
	VersionMismatch
	// InvalidChecksum is a checksum that does not match the decoded data.
	InvalidChecksum
	// InvalidPayload is a nested payload (signed payload, muxed account) that
	// cannot be parsed.
	InvalidPayload
)

var errTypes = []string{
	"invalid base32",
	"non-canonical encoding",
	"invalid length",
	"invalid version byte",
	"version byte mismatch",
	"invalid checksum",
	"invalid payload",
}

// String returns the string representation of ErrType
func (t ErrType) String() string {
	if int(t) < len(errTypes) {
		return errTypes[t]
	}
	return "unknown"
}

// MalformedError is returned by every decoding function of this package. It
// is a deterministic function of the input and safe to surface directly.
type MalformedError struct {
	errType ErrType
	msg     string
}

// NewMalformedError creates a new MalformedError
func NewMalformedError(errType ErrType, format string, args ...interface{}) MalformedError {
	return MalformedError{
		errType: errType,
		msg:     fmt.Sprintf(format, args...),
	}
}

// Type returns the classification of the error.
func (e MalformedError) Type() ErrType {
	return e.errType
}

// Error implements the error interface
func (e MalformedError) Error() string {
	return fmt.Sprintf("malformed identifier: %s: %s", e.errType, e.msg)
}

// IsMalformed checks that an error, or the cause of a wrapped error, is a
// MalformedError.
func IsMalformed(err error) bool {
	_, ok := errors.Cause(err).(MalformedError)
	return ok
}

// IsErrType checks that an error is a MalformedError of the given type.
func IsErrType(err error, t ErrType) bool {
	mErr, ok := errors.Cause(err).(MalformedError)
	return ok && mErr.errType == t
}
