package webauth

import (
	"fmt"

	"github.com/pkg/errors"
)

// ChallengeErrType enumerates the reasons a challenge is rejected.
type ChallengeErrType uint32

const (
	// ErrInvalidChallenge is returned when the transaction does not have the
	// shape of a challenge.
	ErrInvalidChallenge ChallengeErrType = iota
	// ErrInvalidNonceLength is returned by the builder when a nonce override
	// is not 48 bytes long.
	ErrInvalidNonceLength
	// ErrUnrecognizedOperation is returned when an operation other than the
	// first is not a manage-data operation of an allowed source.
	ErrUnrecognizedOperation
	// ErrMalformedNonce is returned when the nonce is not 64 characters of
	// base64 decoding to 48 bytes.
	ErrMalformedNonce
	// ErrNotSignedByServer is returned when no signature verifies against the
	// server key.
	ErrNotSignedByServer
	// ErrChallengeExpired is returned when the time bounds are missing,
	// infinite, or exclude now.
	ErrChallengeExpired
	// ErrMissingClientDomainSignature is returned when the challenge has a
	// client_domain operation but its source did not sign.
	ErrMissingClientDomainSignature
	// ErrNotSignedByClient is returned when none of the client signers
	// signed.
	ErrNotSignedByClient
	// ErrUnrecognizedSignature is returned when some signatures are not
	// matched by any known signer.
	ErrUnrecognizedSignature
	// ErrThresholdNotMet is returned when the weight of the matched signers is
	// below the threshold.
	ErrThresholdNotMet
)

var challengeErrNames = map[ChallengeErrType]string{
	ErrInvalidChallenge:             "InvalidChallenge",
	ErrInvalidNonceLength:           "InvalidNonceLength",
	ErrUnrecognizedOperation:        "UnrecognizedOperation",
	ErrMalformedNonce:               "MalformedNonce",
	ErrNotSignedByServer:            "NotSignedByServer",
	ErrChallengeExpired:             "ChallengeExpired",
	ErrMissingClientDomainSignature: "MissingClientDomainSignature",
	ErrNotSignedByClient:            "NotSignedByClient",
	ErrUnrecognizedSignature:        "UnrecognizedSignature",
	ErrThresholdNotMet:              "ThresholdNotMet",
}

// String ...
func (t ChallengeErrType) String() string {
	if name, ok := challengeErrNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ChallengeErrType(%d)", uint32(t))
}

// ChallengeError is the error returned when building, reading or verifying a
// challenge fails for a protocol reason.
type ChallengeError struct {
	errType ChallengeErrType
	reason  string
}

// NewChallengeError ...
func NewChallengeError(errType ChallengeErrType, format string, args ...interface{}) *ChallengeError {
	return &ChallengeError{
		errType: errType,
		reason:  fmt.Sprintf(format, args...),
	}
}

// Type returns the kind of the error.
func (e *ChallengeError) Type() ChallengeErrType {
	return e.errType
}

// Reason returns the human readable description of the failure.
func (e *ChallengeError) Reason() string {
	return e.reason
}

// Error implements the error interface
func (e *ChallengeError) Error() string {
	return fmt.Sprintf("%s: %s", e.errType, e.reason)
}

// IsChallengeErr checks that an error, or its cause, is a ChallengeError of
// the given type.
func IsChallengeErr(err error, t ChallengeErrType) bool {
	cerr, ok := errors.Cause(err).(*ChallengeError)
	return ok && cerr.errType == t
}

// challengeErrType returns the type of err when it is a ChallengeError.
func challengeErrType(err error) (ChallengeErrType, bool) {
	cerr, ok := errors.Cause(err).(*ChallengeError)
	if !ok {
		return 0, false
	}
	return cerr.errType, true
}
