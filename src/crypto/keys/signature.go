package keys

import (
	"encoding/base64"
	"fmt"
)

// DecoratedSignature is a signature together with the hint of the key that
// is supposed to have produced it.
type DecoratedSignature struct {
	Hint      Hint
	Signature []byte
}

// Matches reports whether the signature hint is the hint of kp. A match does
// not mean the signature is valid, only that kp is worth checking.
func (ds DecoratedSignature) Matches(kp KeyPair) bool {
	return ds.Hint == kp.Hint()
}

// VerifiedBy reports whether the hint matches kp and the signature verifies
// against message with kp's public key.
func (ds DecoratedSignature) VerifiedBy(kp KeyPair, message []byte) bool {
	return ds.Matches(kp) && kp.Verify(message, ds.Signature)
}

// String returns a short representation of the signature.
func (ds DecoratedSignature) String() string {
	return fmt.Sprintf("%X|%s", ds.Hint[:], base64.StdEncoding.EncodeToString(ds.Signature))
}
