package keys

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"

	"github.com/mosaicnetworks/webauth/src/strkey"
	"github.com/pkg/errors"
)

// HintLength is the number of trailing public key bytes used as a signature
// hint.
const HintLength = 4

// Hint is the last 4 bytes of a public key.
type Hint [HintLength]byte

// KeyPair is implemented by both Public and Full key-pairs.
type KeyPair interface {
	Address() string
	PublicKey() ed25519.PublicKey
	Hint() Hint
	Verify(message, signature []byte) bool
}

// Public is a key-pair made of a public key only.
type Public struct {
	pub     ed25519.PublicKey
	address string
}

// Full is a key-pair that can sign.
type Full struct {
	Public
	priv ed25519.PrivateKey
	seed string
}

// ParseAddress builds a Public key-pair from a G... address.
func ParseAddress(address string) (*Public, error) {
	pub, err := strkey.DecodeAccountID(address)
	if err != nil {
		return nil, err
	}
	return &Public{
		pub:     ed25519.PublicKey(pub),
		address: address,
	}, nil
}

// ParseFull builds a Full key-pair from an S... seed.
func ParseFull(seed string) (*Full, error) {
	raw, err := strkey.DecodeSeed(seed)
	if err != nil {
		return nil, err
	}
	var rawSeed [32]byte
	copy(rawSeed[:], raw)
	return FromRawSeed(rawSeed)
}

// Parse accepts either a G... address or an S... seed.
func Parse(s string) (KeyPair, error) {
	version, err := strkey.Version(s)
	if err != nil {
		return nil, err
	}
	switch version {
	case strkey.VersionByteAccountID:
		return ParseAddress(s)
	case strkey.VersionByteSeed:
		return ParseFull(s)
	default:
		return nil, errors.Errorf("%s is neither an account address nor a seed", version)
	}
}

// FromRawSeed expands a 32 byte seed into a Full key-pair.
func FromRawSeed(rawSeed [32]byte) (*Full, error) {
	priv := ed25519.NewKeyFromSeed(rawSeed[:])
	pub := priv.Public().(ed25519.PublicKey)

	address, err := strkey.EncodeAccountID(pub)
	if err != nil {
		return nil, err
	}
	seed, err := strkey.EncodeSeed(rawSeed[:])
	if err != nil {
		return nil, err
	}

	return &Full{
		Public: Public{pub: pub, address: address},
		priv:   priv,
		seed:   seed,
	}, nil
}

// Random creates a Full key-pair from the system's secure random source.
func Random() (*Full, error) {
	var rawSeed [32]byte
	if _, err := rand.Read(rawSeed[:]); err != nil {
		return nil, errors.Wrap(err, "reading random seed")
	}
	return FromRawSeed(rawSeed)
}

// MustRandom is like Random but panics on error. It is used by tests.
func MustRandom() *Full {
	kp, err := Random()
	if err != nil {
		panic(err)
	}
	return kp
}

// Address returns the G... address of the public key.
func (p *Public) Address() string {
	return p.address
}

// PublicKey returns a copy of the raw public key.
func (p *Public) PublicKey() ed25519.PublicKey {
	return bytes.Clone(p.pub)
}

// Hint returns the last 4 bytes of the public key.
func (p *Public) Hint() Hint {
	var h Hint
	copy(h[:], p.pub[len(p.pub)-HintLength:])
	return h
}

// Verify reports whether signature is a valid Ed25519 signature of message by
// this public key.
func (p *Public) Verify(message, signature []byte) bool {
	if len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(p.pub, message, signature)
}

// Seed returns the S... text of the seed.
func (f *Full) Seed() string {
	return f.seed
}

// Sign returns the Ed25519 signature of message.
func (f *Full) Sign(message []byte) []byte {
	return ed25519.Sign(f.priv, message)
}

// SignDecorated signs message and attaches the key's hint to the signature.
func (f *Full) SignDecorated(message []byte) DecoratedSignature {
	return DecoratedSignature{
		Hint:      f.Hint(),
		Signature: f.Sign(message),
	}
}
