package keys

import (
	"fmt"

	slip10 "github.com/anyproto/go-slip10"
	"github.com/pkg/errors"
	bip39 "github.com/tyler-smith/go-bip39"
)

const (
	// hardened marks a SLIP-0010 child index as hardened. Ed25519 only
	// supports hardened derivation.
	hardened uint32 = 0x80000000

	// accountPathFormat is the SEP-0005 derivation path of a Stellar account.
	accountPathFormat = "m/44'/148'/%d'"
)

// NewMnemonic returns a new random BIP-39 mnemonic of the given entropy size
// in bits (128 for 12 words, 256 for 24 words).
func NewMnemonic(bitSize int) (string, error) {
	entropy, err := bip39.NewEntropy(bitSize)
	if err != nil {
		return "", errors.Wrap(err, "generating entropy")
	}
	return bip39.NewMnemonic(entropy)
}

// FromMnemonic derives the key-pair of account index from a BIP-39 mnemonic
// and optional passphrase, along the path m/44'/148'/index'.
func FromMnemonic(mnemonic, passphrase string, index uint32) (*Full, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, errors.Wrap(err, "invalid mnemonic")
	}
	return FromBIP39Seed(seed, index)
}

// FromBIP39Seed derives the key-pair of account index from a BIP-39 seed.
func FromBIP39Seed(seed []byte, index uint32) (*Full, error) {
	if index >= hardened {
		return nil, errors.Errorf("account index %d out of range", index)
	}

	node, err := slip10.DeriveForPath(fmt.Sprintf(accountPathFormat, index), seed)
	if err != nil {
		return nil, errors.Wrap(err, "deriving account key")
	}
	return FromRawSeed([32]byte(node.RawSeed()))
}
