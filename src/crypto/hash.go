package crypto

import (
	"crypto/sha256"
)

// SHA256 returns the SHA256 hash of the data.
func SHA256(data []byte) []byte {
	hasher := sha256.New()
	hasher.Write(data)
	hash := hasher.Sum(nil)
	return hash
}

// NetworkID returns the 32 byte identifier of a network, the SHA256 hash of
// its passphrase. Transactions are signed over a hash that includes it, so a
// signature made for one network is never valid on another.
func NetworkID(passphrase string) [32]byte {
	return sha256.Sum256([]byte(passphrase))
}
