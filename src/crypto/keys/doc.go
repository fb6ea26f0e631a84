// Package keys implements the public key cryptography used to sign ledger
// transactions.
//
// An account on the ledger is controlled by one or more Ed25519 key-pairs.
// The public key is published as a G... address and the 32 byte seed, from
// which the private key is expanded, as an S... secret (see package strkey).
//
// A KeyPair built from an address can only verify signatures. A Full key-pair,
// built from a seed, can also sign. Signatures attached to transactions are
// decorated with a hint, the last 4 bytes of the signer's public key, which
// lets verifiers skip keys that obviously did not produce a signature before
// running the full Ed25519 verification.
//
// Seeds can be derived from BIP-39 mnemonics following SEP-5, which uses the
// SLIP-0010 derivation path m/44'/148'/index'.
package keys
