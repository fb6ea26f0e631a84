package webauth

import (
	"strings"
	"time"

	"github.com/mosaicnetworks/webauth/src/crypto/keys"
	"github.com/mosaicnetworks/webauth/src/strkey"
	"github.com/mosaicnetworks/webauth/src/txn"
)

// Signer is an account signer and its weight.
type Signer struct {
	Address string
	Weight  int32
}

// MatchSigners returns the candidates that have a signature on tx, in
// candidate order. Each signature is claimed by at most one candidate and each
// candidate claims at most one signature, so a key that signed twice is still
// counted once. Candidates that are not account addresses are ignored, as are
// repeated candidates.
func MatchSigners(tx *txn.Transaction, network string, candidates []string) ([]string, error) {
	if tx == nil {
		return nil, NewChallengeError(ErrInvalidChallenge, "no transaction")
	}

	hash, err := tx.Hash(network)
	if err != nil {
		return nil, err
	}

	claimed := make([]bool, len(tx.Signatures))
	seen := make(map[string]bool, len(candidates))
	matched := []string{}

	for _, candidate := range candidates {
		if seen[candidate] {
			continue
		}
		seen[candidate] = true

		kp, err := keys.ParseAddress(candidate)
		if err != nil {
			continue
		}

		for i, sig := range tx.Signatures {
			if claimed[i] || !sig.Matches(kp) {
				continue
			}
			if sig.VerifiedBy(kp, hash[:]) {
				claimed[i] = true
				matched = append(matched, candidate)
				break
			}
		}
	}

	return matched, nil
}

// VerifyChallengeTxSigners reads tx as ReadChallengeTx does and checks that
// it is signed by the server and, when the challenge has a client_domain
// operation, by the client domain signer. At least one signature other than
// the server's must come from signers or the client domain signer, and tx
// may carry no unrecognized signature. It returns the signers, other than
// the server, that signed.
func VerifyChallengeTxSigners(
	tx *txn.Transaction,
	serverAccountID string,
	network string,
	webAuthDomain string,
	homeDomains []string,
	now time.Time,
	signers ...string,
) ([]string, error) {
	if _, _, err := ReadChallengeTx(tx, serverAccountID, network, webAuthDomain, homeDomains, now); err != nil {
		return nil, err
	}

	clientDomainSigner := findClientDomainSigner(tx)

	clientSigners := make([]string, 0, len(signers))
	for _, s := range signers {
		if s == serverAccountID || !strkey.IsValid(strkey.VersionByteAccountID, s) {
			continue
		}
		clientSigners = append(clientSigners, s)
	}

	candidates := append([]string{serverAccountID}, clientSigners...)
	if clientDomainSigner != "" {
		candidates = append(candidates, clientDomainSigner)
	}

	matched, err := MatchSigners(tx, network, candidates)
	if err != nil {
		return nil, err
	}

	found := make(map[string]bool, len(matched))
	for _, m := range matched {
		found[m] = true
	}

	if !found[serverAccountID] {
		return nil, NewChallengeError(ErrNotSignedByServer, "transaction not signed by %s", serverAccountID)
	}

	if clientDomainSigner != "" && !found[clientDomainSigner] {
		return nil, NewChallengeError(ErrMissingClientDomainSignature, "transaction not signed by client domain signer %s", clientDomainSigner)
	}

	if len(matched) == 1 {
		return nil, NewChallengeError(ErrNotSignedByClient, "transaction not signed by any of %s", strings.Join(clientSigners, ", "))
	}

	if len(matched) != len(tx.Signatures) {
		return nil, NewChallengeError(ErrUnrecognizedSignature, "%d signatures, %d recognized", len(tx.Signatures), len(matched))
	}

	result := make([]string, 0, len(matched)-1)
	for _, m := range matched {
		if m != serverAccountID {
			result = append(result, m)
		}
	}
	return result, nil
}

// VerifyChallengeTxThreshold is like VerifyChallengeTxSigners but takes
// weighted signers and also requires the sum of the weights of the signers
// that signed to reach threshold. When a signer appears more than once, only
// the first entry counts and negative weights count as zero. It returns the
// signers that signed.
func VerifyChallengeTxThreshold(
	tx *txn.Transaction,
	serverAccountID string,
	network string,
	webAuthDomain string,
	homeDomains []string,
	now time.Time,
	threshold int32,
	signers []Signer,
) ([]Signer, error) {
	weights := make(map[string]int32, len(signers))
	addresses := make([]string, 0, len(signers))
	for _, s := range signers {
		if _, ok := weights[s.Address]; ok {
			continue
		}
		weights[s.Address] = s.Weight
		addresses = append(addresses, s.Address)
	}

	matched, err := VerifyChallengeTxSigners(tx, serverAccountID, network, webAuthDomain, homeDomains, now, addresses...)
	if err != nil {
		return nil, err
	}

	var weight int64
	found := make([]Signer, 0, len(matched))
	for _, address := range matched {
		w, ok := weights[address]
		if !ok {
			// the client domain signer
			continue
		}
		if w > 0 {
			weight += int64(w)
		}
		found = append(found, Signer{Address: address, Weight: w})
	}

	if weight < int64(threshold) {
		return nil, NewChallengeError(ErrThresholdNotMet, "signers with weight %d do not meet threshold %d", weight, threshold)
	}

	return found, nil
}

// findClientDomainSigner returns the source of the client_domain operation of tx,
// if any.
func findClientDomainSigner(tx *txn.Transaction) string {
	for _, op := range tx.Operations[1:] {
		data, ok := op.GetManageData()
		if ok && data.Name == ClientDomainKey && op.SourceAccount != nil {
			return op.SourceAccount.BaseAddress()
		}
	}
	return ""
}
