package webauth

import (
	"bytes"
	"encoding/base64"
	"time"
	"unicode/utf8"

	"github.com/mosaicnetworks/webauth/src/strkey"
	"github.com/mosaicnetworks/webauth/src/txn"
)

// ReadChallengeTx checks that tx is a well-formed challenge issued and signed
// by serverAccountID for one of homeDomains and webAuthDomain, and that now
// lies in its validity window. It returns the client account the challenge
// was issued for and the matched home domain.
//
// It does not check client signatures; see VerifyChallengeTxSigners and
// VerifyChallengeTxThreshold.
func ReadChallengeTx(
	tx *txn.Transaction,
	serverAccountID string,
	network string,
	webAuthDomain string,
	homeDomains []string,
	now time.Time,
) (clientAccountID string, matchedHomeDomain string, err error) {
	if tx == nil {
		return "", "", NewChallengeError(ErrInvalidChallenge, "no transaction")
	}
	if !strkey.IsValid(strkey.VersionByteAccountID, serverAccountID) {
		return "", "", NewChallengeError(ErrInvalidChallenge, "server account %q is not a valid account address", serverAccountID)
	}

	if tx.SeqNum != 0 {
		return "", "", NewChallengeError(ErrInvalidChallenge, "sequence number is %d, must be 0", tx.SeqNum)
	}

	if tx.SourceAccount.IsMuxed() {
		return "", "", NewChallengeError(ErrInvalidChallenge, "transaction source %s is multiplexed", tx.SourceAccount)
	}
	if tx.SourceAccount.Address() != serverAccountID {
		return "", "", NewChallengeError(ErrInvalidChallenge, "transaction source %s is not the server account", tx.SourceAccount)
	}

	if len(tx.Operations) == 0 {
		return "", "", NewChallengeError(ErrInvalidChallenge, "transaction has no operations")
	}
	authOp := tx.Operations[0]
	authData, ok := authOp.GetManageData()
	if !ok {
		return "", "", NewChallengeError(ErrInvalidChallenge, "operation 0 is a %s operation, must be manage data", authOp.Type)
	}
	if authOp.SourceAccount == nil {
		return "", "", NewChallengeError(ErrInvalidChallenge, "operation 0 has no source account")
	}
	if authOp.SourceAccount.IsMuxed() {
		return "", "", NewChallengeError(ErrInvalidChallenge, "operation 0 source %s is multiplexed", authOp.SourceAccount)
	}
	clientAccountID = authOp.SourceAccount.Address()

	for _, domain := range homeDomains {
		if authData.Name == AuthKey(domain) {
			matchedHomeDomain = domain
			break
		}
	}
	if matchedHomeDomain == "" {
		return "", "", NewChallengeError(ErrInvalidChallenge, "operation 0 key %q does not match any home domain", authData.Name)
	}

	// Every subsequent operation is checked for shape before any of their
	// values is looked at.
	for i, op := range tx.Operations[1:] {
		data, ok := op.GetManageData()
		if !ok {
			return "", "", NewChallengeError(ErrUnrecognizedOperation, "operation %d is a %s operation", i+1, op.Type)
		}
		if op.SourceAccount == nil {
			return "", "", NewChallengeError(ErrUnrecognizedOperation, "operation %d has no source account", i+1)
		}
		if data.Name != ClientDomainKey && op.SourceAccount.Address() != serverAccountID {
			return "", "", NewChallengeError(ErrUnrecognizedOperation, "operation %d source %s is not the server account", i+1, op.SourceAccount)
		}
	}

	for i, op := range tx.Operations[1:] {
		data, _ := op.GetManageData()
		if data.Name == WebAuthDomainKey && !bytes.Equal(data.Value, []byte(webAuthDomain)) {
			return "", "", NewChallengeError(ErrInvalidChallenge, "operation %d web auth domain %q, want %q", i+1, data.Value, webAuthDomain)
		}
	}

	if err := checkNonce(authData.Value); err != nil {
		return "", "", err
	}

	if len(tx.Signatures) == 0 {
		return "", "", NewChallengeError(ErrNotSignedByServer, "transaction has no signatures")
	}
	matched, err := MatchSigners(tx, network, []string{serverAccountID})
	if err != nil {
		return "", "", err
	}
	if len(matched) == 0 {
		return "", "", NewChallengeError(ErrNotSignedByServer, "transaction not signed by %s", serverAccountID)
	}

	if tx.TimeBounds == nil || tx.TimeBounds.IsInfinite() {
		return "", "", NewChallengeError(ErrChallengeExpired, "transaction requires non-infinite time bounds")
	}
	if !tx.TimeBounds.Includes(now, GracePeriod) {
		return "", "", NewChallengeError(ErrChallengeExpired, "time %d outside of [%d, %d] with %s grace",
			now.Unix(), tx.TimeBounds.MinTime, tx.TimeBounds.MaxTime, GracePeriod)
	}

	return clientAccountID, matchedHomeDomain, nil
}

// checkNonce accepts a value made of exactly 64 characters of base64 text
// that decode to NonceLength bytes.
func checkNonce(value []byte) error {
	if value == nil {
		return NewChallengeError(ErrMalformedNonce, "operation 0 has no value")
	}
	if !utf8.Valid(value) {
		return NewChallengeError(ErrMalformedNonce, "nonce is not valid UTF-8")
	}
	if n := utf8.RuneCount(value); n != EncodedNonceLength {
		return NewChallengeError(ErrMalformedNonce, "nonce of %d characters, must be %d", n, EncodedNonceLength)
	}
	nonce, err := base64.StdEncoding.DecodeString(string(value))
	if err != nil {
		return NewChallengeError(ErrMalformedNonce, "nonce is not base64: %v", err)
	}
	if len(nonce) != NonceLength {
		return NewChallengeError(ErrMalformedNonce, "nonce decodes to %d bytes, must be %d", len(nonce), NonceLength)
	}
	return nil
}
