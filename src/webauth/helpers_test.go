package webauth

import (
	"testing"
	"time"

	"github.com/mosaicnetworks/webauth/src/crypto/keys"
	"github.com/mosaicnetworks/webauth/src/txn"
	"github.com/stretchr/testify/require"
)

const (
	testNetwork       = txn.TestNetworkPassphrase
	testHomeDomain    = "example.com"
	testWebAuthDomain = "auth.example.com"
)

var testNow = time.Unix(1700000000, 0)

func newKey(t *testing.T) *keys.Full {
	kp, err := keys.Random()
	require.NoError(t, err)
	return kp
}

func fixedNonce() []byte {
	nonce := make([]byte, NonceLength)
	for i := range nonce {
		nonce[i] = byte(i)
	}
	return nonce
}

func buildTestChallenge(t *testing.T, server, client *keys.Full, opts ...BuildOption) *txn.Transaction {
	opts = append([]BuildOption{WithValidFrom(testNow)}, opts...)
	tx, err := BuildChallengeTx(
		server.Seed(),
		client.Address(),
		testWebAuthDomain,
		testHomeDomain,
		testNetwork,
		5*time.Minute,
		opts...,
	)
	require.NoError(t, err)
	return tx
}

// resign drops the signatures of tx and signs it again with kps.
func resign(t *testing.T, tx *txn.Transaction, kps ...*keys.Full) {
	tx.Signatures = nil
	require.NoError(t, tx.Sign(testNetwork, kps...))
}

func addSignatures(t *testing.T, tx *txn.Transaction, kps ...*keys.Full) {
	require.NoError(t, tx.Sign(testNetwork, kps...))
}

func account(t *testing.T, kp *keys.Full) *txn.MuxedAccount {
	m, err := txn.ParseMuxedAccount(kp.Address())
	require.NoError(t, err)
	return &m
}

func checkChallengeErr(t *testing.T, err error, want ChallengeErrType) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if !IsChallengeErr(err, want) {
		t.Fatalf("expected %s error, got %v", want, err)
	}
}
