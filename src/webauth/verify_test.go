package webauth

import (
	"math"
	"testing"
	"time"

	"github.com/mosaicnetworks/webauth/src/crypto/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchSigners(t *testing.T) {
	server := newKey(t)
	client := newKey(t)
	a := newKey(t)
	b := newKey(t)

	tx := buildTestChallenge(t, server, client)
	addSignatures(t, tx, a)

	matched, err := MatchSigners(tx, testNetwork, []string{b.Address(), a.Address(), server.Address()})
	require.NoError(t, err)
	assert.Equal(t, []string{a.Address(), server.Address()}, matched)

	// seeds and garbage are not candidates
	matched, err = MatchSigners(tx, testNetwork, []string{a.Seed(), "bogus", ""})
	require.NoError(t, err)
	assert.Empty(t, matched)

	matched, err = MatchSigners(tx, testNetwork, nil)
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestMatchSignersNoTransaction(t *testing.T) {
	server := newKey(t)

	matched, err := MatchSigners(nil, testNetwork, []string{server.Address()})
	checkChallengeErr(t, err, ErrInvalidChallenge)
	assert.Nil(t, matched)
}

func TestMatchSignersNoDoubleCounting(t *testing.T) {
	server := newKey(t)
	client := newKey(t)

	tx := buildTestChallenge(t, server, client)
	addSignatures(t, tx, client, client)
	require.Len(t, tx.Signatures, 3)

	matched, err := MatchSigners(tx, testNetwork, []string{client.Address(), client.Address()})
	require.NoError(t, err)
	assert.Equal(t, []string{client.Address()}, matched)
}

func TestMatchSignersHintCollision(t *testing.T) {
	server := newKey(t)
	client := newKey(t)
	other := newKey(t)

	tx := buildTestChallenge(t, server, client)
	addSignatures(t, tx, other)
	// a signature whose hint matches the client but that the client did not
	// make
	tx.Signatures[1].Hint = client.Hint()

	matched, err := MatchSigners(tx, testNetwork, []string{client.Address(), other.Address()})
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestVerifyChallengeTxSigners(t *testing.T) {
	server := newKey(t)
	client := newKey(t)

	tx := buildTestChallenge(t, server, client)
	addSignatures(t, tx, client)

	signers, err := VerifyChallengeTxSigners(tx, server.Address(), testNetwork, testWebAuthDomain,
		[]string{testHomeDomain}, testNow, client.Address())
	require.NoError(t, err)
	assert.Equal(t, []string{client.Address()}, signers)
}

func TestVerifyChallengeTxSignersOtherSigner(t *testing.T) {
	server := newKey(t)
	client := newKey(t)
	cosigner := newKey(t)
	unused := newKey(t)

	// the account is controlled by other keys than its master key
	tx := buildTestChallenge(t, server, client)
	addSignatures(t, tx, cosigner)

	signers, err := VerifyChallengeTxSigners(tx, server.Address(), testNetwork, testWebAuthDomain,
		[]string{testHomeDomain}, testNow, client.Address(), cosigner.Address(), unused.Address(), "bogus")
	require.NoError(t, err)
	assert.Equal(t, []string{cosigner.Address()}, signers)
}

func TestVerifyChallengeTxSignersErrors(t *testing.T) {
	server := newKey(t)
	client := newKey(t)
	stranger := newKey(t)

	verify := func(signWith []*keys.Full, signers ...string) error {
		tx := buildTestChallenge(t, server, client)
		for _, k := range signWith {
			addSignatures(t, tx, k)
		}
		_, err := VerifyChallengeTxSigners(tx, server.Address(), testNetwork, testWebAuthDomain,
			[]string{testHomeDomain}, testNow, signers...)
		return err
	}

	// only the server signed
	checkChallengeErr(t, verify(nil, client.Address()), ErrNotSignedByClient)

	// the server does not count as a client signer
	checkChallengeErr(t, verify(nil, server.Address()), ErrNotSignedByClient)

	// no client signers at all
	checkChallengeErr(t, verify([]*keys.Full{client}), ErrNotSignedByClient)

	// a signature from an unknown key
	checkChallengeErr(t, verify([]*keys.Full{client, stranger}, client.Address()), ErrUnrecognizedSignature)

	// the same key signing twice is only matched once
	checkChallengeErr(t, verify([]*keys.Full{client, client}, client.Address(), client.Address()), ErrUnrecognizedSignature)
}

func TestVerifyChallengeTxSignersReadErrors(t *testing.T) {
	server := newKey(t)
	client := newKey(t)

	tx := buildTestChallenge(t, server, client)
	addSignatures(t, tx, client)

	_, err := VerifyChallengeTxSigners(tx, server.Address(), testNetwork, testWebAuthDomain,
		[]string{testHomeDomain}, testNow.Add(DefaultTimeout+GracePeriod+time.Second), client.Address())
	checkChallengeErr(t, err, ErrChallengeExpired)

	tx.Signatures = tx.Signatures[1:]
	_, err = VerifyChallengeTxSigners(tx, server.Address(), testNetwork, testWebAuthDomain,
		[]string{testHomeDomain}, testNow, client.Address())
	checkChallengeErr(t, err, ErrNotSignedByServer)
}

func TestVerifyChallengeTxSignersClientDomain(t *testing.T) {
	server := newKey(t)
	client := newKey(t)
	wallet := newKey(t)

	tx := buildTestChallenge(t, server, client, WithClientDomain("wallet.example.com", wallet.Address()))
	addSignatures(t, tx, client)

	_, err := VerifyChallengeTxSigners(tx, server.Address(), testNetwork, testWebAuthDomain,
		[]string{testHomeDomain}, testNow, client.Address())
	checkChallengeErr(t, err, ErrMissingClientDomainSignature)

	addSignatures(t, tx, wallet)

	signers, err := VerifyChallengeTxSigners(tx, server.Address(), testNetwork, testWebAuthDomain,
		[]string{testHomeDomain}, testNow, client.Address())
	require.NoError(t, err)
	assert.Equal(t, []string{client.Address(), wallet.Address()}, signers)

	// the client domain signature is enough when the client did not sign
	tx = buildTestChallenge(t, server, client, WithClientDomain("wallet.example.com", wallet.Address()))
	addSignatures(t, tx, wallet)
	signers, err = VerifyChallengeTxSigners(tx, server.Address(), testNetwork, testWebAuthDomain,
		[]string{testHomeDomain}, testNow, client.Address())
	require.NoError(t, err)
	assert.Equal(t, []string{wallet.Address()}, signers)

	signers, err = VerifyChallengeTxSigners(tx, server.Address(), testNetwork, testWebAuthDomain,
		[]string{testHomeDomain}, testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{wallet.Address()}, signers)
}

func TestVerifyChallengeTxThreshold(t *testing.T) {
	server := newKey(t)
	a := newKey(t)
	b := newKey(t)

	signers := []Signer{
		{Address: a.Address(), Weight: 1},
		{Address: b.Address(), Weight: 2},
	}

	verify := func(threshold int32, signers []Signer, signWith ...*keys.Full) ([]Signer, error) {
		tx := buildTestChallenge(t, server, a)
		for _, k := range signWith {
			addSignatures(t, tx, k)
		}
		return VerifyChallengeTxThreshold(tx, server.Address(), testNetwork, testWebAuthDomain,
			[]string{testHomeDomain}, testNow, threshold, signers)
	}

	_, err := verify(3, signers, a)
	checkChallengeErr(t, err, ErrThresholdNotMet)

	found, err := verify(3, signers, a, b)
	require.NoError(t, err)
	assert.Equal(t, signers, found)

	found, err = verify(2, signers, b)
	require.NoError(t, err)
	assert.Equal(t, []Signer{{Address: b.Address(), Weight: 2}}, found)

	found, err = verify(0, signers, a)
	require.NoError(t, err)
	assert.Equal(t, []Signer{{Address: a.Address(), Weight: 1}}, found)

	// repeated signers count once, with the first weight
	repeated := []Signer{
		{Address: a.Address(), Weight: 1},
		{Address: a.Address(), Weight: 5},
	}
	_, err = verify(2, repeated, a)
	checkChallengeErr(t, err, ErrThresholdNotMet)

	// errors of the underlying checks come first
	_, err = verify(1, signers)
	checkChallengeErr(t, err, ErrNotSignedByClient)
}

func TestVerifyChallengeTxThresholdWeightRange(t *testing.T) {
	server := newKey(t)
	a := newKey(t)
	b := newKey(t)

	verify := func(threshold int32, signers []Signer) ([]Signer, error) {
		tx := buildTestChallenge(t, server, a)
		addSignatures(t, tx, a, b)
		return VerifyChallengeTxThreshold(tx, server.Address(), testNetwork, testWebAuthDomain,
			[]string{testHomeDomain}, testNow, threshold, signers)
	}

	// the sum of the weights does not wrap around
	large := []Signer{
		{Address: a.Address(), Weight: math.MaxInt32},
		{Address: b.Address(), Weight: 1},
	}
	found, err := verify(10, large)
	require.NoError(t, err)
	assert.Equal(t, large, found)

	found, err = verify(math.MaxInt32, large)
	require.NoError(t, err)
	assert.Equal(t, large, found)

	// a negative weight does not lower the total
	negative := []Signer{
		{Address: a.Address(), Weight: 3},
		{Address: b.Address(), Weight: -2},
	}
	found, err = verify(3, negative)
	require.NoError(t, err)
	assert.Equal(t, negative, found)

	_, err = verify(4, negative)
	checkChallengeErr(t, err, ErrThresholdNotMet)
}

func TestVerifyChallengeTxThresholdClientDomain(t *testing.T) {
	server := newKey(t)
	client := newKey(t)
	wallet := newKey(t)

	tx := buildTestChallenge(t, server, client, WithClientDomain("wallet.example.com", wallet.Address()))
	addSignatures(t, tx, client, wallet)

	found, err := VerifyChallengeTxThreshold(tx, server.Address(), testNetwork, testWebAuthDomain,
		[]string{testHomeDomain}, testNow, 1, []Signer{{Address: client.Address(), Weight: 1}})
	require.NoError(t, err)
	assert.Equal(t, []Signer{{Address: client.Address(), Weight: 1}}, found)
}
