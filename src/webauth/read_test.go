package webauth

import (
	"strings"
	"testing"
	"time"

	"github.com/mosaicnetworks/webauth/src/txn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func read(tx *txn.Transaction, serverAccountID string, now time.Time) (string, string, error) {
	return ReadChallengeTx(tx, serverAccountID, testNetwork, testWebAuthDomain, []string{testHomeDomain}, now)
}

func TestReadChallengeTx(t *testing.T) {
	server := newKey(t)
	client := newKey(t)

	tx := buildTestChallenge(t, server, client)

	clientAccountID, homeDomain, err := read(tx, server.Address(), testNow)
	require.NoError(t, err)
	assert.Equal(t, client.Address(), clientAccountID)
	assert.Equal(t, testHomeDomain, homeDomain)
}

func TestReadChallengeTxThroughEnvelope(t *testing.T) {
	server := newKey(t)
	client := newKey(t)

	b64, err := buildTestChallenge(t, server, client).Base64()
	require.NoError(t, err)

	tx, err := txn.FromBase64(b64)
	require.NoError(t, err)

	clientAccountID, _, err := read(tx, server.Address(), testNow)
	require.NoError(t, err)
	assert.Equal(t, client.Address(), clientAccountID)
}

func TestReadChallengeTxMatchesAnyHomeDomain(t *testing.T) {
	server := newKey(t)
	client := newKey(t)

	tx := buildTestChallenge(t, server, client)

	_, homeDomain, err := ReadChallengeTx(tx, server.Address(), testNetwork, testWebAuthDomain,
		[]string{"other.com", testHomeDomain}, testNow)
	require.NoError(t, err)
	assert.Equal(t, testHomeDomain, homeDomain)

	_, _, err = ReadChallengeTx(tx, server.Address(), testNetwork, testWebAuthDomain,
		[]string{"other.com"}, testNow)
	checkChallengeErr(t, err, ErrInvalidChallenge)

	_, _, err = ReadChallengeTx(tx, server.Address(), testNetwork, testWebAuthDomain, nil, testNow)
	checkChallengeErr(t, err, ErrInvalidChallenge)
}

func TestReadChallengeTxClientDomain(t *testing.T) {
	server := newKey(t)
	client := newKey(t)
	wallet := newKey(t)

	tx := buildTestChallenge(t, server, client, WithClientDomain("wallet.example.com", wallet.Address()))

	clientAccountID, _, err := read(tx, server.Address(), testNow)
	require.NoError(t, err)
	assert.Equal(t, client.Address(), clientAccountID)
}

func TestReadChallengeTxInvalid(t *testing.T) {
	server := newKey(t)
	client := newKey(t)
	other := newKey(t)

	cases := []struct {
		name   string
		modify func(tx *txn.Transaction)
		want   ChallengeErrType
	}{
		{
			"non-zero sequence",
			func(tx *txn.Transaction) { tx.SeqNum = 1 },
			ErrInvalidChallenge,
		},
		{
			"muxed source",
			func(tx *txn.Transaction) {
				m, err := txn.NewMuxedAccount(server.Address(), 7)
				require.NoError(t, err)
				tx.SourceAccount = m
			},
			ErrInvalidChallenge,
		},
		{
			"other source",
			func(tx *txn.Transaction) { tx.SourceAccount = *account(t, other) },
			ErrInvalidChallenge,
		},
		{
			"no operations",
			func(tx *txn.Transaction) { tx.Operations = nil },
			ErrInvalidChallenge,
		},
		{
			"first operation not manage data",
			func(tx *txn.Transaction) { tx.Operations[0] = txn.NewBumpSequence(1, account(t, client)) },
			ErrInvalidChallenge,
		},
		{
			"first operation without source",
			func(tx *txn.Transaction) { tx.Operations[0].SourceAccount = nil },
			ErrInvalidChallenge,
		},
		{
			"first operation with muxed source",
			func(tx *txn.Transaction) {
				m, err := txn.NewMuxedAccount(client.Address(), 1)
				require.NoError(t, err)
				tx.Operations[0].SourceAccount = &m
			},
			ErrInvalidChallenge,
		},
		{
			"other home domain",
			func(tx *txn.Transaction) { tx.Operations[0].ManageData.Name = "other.com auth" },
			ErrInvalidChallenge,
		},
		{
			"payment operation",
			func(tx *txn.Transaction) {
				tx.Operations = append(tx.Operations, txn.NewPayment(*account(t, client), 10, account(t, server)))
			},
			ErrUnrecognizedOperation,
		},
		{
			"operation from client",
			func(tx *txn.Transaction) { tx.Operations[1].SourceAccount = account(t, client) },
			ErrUnrecognizedOperation,
		},
		{
			"operation without source",
			func(tx *txn.Transaction) {
				op, err := txn.NewManageData("extra", []byte("value"), nil)
				require.NoError(t, err)
				tx.Operations = append(tx.Operations, op)
			},
			ErrUnrecognizedOperation,
		},
		{
			"other web auth domain",
			func(tx *txn.Transaction) { tx.Operations[1].ManageData.Value = []byte("evil.example.com") },
			ErrInvalidChallenge,
		},
		{
			"operation checked before web auth domain",
			func(tx *txn.Transaction) {
				tx.Operations[1].ManageData.Value = []byte("evil.example.com")
				tx.Operations = append(tx.Operations, txn.NewBumpSequence(1, account(t, server)))
			},
			ErrUnrecognizedOperation,
		},
		{
			"no time bounds",
			func(tx *txn.Transaction) { tx.TimeBounds = nil },
			ErrChallengeExpired,
		},
		{
			"infinite time bounds",
			func(tx *txn.Transaction) { tx.TimeBounds.MaxTime = 0 },
			ErrChallengeExpired,
		},
	}

	for _, c := range cases {
		tx := buildTestChallenge(t, server, client)
		c.modify(tx)
		resign(t, tx, server)

		_, _, err := read(tx, server.Address(), testNow)
		if err == nil || !IsChallengeErr(err, c.want) {
			t.Fatalf("%s: expected %s error, got %v", c.name, c.want, err)
		}
	}
}

func TestReadChallengeTxNonce(t *testing.T) {
	server := newKey(t)
	client := newKey(t)

	cases := []struct {
		name  string
		value []byte
	}{
		{"no value", nil},
		{"short", []byte(strings.Repeat("A", 63))},
		{"long", []byte(strings.Repeat("A", 65))},
		{"not base64", []byte(strings.Repeat("!", 64))},
		{"padded", []byte(strings.Repeat("A", 62) + "==")},
		{"not utf8", append([]byte{0xff, 0xfe}, []byte(strings.Repeat("A", 62))...)},
	}

	for _, c := range cases {
		tx := buildTestChallenge(t, server, client)
		tx.Operations[0].ManageData.Value = c.value
		resign(t, tx, server)

		_, _, err := read(tx, server.Address(), testNow)
		if err == nil || !IsChallengeErr(err, ErrMalformedNonce) {
			t.Fatalf("%s: expected MalformedNonce error, got %v", c.name, err)
		}
	}
}

func TestReadChallengeTxNotSignedByServer(t *testing.T) {
	server := newKey(t)
	client := newKey(t)

	tx := buildTestChallenge(t, server, client)
	tx.Signatures = nil
	_, _, err := read(tx, server.Address(), testNow)
	checkChallengeErr(t, err, ErrNotSignedByServer)

	resign(t, tx, client)
	_, _, err = read(tx, server.Address(), testNow)
	checkChallengeErr(t, err, ErrNotSignedByServer)

	// signed for another network
	tx.Signatures = nil
	require.NoError(t, tx.Sign(txn.PublicNetworkPassphrase, server))
	_, _, err = read(tx, server.Address(), testNow)
	checkChallengeErr(t, err, ErrNotSignedByServer)

	// a signature made before the transaction was modified
	tx = buildTestChallenge(t, server, client)
	tx.TimeBounds.MaxTime++
	_, _, err = read(tx, server.Address(), testNow)
	checkChallengeErr(t, err, ErrNotSignedByServer)
}

func TestReadChallengeTxTimeBounds(t *testing.T) {
	server := newKey(t)
	client := newKey(t)

	// valid in [testNow, testNow+5m], widened by the grace period on both
	// sides.
	tx := buildTestChallenge(t, server, client)
	minTime := time.Unix(tx.TimeBounds.MinTime, 0)
	maxTime := time.Unix(tx.TimeBounds.MaxTime, 0)

	cases := []struct {
		now   time.Time
		valid bool
	}{
		{minTime.Add(-GracePeriod - time.Second), false},
		{minTime.Add(-GracePeriod), true},
		{minTime.Add(-GracePeriod + time.Second), true},
		{minTime, true},
		{maxTime, true},
		{maxTime.Add(GracePeriod - time.Second), true},
		{maxTime.Add(GracePeriod), true},
		{maxTime.Add(GracePeriod + time.Second), false},
	}

	for _, c := range cases {
		_, _, err := read(tx, server.Address(), c.now)
		if c.valid && err != nil {
			t.Fatalf("now=%d: unexpected error %v", c.now.Unix(), err)
		}
		if !c.valid {
			checkChallengeErr(t, err, ErrChallengeExpired)
		}
	}
}

func TestReadChallengeTxExpiredBoundary(t *testing.T) {
	server := newKey(t)
	client := newKey(t)

	now := testNow

	// expired 301 seconds ago
	tx := buildTestChallenge(t, server, client)
	tx.TimeBounds = &txn.TimeBounds{MinTime: now.Unix() - 600, MaxTime: now.Unix() - 301}
	resign(t, tx, server)
	_, _, err := read(tx, server.Address(), now)
	checkChallengeErr(t, err, ErrChallengeExpired)

	// expired 299 seconds ago, still within the grace period
	tx.TimeBounds = &txn.TimeBounds{MinTime: now.Unix() - 600, MaxTime: now.Unix() - 299}
	resign(t, tx, server)
	_, _, err = read(tx, server.Address(), now)
	require.NoError(t, err)
}

func TestReadChallengeTxInvalidServerAccount(t *testing.T) {
	server := newKey(t)
	client := newKey(t)

	tx := buildTestChallenge(t, server, client)

	_, _, err := read(tx, server.Seed(), testNow)
	checkChallengeErr(t, err, ErrInvalidChallenge)

	_, _, err = read(nil, server.Address(), testNow)
	checkChallengeErr(t, err, ErrInvalidChallenge)
}
