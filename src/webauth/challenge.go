package webauth

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/mosaicnetworks/webauth/src/crypto/keys"
	"github.com/mosaicnetworks/webauth/src/strkey"
	"github.com/mosaicnetworks/webauth/src/txn"
	"github.com/pkg/errors"
)

const (
	// NonceLength is the number of random bytes in a challenge nonce.
	NonceLength = 48
	// EncodedNonceLength is the length of the base64 text of a nonce, which is
	// the value of the first operation.
	EncodedNonceLength = 64

	// DefaultTimeout is the validity of a challenge when none is given.
	DefaultTimeout = 5 * time.Minute
	// GracePeriod widens both time bounds when reading a challenge, to absorb
	// clock skew between server and client.
	GracePeriod = 300 * time.Second

	// WebAuthDomainKey is the data name of the operation carrying the domain
	// of the authentication endpoint.
	WebAuthDomainKey = "web_auth_domain"
	// ClientDomainKey is the data name of the operation carrying the domain
	// of the client's wallet.
	ClientDomainKey = "client_domain"

	authKeySuffix = " auth"

	baseFee = 100
)

// AuthKey returns the data name of the first operation of a challenge issued
// for homeDomain.
func AuthKey(homeDomain string) string {
	return homeDomain + authKeySuffix
}

type buildOptions struct {
	nonce            []byte
	validFrom        time.Time
	clientDomain     string
	clientDomainKey  string
	clientDomainSeen bool
}

// BuildOption customises BuildChallengeTx.
type BuildOption func(*buildOptions)

// WithNonce replaces the random nonce. It must be NonceLength bytes long.
func WithNonce(nonce []byte) BuildOption {
	return func(o *buildOptions) {
		o.nonce = nonce
	}
}

// WithValidFrom sets the start of the validity window, which is the current
// time by default.
func WithValidFrom(t time.Time) BuildOption {
	return func(o *buildOptions) {
		o.validFrom = t
	}
}

// WithClientDomain adds a client_domain operation whose source is
// signingKey, the account that signs on behalf of the client's wallet.
func WithClientDomain(domain, signingKey string) BuildOption {
	return func(o *buildOptions) {
		o.clientDomain = domain
		o.clientDomainKey = signingKey
		o.clientDomainSeen = true
	}
}

// BuildChallengeTx returns a challenge transaction for clientAccountID,
// signed by the server key whose seed is serverSeed. The challenge is valid
// for timebound, or DefaultTimeout when timebound is zero.
func BuildChallengeTx(
	serverSeed string,
	clientAccountID string,
	webAuthDomain string,
	homeDomain string,
	network string,
	timebound time.Duration,
	opts ...BuildOption,
) (*txn.Transaction, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	serverKP, err := keys.ParseFull(serverSeed)
	if err != nil {
		return nil, errors.Wrap(err, "server seed")
	}

	if !strkey.IsValid(strkey.VersionByteAccountID, clientAccountID) {
		return nil, errors.Errorf("%q is not a valid account address", clientAccountID)
	}
	clientAccount := txn.MustMuxedAccount(clientAccountID)

	if timebound < 0 {
		return nil, errors.Errorf("negative timebound %s", timebound)
	}
	if timebound == 0 {
		timebound = DefaultTimeout
	}

	nonce := o.nonce
	if nonce == nil {
		nonce = make([]byte, NonceLength)
		if _, err := rand.Read(nonce); err != nil {
			return nil, errors.Wrap(err, "generating nonce")
		}
	} else if len(nonce) != NonceLength {
		return nil, NewChallengeError(ErrInvalidNonceLength, "nonce of %d bytes, must be %d", len(nonce), NonceLength)
	}

	validFrom := o.validFrom
	if validFrom.IsZero() {
		validFrom = time.Now()
	}

	serverAccount := txn.MustMuxedAccount(serverKP.Address())

	authOp, err := txn.NewManageData(
		AuthKey(homeDomain),
		[]byte(base64.StdEncoding.EncodeToString(nonce)),
		&clientAccount,
	)
	if err != nil {
		return nil, errors.Wrap(err, "home domain")
	}

	webAuthOp, err := txn.NewManageData(WebAuthDomainKey, []byte(webAuthDomain), &serverAccount)
	if err != nil {
		return nil, errors.Wrap(err, "web auth domain")
	}

	ops := []txn.Operation{authOp, webAuthOp}

	if o.clientDomainSeen {
		if o.clientDomain == "" {
			return nil, errors.New("client domain signing key given without a client domain")
		}
		if !strkey.IsValid(strkey.VersionByteAccountID, o.clientDomainKey) {
			return nil, errors.Errorf("client domain signing key %q is not a valid account address", o.clientDomainKey)
		}
		clientDomainAccount := txn.MustMuxedAccount(o.clientDomainKey)

		clientDomainOp, err := txn.NewManageData(ClientDomainKey, []byte(o.clientDomain), &clientDomainAccount)
		if err != nil {
			return nil, errors.Wrap(err, "client domain")
		}
		ops = append(ops, clientDomainOp)
	}

	// Sequence 0 can never be valid on the ledger, so a challenge is never
	// executable.
	tx := &txn.Transaction{
		SourceAccount: serverAccount,
		Fee:           uint32(baseFee * len(ops)),
		SeqNum:        0,
		TimeBounds:    txn.NewTimeBounds(validFrom, timebound),
		Operations:    ops,
	}

	if err := tx.Sign(network, serverKP); err != nil {
		return nil, errors.Wrap(err, "signing challenge")
	}

	return tx, nil
}
