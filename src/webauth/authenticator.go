package webauth

import (
	"time"

	"github.com/mosaicnetworks/webauth/src/config"
	"github.com/mosaicnetworks/webauth/src/crypto/keys"
	"github.com/mosaicnetworks/webauth/src/txn"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Authenticator issues and verifies challenges on behalf of a server key,
// for the network and domains of a Config. It is safe for concurrent use.
type Authenticator struct {
	server  *keys.Full
	conf    *config.Config
	metrics *Metrics
	logger  *logrus.Entry
}

// NewAuthenticator validates conf and returns an Authenticator signing with
// server. Metrics are registered with reg when it is not nil.
func NewAuthenticator(server *keys.Full, conf *config.Config, reg prometheus.Registerer) (*Authenticator, error) {
	if server == nil {
		return nil, errors.New("no server key")
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	metrics, err := NewMetrics(reg)
	if err != nil {
		return nil, errors.Wrap(err, "registering metrics")
	}

	a := &Authenticator{
		server:  server,
		conf:    conf,
		metrics: metrics,
		logger:  conf.Logger().WithField("server", server.Address()),
	}

	a.logger.WithFields(logrus.Fields{
		"home_domains":    conf.HomeDomains,
		"web_auth_domain": conf.WebAuthDomain,
		"timeout":         conf.ChallengeTimeout,
	}).Debug("NewAuthenticator")

	return a, nil
}

// Address returns the account address of the server key.
func (a *Authenticator) Address() string {
	return a.server.Address()
}

// Challenge builds a challenge for clientAccountID, valid from now for the
// configured timeout, under the first configured home domain. A configured
// client domain is added unless opts override it.
func (a *Authenticator) Challenge(clientAccountID string, now time.Time, opts ...BuildOption) (*txn.Transaction, error) {
	all := []BuildOption{WithValidFrom(now)}
	if a.conf.ClientDomain != "" {
		all = append(all, WithClientDomain(a.conf.ClientDomain, a.conf.ClientDomainKey))
	}
	all = append(all, opts...)

	tx, err := BuildChallengeTx(
		a.server.Seed(),
		clientAccountID,
		a.conf.WebAuthDomain,
		a.conf.HomeDomain(),
		a.conf.Network,
		a.conf.ChallengeTimeout,
		all...,
	)
	a.metrics.observeIssued(err)

	fields := logrus.Fields{
		"client":      clientAccountID,
		"home_domain": a.conf.HomeDomain(),
	}
	if err != nil {
		a.logger.WithFields(fields).WithError(err).Debug("Challenge")
		return nil, err
	}
	a.logger.WithFields(fields).Debug("Challenge")

	return tx, nil
}

// Read checks tx as ReadChallengeTx does against the configuration.
func (a *Authenticator) Read(tx *txn.Transaction, now time.Time) (clientAccountID string, homeDomain string, err error) {
	return ReadChallengeTx(tx, a.server.Address(), a.conf.Network, a.conf.WebAuthDomain, a.conf.HomeDomains, now)
}

// VerifySigners checks tx as VerifyChallengeTxSigners does against the
// configuration.
func (a *Authenticator) VerifySigners(tx *txn.Transaction, now time.Time, signers ...string) ([]string, error) {
	signed, err := VerifyChallengeTxSigners(tx, a.server.Address(), a.conf.Network, a.conf.WebAuthDomain, a.conf.HomeDomains, now, signers...)
	a.observeVerification(tx, err, len(signed))
	return signed, err
}

// VerifyThreshold checks tx as VerifyChallengeTxThreshold does against the
// configuration.
func (a *Authenticator) VerifyThreshold(tx *txn.Transaction, now time.Time, threshold int32, signers []Signer) ([]Signer, error) {
	signed, err := VerifyChallengeTxThreshold(tx, a.server.Address(), a.conf.Network, a.conf.WebAuthDomain, a.conf.HomeDomains, now, threshold, signers)
	a.observeVerification(tx, err, len(signed))
	return signed, err
}

func (a *Authenticator) observeVerification(tx *txn.Transaction, err error, signed int) {
	a.metrics.observeVerification(err)

	fields := logrus.Fields{
		"result": resultLabel(err),
		"signed": signed,
	}
	if tx != nil && len(tx.Operations) > 0 && tx.Operations[0].SourceAccount != nil {
		fields["client"] = tx.Operations[0].SourceAccount.Address()
	}

	entry := a.logger.WithFields(fields)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Debug("Verify")
}
