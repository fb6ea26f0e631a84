// Package webauth implements challenge-response authentication of ledger
// accounts.
//
// A server proves control of its signing key, and a client proves control of
// an account, by exchanging a challenge transaction that is never submitted
// to the ledger. The server builds the challenge with BuildChallengeTx and
// signs it. The client checks it, with ReadChallengeTx, and signs it with
// one or more of the account's signers. The server then checks the
// signatures against the signers it knows for the account, either as a plain
// list (VerifyChallengeTxSigners) or as a weighted set that must reach a
// threshold (VerifyChallengeTxThreshold).
//
// The challenge is made of manage-data operations:
//
//	op 0:  "{home domain} auth" = base64(48 random bytes)   source: client
//	op 1:  "web_auth_domain"    = web auth domain           source: server
//	op 2:  "client_domain"      = client domain (optional)  source: client
//	                                                         domain signer
//
// Its sequence number is 0 so that it can never be executed, and its time
// bounds limit the validity of the challenge.
//
// Authenticator wraps these functions with a configured server key, logging
// and metrics.
package webauth
