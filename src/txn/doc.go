// Package txn defines the subset of ledger transactions needed to exchange
// authentication challenges.
//
// A Transaction has a source account, a sequence number, optional time
// bounds, an ordered list of operations and an ordered list of decorated
// signatures. Signatures are computed over Hash, which mixes the network id
// (the SHA256 of the network passphrase), an envelope type tag and a
// canonical encoding of every field except the signatures.
//
// Operations are a tagged variant: the Type field says which of the body
// pointers is set. Only ManageData is used by the authentication protocol,
// the other variants exist so that challenges carrying anything else can be
// recognised and refused.
//
// Transactions travel between client and server as the base64 text of a
// canonical CBOR envelope (Base64 and FromBase64).
package txn
