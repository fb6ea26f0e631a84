package txn

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"

	"github.com/mosaicnetworks/webauth/src/crypto"
	"github.com/mosaicnetworks/webauth/src/crypto/keys"
	"github.com/pkg/errors"
	"github.com/ugorji/go/codec"
)

// EnvelopeTypeTx is the tag mixed into the signature base of transactions.
const EnvelopeTypeTx uint32 = 2

// MaxOperations is the maximum number of operations in a transaction.
const MaxOperations = 100

// Transaction is a ledger transaction with its signatures.
type Transaction struct {
	SourceAccount MuxedAccount
	Fee           uint32
	SeqNum        int64
	TimeBounds    *TimeBounds
	Operations    []Operation
	Signatures    []keys.DecoratedSignature
}

// transactionBody is everything that is signed, ie. the transaction minus its
// signatures.
type transactionBody struct {
	SourceAccount MuxedAccount
	Fee           uint32
	SeqNum        int64
	TimeBounds    *TimeBounds
	Operations    []Operation
}

func (tx *Transaction) body() transactionBody {
	return transactionBody{
		SourceAccount: tx.SourceAccount,
		Fee:           tx.Fee,
		SeqNum:        tx.SeqNum,
		TimeBounds:    tx.TimeBounds,
		Operations:    tx.Operations,
	}
}

func codecHandle() *codec.CborHandle {
	ch := new(codec.CborHandle)
	ch.Canonical = true
	return ch
}

func encode(v interface{}) ([]byte, error) {
	b := new(bytes.Buffer)
	enc := codec.NewEncoder(b, codecHandle())

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// SignatureBase returns the bytes whose hash is signed: the network id, the
// envelope type and the canonical encoding of the body.
func (tx *Transaction) SignatureBase(network string) ([]byte, error) {
	bodyBytes, err := encode(tx.body())
	if err != nil {
		return nil, errors.Wrap(err, "encoding transaction body")
	}

	networkID := crypto.NetworkID(network)

	base := make([]byte, 0, len(networkID)+4+len(bodyBytes))
	base = append(base, networkID[:]...)
	base = binary.BigEndian.AppendUint32(base, EnvelopeTypeTx)
	base = append(base, bodyBytes...)

	return base, nil
}

// Hash returns the network specific hash that signers sign.
func (tx *Transaction) Hash(network string) ([32]byte, error) {
	var hash [32]byte

	base, err := tx.SignatureBase(network)
	if err != nil {
		return hash, err
	}

	copy(hash[:], crypto.SHA256(base))
	return hash, nil
}

// HashHex returns the hex representation of Hash.
func (tx *Transaction) HashHex(network string) (string, error) {
	hash, err := tx.Hash(network)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(hash[:]), nil
}

// Sign appends one decorated signature per key-pair.
func (tx *Transaction) Sign(network string, kps ...*keys.Full) error {
	hash, err := tx.Hash(network)
	if err != nil {
		return err
	}

	for _, kp := range kps {
		tx.Signatures = append(tx.Signatures, kp.SignDecorated(hash[:]))
	}

	return nil
}

// Validate checks the structural limits of the transaction.
func (tx *Transaction) Validate() error {
	if len(tx.Operations) == 0 {
		return errors.New("transaction has no operations")
	}
	if len(tx.Operations) > MaxOperations {
		return errors.Errorf("transaction has %d operations, maximum is %d", len(tx.Operations), MaxOperations)
	}
	for i, op := range tx.Operations {
		if err := op.Validate(); err != nil {
			return errors.Wrapf(err, "operation %d", i)
		}
	}
	return nil
}

// Marshal returns the canonical CBOR encoding of the transaction and its
// signatures.
func (tx *Transaction) Marshal() ([]byte, error) {
	return encode(tx)
}

// Unmarshal decodes data produced by Marshal.
func (tx *Transaction) Unmarshal(data []byte) error {
	b := bytes.NewBuffer(data)
	dec := codec.NewDecoder(b, codecHandle())

	return dec.Decode(tx)
}

// Base64 returns the base64 text of Marshal.
func (tx *Transaction) Base64() (string, error) {
	data, err := tx.Marshal()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// FromBase64 parses the text produced by Transaction.Base64.
func FromBase64(s string) (*Transaction, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "decoding base64 envelope")
	}

	tx := new(Transaction)
	if err := tx.Unmarshal(data); err != nil {
		return nil, errors.Wrap(err, "decoding transaction envelope")
	}

	return tx, nil
}
