package txn

import (
	"fmt"

	"github.com/pkg/errors"
)

// OperationType tags the body of an Operation.
type OperationType int32

const (
	// OperationTypePayment sends an amount of the native asset.
	OperationTypePayment OperationType = 1
	// OperationTypeManageData sets or deletes a named data entry.
	OperationTypeManageData OperationType = 10
	// OperationTypeBumpSequence bumps the sequence number of the source
	// account.
	OperationTypeBumpSequence OperationType = 11
)

// MaxDataNameLength is the maximum length in bytes of a data entry name, and
// MaxDataValueLength of its value.
const (
	MaxDataNameLength  = 64
	MaxDataValueLength = 64
)

var operationTypes = map[OperationType]string{
	OperationTypePayment:      "Payment",
	OperationTypeManageData:   "ManageData",
	OperationTypeBumpSequence: "BumpSequence",
}

// String returns the name of the operation type
func (t OperationType) String() string {
	if s, ok := operationTypes[t]; ok {
		return s
	}
	return fmt.Sprintf("OperationType(%d)", int32(t))
}

// ManageData is the body of a manage-data operation. A nil Value deletes the
// entry.
type ManageData struct {
	Name  string
	Value []byte
}

// Payment is the body of a payment operation.
type Payment struct {
	Destination MuxedAccount
	Amount      int64
}

// BumpSequence is the body of a bump-sequence operation.
type BumpSequence struct {
	BumpTo int64
}

// Operation is a tagged variant. Exactly one body pointer, the one selected
// by Type, is set.
type Operation struct {
	SourceAccount *MuxedAccount
	Type          OperationType

	ManageData   *ManageData   `codec:",omitempty"`
	Payment      *Payment      `codec:",omitempty"`
	BumpSequence *BumpSequence `codec:",omitempty"`
}

// NewManageData builds a manage-data operation. A nil source means the
// operation applies to the transaction's source account.
func NewManageData(name string, value []byte, source *MuxedAccount) (Operation, error) {
	if len(name) == 0 || len(name) > MaxDataNameLength {
		return Operation{}, errors.Errorf("data name of %d bytes, must be between 1 and %d", len(name), MaxDataNameLength)
	}
	if len(value) > MaxDataValueLength {
		return Operation{}, errors.Errorf("data value of %d bytes, maximum is %d", len(value), MaxDataValueLength)
	}
	return Operation{
		SourceAccount: source,
		Type:          OperationTypeManageData,
		ManageData:    &ManageData{Name: name, Value: value},
	}, nil
}

// NewPayment builds a payment operation.
func NewPayment(destination MuxedAccount, amount int64, source *MuxedAccount) Operation {
	return Operation{
		SourceAccount: source,
		Type:          OperationTypePayment,
		Payment:       &Payment{Destination: destination, Amount: amount},
	}
}

// NewBumpSequence builds a bump-sequence operation.
func NewBumpSequence(bumpTo int64, source *MuxedAccount) Operation {
	return Operation{
		SourceAccount: source,
		Type:          OperationTypeBumpSequence,
		BumpSequence:  &BumpSequence{BumpTo: bumpTo},
	}
}

// GetManageData returns the manage-data body when Type says the operation is
// a manage-data operation.
func (op Operation) GetManageData() (ManageData, bool) {
	if op.Type != OperationTypeManageData || op.ManageData == nil {
		return ManageData{}, false
	}
	return *op.ManageData, true
}

// Validate checks that the body selected by Type is the only one set.
func (op Operation) Validate() error {
	set := 0
	if op.ManageData != nil {
		set++
	}
	if op.Payment != nil {
		set++
	}
	if op.BumpSequence != nil {
		set++
	}
	if set != 1 {
		return errors.Errorf("operation has %d bodies", set)
	}

	switch op.Type {
	case OperationTypeManageData:
		if op.ManageData == nil {
			return errors.New("manage-data operation without body")
		}
	case OperationTypePayment:
		if op.Payment == nil {
			return errors.New("payment operation without body")
		}
	case OperationTypeBumpSequence:
		if op.BumpSequence == nil {
			return errors.New("bump-sequence operation without body")
		}
	default:
		return errors.Errorf("unknown operation type %d", int32(op.Type))
	}

	return nil
}
