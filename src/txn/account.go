package txn

import (
	"github.com/mosaicnetworks/webauth/src/strkey"
	"github.com/pkg/errors"
)

// MuxedAccount is an account address, optionally multiplexed with a 64-bit
// id.
type MuxedAccount struct {
	Key   [32]byte
	Muxed bool
	ID    uint64
}

// ParseMuxedAccount accepts a G... or an M... address.
func ParseMuxedAccount(address string) (MuxedAccount, error) {
	version, err := strkey.Version(address)
	if err != nil {
		return MuxedAccount{}, err
	}

	var m MuxedAccount
	switch version {
	case strkey.VersionByteAccountID:
		pub, err := strkey.DecodeAccountID(address)
		if err != nil {
			return MuxedAccount{}, err
		}
		copy(m.Key[:], pub)
	case strkey.VersionByteMuxedAccount:
		pub, id, err := strkey.DecodeMuxedAccount(address)
		if err != nil {
			return MuxedAccount{}, err
		}
		copy(m.Key[:], pub)
		m.Muxed = true
		m.ID = id
	default:
		return MuxedAccount{}, errors.Errorf("%s is not an account address", version)
	}

	return m, nil
}

// MustMuxedAccount is like ParseMuxedAccount but panics on error.
func MustMuxedAccount(address string) MuxedAccount {
	m, err := ParseMuxedAccount(address)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMuxedAccount multiplexes the G... address with id.
func NewMuxedAccount(address string, id uint64) (MuxedAccount, error) {
	pub, err := strkey.DecodeAccountID(address)
	if err != nil {
		return MuxedAccount{}, err
	}
	m := MuxedAccount{Muxed: true, ID: id}
	copy(m.Key[:], pub)
	return m, nil
}

// IsMuxed reports whether the account carries a multiplexing id.
func (m MuxedAccount) IsMuxed() bool {
	return m.Muxed
}

// Address returns the G... or M... address of the account.
func (m MuxedAccount) Address() string {
	if m.Muxed {
		address, _ := strkey.EncodeMuxedAccount(m.Key[:], m.ID)
		return address
	}
	return m.BaseAddress()
}

// BaseAddress returns the G... address of the account, dropping the
// multiplexing id if any.
func (m MuxedAccount) BaseAddress() string {
	return strkey.MustEncode(strkey.VersionByteAccountID, m.Key[:])
}

// String implements fmt.Stringer
func (m MuxedAccount) String() string {
	return m.Address()
}
