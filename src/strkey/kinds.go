package strkey

// EncodeAccountID returns the G... address of an Ed25519 public key.
func EncodeAccountID(pub []byte) (string, error) {
	return Encode(VersionByteAccountID, pub)
}

// DecodeAccountID returns the Ed25519 public key of a G... address.
func DecodeAccountID(address string) ([]byte, error) {
	return Decode(VersionByteAccountID, address)
}

// EncodeSeed returns the S... text of an Ed25519 seed.
func EncodeSeed(seed []byte) (string, error) {
	return Encode(VersionByteSeed, seed)
}

// DecodeSeed returns the raw Ed25519 seed of an S... text.
func DecodeSeed(seed string) ([]byte, error) {
	return Decode(VersionByteSeed, seed)
}

// EncodePreAuthTx returns the T... text of a transaction hash.
func EncodePreAuthTx(hash []byte) (string, error) {
	return Encode(VersionBytePreAuthTx, hash)
}

// DecodePreAuthTx returns the transaction hash of a T... text.
func DecodePreAuthTx(src string) ([]byte, error) {
	return Decode(VersionBytePreAuthTx, src)
}

// EncodeHashX returns the X... text of a sha256 hash.
func EncodeHashX(hash []byte) (string, error) {
	return Encode(VersionByteHashX, hash)
}

// DecodeHashX returns the sha256 hash of an X... text.
func DecodeHashX(src string) ([]byte, error) {
	return Decode(VersionByteHashX, src)
}

// EncodeContract returns the C... text of a contract id.
func EncodeContract(id []byte) (string, error) {
	return Encode(VersionByteContract, id)
}

// DecodeContract returns the contract id of a C... text.
func DecodeContract(src string) ([]byte, error) {
	return Decode(VersionByteContract, src)
}

// EncodeLiquidityPool returns the L... text of a liquidity pool id.
func EncodeLiquidityPool(id []byte) (string, error) {
	return Encode(VersionByteLiquidityPool, id)
}

// DecodeLiquidityPool returns the liquidity pool id of an L... text.
func DecodeLiquidityPool(src string) ([]byte, error) {
	return Decode(VersionByteLiquidityPool, src)
}

// ClaimableBalanceV0 is the only defined claimable balance sub-version.
const ClaimableBalanceV0 byte = 0

// EncodeClaimableBalance returns the B... text of a V0 claimable balance
// hash.
func EncodeClaimableBalance(hash []byte) (string, error) {
	if len(hash) != 32 {
		return "", NewMalformedError(InvalidLength, "claimable balance hash of %d bytes", len(hash))
	}
	payload := make([]byte, 0, claimableBalanceLength)
	payload = append(payload, ClaimableBalanceV0)
	payload = append(payload, hash...)
	return Encode(VersionByteClaimableBalance, payload)
}

// DecodeClaimableBalance returns the hash of a B... text. Only sub-version V0
// is accepted.
func DecodeClaimableBalance(src string) ([]byte, error) {
	payload, err := Decode(VersionByteClaimableBalance, src)
	if err != nil {
		return nil, err
	}
	if payload[0] != ClaimableBalanceV0 {
		return nil, NewMalformedError(InvalidPayload, "claimable balance sub-version %d", payload[0])
	}
	return payload[1:], nil
}

// Kind returns the name of the identifier kind of src, based on its version
// byte only.
func Kind(src string) string {
	v, err := Version(src)
	if err != nil {
		return "Unknown"
	}
	return v.String()
}
