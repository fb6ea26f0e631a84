package txn

const (
	// PublicNetworkPassphrase identifies the public production network.
	PublicNetworkPassphrase = "Public Global Stellar Network ; September 2015"
	// TestNetworkPassphrase identifies the public test network.
	TestNetworkPassphrase = "Test SDF Network ; September 2015"
)
