package app

const (
	// AccountAddressPrefix is the prefix of bech32 encoded address
	AccountAddressPrefix = "osmo"

	// AppName is the application name
	AppName = "osmosis-testing"

	// EnvPrefix is environment variable prefix for the app
	EnvPrefix = "OSMOSIS_TESTING"

	// CoinType is the Cosmos Chain's coin type as defined in SLIP44 (https://github.com/satoshilabs/slips/blob/master/slip-0044.md)
	CoinType = 118

	// FeeDenom is the denom every transaction fee is paid in
	FeeDenom = "uosmo"

	// ChainID is the chain id every sign doc is bound to
	ChainID = "osmosis-1"

	// DefaultGasAdjustment is the multiplier applied to simulated gas for auto fees
	DefaultGasAdjustment = 1.2

	// FeeDeductionGasAmount is a estimated gas amount of fee payment, charged when a
	// transaction is simulated without a fee
	FeeDeductionGasAmount = 10_000
)
