package runner

import (
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/osmosis-testing/app"
)

const (
	// DefaultChainID is the chain id every transaction is signed for
	DefaultChainID = app.ChainID
	// DefaultFeeDenom is the denom fees are paid in
	DefaultFeeDenom = app.FeeDenom
	// DefaultAddressPrefix is the bech32 prefix of signing accounts
	DefaultAddressPrefix = app.AccountAddressPrefix
	// DefaultGasAdjustment is the gas adjustment of newly initialised accounts
	DefaultGasAdjustment = app.DefaultGasAdjustment
	// DefaultAccountBalance is the balance given to accounts initialised without coins
	DefaultAccountBalance = "100000000000uosmo"
)

const (
	flagChainID               = "runner.chain-id"
	flagFeeDenom              = "runner.fee-denom"
	flagAddressPrefix         = "runner.address-prefix"
	flagGasAdjustment         = "runner.gas-adjustment"
	flagDefaultAccountBalance = "runner.default-account-balance"
)

// Config is the configuration of a TestApp. It is fixed for the life of a session.
type Config struct {
	ChainID               string  `mapstructure:"chain-id"`
	FeeDenom              string  `mapstructure:"fee-denom"`
	AddressPrefix         string  `mapstructure:"address-prefix"`
	GasAdjustment         float64 `mapstructure:"gas-adjustment"`
	DefaultAccountBalance string  `mapstructure:"default-account-balance"`
}

// DefaultConfig returns the default settings for Config
func DefaultConfig() Config {
	return Config{
		ChainID:               DefaultChainID,
		FeeDenom:              DefaultFeeDenom,
		AddressPrefix:         DefaultAddressPrefix,
		GasAdjustment:         DefaultGasAdjustment,
		DefaultAccountBalance: DefaultAccountBalance,
	}
}

// GetConfig load config values from the app options. Unset options keep their defaults.
func GetConfig(appOpts servertypes.AppOptions) Config {
	config := DefaultConfig()
	if v := appOpts.Get(flagChainID); v != nil {
		config.ChainID = cast.ToString(v)
	}
	if v := appOpts.Get(flagFeeDenom); v != nil {
		config.FeeDenom = cast.ToString(v)
	}
	if v := appOpts.Get(flagAddressPrefix); v != nil {
		config.AddressPrefix = cast.ToString(v)
	}
	if v := appOpts.Get(flagGasAdjustment); v != nil {
		config.GasAdjustment = cast.ToFloat64(v)
	}
	if v := appOpts.Get(flagDefaultAccountBalance); v != nil {
		config.DefaultAccountBalance = cast.ToString(v)
	}

	return config
}

// AddConfigFlags registers the runner flags on cmd.
func AddConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagChainID, DefaultChainID, "Set the chain id transactions are signed for")
	cmd.Flags().String(flagFeeDenom, DefaultFeeDenom, "Set the denom transaction fees are paid in")
	cmd.Flags().String(flagAddressPrefix, DefaultAddressPrefix, "Set the bech32 prefix of signing accounts")
	cmd.Flags().Float64(flagGasAdjustment, DefaultGasAdjustment, "Set the gas adjustment of newly initialised accounts")
	cmd.Flags().String(flagDefaultAccountBalance, DefaultAccountBalance, "Set the balance given to accounts initialised without coins")
}

// Validate performs basic validation of the config.
func (c Config) Validate() error {
	if c.ChainID == "" {
		return errorsmod.Wrap(ErrInvalidConfig, "chain id must not be empty")
	}
	if err := sdk.ValidateDenom(c.FeeDenom); err != nil {
		return errorsmod.Wrapf(ErrInvalidConfig, "fee denom: %s", err)
	}
	if c.AddressPrefix == "" {
		return errorsmod.Wrap(ErrInvalidConfig, "address prefix must not be empty")
	}
	if !(c.GasAdjustment > 0) {
		return errorsmod.Wrapf(ErrInvalidConfig, "gas adjustment must be positive, got %g", c.GasAdjustment)
	}
	if _, err := c.DefaultBalance(); err != nil {
		return err
	}

	return nil
}

// DefaultBalance parses DefaultAccountBalance.
func (c Config) DefaultBalance() (sdk.Coins, error) {
	coins, err := sdk.ParseCoinsNormalized(c.DefaultAccountBalance)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidConfig, "default account balance: %s", err)
	}

	return coins, nil
}

// defaultGasPrice is the zero gas price of newly initialised accounts.
func (c Config) defaultGasPrice() sdk.DecCoin {
	return sdk.NewDecCoinFromDec(c.FeeDenom, math.LegacyZeroDec())
}

// DefaultConfigTemplate default config template for the runner
const DefaultConfigTemplate = `
###############################################################################
###                         Runner                                          ###
###############################################################################

[runner]
# The chain id transactions are signed for.
chain-id = "{{ .RunnerConfig.ChainID }}"

# The denom transaction fees are paid in.
fee-denom = "{{ .RunnerConfig.FeeDenom }}"

# The bech32 prefix of signing accounts.
address-prefix = "{{ .RunnerConfig.AddressPrefix }}"

# The gas adjustment of newly initialised accounts.
gas-adjustment = {{ .RunnerConfig.GasAdjustment }}

# The balance given to accounts initialised without coins.
default-account-balance = "{{ .RunnerConfig.DefaultAccountBalance }}"
`
