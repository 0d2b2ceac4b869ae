package app

import (
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"

	"github.com/cosmos/cosmos-sdk/std"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	"github.com/osmosis-labs/osmosis-testing/app/params"
)

// MakeEncodingConfig returns the encoding config of the osmo chain with every message and
// query type the runner and simulator exchange registered.
func MakeEncodingConfig() params.EncodingConfig {
	return MakeEncodingConfigWithPrefix(AccountAddressPrefix)
}

// MakeEncodingConfigWithPrefix is MakeEncodingConfig with a custom bech32 account prefix.
func MakeEncodingConfigWithPrefix(accountPrefix string) params.EncodingConfig {
	encodingConfig := params.MakeEncodingConfig(accountPrefix)

	std.RegisterLegacyAminoCodec(encodingConfig.Amino)
	std.RegisterInterfaces(encodingConfig.InterfaceRegistry)

	authtypes.RegisterInterfaces(encodingConfig.InterfaceRegistry)
	banktypes.RegisterInterfaces(encodingConfig.InterfaceRegistry)
	wasmtypes.RegisterInterfaces(encodingConfig.InterfaceRegistry)

	authtypes.RegisterLegacyAminoCodec(encodingConfig.Amino)
	banktypes.RegisterLegacyAminoCodec(encodingConfig.Amino)
	wasmtypes.RegisterLegacyAminoCodec(encodingConfig.Amino)

	return encodingConfig
}

// EmptyAppOptions is a stub implementing AppOptions
type EmptyAppOptions struct{}

// Get implements AppOptions
func (ao EmptyAppOptions) Get(o string) interface{} {
	return nil
}

// MapAppOptions is an AppOptions backed by a plain map.
type MapAppOptions map[string]interface{}

// Get implements AppOptions
func (ao MapAppOptions) Get(o string) interface{} {
	return ao[o]
}
