package account

import (
	"fmt"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// DefaultGasAdjustment is the gas adjustment of the default fee setting.
const DefaultGasAdjustment = 1.2

// FeeSetting is the fee policy of a signing account. It is either AutoFee or CustomFee.
type FeeSetting interface {
	isFeeSetting()
	String() string
}

// AutoFee estimates the fee by simulating the transaction first. GasPrice must be
// denominated in the fee denom of the runner.
type AutoFee struct {
	GasPrice      sdk.DecCoin
	GasAdjustment float64
}

// CustomFee pays a fixed fee with a fixed gas limit.
type CustomFee struct {
	Amount   sdk.Coin
	GasLimit uint64
}

func (AutoFee) isFeeSetting()   {}
func (CustomFee) isFeeSetting() {}

func (f AutoFee) String() string {
	return fmt.Sprintf("auto(gas_price=%s, gas_adjustment=%g)", f.GasPrice, f.GasAdjustment)
}

func (f CustomFee) String() string {
	return fmt.Sprintf("custom(amount=%s, gas_limit=%d)", f.Amount, f.GasLimit)
}

// DefaultFeeSetting returns a zero priced auto fee in denom.
func DefaultFeeSetting(denom string) FeeSetting {
	return AutoFee{
		GasPrice:      sdk.NewDecCoinFromDec(denom, math.LegacyZeroDec()),
		GasAdjustment: DefaultGasAdjustment,
	}
}
