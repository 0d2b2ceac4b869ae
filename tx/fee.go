package tx

import (
	"fmt"
	"strconv"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdktx "github.com/cosmos/cosmos-sdk/types/tx"
)

// ZeroFee is the fee attached to transactions that are only simulated.
func ZeroFee(denom string) sdktx.Fee {
	return sdktx.Fee{
		Amount:   sdk.Coins{sdk.NewInt64Coin(denom, 0)},
		GasLimit: 0,
	}
}

// GasLimit returns ceil(gasUsed * adjustment).
func GasLimit(gasUsed uint64, adjustment float64) (uint64, error) {
	adj, err := decFromFloat(adjustment)
	if err != nil {
		return 0, err
	}
	if !adj.IsPositive() {
		return 0, fmt.Errorf("gas adjustment must be positive, got %g", adjustment)
	}

	limit := math.LegacyNewDecFromInt(math.NewIntFromUint64(gasUsed)).Mul(adj).Ceil().TruncateInt()
	if !limit.IsUint64() {
		return 0, fmt.Errorf("gas limit %s overflows uint64", limit)
	}

	return limit.Uint64(), nil
}

// FeeAmount returns ceil(gasLimit * gasPrice) denominated in denom.
func FeeAmount(gasLimit uint64, gasPrice sdk.DecCoin, denom string) sdk.Coin {
	amount := math.LegacyNewDecFromInt(math.NewIntFromUint64(gasLimit)).Mul(gasPrice.Amount).Ceil().TruncateInt()
	return sdk.NewCoin(denom, amount)
}

// NewFee returns a fee paying amount for gasLimit.
func NewFee(amount sdk.Coin, gasLimit uint64) sdktx.Fee {
	return sdktx.Fee{
		Amount:   sdk.Coins{amount},
		GasLimit: gasLimit,
	}
}

// decFromFloat converts f through its shortest decimal representation so that 1.2 is
// exactly 1.2 rather than its binary approximation.
func decFromFloat(f float64) (math.LegacyDec, error) {
	dec, err := math.LegacyNewDecFromStr(strconv.FormatFloat(f, 'f', -1, 64))
	if err == nil {
		return dec, nil
	}

	dec, err = math.LegacyNewDecFromStr(strconv.FormatFloat(f, 'f', math.LegacyPrecision, 64))
	if err != nil {
		return math.LegacyDec{}, fmt.Errorf("invalid gas adjustment %g: %w", f, err)
	}

	return dec, nil
}
