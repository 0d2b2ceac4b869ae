// Package module wraps the messages and queries of chain modules around a runner.Runner.
package module

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	"github.com/osmosis-labs/osmosis-testing/account"
	"github.com/osmosis-labs/osmosis-testing/runner"
)

// Bank wraps the bank module.
type Bank struct {
	runner runner.Runner
}

// NewBank returns a Bank over r.
func NewBank(r runner.Runner) Bank {
	return Bank{runner: r}
}

// Send transfers amount from signer to toAddress.
func (b Bank) Send(signer account.SigningAccount, toAddress string, amount sdk.Coins) (*runner.ExecuteResponse[banktypes.MsgSendResponse], error) {
	return runner.Execute[banktypes.MsgSendResponse](b.runner, &banktypes.MsgSend{
		FromAddress: signer.Address(),
		ToAddress:   toAddress,
		Amount:      amount,
	}, signer)
}

// Balance returns the balance of address in denom.
func (b Bank) Balance(address, denom string) (sdk.Coin, error) {
	res, err := runner.Query[banktypes.QueryBalanceResponse](b.runner, runner.PathBankBalance, &banktypes.QueryBalanceRequest{
		Address: address,
		Denom:   denom,
	})
	if err != nil {
		return sdk.Coin{}, err
	}
	if res.Balance == nil {
		return sdk.NewInt64Coin(denom, 0), nil
	}

	return *res.Balance, nil
}

// AllBalances returns every balance of address.
func (b Bank) AllBalances(address string) (sdk.Coins, error) {
	res, err := runner.Query[banktypes.QueryAllBalancesResponse](b.runner, runner.PathBankAllBalances, &banktypes.QueryAllBalancesRequest{
		Address: address,
	})
	if err != nil {
		return nil, err
	}

	return res.Balances, nil
}

// SupplyOf returns the total supply of denom.
func (b Bank) SupplyOf(denom string) (sdk.Coin, error) {
	res, err := runner.Query[banktypes.QuerySupplyOfResponse](b.runner, runner.PathBankSupplyOf, &banktypes.QuerySupplyOfRequest{
		Denom: denom,
	})
	if err != nil {
		return sdk.Coin{}, err
	}

	return res.Amount, nil
}

// TotalSupply returns the supply of every denom.
func (b Bank) TotalSupply() (sdk.Coins, error) {
	res, err := runner.Query[banktypes.QueryTotalSupplyResponse](b.runner, runner.PathBankTotalSupply, &banktypes.QueryTotalSupplyRequest{})
	if err != nil {
		return nil, err
	}

	return res.Supply, nil
}
