package simulator

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/cosmos/cosmos-sdk/x/bank/types"
)

// BankKeeper keeps per account balances and the total supply of every denom.
type BankKeeper struct {
	ak AccountKeeper
}

// NewBankKeeper returns a new BankKeeper.
func NewBankKeeper(ak AccountKeeper) BankKeeper {
	return BankKeeper{ak: ak}
}

// HasBalance returns whether or not an account has at least amt balance.
func (k BankKeeper) HasBalance(ctx Context, addr sdk.AccAddress, amt sdk.Coin) bool {
	return k.GetBalance(ctx, addr, amt.Denom).IsGTE(amt)
}

// GetAllBalances returns all the account balances for the given account address.
func (k BankKeeper) GetAllBalances(ctx Context, addr sdk.AccAddress) sdk.Coins {
	balances := sdk.NewCoins()
	k.IterateAccountBalances(ctx, addr, func(balance sdk.Coin) bool {
		balances = balances.Add(balance)
		return false
	})

	return balances.Sort()
}

// GetBalance returns the balance of a specific denomination for a given account
// by address.
func (k BankKeeper) GetBalance(ctx Context, addr sdk.AccAddress, denom string) sdk.Coin {
	accountStore := prefix.NewStore(ctx.KVStore(), CreateAccountBalancesPrefix(addr))

	bz := accountStore.Get([]byte(denom))
	if bz == nil {
		return sdk.NewCoin(denom, math.ZeroInt())
	}

	return sdk.NewCoin(denom, unmarshalInt(bz))
}

// IterateAccountBalances iterates over the balances of a single account and
// provides the token balance to a callback. If true is returned from the
// callback, iteration is halted.
func (k BankKeeper) IterateAccountBalances(ctx Context, addr sdk.AccAddress, cb func(sdk.Coin) bool) {
	accountStore := prefix.NewStore(ctx.KVStore(), CreateAccountBalancesPrefix(addr))

	iterator := accountStore.Iterator(nil, nil)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		amount := unmarshalInt(iterator.Value())
		if amount.IsZero() {
			continue
		}

		if cb(sdk.NewCoin(string(iterator.Key()), amount)) {
			break
		}
	}
}

// GetSupply retrieves the supply of a specific denomination.
func (k BankKeeper) GetSupply(ctx Context, denom string) sdk.Coin {
	supplyStore := prefix.NewStore(ctx.KVStore(), SupplyPrefix)

	bz := supplyStore.Get([]byte(denom))
	if bz == nil {
		return sdk.NewCoin(denom, math.ZeroInt())
	}

	return sdk.NewCoin(denom, unmarshalInt(bz))
}

// GetTotalSupply returns the supply of every denom.
func (k BankKeeper) GetTotalSupply(ctx Context) sdk.Coins {
	supplyStore := prefix.NewStore(ctx.KVStore(), SupplyPrefix)

	iterator := supplyStore.Iterator(nil, nil)
	defer iterator.Close()

	supply := sdk.NewCoins()
	for ; iterator.Valid(); iterator.Next() {
		supply = supply.Add(sdk.NewCoin(string(iterator.Key()), unmarshalInt(iterator.Value())))
	}

	return supply
}

// MintCoins creates amounts out of thin air and credits them to addr.
func (k BankKeeper) MintCoins(ctx Context, addr sdk.AccAddress, amounts sdk.Coins) error {
	if !amounts.IsValid() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidCoins, amounts.String())
	}

	for _, coin := range amounts {
		supply := k.GetSupply(ctx, coin.Denom)
		k.setSupply(ctx, supply.Add(coin))
	}

	if err := k.addCoins(ctx, addr, amounts); err != nil {
		return err
	}

	minter, err := k.ak.AddressCodec().BytesToString(addr)
	if err != nil {
		return err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCoinMint,
			sdk.NewAttribute(types.AttributeKeyMinter, minter),
			sdk.NewAttribute(sdk.AttributeKeyAmount, amounts.String()),
		),
	)

	return nil
}

// SendCoins transfers amt coins from a sending account to a receiving account.
// An error is returned upon failure.
func (k BankKeeper) SendCoins(ctx Context, fromAddr sdk.AccAddress, toAddr sdk.AccAddress, amt sdk.Coins) error {
	if err := k.subUnlockedCoins(ctx, fromAddr, amt); err != nil {
		return err
	}
	if err := k.addCoins(ctx, toAddr, amt); err != nil {
		return err
	}

	// Create account if recipient does not exist.
	if !k.ak.HasAccount(ctx, toAddr) {
		defer telemetry.IncrCounter(1, "new", "account")
		k.ak.NewAccountWithAddress(ctx, toAddr)
	}

	from, err := k.ak.AddressCodec().BytesToString(fromAddr)
	if err != nil {
		return err
	}
	to, err := k.ak.AddressCodec().BytesToString(toAddr)
	if err != nil {
		return err
	}

	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeCoinSpent,
			sdk.NewAttribute(types.AttributeKeySpender, from),
			sdk.NewAttribute(sdk.AttributeKeyAmount, amt.String()),
		),
		sdk.NewEvent(
			types.EventTypeCoinReceived,
			sdk.NewAttribute(types.AttributeKeyReceiver, to),
			sdk.NewAttribute(sdk.AttributeKeyAmount, amt.String()),
		),
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeyRecipient, to),
			sdk.NewAttribute(types.AttributeKeySender, from),
			sdk.NewAttribute(sdk.AttributeKeyAmount, amt.String()),
		),
	})

	return nil
}

func (k BankKeeper) subUnlockedCoins(ctx Context, addr sdk.AccAddress, amt sdk.Coins) error {
	if !amt.IsValid() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidCoins, amt.String())
	}

	for _, coin := range amt {
		balance := k.GetBalance(ctx, addr, coin.Denom)
		if balance.IsLT(coin) {
			return errorsmod.Wrapf(sdkerrors.ErrInsufficientFunds, "%s is smaller than %s", balance, coin)
		}

		k.setBalance(ctx, addr, balance.Sub(coin))
	}

	return nil
}

func (k BankKeeper) addCoins(ctx Context, addr sdk.AccAddress, amt sdk.Coins) error {
	if !amt.IsValid() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidCoins, amt.String())
	}

	for _, coin := range amt {
		balance := k.GetBalance(ctx, addr, coin.Denom)
		k.setBalance(ctx, addr, balance.Add(coin))
	}

	return nil
}

func (k BankKeeper) setBalance(ctx Context, addr sdk.AccAddress, balance sdk.Coin) {
	accountStore := prefix.NewStore(ctx.KVStore(), CreateAccountBalancesPrefix(addr))
	if balance.IsZero() {
		accountStore.Delete([]byte(balance.Denom))
		return
	}

	accountStore.Set([]byte(balance.Denom), marshalInt(balance.Amount))
}

func (k BankKeeper) setSupply(ctx Context, coin sdk.Coin) {
	supplyStore := prefix.NewStore(ctx.KVStore(), SupplyPrefix)
	supplyStore.Set([]byte(coin.Denom), marshalInt(coin.Amount))
}

func marshalInt(i math.Int) []byte {
	bz, err := i.Marshal()
	if err != nil {
		panic(err)
	}

	return bz
}

func unmarshalInt(bz []byte) math.Int {
	var i math.Int
	if err := i.Unmarshal(bz); err != nil {
		panic(err)
	}

	return i
}

// SendCoinsFromAccountToModule transfers coins from an account to the account of moduleName
// without creating a base account for the module.
func (k BankKeeper) SendCoinsFromAccountToModule(ctx Context, senderAddr sdk.AccAddress, moduleName string, amt sdk.Coins) error {
	if err := k.subUnlockedCoins(ctx, senderAddr, amt); err != nil {
		return err
	}

	return k.addCoins(ctx, authtypes.NewModuleAddress(moduleName), amt)
}
