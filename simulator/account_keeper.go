package simulator

import (
	"cosmossdk.io/core/address"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

// AccountKeeper stores base accounts and hands out account numbers.
type AccountKeeper struct {
	cdc          codec.Codec
	addressCodec address.Codec
}

// NewAccountKeeper returns a new AccountKeeper.
func NewAccountKeeper(cdc codec.Codec, addressCodec address.Codec) AccountKeeper {
	return AccountKeeper{
		cdc:          cdc,
		addressCodec: addressCodec,
	}
}

// AddressCodec returns the bech32 codec of account addresses.
func (k AccountKeeper) AddressCodec() address.Codec {
	return k.addressCodec
}

// GetAccount returns the account at addr or nil.
func (k AccountKeeper) GetAccount(ctx Context, addr sdk.AccAddress) *authtypes.BaseAccount {
	bz := ctx.KVStore().Get(GetAccountKey(addr))
	if bz == nil {
		return nil
	}

	var acc authtypes.BaseAccount
	k.cdc.MustUnmarshal(bz, &acc)
	return &acc
}

// HasAccount reports whether an account exists at addr.
func (k AccountKeeper) HasAccount(ctx Context, addr sdk.AccAddress) bool {
	return ctx.KVStore().Has(GetAccountKey(addr))
}

// SetAccount stores acc.
func (k AccountKeeper) SetAccount(ctx Context, acc *authtypes.BaseAccount) {
	addr, err := k.addressCodec.StringToBytes(acc.Address)
	if err != nil {
		panic(err)
	}

	ctx.KVStore().Set(GetAccountKey(addr), k.cdc.MustMarshal(acc))
}

// NewAccountWithAddress creates and stores an account at addr with the next account number.
func (k AccountKeeper) NewAccountWithAddress(ctx Context, addr sdk.AccAddress) *authtypes.BaseAccount {
	addrStr, err := k.addressCodec.BytesToString(addr)
	if err != nil {
		panic(err)
	}

	acc := authtypes.NewBaseAccountWithAddress(addr)
	acc.Address = addrStr
	acc.AccountNumber = k.NextAccountNumber(ctx)
	k.SetAccount(ctx, acc)

	return acc
}

// NextAccountNumber returns and increments the global account number counter.
func (k AccountKeeper) NextAccountNumber(ctx Context) uint64 {
	return nextSequence(ctx, NextAccountNumberKey)
}

func nextSequence(ctx Context, key []byte) uint64 {
	store := ctx.KVStore()

	var next uint64
	if bz := store.Get(key); bz != nil {
		next = sdk.BigEndianToUint64(bz)
	}
	store.Set(key, sdk.Uint64ToBigEndian(next+1))

	return next
}
