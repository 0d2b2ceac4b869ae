package simulator

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// Contract is a Go implementation of the wasm code stored under a checksum. It stands in for
// the compiled contract when the simulator runs instantiate, execute and smart queries.
type Contract interface {
	Instantiate(env ContractEnv, msg []byte) ([]byte, error)
	Execute(env ContractEnv, msg []byte) ([]byte, error)
	Query(env ContractEnv, msg []byte) ([]byte, error)
}

// ContractEnv is the environment a Contract call runs in.
type ContractEnv struct {
	// Contract is the bech32 address of the called contract.
	Contract string
	// Sender is empty for queries.
	Sender string
	Funds  sdk.Coins
	// Store is the private store of the contract. Writes made during a query are discarded.
	Store       storetypes.KVStore
	BlockHeight int64
	BlockTime   time.Time
}

// WasmKeeper stores code infos and contract infos and dispatches contract calls to the
// registered Contract implementations.
type WasmKeeper struct {
	cdc       codec.Codec
	ak        AccountKeeper
	bk        BankKeeper
	contracts map[[sha256.Size]byte]Contract
}

// NewWasmKeeper returns a new WasmKeeper running the given implementations.
func NewWasmKeeper(cdc codec.Codec, ak AccountKeeper, bk BankKeeper, contracts map[[sha256.Size]byte]Contract) WasmKeeper {
	return WasmKeeper{
		cdc:       cdc,
		ak:        ak,
		bk:        bk,
		contracts: contracts,
	}
}

// BuildContractAddressClassic builds the contract address from the code id and the
// instance id.
func BuildContractAddressClassic(codeID, instanceID uint64) sdk.AccAddress {
	contractID := append(sdk.Uint64ToBigEndian(codeID), sdk.Uint64ToBigEndian(instanceID)...)
	return address.Module(wasmtypes.ModuleName, contractID)[:wasmtypes.ContractAddrLen]
}

// StoreCode stores the code info of wasmCode and returns its code id and checksum.
func (k WasmKeeper) StoreCode(ctx Context, creator sdk.AccAddress, wasmCode []byte) (uint64, []byte, error) {
	if len(wasmCode) == 0 {
		return 0, nil, errorsmod.Wrap(wasmtypes.ErrEmpty, "wasm code")
	}

	creatorStr, err := k.ak.AddressCodec().BytesToString(creator)
	if err != nil {
		return 0, nil, err
	}

	checksum := sha256.Sum256(wasmCode)
	codeID := nextSequence(ctx, NextCodeIDKey) + 1
	codeInfo := wasmtypes.CodeInfo{
		CodeHash:          checksum[:],
		Creator:           creatorStr,
		InstantiateConfig: wasmtypes.AllowEverybody,
	}
	ctx.KVStore().Set(getCodeKey(codeID), k.cdc.MustMarshal(&codeInfo))

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		wasmtypes.EventTypeStoreCode,
		sdk.NewAttribute(wasmtypes.AttributeKeyChecksum, hex.EncodeToString(checksum[:])),
		sdk.NewAttribute(wasmtypes.AttributeKeyCodeID, strconv.FormatUint(codeID, 10)),
	))

	return codeID, checksum[:], nil
}

// GetCodeInfo returns the code info of codeID or nil.
func (k WasmKeeper) GetCodeInfo(ctx Context, codeID uint64) *wasmtypes.CodeInfo {
	bz := ctx.KVStore().Get(getCodeKey(codeID))
	if bz == nil {
		return nil
	}

	var codeInfo wasmtypes.CodeInfo
	k.cdc.MustUnmarshal(bz, &codeInfo)
	return &codeInfo
}

// GetContractInfo returns the contract info at contractAddr or nil.
func (k WasmKeeper) GetContractInfo(ctx Context, contractAddr sdk.AccAddress) *wasmtypes.ContractInfo {
	bz := ctx.KVStore().Get(getContractKey(contractAddr))
	if bz == nil {
		return nil
	}

	var contractInfo wasmtypes.ContractInfo
	k.cdc.MustUnmarshal(bz, &contractInfo)
	return &contractInfo
}

// Instantiate creates a new contract of codeID and runs its instantiate entry point.
func (k WasmKeeper) Instantiate(
	ctx Context,
	codeID uint64,
	creator, admin sdk.AccAddress,
	label string,
	msg []byte,
	funds sdk.Coins,
) (sdk.AccAddress, []byte, error) {
	codeInfo := k.GetCodeInfo(ctx, codeID)
	if codeInfo == nil {
		return nil, nil, errorsmod.Wrapf(ErrCodeNotFound, "code id %d", codeID)
	}

	impl, err := k.contractImpl(codeInfo.CodeHash)
	if err != nil {
		return nil, nil, err
	}

	instanceID := nextSequence(ctx, NextInstanceIDKey) + 1
	contractAddr := BuildContractAddressClassic(codeID, instanceID)
	if k.ak.HasAccount(ctx, contractAddr) {
		return nil, nil, errorsmod.Wrapf(wasmtypes.ErrDuplicate, "contract account already exists")
	}
	k.ak.NewAccountWithAddress(ctx, contractAddr)

	if !funds.IsZero() {
		if err := k.bk.SendCoins(ctx, creator, contractAddr, funds); err != nil {
			return nil, nil, err
		}
	}

	creatorStr, err := k.ak.AddressCodec().BytesToString(creator)
	if err != nil {
		return nil, nil, err
	}
	contractStr, err := k.ak.AddressCodec().BytesToString(contractAddr)
	if err != nil {
		return nil, nil, err
	}
	var adminStr string
	if len(admin) != 0 {
		if adminStr, err = k.ak.AddressCodec().BytesToString(admin); err != nil {
			return nil, nil, err
		}
	}

	contractInfo := wasmtypes.ContractInfo{
		CodeID:  codeID,
		Creator: creatorStr,
		Admin:   adminStr,
		Label:   label,
	}
	ctx.KVStore().Set(getContractKey(contractAddr), k.cdc.MustMarshal(&contractInfo))

	data, err := impl.Instantiate(k.env(ctx, contractAddr, contractStr, creatorStr, funds), msg)
	if err != nil {
		return nil, nil, errorsmod.Wrap(wasmtypes.ErrInstantiateFailed, err.Error())
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		wasmtypes.EventTypeInstantiate,
		sdk.NewAttribute(wasmtypes.AttributeKeyContractAddr, contractStr),
		sdk.NewAttribute(wasmtypes.AttributeKeyCodeID, strconv.FormatUint(codeID, 10)),
	))

	return contractAddr, data, nil
}

// Execute runs the execute entry point of the contract at contractAddr.
func (k WasmKeeper) Execute(ctx Context, contractAddr, caller sdk.AccAddress, msg []byte, funds sdk.Coins) ([]byte, error) {
	impl, contractStr, err := k.contractAt(ctx, contractAddr)
	if err != nil {
		return nil, err
	}

	if !funds.IsZero() {
		if err := k.bk.SendCoins(ctx, caller, contractAddr, funds); err != nil {
			return nil, err
		}
	}

	callerStr, err := k.ak.AddressCodec().BytesToString(caller)
	if err != nil {
		return nil, err
	}

	data, err := impl.Execute(k.env(ctx, contractAddr, contractStr, callerStr, funds), msg)
	if err != nil {
		return nil, errorsmod.Wrap(wasmtypes.ErrExecuteFailed, err.Error())
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		wasmtypes.EventTypeExecute,
		sdk.NewAttribute(wasmtypes.AttributeKeyContractAddr, contractStr),
	))

	return data, nil
}

// QuerySmart runs the query entry point of the contract at contractAddr on a discarded branch
// of the store.
func (k WasmKeeper) QuerySmart(ctx Context, contractAddr sdk.AccAddress, msg []byte) ([]byte, error) {
	impl, contractStr, err := k.contractAt(ctx, contractAddr)
	if err != nil {
		return nil, err
	}

	queryCtx, _ := ctx.CacheContext()
	data, err := impl.Query(k.env(queryCtx, contractAddr, contractStr, "", nil), msg)
	if err != nil {
		return nil, errorsmod.Wrap(wasmtypes.ErrQueryFailed, err.Error())
	}

	return data, nil
}

// QueryRaw returns the value stored under key in the private store of contractAddr.
func (k WasmKeeper) QueryRaw(ctx Context, contractAddr sdk.AccAddress, key []byte) []byte {
	if key == nil {
		return nil
	}

	return prefix.NewStore(ctx.KVStore(), GetContractStorePrefix(contractAddr)).Get(key)
}

func (k WasmKeeper) contractAt(ctx Context, contractAddr sdk.AccAddress) (Contract, string, error) {
	contractStr, err := k.ak.AddressCodec().BytesToString(contractAddr)
	if err != nil {
		return nil, "", err
	}

	contractInfo := k.GetContractInfo(ctx, contractAddr)
	if contractInfo == nil {
		return nil, "", errorsmod.Wrap(ErrContractNotFound, contractStr)
	}

	codeInfo := k.GetCodeInfo(ctx, contractInfo.CodeID)
	if codeInfo == nil {
		return nil, "", errorsmod.Wrapf(ErrCodeNotFound, "code id %d", contractInfo.CodeID)
	}

	impl, err := k.contractImpl(codeInfo.CodeHash)
	if err != nil {
		return nil, "", err
	}

	return impl, contractStr, nil
}

func (k WasmKeeper) contractImpl(codeHash []byte) (Contract, error) {
	var checksum [sha256.Size]byte
	if len(codeHash) != len(checksum) {
		return nil, errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "invalid checksum length %d", len(codeHash))
	}
	copy(checksum[:], codeHash)

	impl, ok := k.contracts[checksum]
	if !ok {
		return nil, errorsmod.Wrapf(ErrNoContractImplementation, "checksum %X", codeHash)
	}

	return impl, nil
}

func (k WasmKeeper) env(ctx Context, contractAddr sdk.AccAddress, contract, sender string, funds sdk.Coins) ContractEnv {
	return ContractEnv{
		Contract:    contract,
		Sender:      sender,
		Funds:       funds,
		Store:       prefix.NewStore(ctx.KVStore(), GetContractStorePrefix(contractAddr)),
		BlockHeight: ctx.BlockHeight(),
		BlockTime:   ctx.BlockTime(),
	}
}

func getCodeKey(codeID uint64) []byte {
	return append(append([]byte{}, CodePrefix...), sdk.Uint64ToBigEndian(codeID)...)
}

func getContractKey(addr sdk.AccAddress) []byte {
	return append(append([]byte{}, ContractPrefix...), address.MustLengthPrefix(addr)...)
}
