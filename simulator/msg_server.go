package simulator

import (
	"fmt"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	"github.com/cosmos/gogoproto/proto"
	"github.com/hashicorp/go-metrics"

	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
)

// MsgHandler runs a single message and returns its response.
type MsgHandler func(ctx Context, msg sdk.Msg) (proto.Message, error)

// MsgRouter routes messages to their handler by type URL.
type MsgRouter struct {
	handlers map[string]MsgHandler
}

// NewMsgRouter returns an empty MsgRouter.
func NewMsgRouter() *MsgRouter {
	return &MsgRouter{handlers: make(map[string]MsgHandler)}
}

// AddRoute registers handler for msgTypeURL. It panics on a duplicate route.
func (r *MsgRouter) AddRoute(msgTypeURL string, handler MsgHandler) *MsgRouter {
	if _, ok := r.handlers[msgTypeURL]; ok {
		panic(fmt.Sprintf("route %s has already been registered", msgTypeURL))
	}

	r.handlers[msgTypeURL] = handler
	return r
}

// Handler returns the handler of msg or nil.
func (r *MsgRouter) Handler(msg sdk.Msg) MsgHandler {
	return r.handlers[sdk.MsgTypeURL(msg)]
}

func registerBankMsgServer(router *MsgRouter, bk BankKeeper) {
	router.
		AddRoute(sdk.MsgTypeURL(&banktypes.MsgSend{}), func(ctx Context, msg sdk.Msg) (proto.Message, error) {
			return handleMsgSend(ctx, bk, msg.(*banktypes.MsgSend))
		}).
		AddRoute(sdk.MsgTypeURL(&banktypes.MsgMultiSend{}), func(ctx Context, msg sdk.Msg) (proto.Message, error) {
			return handleMsgMultiSend(ctx, bk, msg.(*banktypes.MsgMultiSend))
		})
}

func handleMsgSend(ctx Context, bk BankKeeper, msg *banktypes.MsgSend) (*banktypes.MsgSendResponse, error) {
	from, err := bk.ak.AddressCodec().StringToBytes(msg.FromAddress)
	if err != nil {
		return nil, sdkerrors.ErrInvalidAddress.Wrapf("invalid from address: %s", err)
	}
	to, err := bk.ak.AddressCodec().StringToBytes(msg.ToAddress)
	if err != nil {
		return nil, sdkerrors.ErrInvalidAddress.Wrapf("invalid to address: %s", err)
	}

	if !msg.Amount.IsValid() {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidCoins, msg.Amount.String())
	}

	if !msg.Amount.IsAllPositive() {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidCoins, msg.Amount.String())
	}

	if err := bk.SendCoins(ctx, from, to, msg.Amount); err != nil {
		return nil, err
	}

	defer func() {
		for _, a := range msg.Amount {
			if a.Amount.IsInt64() {
				telemetry.SetGaugeWithLabels(
					[]string{"tx", "msg", "send"},
					float32(a.Amount.Int64()),
					[]metrics.Label{telemetry.NewLabel("denom", a.Denom)},
				)
			}
		}
	}()

	return &banktypes.MsgSendResponse{}, nil
}

func handleMsgMultiSend(ctx Context, bk BankKeeper, msg *banktypes.MsgMultiSend) (*banktypes.MsgMultiSendResponse, error) {
	if len(msg.Inputs) != 1 {
		return nil, errorsmod.Wrap(banktypes.ErrMultipleSenders, "multi send supports exactly one input")
	}
	if len(msg.Outputs) == 0 {
		return nil, banktypes.ErrNoOutputs
	}

	input := msg.Inputs[0]
	from, err := bk.ak.AddressCodec().StringToBytes(input.Address)
	if err != nil {
		return nil, sdkerrors.ErrInvalidAddress.Wrapf("invalid input address: %s", err)
	}

	total := sdk.NewCoins()
	for _, output := range msg.Outputs {
		total = total.Add(output.Coins...)
	}
	if !total.Equal(input.Coins) {
		return nil, banktypes.ErrInputOutputMismatch
	}

	for _, output := range msg.Outputs {
		to, err := bk.ak.AddressCodec().StringToBytes(output.Address)
		if err != nil {
			return nil, sdkerrors.ErrInvalidAddress.Wrapf("invalid output address: %s", err)
		}

		if err := bk.SendCoins(ctx, from, to, output.Coins); err != nil {
			return nil, err
		}
	}

	return &banktypes.MsgMultiSendResponse{}, nil
}

func registerWasmMsgServer(router *MsgRouter, wk WasmKeeper) {
	router.
		AddRoute(sdk.MsgTypeURL(&wasmtypes.MsgStoreCode{}), func(ctx Context, msg sdk.Msg) (proto.Message, error) {
			return handleMsgStoreCode(ctx, wk, msg.(*wasmtypes.MsgStoreCode))
		}).
		AddRoute(sdk.MsgTypeURL(&wasmtypes.MsgInstantiateContract{}), func(ctx Context, msg sdk.Msg) (proto.Message, error) {
			return handleMsgInstantiateContract(ctx, wk, msg.(*wasmtypes.MsgInstantiateContract))
		}).
		AddRoute(sdk.MsgTypeURL(&wasmtypes.MsgExecuteContract{}), func(ctx Context, msg sdk.Msg) (proto.Message, error) {
			return handleMsgExecuteContract(ctx, wk, msg.(*wasmtypes.MsgExecuteContract))
		})
}

func handleMsgStoreCode(ctx Context, wk WasmKeeper, msg *wasmtypes.MsgStoreCode) (*wasmtypes.MsgStoreCodeResponse, error) {
	sender, err := wk.ak.AddressCodec().StringToBytes(msg.Sender)
	if err != nil {
		return nil, errorsmod.Wrap(err, "sender")
	}

	codeID, checksum, err := wk.StoreCode(ctx, sender, msg.WASMByteCode)
	if err != nil {
		return nil, err
	}

	return &wasmtypes.MsgStoreCodeResponse{
		CodeID:   codeID,
		Checksum: checksum,
	}, nil
}

func handleMsgInstantiateContract(ctx Context, wk WasmKeeper, msg *wasmtypes.MsgInstantiateContract) (*wasmtypes.MsgInstantiateContractResponse, error) {
	sender, err := wk.ak.AddressCodec().StringToBytes(msg.Sender)
	if err != nil {
		return nil, errorsmod.Wrap(err, "sender")
	}

	var admin sdk.AccAddress
	if msg.Admin != "" {
		if admin, err = wk.ak.AddressCodec().StringToBytes(msg.Admin); err != nil {
			return nil, errorsmod.Wrap(err, "admin")
		}
	}

	contractAddr, data, err := wk.Instantiate(ctx, msg.CodeID, sender, admin, msg.Label, msg.Msg, msg.Funds)
	if err != nil {
		return nil, err
	}

	contractStr, err := wk.ak.AddressCodec().BytesToString(contractAddr)
	if err != nil {
		return nil, err
	}

	return &wasmtypes.MsgInstantiateContractResponse{
		Address: contractStr,
		Data:    data,
	}, nil
}

func handleMsgExecuteContract(ctx Context, wk WasmKeeper, msg *wasmtypes.MsgExecuteContract) (*wasmtypes.MsgExecuteContractResponse, error) {
	sender, err := wk.ak.AddressCodec().StringToBytes(msg.Sender)
	if err != nil {
		return nil, errorsmod.Wrap(err, "sender")
	}
	contractAddr, err := wk.ak.AddressCodec().StringToBytes(msg.Contract)
	if err != nil {
		return nil, errorsmod.Wrap(err, "contract")
	}

	data, err := wk.Execute(ctx, contractAddr, sender, msg.Msg, msg.Funds)
	if err != nil {
		return nil, err
	}

	return &wasmtypes.MsgExecuteContractResponse{Data: data}, nil
}
