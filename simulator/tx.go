package simulator

import (
	abci "github.com/cometbft/cometbft/abci/types"
	"github.com/cosmos/gogoproto/proto"

	errorsmod "cosmossdk.io/errors"
	storetypes "cosmossdk.io/store/types"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// runTx decodes txBytes and runs it against ctx. The ante handler changes are kept even when
// a message fails; message changes are kept only when every message succeeds. The returned
// events are those written back into ctx.
func (app *Simulator) runTx(ctx Context, txBytes []byte, simulate bool) (gasInfo sdk.GasInfo, result *sdk.Result, events []abci.Event, err error) {
	tx, err := app.txDecoder(txBytes)
	if err != nil {
		return sdk.GasInfo{}, nil, nil, errorsmod.Wrap(sdkerrors.ErrTxDecode, err.Error())
	}

	feeTx, ok := tx.(sdk.FeeTx)
	if !ok {
		return sdk.GasInfo{}, nil, nil, errorsmod.Wrap(sdkerrors.ErrTxDecode, "tx must be a FeeTx")
	}

	gasWanted := feeTx.GetGas()
	if simulate {
		ctx = ctx.WithGasMeter(storetypes.NewInfiniteGasMeter())
	} else {
		ctx = ctx.WithGasMeter(storetypes.NewGasMeter(gasWanted))
	}

	defer func() {
		if r := recover(); r != nil {
			switch rType := r.(type) {
			case storetypes.ErrorOutOfGas:
				err = errorsmod.Wrapf(
					sdkerrors.ErrOutOfGas,
					"out of gas in location: %v; gasWanted: %d, gasUsed: %d",
					rType.Descriptor, gasWanted, ctx.GasMeter().GasConsumed(),
				)
			default:
				err = errorsmod.Wrapf(sdkerrors.ErrPanic, "recovered: %v", r)
			}

			result = nil
		}

		gasInfo = sdk.GasInfo{GasWanted: gasWanted, GasUsed: ctx.GasMeter().GasConsumed()}
		events = ctx.EventManager().ABCIEvents()
	}()

	anteCtx, writeAnte := ctx.CacheContext()
	if err := app.anteHandler.AnteHandle(anteCtx, txBytes, tx, simulate); err != nil {
		return gasInfo, nil, nil, err
	}
	writeAnte()

	msgCtx, writeMsgs := ctx.CacheContext()
	result, err = app.runMsgs(msgCtx, tx.GetMsgs())
	if err != nil {
		return gasInfo, nil, nil, err
	}
	writeMsgs()

	return gasInfo, result, nil, nil
}

func (app *Simulator) runMsgs(ctx Context, msgs []sdk.Msg) (*sdk.Result, error) {
	msgResponses := make([]*codectypes.Any, 0, len(msgs))
	for i, msg := range msgs {
		handler := app.msgRouter.Handler(msg)
		if handler == nil {
			return nil, errorsmod.Wrapf(ErrUnknownMessage, "%s; message index: %d", sdk.MsgTypeURL(msg), i)
		}

		msgCtx := ctx.WithEventManager(sdk.NewEventManager())
		res, err := handler(msgCtx, msg)
		if err != nil {
			return nil, errorsmod.Wrapf(err, "failed to execute message; message index: %d", i)
		}

		ctx.EventManager().EmitEvent(sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyAction, sdk.MsgTypeURL(msg)),
		))
		ctx.EventManager().EmitEvents(msgCtx.EventManager().Events())

		msgResponse, err := codectypes.NewAnyWithValue(res)
		if err != nil {
			return nil, err
		}
		msgResponses = append(msgResponses, msgResponse)
	}

	data, err := proto.Marshal(&sdk.TxMsgData{MsgResponses: msgResponses})
	if err != nil {
		return nil, errorsmod.Wrap(err, "failed to marshal tx data")
	}

	return &sdk.Result{
		Data:         data,
		Events:       ctx.EventManager().ABCIEvents(),
		MsgResponses: msgResponses,
	}, nil
}

// execTxResult converts the outcome of runTx into the ABCI delivery result.
func execTxResult(gasInfo sdk.GasInfo, result *sdk.Result, events []abci.Event, err error) *abci.ExecTxResult {
	if err != nil {
		codespace, code, log := errorsmod.ABCIInfo(err, false)
		return &abci.ExecTxResult{
			Codespace: codespace,
			Code:      code,
			Log:       log,
			GasWanted: int64(gasInfo.GasWanted),
			GasUsed:   int64(gasInfo.GasUsed),
			Events:    events,
		}
	}

	return &abci.ExecTxResult{
		Data:      result.Data,
		Log:       result.Log,
		GasWanted: int64(gasInfo.GasWanted),
		GasUsed:   int64(gasInfo.GasUsed),
		Events:    events,
	}
}
