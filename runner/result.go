package runner

import (
	"fmt"

	abci "github.com/cometbft/cometbft/abci/types"
	"github.com/cosmos/gogoproto/proto"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ExecuteResponse is the decoded result of a delivered transaction.
type ExecuteResponse[T any] struct {
	// Data is the response of the first message of the transaction.
	Data T
	// RawData is the encoded TxMsgData of the transaction.
	RawData []byte
	Events  []abci.Event
	GasInfo sdk.GasInfo
}

// NewExecuteResponse decodes res into an ExecuteResponse whose Data is the response of the
// first message.
func NewExecuteResponse[T any, PT Message[T]](res *abci.ExecTxResult) (*ExecuteResponse[T], error) {
	var msgData sdk.TxMsgData
	if err := proto.Unmarshal(res.Data, &msgData); err != nil {
		return nil, decodeError(stepProtobuf, err)
	}
	if len(msgData.MsgResponses) == 0 {
		return nil, decodeError(stepProtobuf, fmt.Errorf("transaction has no message responses"))
	}

	resp := &ExecuteResponse[T]{
		RawData: res.Data,
		Events:  res.Events,
		GasInfo: sdk.GasInfo{
			GasWanted: uint64(res.GasWanted),
			GasUsed:   uint64(res.GasUsed),
		},
	}
	if err := proto.Unmarshal(msgData.MsgResponses[0].Value, PT(&resp.Data)); err != nil {
		return nil, decodeError(stepProtobuf, err)
	}

	return resp, nil
}
