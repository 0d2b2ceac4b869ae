package runner

import (
	abci "github.com/cometbft/cometbft/abci/types"
	"github.com/cosmos/gogoproto/proto"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/osmosis-testing/account"
)

// Runner executes transactions and queries against a chain.
type Runner interface {
	// ExecuteMultipleRaw signs msgs with signer, delivers them in one transaction inside
	// its own block and returns the delivery result.
	ExecuteMultipleRaw(msgs []*codectypes.Any, signer account.SigningAccount) (*abci.ExecTxResult, error)
	// QueryRaw submits an encoded request at a gRPC method path and returns the encoded response.
	QueryRaw(path string, req []byte) ([]byte, error)
}

// Message is the pointer form of a protobuf message type T.
type Message[T any] interface {
	*T
	proto.Message
}

// Execute delivers a single message and decodes its response into T.
func Execute[T any, PT Message[T]](r Runner, msg sdk.Msg, signer account.SigningAccount) (*ExecuteResponse[T], error) {
	return ExecuteMultiple[T, PT](r, []sdk.Msg{msg}, signer)
}

// ExecuteMultiple delivers msgs in order within one transaction and decodes the response of
// the first message into T.
func ExecuteMultiple[T any, PT Message[T]](r Runner, msgs []sdk.Msg, signer account.SigningAccount) (*ExecuteResponse[T], error) {
	anys, err := PackMsgs(msgs)
	if err != nil {
		return nil, err
	}

	return ExecuteAny[T, PT](r, anys, signer)
}

// ExecuteAny delivers already packed msgs and decodes the response of the first message into T.
func ExecuteAny[T any, PT Message[T]](r Runner, msgs []*codectypes.Any, signer account.SigningAccount) (*ExecuteResponse[T], error) {
	res, err := r.ExecuteMultipleRaw(msgs, signer)
	if err != nil {
		return nil, err
	}

	return NewExecuteResponse[T, PT](res)
}

// Query encodes req, submits it at path and decodes the response into T.
func Query[T any, PT Message[T]](r Runner, path string, req proto.Message) (*T, error) {
	reqBz, err := proto.Marshal(req)
	if err != nil {
		return nil, encodeError(stepProtobuf, err)
	}

	resBz, err := r.QueryRaw(path, reqBz)
	if err != nil {
		return nil, err
	}

	res := new(T)
	if err := proto.Unmarshal(resBz, PT(res)); err != nil {
		return nil, decodeError(stepProtobuf, err)
	}

	return res, nil
}

// PackMsgs packs msgs into Anys preserving their order.
func PackMsgs(msgs []sdk.Msg) ([]*codectypes.Any, error) {
	anys := make([]*codectypes.Any, len(msgs))
	for i, msg := range msgs {
		msgAny, err := codectypes.NewAnyWithValue(msg)
		if err != nil {
			return nil, encodeError(stepProtobuf, err)
		}

		anys[i] = msgAny
	}

	return anys, nil
}
