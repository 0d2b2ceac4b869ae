package simulator

import (
	"fmt"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	"github.com/cosmos/gogoproto/proto"

	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
)

// QueryHandler answers an encoded request.
type QueryHandler func(ctx Context, req []byte) (proto.Message, error)

// QueryRouter routes queries to their handler by gRPC method path.
type QueryRouter struct {
	cdc      codec.Codec
	handlers map[string]QueryHandler
}

// NewQueryRouter returns an empty QueryRouter.
func NewQueryRouter(cdc codec.Codec) *QueryRouter {
	return &QueryRouter{
		cdc:      cdc,
		handlers: make(map[string]QueryHandler),
	}
}

// AddRoute registers handler for path. It panics on a duplicate route.
func (r *QueryRouter) AddRoute(path string, handler QueryHandler) *QueryRouter {
	if _, ok := r.handlers[path]; ok {
		panic(fmt.Sprintf("query route %s has already been registered", path))
	}

	r.handlers[path] = handler
	return r
}

// Query answers req at path and returns the encoded response.
func (r *QueryRouter) Query(ctx Context, path string, req []byte) ([]byte, error) {
	handler, ok := r.handlers[path]
	if !ok {
		return nil, errorsmod.Wrap(ErrUnknownQuery, path)
	}

	res, err := handler(ctx, req)
	if err != nil {
		return nil, err
	}

	return r.cdc.Marshal(res)
}

// unmarshalRequest returns a QueryHandler decoding the request into a fresh Req before
// calling fn.
func unmarshalRequest[Req any, PReq interface {
	*Req
	proto.Message
}](cdc codec.Codec, fn func(ctx Context, req PReq) (proto.Message, error)) QueryHandler {
	return func(ctx Context, bz []byte) (proto.Message, error) {
		req := PReq(new(Req))
		if err := cdc.Unmarshal(bz, req); err != nil {
			return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, err.Error())
		}

		return fn(ctx, req)
	}
}

func registerBankQueryServer(router *QueryRouter, bk BankKeeper) {
	cdc := router.cdc
	addressCodec := bk.ak.AddressCodec()

	router.
		AddRoute("/cosmos.bank.v1beta1.Query/Balance", unmarshalRequest(cdc, func(ctx Context, req *banktypes.QueryBalanceRequest) (proto.Message, error) {
			addr, err := addressCodec.StringToBytes(req.Address)
			if err != nil {
				return nil, sdkerrors.ErrInvalidAddress.Wrap(err.Error())
			}

			balance := bk.GetBalance(ctx, addr, req.Denom)
			return &banktypes.QueryBalanceResponse{Balance: &balance}, nil
		})).
		AddRoute("/cosmos.bank.v1beta1.Query/AllBalances", unmarshalRequest(cdc, func(ctx Context, req *banktypes.QueryAllBalancesRequest) (proto.Message, error) {
			addr, err := addressCodec.StringToBytes(req.Address)
			if err != nil {
				return nil, sdkerrors.ErrInvalidAddress.Wrap(err.Error())
			}

			return &banktypes.QueryAllBalancesResponse{Balances: bk.GetAllBalances(ctx, addr)}, nil
		})).
		AddRoute("/cosmos.bank.v1beta1.Query/SupplyOf", unmarshalRequest(cdc, func(ctx Context, req *banktypes.QuerySupplyOfRequest) (proto.Message, error) {
			return &banktypes.QuerySupplyOfResponse{Amount: bk.GetSupply(ctx, req.Denom)}, nil
		})).
		AddRoute("/cosmos.bank.v1beta1.Query/TotalSupply", unmarshalRequest(cdc, func(ctx Context, _ *banktypes.QueryTotalSupplyRequest) (proto.Message, error) {
			return &banktypes.QueryTotalSupplyResponse{Supply: bk.GetTotalSupply(ctx)}, nil
		}))
}

func registerAuthQueryServer(router *QueryRouter, ak AccountKeeper) {
	router.AddRoute("/cosmos.auth.v1beta1.Query/Account", unmarshalRequest(router.cdc, func(ctx Context, req *authtypes.QueryAccountRequest) (proto.Message, error) {
		addr, err := ak.AddressCodec().StringToBytes(req.Address)
		if err != nil {
			return nil, sdkerrors.ErrInvalidAddress.Wrap(err.Error())
		}

		acc := ak.GetAccount(ctx, addr)
		if acc == nil {
			return nil, errorsmod.Wrapf(sdkerrors.ErrUnknownAddress, "account %s not found", req.Address)
		}

		accAny, err := codectypes.NewAnyWithValue(acc)
		if err != nil {
			return nil, err
		}

		return &authtypes.QueryAccountResponse{Account: accAny}, nil
	}))
}

func registerWasmQueryServer(router *QueryRouter, wk WasmKeeper) {
	addressCodec := wk.ak.AddressCodec()

	router.
		AddRoute("/cosmwasm.wasm.v1.Query/SmartContractState", unmarshalRequest(router.cdc, func(ctx Context, req *wasmtypes.QuerySmartContractStateRequest) (proto.Message, error) {
			contractAddr, err := addressCodec.StringToBytes(req.Address)
			if err != nil {
				return nil, sdkerrors.ErrInvalidAddress.Wrap(err.Error())
			}

			data, err := wk.QuerySmart(ctx, contractAddr, req.QueryData)
			if err != nil {
				return nil, err
			}

			return &wasmtypes.QuerySmartContractStateResponse{Data: data}, nil
		})).
		AddRoute("/cosmwasm.wasm.v1.Query/RawContractState", unmarshalRequest(router.cdc, func(ctx Context, req *wasmtypes.QueryRawContractStateRequest) (proto.Message, error) {
			contractAddr, err := addressCodec.StringToBytes(req.Address)
			if err != nil {
				return nil, sdkerrors.ErrInvalidAddress.Wrap(err.Error())
			}
			if wk.GetContractInfo(ctx, contractAddr) == nil {
				return nil, errorsmod.Wrap(ErrContractNotFound, req.Address)
			}

			return &wasmtypes.QueryRawContractStateResponse{Data: wk.QueryRaw(ctx, contractAddr, req.QueryData)}, nil
		})).
		AddRoute("/cosmwasm.wasm.v1.Query/ContractInfo", unmarshalRequest(router.cdc, func(ctx Context, req *wasmtypes.QueryContractInfoRequest) (proto.Message, error) {
			contractAddr, err := addressCodec.StringToBytes(req.Address)
			if err != nil {
				return nil, sdkerrors.ErrInvalidAddress.Wrap(err.Error())
			}

			contractInfo := wk.GetContractInfo(ctx, contractAddr)
			if contractInfo == nil {
				return nil, errorsmod.Wrap(ErrContractNotFound, req.Address)
			}

			return &wasmtypes.QueryContractInfoResponse{
				Address:      req.Address,
				ContractInfo: *contractInfo,
			}, nil
		}))
}
