package runner

import (
	"encoding/json"
	"fmt"
	"sync"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	wasmvmtypes "github.com/CosmWasm/wasmvm/v3/types"
	"github.com/IGLOU-EU/go-wildcard"
	"github.com/cosmos/gogoproto/proto"

	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/cosmos-sdk/codec"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
)

// query paths answered by the simulator
const (
	PathBankBalance      = "/cosmos.bank.v1beta1.Query/Balance"
	PathBankAllBalances  = "/cosmos.bank.v1beta1.Query/AllBalances"
	PathBankSupplyOf     = "/cosmos.bank.v1beta1.Query/SupplyOf"
	PathBankTotalSupply  = "/cosmos.bank.v1beta1.Query/TotalSupply"
	PathAuthAccount      = "/cosmos.auth.v1beta1.Query/Account"
	PathWasmSmart        = "/cosmwasm.wasm.v1.Query/SmartContractState"
	PathWasmRaw          = "/cosmwasm.wasm.v1.Query/RawContractState"
	PathWasmContractInfo = "/cosmwasm.wasm.v1.Query/ContractInfo"
)

const (
	defaultQueryGasCost   = uint64(1_000)
	unsupportedQueryShape = "query shape"
)

// QueryKind is the closed set of contract query shapes the Querier answers.
type QueryKind int

const (
	QueryKindUnrecognized QueryKind = iota
	QueryKindWasmSmart
	QueryKindWasmRaw
	QueryKindBankBalance
	QueryKindBankSupply
	QueryKindStargate
	QueryKindGrpc
)

func (k QueryKind) String() string {
	switch k {
	case QueryKindWasmSmart:
		return "wasm.smart"
	case QueryKindWasmRaw:
		return "wasm.raw"
	case QueryKindBankBalance:
		return "bank.balance"
	case QueryKindBankSupply:
		return "bank.supply"
	case QueryKindStargate:
		return "stargate"
	case QueryKindGrpc:
		return "grpc"
	default:
		return "unrecognized"
	}
}

// ClassifyQuery returns the kind of request. Requests outside the supported set are
// QueryKindUnrecognized.
func ClassifyQuery(request wasmvmtypes.QueryRequest) QueryKind {
	switch {
	case request.Wasm != nil && request.Wasm.Smart != nil:
		return QueryKindWasmSmart
	case request.Wasm != nil && request.Wasm.Raw != nil:
		return QueryKindWasmRaw
	case request.Bank != nil && request.Bank.Balance != nil:
		return QueryKindBankBalance
	case request.Bank != nil && request.Bank.Supply != nil:
		return QueryKindBankSupply
	case request.Stargate != nil:
		return QueryKindStargate
	case request.Grpc != nil:
		return QueryKindGrpc
	default:
		return QueryKindUnrecognized
	}
}

var _ wasmvmtypes.Querier = (*Querier)(nil)

// Querier answers contract queries by routing them through a Runner. Stargate queries are
// limited to an accept list of paths, each bound to its response type so the response can be
// re-encoded as JSON.
type Querier struct {
	runner Runner
	cdc    codec.Codec

	stargateResponses map[string]*sync.Pool
	grpcPatterns      []string
	queryGasCost      uint64

	mu          sync.Mutex
	gasConsumed uint64
}

// QuerierOption configures a Querier.
type QuerierOption func(*Querier)

// WithStargateQuery adds path to the stargate accept list. newResponse returns an empty
// response message of the path.
func WithStargateQuery(path string, newResponse func() proto.Message) QuerierOption {
	return func(q *Querier) {
		q.stargateResponses[path] = &sync.Pool{
			New: func() any {
				return newResponse()
			},
		}
	}
}

// WithGrpcPatterns sets the wildcard patterns of paths grpc queries may reach.
func WithGrpcPatterns(patterns ...string) QuerierOption {
	return func(q *Querier) {
		q.grpcPatterns = patterns
	}
}

// WithQueryGasCost sets the gas charged for every answered query.
func WithQueryGasCost(cost uint64) QuerierOption {
	return func(q *Querier) {
		q.queryGasCost = cost
	}
}

// NewQuerier returns a Querier over r. cdc decodes stargate responses for JSON re-encoding.
func NewQuerier(r Runner, cdc codec.Codec, opts ...QuerierOption) *Querier {
	q := &Querier{
		runner:            r,
		cdc:               cdc,
		stargateResponses: make(map[string]*sync.Pool),
		queryGasCost:      defaultQueryGasCost,
	}

	defaults := []QuerierOption{
		WithStargateQuery(PathBankBalance, func() proto.Message { return &banktypes.QueryBalanceResponse{} }),
		WithStargateQuery(PathBankAllBalances, func() proto.Message { return &banktypes.QueryAllBalancesResponse{} }),
		WithStargateQuery(PathBankSupplyOf, func() proto.Message { return &banktypes.QuerySupplyOfResponse{} }),
		WithStargateQuery(PathBankTotalSupply, func() proto.Message { return &banktypes.QueryTotalSupplyResponse{} }),
		WithStargateQuery(PathAuthAccount, func() proto.Message { return &authtypes.QueryAccountResponse{} }),
		WithStargateQuery(PathWasmContractInfo, func() proto.Message { return &wasmtypes.QueryContractInfoResponse{} }),
	}
	for _, opt := range append(defaults, opts...) {
		opt(q)
	}

	return q
}

// GasConsumed implements wasmvmtypes.Querier.
func (q *Querier) GasConsumed() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.gasConsumed
}

// RawQuery answers a JSON encoded QueryRequest.
func (q *Querier) RawQuery(request []byte) ([]byte, error) {
	var req wasmvmtypes.QueryRequest
	if err := json.Unmarshal(request, &req); err != nil {
		return nil, decodeError(stepJSON, err)
	}

	return q.Query(req, 0)
}

// Query implements wasmvmtypes.Querier. A zero gasLimit disables the gas check.
func (q *Querier) Query(request wasmvmtypes.QueryRequest, gasLimit uint64) ([]byte, error) {
	kind := ClassifyQuery(request)
	if kind == QueryKindUnrecognized {
		return nil, errorsmod.Wrap(ErrUnsupportedQuery, wasmvmtypes.UnsupportedRequest{Kind: unsupportedQueryShape}.Error())
	}

	if err := q.consumeGas(gasLimit); err != nil {
		return nil, err
	}

	switch kind {
	case QueryKindWasmSmart:
		return q.wasmSmart(request.Wasm.Smart)
	case QueryKindWasmRaw:
		return q.wasmRaw(request.Wasm.Raw)
	case QueryKindBankBalance:
		return q.bankBalance(request.Bank.Balance)
	case QueryKindBankSupply:
		return q.bankSupply(request.Bank.Supply)
	case QueryKindStargate:
		return q.stargate(request.Stargate)
	case QueryKindGrpc:
		return q.grpc(request.Grpc)
	default:
		panic(fmt.Sprintf("unhandled query kind %s", kind))
	}
}

func (q *Querier) consumeGas(gasLimit uint64) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	consumed := q.gasConsumed + q.queryGasCost
	if gasLimit != 0 && consumed > gasLimit {
		return errorsmod.Wrapf(ErrQuery, "out of gas: limit %d, needed %d", gasLimit, consumed)
	}

	q.gasConsumed = consumed
	return nil
}

func (q *Querier) wasmSmart(req *wasmvmtypes.SmartQuery) ([]byte, error) {
	res, err := Query[wasmtypes.QuerySmartContractStateResponse](q.runner, PathWasmSmart, &wasmtypes.QuerySmartContractStateRequest{
		Address:   req.ContractAddr,
		QueryData: req.Msg,
	})
	if err != nil {
		return nil, err
	}

	return res.Data, nil
}

func (q *Querier) wasmRaw(req *wasmvmtypes.RawQuery) ([]byte, error) {
	res, err := Query[wasmtypes.QueryRawContractStateResponse](q.runner, PathWasmRaw, &wasmtypes.QueryRawContractStateRequest{
		Address:   req.ContractAddr,
		QueryData: req.Key,
	})
	if err != nil {
		return nil, err
	}

	return res.Data, nil
}

func (q *Querier) bankBalance(req *wasmvmtypes.BalanceQuery) ([]byte, error) {
	res, err := Query[banktypes.QueryBalanceResponse](q.runner, PathBankBalance, &banktypes.QueryBalanceRequest{
		Address: req.Address,
		Denom:   req.Denom,
	})
	if err != nil {
		return nil, err
	}

	coin := wasmvmtypes.Coin{Denom: req.Denom, Amount: "0"}
	if res.Balance != nil {
		coin = wasmvmtypes.Coin{Denom: res.Balance.Denom, Amount: res.Balance.Amount.String()}
	}

	return marshalJSON(wasmvmtypes.BalanceResponse{Amount: coin})
}

func (q *Querier) bankSupply(req *wasmvmtypes.SupplyQuery) ([]byte, error) {
	res, err := Query[banktypes.QuerySupplyOfResponse](q.runner, PathBankSupplyOf, &banktypes.QuerySupplyOfRequest{
		Denom: req.Denom,
	})
	if err != nil {
		return nil, err
	}

	return marshalJSON(wasmvmtypes.SupplyResponse{
		Amount: wasmvmtypes.Coin{
			Denom:  res.Amount.Denom,
			Amount: res.Amount.Amount.String(),
		},
	})
}

func (q *Querier) stargate(req *wasmvmtypes.StargateQuery) ([]byte, error) {
	pool, ok := q.stargateResponses[req.Path]
	if !ok {
		return nil, errorsmod.Wrap(ErrUnsupportedQuery, wasmvmtypes.UnsupportedRequest{
			Kind: fmt.Sprintf("'%s' path is not allowed from the contract", req.Path),
		}.Error())
	}

	resp, ok := pool.Get().(proto.Message)
	if !ok {
		return nil, errorsmod.Wrapf(ErrQuery, "failed to assert type to proto.Message for %s", req.Path)
	}
	defer func() {
		resp.Reset()
		pool.Put(resp)
	}()

	bz, err := q.runner.QueryRaw(req.Path, req.Data)
	if err != nil {
		return nil, err
	}

	return convertProtoToJSON(q.cdc, resp, bz)
}

func (q *Querier) grpc(req *wasmvmtypes.GrpcQuery) ([]byte, error) {
	allowed := false
	for _, pattern := range q.grpcPatterns {
		if wildcard.Match(pattern, req.Path) {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, errorsmod.Wrap(ErrUnsupportedQuery, wasmvmtypes.UnsupportedRequest{
			Kind: fmt.Sprintf("'%s' path is not allowed from the contract", req.Path),
		}.Error())
	}

	return q.runner.QueryRaw(req.Path, req.Data)
}

// convertProtoToJSON decodes bz into resp and re-encodes it as proto JSON.
func convertProtoToJSON(cdc codec.Codec, resp proto.Message, bz []byte) ([]byte, error) {
	if err := cdc.Unmarshal(bz, resp); err != nil {
		return nil, decodeError(stepProtobuf, err)
	}

	out, err := cdc.MarshalJSON(resp)
	if err != nil {
		return nil, encodeError(stepJSON, err)
	}

	return out, nil
}

func marshalJSON(v any) ([]byte, error) {
	bz, err := json.Marshal(v)
	if err != nil {
		return nil, encodeError(stepJSON, err)
	}

	return bz, nil
}
