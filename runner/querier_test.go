package runner_test

import (
	"encoding/json"
	"testing"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	wasmvmtypes "github.com/CosmWasm/wasmvm/v3/types"
	"github.com/cosmos/gogoproto/proto"
	"github.com/stretchr/testify/require"

	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	"github.com/osmosis-labs/osmosis-testing/account"
	"github.com/osmosis-labs/osmosis-testing/app"
	"github.com/osmosis-labs/osmosis-testing/runner"
	"github.com/osmosis-labs/osmosis-testing/simulator/testutil"
)

func TestClassifyQuery(t *testing.T) {
	testCases := []struct {
		name    string
		request wasmvmtypes.QueryRequest
		kind    runner.QueryKind
	}{
		{"wasm smart", wasmvmtypes.QueryRequest{Wasm: &wasmvmtypes.WasmQuery{Smart: &wasmvmtypes.SmartQuery{}}}, runner.QueryKindWasmSmart},
		{"wasm raw", wasmvmtypes.QueryRequest{Wasm: &wasmvmtypes.WasmQuery{Raw: &wasmvmtypes.RawQuery{}}}, runner.QueryKindWasmRaw},
		{"wasm contract info", wasmvmtypes.QueryRequest{Wasm: &wasmvmtypes.WasmQuery{ContractInfo: &wasmvmtypes.ContractInfoQuery{}}}, runner.QueryKindUnrecognized},
		{"bank balance", wasmvmtypes.QueryRequest{Bank: &wasmvmtypes.BankQuery{Balance: &wasmvmtypes.BalanceQuery{}}}, runner.QueryKindBankBalance},
		{"bank supply", wasmvmtypes.QueryRequest{Bank: &wasmvmtypes.BankQuery{Supply: &wasmvmtypes.SupplyQuery{}}}, runner.QueryKindBankSupply},
		{"stargate", wasmvmtypes.QueryRequest{Stargate: &wasmvmtypes.StargateQuery{}}, runner.QueryKindStargate},
		{"grpc", wasmvmtypes.QueryRequest{Grpc: &wasmvmtypes.GrpcQuery{}}, runner.QueryKindGrpc},
		{"staking", wasmvmtypes.QueryRequest{Staking: &wasmvmtypes.StakingQuery{}}, runner.QueryKindUnrecognized},
		{"empty", wasmvmtypes.QueryRequest{}, runner.QueryKindUnrecognized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kind := runner.ClassifyQuery(tc.request)
			require.Equal(t, tc.kind, kind)
			require.NotEmpty(t, kind.String())
		})
	}
}

type querierFixture struct {
	testApp  *runner.TestApp
	querier  *runner.Querier
	acc      account.SigningAccount
	contract string
}

func setupQuerier(t *testing.T, opts ...runner.QuerierOption) querierFixture {
	t.Helper()

	testApp := newSimulatedApp(t)
	acc, err := testApp.InitAccount(sdk.NewCoins(sdk.NewInt64Coin(app.FeeDenom, 1_000)))
	require.NoError(t, err)

	stored, err := runner.Execute[wasmtypes.MsgStoreCodeResponse](testApp, &wasmtypes.MsgStoreCode{
		Sender:       acc.Address(),
		WASMByteCode: testutil.CounterCode,
	}, acc)
	require.NoError(t, err)
	instantiated, err := runner.Execute[wasmtypes.MsgInstantiateContractResponse](testApp, &wasmtypes.MsgInstantiateContract{
		Sender: acc.Address(),
		CodeID: stored.Data.CodeID,
		Label:  "counter",
		Msg:    []byte(`{"count":12}`),
	}, acc)
	require.NoError(t, err)

	return querierFixture{
		testApp:  testApp,
		querier:  runner.NewQuerier(testApp, testApp.EncodingConfig().Codec, opts...),
		acc:      acc,
		contract: instantiated.Data.Address,
	}
}

func TestQuerierWasm(t *testing.T) {
	f := setupQuerier(t)

	bz, err := f.querier.Query(wasmvmtypes.QueryRequest{Wasm: &wasmvmtypes.WasmQuery{Smart: &wasmvmtypes.SmartQuery{
		ContractAddr: f.contract,
		Msg:          []byte(`{"get_count":{}}`),
	}}}, 0)
	require.NoError(t, err)
	require.JSONEq(t, `{"count":12}`, string(bz))

	bz, err = f.querier.Query(wasmvmtypes.QueryRequest{Wasm: &wasmvmtypes.WasmQuery{Raw: &wasmvmtypes.RawQuery{
		ContractAddr: f.contract,
		Key:          testutil.CountKey,
	}}}, 0)
	require.NoError(t, err)
	require.Equal(t, "12", string(bz))
}

func TestQuerierBank(t *testing.T) {
	f := setupQuerier(t)

	bz, err := f.querier.Query(wasmvmtypes.QueryRequest{Bank: &wasmvmtypes.BankQuery{Balance: &wasmvmtypes.BalanceQuery{
		Address: f.acc.Address(),
		Denom:   app.FeeDenom,
	}}}, 0)
	require.NoError(t, err)

	var balance wasmvmtypes.BalanceResponse
	require.NoError(t, json.Unmarshal(bz, &balance))
	require.Equal(t, wasmvmtypes.Coin{Denom: app.FeeDenom, Amount: "1000"}, balance.Amount)

	bz, err = f.querier.Query(wasmvmtypes.QueryRequest{Bank: &wasmvmtypes.BankQuery{Supply: &wasmvmtypes.SupplyQuery{
		Denom: app.FeeDenom,
	}}}, 0)
	require.NoError(t, err)

	var supply wasmvmtypes.SupplyResponse
	require.NoError(t, json.Unmarshal(bz, &supply))
	require.Equal(t, "1000", supply.Amount.Amount)
}

func TestQuerierStargate(t *testing.T) {
	f := setupQuerier(t)

	reqBz, err := proto.Marshal(&banktypes.QueryBalanceRequest{Address: f.acc.Address(), Denom: app.FeeDenom})
	require.NoError(t, err)

	bz, err := f.querier.Query(wasmvmtypes.QueryRequest{Stargate: &wasmvmtypes.StargateQuery{
		Path: runner.PathBankBalance,
		Data: reqBz,
	}}, 0)
	require.NoError(t, err)
	require.JSONEq(t, `{"balance":{"denom":"uosmo","amount":"1000"}}`, string(bz))

	// pooled response messages are reset between queries
	bz, err = f.querier.Query(wasmvmtypes.QueryRequest{Stargate: &wasmvmtypes.StargateQuery{
		Path: runner.PathBankBalance,
		Data: reqBz,
	}}, 0)
	require.NoError(t, err)
	require.JSONEq(t, `{"balance":{"denom":"uosmo","amount":"1000"}}`, string(bz))

	_, err = f.querier.Query(wasmvmtypes.QueryRequest{Stargate: &wasmvmtypes.StargateQuery{
		Path: "/osmosis.gamm.v1beta1.Query/Pools",
	}}, 0)
	require.ErrorIs(t, err, runner.ErrUnsupportedQuery)
	require.ErrorContains(t, err, "is not allowed from the contract")
}

func TestQuerierGrpc(t *testing.T) {
	f := setupQuerier(t, runner.WithGrpcPatterns("/cosmos.bank.*"))

	reqBz, err := proto.Marshal(&banktypes.QueryBalanceRequest{Address: f.acc.Address(), Denom: app.FeeDenom})
	require.NoError(t, err)

	bz, err := f.querier.Query(wasmvmtypes.QueryRequest{Grpc: &wasmvmtypes.GrpcQuery{
		Path: runner.PathBankBalance,
		Data: reqBz,
	}}, 0)
	require.NoError(t, err)

	var res banktypes.QueryBalanceResponse
	require.NoError(t, proto.Unmarshal(bz, &res))
	require.Equal(t, int64(1_000), res.Balance.Amount.Int64())

	_, err = f.querier.Query(wasmvmtypes.QueryRequest{Grpc: &wasmvmtypes.GrpcQuery{
		Path: runner.PathWasmSmart,
	}}, 0)
	require.ErrorIs(t, err, runner.ErrUnsupportedQuery)
}

func TestQuerierUnsupported(t *testing.T) {
	f := setupQuerier(t)

	_, err := f.querier.Query(wasmvmtypes.QueryRequest{Staking: &wasmvmtypes.StakingQuery{}}, 0)
	require.ErrorIs(t, err, runner.ErrUnsupportedQuery)
	require.Zero(t, f.querier.GasConsumed())
}

func TestQuerierGas(t *testing.T) {
	f := setupQuerier(t, runner.WithQueryGasCost(400))

	request := wasmvmtypes.QueryRequest{Bank: &wasmvmtypes.BankQuery{Balance: &wasmvmtypes.BalanceQuery{
		Address: f.acc.Address(),
		Denom:   app.FeeDenom,
	}}}

	_, err := f.querier.Query(request, 1_000)
	require.NoError(t, err)
	_, err = f.querier.Query(request, 1_000)
	require.NoError(t, err)
	require.Equal(t, uint64(800), f.querier.GasConsumed())

	_, err = f.querier.Query(request, 1_000)
	require.ErrorIs(t, err, runner.ErrQuery)
	require.Equal(t, uint64(800), f.querier.GasConsumed())
}

func TestQuerierRawQuery(t *testing.T) {
	f := setupQuerier(t)

	request, err := json.Marshal(wasmvmtypes.QueryRequest{Wasm: &wasmvmtypes.WasmQuery{Smart: &wasmvmtypes.SmartQuery{
		ContractAddr: f.contract,
		Msg:          []byte(`{"get_count":{}}`),
	}}})
	require.NoError(t, err)

	bz, err := f.querier.RawQuery(request)
	require.NoError(t, err)
	require.JSONEq(t, `{"count":12}`, string(bz))

	_, err = f.querier.RawQuery([]byte("{"))
	require.ErrorIs(t, err, runner.ErrDecode)
}
