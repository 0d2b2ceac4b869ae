package simulator_test

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	abci "github.com/cometbft/cometbft/abci/types"
	"github.com/cosmos/gogoproto/proto"
	"github.com/stretchr/testify/require"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	"github.com/osmosis-labs/osmosis-testing/account"
	"github.com/osmosis-labs/osmosis-testing/app"
	"github.com/osmosis-labs/osmosis-testing/simulator"
	"github.com/osmosis-labs/osmosis-testing/simulator/testutil"
	"github.com/osmosis-labs/osmosis-testing/tx"
)

const (
	testMnemonic   = "notice oak worry limit wrap speak medal online prefer cluster roof addict wrist behave treat actual wasp year salad speed social layer crew genius"
	defaultBalance = `[{"denom":"uosmo","amount":"100000000000"}]`
)

func setupSession(t *testing.T, opts ...simulator.Option) (*simulator.Simulator, uint64) {
	t.Helper()

	opts = append([]simulator.Option{simulator.WithContract(testutil.CounterCode, testutil.Counter{})}, opts...)
	sim := simulator.New(opts...)
	id, err := sim.InitSession(defaultBalance)
	require.NoError(t, err)

	return sim, id
}

func query[T any, PT interface {
	*T
	proto.Message
}](t *testing.T, sim *simulator.Simulator, id uint64, path string, req proto.Message) *T {
	t.Helper()

	reqBz, err := proto.Marshal(req)
	require.NoError(t, err)

	bz, err := sim.Query(id, path, base64.StdEncoding.EncodeToString(reqBz)).IntoResult()
	require.NoError(t, err)

	res := PT(new(T))
	require.NoError(t, proto.Unmarshal(bz, res))
	return (*T)(res)
}

func balance(t *testing.T, sim *simulator.Simulator, id uint64, addr, denom string) int64 {
	t.Helper()

	res := query[banktypes.QueryBalanceResponse](t, sim, id, "/cosmos.bank.v1beta1.Query/Balance", &banktypes.QueryBalanceRequest{Address: addr, Denom: denom})
	return res.Balance.Amount.Int64()
}

func execute(t *testing.T, sim *simulator.Simulator, id uint64, base64Tx string) *abci.ExecTxResult {
	t.Helper()

	require.NoError(t, sim.BeginBlock(id))
	defer func() { require.NoError(t, sim.EndBlock(id)) }()

	bz, err := sim.Execute(id, testutil.BroadcastRequest(t, base64Tx)).IntoResult()
	require.NoError(t, err)

	var res abci.ExecTxResult
	require.NoError(t, proto.Unmarshal(bz, &res))
	return &res
}

func customFee() (fee sdk.Coin, gasLimit uint64) {
	return sdk.NewInt64Coin(app.FeeDenom, 1_000_000), 100_000_000
}

func TestBlockLifecycle(t *testing.T) {
	sim, id := setupSession(t)

	require.NoError(t, sim.BeginBlock(id))
	require.ErrorIs(t, sim.BeginBlock(id), simulator.ErrBlockAlreadyOpen)
	require.NoError(t, sim.EndBlock(id))
	require.ErrorIs(t, sim.EndBlock(id), simulator.ErrNoOpenBlock)

	header, err := sim.BlockHeader(id)
	require.NoError(t, err)
	require.Equal(t, int64(1), header.Height)
	require.Equal(t, simulator.DefaultGenesisTime.Add(simulator.DefaultBlockInterval), header.Time)
	require.Equal(t, app.ChainID, header.ChainID)
}

func TestUnknownSession(t *testing.T) {
	sim := simulator.New()

	require.ErrorIs(t, sim.BeginBlock(42), simulator.ErrSessionNotFound)
	_, err := sim.InitAccount(42, "[]")
	require.ErrorIs(t, err, simulator.ErrSessionNotFound)
	require.True(t, sim.Query(42, "/cosmos.bank.v1beta1.Query/Balance", "").IsErr())
}

func TestSessionsAreIsolated(t *testing.T) {
	sim, first := setupSession(t)
	second, err := sim.InitSession(defaultBalance)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	acc := testutil.InitAccount(t, sim, first, "[]")

	_, err = sim.AccountNumber(second, acc.Address())
	require.ErrorIs(t, err, sdkerrors.ErrUnknownAddress)
}

func TestInitAccountRequiresOpenBlock(t *testing.T) {
	sim, id := setupSession(t)

	_, err := sim.InitAccount(id, "[]")
	require.ErrorIs(t, err, simulator.ErrNoOpenBlock)
}

func TestInitAccountBalances(t *testing.T) {
	sim, id := setupSession(t)

	withDefault := testutil.InitAccount(t, sim, id, "[]")
	require.Equal(t, int64(100_000_000_000), balance(t, sim, id, withDefault.Address(), "uosmo"))

	withCoins := testutil.InitAccount(t, sim, id, `[{"denom":"uatom","amount":"5"},{"denom":"uosmo","amount":"7"}]`)
	require.Equal(t, int64(5), balance(t, sim, id, withCoins.Address(), "uatom"))
	require.Equal(t, int64(7), balance(t, sim, id, withCoins.Address(), "uosmo"))

	supply := query[banktypes.QuerySupplyOfResponse](t, sim, id, "/cosmos.bank.v1beta1.Query/SupplyOf", &banktypes.QuerySupplyOfRequest{Denom: "uosmo"})
	require.Equal(t, int64(100_000_000_007), supply.Amount.Amount.Int64())

	accNum, err := sim.AccountNumber(id, withCoins.Address())
	require.NoError(t, err)
	require.Equal(t, uint64(1), accNum)
	seq, err := sim.AccountSequence(id, withCoins.Address())
	require.NoError(t, err)
	require.Zero(t, seq)
}

func TestInitAccountRejectsInvalidCoins(t *testing.T) {
	sim, id := setupSession(t)
	require.NoError(t, sim.BeginBlock(id))
	defer func() { require.NoError(t, sim.EndBlock(id)) }()

	for _, coinsJSON := range []string{
		`[{"denom":"uosmo","amount":"1"},{"denom":"uatom","amount":"1"}]`,
		`[{"denom":"uosmo","amount":"1"},{"denom":"uosmo","amount":"1"}]`,
		`{"denom":"uosmo"}`,
		`not json`,
	} {
		_, err := sim.InitAccount(id, coinsJSON)
		require.Error(t, err, coinsJSON)
	}
}

func TestInitSessionRejectsInvalidCoins(t *testing.T) {
	_, err := simulator.New().InitSession(`[{"denom":"uosmo","amount":"-1"}]`)
	require.Error(t, err)
}

func TestDeterministicAccounts(t *testing.T) {
	simA, idA := setupSession(t, simulator.WithMnemonic(testMnemonic))
	simB, idB := setupSession(t, simulator.WithMnemonic(testMnemonic))

	a0 := testutil.InitAccount(t, simA, idA, "[]")
	a1 := testutil.InitAccount(t, simA, idA, "[]")
	b0 := testutil.InitAccount(t, simB, idB, "[]")

	require.Equal(t, a0.Address(), b0.Address())
	require.NotEqual(t, a0.Address(), a1.Address())
}

func TestExecuteMsgSend(t *testing.T) {
	sim, id := setupSession(t)
	sender := testutil.InitAccount(t, sim, id, "[]")
	receiver := testutil.InitAccount(t, sim, id, "[]")

	feeAmount, gasLimit := customFee()
	msg := &banktypes.MsgSend{
		FromAddress: sender.Address(),
		ToAddress:   receiver.Address(),
		Amount:      sdk.NewCoins(sdk.NewInt64Coin("uosmo", 1_000)),
	}
	txBz := testutil.SignTx(t, sim, id, app.ChainID, sender, tx.NewFee(feeAmount, gasLimit), msg)

	res := execute(t, sim, id, txBz)
	require.Zero(t, res.Code, res.Log)
	require.Equal(t, int64(100_000_000), res.GasWanted)
	require.Positive(t, res.GasUsed)

	var data sdk.TxMsgData
	require.NoError(t, proto.Unmarshal(res.Data, &data))
	require.Len(t, data.MsgResponses, 1)
	require.Equal(t, "/cosmos.bank.v1beta1.MsgSendResponse", data.MsgResponses[0].TypeUrl)

	eventTypes := make(map[string]bool)
	for _, event := range res.Events {
		eventTypes[event.Type] = true
	}
	require.True(t, eventTypes[banktypes.EventTypeTransfer])
	require.True(t, eventTypes[sdk.EventTypeTx])

	require.Equal(t, int64(100_000_000_000-1_000-1_000_000), balance(t, sim, id, sender.Address(), "uosmo"))
	require.Equal(t, int64(100_000_000_000+1_000), balance(t, sim, id, receiver.Address(), "uosmo"))

	seq, err := sim.AccountSequence(id, sender.Address())
	require.NoError(t, err)
	require.Equal(t, uint64(1), seq)

	accRes := query[authtypes.QueryAccountResponse](t, sim, id, "/cosmos.auth.v1beta1.Query/Account", &authtypes.QueryAccountRequest{Address: sender.Address()})
	var acc authtypes.BaseAccount
	require.NoError(t, proto.Unmarshal(accRes.Account.Value, &acc))
	require.Equal(t, uint64(1), acc.Sequence)
	require.NotNil(t, acc.PubKey)
}

func TestExecuteFailedMessageKeepsFeeAndSequence(t *testing.T) {
	sim, id := setupSession(t)
	sender := testutil.InitAccount(t, sim, id, `[{"denom":"uosmo","amount":"2000000"}]`)
	receiver := testutil.InitAccount(t, sim, id, "[]")

	feeAmount, gasLimit := customFee()
	msg := &banktypes.MsgSend{
		FromAddress: sender.Address(),
		ToAddress:   receiver.Address(),
		Amount:      sdk.NewCoins(sdk.NewInt64Coin("uosmo", 5_000_000)),
	}
	res := execute(t, sim, id, testutil.SignTx(t, sim, id, app.ChainID, sender, tx.NewFee(feeAmount, gasLimit), msg))
	require.Equal(t, sdkerrors.ErrInsufficientFunds.ABCICode(), res.Code)
	require.Equal(t, sdkerrors.ErrInsufficientFunds.Codespace(), res.Codespace)

	require.Equal(t, int64(1_000_000), balance(t, sim, id, sender.Address(), "uosmo"))
	seq, err := sim.AccountSequence(id, sender.Address())
	require.NoError(t, err)
	require.Equal(t, uint64(1), seq)
}

func TestExecuteOutOfGas(t *testing.T) {
	sim, id := setupSession(t)
	sender := testutil.InitAccount(t, sim, id, "[]")

	msg := &banktypes.MsgSend{
		FromAddress: sender.Address(),
		ToAddress:   sender.Address(),
		Amount:      sdk.NewCoins(sdk.NewInt64Coin("uosmo", 1)),
	}
	res := execute(t, sim, id, testutil.SignTx(t, sim, id, app.ChainID, sender, tx.NewFee(sdk.NewInt64Coin("uosmo", 1), 1_000), msg))
	require.Equal(t, sdkerrors.ErrOutOfGas.ABCICode(), res.Code)
	require.Equal(t, int64(1_000), res.GasWanted)

	seq, err := sim.AccountSequence(id, sender.Address())
	require.NoError(t, err)
	require.Zero(t, seq)
}

func TestExecuteRejectsWrongChainSignature(t *testing.T) {
	sim, id := setupSession(t)
	sender := testutil.InitAccount(t, sim, id, "[]")

	feeAmount, gasLimit := customFee()
	msg := &banktypes.MsgSend{
		FromAddress: sender.Address(),
		ToAddress:   sender.Address(),
		Amount:      sdk.NewCoins(sdk.NewInt64Coin("uosmo", 1)),
	}
	res := execute(t, sim, id, testutil.SignTx(t, sim, id, "other-chain", sender, tx.NewFee(feeAmount, gasLimit), msg))
	require.Equal(t, sdkerrors.ErrUnauthorized.ABCICode(), res.Code)
}

func TestExecuteWithoutOpenBlock(t *testing.T) {
	sim, id := setupSession(t)
	sender := testutil.InitAccount(t, sim, id, "[]")

	msg := &banktypes.MsgSend{
		FromAddress: sender.Address(),
		ToAddress:   sender.Address(),
		Amount:      sdk.NewCoins(sdk.NewInt64Coin("uosmo", 1)),
	}
	feeAmount, gasLimit := customFee()
	txBz := testutil.SignTx(t, sim, id, app.ChainID, sender, tx.NewFee(feeAmount, gasLimit), msg)

	_, err := sim.Execute(id, testutil.BroadcastRequest(t, txBz)).IntoResult()
	require.ErrorContains(t, err, simulator.ErrNoOpenBlock.Error())
}

func TestSimulateDoesNotCommit(t *testing.T) {
	sim, id := setupSession(t)
	sender := testutil.InitAccount(t, sim, id, "[]")
	receiver := testutil.InitAccount(t, sim, id, "[]")

	msg := &banktypes.MsgSend{
		FromAddress: sender.Address(),
		ToAddress:   receiver.Address(),
		Amount:      sdk.NewCoins(sdk.NewInt64Coin("uosmo", 1_000)),
	}
	txBz := testutil.SignTx(t, sim, id, app.ChainID, sender, tx.ZeroFee(app.FeeDenom), msg)

	bz, err := sim.Simulate(id, txBz).IntoResult()
	require.NoError(t, err)

	var gasInfo sdk.GasInfo
	require.NoError(t, proto.Unmarshal(bz, &gasInfo))
	require.Positive(t, gasInfo.GasUsed)

	require.Equal(t, int64(100_000_000_000), balance(t, sim, id, sender.Address(), "uosmo"))
	seq, err := sim.AccountSequence(id, sender.Address())
	require.NoError(t, err)
	require.Zero(t, seq)
}

func TestSimulateCoversFeeDeduction(t *testing.T) {
	sim, id := setupSession(t)
	sender := testutil.InitAccount(t, sim, id, "[]")
	receiver := testutil.InitAccount(t, sim, id, "[]")

	msg := &banktypes.MsgSend{
		FromAddress: sender.Address(),
		ToAddress:   receiver.Address(),
		Amount:      sdk.NewCoins(sdk.NewInt64Coin("uosmo", 1_000)),
	}
	bz, err := sim.Simulate(id, testutil.SignTx(t, sim, id, app.ChainID, sender, tx.ZeroFee(app.FeeDenom), msg)).IntoResult()
	require.NoError(t, err)

	var gasInfo sdk.GasInfo
	require.NoError(t, proto.Unmarshal(bz, &gasInfo))
	require.Greater(t, gasInfo.GasUsed, uint64(app.FeeDeductionGasAmount))

	// the simulated gas alone pays for a delivery that deducts a fee
	fee := tx.NewFee(sdk.NewInt64Coin("uosmo", 25_000), gasInfo.GasUsed)
	res := execute(t, sim, id, testutil.SignTx(t, sim, id, app.ChainID, sender, fee, msg))
	require.Zero(t, res.Code, res.Log)
	require.LessOrEqual(t, res.GasUsed, res.GasWanted)
	require.Equal(t, int64(100_000_000_000-1_000-25_000), balance(t, sim, id, sender.Address(), "uosmo"))
}

func TestSimulateReportsFailure(t *testing.T) {
	sim, id := setupSession(t)
	sender := testutil.InitAccount(t, sim, id, `[{"denom":"uosmo","amount":"10"}]`)

	msg := &banktypes.MsgSend{
		FromAddress: sender.Address(),
		ToAddress:   sender.Address(),
		Amount:      sdk.NewCoins(sdk.NewInt64Coin("uosmo", 1_000)),
	}
	res := sim.Simulate(id, testutil.SignTx(t, sim, id, app.ChainID, sender, tx.ZeroFee(app.FeeDenom), msg))
	require.True(t, res.IsErr())

	_, err := res.IntoResult()
	require.ErrorContains(t, err, "insufficient funds")
}

func TestWasmCounter(t *testing.T) {
	sim, id := setupSession(t)
	creator := testutil.InitAccount(t, sim, id, "[]")
	feeAmount, gasLimit := customFee()
	fee := tx.NewFee(feeAmount, gasLimit)

	res := execute(t, sim, id, testutil.SignTx(t, sim, id, app.ChainID, creator, fee, &wasmtypes.MsgStoreCode{
		Sender:       creator.Address(),
		WASMByteCode: testutil.CounterCode,
	}))
	require.Zero(t, res.Code, res.Log)
	storeRes := decodeResponse[wasmtypes.MsgStoreCodeResponse](t, res)
	require.Equal(t, uint64(1), storeRes.CodeID)

	res = execute(t, sim, id, testutil.SignTx(t, sim, id, app.ChainID, creator, fee, &wasmtypes.MsgInstantiateContract{
		Sender: creator.Address(),
		Admin:  creator.Address(),
		CodeID: storeRes.CodeID,
		Label:  "counter",
		Msg:    []byte(`{"count":41}`),
		Funds:  sdk.NewCoins(sdk.NewInt64Coin("uosmo", 10)),
	}))
	require.Zero(t, res.Code, res.Log)
	contractAddr := decodeResponse[wasmtypes.MsgInstantiateContractResponse](t, res).Address
	require.Equal(t, int64(10), balance(t, sim, id, contractAddr, "uosmo"))

	res = execute(t, sim, id, testutil.SignTx(t, sim, id, app.ChainID, creator, fee, &wasmtypes.MsgExecuteContract{
		Sender:   creator.Address(),
		Contract: contractAddr,
		Msg:      []byte(`{"increment":{}}`),
	}))
	require.Zero(t, res.Code, res.Log)

	smart := query[wasmtypes.QuerySmartContractStateResponse](t, sim, id, "/cosmwasm.wasm.v1.Query/SmartContractState", &wasmtypes.QuerySmartContractStateRequest{
		Address:   contractAddr,
		QueryData: []byte(`{"get_count":{}}`),
	})
	var count testutil.CountMsg
	require.NoError(t, json.Unmarshal(smart.Data, &count))
	require.Equal(t, int64(42), count.Count)

	raw := query[wasmtypes.QueryRawContractStateResponse](t, sim, id, "/cosmwasm.wasm.v1.Query/RawContractState", &wasmtypes.QueryRawContractStateRequest{
		Address:   contractAddr,
		QueryData: testutil.CountKey,
	})
	require.Equal(t, []byte("42"), raw.Data)

	info := query[wasmtypes.QueryContractInfoResponse](t, sim, id, "/cosmwasm.wasm.v1.Query/ContractInfo", &wasmtypes.QueryContractInfoRequest{Address: contractAddr})
	require.Equal(t, uint64(1), info.CodeID)
	require.Equal(t, "counter", info.Label)
	require.Equal(t, creator.Address(), info.Admin)
}

func TestWasmExecuteUnknownContract(t *testing.T) {
	sim, id := setupSession(t)
	sender := testutil.InitAccount(t, sim, id, "[]")
	feeAmount, gasLimit := customFee()

	res := execute(t, sim, id, testutil.SignTx(t, sim, id, app.ChainID, sender, tx.NewFee(feeAmount, gasLimit), &wasmtypes.MsgExecuteContract{
		Sender:   sender.Address(),
		Contract: sender.Address(),
		Msg:      []byte(`{"increment":{}}`),
	}))
	require.Equal(t, simulator.ErrContractNotFound.ABCICode(), res.Code)
	require.Equal(t, simulator.ModuleName, res.Codespace)
}

func TestUnknownQueryPath(t *testing.T) {
	sim, id := setupSession(t)

	_, err := sim.Query(id, "/osmosis.gamm.v1beta1.Query/Pools", "").IntoResult()
	require.ErrorContains(t, err, simulator.ErrUnknownQuery.Error())
}

func TestIncreaseTime(t *testing.T) {
	sim, id := setupSession(t)

	require.NoError(t, sim.IncreaseTime(id, 60))
	require.NoError(t, sim.BeginBlock(id))
	require.NoError(t, sim.EndBlock(id))

	header, err := sim.BlockHeader(id)
	require.NoError(t, err)
	require.Equal(t, simulator.DefaultGenesisTime.Add(time.Minute+simulator.DefaultBlockInterval), header.Time)
}

func TestWhitelistAddressForForceUnlock(t *testing.T) {
	sim, id := setupSession(t)
	acc := testutil.InitAccount(t, sim, id, "[]")

	whitelisted, err := sim.IsWhitelistedForForceUnlock(id, acc.Address())
	require.NoError(t, err)
	require.False(t, whitelisted)

	require.NoError(t, sim.WhitelistAddressForForceUnlock(id, acc.Address()))

	whitelisted, err = sim.IsWhitelistedForForceUnlock(id, acc.Address())
	require.NoError(t, err)
	require.True(t, whitelisted)

	require.ErrorIs(t, sim.WhitelistAddressForForceUnlock(id, "not-an-address"), sdkerrors.ErrInvalidAddress)
}

func TestCustomAddressPrefix(t *testing.T) {
	sim, id := setupSession(t, simulator.WithAddressPrefix("cosmos"))
	require.NoError(t, sim.BeginBlock(id))
	encoded, err := sim.InitAccount(id, "[]")
	require.NoError(t, err)
	require.NoError(t, sim.EndBlock(id))

	privKey, err := account.PrivKeyFromBase64(encoded)
	require.NoError(t, err)
	acc := account.NewSigningAccount("cosmos", privKey, account.DefaultFeeSetting(app.FeeDenom))

	accNum, err := sim.AccountNumber(id, acc.Address())
	require.NoError(t, err)
	require.Zero(t, accNum)
}

func decodeResponse[T any, PT interface {
	*T
	proto.Message
}](t *testing.T, res *abci.ExecTxResult) *T {
	t.Helper()

	var data sdk.TxMsgData
	require.NoError(t, proto.Unmarshal(res.Data, &data))
	require.NotEmpty(t, data.MsgResponses)

	out := PT(new(T))
	require.NoError(t, proto.Unmarshal(data.MsgResponses[0].Value, out))
	return (*T)(out)
}
