package runner

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	abci "github.com/cometbft/cometbft/abci/types"
	"github.com/cosmos/gogoproto/proto"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdktx "github.com/cosmos/cosmos-sdk/types/tx"

	"github.com/osmosis-labs/osmosis-testing/account"
	"github.com/osmosis-labs/osmosis-testing/app"
	"github.com/osmosis-labs/osmosis-testing/app/params"
	"github.com/osmosis-labs/osmosis-testing/bridge"
	"github.com/osmosis-labs/osmosis-testing/tx"
)

var _ Runner = (*TestApp)(nil)

// TestApp drives one simulator session through a Bridge. It is not safe for concurrent use.
type TestApp struct {
	bridge    bridge.Bridge
	id        uint64
	config    Config
	logger    log.Logger
	encCfg    params.EncodingConfig
	txBuilder tx.Builder
}

// Option configures a TestApp.
type Option func(*TestApp)

// WithLogger sets the logger of the TestApp.
func WithLogger(logger log.Logger) Option {
	return func(a *TestApp) {
		a.logger = logger
	}
}

// WithConfig replaces the default config of the TestApp.
func WithConfig(config Config) Option {
	return func(a *TestApp) {
		a.config = config
	}
}

// NewTestApp opens a new session on b.
func NewTestApp(b bridge.Bridge, opts ...Option) (*TestApp, error) {
	a := &TestApp{
		bridge: b,
		config: DefaultConfig(),
		logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := a.config.Validate(); err != nil {
		return nil, err
	}

	defaultBalance, err := a.config.DefaultBalance()
	if err != nil {
		return nil, err
	}
	coinsJSON, err := encodeCoins(defaultBalance)
	if err != nil {
		return nil, err
	}

	id, err := b.InitSession(coinsJSON)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrExecute, "init session: %s", err)
	}

	a.id = id
	a.logger = a.logger.With("module", ModuleName, "session", id)
	a.encCfg = app.MakeEncodingConfigWithPrefix(a.config.AddressPrefix)
	a.txBuilder = tx.NewBuilder(a.config.ChainID)

	return a, nil
}

// ID returns the simulator session id.
func (a *TestApp) ID() uint64 {
	return a.id
}

// Config returns the config of the TestApp.
func (a *TestApp) Config() Config {
	return a.config
}

// EncodingConfig returns the codecs bound to the TestApp address prefix.
func (a *TestApp) EncodingConfig() params.EncodingConfig {
	return a.encCfg
}

// InitAccount creates an account funded with coins inside its own block.
func (a *TestApp) InitAccount(coins sdk.Coins) (_ account.SigningAccount, err error) {
	sorted := make(sdk.Coins, len(coins))
	copy(sorted, coins)
	sorted = sorted.Sort()

	coinsJSON, err := encodeCoins(sorted)
	if err != nil {
		return account.SigningAccount{}, err
	}

	if err := a.beginBlock(); err != nil {
		return account.SigningAccount{}, err
	}
	defer a.endBlock(&err)

	encodedKey, err := a.bridge.InitAccount(a.id, coinsJSON)
	if err != nil {
		return account.SigningAccount{}, errorsmod.Wrapf(ErrExecute, "init account: %s", err)
	}

	privKey, err := account.PrivKeyFromBase64(encodedKey)
	if errors.Is(err, account.ErrKeyEncoding) {
		return account.SigningAccount{}, decodeError(stepBase64, err)
	} else if err != nil {
		return account.SigningAccount{}, decodeError(stepSigningKey, err)
	}

	feeSetting := account.AutoFee{
		GasPrice:      a.config.defaultGasPrice(),
		GasAdjustment: a.config.GasAdjustment,
	}
	acc := account.NewSigningAccount(a.config.AddressPrefix, privKey, feeSetting)
	a.logger.Debug("initialized account", "address", acc.Address(), "coins", sorted.String())

	return acc, nil
}

// InitAccounts creates n accounts funded with coins.
func (a *TestApp) InitAccounts(coins sdk.Coins, n int) ([]account.SigningAccount, error) {
	accounts := make([]account.SigningAccount, 0, n)
	for i := 0; i < n; i++ {
		acc, err := a.InitAccount(coins)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, acc)
	}

	return accounts, nil
}

// ExecuteMultipleRaw implements Runner.
func (a *TestApp) ExecuteMultipleRaw(msgs []*codectypes.Any, signer account.SigningAccount) (_ *abci.ExecTxResult, err error) {
	if err := a.beginBlock(); err != nil {
		return nil, err
	}
	defer a.endBlock(&err)

	fee, err := a.resolveFee(msgs, signer)
	if err != nil {
		return nil, err
	}

	txBz, err := a.createSignedTx(msgs, signer, fee)
	if err != nil {
		return nil, err
	}

	req := &sdktx.BroadcastTxRequest{
		TxBytes: txBz,
		Mode:    sdktx.BroadcastMode_BROADCAST_MODE_SYNC,
	}
	reqBz, err := proto.Marshal(req)
	if err != nil {
		return nil, encodeError(stepProtobuf, err)
	}

	resBz, err := a.bridge.Execute(a.id, base64.StdEncoding.EncodeToString(reqBz)).IntoResult()
	if err != nil {
		a.logger.Error("failed to deliver tx", "signer", signer.Address(), "err", err)
		return nil, errorsmod.Wrap(ErrExecute, err.Error())
	}

	var res abci.ExecTxResult
	if err := proto.Unmarshal(resBz, &res); err != nil {
		return nil, decodeError(stepProtobuf, err)
	}
	if res.Code != 0 {
		a.logger.Error("tx failed", "signer", signer.Address(), "code", res.Code, "codespace", res.Codespace, "log", res.Log)
		return nil, errorsmod.Wrapf(ErrExecute, "%s (codespace: %s, code: %d)", res.Log, res.Codespace, res.Code)
	}

	a.logger.Debug("delivered tx", "signer", signer.Address(), "msgs", len(msgs), "gas_wanted", res.GasWanted, "gas_used", res.GasUsed)
	return &res, nil
}

// SimulateTx runs msgs signed by signer with a zero fee and returns the gas they consume.
func (a *TestApp) SimulateTx(msgs []*codectypes.Any, signer account.SigningAccount) (sdk.GasInfo, error) {
	txBz, err := a.createSignedTx(msgs, signer, tx.ZeroFee(a.config.FeeDenom))
	if err != nil {
		return sdk.GasInfo{}, err
	}

	resBz, err := a.bridge.Simulate(a.id, base64.StdEncoding.EncodeToString(txBz)).IntoResult()
	if err != nil {
		return sdk.GasInfo{}, errorsmod.Wrap(ErrQuery, err.Error())
	}

	var gasInfo sdk.GasInfo
	if err := proto.Unmarshal(resBz, &gasInfo); err != nil {
		return sdk.GasInfo{}, decodeError(stepProtobuf, err)
	}

	return gasInfo, nil
}

// QueryRaw implements Runner.
func (a *TestApp) QueryRaw(path string, req []byte) ([]byte, error) {
	resBz, err := a.bridge.Query(a.id, path, base64.StdEncoding.EncodeToString(req)).IntoResult()
	if err != nil {
		return nil, errorsmod.Wrapf(ErrQuery, "%s: %s", path, err)
	}

	return resBz, nil
}

// Query encodes req, submits it at path and decodes the response into resp.
func (a *TestApp) Query(path string, req, resp proto.Message) error {
	reqBz, err := proto.Marshal(req)
	if err != nil {
		return encodeError(stepProtobuf, err)
	}

	resBz, err := a.QueryRaw(path, reqBz)
	if err != nil {
		return err
	}

	if err := proto.Unmarshal(resBz, resp); err != nil {
		return decodeError(stepProtobuf, err)
	}

	return nil
}

// IncreaseTime moves the block time of the session forward by seconds.
func (a *TestApp) IncreaseTime(seconds uint64) error {
	if err := a.bridge.IncreaseTime(a.id, seconds); err != nil {
		return errorsmod.Wrapf(ErrExecute, "increase time: %s", err)
	}

	return nil
}

// WhitelistAddressForForceUnlock allows address to force unlock its locks.
func (a *TestApp) WhitelistAddressForForceUnlock(address string) error {
	if err := a.bridge.WhitelistAddressForForceUnlock(a.id, address); err != nil {
		return errorsmod.Wrapf(ErrExecute, "whitelist address: %s", err)
	}

	return nil
}

func (a *TestApp) beginBlock() error {
	a.logger.Debug("begin block")
	if err := a.bridge.BeginBlock(a.id); err != nil {
		return errorsmod.Wrapf(ErrExecute, "begin block: %s", err)
	}

	return nil
}

// endBlock closes the current block and records its failure in errp unless an earlier
// error is already set.
func (a *TestApp) endBlock(errp *error) {
	a.logger.Debug("end block")
	if err := a.bridge.EndBlock(a.id); err != nil && *errp == nil {
		*errp = errorsmod.Wrapf(ErrExecute, "end block: %s", err)
	}
}

func (a *TestApp) resolveFee(msgs []*codectypes.Any, signer account.SigningAccount) (sdktx.Fee, error) {
	switch feeSetting := signer.FeeSetting().(type) {
	case account.CustomFee:
		return tx.NewFee(feeSetting.Amount, feeSetting.GasLimit), nil
	case account.AutoFee:
		return a.estimateFee(msgs, signer, feeSetting)
	default:
		panic(fmt.Sprintf("unknown fee setting %T", feeSetting))
	}
}

func (a *TestApp) estimateFee(msgs []*codectypes.Any, signer account.SigningAccount, feeSetting account.AutoFee) (sdktx.Fee, error) {
	if feeSetting.GasPrice.Denom != a.config.FeeDenom {
		return sdktx.Fee{}, errorsmod.Wrapf(ErrExecute, "gas price denom %q does not match fee denom %q", feeSetting.GasPrice.Denom, a.config.FeeDenom)
	}

	gasInfo, err := a.SimulateTx(msgs, signer)
	if err != nil {
		return sdktx.Fee{}, err
	}

	gasLimit, err := tx.GasLimit(gasInfo.GasUsed, feeSetting.GasAdjustment)
	if err != nil {
		return sdktx.Fee{}, errorsmod.Wrap(ErrExecute, err.Error())
	}
	amount := tx.FeeAmount(gasLimit, feeSetting.GasPrice, a.config.FeeDenom)

	a.logger.Debug("estimated fee", "gas_used", gasInfo.GasUsed, "gas_limit", gasLimit, "amount", amount.String())
	return tx.NewFee(amount, gasLimit), nil
}

func (a *TestApp) createSignedTx(msgs []*codectypes.Any, signer account.SigningAccount, fee sdktx.Fee) ([]byte, error) {
	addr := signer.Address()

	sequence, err := a.bridge.AccountSequence(a.id, addr)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrQuery, "account sequence: %s", err)
	}
	accountNumber, err := a.bridge.AccountNumber(a.id, addr)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrQuery, "account number: %s", err)
	}

	txBz, err := a.txBuilder.BuildSignedTx(msgs, signer, tx.SignerData{
		AccountNumber: accountNumber,
		Sequence:      sequence,
	}, fee)
	if err != nil {
		return nil, encodeError(stepProtobuf, err)
	}

	return txBz, nil
}

func encodeCoins(coins sdk.Coins) (string, error) {
	if coins == nil {
		coins = sdk.Coins{}
	}

	bz, err := json.Marshal(coins)
	if err != nil {
		return "", encodeError(stepJSON, err)
	}

	return string(bz), nil
}
