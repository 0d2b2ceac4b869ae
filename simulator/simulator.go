// Package simulator is an in-process chain simulator implementing bridge.Bridge. Each session
// holds an isolated in-memory state with accounts, balances and wasm contracts, and delivers
// signed transactions through an ante handler and a message router.
package simulator

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"sync"
	"time"

	"github.com/cosmos/gogoproto/proto"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	sdktx "github.com/cosmos/cosmos-sdk/types/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/osmosis-labs/osmosis-testing/app"
	"github.com/osmosis-labs/osmosis-testing/app/params"
	"github.com/osmosis-labs/osmosis-testing/bridge"
	"github.com/osmosis-labs/osmosis-testing/crypto/hd"
)

// DefaultBlockInterval is the block time added by every BeginBlock.
const DefaultBlockInterval = 3 * time.Second

// DefaultGenesisTime is the block time of a new session before its first block.
var DefaultGenesisTime = time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)

var _ bridge.Bridge = (*Simulator)(nil)

// Simulator hosts any number of independent sessions.
type Simulator struct {
	mu        sync.Mutex
	sessions  map[uint64]*session
	nextID    uint64
	logger    log.Logger
	encCfg    params.EncodingConfig
	txDecoder sdk.TxDecoder

	addressPrefix string
	chainID       string
	mnemonic      string
	blockInterval time.Duration
	genesisTime   time.Time
	contracts     map[[sha256.Size]byte]Contract

	accountKeeper AccountKeeper
	bankKeeper    BankKeeper
	wasmKeeper    WasmKeeper
	anteHandler   AnteHandler
	msgRouter     *MsgRouter
	queryRouter   *QueryRouter
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the logger of the simulator.
func WithLogger(logger log.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// WithChainID sets the chain id every session signs against.
func WithChainID(chainID string) Option {
	return func(s *Simulator) {
		s.chainID = chainID
	}
}

// WithAddressPrefix sets the bech32 prefix of account addresses.
func WithAddressPrefix(prefix string) Option {
	return func(s *Simulator) {
		s.addressPrefix = prefix
	}
}

// WithMnemonic makes account keys deterministic: the n-th account of a session is derived
// from mnemonic at index n.
func WithMnemonic(mnemonic string) Option {
	return func(s *Simulator) {
		s.mnemonic = mnemonic
	}
}

// WithBlockInterval sets the block time added by every BeginBlock.
func WithBlockInterval(interval time.Duration) Option {
	return func(s *Simulator) {
		s.blockInterval = interval
	}
}

// WithGenesisTime sets the block time of new sessions.
func WithGenesisTime(t time.Time) Option {
	return func(s *Simulator) {
		s.genesisTime = t
	}
}

// WithContract registers the implementation run for code stored with wasmCode.
func WithContract(wasmCode []byte, contract Contract) Option {
	return func(s *Simulator) {
		s.contracts[sha256.Sum256(wasmCode)] = contract
	}
}

// New returns a Simulator with no sessions.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		sessions:      make(map[uint64]*session),
		nextID:        1,
		logger:        log.NewNopLogger(),
		addressPrefix: app.AccountAddressPrefix,
		chainID:       app.ChainID,
		blockInterval: DefaultBlockInterval,
		genesisTime:   DefaultGenesisTime,
		contracts:     make(map[[sha256.Size]byte]Contract),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With("module", ModuleName)
	s.encCfg = app.MakeEncodingConfigWithPrefix(s.addressPrefix)
	s.txDecoder = s.encCfg.TxConfig.TxDecoder()

	cdc := s.encCfg.Codec
	s.accountKeeper = NewAccountKeeper(cdc, s.encCfg.InterfaceRegistry.SigningContext().AddressCodec())
	s.bankKeeper = NewBankKeeper(s.accountKeeper)
	s.wasmKeeper = NewWasmKeeper(cdc, s.accountKeeper, s.bankKeeper, s.contracts)
	s.anteHandler = NewAnteHandler(s.accountKeeper, s.bankKeeper)

	s.msgRouter = NewMsgRouter()
	registerBankMsgServer(s.msgRouter, s.bankKeeper)
	registerWasmMsgServer(s.msgRouter, s.wasmKeeper)

	s.queryRouter = NewQueryRouter(cdc)
	registerBankQueryServer(s.queryRouter, s.bankKeeper)
	registerAuthQueryServer(s.queryRouter, s.accountKeeper)
	registerWasmQueryServer(s.queryRouter, s.wasmKeeper)

	return s
}

// EncodingConfig returns the encoding config transactions are decoded with.
func (s *Simulator) EncodingConfig() params.EncodingConfig {
	return s.encCfg
}

func (s *Simulator) session(id uint64) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, errorsmod.Wrapf(ErrSessionNotFound, "id %d", id)
	}

	return sess, nil
}

// InitSession implements bridge.Bridge.
func (s *Simulator) InitSession(coinsJSON string) (uint64, error) {
	defaultBalance, err := parseCoins(coinsJSON)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.sessions[id] = newSession(id, s.chainID, s.genesisTime, defaultBalance, s.logger.With("session", id))

	telemetry.IncrCounter(1, ModuleName, "session", "init")
	s.logger.Debug("session created", "session", id, "default_balance", defaultBalance.String())

	return id, nil
}

// BeginBlock implements bridge.Bridge.
func (s *Simulator) BeginBlock(sessionID uint64) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return sess.beginBlock(s.blockInterval)
}

// EndBlock implements bridge.Bridge.
func (s *Simulator) EndBlock(sessionID uint64) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return sess.endBlock()
}

// InitAccount implements bridge.Bridge. An empty coin list funds the account with the
// default balance of the session.
func (s *Simulator) InitAccount(sessionID uint64, coinsJSON string) (string, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return "", err
	}

	coins, err := parseCoins(coinsJSON)
	if err != nil {
		return "", err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	ctx, err := sess.blockContext()
	if err != nil {
		return "", err
	}

	if coins.Empty() {
		coins = sess.defaultBalance
	}

	privKey, err := s.newPrivKey(sess)
	if err != nil {
		return "", err
	}

	addr := sdk.AccAddress(privKey.PubKey().Address())
	if s.accountKeeper.HasAccount(ctx, addr) {
		return "", errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "account %s already exists", addr)
	}

	s.accountKeeper.NewAccountWithAddress(ctx, addr)
	if err := s.bankKeeper.MintCoins(ctx, addr, coins); err != nil {
		return "", err
	}

	telemetry.IncrCounter(1, ModuleName, "account", "init")
	return base64.StdEncoding.EncodeToString(privKey.Bytes()), nil
}

func (s *Simulator) newPrivKey(sess *session) (*secp256k1.PrivKey, error) {
	if s.mnemonic == "" {
		return secp256k1.GenPrivKey(), nil
	}

	privKey, err := hd.DeriveAccountKey(s.mnemonic, sess.nextKeyIndex)
	if err != nil {
		return nil, err
	}
	sess.nextKeyIndex++

	return privKey, nil
}

// AccountSequence implements bridge.Bridge.
func (s *Simulator) AccountSequence(sessionID uint64, address string) (uint64, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return 0, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	acc, err := s.account(sess.readContext(), address)
	if err != nil {
		return 0, err
	}

	return acc.Sequence, nil
}

// AccountNumber implements bridge.Bridge.
func (s *Simulator) AccountNumber(sessionID uint64, address string) (uint64, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return 0, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	acc, err := s.account(sess.readContext(), address)
	if err != nil {
		return 0, err
	}

	return acc.AccountNumber, nil
}

func (s *Simulator) account(ctx Context, address string) (*authtypes.BaseAccount, error) {
	addr, err := s.accountKeeper.AddressCodec().StringToBytes(address)
	if err != nil {
		return nil, errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "%s: %s", address, err)
	}

	acc := s.accountKeeper.GetAccount(ctx, addr)
	if acc == nil {
		return nil, errorsmod.Wrapf(sdkerrors.ErrUnknownAddress, "account %s does not exist", address)
	}

	return acc, nil
}

// Simulate implements bridge.Bridge. The transaction runs on a discarded branch of the latest
// state with signature verification skipped.
func (s *Simulator) Simulate(sessionID uint64, base64Tx string) *bridge.RawResult {
	sess, err := s.session(sessionID)
	if err != nil {
		return bridge.Failure(err.Error())
	}

	txBytes, err := base64.StdEncoding.DecodeString(base64Tx)
	if err != nil {
		return bridge.Failure(errorsmod.Wrap(sdkerrors.ErrTxDecode, err.Error()).Error())
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	gasInfo, _, _, err := s.runTx(sess.branchContext(), txBytes, true)
	if err != nil {
		return bridge.Failure(err.Error())
	}

	bz, err := proto.Marshal(&gasInfo)
	if err != nil {
		return bridge.Failure(err.Error())
	}

	return bridge.Success(bz, nil)
}

// Execute implements bridge.Bridge. A transaction that fails after decoding is reported in
// the returned ExecTxResult with a non-zero code.
func (s *Simulator) Execute(sessionID uint64, base64Req string) *bridge.RawResult {
	sess, err := s.session(sessionID)
	if err != nil {
		return bridge.Failure(err.Error())
	}

	reqBytes, err := base64.StdEncoding.DecodeString(base64Req)
	if err != nil {
		return bridge.Failure(errorsmod.Wrap(sdkerrors.ErrTxDecode, err.Error()).Error())
	}

	var req sdktx.BroadcastTxRequest
	if err := proto.Unmarshal(reqBytes, &req); err != nil {
		return bridge.Failure(errorsmod.Wrap(sdkerrors.ErrTxDecode, err.Error()).Error())
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	ctx, err := sess.blockContext()
	if err != nil {
		return bridge.Failure(err.Error())
	}

	res := execTxResult(s.runTx(ctx, req.TxBytes, false))
	if res.Code != 0 {
		telemetry.IncrCounter(1, ModuleName, "tx", "failed")
		sess.logger.Debug("tx failed", "code", res.Code, "log", res.Log)
	} else {
		telemetry.IncrCounter(1, ModuleName, "tx", "delivered")
	}

	bz, err := proto.Marshal(res)
	if err != nil {
		return bridge.Failure(err.Error())
	}

	return bridge.Success(bz, nil)
}

// Query implements bridge.Bridge.
func (s *Simulator) Query(sessionID uint64, path, base64Req string) *bridge.RawResult {
	sess, err := s.session(sessionID)
	if err != nil {
		return bridge.Failure(err.Error())
	}

	reqBytes, err := base64.StdEncoding.DecodeString(base64Req)
	if err != nil {
		return bridge.Failure(errorsmod.Wrap(sdkerrors.ErrInvalidRequest, err.Error()).Error())
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	bz, err := s.queryRouter.Query(sess.branchContext(), path, reqBytes)
	if err != nil {
		return bridge.Failure(err.Error())
	}

	return bridge.Success(bz, nil)
}

// IncreaseTime implements bridge.Bridge.
func (s *Simulator) IncreaseTime(sessionID uint64, seconds uint64) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.increaseTime(seconds)
	return nil
}

// WhitelistAddressForForceUnlock implements bridge.Bridge.
func (s *Simulator) WhitelistAddressForForceUnlock(sessionID uint64, address string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	addr, err := s.accountKeeper.AddressCodec().StringToBytes(address)
	if err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "%s: %s", address, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.readContext().KVStore().Set(GetForceUnlockWhitelistKey(addr), []byte{1})
	return nil
}

// IsWhitelistedForForceUnlock reports whether address was whitelisted for force unlock.
func (s *Simulator) IsWhitelistedForForceUnlock(sessionID uint64, address string) (bool, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return false, err
	}

	addr, err := s.accountKeeper.AddressCodec().StringToBytes(address)
	if err != nil {
		return false, errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "%s: %s", address, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return sess.readContext().KVStore().Has(GetForceUnlockWhitelistKey(addr)), nil
}

// BlockHeader returns the header of the latest block of a session.
func (s *Simulator) BlockHeader(sessionID uint64) (Header, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return Header{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return sess.header, nil
}

// parseCoins decodes a JSON coin list. The list must be sorted and free of duplicates.
func parseCoins(coinsJSON string) (sdk.Coins, error) {
	var coins sdk.Coins
	if err := json.Unmarshal([]byte(coinsJSON), &coins); err != nil {
		return nil, errorsmod.Wrapf(sdkerrors.ErrJSONUnmarshal, "coins %q: %s", coinsJSON, err)
	}

	if err := coins.Validate(); err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidCoins, err.Error())
	}

	return coins, nil
}
