package simulator

import (
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store/cachekv"
	"cosmossdk.io/store/gaskv"
	storetypes "cosmossdk.io/store/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Context carries the state a handler runs against: a store, the gas meter charged for store
// access and the header of the open block.
type Context struct {
	store     storetypes.KVStore
	gasMeter  storetypes.GasMeter
	events    *sdk.EventManager
	chainID   string
	height    int64
	blockTime time.Time
	logger    log.Logger
}

// NewContext returns a Context over store with an infinite gas meter.
func NewContext(store storetypes.KVStore, header Header, logger log.Logger) Context {
	return Context{
		store:     store,
		gasMeter:  storetypes.NewInfiniteGasMeter(),
		events:    sdk.NewEventManager(),
		chainID:   header.ChainID,
		height:    header.Height,
		blockTime: header.Time,
		logger:    logger,
	}
}

// KVStore returns the store of the context metered by its gas meter.
func (ctx Context) KVStore() storetypes.KVStore {
	return gaskv.NewStore(ctx.store, ctx.gasMeter, storetypes.KVGasConfig())
}

// GasMeter returns the gas meter of the context.
func (ctx Context) GasMeter() storetypes.GasMeter {
	return ctx.gasMeter
}

// EventManager returns the event manager of the context.
func (ctx Context) EventManager() *sdk.EventManager {
	return ctx.events
}

// ChainID returns the chain id of the open block.
func (ctx Context) ChainID() string {
	return ctx.chainID
}

// BlockHeight returns the height of the open block.
func (ctx Context) BlockHeight() int64 {
	return ctx.height
}

// BlockTime returns the time of the open block.
func (ctx Context) BlockTime() time.Time {
	return ctx.blockTime
}

// Logger returns the logger of the context.
func (ctx Context) Logger() log.Logger {
	return ctx.logger
}

// WithGasMeter returns a copy of the context charging gasMeter.
func (ctx Context) WithGasMeter(gasMeter storetypes.GasMeter) Context {
	ctx.gasMeter = gasMeter
	return ctx
}

// WithEventManager returns a copy of the context emitting into em.
func (ctx Context) WithEventManager(em *sdk.EventManager) Context {
	ctx.events = em
	return ctx
}

// CacheContext returns a branch of the context and a function that writes the branch back
// into the parent, together with the events emitted on it.
func (ctx Context) CacheContext() (Context, func()) {
	cache := cachekv.NewStore(ctx.store)
	cacheCtx := ctx
	cacheCtx.store = cache
	cacheCtx.events = sdk.NewEventManager()

	writeCache := func() {
		cache.Write()
		ctx.events.EmitEvents(cacheCtx.events.Events())
	}

	return cacheCtx, writeCache
}

// Header is the header of a block.
type Header struct {
	ChainID string
	Height  int64
	Time    time.Time
}
