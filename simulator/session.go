package simulator

import (
	"sync"
	"time"

	dbm "github.com/cosmos/cosmos-db"

	"cosmossdk.io/log"
	"cosmossdk.io/store/cachekv"
	"cosmossdk.io/store/dbadapter"
	storetypes "cosmossdk.io/store/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// session is one isolated chain state. Committed state lives in an in-memory database; the
// open block, if any, is a cache branch written back on EndBlock.
type session struct {
	mu sync.Mutex

	id     uint64
	db     dbm.DB
	base   storetypes.KVStore
	block  *cachekv.Store
	header Header

	defaultBalance sdk.Coins
	nextKeyIndex   uint32
	logger         log.Logger
}

func newSession(id uint64, chainID string, genesisTime time.Time, defaultBalance sdk.Coins, logger log.Logger) *session {
	db := dbm.NewMemDB()
	return &session{
		id:   id,
		db:   db,
		base: dbadapter.Store{DB: db},
		header: Header{
			ChainID: chainID,
			Height:  0,
			Time:    genesisTime,
		},
		defaultBalance: defaultBalance,
		logger:         logger,
	}
}

func (s *session) beginBlock(blockInterval time.Duration) error {
	if s.block != nil {
		return ErrBlockAlreadyOpen.Wrapf("session %d at height %d", s.id, s.header.Height)
	}

	s.header.Height++
	s.header.Time = s.header.Time.Add(blockInterval)
	s.block = cachekv.NewStore(s.base)

	s.logger.Debug("begin block", "height", s.header.Height, "time", s.header.Time)
	return nil
}

func (s *session) endBlock() error {
	if s.block == nil {
		return ErrNoOpenBlock.Wrapf("session %d", s.id)
	}

	s.block.Write()
	s.block = nil

	s.logger.Debug("end block", "height", s.header.Height)
	return nil
}

// blockContext returns a context over the open block.
func (s *session) blockContext() (Context, error) {
	if s.block == nil {
		return Context{}, ErrNoOpenBlock.Wrapf("session %d", s.id)
	}

	return NewContext(s.block, s.header, s.logger), nil
}

// readContext returns a context over the latest state: the open block if there is one,
// otherwise the committed state.
func (s *session) readContext() Context {
	if s.block != nil {
		return NewContext(s.block, s.header, s.logger)
	}

	return NewContext(s.base, s.header, s.logger)
}

// branchContext returns a context over a branch of the latest state that is never written.
func (s *session) branchContext() Context {
	ctx, _ := s.readContext().CacheContext()
	return ctx
}

func (s *session) increaseTime(seconds uint64) {
	s.header.Time = s.header.Time.Add(time.Duration(seconds) * time.Second)
}
