// Package bridge defines the boundary between the runner and the chain simulator.
//
// Every byte payload crosses the boundary as a base64 string and every fallible result that
// carries bytes is returned as a RawResult, which owns its buffer until it is converted.
package bridge

//go:generate mockgen -destination=mock/bridge.go -package=mock . Bridge

// Bridge is the set of primitives a chain simulator exposes. Implementations are not
// required to be safe for concurrent use within one session.
type Bridge interface {
	// InitSession creates a new simulator session and returns its id. coinsJSON is the
	// balance given to accounts that are initialised with an empty coin list.
	InitSession(coinsJSON string) (uint64, error)

	// BeginBlock opens a block. Every BeginBlock must be matched by exactly one EndBlock.
	BeginBlock(sessionID uint64) error
	// EndBlock closes the block opened by BeginBlock.
	EndBlock(sessionID uint64) error

	// InitAccount creates and funds an account with the sorted coins encoded in coinsJSON
	// and returns its base64 encoded private key.
	InitAccount(sessionID uint64, coinsJSON string) (string, error)
	// AccountSequence returns the current sequence of address.
	AccountSequence(sessionID uint64, address string) (uint64, error)
	// AccountNumber returns the account number of address.
	AccountNumber(sessionID uint64, address string) (uint64, error)

	// Simulate runs a base64 encoded TxRaw without committing it and returns the encoded GasInfo.
	Simulate(sessionID uint64, base64Tx string) *RawResult
	// Execute delivers a base64 encoded BroadcastTxRequest and returns the encoded ExecTxResult.
	Execute(sessionID uint64, base64Req string) *RawResult
	// Query answers a base64 encoded request at a gRPC method path.
	Query(sessionID uint64, path, base64Req string) *RawResult

	// IncreaseTime moves the block time of the session forward.
	IncreaseTime(sessionID uint64, seconds uint64) error
	// WhitelistAddressForForceUnlock adds address to the force unlock whitelist.
	WhitelistAddressForForceUnlock(sessionID uint64, address string) error
}
