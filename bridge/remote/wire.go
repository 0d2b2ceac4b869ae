package remote

import (
	"github.com/osmosis-labs/osmosis-testing/bridge"
)

// InitSessionRequest carries the default account balance of a new session.
type InitSessionRequest struct {
	CoinsJSON string `cramberry:"1"`
}

// SessionRequest addresses a session.
type SessionRequest struct {
	SessionID uint64 `cramberry:"1"`
}

// SessionResponse carries the id of a new session.
type SessionResponse struct {
	SessionID uint64 `cramberry:"1"`
}

// EmptyResponse is the response of primitives without a return value.
type EmptyResponse struct{}

// InitAccountRequest carries the coins of a new account.
type InitAccountRequest struct {
	SessionID uint64 `cramberry:"1"`
	CoinsJSON string `cramberry:"2"`
}

// InitAccountResponse carries the base64 encoded private key of a new account.
type InitAccountResponse struct {
	PrivKey string `cramberry:"1"`
}

// AccountRequest addresses an account of a session.
type AccountRequest struct {
	SessionID uint64 `cramberry:"1"`
	Address   string `cramberry:"2"`
}

// AccountResponse carries an account sequence or number.
type AccountResponse struct {
	Value uint64 `cramberry:"1"`
}

// SimulateRequest carries a base64 encoded TxRaw.
type SimulateRequest struct {
	SessionID uint64 `cramberry:"1"`
	Tx        string `cramberry:"2"`
}

// ExecuteRequest carries a base64 encoded BroadcastTxRequest.
type ExecuteRequest struct {
	SessionID uint64 `cramberry:"1"`
	Request   string `cramberry:"2"`
}

// QueryRequest carries a base64 encoded query request and its gRPC method path.
type QueryRequest struct {
	SessionID uint64 `cramberry:"1"`
	Path      string `cramberry:"2"`
	Request   string `cramberry:"3"`
}

// IncreaseTimeRequest carries the seconds to move the block time by.
type IncreaseTimeRequest struct {
	SessionID uint64 `cramberry:"1"`
	Seconds   uint64 `cramberry:"2"`
}

// RawResult is the wire form of bridge.RawResult.
type RawResult struct {
	Data  []byte `cramberry:"1"`
	Err   string `cramberry:"2"`
	IsErr bool   `cramberry:"3"`
}

// newRawResult consumes res. The payload is copied out before the result is released.
func newRawResult(res *bridge.RawResult) *RawResult {
	data, err := res.IntoResult()
	if err != nil {
		return &RawResult{Err: err.Error(), IsErr: true}
	}

	return &RawResult{Data: data}
}

func (r *RawResult) toBridge() *bridge.RawResult {
	if r.IsErr {
		return bridge.Failure(r.Err)
	}

	data := r.Data
	if data == nil {
		data = []byte{}
	}
	return bridge.Success(data, nil)
}
