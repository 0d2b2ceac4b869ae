// Package testutil provides contract implementations and transaction helpers for tests
// running against the simulator.
package testutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/osmosis-labs/osmosis-testing/simulator"
)

// CounterCode is the wasm code the Counter contract is registered under.
var CounterCode = []byte("\x00asm counter")

// CountKey is the raw store key holding the count.
var CountKey = []byte("count")

var _ simulator.Contract = Counter{}

// Counter is a contract holding a single counter.
//
//	instantiate: {"count": n}
//	execute:     {"increment": {}} | {"reset": {"count": n}}
//	query:       {"get_count": {}} -> {"count": n}
type Counter struct{}

// CountMsg carries a count.
type CountMsg struct {
	Count int64 `json:"count"`
}

// CounterExecuteMsg is the execute message of Counter.
type CounterExecuteMsg struct {
	Increment *struct{} `json:"increment,omitempty"`
	Reset     *CountMsg `json:"reset,omitempty"`
}

// CounterQueryMsg is the query message of Counter.
type CounterQueryMsg struct {
	GetCount *struct{} `json:"get_count,omitempty"`
}

func (Counter) Instantiate(env simulator.ContractEnv, msg []byte) ([]byte, error) {
	var init CountMsg
	if err := json.Unmarshal(msg, &init); err != nil {
		return nil, fmt.Errorf("parse instantiate msg: %w", err)
	}

	setCount(env, init.Count)
	return nil, nil
}

func (Counter) Execute(env simulator.ContractEnv, msg []byte) ([]byte, error) {
	var exec CounterExecuteMsg
	if err := json.Unmarshal(msg, &exec); err != nil {
		return nil, fmt.Errorf("parse execute msg: %w", err)
	}

	switch {
	case exec.Increment != nil:
		count, err := getCount(env)
		if err != nil {
			return nil, err
		}
		setCount(env, count+1)
	case exec.Reset != nil:
		setCount(env, exec.Reset.Count)
	default:
		return nil, errors.New("unknown execute msg")
	}

	return nil, nil
}

func (Counter) Query(env simulator.ContractEnv, msg []byte) ([]byte, error) {
	var query CounterQueryMsg
	if err := json.Unmarshal(msg, &query); err != nil {
		return nil, fmt.Errorf("parse query msg: %w", err)
	}
	if query.GetCount == nil {
		return nil, errors.New("unknown query msg")
	}

	count, err := getCount(env)
	if err != nil {
		return nil, err
	}

	return json.Marshal(CountMsg{Count: count})
}

func getCount(env simulator.ContractEnv) (int64, error) {
	bz := env.Store.Get(CountKey)
	if bz == nil {
		return 0, nil
	}

	return strconv.ParseInt(string(bz), 10, 64)
}

func setCount(env simulator.ContractEnv, count int64) {
	env.Store.Set(CountKey, []byte(strconv.FormatInt(count, 10)))
}
