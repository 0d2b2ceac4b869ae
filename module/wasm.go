package module

import (
	"encoding/json"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/osmosis-testing/account"
	"github.com/osmosis-labs/osmosis-testing/runner"
)

// Wasm wraps the wasm module. Contract messages are JSON encoded.
type Wasm struct {
	runner runner.Runner
}

// NewWasm returns a Wasm over r.
func NewWasm(r runner.Runner) Wasm {
	return Wasm{runner: r}
}

// StoreCode uploads wasmByteCode and returns its code id.
func (w Wasm) StoreCode(signer account.SigningAccount, wasmByteCode []byte) (uint64, error) {
	res, err := runner.Execute[wasmtypes.MsgStoreCodeResponse](w.runner, &wasmtypes.MsgStoreCode{
		Sender:       signer.Address(),
		WASMByteCode: wasmByteCode,
	}, signer)
	if err != nil {
		return 0, err
	}

	return res.Data.CodeID, nil
}

// Instantiate creates a contract of codeID with msg and returns its address. An empty admin
// leaves the contract without admin.
func (w Wasm) Instantiate(signer account.SigningAccount, codeID uint64, msg any, admin, label string, funds sdk.Coins) (string, error) {
	msgBz, err := marshalContractMsg(msg)
	if err != nil {
		return "", err
	}

	res, err := runner.Execute[wasmtypes.MsgInstantiateContractResponse](w.runner, &wasmtypes.MsgInstantiateContract{
		Sender: signer.Address(),
		Admin:  admin,
		CodeID: codeID,
		Label:  label,
		Msg:    msgBz,
		Funds:  funds,
	}, signer)
	if err != nil {
		return "", err
	}

	return res.Data.Address, nil
}

// Execute runs msg on contract.
func (w Wasm) Execute(signer account.SigningAccount, contract string, msg any, funds sdk.Coins) (*runner.ExecuteResponse[wasmtypes.MsgExecuteContractResponse], error) {
	msgBz, err := marshalContractMsg(msg)
	if err != nil {
		return nil, err
	}

	return runner.Execute[wasmtypes.MsgExecuteContractResponse](w.runner, &wasmtypes.MsgExecuteContract{
		Sender:   signer.Address(),
		Contract: contract,
		Msg:      msgBz,
		Funds:    funds,
	}, signer)
}

// QuerySmart runs query on contract and decodes the JSON response into out.
func (w Wasm) QuerySmart(contract string, query, out any) error {
	queryBz, err := marshalContractMsg(query)
	if err != nil {
		return err
	}

	res, err := runner.Query[wasmtypes.QuerySmartContractStateResponse](w.runner, runner.PathWasmSmart, &wasmtypes.QuerySmartContractStateRequest{
		Address:   contract,
		QueryData: queryBz,
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(res.Data, out); err != nil {
		return errorsmod.Wrapf(runner.ErrDecode, "json: %s", err)
	}

	return nil
}

// QueryRaw returns the value stored under key by contract, or nil.
func (w Wasm) QueryRaw(contract string, key []byte) ([]byte, error) {
	res, err := runner.Query[wasmtypes.QueryRawContractStateResponse](w.runner, runner.PathWasmRaw, &wasmtypes.QueryRawContractStateRequest{
		Address:   contract,
		QueryData: key,
	})
	if err != nil {
		return nil, err
	}

	return res.Data, nil
}

// ContractInfo returns the metadata of contract.
func (w Wasm) ContractInfo(contract string) (*wasmtypes.ContractInfo, error) {
	res, err := runner.Query[wasmtypes.QueryContractInfoResponse](w.runner, runner.PathWasmContractInfo, &wasmtypes.QueryContractInfoRequest{
		Address: contract,
	})
	if err != nil {
		return nil, err
	}

	return &res.ContractInfo, nil
}

// marshalContractMsg encodes msg as JSON. Raw bytes and json.RawMessage are passed through.
func marshalContractMsg(msg any) ([]byte, error) {
	switch m := msg.(type) {
	case []byte:
		return m, nil
	case json.RawMessage:
		return m, nil
	}

	bz, err := json.Marshal(msg)
	if err != nil {
		return nil, errorsmod.Wrapf(runner.ErrEncode, "json: %s", err)
	}

	return bz, nil
}
