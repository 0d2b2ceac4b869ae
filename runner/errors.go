package runner

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName is the codespace of runner errors.
const ModuleName = "runner"

// Runner Errors
var (
	// ErrEncode error for a message or value that could not be encoded
	ErrEncode = errorsmod.Register(ModuleName, 2, "encode error")

	// ErrDecode error for bytes that could not be decoded into the expected shape
	ErrDecode = errorsmod.Register(ModuleName, 3, "decode error")

	// ErrQuery error returned by the simulator for a query
	ErrQuery = errorsmod.Register(ModuleName, 4, "query error")

	// ErrExecute error returned by the simulator for a transaction
	ErrExecute = errorsmod.Register(ModuleName, 5, "execute error")

	// ErrUnsupportedQuery error for a querier request outside the supported set
	ErrUnsupportedQuery = errorsmod.Register(ModuleName, 6, "unsupported query")

	// ErrInvalidConfig error for an invalid runner config
	ErrInvalidConfig = errorsmod.Register(ModuleName, 7, "invalid config")
)

// decode steps
const (
	stepBase64     = "base64"
	stepProtobuf   = "protobuf"
	stepJSON       = "json"
	stepSigningKey = "signing key"
)

func decodeError(step string, err error) error {
	return errorsmod.Wrapf(ErrDecode, "%s: %s", step, err)
}

func encodeError(step string, err error) error {
	return errorsmod.Wrapf(ErrEncode, "%s: %s", step, err)
}
