package account

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName is the codespace of account errors.
const ModuleName = "account"

// Account Errors
var (
	// ErrKeyEncoding error for private key material that is not valid base64
	ErrKeyEncoding = errorsmod.Register(ModuleName, 2, "invalid key encoding")

	// ErrKeyLength error for private key material of the wrong size
	ErrKeyLength = errorsmod.Register(ModuleName, 3, "invalid key length")
)
