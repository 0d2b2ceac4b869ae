package simulator

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName is the codespace of simulator errors.
const ModuleName = "simulator"

// Simulator Errors
var (
	// ErrSessionNotFound error for an unknown session id
	ErrSessionNotFound = errorsmod.Register(ModuleName, 2, "session not found")

	// ErrNoOpenBlock error for a state mutation outside of a block
	ErrNoOpenBlock = errorsmod.Register(ModuleName, 3, "no open block")

	// ErrUnknownQuery error for a query path without a handler
	ErrUnknownQuery = errorsmod.Register(ModuleName, 4, "unknown query path")

	// ErrUnknownMessage error for a message type without a handler
	ErrUnknownMessage = errorsmod.Register(ModuleName, 5, "unknown message type")

	// ErrContractNotFound error for an unknown contract address
	ErrContractNotFound = errorsmod.Register(ModuleName, 6, "contract not found")

	// ErrCodeNotFound error for an unknown code id
	ErrCodeNotFound = errorsmod.Register(ModuleName, 7, "code not found")

	// ErrNoContractImplementation error for a code without a registered Contract
	ErrNoContractImplementation = errorsmod.Register(ModuleName, 8, "no contract implementation")

	// ErrBlockAlreadyOpen error for a BeginBlock while a block is open
	ErrBlockAlreadyOpen = errorsmod.Register(ModuleName, 9, "block already open")
)
