package simulator

import (
	"github.com/cosmos/cosmos-sdk/types/address"
)

// store prefixes
var (
	AccountsPrefix          = []byte{0x01}
	BalancesPrefix          = []byte{0x02}
	SupplyPrefix            = []byte{0x03}
	NextAccountNumberKey    = []byte{0x04}
	CodePrefix              = []byte{0x05}
	NextCodeIDKey           = []byte{0x06}
	ContractPrefix          = []byte{0x07}
	ContractStorePrefix     = []byte{0x08}
	NextInstanceIDKey       = []byte{0x09}
	ForceUnlockWhitelistKey = []byte{0x0a}
)

// CreateAccountBalancesPrefix creates the prefix for an account's balances.
func CreateAccountBalancesPrefix(addr []byte) []byte {
	return append(append([]byte{}, BalancesPrefix...), address.MustLengthPrefix(addr)...)
}

// GetAccountKey returns the store key of an account.
func GetAccountKey(addr []byte) []byte {
	return append(append([]byte{}, AccountsPrefix...), address.MustLengthPrefix(addr)...)
}

// GetContractStorePrefix returns the prefix of a contract's private store.
func GetContractStorePrefix(addr []byte) []byte {
	return append(append([]byte{}, ContractStorePrefix...), address.MustLengthPrefix(addr)...)
}

// GetForceUnlockWhitelistKey returns the store key marking addr as whitelisted for force unlock.
func GetForceUnlockWhitelistKey(addr []byte) []byte {
	return append(append([]byte{}, ForceUnlockWhitelistKey...), address.MustLengthPrefix(addr)...)
}
