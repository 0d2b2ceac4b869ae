package account

import (
	"encoding/base64"
	"fmt"

	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
)

// NonSigningPrefix is the address prefix of every NonSigningAccount.
const NonSigningPrefix = "osmo"

// Account is an on-chain identity derived from a secp256k1 public key.
type Account interface {
	// PubKey returns the secp256k1 public key of the account.
	PubKey() cryptotypes.PubKey
	// Address returns the bech32 address of the account. It is recomputed on every call.
	Address() string
	// AccountID returns the raw address bytes after validating the bech32 prefix.
	AccountID() (sdk.AccAddress, error)
}

var (
	_ Account = SigningAccount{}
	_ Account = NonSigningAccount{}
)

// SigningAccount owns a private key and the fee policy used for its transactions.
type SigningAccount struct {
	prefix     string
	privKey    *secp256k1.PrivKey
	feeSetting FeeSetting
}

// NewSigningAccount returns a signing account for privKey whose addresses use prefix.
func NewSigningAccount(prefix string, privKey *secp256k1.PrivKey, feeSetting FeeSetting) SigningAccount {
	if privKey == nil {
		panic("signing account requires a private key")
	}
	if feeSetting == nil {
		panic("signing account requires a fee setting")
	}

	return SigningAccount{
		prefix:     prefix,
		privKey:    privKey,
		feeSetting: feeSetting,
	}
}

// PrivKey returns the private key of the account.
func (a SigningAccount) PrivKey() *secp256k1.PrivKey {
	return a.privKey
}

// FeeSetting returns the fee policy of the account.
func (a SigningAccount) FeeSetting() FeeSetting {
	return a.feeSetting
}

// WithFeeSetting returns a copy of the account that pays fees according to feeSetting.
func (a SigningAccount) WithFeeSetting(feeSetting FeeSetting) SigningAccount {
	return NewSigningAccount(a.prefix, a.privKey, feeSetting)
}

// PubKey implements Account.
func (a SigningAccount) PubKey() cryptotypes.PubKey {
	return a.privKey.PubKey()
}

// Address implements Account.
func (a SigningAccount) Address() string {
	return mustEncodeAddress(a.prefix, a.PubKey())
}

// AccountID implements Account.
func (a SigningAccount) AccountID() (sdk.AccAddress, error) {
	return accountID(a.prefix, a.PubKey())
}

// Sign signs bz with the account private key.
func (a SigningAccount) Sign(bz []byte) ([]byte, error) {
	return a.privKey.Sign(bz)
}

// NonSigning drops the private key and returns the public view of the account.
func (a SigningAccount) NonSigning() NonSigningAccount {
	return NewNonSigningAccount(a.PubKey())
}

// NonSigningAccount is an account known only by its public key.
type NonSigningAccount struct {
	pubKey cryptotypes.PubKey
}

// NewNonSigningAccount returns the public view of pubKey.
func NewNonSigningAccount(pubKey cryptotypes.PubKey) NonSigningAccount {
	if pubKey == nil {
		panic("non-signing account requires a public key")
	}

	return NonSigningAccount{pubKey: pubKey}
}

// PubKey implements Account.
func (a NonSigningAccount) PubKey() cryptotypes.PubKey {
	return a.pubKey
}

// Address implements Account.
func (a NonSigningAccount) Address() string {
	return mustEncodeAddress(NonSigningPrefix, a.pubKey)
}

// AccountID implements Account.
func (a NonSigningAccount) AccountID() (sdk.AccAddress, error) {
	return accountID(NonSigningPrefix, a.pubKey)
}

func mustEncodeAddress(prefix string, pubKey cryptotypes.PubKey) string {
	addr, err := bech32.ConvertAndEncode(prefix, pubKey.Address())
	if err != nil {
		panic(fmt.Sprintf("malformed account prefix %q: %v", prefix, err))
	}

	return addr
}

func accountID(prefix string, pubKey cryptotypes.PubKey) (sdk.AccAddress, error) {
	if _, err := bech32.ConvertAndEncode(prefix, pubKey.Address()); err != nil {
		return nil, errorsmod.Wrapf(err, "malformed account prefix %q", prefix)
	}

	return sdk.AccAddress(pubKey.Address()), nil
}

// PrivKeyFromBase64 decodes a base64 encoded raw secp256k1 private key.
func PrivKeyFromBase64(encoded string) (*secp256k1.PrivKey, error) {
	bz, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errorsmod.Wrap(ErrKeyEncoding, err.Error())
	}
	if len(bz) != secp256k1.PrivKeySize {
		return nil, errorsmod.Wrapf(ErrKeyLength, "expected %d bytes, got %d", secp256k1.PrivKeySize, len(bz))
	}

	return &secp256k1.PrivKey{Key: bz}, nil
}
