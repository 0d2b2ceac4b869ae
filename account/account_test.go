package account_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/math"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/osmosis-testing/account"
)

func newSigningAccount(t *testing.T) account.SigningAccount {
	t.Helper()

	return account.NewSigningAccount("osmo", secp256k1.GenPrivKey(), account.DefaultFeeSetting("uosmo"))
}

func TestAddressIsIdempotent(t *testing.T) {
	acc := newSigningAccount(t)

	addr := acc.Address()
	require.True(t, strings.HasPrefix(addr, "osmo1"))
	require.Equal(t, addr, acc.Address())
	require.Equal(t, addr, acc.Address())
}

func TestAccountID(t *testing.T) {
	acc := newSigningAccount(t)

	id, err := acc.AccountID()
	require.NoError(t, err)
	require.Equal(t, sdk.AccAddress(acc.PubKey().Address()), id)
}

func TestNonSigning(t *testing.T) {
	acc := newSigningAccount(t)
	nonSigning := acc.NonSigning()

	require.True(t, acc.PubKey().Equals(nonSigning.PubKey()))
	require.Equal(t, acc.Address(), nonSigning.Address())

	other := account.NewSigningAccount("cosmos", acc.PrivKey(), acc.FeeSetting())
	require.True(t, strings.HasPrefix(other.Address(), "cosmos1"))
	require.True(t, strings.HasPrefix(other.NonSigning().Address(), account.NonSigningPrefix+"1"))
}

func TestWithFeeSetting(t *testing.T) {
	acc := newSigningAccount(t)
	custom := account.CustomFee{Amount: sdk.NewInt64Coin("uosmo", 1_000_000), GasLimit: 100_000_000}

	updated := acc.WithFeeSetting(custom)
	require.Equal(t, custom, updated.FeeSetting())
	require.Equal(t, account.DefaultFeeSetting("uosmo"), acc.FeeSetting())
	require.Equal(t, acc.Address(), updated.Address())
	require.Equal(t, acc.PrivKey().Key, updated.PrivKey().Key)
}

func TestDefaultFeeSetting(t *testing.T) {
	fee, ok := account.DefaultFeeSetting("uosmo").(account.AutoFee)
	require.True(t, ok)
	require.Equal(t, "uosmo", fee.GasPrice.Denom)
	require.True(t, fee.GasPrice.Amount.Equal(math.LegacyZeroDec()))
	require.Equal(t, 1.2, fee.GasAdjustment)
}

func TestSign(t *testing.T) {
	acc := newSigningAccount(t)
	msg := []byte("sign me")

	sig, err := acc.Sign(msg)
	require.NoError(t, err)
	require.True(t, acc.PubKey().VerifySignature(msg, sig))
}

func TestPrivKeyFromBase64(t *testing.T) {
	privKey := secp256k1.GenPrivKey()

	decoded, err := account.PrivKeyFromBase64(base64.StdEncoding.EncodeToString(privKey.Key))
	require.NoError(t, err)
	require.Equal(t, privKey.Key, decoded.Key)

	_, err = account.PrivKeyFromBase64("%%%")
	require.ErrorIs(t, err, account.ErrKeyEncoding)

	_, err = account.PrivKeyFromBase64(base64.StdEncoding.EncodeToString([]byte{1, 2, 3}))
	require.ErrorIs(t, err, account.ErrKeyLength)
}
