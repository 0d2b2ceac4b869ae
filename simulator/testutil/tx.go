package testutil

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdktx "github.com/cosmos/cosmos-sdk/types/tx"

	"github.com/osmosis-labs/osmosis-testing/account"
	"github.com/osmosis-labs/osmosis-testing/app"
	"github.com/osmosis-labs/osmosis-testing/bridge"
	"github.com/osmosis-labs/osmosis-testing/tx"
)

// InitAccount creates an account funded with coins inside its own block.
func InitAccount(t testing.TB, b bridge.Bridge, sessionID uint64, coinsJSON string) account.SigningAccount {
	t.Helper()

	require.NoError(t, b.BeginBlock(sessionID))
	encoded, err := b.InitAccount(sessionID, coinsJSON)
	require.NoError(t, err)
	require.NoError(t, b.EndBlock(sessionID))

	privKey, err := account.PrivKeyFromBase64(encoded)
	require.NoError(t, err)

	return account.NewSigningAccount(app.AccountAddressPrefix, privKey, account.DefaultFeeSetting(app.FeeDenom))
}

// SignTx returns the base64 encoded TxRaw of msgs signed by signer with its current sequence.
func SignTx(t testing.TB, b bridge.Bridge, sessionID uint64, chainID string, signer account.SigningAccount, fee sdktx.Fee, msgs ...sdk.Msg) string {
	t.Helper()

	anys := make([]*codectypes.Any, 0, len(msgs))
	for _, msg := range msgs {
		msgAny, err := codectypes.NewAnyWithValue(msg)
		require.NoError(t, err)
		anys = append(anys, msgAny)
	}

	accNum, err := b.AccountNumber(sessionID, signer.Address())
	require.NoError(t, err)
	seq, err := b.AccountSequence(sessionID, signer.Address())
	require.NoError(t, err)

	bz, err := tx.NewBuilder(chainID).BuildSignedTx(anys, signer, tx.SignerData{AccountNumber: accNum, Sequence: seq}, fee)
	require.NoError(t, err)

	return base64.StdEncoding.EncodeToString(bz)
}

// BroadcastRequest wraps a base64 encoded TxRaw into a base64 encoded BroadcastTxRequest.
func BroadcastRequest(t testing.TB, base64Tx string) string {
	t.Helper()

	txBytes, err := base64.StdEncoding.DecodeString(base64Tx)
	require.NoError(t, err)

	req := sdktx.BroadcastTxRequest{TxBytes: txBytes, Mode: sdktx.BroadcastMode_BROADCAST_MODE_SYNC}
	bz, err := req.Marshal()
	require.NoError(t, err)

	return base64.StdEncoding.EncodeToString(bz)
}
