package tx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/osmosis-testing/app"
)

func TestNewTxConfigSignModes(t *testing.T) {
	handler := app.MakeEncodingConfig().TxConfig.SignModeHandler()

	modes := handler.SupportedModes()
	require.Len(t, modes, 2)
	require.Equal(t, "SIGN_MODE_DIRECT", modes[0].String())
	require.Equal(t, "SIGN_MODE_LEGACY_AMINO_JSON", modes[1].String())
	require.Equal(t, "SIGN_MODE_DIRECT", handler.DefaultMode().String())
}
