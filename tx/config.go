package tx

import (
	"fmt"

	txsigning "cosmossdk.io/x/tx/signing"
	"cosmossdk.io/x/tx/signing/aminojson"
	"cosmossdk.io/x/tx/signing/direct"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	signingtypes "github.com/cosmos/cosmos-sdk/types/tx/signing"
	authtx "github.com/cosmos/cosmos-sdk/x/auth/tx"
)

// SignModes are the sign modes the tx config accepts. Transactions built by this package are
// always signed with SIGN_MODE_DIRECT, which comes first so it is the default.
var SignModes = []signingtypes.SignMode{
	signingtypes.SignMode_SIGN_MODE_DIRECT,
	signingtypes.SignMode_SIGN_MODE_LEGACY_AMINO_JSON,
}

// NewTxConfig returns a protobuf TxConfig whose signer addresses are resolved with the
// bech32 codecs of the codec's interface registry rather than the global sdk config.
func NewTxConfig(cdc codec.Codec) client.TxConfig {
	signingCtx := cdc.InterfaceRegistry().SigningContext()

	handlerMap, err := newHandlerMap(signingCtx, SignModes)
	if err != nil {
		panic(err)
	}

	txConfig, err := authtx.NewTxConfigWithOptions(cdc, authtx.ConfigOptions{
		EnabledSignModes: SignModes,
		SigningContext:   signingCtx,
		SigningHandler:   handlerMap,
		SigningOptions: &txsigning.Options{
			FileResolver:          signingCtx.FileResolver(),
			AddressCodec:          signingCtx.AddressCodec(),
			ValidatorAddressCodec: signingCtx.ValidatorAddressCodec(),
		},
	})
	if err != nil {
		panic(err)
	}

	return txConfig
}

func newHandlerMap(signingCtx *txsigning.Context, modes []signingtypes.SignMode) (*txsigning.HandlerMap, error) {
	handlers := make([]txsigning.SignModeHandler, 0, len(modes))
	for _, m := range modes {
		switch m {
		case signingtypes.SignMode_SIGN_MODE_DIRECT:
			handlers = append(handlers, &direct.SignModeHandler{})
		case signingtypes.SignMode_SIGN_MODE_LEGACY_AMINO_JSON:
			handlers = append(handlers, aminojson.NewSignModeHandler(aminojson.SignModeHandlerOptions{
				FileResolver: signingCtx.FileResolver(),
			}))
		default:
			return nil, fmt.Errorf("unsupported sign mode %s", m)
		}
	}

	return txsigning.NewHandlerMap(handlers...), nil
}
