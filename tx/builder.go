package tx

import (
	errorsmod "cosmossdk.io/errors"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdktx "github.com/cosmos/cosmos-sdk/types/tx"
	signingtypes "github.com/cosmos/cosmos-sdk/types/tx/signing"

	"github.com/osmosis-labs/osmosis-testing/account"
)

// SignerData is the on-chain account state a signature is bound to.
type SignerData struct {
	AccountNumber uint64
	Sequence      uint64
}

// Builder assembles and signs SIGN_MODE_DIRECT transactions for a single chain.
type Builder struct {
	ChainID string
}

// NewBuilder returns a Builder bound to chainID.
func NewBuilder(chainID string) Builder {
	return Builder{ChainID: chainID}
}

// BuildSignedTx encodes msgs in order into a transaction body, signs it with signer and
// returns the encoded TxRaw.
func (b Builder) BuildSignedTx(
	msgs []*codectypes.Any,
	signer account.SigningAccount,
	data SignerData,
	fee sdktx.Fee,
) ([]byte, error) {
	bodyBz, authInfoBz, err := b.encodeBodyAndAuthInfo(msgs, signer, data, fee)
	if err != nil {
		return nil, err
	}

	signBz, err := SignDocBytes(b.ChainID, data.AccountNumber, bodyBz, authInfoBz)
	if err != nil {
		return nil, err
	}

	sig, err := signer.Sign(signBz)
	if err != nil {
		return nil, errorsmod.Wrap(err, "failed to sign transaction")
	}

	raw := &sdktx.TxRaw{
		BodyBytes:     bodyBz,
		AuthInfoBytes: authInfoBz,
		Signatures:    [][]byte{sig},
	}

	bz, err := raw.Marshal()
	if err != nil {
		return nil, errorsmod.Wrap(err, "failed to encode tx raw")
	}

	return bz, nil
}

func (b Builder) encodeBodyAndAuthInfo(
	msgs []*codectypes.Any,
	signer account.SigningAccount,
	data SignerData,
	fee sdktx.Fee,
) ([]byte, []byte, error) {
	body := &sdktx.TxBody{
		Messages:      msgs,
		Memo:          "",
		TimeoutHeight: 0,
	}
	bodyBz, err := body.Marshal()
	if err != nil {
		return nil, nil, errorsmod.Wrap(err, "failed to encode tx body")
	}

	pubKey, err := codectypes.NewAnyWithValue(signer.PubKey())
	if err != nil {
		return nil, nil, errorsmod.Wrap(err, "failed to encode public key")
	}

	authInfo := &sdktx.AuthInfo{
		SignerInfos: []*sdktx.SignerInfo{{
			PublicKey: pubKey,
			ModeInfo: &sdktx.ModeInfo{
				Sum: &sdktx.ModeInfo_Single_{
					Single: &sdktx.ModeInfo_Single{Mode: signingtypes.SignMode_SIGN_MODE_DIRECT},
				},
			},
			Sequence: data.Sequence,
		}},
		Fee: &fee,
	}
	authInfoBz, err := authInfo.Marshal()
	if err != nil {
		return nil, nil, errorsmod.Wrap(err, "failed to encode auth info")
	}

	return bodyBz, authInfoBz, nil
}

// SignDocBytes returns the SIGN_MODE_DIRECT sign bytes of an encoded body and auth info.
func SignDocBytes(chainID string, accountNumber uint64, bodyBz, authInfoBz []byte) ([]byte, error) {
	signDoc := &sdktx.SignDoc{
		BodyBytes:     bodyBz,
		AuthInfoBytes: authInfoBz,
		ChainId:       chainID,
		AccountNumber: accountNumber,
	}

	bz, err := signDoc.Marshal()
	if err != nil {
		return nil, errorsmod.Wrap(err, "failed to encode sign doc")
	}

	return bz, nil
}
