package simulator

import (
	"bytes"

	errorsmod "cosmossdk.io/errors"
	storetypes "cosmossdk.io/store/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	sdktx "github.com/cosmos/cosmos-sdk/types/tx"
	signingtypes "github.com/cosmos/cosmos-sdk/types/tx/signing"
	authsigning "github.com/cosmos/cosmos-sdk/x/auth/signing"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/osmosis-labs/osmosis-testing/app"
	"github.com/osmosis-labs/osmosis-testing/tx"
)

// AnteHandler charges and authenticates a transaction before its messages run: it consumes
// gas for the tx size and every signature, verifies signatures against the account number
// and the chain id, checks sequences, deducts the fee and increments sequences.
type AnteHandler struct {
	ak     AccountKeeper
	bk     BankKeeper
	params authtypes.Params
}

// NewAnteHandler returns an AnteHandler using the default auth params.
func NewAnteHandler(ak AccountKeeper, bk BankKeeper) AnteHandler {
	return AnteHandler{
		ak:     ak,
		bk:     bk,
		params: authtypes.DefaultParams(),
	}
}

// AnteHandle runs the checks on sdkTx decoded from txBytes. Signatures are not verified when
// simulate is set.
func (h AnteHandler) AnteHandle(ctx Context, txBytes []byte, sdkTx sdk.Tx, simulate bool) error {
	sigTx, ok := sdkTx.(authsigning.SigVerifiableTx)
	if !ok {
		return errorsmod.Wrap(sdkerrors.ErrTxDecode, "invalid transaction type")
	}
	feeTx, ok := sdkTx.(sdk.FeeTx)
	if !ok {
		return errorsmod.Wrap(sdkerrors.ErrTxDecode, "tx must be a FeeTx")
	}
	if len(sdkTx.GetMsgs()) == 0 {
		return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "must contain at least one message")
	}

	ctx.GasMeter().ConsumeGas(h.params.TxSizeCostPerByte*storetypes.Gas(len(txBytes)), "txSize")

	signers, err := sigTx.GetSigners()
	if err != nil {
		return err
	}
	sigs, err := sigTx.GetSignaturesV2()
	if err != nil {
		return err
	}
	if len(sigs) != len(signers) {
		return errorsmod.Wrapf(sdkerrors.ErrUnauthorized, "invalid number of signer; expected: %d, got %d", len(signers), len(sigs))
	}

	var raw sdktx.TxRaw
	if err := raw.Unmarshal(txBytes); err != nil {
		return errorsmod.Wrap(sdkerrors.ErrTxDecode, err.Error())
	}

	accounts := make([]*authtypes.BaseAccount, len(signers))
	for i, signer := range signers {
		acc := h.ak.GetAccount(ctx, signer)
		if acc == nil {
			return errorsmod.Wrapf(sdkerrors.ErrUnknownAddress, "account %s does not exist", sdk.AccAddress(signer))
		}

		sig := sigs[i]
		pubKey := acc.GetPubKey()
		if pubKey == nil {
			if sig.PubKey == nil {
				return errorsmod.Wrap(sdkerrors.ErrInvalidPubKey, "pubkey on account is not set")
			}
			if !bytes.Equal(sig.PubKey.Address(), signer) {
				return errorsmod.Wrapf(sdkerrors.ErrInvalidPubKey, "pubkey does not match signer address %X", signer)
			}

			pubKey = sig.PubKey
			if err := acc.SetPubKey(pubKey); err != nil {
				return errorsmod.Wrap(sdkerrors.ErrInvalidPubKey, err.Error())
			}
		}

		if sig.Sequence != acc.Sequence {
			return errorsmod.Wrapf(
				sdkerrors.ErrWrongSequence,
				"account sequence mismatch, expected %d, got %d", acc.Sequence, sig.Sequence,
			)
		}

		ctx.GasMeter().ConsumeGas(h.params.SigVerifyCostSecp256k1, "ante verify: secp256k1")

		if !simulate {
			if err := h.verifySignature(ctx, acc, sig, &raw); err != nil {
				return err
			}
		}

		accounts[i] = acc
	}

	fee := feeTx.GetFee()
	if simulate && fee.IsZero() {
		ctx.GasMeter().ConsumeGas(app.FeeDeductionGasAmount, "ante: fee deduction")
	}
	if !fee.IsZero() {
		if len(signers) == 0 {
			return errorsmod.Wrap(sdkerrors.ErrNoSignatures, "no fee payer")
		}
		if !fee.IsValid() {
			return errorsmod.Wrapf(sdkerrors.ErrInsufficientFee, "invalid fee amount: %s", fee)
		}

		// the first signer pays the fee
		if err := h.bk.SendCoinsFromAccountToModule(ctx, signers[0], authtypes.FeeCollectorName, fee); err != nil {
			return errorsmod.Wrap(sdkerrors.ErrInsufficientFunds, err.Error())
		}

		ctx.EventManager().EmitEvent(sdk.NewEvent(
			sdk.EventTypeTx,
			sdk.NewAttribute(sdk.AttributeKeyFee, fee.String()),
			sdk.NewAttribute(sdk.AttributeKeyFeePayer, accounts[0].Address),
		))
	}

	for _, acc := range accounts {
		acc.Sequence++
		h.ak.SetAccount(ctx, acc)
	}

	return nil
}

func (h AnteHandler) verifySignature(ctx Context, acc *authtypes.BaseAccount, sig signingtypes.SignatureV2, raw *sdktx.TxRaw) error {
	data, ok := sig.Data.(*signingtypes.SingleSignatureData)
	if !ok || data.SignMode != signingtypes.SignMode_SIGN_MODE_DIRECT {
		return errorsmod.Wrap(sdkerrors.ErrNotSupported, "only single SIGN_MODE_DIRECT signatures are supported")
	}

	signBytes, err := tx.SignDocBytes(ctx.ChainID(), acc.AccountNumber, raw.BodyBytes, raw.AuthInfoBytes)
	if err != nil {
		return err
	}

	if !acc.GetPubKey().VerifySignature(signBytes, data.Signature) {
		return errorsmod.Wrapf(
			sdkerrors.ErrUnauthorized,
			"signature verification failed; please verify account number (%d) and chain-id (%s)",
			acc.AccountNumber, ctx.ChainID(),
		)
	}

	return nil
}
