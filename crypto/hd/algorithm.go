package hd

import (
	"fmt"

	"github.com/cosmos/go-bip39"

	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	"github.com/cosmos/cosmos-sdk/crypto/types"
)

const (
	// CoinType is the SLIP44 coin type used for every derived account.
	CoinType = 118

	// mnemonicEntropySize is the entropy size in bits of a freshly generated mnemonic.
	mnemonicEntropySize = 256
)

// Secp256k1 derives plain secp256k1 keys over the cosmos BIP44 path.
var Secp256k1 = secp256k1Algo{}

type secp256k1Algo struct{}

// Name returns secp256k1
func (s secp256k1Algo) Name() hd.PubKeyType {
	return hd.Secp256k1Type
}

// Derive derives and returns the secp256k1 private key for the given seed and HD path.
func (s secp256k1Algo) Derive() hd.DeriveFn {
	return func(mnemonic, bip39Passphrase, hdPath string) ([]byte, error) {
		seed, err := bip39.NewSeedWithErrorChecking(mnemonic, bip39Passphrase)
		if err != nil {
			return nil, err
		}

		masterPriv, ch := hd.ComputeMastersFromSeed(seed)
		if len(hdPath) == 0 {
			return masterPriv[:], nil
		}

		return hd.DerivePrivateKeyForPath(masterPriv, ch, hdPath)
	}
}

// Generate generates a secp256k1 private key from the given bytes.
func (s secp256k1Algo) Generate() hd.GenerateFn {
	return func(bz []byte) types.PrivKey {
		bzArr := make([]byte, secp256k1.PrivKeySize)
		copy(bzArr, bz)

		return &secp256k1.PrivKey{Key: bzArr}
	}
}

// NewMnemonic returns a fresh 24 word mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropySize)
	if err != nil {
		return "", err
	}

	return bip39.NewMnemonic(entropy)
}

// FullPath returns the BIP44 path of the account at index.
func FullPath(index uint32) string {
	return hd.CreateHDPath(CoinType, 0, index).String()
}

// DeriveAccountKey derives the secp256k1 key of the account at index from mnemonic.
func DeriveAccountKey(mnemonic string, index uint32) (*secp256k1.PrivKey, error) {
	bz, err := Secp256k1.Derive()(mnemonic, "", FullPath(index))
	if err != nil {
		return nil, fmt.Errorf("failed to derive account %d: %w", index, err)
	}

	privKey, ok := Secp256k1.Generate()(bz).(*secp256k1.PrivKey)
	if !ok {
		panic("secp256k1 generator returned an unexpected key type")
	}

	return privKey, nil
}
