package hdwallet

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hardhat's well-known development mnemonic
const testMnemonic = "test test test test test test test test test test test junk"

func TestDeriveKeyDefaultPath(t *testing.T) {
	key, err := DeriveKey(testMnemonic, "")
	require.NoError(t, err)

	addr := crypto.PubkeyToAddress(key.PublicKey)
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), addr)
}

func TestDeriveKeySecondAccount(t *testing.T) {
	key, err := DeriveKey(testMnemonic, "m/44'/60'/0'/0/1")
	require.NoError(t, err)

	addr := crypto.PubkeyToAddress(key.PublicKey)
	assert.Equal(t, common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"), addr)
}

func TestHardenedMarkerVariants(t *testing.T) {
	w, err := NewFromMnemonic(testMnemonic)
	require.NoError(t, err)

	apostrophe, err := w.DeriveECDSA("m/44'/60'/0'/0/0")
	require.NoError(t, err)
	hSuffix, err := w.DeriveECDSA("m/44h/60h/0h/0/0")
	require.NoError(t, err)

	assert.Equal(t,
		crypto.PubkeyToAddress(apostrophe.PublicKey),
		crypto.PubkeyToAddress(hSuffix.PublicKey))
}

func TestNewFromMnemonicInvalid(t *testing.T) {
	_, err := NewFromMnemonic("definitely not a valid mnemonic phrase")
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestDeriveECDSAInvalidPath(t *testing.T) {
	w, err := NewFromMnemonic(testMnemonic)
	require.NoError(t, err)

	_, err = w.DeriveECDSA("m/44'/sixty'/0'/0/0")
	assert.ErrorIs(t, err, ErrInvalidPath)
}
