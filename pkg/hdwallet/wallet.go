package hdwallet

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
)

// DefaultPath is the first Ethereum account of the standard BIP-44 tree.
const DefaultPath = "m/44'/60'/0'/0/0"

var (
	ErrInvalidMnemonic = errors.New("invalid BIP-39 mnemonic")
	ErrInvalidPath     = errors.New("invalid derivation path")
)

// Wallet wraps a BIP-32 master key derived from a BIP-39 mnemonic.
type Wallet struct {
	masterKey *hdkeychain.ExtendedKey
}

// NewFromMnemonic builds a wallet from a mnemonic with an empty passphrase.
func NewFromMnemonic(mnemonic string) (*Wallet, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	seed := bip39.NewSeed(mnemonic, "")
	masterKey, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("master key derivation failed: %w", err)
	}

	return &Wallet{masterKey: masterKey}, nil
}

// DeriveECDSA derives the secp256k1 private key at the given path.
// Accepted formats: m/44'/60'/0'/0/0 or m/44h/60h/0h/0/0.
func (w *Wallet) DeriveECDSA(path string) (*ecdsa.PrivateKey, error) {
	indices, err := parsePath(path)
	if err != nil {
		return nil, err
	}

	key := w.masterKey
	for _, index := range indices {
		key, err = key.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("derive index %d: %w", index, err)
		}
	}

	privKey, err := key.ECPrivKey()
	if err != nil {
		return nil, err
	}
	return privKey.ToECDSA(), nil
}

// DeriveKey is the one-shot convenience used by the delegate loader.
func DeriveKey(mnemonic, path string) (*ecdsa.PrivateKey, error) {
	w, err := NewFromMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = DefaultPath
	}
	return w.DeriveECDSA(path)
}

func parsePath(path string) ([]uint32, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "m" {
		return nil, nil
	}
	path = strings.TrimPrefix(path, "m/")

	segments := strings.Split(path, "/")
	indices := make([]uint32, 0, len(segments))

	for _, segment := range segments {
		hardened := false
		if strings.HasSuffix(segment, "'") || strings.HasSuffix(segment, "h") {
			hardened = true
			segment = segment[:len(segment)-1]
		}

		val, err := strconv.ParseUint(segment, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %q", ErrInvalidPath, segment)
		}

		index := uint32(val)
		if hardened {
			index += hdkeychain.HardenedKeyStart
		}
		indices = append(indices, index)
	}

	return indices, nil
}
