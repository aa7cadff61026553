// Package delegate resolves the delegate signing key from its configured
// source: a raw hex key, a BIP-39 mnemonic, or an encrypted keystore file.
package delegate

import (
	"crypto/ecdsa"
	"strings"

	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/config"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/errno"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/hdwallet"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/keystore"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
)

// PasswordPrompt supplies the keystore password when it is not configured,
// typically by reading it from the terminal.
type PasswordPrompt func() (string, error)

// Load resolves the delegate key. Source precedence: raw private key,
// mnemonic, keystore file. A keystore may hold either a raw key or a
// mnemonic; a mnemonic is derived at the configured path.
func Load(cfg config.DelegateConfig, prompt PasswordPrompt) (*ecdsa.PrivateKey, error) {
	switch {
	case cfg.PrivateKey != "":
		return parseSecret(cfg.PrivateKey, cfg.DerivationPath)

	case cfg.Mnemonic != "":
		return hdwallet.DeriveKey(cfg.Mnemonic, cfg.DerivationPath)

	case cfg.KeystorePath != "":
		encrypted, err := keystore.LoadFromFile(cfg.KeystorePath)
		if err != nil {
			return nil, errno.ErrConfig.WithDetail("keystore: %v", err)
		}

		password := cfg.KeystorePassword
		if password == "" {
			if prompt == nil {
				return nil, errno.ErrConfig.WithDetail("keystore password not configured and no prompt available")
			}
			password, err = prompt()
			if err != nil {
				return nil, err
			}
		}

		secret, err := keystore.DecryptSecret(encrypted, password)
		if err != nil {
			return nil, errno.ErrConfig.WithDetail("keystore: %v", err)
		}
		return parseSecret(secret, cfg.DerivationPath)
	}

	return nil, errno.ErrConfig.WithDetail("no delegate key material configured")
}

func parseSecret(secret, derivationPath string) (*ecdsa.PrivateKey, error) {
	secret = strings.TrimSpace(secret)
	if bip39.IsMnemonicValid(secret) {
		return hdwallet.DeriveKey(secret, derivationPath)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(secret, "0x"))
	if err != nil {
		return nil, errno.ErrConfig.WithDetail("delegate private key: %v", err)
	}
	return key, nil
}
