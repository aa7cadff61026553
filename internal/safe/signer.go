package safe

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer holds the delegate key and produces the detached signature the
// transaction service verifies against the safe's delegate list.
type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func NewSigner(key *ecdsa.PrivateKey) *Signer {
	return &Signer{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// NewSignerFromHex parses a raw hex private key, with or without 0x prefix.
func NewSignerFromHex(hexKey string) (*Signer, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid delegate private key: %w", err)
	}
	return NewSigner(key), nil
}

// Address returns the delegate address derived from the key.
func (s *Signer) Address() common.Address {
	return s.address
}

// Sign signs the raw safe transaction hash. No EIP-191 prefix is applied: the
// safe hash is already a structured-data digest and the service recovers the
// delegate address from a signature over the digest itself. The recovery byte
// is shifted to the 27/28 convention the Safe contracts use.
func (s *Signer) Sign(hash common.Hash) ([]byte, error) {
	sig, err := crypto.Sign(hash.Bytes(), s.key)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}
