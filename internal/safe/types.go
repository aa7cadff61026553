// Package safe models Gnosis Safe proposals: the MultiSend batch encoding,
// nonce resolution against pending proposals, the on-chain contract views
// (nonce, getTransactionHash) and the delegate signature over the safe
// transaction hash.
package safe

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Operation is the Safe call mode.
type Operation uint8

const (
	Call         Operation = 0
	DelegateCall Operation = 1
)

// Transfer is one "send amount of token to recipient" entry of a batch.
type Transfer struct {
	Token     common.Address
	Recipient common.Address
	Amount    *big.Int
}

// Proposal carries every field of a Safe multisig transaction proposal.
// Once SafeTxHash is computed, the fields it covers must not change, or the
// delegate signature no longer matches what co-signers will verify.
type Proposal struct {
	To             common.Address
	Value          *big.Int
	Data           []byte
	Operation      Operation
	SafeTxGas      uint64
	BaseGas        uint64
	GasPrice       uint64
	GasToken       *common.Address // nil means no refund token
	RefundReceiver *common.Address
	Nonce          uint64

	SafeTxHash common.Hash
	Sender     common.Address
	Signature  []byte
	Origin     string
}
