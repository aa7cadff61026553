package safe

import (
	"context"
	"math/big"

	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/errno"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

// Contract performs the read-only views this pipeline needs from the Safe.
// The caller is injectable (ethclient.Client in production) so tests can fake
// the chain.
type Contract struct {
	addr   common.Address
	caller ethereum.ContractCaller
}

func NewContract(addr common.Address, caller ethereum.ContractCaller) *Contract {
	return &Contract{addr: addr, caller: caller}
}

// Address returns the safe's address.
func (c *Contract) Address() common.Address {
	return c.addr
}

// Nonce reads the confirmed on-chain transaction counter.
func (c *Contract) Nonce(ctx context.Context) (uint64, error) {
	out, err := c.call(ctx, "nonce")
	if err != nil {
		return 0, err
	}

	res, err := safeABI.Unpack("nonce", out)
	if err != nil {
		return 0, errno.ErrChainRead.WithDetail("nonce: %v", err)
	}
	return res[0].(*big.Int).Uint64(), nil
}

// TransactionHash asks the safe for the content hash of the proposal. The
// safe's own getTransactionHash view is the authority on the hashing rule;
// recomputing the EIP-712 digest locally risks drifting from what co-signers
// and the execution path will verify.
func (c *Contract) TransactionHash(ctx context.Context, p *Proposal) (common.Hash, error) {
	value := p.Value
	if value == nil {
		value = new(big.Int)
	}

	out, err := c.call(ctx, "getTransactionHash",
		p.To,
		value,
		p.Data,
		uint8(p.Operation),
		new(big.Int).SetUint64(p.SafeTxGas),
		new(big.Int).SetUint64(p.BaseGas),
		new(big.Int).SetUint64(p.GasPrice),
		addressOrZero(p.GasToken),
		addressOrZero(p.RefundReceiver),
		new(big.Int).SetUint64(p.Nonce),
	)
	if err != nil {
		return common.Hash{}, err
	}

	res, err := safeABI.Unpack("getTransactionHash", out)
	if err != nil {
		return common.Hash{}, errno.ErrChainRead.WithDetail("getTransactionHash: %v", err)
	}

	raw := res[0].([32]byte)
	return common.BytesToHash(raw[:]), nil
}

func (c *Contract) call(ctx context.Context, method string, args ...any) ([]byte, error) {
	data, err := safeABI.Pack(method, args...)
	if err != nil {
		return nil, errno.ErrChainRead.WithDetail("%s pack: %v", method, err)
	}

	out, err := c.caller.CallContract(ctx, ethereum.CallMsg{To: &c.addr, Data: data}, nil)
	if err != nil {
		return nil, errno.ErrChainRead.WithDetail("%s: %v", method, err)
	}
	return out, nil
}

func addressOrZero(a *common.Address) common.Address {
	if a == nil {
		return common.Address{}
	}
	return *a
}
