package safe

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const erc20ABIJSON = `[
  {
    "name": "transfer",
    "type": "function",
    "inputs": [
      {"name": "recipient", "type": "address"},
      {"name": "amount", "type": "uint256"}
    ],
    "outputs": [{"name": "", "type": "bool"}]
  }
]`

const multiSendABIJSON = `[
  {
    "name": "multiSend",
    "type": "function",
    "stateMutability": "payable",
    "inputs": [{"name": "transactions", "type": "bytes"}],
    "outputs": []
  }
]`

const safeABIJSON = `[
  {
    "name": "nonce",
    "type": "function",
    "stateMutability": "view",
    "inputs": [],
    "outputs": [{"name": "", "type": "uint256"}]
  },
  {
    "name": "getTransactionHash",
    "type": "function",
    "stateMutability": "view",
    "inputs": [
      {"name": "to", "type": "address"},
      {"name": "value", "type": "uint256"},
      {"name": "data", "type": "bytes"},
      {"name": "operation", "type": "uint8"},
      {"name": "safeTxGas", "type": "uint256"},
      {"name": "baseGas", "type": "uint256"},
      {"name": "gasPrice", "type": "uint256"},
      {"name": "gasToken", "type": "address"},
      {"name": "refundReceiver", "type": "address"},
      {"name": "_nonce", "type": "uint256"}
    ],
    "outputs": [{"name": "", "type": "bytes32"}]
  }
]`

var (
	erc20ABI     = mustParseABI(erc20ABIJSON)
	multiSendABI = mustParseABI(multiSendABIJSON)
	safeABI      = mustParseABI(safeABIJSON)
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}
