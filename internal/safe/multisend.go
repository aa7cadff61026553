package safe

import (
	"bytes"
	"math/big"

	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/errno"

	"github.com/ethereum/go-ethereum/common"
)

// Packed entry layout: operation uint8 | to address | value uint256 |
// dataLength uint256 | data bytes. Entries are concatenated with no
// separators; the field widths carry the structure.
const entryHeaderLen = 1 + 20 + 32 + 32

// EncodeTransfer builds the ERC-20 transfer(recipient, amount) calldata.
func EncodeTransfer(t Transfer) ([]byte, error) {
	if t.Amount == nil || t.Amount.Sign() < 0 {
		return nil, errno.ErrEncoding.WithDetail("transfer amount must be a non-negative integer")
	}
	if t.Amount.BitLen() > 256 {
		return nil, errno.ErrEncoding.WithDetail("transfer amount exceeds uint256")
	}

	data, err := erc20ABI.Pack("transfer", t.Recipient, t.Amount)
	if err != nil {
		return nil, errno.ErrEncoding.WithDetail("%v", err)
	}
	return data, nil
}

// PackTransfers encodes the batch as MultiSend's packed transactions blob,
// preserving input order. Every inner call is a plain Call with zero value
// against the transfer's token contract. Any bad entry fails the whole batch;
// no partial payloads leave this function.
func PackTransfers(transfers []Transfer) ([]byte, error) {
	if len(transfers) == 0 {
		return nil, errno.ErrEncoding.WithDetail("empty batch")
	}

	var buf bytes.Buffer
	for i, t := range transfers {
		if t.Token == (common.Address{}) {
			return nil, errno.ErrEncoding.WithDetail("entry %d: zero token address", i)
		}

		calldata, err := EncodeTransfer(t)
		if err != nil {
			return nil, err
		}

		buf.WriteByte(byte(Call))
		buf.Write(t.Token.Bytes())
		buf.Write(padUint256(big.NewInt(0)))
		buf.Write(padUint256(big.NewInt(int64(len(calldata)))))
		buf.Write(calldata)
	}

	return buf.Bytes(), nil
}

// MultiSendCalldata wraps the packed batch in the multiSend(bytes) call that
// the proposal targets at the MultiSend contract.
func MultiSendCalldata(transfers []Transfer) ([]byte, error) {
	packed, err := PackTransfers(transfers)
	if err != nil {
		return nil, err
	}

	data, err := multiSendABI.Pack("multiSend", packed)
	if err != nil {
		return nil, errno.ErrEncoding.WithDetail("%v", err)
	}
	return data, nil
}

// UnpackTransfers reverses PackTransfers. Production only encodes; the
// decoder backs round-trip tests and the dry-run inspection output.
func UnpackTransfers(packed []byte) ([]Transfer, error) {
	var transfers []Transfer

	transferMethod := erc20ABI.Methods["transfer"]

	for offset := 0; offset < len(packed); {
		if len(packed)-offset < entryHeaderLen {
			return nil, errno.ErrEncoding.WithDetail("truncated entry header at offset %d", offset)
		}

		op := Operation(packed[offset])
		if op != Call {
			return nil, errno.ErrEncoding.WithDetail("unexpected operation %d at offset %d", op, offset)
		}
		offset++

		token := common.BytesToAddress(packed[offset : offset+20])
		offset += 20

		value := new(big.Int).SetBytes(packed[offset : offset+32])
		if value.Sign() != 0 {
			return nil, errno.ErrEncoding.WithDetail("non-zero value in transfer entry")
		}
		offset += 32

		dataLen := new(big.Int).SetBytes(packed[offset : offset+32])
		offset += 32
		if !dataLen.IsInt64() || int64(len(packed)-offset) < dataLen.Int64() {
			return nil, errno.ErrEncoding.WithDetail("truncated entry data at offset %d", offset)
		}

		calldata := packed[offset : offset+int(dataLen.Int64())]
		offset += int(dataLen.Int64())

		if len(calldata) < 4 || !bytes.Equal(calldata[:4], transferMethod.ID) {
			return nil, errno.ErrEncoding.WithDetail("entry is not an ERC-20 transfer")
		}

		args, err := transferMethod.Inputs.Unpack(calldata[4:])
		if err != nil {
			return nil, errno.ErrEncoding.WithDetail("%v", err)
		}

		transfers = append(transfers, Transfer{
			Token:     token,
			Recipient: args[0].(common.Address),
			Amount:    args[1].(*big.Int),
		})
	}

	if len(transfers) == 0 {
		return nil, errno.ErrEncoding.WithDetail("empty batch")
	}
	return transfers, nil
}

// UnpackMultiSendCalldata strips the multiSend(bytes) wrapper and decodes the
// inner batch.
func UnpackMultiSendCalldata(calldata []byte) ([]Transfer, error) {
	method := multiSendABI.Methods["multiSend"]
	if len(calldata) < 4 || !bytes.Equal(calldata[:4], method.ID) {
		return nil, errno.ErrEncoding.WithDetail("calldata is not a multiSend call")
	}

	args, err := method.Inputs.Unpack(calldata[4:])
	if err != nil {
		return nil, errno.ErrEncoding.WithDetail("%v", err)
	}
	return UnpackTransfers(args[0].([]byte))
}

func padUint256(v *big.Int) []byte {
	return common.LeftPadBytes(v.Bytes(), 32)
}
