package safe

import (
	"math/big"
	"testing"

	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/errno"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testToken     = common.HexToAddress("0x77777FeDdddFfC19Ff86DB637967013e6C6A116C")
	testRecipient = common.HexToAddress("0x40ceeEdE9fA9ee09e594aFFb63CFc4994aF5B14e")
)

func TestEncodeTransfer(t *testing.T) {
	amount, _ := new(big.Int).SetString("20000000000000000000", 10)

	data, err := EncodeTransfer(Transfer{Token: testToken, Recipient: testRecipient, Amount: amount})
	require.NoError(t, err)

	// selector + two 32-byte words
	require.Len(t, data, 4+32+32)
	assert.Equal(t, erc20ABI.Methods["transfer"].ID, data[:4])
	assert.Equal(t, testRecipient.Bytes(), data[4+12:4+32])
	assert.Equal(t, amount, new(big.Int).SetBytes(data[4+32:]))
}

func TestEncodeTransferRejectsBadAmounts(t *testing.T) {
	_, err := EncodeTransfer(Transfer{Token: testToken, Recipient: testRecipient, Amount: nil})
	assert.ErrorIs(t, err, errno.ErrEncoding)

	_, err = EncodeTransfer(Transfer{Token: testToken, Recipient: testRecipient, Amount: big.NewInt(-1)})
	assert.ErrorIs(t, err, errno.ErrEncoding)

	huge := new(big.Int).Lsh(big.NewInt(1), 257)
	_, err = EncodeTransfer(Transfer{Token: testToken, Recipient: testRecipient, Amount: huge})
	assert.ErrorIs(t, err, errno.ErrEncoding)
}

func TestPackTransfersRoundTrip(t *testing.T) {
	transfers := []Transfer{
		{Token: testToken, Recipient: testRecipient, Amount: big.NewInt(1)},
		{Token: testToken, Recipient: common.HexToAddress("0x1111111111111111111111111111111111111111"), Amount: big.NewInt(42)},
		{Token: testToken, Recipient: common.HexToAddress("0x2222222222222222222222222222222222222222"), Amount: mustBig(t, "115792089237316195423570985008687907853269984665640564039457584007913129639935")}, // 2^256-1
	}

	packed, err := PackTransfers(transfers)
	require.NoError(t, err)

	decoded, err := UnpackTransfers(packed)
	require.NoError(t, err)

	// order-preserving, exact round trip
	require.Len(t, decoded, len(transfers))
	for i := range transfers {
		assert.Equal(t, transfers[i].Token, decoded[i].Token, "entry %d token", i)
		assert.Equal(t, transfers[i].Recipient, decoded[i].Recipient, "entry %d recipient", i)
		assert.Zero(t, transfers[i].Amount.Cmp(decoded[i].Amount), "entry %d amount", i)
	}
}

func TestPackTransfersEntryLayout(t *testing.T) {
	amount, _ := new(big.Int).SetString("20000000000000000000", 10) // 1000 USD / 50 USD, 18 decimals

	packed, err := PackTransfers([]Transfer{{Token: testToken, Recipient: testRecipient, Amount: amount}})
	require.NoError(t, err)

	inner, err := EncodeTransfer(Transfer{Token: testToken, Recipient: testRecipient, Amount: amount})
	require.NoError(t, err)

	require.Len(t, packed, entryHeaderLen+len(inner))
	assert.Equal(t, byte(Call), packed[0])
	assert.Equal(t, testToken.Bytes(), packed[1:21])
	assert.Equal(t, int64(0), new(big.Int).SetBytes(packed[21:53]).Int64())
	assert.Equal(t, int64(len(inner)), new(big.Int).SetBytes(packed[53:85]).Int64())
	assert.Equal(t, inner, packed[entryHeaderLen:])
}

func TestPackTransfersEmptyBatch(t *testing.T) {
	_, err := PackTransfers(nil)
	assert.ErrorIs(t, err, errno.ErrEncoding)
}

func TestPackTransfersZeroTokenAddress(t *testing.T) {
	_, err := PackTransfers([]Transfer{{Recipient: testRecipient, Amount: big.NewInt(1)}})
	assert.ErrorIs(t, err, errno.ErrEncoding)
}

func TestMultiSendCalldataRoundTrip(t *testing.T) {
	transfers := []Transfer{
		{Token: testToken, Recipient: testRecipient, Amount: big.NewInt(100)},
		{Token: testToken, Recipient: testRecipient, Amount: big.NewInt(200)},
	}

	calldata, err := MultiSendCalldata(transfers)
	require.NoError(t, err)
	assert.Equal(t, multiSendABI.Methods["multiSend"].ID, calldata[:4])

	decoded, err := UnpackMultiSendCalldata(calldata)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, int64(100), decoded[0].Amount.Int64())
	assert.Equal(t, int64(200), decoded[1].Amount.Int64())
}

func TestUnpackTransfersTruncated(t *testing.T) {
	packed, err := PackTransfers([]Transfer{{Token: testToken, Recipient: testRecipient, Amount: big.NewInt(1)}})
	require.NoError(t, err)

	_, err = UnpackTransfers(packed[:len(packed)-3])
	assert.ErrorIs(t, err, errno.ErrEncoding)

	_, err = UnpackTransfers(packed[:10])
	assert.ErrorIs(t, err, errno.ErrEncoding)
}

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return v
}
