package txservice

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/safe"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/errno"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSafe = common.HexToAddress("0xb04E030140b30C27bcdfaafFFA98C57d80eDa7B4")

func TestPendingTransactions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/safes/"+testSafe.Hex()+"/multisig-transactions", r.URL.Path)
		w.Write([]byte(`{
			"count": 2,
			"results": [
				{"nonce": 6, "safeTxHash": "0xaa"},
				{"nonce": 5, "safeTxHash": "0xbb"}
			]
		}`))
	}))
	defer server.Close()

	client := New(server.Client(), server.URL, server.URL, testSafe)

	txs, err := client.PendingTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, uint64(6), txs[0].Nonce)
	assert.Equal(t, uint64(5), txs[1].Nonce)
}

func TestPendingTransactionsEmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count": 0, "results": []}`))
	}))
	defer server.Close()

	client := New(server.Client(), server.URL, server.URL, testSafe)

	txs, err := client.PendingTransactions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestPendingTransactionsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(server.Client(), server.URL, server.URL, testSafe)

	_, err := client.PendingTransactions(context.Background())
	assert.Error(t, err)
}

func TestEstimateSafeTxGas(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v2/safes/"+testSafe.Hex()+"/transactions/estimate/", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(1), req["operation"])
		assert.Nil(t, req["gasToken"])

		w.Write([]byte(`{"safeTxGas": "123456"}`))
	}))
	defer server.Close()

	client := New(server.Client(), server.URL, server.URL, testSafe)

	gas, err := client.EstimateSafeTxGas(context.Background(), &safe.Proposal{
		To:        common.HexToAddress("0x40A2aCCbd92BCA938b02010E17A5b8929b49130D"),
		Data:      []byte{0x8d, 0x80, 0xff, 0x0a},
		Operation: safe.DelegateCall,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(123456), gas)
}

func TestEstimateSafeTxGasRelayDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.Client(), server.URL, server.URL, testSafe)

	_, err := client.EstimateSafeTxGas(context.Background(), &safe.Proposal{})
	assert.Error(t, err)
}

func TestEstimateSafeTxGasNonNumeric(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"safeTxGas": "lots"}`))
	}))
	defer server.Close()

	client := New(server.Client(), server.URL, server.URL, testSafe)

	_, err := client.EstimateSafeTxGas(context.Background(), &safe.Proposal{})
	assert.Error(t, err)
}

func TestProposeTransaction(t *testing.T) {
	var posted proposalBody
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/safes/"+testSafe.Hex()+"/multisig-transactions/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := New(server.Client(), server.URL, server.URL, testSafe)

	sig := make([]byte, 65)
	sig[64] = 27

	proposal := &safe.Proposal{
		To:         common.HexToAddress("0x40A2aCCbd92BCA938b02010E17A5b8929b49130D"),
		Value:      big.NewInt(0),
		Data:       []byte{0x8d, 0x80, 0xff, 0x0a},
		Operation:  safe.DelegateCall,
		SafeTxGas:  123456,
		Nonce:      7,
		SafeTxHash: common.HexToHash("0x57b3a7d74a8b31462ba4476a85e1bfac3e35b2b08ce8f6bba30fd63e4f717f6e"),
		Sender:     common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
		Signature:  sig,
		Origin:     "CI proposal transaction",
	}

	require.NoError(t, client.ProposeTransaction(context.Background(), proposal))

	assert.Equal(t, proposal.To.Hex(), posted.To)
	assert.Equal(t, "0", posted.Value)
	assert.Equal(t, "0x8d80ff0a", posted.Data)
	assert.Equal(t, uint8(1), posted.Operation)
	assert.Nil(t, posted.GasToken)
	assert.Nil(t, posted.RefundReceiver)
	assert.Equal(t, uint64(123456), posted.SafeTxGas)
	assert.Equal(t, uint64(7), posted.Nonce)
	assert.Equal(t, proposal.SafeTxHash.Hex(), posted.ContractTransactionHash)
	assert.Equal(t, proposal.Sender.Hex(), posted.Sender)
	assert.Equal(t, "CI proposal transaction", posted.Origin)
}

func TestProposeTransactionRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"nonFieldErrors":["Signer is not an owner or delegate"]}`, http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := New(server.Client(), server.URL, server.URL, testSafe)

	err := client.ProposeTransaction(context.Background(), &safe.Proposal{})
	assert.ErrorIs(t, err, errno.ErrSubmit)
}
