// Package txservice talks to the Safe transaction service and its relay
// sibling: pending-proposal listing, safeTxGas estimation and proposal
// submission.
package txservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/safe"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/errno"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"
)

// FallbackSafeTxGas is the fixed internal gas budget used whenever the relay
// estimation endpoint cannot produce one.
const FallbackSafeTxGas uint64 = 2_000_000

// Client is constructed once per run with injected transport so tests can
// point it at fakes.
type Client struct {
	httpClient *http.Client
	txURL      string
	relayURL   string
	safe       common.Address
}

func New(httpClient *http.Client, txServiceURL, relayServiceURL string, safeAddr common.Address) *Client {
	return &Client{
		httpClient: httpClient,
		txURL:      strings.TrimRight(txServiceURL, "/"),
		relayURL:   strings.TrimRight(relayServiceURL, "/"),
		safe:       safeAddr,
	}
}

// MultisigTransaction is the slice of a pending proposal this pipeline needs.
type MultisigTransaction struct {
	Nonce      uint64 `json:"nonce"`
	SafeTxHash string `json:"safeTxHash"`
}

type multisigTxPage struct {
	Count   int                   `json:"count"`
	Results []MultisigTransaction `json:"results"`
}

// PendingTransactions lists the proposals the service already knows for the
// safe, confirmed and unconfirmed alike. Nonce resolution filters out the
// stale ones against the on-chain counter.
func (c *Client) PendingTransactions(ctx context.Context) ([]MultisigTransaction, error) {
	url := fmt.Sprintf("%s/api/v1/safes/%s/multisig-transactions", c.txURL, c.safe.Hex())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transaction service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("transaction service returned status %d: %s", resp.StatusCode, readBody(resp.Body))
	}

	var page multisigTxPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("transaction list malformed: %w", err)
	}
	return page.Results, nil
}

type estimateRequest struct {
	To        string  `json:"to"`
	Value     uint64  `json:"value"`
	Data      string  `json:"data"`
	Operation uint8   `json:"operation"`
	GasToken  *string `json:"gasToken"`
}

type estimateResponse struct {
	SafeTxGas string `json:"safeTxGas"`
}

// EstimateSafeTxGas asks the relay for the internal gas budget of the
// proposal. Errors are returned to the caller, which applies the fixed
// fallback; this method itself never substitutes one, keeping the recovery
// path visible where the decision is made.
func (c *Client) EstimateSafeTxGas(ctx context.Context, p *safe.Proposal) (uint64, error) {
	url := fmt.Sprintf("%s/api/v2/safes/%s/transactions/estimate/", c.relayURL, c.safe.Hex())

	body := estimateRequest{
		To:        p.To.Hex(),
		Value:     0,
		Data:      hexutil.Encode(p.Data),
		Operation: uint8(p.Operation),
		GasToken:  nil,
	}

	resp, err := c.postJSON(ctx, url, body)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("relay returned status %d: %s", resp.StatusCode, readBody(resp.Body))
	}

	var est estimateResponse
	if err := json.NewDecoder(resp.Body).Decode(&est); err != nil {
		return 0, fmt.Errorf("relay response malformed: %w", err)
	}

	gas, err := strconv.ParseUint(est.SafeTxGas, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("relay returned non-numeric safeTxGas %q", est.SafeTxGas)
	}
	return gas, nil
}

type proposalBody struct {
	To                      string  `json:"to"`
	Value                   string  `json:"value"`
	Data                    string  `json:"data"`
	Operation               uint8   `json:"operation"`
	GasToken                *string `json:"gasToken"`
	SafeTxGas               uint64  `json:"safeTxGas"`
	BaseGas                 uint64  `json:"baseGas"`
	GasPrice                uint64  `json:"gasPrice"`
	RefundReceiver          *string `json:"refundReceiver"`
	Nonce                   uint64  `json:"nonce"`
	ContractTransactionHash string  `json:"contractTransactionHash"`
	Sender                  string  `json:"sender"`
	Signature               string  `json:"signature"`
	Origin                  string  `json:"origin"`
}

// ProposeTransaction posts the signed proposal. A non-2xx answer is terminal:
// the status and body are logged and the run fails. Nothing is retried; the
// service either holds the proposal after this call or it does not.
func (c *Client) ProposeTransaction(ctx context.Context, p *safe.Proposal) error {
	url := fmt.Sprintf("%s/api/v1/safes/%s/multisig-transactions/", c.txURL, c.safe.Hex())

	value := "0"
	if p.Value != nil {
		value = p.Value.String()
	}

	body := proposalBody{
		To:                      p.To.Hex(),
		Value:                   value,
		Data:                    hexutil.Encode(p.Data),
		Operation:               uint8(p.Operation),
		GasToken:                addressPtr(p.GasToken),
		SafeTxGas:               p.SafeTxGas,
		BaseGas:                 p.BaseGas,
		GasPrice:                p.GasPrice,
		RefundReceiver:          addressPtr(p.RefundReceiver),
		Nonce:                   p.Nonce,
		ContractTransactionHash: p.SafeTxHash.Hex(),
		Sender:                  p.Sender.Hex(),
		Signature:               hexutil.Encode(p.Signature),
		Origin:                  p.Origin,
	}

	resp, err := c.postJSON(ctx, url, body)
	if err != nil {
		return errno.ErrSubmit.WithDetail("%v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody := readBody(resp.Body)
		logger.Error("proposal rejected by transaction service",
			zap.Int("status", resp.StatusCode),
			zap.String("body", respBody),
			zap.Uint64("nonce", p.Nonce),
			zap.String("safeTxHash", p.SafeTxHash.Hex()))
		return errno.ErrSubmit.WithDetail("status %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) postJSON(ctx context.Context, url string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

func addressPtr(a *common.Address) *string {
	if a == nil {
		return nil
	}
	s := a.Hex()
	return &s
}

func readBody(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, 4096))
	return string(body)
}
