// Package pricing fetches current market prices from the CoinGecko markets
// endpoint.
package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/errno"

	"github.com/shopspring/decimal"
)

// Client batches all requested identifiers into a single request per call.
type Client struct {
	httpClient *http.Client
	baseURL    string
	vsCurrency string
}

func NewClient(httpClient *http.Client, baseURL, vsCurrency string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		vsCurrency: vsCurrency,
	}
}

type marketEntry struct {
	ID           string          `json:"id"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

// Prices returns one unit price per requested identifier, in request order.
// The markets endpoint returns entries in its own order, so each requested id
// is looked up in the response; a missing id is fatal for the run.
func (c *Client) Prices(ctx context.Context, ids []string) ([]decimal.Decimal, error) {
	if len(ids) == 0 {
		return nil, errno.ErrPriceNotFound.WithDetail("no asset identifiers requested")
	}

	query := url.Values{}
	query.Set("vs_currency", c.vsCurrency)
	query.Set("ids", strings.Join(ids, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/coins/markets?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("price lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("price lookup returned status %d", resp.StatusCode)
	}

	var entries []marketEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("price lookup response malformed: %w", err)
	}

	byID := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		byID[e.ID] = e.CurrentPrice
	}

	prices := make([]decimal.Decimal, 0, len(ids))
	for _, id := range ids {
		price, ok := byID[id]
		if !ok {
			return nil, errno.ErrPriceNotFound.WithDetail("%s", id)
		}
		prices = append(prices, price)
	}

	return prices, nil
}
