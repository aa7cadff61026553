package pricing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/errno"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricesMatchesIDsOutOfOrder(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/coins/markets", r.URL.Path)
		// response order differs from request order on purpose
		w.Write([]byte(`[
			{"id":"ethereum","current_price":3100.25},
			{"id":"tornado-cash","current_price":8.62}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "usd")

	prices, err := client.Prices(context.Background(), []string{"tornado-cash", "ethereum"})
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, "8.62", prices[0].String())
	assert.Equal(t, "3100.25", prices[1].String())

	assert.Contains(t, gotQuery, "vs_currency=usd")
	assert.Contains(t, gotQuery, "ids=tornado-cash%2Cethereum")
}

func TestPricesMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"ethereum","current_price":3100.25}]`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "usd")

	_, err := client.Prices(context.Background(), []string{"tornado-cash"})
	assert.ErrorIs(t, err, errno.ErrPriceNotFound)
}

func TestPricesUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "usd")

	_, err := client.Prices(context.Background(), []string{"tornado-cash"})
	assert.Error(t, err)
}

func TestPricesMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "usd")

	_, err := client.Prices(context.Background(), []string{"tornado-cash"})
	assert.Error(t, err)
}

func TestPricesEmptyRequest(t *testing.T) {
	client := NewClient(http.DefaultClient, "http://unused", "usd")

	_, err := client.Prices(context.Background(), nil)
	assert.ErrorIs(t, err, errno.ErrPriceNotFound)
}
