package oracle

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lend/core"

	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/prices/BTC", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"symbol":"BTC","price":"30000.5","observed_at_ms":1000}`)
	})
	mux.HandleFunc("/prices/FREE", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"symbol":"FREE","price":"0","observed_at_ms":1000}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestGetPrice(t *testing.T) {
	server := testServer(t)
	oraclez := New(&core.Oracle{EndPoint: server.URL, FreshnessMs: 5000})
	ctx := context.Background()

	price, err := oraclez.GetPrice(ctx, "BTC", 2000)
	require.NoError(t, err)
	require.Equal(t, "BTC", price.Symbol)
	require.Equal(t, "30000.5", price.PriceScaled.String())
	require.Equal(t, int64(1000), price.ObservedAtMs)
}

func TestGetPriceUnknownSymbol(t *testing.T) {
	server := testServer(t)
	oraclez := New(&core.Oracle{EndPoint: server.URL})

	_, err := oraclez.GetPrice(context.Background(), "DOGE", 2000)
	require.ErrorIs(t, err, core.ErrUnknownSymbol)
}

func TestGetPriceZero(t *testing.T) {
	server := testServer(t)
	oraclez := New(&core.Oracle{EndPoint: server.URL})

	_, err := oraclez.GetPrice(context.Background(), "FREE", 2000)
	require.ErrorIs(t, err, core.ErrZeroPrice)
}

func TestGetPriceStale(t *testing.T) {
	server := testServer(t)
	oraclez := New(&core.Oracle{EndPoint: server.URL, FreshnessMs: 5000})

	// observed at 1000, asked at 7000
	_, err := oraclez.GetPrice(context.Background(), "BTC", 7000)
	require.ErrorIs(t, err, core.ErrStalePrice)
}
