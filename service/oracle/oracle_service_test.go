package oracle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fractional/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedRate(t *testing.T) {
	ctx := context.Background()

	t.Run("configured", func(t *testing.T) {
		pricez := New(core.PriceOracle{FixedRate: decimal.NewFromInt(200000)})
		rate, err := pricez.LatestRate(ctx)
		require.Nil(t, err)
		assert.True(t, rate.Equal(decimal.NewFromInt(200000)))
	})

	t.Run("missing", func(t *testing.T) {
		pricez := New(core.PriceOracle{})
		_, err := pricez.LatestRate(ctx)
		assert.NotNil(t, err)
	})
}

func TestFeedRate(t *testing.T) {
	ctx := context.Background()

	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer":20000000000000,"scale":8}`))
	}))
	defer srv.Close()

	pricez := New(core.PriceOracle{EndPoint: srv.URL, CacheSeconds: 60})

	rate, err := pricez.LatestRate(ctx)
	require.Nil(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(200000)))

	// second read comes from the cache
	_, err = pricez.LatestRate(ctx)
	require.Nil(t, err)
	assert.Equal(t, 1, hits)
}

func TestAssetPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("no feed", func(t *testing.T) {
		pricez := New(core.PriceOracle{FixedRate: decimal.NewFromInt(200000)})
		_, err := pricez.AssetPrice(ctx, "PROP1")
		assert.Equal(t, core.ErrNoFeed, err)
	})

	t.Run("quoted", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "PROP1", r.URL.Query().Get("symbol"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"answer":1000000000000,"scale":8}`))
		}))
		defer srv.Close()

		pricez := New(core.PriceOracle{EndPoint: srv.URL})
		price, err := pricez.AssetPrice(ctx, "PROP1")
		require.Nil(t, err)
		assert.True(t, price.Equal(decimal.NewFromInt(10000)))
	})
}
