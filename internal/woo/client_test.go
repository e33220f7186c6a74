package woo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jekabolt/woo-analytics/internal/entity"
)

func testRange() entity.TimeRange {
	return entity.TimeRange{
		From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestOrdersInRangePaginates(t *testing.T) {
	var gotQueries []map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders", r.URL.Path)
		q := r.URL.Query()
		gotQueries = append(gotQueries, map[string]string{
			"page":     q.Get("page"),
			"after":    q.Get("after"),
			"before":   q.Get("before"),
			"key":      q.Get("consumer_key"),
			"secret":   q.Get("consumer_secret"),
			"per_page": q.Get("per_page"),
		})

		w.Header().Set("Content-Type", "application/json")
		if q.Get("page") == "1" {
			// a full page forces a second request
			orders := make([]entity.Order, perPage)
			for i := range orders {
				orders[i] = entity.Order{ID: i + 1, Total: "10"}
			}
			json.NewEncoder(w).Encode(orders)
			return
		}
		json.NewEncoder(w).Encode([]entity.Order{{ID: perPage + 1, Total: "5"}})
	}))
	defer server.Close()

	cli := New(&Config{
		BaseURL:        server.URL,
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
	})

	orders, err := cli.OrdersInRange(context.Background(), testRange())
	require.NoError(t, err)
	assert.Len(t, orders, perPage+1)

	require.Len(t, gotQueries, 2)
	assert.Equal(t, "ck_test", gotQueries[0]["key"])
	assert.Equal(t, "cs_test", gotQueries[0]["secret"])
	assert.Equal(t, "100", gotQueries[0]["per_page"])
	assert.Equal(t, "2024-03-01T00:00:00Z", gotQueries[0]["after"])
	// end bound extended to the last instant of the calendar day
	assert.Equal(t, "2024-03-15T23:59:59Z", gotQueries[0]["before"])
	assert.Equal(t, "2", gotQueries[1]["page"])
}

func TestOrdersInRangeDecodesStoreTimestamps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// raw payload as the store API emits it: zone-less date_created
		fmt.Fprint(w, `[{"id":1,"number":"1001","status":"completed",
			"date_created":"2024-03-01T12:00:00","total":"45.00",
			"billing":{"first_name":"Jane","last_name":"Doe","email":"jane@example.com"},
			"line_items":[{"product_id":7,"name":"Pasture Blend","quantity":1,"total":"45.00"}]}]`)
	}))
	defer server.Close()

	cli := New(&Config{BaseURL: server.URL})

	orders, err := cli.OrdersInRange(context.Background(), testRange())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), orders[0].DateCreated.Time)
	assert.Equal(t, "45.00", orders[0].Total)
}

func TestOrdersInRangeErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"code":"woocommerce_rest_cannot_view"}`)
	}))
	defer server.Close()

	cli := New(&Config{BaseURL: server.URL})

	_, err := cli.OrdersInRange(context.Background(), testRange())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "woocommerce_rest_cannot_view")
}

func TestOrdersInRangeMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"not":"an array"}`)
	}))
	defer server.Close()

	cli := New(&Config{BaseURL: server.URL})

	_, err := cli.OrdersInRange(context.Background(), testRange())
	assert.Error(t, err)
}

func TestProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "popularity", r.URL.Query().Get("orderby"))
		fmt.Fprint(w, `[{"id":1,"name":"Pasture Blend","price":"24.99","total_sales":120}]`)
	}))
	defer server.Close()

	cli := New(&Config{BaseURL: server.URL})

	products, err := cli.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Pasture Blend", products[0].Name)
	assert.Equal(t, 120, products[0].TotalSales)
}

func TestPing(t *testing.T) {
	var status = http.StatusOK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/system_status", r.URL.Path)
		w.WriteHeader(status)
	}))
	defer server.Close()

	cli := New(&Config{BaseURL: server.URL})

	assert.NoError(t, cli.Ping(context.Background()))

	status = http.StatusInternalServerError
	assert.Error(t, cli.Ping(context.Background()))
}
