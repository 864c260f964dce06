package printify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/maslima80/hatchy-sub001/internal/printify"
)

func TestListShops(t *testing.T) {
	c := qt.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.Assert(r.URL.Path, qt.Equals, "/shops.json")
		c.Assert(r.Header.Get("Authorization"), qt.Equals, "Bearer pk_test")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":42,"title":"My Shop"},{"id":43,"title":"Other"}]`))
	}))
	defer srv.Close()

	client := printify.NewClient(srv.URL)
	shops, err := client.ListShops(context.Background(), "pk_test")
	c.Assert(err, qt.IsNil)
	c.Assert(shops, qt.HasLen, 2)
	c.Assert(shops[0].ID, qt.Equals, int64(42))
	c.Assert(shops[0].Title, qt.Equals, "My Shop")
}

func TestListShopsBadKey(t *testing.T) {
	c := qt.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := printify.NewClient(srv.URL)
	_, err := client.ListShops(context.Background(), "bad")
	c.Assert(err, qt.ErrorIs, printify.ErrInvalidAPIKey)
}

func TestListShopProducts(t *testing.T) {
	c := qt.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.Assert(r.URL.Path, qt.Equals, "/shops/42/products.json")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"pp-1","title":"Canvas","variants":[{"id":1,"title":"30x40","sku":"CP","price":2999,"is_enabled":true}]}]}`))
	}))
	defer srv.Close()

	client := printify.NewClient(srv.URL)
	products, err := client.ListShopProducts(context.Background(), "pk_test", "42")
	c.Assert(err, qt.IsNil)
	c.Assert(products, qt.HasLen, 1)
	c.Assert(products[0].ID, qt.Equals, "pp-1")
	c.Assert(products[0].Variants, qt.HasLen, 1)
	c.Assert(products[0].Variants[0].Price, qt.Equals, int64(2999))
	c.Assert(products[0].Variants[0].IsEnabled, qt.IsTrue)
}

func TestServerErrorIsUpstream(t *testing.T) {
	c := qt.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := printify.NewClient(srv.URL)
	_, err := client.ListShops(context.Background(), "pk_test")
	c.Assert(err, qt.ErrorIs, printify.ErrUpstream)
}
