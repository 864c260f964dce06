package stores_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/uuid"

	"github.com/maslima80/hatchy-sub001/internal/handlers/handlertest"
	"github.com/maslima80/hatchy-sub001/internal/models"
	"github.com/maslima80/hatchy-sub001/internal/repo"
)

func doJSON(t *testing.T, env *handlertest.Env, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	env.Mux.ServeHTTP(rec, req)
	return rec
}

// seed creates a store and a product with one variant for the given user.
func seed(t *testing.T, env *handlertest.Env, userID uuid.UUID, priceCents int64) (models.Store, models.Product) {
	t.Helper()
	ctx := context.Background()
	store, err := env.Repo.UpsertStore(ctx, userID, repo.UpsertStoreParams{
		Name: "Main", Slug: "main-" + uuid.NewString()[:8], Currency: "USD",
	})
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}
	product, err := env.Repo.UpsertProduct(ctx, userID, repo.UpsertProductParams{Name: "Mug"})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if priceCents >= 0 {
		if _, err := env.Repo.UpsertVariant(ctx, userID, product.ID, repo.UpsertVariantParams{
			Name: "Default", PriceCents: priceCents,
		}); err != nil {
			t.Fatalf("seed variant: %v", err)
		}
	}
	return store, product
}

func TestAttachCreatesDefaultPriceFromFirstVariant(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	user, cookie := env.Login(t, "alice@example.com")
	store, product := seed(t, env, user.ID, 1500)

	body := fmt.Sprintf(`{"productId":%q}`, product.ID)
	rec := doJSON(t, env, http.MethodPost, "/stores/"+store.ID.String()+"/products", body, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	var resp struct {
		Price struct {
			PriceCents int64  `json:"priceCents"`
			Currency   string `json:"currency"`
			Visibility string `json:"visibility"`
		} `json:"price"`
	}
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &resp), qt.IsNil)
	c.Assert(resp.Price.PriceCents, qt.Equals, int64(1500))
	c.Assert(resp.Price.Currency, qt.Equals, "USD")
	c.Assert(resp.Price.Visibility, qt.Equals, "VISIBLE")
}

func TestAttachWithoutVariantsDefaultsToZero(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	user, cookie := env.Login(t, "alice@example.com")
	store, product := seed(t, env, user.ID, -1) // no variant

	body := fmt.Sprintf(`{"productId":%q}`, product.ID)
	rec := doJSON(t, env, http.MethodPost, "/stores/"+store.ID.String()+"/products", body, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	var resp struct {
		Price struct {
			PriceCents int64 `json:"priceCents"`
		} `json:"price"`
	}
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &resp), qt.IsNil)
	c.Assert(resp.Price.PriceCents, qt.Equals, int64(0))
}

func TestAttachIsIdempotent(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	user, cookie := env.Login(t, "alice@example.com")
	store, product := seed(t, env, user.ID, 1500)

	body := fmt.Sprintf(`{"productId":%q}`, product.ID)
	rec1 := doJSON(t, env, http.MethodPost, "/stores/"+store.ID.String()+"/products", body, cookie)
	c.Assert(rec1.Code, qt.Equals, http.StatusOK)
	rec2 := doJSON(t, env, http.MethodPost, "/stores/"+store.ID.String()+"/products", body, cookie)
	c.Assert(rec2.Code, qt.Equals, http.StatusOK)

	sps, err := env.Repo.ListStoreProducts(context.Background(), store.ID, user.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(sps, qt.HasLen, 1)
}

func TestAttachForeignProductIs404(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	owner, cookie := env.Login(t, "alice@example.com")
	other, _ := env.Login(t, "mallory@example.com")

	store, _ := seed(t, env, owner.ID, 1500)
	foreignProduct, err := env.Repo.UpsertProduct(context.Background(), other.ID,
		repo.UpsertProductParams{Name: "Theirs"})
	c.Assert(err, qt.IsNil)

	body := fmt.Sprintf(`{"productId":%q}`, foreignProduct.ID)
	rec := doJSON(t, env, http.MethodPost, "/stores/"+store.ID.String()+"/products", body, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusNotFound)
}

func TestSetPriceOnForeignStoreProductIs404(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	owner, _ := env.Login(t, "alice@example.com")
	_, intruderCookie := env.Login(t, "mallory@example.com")
	store, product := seed(t, env, owner.ID, 1500)

	sp, err := env.Repo.AttachProductToStore(context.Background(), owner.ID, store.ID, product.ID)
	c.Assert(err, qt.IsNil)

	path := fmt.Sprintf("/stores/%s/products/%s/price", store.ID, sp.ID)
	rec := doJSON(t, env, http.MethodPut, path, `{"priceCents":99}`, intruderCookie)
	c.Assert(rec.Code, qt.Equals, http.StatusNotFound)
}

func TestSetPriceUpdatesDefaultRow(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	user, cookie := env.Login(t, "alice@example.com")
	store, product := seed(t, env, user.ID, 1500)

	sp, err := env.Repo.AttachProductToStore(context.Background(), user.ID, store.ID, product.ID)
	c.Assert(err, qt.IsNil)

	path := fmt.Sprintf("/stores/%s/products/%s/price", store.ID, sp.ID)
	rec := doJSON(t, env, http.MethodPut, path, `{"priceCents":2500,"visibility":"HIDDEN"}`, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	var resp struct {
		Price struct {
			PriceCents int64  `json:"priceCents"`
			Visibility string `json:"visibility"`
		} `json:"price"`
	}
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &resp), qt.IsNil)
	c.Assert(resp.Price.PriceCents, qt.Equals, int64(2500))
	c.Assert(resp.Price.Visibility, qt.Equals, "HIDDEN")

	// The lazily created default row was updated, not duplicated.
	price, err := env.Repo.EnsureStorePrice(context.Background(), sp.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(price.PriceCents, qt.Equals, int64(2500))
}

func TestSetPriceForeignVariantIs404(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	user, cookie := env.Login(t, "alice@example.com")
	other, _ := env.Login(t, "mallory@example.com")
	store, product := seed(t, env, user.ID, 1500)

	sp, err := env.Repo.AttachProductToStore(context.Background(), user.ID, store.ID, product.ID)
	c.Assert(err, qt.IsNil)

	theirProduct, err := env.Repo.UpsertProduct(context.Background(), other.ID,
		repo.UpsertProductParams{Name: "Theirs"})
	c.Assert(err, qt.IsNil)
	theirVariant, err := env.Repo.UpsertVariant(context.Background(), other.ID, theirProduct.ID,
		repo.UpsertVariantParams{Name: "Foreign", PriceCents: 500})
	c.Assert(err, qt.IsNil)

	path := fmt.Sprintf("/stores/%s/products/%s/price", store.ID, sp.ID)
	body := fmt.Sprintf(`{"variantId":%q,"priceCents":100}`, theirVariant.ID)
	rec := doJSON(t, env, http.MethodPut, path, body, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusNotFound)
}

func TestSetPriceRejectsBadVisibility(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	user, cookie := env.Login(t, "alice@example.com")
	store, product := seed(t, env, user.ID, 1500)

	sp, err := env.Repo.AttachProductToStore(context.Background(), user.ID, store.ID, product.ID)
	c.Assert(err, qt.IsNil)

	path := fmt.Sprintf("/stores/%s/products/%s/price", store.ID, sp.ID)
	rec := doJSON(t, env, http.MethodPut, path, `{"priceCents":100,"visibility":"SOMETIMES"}`, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)
}
