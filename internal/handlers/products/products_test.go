package products_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/maslima80/hatchy-sub001/internal/handlers/handlertest"
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

func TestMalformedJSONGetsFixedMessage(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	_, cookie := env.Login(t, "alice@example.com")

	rec := doJSON(t, env, http.MethodPost, "/products", `{"name": "Mug"`, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)
	// The decoder's own message never reaches the caller.
	c.Assert(rec.Body.String(), qt.Equals, "{\"error\":\"invalid JSON\"}\n")
}

func TestUpsertCreatesProductOwnedByCaller(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	user, cookie := env.Login(t, "alice@example.com")

	rec := doJSON(t, env, http.MethodPost, "/products",
		`{"name":"Mug","description":"A mug"}`, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	var resp struct {
		Success bool `json:"success"`
		Product struct {
			ID     string `json:"id"`
			UserID string `json:"userId"`
			Name   string `json:"name"`
		} `json:"product"`
	}
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &resp), qt.IsNil)
	c.Assert(resp.Success, qt.IsTrue)
	c.Assert(resp.Product.Name, qt.Equals, "Mug")
	c.Assert(resp.Product.UserID, qt.Equals, user.ID.String())
}

func TestUpsertIgnoresClientSuppliedOwner(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	user, cookie := env.Login(t, "alice@example.com")
	other, _ := env.Login(t, "mallory@example.com")

	// A payload naming another owner must not change the persisted owner.
	body := fmt.Sprintf(`{"name":"Mug","userId":%q,"ownerId":%q}`, other.ID, other.ID)
	rec := doJSON(t, env, http.MethodPost, "/products", body, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	products, err := env.Repo.ListProducts(context.Background(), user.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(products, qt.HasLen, 1)
	c.Assert(products[0].UserID, qt.Equals, user.ID)

	foreign, err := env.Repo.ListProducts(context.Background(), other.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(foreign, qt.HasLen, 0)
}

func TestMutationOnForeignProductIs404(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	owner, _ := env.Login(t, "alice@example.com")
	_, intruderCookie := env.Login(t, "mallory@example.com")

	product, err := env.Repo.UpsertProduct(context.Background(), owner.ID,
		repo.UpsertProductParams{Name: "Mug"})
	c.Assert(err, qt.IsNil)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"update", http.MethodPost, "/products", fmt.Sprintf(`{"id":%q,"name":"Stolen"}`, product.ID)},
		{"read", http.MethodGet, "/products/" + product.ID.String(), ""},
		{"delete", http.MethodDelete, "/products/" + product.ID.String(), ""},
		{"variant", http.MethodPost, "/products/" + product.ID.String() + "/variants", `{"name":"Small"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			rec := doJSON(t, env, tt.method, tt.path, tt.body, intruderCookie)
			c.Assert(rec.Code, qt.Equals, http.StatusNotFound)
		})
	}

	// Still owned and unchanged.
	got, err := env.Repo.GetProductForUser(context.Background(), product.ID, owner.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Name, qt.Equals, "Mug")
}

func TestUnauthenticatedMutationHasNoSideEffect(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	user, _ := env.Login(t, "alice@example.com")

	rec := doJSON(t, env, http.MethodPost, "/products", `{"name":"Mug"}`, nil)
	c.Assert(rec.Code, qt.Equals, http.StatusUnauthorized)

	products, err := env.Repo.ListProducts(context.Background(), user.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(products, qt.HasLen, 0)
}

func TestUpsertRejectsBlankName(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	user, cookie := env.Login(t, "alice@example.com")

	for _, body := range []string{`{"name":""}`, `{"name":"   "}`, `{}`} {
		rec := doJSON(t, env, http.MethodPost, "/products", body, cookie)
		c.Assert(rec.Code, qt.Equals, http.StatusBadRequest, qt.Commentf("body %s", body))
	}

	products, err := env.Repo.ListProducts(context.Background(), user.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(products, qt.HasLen, 0)
}

func TestUpsertRelinksCategoriesAndTags(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	user, cookie := env.Login(t, "alice@example.com")
	ctx := context.Background()

	cat, err := env.Repo.UpsertCategory(ctx, user.ID, repo.UpsertNameParams{Name: "Apparel"})
	c.Assert(err, qt.IsNil)
	tag, err := env.Repo.UpsertTag(ctx, user.ID, repo.UpsertNameParams{Name: "summer"})
	c.Assert(err, qt.IsNil)

	body := fmt.Sprintf(`{"name":"Shirt","categoryIds":[%q],"tagIds":[%q]}`, cat.ID, tag.ID)
	rec := doJSON(t, env, http.MethodPost, "/products", body, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	var resp struct {
		Product struct {
			ID string `json:"id"`
		} `json:"product"`
	}
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &resp), qt.IsNil)

	rec = doJSON(t, env, http.MethodGet, "/products/"+resp.Product.ID, "", cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	var detail struct {
		CategoryIDs []string `json:"categoryIds"`
		TagIDs      []string `json:"tagIds"`
	}
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &detail), qt.IsNil)
	c.Assert(detail.CategoryIDs, qt.DeepEquals, []string{cat.ID.String()})
	c.Assert(detail.TagIDs, qt.DeepEquals, []string{tag.ID.String()})
}

func TestUpsertRejectsForeignCategoryLink(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	_, cookie := env.Login(t, "alice@example.com")
	other, _ := env.Login(t, "mallory@example.com")
	ctx := context.Background()

	foreignCat, err := env.Repo.UpsertCategory(ctx, other.ID, repo.UpsertNameParams{Name: "Private"})
	c.Assert(err, qt.IsNil)

	body := fmt.Sprintf(`{"name":"Shirt","categoryIds":[%q]}`, foreignCat.ID)
	rec := doJSON(t, env, http.MethodPost, "/products", body, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusNotFound)
}

func TestVariantUpsertAndUpdate(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	user, cookie := env.Login(t, "alice@example.com")
	ctx := context.Background()

	product, err := env.Repo.UpsertProduct(ctx, user.ID, repo.UpsertProductParams{Name: "Mug"})
	c.Assert(err, qt.IsNil)

	rec := doJSON(t, env, http.MethodPost, "/products/"+product.ID.String()+"/variants",
		`{"name":"Small","priceCents":1500}`, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	var resp struct {
		Variant struct {
			ID         string `json:"id"`
			PriceCents int64  `json:"priceCents"`
		} `json:"variant"`
	}
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &resp), qt.IsNil)
	c.Assert(resp.Variant.PriceCents, qt.Equals, int64(1500))

	body := fmt.Sprintf(`{"id":%q,"name":"Small","priceCents":1700}`, resp.Variant.ID)
	rec = doJSON(t, env, http.MethodPost, "/products/"+product.ID.String()+"/variants", body, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	variants, err := env.Repo.ListVariants(ctx, product.ID, user.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(variants, qt.HasLen, 1)
	c.Assert(variants[0].PriceCents, qt.Equals, int64(1700))
}

func TestVariantRejectsNegativePrice(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	user, cookie := env.Login(t, "alice@example.com")

	product, err := env.Repo.UpsertProduct(context.Background(), user.ID,
		repo.UpsertProductParams{Name: "Mug"})
	c.Assert(err, qt.IsNil)

	rec := doJSON(t, env, http.MethodPost, "/products/"+product.ID.String()+"/variants",
		`{"name":"Small","priceCents":-1}`, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)
}
