package categories_test

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

func TestInlineCreateRejectsBlankName(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", `{"name":""}`},
		{"whitespace", `{"name":"  \t "}`},
		{"missing", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			env := handlertest.New(t)
			user, cookie := env.Login(t, "alice@example.com")

			rec := doJSON(t, env, http.MethodPost, "/categories", tt.body, cookie)
			c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)

			// No row was created.
			cats, err := env.Repo.ListCategories(context.Background(), user.ID)
			c.Assert(err, qt.IsNil)
			c.Assert(cats, qt.HasLen, 0)
		})
	}
}

func TestInlineCreateTrimsName(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	_, cookie := env.Login(t, "alice@example.com")

	rec := doJSON(t, env, http.MethodPost, "/categories", `{"name":"  Apparel  "}`, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	var resp struct {
		Category struct {
			Name string `json:"name"`
		} `json:"category"`
	}
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &resp), qt.IsNil)
	c.Assert(resp.Category.Name, qt.Equals, "Apparel")
}

func TestDuplicateNameConflicts(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	_, cookie := env.Login(t, "alice@example.com")

	rec := doJSON(t, env, http.MethodPost, "/categories", `{"name":"Apparel"}`, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	rec = doJSON(t, env, http.MethodPost, "/categories", `{"name":"Apparel"}`, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusConflict)
}

func TestSameNameAllowedAcrossUsers(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	_, aliceCookie := env.Login(t, "alice@example.com")
	_, bobCookie := env.Login(t, "bob@example.com")

	rec := doJSON(t, env, http.MethodPost, "/categories", `{"name":"Apparel"}`, aliceCookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	rec = doJSON(t, env, http.MethodPost, "/categories", `{"name":"Apparel"}`, bobCookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
}

func TestRenameForeignCategoryIs404(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	owner, _ := env.Login(t, "alice@example.com")
	_, intruderCookie := env.Login(t, "mallory@example.com")

	cat, err := env.Repo.UpsertCategory(context.Background(), owner.ID,
		repo.UpsertNameParams{Name: "Apparel"})
	c.Assert(err, qt.IsNil)

	body := fmt.Sprintf(`{"id":%q,"name":"Hijacked"}`, cat.ID)
	rec := doJSON(t, env, http.MethodPost, "/categories", body, intruderCookie)
	c.Assert(rec.Code, qt.Equals, http.StatusNotFound)

	got, err := env.Repo.ListCategories(context.Background(), owner.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got[0].Name, qt.Equals, "Apparel")
}

func TestDeleteUnlinkedFromProducts(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	user, cookie := env.Login(t, "alice@example.com")
	ctx := context.Background()

	cat, err := env.Repo.UpsertCategory(ctx, user.ID, repo.UpsertNameParams{Name: "Apparel"})
	c.Assert(err, qt.IsNil)
	product, err := env.Repo.UpsertProduct(ctx, user.ID, repo.UpsertProductParams{
		Name:        "Shirt",
		CategoryIDs: []uuid.UUID{cat.ID},
	})
	c.Assert(err, qt.IsNil)

	rec := doJSON(t, env, http.MethodDelete, "/categories/"+cat.ID.String(), "", cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	ids, err := env.Repo.ListProductCategoryIDs(ctx, product.ID, user.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(ids, qt.HasLen, 0)
}
