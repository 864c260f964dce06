package orders_test

import (
	"context"
	"encoding/json"
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

func seedOrder(t *testing.T, env *handlertest.Env, userID uuid.UUID) models.Order {
	t.Helper()
	o, err := env.Repo.CreateOrder(context.Background(), userID, repo.CreateOrderParams{
		TotalCents: 1999, Currency: "USD", CustomerEmail: "buyer@example.com",
	})
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func TestListReturnsOwnOrdersOnly(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	user, cookie := env.Login(t, "seller@example.com")
	other, _ := env.Login(t, "other@example.com")
	mine := seedOrder(t, env, user.ID)
	seedOrder(t, env, other.ID)

	rec := doJSON(t, env, http.MethodGet, "/orders", "", cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &resp), qt.IsNil)
	c.Assert(resp.Orders, qt.HasLen, 1)
	c.Assert(resp.Orders[0].ID, qt.Equals, mine.ID)
}

func TestGetForeignOrderIs404(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	_, cookie := env.Login(t, "seller@example.com")
	other, _ := env.Login(t, "other@example.com")
	theirs := seedOrder(t, env, other.ID)

	rec := doJSON(t, env, http.MethodGet, "/orders/"+theirs.ID.String(), "", cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusNotFound)
}

func TestChangeStatus(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	user, cookie := env.Login(t, "seller@example.com")
	o := seedOrder(t, env, user.ID)

	rec := doJSON(t, env, http.MethodPatch, "/orders/"+o.ID.String()+"/status", `{"status":"paid"}`, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	got, err := env.Repo.GetOrderForUser(context.Background(), o.ID, user.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Status, qt.Equals, models.OrderPaid)
}

func TestChangeStatusRejectsUnknownValue(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	user, cookie := env.Login(t, "seller@example.com")
	o := seedOrder(t, env, user.ID)

	rec := doJSON(t, env, http.MethodPatch, "/orders/"+o.ID.String()+"/status", `{"status":"shipped-ish"}`, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)

	got, err := env.Repo.GetOrderForUser(context.Background(), o.ID, user.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Status, qt.Equals, models.OrderPending)
}

func TestChangeStatusOnForeignOrderIs404(t *testing.T) {
	c := qt.New(t)
	env := handlertest.New(t)
	_, cookie := env.Login(t, "seller@example.com")
	other, _ := env.Login(t, "other@example.com")
	theirs := seedOrder(t, env, other.ID)

	rec := doJSON(t, env, http.MethodPatch, "/orders/"+theirs.ID.String()+"/status", `{"status":"paid"}`, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusNotFound)

	got, err := env.Repo.GetOrderForUser(context.Background(), theirs.ID, other.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Status, qt.Equals, models.OrderPending)
}
