package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/go-chi/chi/v5"

	"github.com/maslima80/hatchy-sub001/internal/auth"
	"github.com/maslima80/hatchy-sub001/internal/middleware"
	"github.com/maslima80/hatchy-sub001/internal/repo"
)

func newAuthMux() *chi.Mux {
	r := repo.NewMemory()
	mux := chi.NewRouter()
	mux.Post("/auth/signup", auth.SignupHandler(r))
	mux.Post("/auth/login", auth.LoginHandler(r))
	mux.Post("/auth/logout", auth.LogoutHandler(r))
	mux.Group(func(gr chi.Router) {
		gr.Use(middleware.RequireAuth(r))
		gr.Get("/auth/me", auth.ProfileHandler())
	})
	return mux
}

func post(mux *chi.Mux, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "session" && ck.Value != "" {
			return ck
		}
	}
	return nil
}

func TestSignupLoginFlow(t *testing.T) {
	c := qt.New(t)
	mux := newAuthMux()

	rec := post(mux, "/auth/signup", `{"email":"Amy@Example.com","name":"Amy","password":"hunter2hunter2"}`)
	c.Assert(rec.Code, qt.Equals, http.StatusCreated)
	ck := sessionCookie(rec)
	c.Assert(ck, qt.IsNotNil)

	var signup struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &signup), qt.IsNil)
	c.Assert(signup.User.Email, qt.Equals, "amy@example.com")
	c.Assert(strings.Contains(rec.Body.String(), "passwordHash"), qt.IsFalse)

	// Session cookie works against the protected profile route.
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(ck)
	me := httptest.NewRecorder()
	mux.ServeHTTP(me, req)
	c.Assert(me.Code, qt.Equals, http.StatusOK)

	// Login with the right password, case-insensitive email.
	rec = post(mux, "/auth/login", `{"email":"amy@example.com","password":"hunter2hunter2"}`)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(sessionCookie(rec), qt.IsNotNil)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	c := qt.New(t)
	mux := newAuthMux()
	post(mux, "/auth/signup", `{"email":"amy@example.com","name":"Amy","password":"hunter2hunter2"}`)

	// Unknown email and wrong password produce the identical response.
	recUnknown := post(mux, "/auth/login", `{"email":"nobody@example.com","password":"hunter2hunter2"}`)
	recWrong := post(mux, "/auth/login", `{"email":"amy@example.com","password":"not-the-password"}`)
	c.Assert(recUnknown.Code, qt.Equals, http.StatusUnauthorized)
	c.Assert(recWrong.Code, qt.Equals, http.StatusUnauthorized)
	c.Assert(recUnknown.Body.String(), qt.Equals, recWrong.Body.String())
}

func TestSignupValidation(t *testing.T) {
	c := qt.New(t)
	mux := newAuthMux()

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"password":"hunter2hunter2"}`},
		{"bad email", `{"email":"not-an-email","password":"hunter2hunter2"}`},
		{"short password", `{"email":"amy@example.com","password":"short"}`},
	}
	for _, tc := range cases {
		rec := post(mux, "/auth/signup", tc.body)
		c.Assert(rec.Code, qt.Equals, http.StatusBadRequest, qt.Commentf("%s", tc.name))
	}
}

func TestDuplicateSignupConflicts(t *testing.T) {
	c := qt.New(t)
	mux := newAuthMux()
	rec := post(mux, "/auth/signup", `{"email":"amy@example.com","password":"hunter2hunter2"}`)
	c.Assert(rec.Code, qt.Equals, http.StatusCreated)
	rec = post(mux, "/auth/signup", `{"email":"amy@example.com","password":"hunter2hunter2"}`)
	c.Assert(rec.Code, qt.Equals, http.StatusConflict)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	c := qt.New(t)
	mux := newAuthMux()
	rec := post(mux, "/auth/signup", `{"email":"amy@example.com","password":"hunter2hunter2"}`)
	ck := sessionCookie(rec)
	c.Assert(ck, qt.IsNotNil)

	out := post(mux, "/auth/logout", "", ck)
	c.Assert(out.Code, qt.Equals, http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(ck)
	me := httptest.NewRecorder()
	mux.ServeHTTP(me, req)
	c.Assert(me.Code, qt.Equals, http.StatusUnauthorized)
}

func TestProfileWithoutSession(t *testing.T) {
	c := qt.New(t)
	mux := newAuthMux()

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	c.Assert(rec.Code, qt.Equals, http.StatusUnauthorized)
	c.Assert(rec.Body.String(), qt.Equals, "{\"error\":\"unauthorized\"}\n")

	// A garbage token is equally rejected.
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "forged-token"})
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	c.Assert(rec.Code, qt.Equals, http.StatusUnauthorized)
}
