package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func csrfTestHandler() http.Handler {
	return CSRFProtection()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func csrfCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == csrfCookieName {
			return c
		}
	}
	t.Fatal("no CSRF cookie issued")
	return nil
}

func TestCSRFIssuesCookieOnGet(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	csrfTestHandler().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	c := csrfCookieFrom(t, w)
	if c.Value == "" {
		t.Error("CSRF cookie has no value")
	}
	if c.HttpOnly {
		t.Error("CSRF cookie must be readable by the page script")
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Errorf("SameSite = %v, want Strict", c.SameSite)
	}
}

func TestCSRFRejectsPostWithoutToken(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/admin/manage-data/lakes", nil)
	csrfTestHandler().ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestCSRFAcceptsHeaderToken(t *testing.T) {
	handler := csrfTestHandler()

	// First request obtains a token.
	seed := httptest.NewRecorder()
	handler.ServeHTTP(seed, httptest.NewRequest(http.MethodGet, "/", nil))
	token := csrfCookieFrom(t, seed).Value

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/admin/manage-data/lakes", nil)
	r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
	r.Header.Set(csrfHeaderName, token)
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestCSRFAcceptsFormFieldToken(t *testing.T) {
	handler := csrfTestHandler()

	seed := httptest.NewRecorder()
	handler.ServeHTTP(seed, httptest.NewRequest(http.MethodGet, "/", nil))
	token := csrfCookieFrom(t, seed).Value

	form := url.Values{csrfFieldName: {token}, "name": {"Estany Llong"}}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/admin/manage-data/lakes", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestCSRFRejectsMismatchedToken(t *testing.T) {
	handler := csrfTestHandler()

	seed := httptest.NewRecorder()
	handler.ServeHTTP(seed, httptest.NewRequest(http.MethodGet, "/", nil))
	token := csrfCookieFrom(t, seed).Value

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/admin/manage-data/lakes", nil)
	r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
	r.Header.Set(csrfHeaderName, "forged-"+token)
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestCSRFSkipsSafeMethods(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		w := httptest.NewRecorder()
		csrfTestHandler().ServeHTTP(w, httptest.NewRequest(method, "/", nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s status = %d, want %d", method, w.Code, http.StatusOK)
		}
	}
}
