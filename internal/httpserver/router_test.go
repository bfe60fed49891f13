package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBuildRouter_MissingDeps(t *testing.T) {
	deps := stubDeps()
	deps.ChatSvc = nil
	deps.CartSvc = nil
	_, err := buildRouter(logDiscard(), nil, deps, Options{})
	if err == nil {
		t.Fatalf("expected error for missing deps")
	}
	if !strings.Contains(err.Error(), "CartSvc") || !strings.Contains(err.Error(), "ChatSvc") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := testRouter(t, stubDeps(), Options{})
	rec := serve(router, http.MethodGet, "/api/nope", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router := testRouter(t, stubDeps(), Options{})
	rec := serve(router, http.MethodGet, "/api/cart/add", "", testToken)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Method not allowed") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := testRouter(t, stubDeps(), Options{CORSOrigins: []string{"https://shop.example"}})
	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}

func TestRouter_HealthWithoutDatabase(t *testing.T) {
	router := testRouter(t, stubDeps(), Options{})
	if rec := serve(router, http.MethodGet, "/healthz", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := serve(router, http.MethodGet, "/readyz", "", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	rec := serve(router, http.MethodGet, "/api/health", "", "")
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Fatalf("unexpected health response %d %s", rec.Code, rec.Body.String())
	}
}

func TestRespondError_HidesDetailInProduction(t *testing.T) {
	for _, tc := range []struct {
		production bool
		wantDetail bool
	}{
		{production: false, wantDetail: true},
		{production: true, wantDetail: false},
	} {
		deps := stubDeps()
		deps.CartSvc = &stubCartService{err: errors.New("connection reset")}
		router := testRouter(t, deps, Options{Production: tc.production})

		rec := serve(router, http.MethodGet, "/api/cart", "", testToken)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		var body errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body.Message != "Internal server error" {
			t.Fatalf("unexpected message %q", body.Message)
		}
		if got := body.Error == "connection reset"; got != tc.wantDetail {
			t.Fatalf("production=%v: unexpected error detail %q", tc.production, body.Error)
		}
	}
}
