package httpserver

import (
	"net/http"
	"strings"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/pricing"
	cartsvc "storefront/internal/service/cart"

	"github.com/shopspring/decimal"
)

func TestCart_RequiresToken(t *testing.T) {
	router := testRouter(t, stubDeps(), Options{})
	rec := serve(router, http.MethodGet, "/api/cart", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAddToCart_DefaultsQuantity(t *testing.T) {
	carts := &stubCartService{}
	deps := stubDeps()
	deps.CartSvc = carts
	router := testRouter(t, deps, Options{})

	rec := serve(router, http.MethodPost, "/api/cart/add", `{"productId":"p1"}`, testToken)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if carts.userID != testUserID || carts.productID != "p1" || carts.qty != 1 {
		t.Fatalf("unexpected call user=%s product=%s qty=%d", carts.userID, carts.productID, carts.qty)
	}
}

func TestAddToCart_InsufficientStock(t *testing.T) {
	deps := stubDeps()
	deps.CartSvc = &stubCartService{err: domain.InvalidBecause(domain.ErrInsufficientStock)}
	router := testRouter(t, deps, Options{})

	rec := serve(router, http.MethodPost, "/api/cart/add", `{"productId":"p1","quantity":50}`, testToken)

	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Insufficient stock") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateCart_RequiresQuantity(t *testing.T) {
	carts := &stubCartService{}
	deps := stubDeps()
	deps.CartSvc = carts
	router := testRouter(t, deps, Options{})

	rec := serve(router, http.MethodPut, "/api/cart/update", `{"productId":"p1"}`, testToken)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Product ID and quantity are required") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(router, http.MethodPut, "/api/cart/update", `{"productId":"p1","quantity":0}`, testToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if carts.qty != 0 || carts.productID != "p1" {
		t.Fatalf("unexpected call product=%s qty=%d", carts.productID, carts.qty)
	}
}

func TestUpdateCart_MissingCart(t *testing.T) {
	deps := stubDeps()
	deps.CartSvc = &stubCartService{err: domain.NotFound("Cart")}
	router := testRouter(t, deps, Options{})

	rec := serve(router, http.MethodPut, "/api/cart/update", `{"productId":"p1","quantity":2}`, testToken)

	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "Cart not found") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestRemoveFromCart_BodyOrQuery(t *testing.T) {
	carts := &stubCartService{}
	deps := stubDeps()
	deps.CartSvc = carts
	router := testRouter(t, deps, Options{})

	rec := serve(router, http.MethodDelete, "/api/cart/remove", `{"productId":"p1"}`, testToken)
	if rec.Code != http.StatusOK || carts.productID != "p1" {
		t.Fatalf("unexpected response %d product=%s", rec.Code, carts.productID)
	}

	rec = serve(router, http.MethodDelete, "/api/cart/remove?productId=p2", "", testToken)
	if rec.Code != http.StatusOK || carts.productID != "p2" {
		t.Fatalf("unexpected response %d product=%s", rec.Code, carts.productID)
	}
}

func TestCartSummary(t *testing.T) {
	deps := stubDeps()
	deps.CartSvc = &stubCartService{summary: &cartsvc.Summary{
		TotalItems: 2,
		Breakdown:  pricing.Quote(decimal.NewFromInt(40)),
	}}
	router := testRouter(t, deps, Options{})

	rec := serve(router, http.MethodGet, "/api/cart/summary", "", testToken)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	for _, want := range []string{`"totalItems":2`, `"shippingFee":5`, `"tax":4`, `"total":49`} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Fatalf("expected %s in %s", want, rec.Body.String())
		}
	}
}
