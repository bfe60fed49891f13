package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"storefront/internal/domain"
	paymentsvc "storefront/internal/service/payment"
)

func TestCreateAddress_PassesPartialInput(t *testing.T) {
	addresses := &stubAddressService{address: &domain.Address{ID: testUserID, FullName: "Ada"}}
	deps := stubDeps()
	deps.AddressSvc = addresses
	router := testRouter(t, deps, Options{})

	rec := serve(router, http.MethodPost, "/api/addresses", `{"fullName":"Ada","isDefault":true}`, testToken)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	in := addresses.input
	if in.FullName == nil || *in.FullName != "Ada" || in.IsDefault == nil || !*in.IsDefault {
		t.Fatalf("unexpected input %+v", in)
	}
	if in.City != nil {
		t.Fatalf("absent fields should stay nil, got %v", *in.City)
	}
}

func TestCreateAddress_ValidationErrors(t *testing.T) {
	deps := stubDeps()
	deps.AddressSvc = &stubAddressService{err: domain.Invalid("Validation failed", "Phone number must be 10-15 digits", "City is required")}
	router := testRouter(t, deps, Options{})

	rec := serve(router, http.MethodPost, "/api/address", `{}`, testToken)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "Validation failed" || len(resp.Errors) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAddressByID(t *testing.T) {
	addresses := &stubAddressService{}
	deps := stubDeps()
	deps.AddressSvc = addresses
	router := testRouter(t, deps, Options{})

	rec := serve(router, http.MethodGet, "/api/addresses/bogus", "", testToken)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "Address not found") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(router, http.MethodPut, "/api/addresses/"+testUserID, `{"city":"Lahore"}`, testToken)
	if rec.Code != http.StatusOK || addresses.id != testUserID || addresses.input.City == nil {
		t.Fatalf("unexpected update %d id=%s", rec.Code, addresses.id)
	}

	rec = serve(router, http.MethodDelete, "/api/addresses/"+testUserID, "", testToken)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Address deleted successfully") {
		t.Fatalf("unexpected delete %d %s", rec.Code, rec.Body.String())
	}
}

func TestCreateOrder_AcceptsIntentAlias(t *testing.T) {
	orders := &stubOrderService{order: &domain.Order{OrderNumber: "ORD-1-0001"}}
	deps := stubDeps()
	deps.OrderSvc = orders
	router := testRouter(t, deps, Options{})

	body := `{"addressId":"a1","paymentMethod":"card","stripePaymentIntentId":"pi_123"}`
	rec := serve(router, http.MethodPost, "/api/orders/create", body, testToken)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if orders.input.PaymentIntentID != "pi_123" || orders.input.AddressID != "a1" || orders.input.PaymentMethod != "card" {
		t.Fatalf("unexpected input %+v", orders.input)
	}
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	deps := stubDeps()
	deps.OrderSvc = &stubOrderService{err: domain.InvalidBecause(domain.ErrEmptyCart)}
	router := testRouter(t, deps, Options{})

	rec := serve(router, http.MethodPost, "/api/orders/create", `{"addressId":"a1","paymentMethod":"cod"}`, testToken)

	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Cart is empty") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestListOrders_EmptyIsArray(t *testing.T) {
	deps := stubDeps()
	deps.OrderSvc = &stubOrderService{orders: []domain.Order{}}
	router := testRouter(t, deps, Options{})

	rec := serve(router, http.MethodGet, "/api/orders", "", testToken)

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestCreatePaymentIntent(t *testing.T) {
	payments := &stubPaymentService{secret: "pi_123_secret_456"}
	deps := stubDeps()
	deps.PaymentSvc = payments
	router := testRouter(t, deps, Options{})

	rec := serve(router, http.MethodPost, "/api/payment/create-payment-intent", `{"amount":54.5,"addressId":"a1"}`, testToken)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"clientSecret":"pi_123_secret_456"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if payments.input.Amount.String() != "54.5" || payments.input.AddressID != "a1" {
		t.Fatalf("unexpected input %+v", payments.input)
	}
}

func TestCreatePaymentIntent_NotConfigured(t *testing.T) {
	deps := stubDeps()
	deps.PaymentSvc = &stubPaymentService{err: paymentsvc.ErrNotConfigured}
	router := testRouter(t, deps, Options{})

	rec := serve(router, http.MethodPost, "/api/payment/create-payment-intent", `{"amount":10,"addressId":"a1"}`, testToken)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
