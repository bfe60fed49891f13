package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/chat"
	"storefront/internal/domain"
	addresssvc "storefront/internal/service/address"
	cartsvc "storefront/internal/service/cart"
	ordersvc "storefront/internal/service/order"
	paymentsvc "storefront/internal/service/payment"
	usersvc "storefront/internal/service/user"

	"github.com/gin-gonic/gin"
)

const (
	testUserID = "3f2b8c1e-9a4d-4e6f-8b7a-1c2d3e4f5a6b"
	testToken  = "valid-token"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubUserService struct {
	session *usersvc.Session
	user    *domain.User
	err     error
}

func (s *stubUserService) Register(_ context.Context, _ usersvc.RegisterInput) (*usersvc.Session, error) {
	return s.session, s.err
}

func (s *stubUserService) Login(_ context.Context, _, _ string) (*usersvc.Session, error) {
	return s.session, s.err
}

func (s *stubUserService) Authenticate(token string) (string, error) {
	if token != testToken {
		return "", usersvc.ErrInvalidToken
	}
	return testUserID, nil
}

func (s *stubUserService) Me(_ context.Context, _ string) (*domain.User, error) {
	return s.user, s.err
}

type stubProductService struct {
	page    *domain.ProductPage
	product *domain.Product
	err     error
	filter  domain.ProductFilter
	calls   int
}

func (s *stubProductService) List(_ context.Context, f domain.ProductFilter) (*domain.ProductPage, error) {
	s.calls++
	s.filter = f
	if s.page == nil && s.err == nil {
		return &domain.ProductPage{Products: []domain.Product{}}, nil
	}
	return s.page, s.err
}

func (s *stubProductService) Get(_ context.Context, _ string) (*domain.Product, error) {
	s.calls++
	return s.product, s.err
}

type stubCategoryService struct {
	categories []domain.CatalogCategory
	err        error
}

func (s *stubCategoryService) List(context.Context) ([]domain.CatalogCategory, error) {
	return s.categories, s.err
}

type stubCartService struct {
	cart      *domain.Cart
	summary   *cartsvc.Summary
	err       error
	userID    string
	productID string
	qty       int
}

func (s *stubCartService) record(userID, productID string, qty int) (*domain.Cart, error) {
	s.userID, s.productID, s.qty = userID, productID, qty
	if s.err != nil {
		return nil, s.err
	}
	if s.cart == nil {
		return domain.NewCart(userID), nil
	}
	return s.cart, nil
}

func (s *stubCartService) Get(_ context.Context, userID string) (*domain.Cart, error) {
	return s.record(userID, "", 0)
}

func (s *stubCartService) AddItem(_ context.Context, userID, productID string, qty int) (*domain.Cart, error) {
	return s.record(userID, productID, qty)
}

func (s *stubCartService) UpdateQuantity(_ context.Context, userID, productID string, qty int) (*domain.Cart, error) {
	return s.record(userID, productID, qty)
}

func (s *stubCartService) RemoveItem(_ context.Context, userID, productID string) (*domain.Cart, error) {
	return s.record(userID, productID, 0)
}

func (s *stubCartService) Clear(_ context.Context, userID string) (*domain.Cart, error) {
	return s.record(userID, "", 0)
}

func (s *stubCartService) Summary(_ context.Context, userID string) (*cartsvc.Summary, error) {
	s.userID = userID
	return s.summary, s.err
}

type stubAddressService struct {
	addresses []domain.Address
	address   *domain.Address
	err       error
	input     addresssvc.Input
	id        string
}

func (s *stubAddressService) List(context.Context, string) ([]domain.Address, error) {
	return s.addresses, s.err
}

func (s *stubAddressService) Get(_ context.Context, _, id string) (*domain.Address, error) {
	s.id = id
	return s.address, s.err
}

func (s *stubAddressService) Create(_ context.Context, _ string, in addresssvc.Input) (*domain.Address, error) {
	s.input = in
	return s.address, s.err
}

func (s *stubAddressService) Update(_ context.Context, _, id string, in addresssvc.Input) (*domain.Address, error) {
	s.id, s.input = id, in
	return s.address, s.err
}

func (s *stubAddressService) Delete(_ context.Context, _, id string) error {
	s.id = id
	return s.err
}

type stubOrderService struct {
	order  *domain.Order
	orders []domain.Order
	err    error
	input  ordersvc.PlaceInput
}

func (s *stubOrderService) Place(_ context.Context, _ string, in ordersvc.PlaceInput) (*domain.Order, error) {
	s.input = in
	return s.order, s.err
}

func (s *stubOrderService) List(context.Context, string) ([]domain.Order, error) {
	return s.orders, s.err
}

func (s *stubOrderService) Get(context.Context, string, string) (*domain.Order, error) {
	return s.order, s.err
}

type stubPaymentService struct {
	secret string
	err    error
	input  paymentsvc.CreateIntentInput
}

func (s *stubPaymentService) CreateIntent(_ context.Context, _ string, in paymentsvc.CreateIntentInput) (string, error) {
	s.input = in
	return s.secret, s.err
}

type stubAnalyticsService struct {
	snapshot *domain.Analytics
	err      error
}

func (s *stubAnalyticsService) Snapshot(context.Context) (*domain.Analytics, error) {
	return s.snapshot, s.err
}

type stubChatService struct {
	reply chat.Reply
	err   error
	req   chat.Request
}

func (s *stubChatService) Respond(_ context.Context, req chat.Request) (chat.Reply, error) {
	s.req = req
	return s.reply, s.err
}

func stubDeps() Deps {
	return Deps{
		UserSvc:      &stubUserService{},
		ProductSvc:   &stubProductService{},
		CategorySvc:  &stubCategoryService{},
		CartSvc:      &stubCartService{},
		AddressSvc:   &stubAddressService{},
		OrderSvc:     &stubOrderService{},
		PaymentSvc:   &stubPaymentService{},
		AnalyticsSvc: &stubAnalyticsService{},
		ChatSvc:      &stubChatService{},
	}
}

func testRouter(t *testing.T, deps Deps, opts Options) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, deps, opts)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

// serve runs one request; a non-empty token is sent as a bearer credential.
func serve(router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
