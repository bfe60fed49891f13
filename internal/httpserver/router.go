package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"storefront/internal/chat"
	"storefront/internal/domain"
	addresssvc "storefront/internal/service/address"
	cartsvc "storefront/internal/service/cart"
	ordersvc "storefront/internal/service/order"
	paymentsvc "storefront/internal/service/payment"
	usersvc "storefront/internal/service/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserService interface {
	Register(ctx context.Context, in usersvc.RegisterInput) (*usersvc.Session, error)
	Login(ctx context.Context, email, password string) (*usersvc.Session, error)
	Authenticate(token string) (string, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
}

type ProductService interface {
	List(ctx context.Context, filter domain.ProductFilter) (*domain.ProductPage, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type CategoryService interface {
	List(ctx context.Context) ([]domain.CatalogCategory, error)
}

type CartService interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, productID string, qty int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, userID, productID string, qty int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) (*domain.Cart, error)
	Summary(ctx context.Context, userID string) (*cartsvc.Summary, error)
}

type AddressService interface {
	List(ctx context.Context, userID string) ([]domain.Address, error)
	Get(ctx context.Context, userID, id string) (*domain.Address, error)
	Create(ctx context.Context, userID string, in addresssvc.Input) (*domain.Address, error)
	Update(ctx context.Context, userID, id string, in addresssvc.Input) (*domain.Address, error)
	Delete(ctx context.Context, userID, id string) error
}

type OrderService interface {
	Place(ctx context.Context, userID string, in ordersvc.PlaceInput) (*domain.Order, error)
	List(ctx context.Context, userID string) ([]domain.Order, error)
	Get(ctx context.Context, userID, id string) (*domain.Order, error)
}

type PaymentService interface {
	CreateIntent(ctx context.Context, userID string, in paymentsvc.CreateIntentInput) (string, error)
}

type AnalyticsService interface {
	Snapshot(ctx context.Context) (*domain.Analytics, error)
}

type ChatService interface {
	Respond(ctx context.Context, req chat.Request) (chat.Reply, error)
}

// Deps are the services behind the API. Every field is required.
type Deps struct {
	UserSvc      UserService
	ProductSvc   ProductService
	CategorySvc  CategoryService
	CartSvc      CartService
	AddressSvc   AddressService
	OrderSvc     OrderService
	PaymentSvc   PaymentService
	AnalyticsSvc AnalyticsService
	ChatSvc      ChatService
}

func (d Deps) validate() error {
	var missing []string
	check := func(name string, ok bool) {
		if !ok {
			missing = append(missing, name)
		}
	}
	check("UserSvc", d.UserSvc != nil)
	check("ProductSvc", d.ProductSvc != nil)
	check("CategorySvc", d.CategorySvc != nil)
	check("CartSvc", d.CartSvc != nil)
	check("AddressSvc", d.AddressSvc != nil)
	check("OrderSvc", d.OrderSvc != nil)
	check("PaymentSvc", d.PaymentSvc != nil)
	check("AnalyticsSvc", d.AnalyticsSvc != nil)
	check("ChatSvc", d.ChatSvc != nil)
	if len(missing) > 0 {
		return errors.New("httpserver: missing dependencies: " + strings.Join(missing, ", "))
	}
	return nil
}

// Options tune the router for an environment.
type Options struct {
	CORSOrigins []string
	// Production hides internal error detail from 500 responses.
	Production bool
}

type api struct {
	deps       Deps
	logger     *log.Logger
	production bool
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, opts Options) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	useJSONFieldNames()

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), corsMiddleware(opts.CORSOrigins))
	router.NoRoute(func(c *gin.Context) { fail(c, http.StatusNotFound, "Route not found") })
	router.NoMethod(func(c *gin.Context) { fail(c, http.StatusMethodNotAllowed, "Method not allowed") })

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	a := &api{deps: deps, logger: logger, production: opts.Production}
	requireAuth := authMiddleware(deps.UserSvc, true)
	optionalAuth := authMiddleware(deps.UserSvc, false)

	r := router.Group("/api")
	r.GET("/health", apiHealthHandler(db))

	auth := r.Group("/auth")
	auth.POST("/register", a.register)
	auth.POST("/login", a.login)
	auth.GET("/me", requireAuth, a.me)

	r.GET("/products", a.listProducts)
	r.GET("/products/:id", a.getProduct)
	r.GET("/categories", a.listCategories)

	cart := r.Group("/cart", requireAuth)
	cart.GET("", a.getCart)
	cart.GET("/summary", a.cartSummary)
	cart.POST("/add", a.addToCart)
	cart.PUT("/update", a.updateCart)
	cart.DELETE("/remove", a.removeFromCart)
	cart.DELETE("/clear", a.clearCart)

	for _, base := range []string{"/addresses", "/address"} {
		addresses := r.Group(base, requireAuth)
		addresses.GET("", a.listAddresses)
		addresses.POST("", a.createAddress)
		addresses.GET("/:id", a.getAddress)
		addresses.PUT("/:id", a.updateAddress)
		addresses.DELETE("/:id", a.deleteAddress)
	}

	orders := r.Group("/orders", requireAuth)
	orders.GET("", a.listOrders)
	orders.POST("/create", a.createOrder)
	orders.GET("/:id", a.getOrder)

	r.POST("/payment/create-payment-intent", requireAuth, a.createPaymentIntent)
	r.GET("/analytics", requireAuth, a.analytics)
	r.POST("/chat", optionalAuth, a.chat)

	return router, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
