package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/chat"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	addressrepo "storefront/internal/repository/address"
	analyticsrepo "storefront/internal/repository/analytics"
	cartrepo "storefront/internal/repository/cart"
	categoryrepo "storefront/internal/repository/category"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	userrepo "storefront/internal/repository/user"
	addresssvc "storefront/internal/service/address"
	analyticssvc "storefront/internal/service/analytics"
	cartsvc "storefront/internal/service/cart"
	categorysvc "storefront/internal/service/category"
	ordersvc "storefront/internal/service/order"
	paymentsvc "storefront/internal/service/payment"
	productsvc "storefront/internal/service/product"
	usersvc "storefront/internal/service/user"
)

func main() {
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	if err := config.LoadDotEnv(); err != nil {
		logger.Fatalf("load .env: %v", err)
	}
	cfg := config.FromEnv()

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	productService := productsvc.New(productRepo)
	categoryService := categorysvc.New(categoryrepo.NewPostgres(dbpool, logger))
	cartRepo := cartrepo.NewPostgres(dbpool, logger)
	cartService := cartsvc.New(cartRepo, productRepo)
	addressRepo := addressrepo.NewPostgres(dbpool, logger)
	addressService := addresssvc.New(addressRepo)
	orderService := ordersvc.New(orderrepo.NewPostgres(dbpool, logger), cartRepo, addressRepo, logger)
	userService := usersvc.New(userrepo.NewPostgres(dbpool, logger), cfg.JWTSecret, cfg.TokenTTL)
	analyticsService := analyticssvc.New(analyticsrepo.NewPostgres(dbpool, logger))

	processor := paymentsvc.Disabled()
	if cfg.StripeSecretKey != "" {
		processor = paymentsvc.NewStripe(cfg.StripeSecretKey, nil)
	} else {
		logger.Printf("STRIPE_SECRET_KEY not set, card payments disabled")
	}
	paymentService := paymentsvc.New(processor, addressRepo, cfg.PaymentCurrency, logger)

	chatService := chat.New(productService, orderService, analyticsService, cartService, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		UserSvc:      userService,
		ProductSvc:   productService,
		CategorySvc:  categoryService,
		CartSvc:      cartService,
		AddressSvc:   addressService,
		OrderSvc:     orderService,
		PaymentSvc:   paymentService,
		AnalyticsSvc: analyticsService,
		ChatSvc:      chatService,
	}, httpserver.Options{
		CORSOrigins: cfg.CORSOrigins,
		Production:  cfg.IsProduction(),
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
