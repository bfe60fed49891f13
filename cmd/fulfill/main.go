package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/domain"
	addressrepo "storefront/internal/repository/address"
	cartrepo "storefront/internal/repository/cart"
	orderrepo "storefront/internal/repository/order"
	ordersvc "storefront/internal/service/order"
)

func main() {
	var (
		orderID       string
		orderStatus   string
		paymentStatus string
	)
	flag.StringVar(&orderID, "order", "", "Order id to update")
	flag.StringVar(&orderStatus, "status", "", "New order status (pending, confirmed, processing, shipped, delivered, cancelled)")
	flag.StringVar(&paymentStatus, "payment", "", "New payment status (pending, paid, failed, refunded)")
	flag.Parse()

	if orderID == "" || orderStatus == "" || paymentStatus == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.New(os.Stdout, "[fulfill] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	if err := config.LoadDotEnv(); err != nil {
		logger.Fatalf("load .env: %v", err)
	}
	cfg := config.FromEnv()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	svc := ordersvc.New(
		orderrepo.NewPostgres(pool, logger),
		cartrepo.NewPostgres(pool, logger),
		addressrepo.NewPostgres(pool, logger),
		logger,
	)
	o, err := svc.UpdateStatus(ctx, orderID, domain.OrderStatus(orderStatus), domain.PaymentStatus(paymentStatus))
	if err != nil {
		logger.Fatalf("update order %s: %v", orderID, err)
	}

	fmt.Printf("Order %s is now %s (payment %s)\n", o.OrderNumber, o.OrderStatus, o.PaymentStatus)
}
