package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AnalyticsOverview struct {
	TotalOrders       int             `json:"totalOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalUsers        int             `json:"totalUsers"`
	TotalProducts     int             `json:"totalProducts"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

type CategorySales struct {
	Name    string          `json:"name"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type RecentOrder struct {
	OrderNumber string          `json:"orderNumber"`
	Customer    string          `json:"customer"`
	Amount      decimal.Decimal `json:"amount"`
	Status      OrderStatus     `json:"status"`
	Date        time.Time       `json:"date"`
}

type StatusCount struct {
	Status OrderStatus `json:"status"`
	Count  int         `json:"count"`
}

type Analytics struct {
	Overview     AnalyticsOverview `json:"overview"`
	Categories   []CategorySales   `json:"categories"`
	RecentOrders []RecentOrder     `json:"recentOrders"`
	OrderStatus  []StatusCount     `json:"orderStatus"`
}
