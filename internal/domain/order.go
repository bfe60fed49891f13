package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCOD  PaymentMethod = "cod"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentCOD
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// InitialPaymentStatus: card payments are confirmed client-side before the
// order is placed, cash on delivery is collected later.
func InitialPaymentStatus(m PaymentMethod) PaymentStatus {
	if m == PaymentCard {
		return PaymentPaid
	}
	return PaymentPending
}

// OrderItem is a line frozen at order time.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
}

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	OrderNumber     string          `json:"orderNumber"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	OrderStatus     OrderStatus     `json:"orderStatus"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingFee     decimal.Decimal `json:"shippingFee"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
	PaymentIntentID *string         `json:"paymentIntentId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// SnapshotItems copies each cart line into an order line using the product
// data populated on the cart.
func SnapshotItems(c Cart) []OrderItem {
	items := make([]OrderItem, 0, len(c.Items))
	for _, it := range c.Items {
		name := it.ProductID
		image := PlaceholderImage
		if it.Product != nil {
			if it.Product.Name != "" {
				name = it.Product.Name
			}
			if len(it.Product.Images) > 0 && it.Product.Images[0] != "" {
				image = it.Product.Images[0]
			}
		}
		items = append(items, OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Name:      name,
			Image:     image,
		})
	}
	return items
}

// OrderNumber formats ORD-<epoch millis>-<sequence padded to 4>.
func OrderNumber(at time.Time, seq int64) string {
	return fmt.Sprintf("ORD-%d-%04d", at.UnixMilli(), seq)
}

// FallbackOrderNumber formats ORD-<epoch millis>-<code> for when no sequence
// could be derived.
func FallbackOrderNumber(at time.Time, code string) string {
	return fmt.Sprintf("ORD-%d-%s", at.UnixMilli(), code)
}
