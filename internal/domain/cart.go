package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Product   *ProductSummary `json:"product,omitempty"`
}

// Cart is the per-user collection of pending purchase lines. Totals are
// derived from Items and rebuilt by Recalculate after every mutation.
type Cart struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	Items      []CartItem      `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func NewCart(userID string) *Cart {
	return &Cart{UserID: userID, Items: []CartItem{}, TotalPrice: decimal.Zero}
}

// Recalculate rebuilds TotalItems and TotalPrice from the lines.
func (c *Cart) Recalculate() {
	items := 0
	total := decimal.Zero
	for _, it := range c.Items {
		items += it.Quantity
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	c.TotalItems = items
	c.TotalPrice = total
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

func (c *Cart) indexOf(productID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// Contains reports whether the cart has a line for productID.
func (c *Cart) Contains(productID string) bool {
	return c.indexOf(productID) >= 0
}

// Quantity returns the line quantity for productID, or 0.
func (c *Cart) Quantity(productID string) int {
	if i := c.indexOf(productID); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

// AddItem appends a line priced at the product's current price, or bumps the
// quantity of the existing line. Stock is checked against the cumulative
// quantity; the price of an existing line is not refreshed.
func (c *Cart) AddItem(p Product, qty int) error {
	if qty < 1 {
		return Invalid("Quantity must be at least 1")
	}
	if !p.IsActive {
		return InvalidBecause(ErrProductUnavailable)
	}
	if i := c.indexOf(p.ID); i >= 0 {
		next := c.Items[i].Quantity + qty
		if p.Stock < next {
			return InvalidBecause(ErrInsufficientStock)
		}
		c.Items[i].Quantity = next
		c.Items[i].Product = p.Summary()
	} else {
		if p.Stock < qty {
			return InvalidBecause(ErrInsufficientStock)
		}
		c.Items = append(c.Items, CartItem{
			ProductID: p.ID,
			Quantity:  qty,
			Price:     p.Price,
			Product:   p.Summary(),
		})
	}
	c.Recalculate()
	return nil
}

// SetQuantity overwrites the quantity of an existing line. Zero removes the
// line and skips the stock check.
func (c *Cart) SetQuantity(p Product, qty int) error {
	if qty < 0 {
		return Invalid("Quantity cannot be negative")
	}
	i := c.indexOf(p.ID)
	if i < 0 {
		return ErrNotFound
	}
	if qty == 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		c.Recalculate()
		return nil
	}
	if p.Stock < qty {
		return InvalidBecause(ErrInsufficientStock)
	}
	c.Items[i].Quantity = qty
	c.Recalculate()
	return nil
}

// RemoveItem drops the line for productID if present.
func (c *Cart) RemoveItem(productID string) {
	if i := c.indexOf(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
	c.Recalculate()
}

func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.Recalculate()
}

// Clone returns a deep copy safe to mutate independently.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	out := *c
	out.Items = make([]CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return &out
}
