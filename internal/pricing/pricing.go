// Package pricing holds the shipping and tax policy shared by the cart
// preview and order placement.
package pricing

import "github.com/shopspring/decimal"

var (
	FreeShippingThreshold = decimal.NewFromInt(50)
	FlatShippingFee       = decimal.NewFromInt(5)
	TaxRate               = decimal.RequireFromString("0.10")
)

// Places is the number of decimal places money is rounded to before it is
// persisted or displayed.
const Places = 2

type Breakdown struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shippingFee"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

// ShippingFee is free at or above the threshold, flat otherwise.
func ShippingFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FlatShippingFee
}

func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate).Round(Places)
}

// Quote prices a subtotal. Every field is rounded to Places.
func Quote(subtotal decimal.Decimal) Breakdown {
	sub := subtotal.Round(Places)
	fee := ShippingFee(sub).Round(Places)
	tax := Tax(sub)
	return Breakdown{
		Subtotal:    sub,
		ShippingFee: fee,
		Tax:         tax,
		Total:       sub.Add(fee).Add(tax).Round(Places),
	}
}

// MinorUnits converts an amount to integer cents, rounding half away from zero.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
