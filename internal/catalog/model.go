package catalog

import (
	"time"

	"nailstore-client/internal/localize"

	"github.com/shopspring/decimal"
)

// Product is the backend-owned product record; the client holds a
// read-mostly copy. Price is the USD list price before discount.
type Product struct {
	ID          string          `json:"id"`
	Name        localize.Text   `json:"name"`
	Description localize.Text   `json:"description"`
	Category    localize.Text   `json:"category"`
	Price       decimal.Decimal `json:"price"`
	DiscountPct decimal.Decimal `json:"discount"`
	Quantity    int             `json:"quantity"`
	Sold        int             `json:"sold"`
	Rating      float64         `json:"rating"`
	Image       string          `json:"image"`
	Images      []string        `json:"images,omitempty"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
}

var oneHundred = decimal.NewFromInt(100)

// EffectivePrice is price × (1 − discount/100), floored at zero. A discount
// above 100% never produces a negative price.
func (p Product) EffectivePrice() decimal.Decimal {
	price := p.Price.Mul(oneHundred.Sub(p.DiscountPct)).Div(oneHundred)
	if price.IsNegative() {
		return decimal.Zero
	}
	return price
}

// InStock reports whether at least qty units can be ordered.
func (p Product) InStock(qty int) bool {
	return qty > 0 && qty <= p.Quantity
}

// SoldUpdate is one entry of the best-effort sold-counter request sent
// after checkout.
type SoldUpdate struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
