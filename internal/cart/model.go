package cart

import (
	"nailstore-client/internal/localize"

	"github.com/shopspring/decimal"
)

// Line is one product entry in the cart. UnitPrice is the discount-adjusted
// price captured when the line was added; later catalog changes do not
// touch it.
type Line struct {
	ProductID     string          `json:"productId"`
	Name          localize.Text   `json:"name"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Quantity      int             `json:"quantity"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	CategoryLabel localize.Text   `json:"categoryLabel,omitempty"`
}

// LineTotal is UnitPrice × Quantity.
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
