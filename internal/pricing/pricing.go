package pricing

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrBadQuantity = errors.New("line quantity must be positive")
	ErrBadPrice    = errors.New("line price must be non-negative")
)

// Line is the minimal priceable view of an order line. Price is the
// snapshot taken at extraction time, in dollars.
type Line struct {
	Price    float64
	Quantity int
}

// Quote is the priced order: dollars, two decimals.
type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Price computes subtotal, tax and total for the given lines. All
// arithmetic runs in integer cents; tax and total round half away from
// zero to the nearest cent. Lines are re-validated here even though the
// catalog guarantees them: a bad line reaching this point is a bug, and
// it should surface loudly.
func Price(lines []Line, taxRate float64) (Quote, error) {
	if taxRate < 0 {
		return Quote{}, fmt.Errorf("tax rate %v: %w", taxRate, ErrBadPrice)
	}

	var subtotalCents int64
	for i, line := range lines {
		if line.Quantity <= 0 {
			return Quote{}, fmt.Errorf("line %d (qty %d): %w", i, line.Quantity, ErrBadQuantity)
		}
		if line.Price < 0 {
			return Quote{}, fmt.Errorf("line %d (price %v): %w", i, line.Price, ErrBadPrice)
		}
		subtotalCents += cents(line.Price) * int64(line.Quantity)
	}

	taxCents := int64(math.Round(float64(subtotalCents) * taxRate))

	return Quote{
		Subtotal: dollars(subtotalCents),
		Tax:      dollars(taxCents),
		Total:    dollars(subtotalCents + taxCents),
	}, nil
}

func cents(d float64) int64 {
	return int64(math.Round(d * 100))
}

func dollars(c int64) float64 {
	return float64(c) / 100
}
