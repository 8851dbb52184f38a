package order

import (
	"fmt"
	"time"

	"dialdish/internal/catalog"
	"dialdish/internal/extract"
	"dialdish/internal/pricing"
	"dialdish/internal/transcript"
)

// Assembler combines extractor output into a validated, priced order.
type Assembler struct {
	extractor   *extract.Extractor
	taxRate     float64
	readyOffset time.Duration
}

func NewAssembler(extractor *extract.Extractor, taxRate float64, readyOffset time.Duration) *Assembler {
	return &Assembler{
		extractor:   extractor,
		taxRate:     taxRate,
		readyOffset: readyOffset,
	}
}

// Assemble builds the order for a finished call. A nil order with nil
// error means "nothing to submit": either the conversation never
// reached a completed-order state, or it did but no catalog item was
// detected. Neither is an error.
func (a *Assembler) Assemble(tr *transcript.Transcript, cat *catalog.Catalog, now time.Time) (*Order, error) {
	if !a.extractor.OrderComplete(tr) {
		return nil, nil
	}

	lines := a.extractor.Items(tr, cat)
	if len(lines) == 0 {
		return nil, nil
	}

	priceLines := make([]pricing.Line, len(lines))
	for i, line := range lines {
		priceLines[i] = pricing.Line{Price: line.Price, Quantity: line.Quantity}
	}
	quote, err := pricing.Price(priceLines, a.taxRate)
	if err != nil {
		return nil, fmt.Errorf("pricing order: %w", err)
	}

	return &Order{
		Customer:            a.extractor.Customer(tr),
		Lines:               lines,
		Type:                a.extractor.Fulfillment(tr),
		SpecialInstructions: a.extractor.SpecialInstructions(tr),
		EstimatedReadyAt:    extract.EstimateReadyTime(now, a.readyOffset),
		Subtotal:            quote.Subtotal,
		Tax:                 quote.Tax,
		Total:               quote.Total,
	}, nil
}
