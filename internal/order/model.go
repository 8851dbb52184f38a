package order

import (
	"time"

	"dialdish/internal/extract"
)

// Order is the structured result of a completed call, shaped for the
// downstream fulfillment webhook. EstimatedReadyAt serializes as
// RFC 3339. Assembled once per call, submitted at most once.
type Order struct {
	Customer            extract.Customer    `json:"customer"`
	Lines               []extract.Line      `json:"items"`
	Type                extract.Fulfillment `json:"order_type"`
	SpecialInstructions string              `json:"special_instructions"`
	EstimatedReadyAt    time.Time           `json:"estimated_ready_time"`
	Subtotal            float64             `json:"subtotal"`
	Tax                 float64             `json:"tax"`
	Total               float64             `json:"total"`
}
