package order

import (
	"context"
	"time"
)

// Submission outcomes recorded in the archive.
const (
	StatusSubmitted = "SUBMITTED"
	StatusFailed    = "FAILED"
)

// Record is one archived order with its submission outcome. Failed
// rows carry the full payload so an operator can replay them by hand
// (or with cmd/replay) once the endpoint is back.
type Record struct {
	ID        string    `json:"id"`
	CallID    string    `json:"call_id"`
	Order     *Order    `json:"order"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Archive persists assembled orders and their submission outcomes.
type Archive interface {
	Save(ctx context.Context, rec Record) error
	ListRecent(ctx context.Context, limit int) ([]Record, error)
	ListFailed(ctx context.Context, limit int) ([]Record, error)
	MarkSubmitted(ctx context.Context, id string) error
}
