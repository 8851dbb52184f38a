package order

import (
	"context"
	"sync"
)

// MemoryArchive keeps records in process memory. Used in tests and
// when no DATABASE_URL is configured; recovery of failed orders then
// relies on the payload logged at submission time.
type MemoryArchive struct {
	mu      sync.Mutex
	records []Record
}

func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{}
}

func (r *MemoryArchive) Save(ctx context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func (r *MemoryArchive) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Record
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}

func (r *MemoryArchive) ListFailed(ctx context.Context, limit int) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Record
	for _, rec := range r.records {
		if rec.Status == StatusFailed && len(out) < limit {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *MemoryArchive) MarkSubmitted(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID == id {
			r.records[i].Status = StatusSubmitted
			r.records[i].Error = ""
		}
	}
	return nil
}
