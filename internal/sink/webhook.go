// Package sink delivers assembled orders to the downstream fulfillment
// system.
package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"dialdish/internal/order"
)

// Sink accepts a completed order. Exactly one attempt is made per
// call; retry policy belongs to the caller, not here.
type Sink interface {
	Submit(ctx context.Context, ord *order.Order) error
}

// SubmissionError is a transient delivery failure: the endpoint
// answered with a non-2xx status. The call has already ended, so there
// is nobody to report it to; it is logged and archived for replay.
type SubmissionError struct {
	Status int
	Body   string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("webhook returned %d: %s", e.Status, e.Body)
}

// Webhook POSTs the order as JSON. A 2xx response is the only
// acknowledgment; everything else, including transport errors, is a
// submission failure.
type Webhook struct {
	url    string
	client *http.Client
}

func NewWebhook(url string, timeout time.Duration) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (w *Webhook) Submit(ctx context.Context, ord *order.Order) error {
	payload, err := json.Marshal(ord)
	if err != nil {
		return fmt.Errorf("marshaling order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		// Full payload in the log so the order can be replayed by hand
		log.Printf("ORDER_SUBMIT_FAILED transport error=%v payload=%s", err, payload)
		return fmt.Errorf("posting order: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("ORDER_SUBMIT_FAILED status=%d payload=%s", resp.StatusCode, payload)
		return &SubmissionError{Status: resp.StatusCode, Body: string(body)}
	}

	log.Printf("ORDER_SUBMITTED status=%d total=%.2f", resp.StatusCode, ord.Total)
	return nil
}
