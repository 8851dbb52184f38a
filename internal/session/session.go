package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"dialdish/internal/order"
	"dialdish/internal/sink"
	"dialdish/internal/transcript"

	"github.com/google/uuid"
)

// ErrAlreadySubmitted means SubmitOnce was invoked a second time for
// the same call. The duplicate never reaches the sink.
var ErrAlreadySubmitted = errors.New("order already submitted for this call")

// Session is the per-call state: the transcript under construction and
// the submission gate. No process-wide mutable state; each call owns
// its own instance.
type Session struct {
	ID          string
	CallID      string
	ConnectedAt time.Time

	mu         sync.Mutex
	transcript *transcript.Transcript
	submitted  bool
}

func New(callID string, now time.Time) *Session {
	return &Session{
		ID:          uuid.New().String(),
		CallID:      callID,
		ConnectedAt: now,
		transcript:  transcript.New(),
	}
}

// Append records one utterance.
func (s *Session) Append(speaker transcript.Speaker, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript.Append(speaker, text)
}

// Transcript returns a snapshot copy for extraction.
func (s *Session) Transcript() *transcript.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()

	utterances := make([]transcript.Utterance, len(s.transcript.Utterances))
	copy(utterances, s.transcript.Utterances)
	return transcript.New(utterances...)
}

// SubmitOnce enforces the at-most-once contract. The gate flips before
// the sink is called, so even a failed first attempt consumes the one
// allowed submission; upstream lifecycle events should fire once, but
// the contract holds if they do not.
func (s *Session) SubmitOnce(ctx context.Context, ord *order.Order, snk sink.Sink) error {
	s.mu.Lock()
	if s.submitted {
		s.mu.Unlock()
		return ErrAlreadySubmitted
	}
	s.submitted = true
	s.mu.Unlock()

	return snk.Submit(ctx, ord)
}

// Submitted reports whether the gate has been consumed.
func (s *Session) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}
