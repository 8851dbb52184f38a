// Package call handles the lifecycle events posted by the telephony
// pipeline: connected, utterances while the call runs, disconnected.
// Disconnect triggers the one sequential unit of work per call:
// assemble, archive, submit once.
package call

import (
	"context"
	"errors"
	"log"
	"time"

	"dialdish/internal/catalog"
	"dialdish/internal/order"
	"dialdish/internal/session"
	"dialdish/internal/sink"
	"dialdish/internal/transcript"

	"github.com/google/uuid"
)

var ErrUnknownCall = errors.New("no live session for call")

// Result reports what the disconnect path did with a call.
type Result struct {
	Order     *order.Order
	Submitted bool
	Reason    string
}

type Service struct {
	sessions      *session.Manager
	store         *catalog.Store
	assembler     *order.Assembler
	sink          sink.Sink
	archive       order.Archive
	submitTimeout time.Duration

	now func() time.Time
}

func NewService(
	sessions *session.Manager,
	store *catalog.Store,
	assembler *order.Assembler,
	snk sink.Sink,
	archive order.Archive,
	submitTimeout time.Duration,
) *Service {
	return &Service{
		sessions:      sessions,
		store:         store,
		assembler:     assembler,
		sink:          snk,
		archive:       archive,
		submitTimeout: submitTimeout,
		now:           time.Now,
	}
}

// Connected opens (or reuses) the session for a call.
func (s *Service) Connected(callID string) *session.Session {
	sess := s.sessions.Start(callID, s.now())
	log.Printf("CALL_CONNECTED call=%s session=%s active=%d", callID, sess.ID, s.sessions.Active())
	return sess
}

// Utterance appends one transcript turn to a live call.
func (s *Service) Utterance(callID string, speaker transcript.Speaker, text string) error {
	sess, ok := s.sessions.Get(callID)
	if !ok {
		return ErrUnknownCall
	}
	sess.Append(speaker, text)
	return nil
}

// Disconnected runs the post-call unit of work. It never returns an
// error for submission failures: the call is over, teardown must
// proceed and resources must be released whatever the webhook does.
// The second disconnect for a call is a no-op.
func (s *Service) Disconnected(callID string) (Result, error) {
	sess, ok := s.sessions.End(callID)
	if !ok {
		return Result{}, ErrUnknownCall
	}

	tr := sess.Transcript()
	log.Printf("CALL_DISCONNECTED call=%s utterances=%d", callID, tr.Len())

	ord, err := s.assembler.Assemble(tr, s.store.Current(), s.now())
	if err != nil {
		// Only reachable through bad pricing inputs, which the
		// catalog load already rejects.
		log.Printf("ORDER_ASSEMBLY_FAILED call=%s error=%v", callID, err)
		return Result{Reason: "assembly failed"}, nil
	}
	if ord == nil {
		log.Printf("ORDER_NOT_COMPLETED call=%s", callID)
		return Result{Reason: "no completed order in conversation"}, nil
	}

	// Detached context: the submission must not outlive its own
	// timeout, and must not be cancelled by transport teardown.
	ctx, cancel := context.WithTimeout(context.Background(), s.submitTimeout)
	defer cancel()

	submitErr := sess.SubmitOnce(ctx, ord, s.sink)

	rec := order.Record{
		ID:        uuid.New().String(),
		CallID:    callID,
		Order:     ord,
		Status:    order.StatusSubmitted,
		CreatedAt: s.now(),
	}
	if submitErr != nil {
		rec.Status = order.StatusFailed
		rec.Error = submitErr.Error()
	}
	if err := s.archive.Save(context.Background(), rec); err != nil {
		log.Printf("ORDER_ARCHIVE_FAILED call=%s error=%v", callID, err)
	}

	if submitErr != nil {
		log.Printf("ORDER_SUBMISSION_FAILED call=%s error=%v", callID, submitErr)
		return Result{Order: ord, Reason: submitErr.Error()}, nil
	}

	log.Printf("ORDER_PROCESSED call=%s items=%d total=%.2f", callID, len(ord.Lines), ord.Total)
	return Result{Order: ord, Submitted: true}, nil
}
