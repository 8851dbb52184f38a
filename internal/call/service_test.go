package call

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dialdish/internal/catalog"
	"dialdish/internal/extract"
	"dialdish/internal/order"
	"dialdish/internal/session"
	"dialdish/internal/transcript"
)

const menuJSON = `{
	"menu": {
		"Maki Rolls": [{"name": "California Roll", "price": 7.28}],
		"Sushi": [{"name": "Salmon Sushi", "price": 3.98}]
	}
}`

type countingSink struct {
	mu    sync.Mutex
	calls int
	err   error
	last  *order.Order
}

func (s *countingSink) Submit(ctx context.Context, ord *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = ord
	return s.err
}

func (s *countingSink) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testService(t *testing.T, snk *countingSink) (*Service, *order.MemoryArchive) {
	t.Helper()

	store, err := catalog.NewStore(func() (*catalog.Catalog, error) {
		return catalog.LoadBytes([]byte(menuJSON), catalog.FormatJSON)
	})
	if err != nil {
		t.Fatalf("catalog store: %v", err)
	}

	archive := order.NewMemoryArchive()
	assembler := order.NewAssembler(extract.New(extract.DefaultVocabulary()), 0.13, 20*time.Minute)
	svc := NewService(session.NewManager(), store, assembler, snk, archive, 5*time.Second)
	return svc, archive
}

func runCompletedCall(t *testing.T, svc *Service) Result {
	t.Helper()

	svc.Connected("call-1")
	utterances := []struct {
		speaker transcript.Speaker
		text    string
	}{
		{transcript.SpeakerAgent, "Thank you for calling, dine in or takeout?"},
		{transcript.SpeakerCustomer, "Takeout. Two california roll and a salmon sushi, my name is hana tanaka"},
		{transcript.SpeakerCustomer, "You can reach me at 519-988-1688"},
		{transcript.SpeakerAgent, "Perfect, let me process this order for you"},
	}
	for _, u := range utterances {
		if err := svc.Utterance("call-1", u.speaker, u.text); err != nil {
			t.Fatalf("utterance: %v", err)
		}
	}

	result, err := svc.Disconnected("call-1")
	if err != nil {
		t.Fatalf("disconnected: %v", err)
	}
	return result
}

func TestDisconnect_SubmitsCompletedOrder(t *testing.T) {
	snk := &countingSink{}
	svc, archive := testService(t, snk)

	result := runCompletedCall(t, svc)

	if !result.Submitted {
		t.Fatalf("expected submission, got %+v", result)
	}
	if snk.Calls() != 1 {
		t.Fatalf("expected 1 sink call, got %d", snk.Calls())
	}
	if snk.last.Customer.Name != "Hana Tanaka" {
		t.Errorf("unexpected customer: %+v", snk.last.Customer)
	}
	if len(snk.last.Lines) != 2 || snk.last.Total != 20.95 {
		t.Errorf("unexpected order: %+v", snk.last)
	}

	records, err := archive.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if len(records) != 1 || records[0].Status != order.StatusSubmitted {
		t.Fatalf("expected one SUBMITTED record, got %+v", records)
	}
	if records[0].CallID != "call-1" {
		t.Errorf("expected call-1 record, got %q", records[0].CallID)
	}
}

func TestDisconnect_IncompleteConversationSubmitsNothing(t *testing.T) {
	snk := &countingSink{}
	svc, archive := testService(t, snk)

	svc.Connected("call-1")
	_ = svc.Utterance("call-1", transcript.SpeakerCustomer, "two california roll please")
	result, err := svc.Disconnected("call-1")
	if err != nil {
		t.Fatalf("disconnected: %v", err)
	}

	if result.Submitted || result.Order != nil {
		t.Fatalf("expected nothing submitted, got %+v", result)
	}
	if snk.Calls() != 0 {
		t.Fatalf("sink must not be called, got %d calls", snk.Calls())
	}

	records, _ := archive.ListRecent(context.Background(), 10)
	if len(records) != 0 {
		t.Fatalf("nothing should be archived, got %+v", records)
	}
}

// Teardown must proceed on sink failure: no error escalates, the order
// lands in the archive as FAILED with its full payload.
func TestDisconnect_SinkFailureIsContained(t *testing.T) {
	snk := &countingSink{err: errors.New("endpoint down")}
	svc, archive := testService(t, snk)

	result := runCompletedCall(t, svc)

	if result.Submitted {
		t.Fatal("submission should have failed")
	}
	if result.Order == nil {
		t.Fatal("order should still be reported for visibility")
	}

	failed, err := archive.ListFailed(context.Background(), 10)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if len(failed) != 1 {
		t.Fatalf("expected 1 FAILED record, got %+v", failed)
	}
	if failed[0].Error == "" || failed[0].Order == nil {
		t.Errorf("failed record must carry error and payload: %+v", failed[0])
	}
}

func TestDisconnect_SecondDisconnectIsUnknownCall(t *testing.T) {
	snk := &countingSink{}
	svc, _ := testService(t, snk)

	runCompletedCall(t, svc)

	if _, err := svc.Disconnected("call-1"); !errors.Is(err, ErrUnknownCall) {
		t.Fatalf("expected ErrUnknownCall, got %v", err)
	}
	if snk.Calls() != 1 {
		t.Fatalf("duplicate disconnect must not resubmit, got %d calls", snk.Calls())
	}
}

func TestUtterance_UnknownCall(t *testing.T) {
	svc, _ := testService(t, &countingSink{})

	err := svc.Utterance("ghost", transcript.SpeakerCustomer, "hello?")
	if !errors.Is(err, ErrUnknownCall) {
		t.Fatalf("expected ErrUnknownCall, got %v", err)
	}
}

func TestConcurrentCalls_AreIndependent(t *testing.T) {
	snk := &countingSink{}
	svc, _ := testService(t, snk)

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b", "c"} {
		wg.Add(1)
		go func(callID string) {
			defer wg.Done()
			svc.Connected(callID)
			_ = svc.Utterance(callID, transcript.SpeakerCustomer, "one salmon sushi")
			_ = svc.Utterance(callID, transcript.SpeakerAgent, "order total is $4.50, thanks")
			if _, err := svc.Disconnected(callID); err != nil {
				t.Errorf("call %s: %v", callID, err)
			}
		}(id)
	}
	wg.Wait()

	if snk.Calls() != 3 {
		t.Fatalf("expected one submission per call, got %d", snk.Calls())
	}
}
