package ops

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// collectUntil drains snapshots from ch until pred is satisfied or the
// timeout elapses, returning everything seen.
func collectUntil(t *testing.T, ch <-chan Snapshot[string], pred func(Snapshot[string]) bool) []Snapshot[string] {
	t.Helper()
	var seen []Snapshot[string]
	deadline := time.After(5 * time.Second)
	for {
		select {
		case s := <-ch:
			seen = append(seen, s)
			if pred(s) {
				return seen
			}
		case <-deadline:
			t.Fatalf("timed out waiting for snapshot; saw %d transitions", len(seen))
		}
	}
}

func newObserved(kind Kind, opts ...TrackerOption[string]) (*Tracker[string], chan Snapshot[string]) {
	ch := make(chan Snapshot[string], 32)
	opts = append(opts, WithNotify[string](func(s Snapshot[string]) { ch <- s }))
	return NewTracker[string](kind, opts...), ch
}

func TestSynchronousSuccessPath(t *testing.T) {
	tr, ch := newObserved(KindChatCompletion)

	err := tr.Start(context.Background(), func(ctx context.Context) (Outcome[string], error) {
		return Outcome[string]{Value: "hello"}, nil
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	seen := collectUntil(t, ch, func(s Snapshot[string]) bool { return s.Status.Terminal() })
	if got := seen[0].Status; got != StatusPending {
		t.Fatalf("first observed status = %s, want pending", got)
	}
	final := seen[len(seen)-1]
	if final.Status != StatusSucceeded {
		t.Fatalf("final status = %s, want succeeded", final.Status)
	}
	if final.Result == nil || *final.Result != "hello" {
		t.Fatalf("result = %v, want hello", final.Result)
	}
	if final.Err != nil {
		t.Fatalf("error should be absent on success, got %v", final.Err)
	}
}

func TestSecondStartRejectedNotQueued(t *testing.T) {
	tr, ch := newObserved(KindChatCompletion)
	release := make(chan struct{})

	_ = tr.Start(context.Background(), func(ctx context.Context) (Outcome[string], error) {
		<-release
		return Outcome[string]{Value: "first"}, nil
	})
	if err := tr.Start(context.Background(), func(ctx context.Context) (Outcome[string], error) {
		return Outcome[string]{Value: "second"}, nil
	}); !errors.Is(err, ErrBusy) {
		t.Fatalf("second start error = %v, want ErrBusy", err)
	}

	close(release)
	seen := collectUntil(t, ch, func(s Snapshot[string]) bool { return s.Status.Terminal() })
	if final := seen[len(seen)-1]; *final.Result != "first" {
		t.Fatalf("result = %q, want the first request's payload", *final.Result)
	}
}

func TestCancelDiscardsLateResult(t *testing.T) {
	tr, ch := newObserved(KindImageGeneration)
	release := make(chan struct{})
	finished := make(chan struct{})

	_ = tr.Start(context.Background(), func(ctx context.Context) (Outcome[string], error) {
		defer close(finished)
		<-release
		return Outcome[string]{Value: "late"}, nil
	})
	collectUntil(t, ch, func(s Snapshot[string]) bool { return s.Status == StatusPending })

	tr.Cancel()
	close(release) // the underlying request now resolves, too late
	<-finished

	// Give the run goroutine a chance to (incorrectly) apply the result.
	time.Sleep(20 * time.Millisecond)
	snap := tr.Snapshot()
	if snap.Status != StatusCancelled {
		t.Fatalf("status = %s, want cancelled", snap.Status)
	}
	if snap.Result != nil {
		t.Fatalf("cancelled operation must discard results, got %q", *snap.Result)
	}
}

func TestPollingLifecycle(t *testing.T) {
	tr, ch := newObserved(KindVideoGeneration, WithPollInterval[string](5*time.Millisecond))

	var polls atomic.Int32
	_ = tr.Start(context.Background(), func(ctx context.Context) (Outcome[string], error) {
		return Outcome[string]{
			Poll: func(ctx context.Context) (bool, string, error) {
				if polls.Add(1) == 1 {
					return false, "", nil
				}
				return true, "https://video.example/result.mp4", nil
			},
		}, nil
	})

	seen := collectUntil(t, ch, func(s Snapshot[string]) bool { return s.Status.Terminal() })

	var sawPolling bool
	for _, s := range seen {
		if s.Status == StatusPolling {
			sawPolling = true
		}
	}
	if !sawPolling {
		t.Fatal("expected a Polling state between Pending and Succeeded")
	}
	final := seen[len(seen)-1]
	if final.Status != StatusSucceeded {
		t.Fatalf("final status = %s, want succeeded", final.Status)
	}
	if final.Result == nil || *final.Result != "https://video.example/result.mp4" {
		t.Fatalf("result = %v, want the job URI", final.Result)
	}
	if got := polls.Load(); got < 2 {
		t.Fatalf("expected at least 2 polls, got %d", got)
	}
}

func TestStatusMonotonicity(t *testing.T) {
	tr, ch := newObserved(KindVideoGeneration, WithPollInterval[string](5*time.Millisecond))

	var polls atomic.Int32
	_ = tr.Start(context.Background(), func(ctx context.Context) (Outcome[string], error) {
		return Outcome[string]{
			Poll: func(ctx context.Context) (bool, string, error) {
				return polls.Add(1) >= 3, "done", nil
			},
		}, nil
	})

	seen := collectUntil(t, ch, func(s Snapshot[string]) bool { return s.Status.Terminal() })
	rank := map[Status]int{StatusPending: 1, StatusPolling: 2, StatusSucceeded: 3, StatusFailed: 3, StatusCancelled: 3}
	prev := 0
	for _, s := range seen {
		r := rank[s.Status]
		if r < prev {
			t.Fatalf("status went backward: %v", statuses(seen))
		}
		prev = r
	}
}

func statuses(seen []Snapshot[string]) []Status {
	out := make([]Status, len(seen))
	for i, s := range seen {
		out[i] = s.Status
	}
	return out
}

type fakeGate struct {
	valid   bool
	prompts atomic.Int32
}

func (g *fakeGate) HasValidCredential() bool { return g.valid }
func (g *fakeGate) PromptForCredential()     { g.prompts.Add(1) }

func TestQuotaFailurePromptsCredentialGateOnce(t *testing.T) {
	gate := &fakeGate{valid: true}
	tr, ch := newObserved(KindImageGeneration, WithCredentialGate[string](gate))

	_ = tr.Start(context.Background(), func(ctx context.Context) (Outcome[string], error) {
		return Outcome[string]{}, fmt.Errorf("Rpc failed due to xhr error")
	})

	seen := collectUntil(t, ch, func(s Snapshot[string]) bool { return s.Status == StatusFailed })
	final := seen[len(seen)-1]
	if final.Err == nil || final.Err.Kind != ErrQuotaOrBilling {
		t.Fatalf("error = %v, want QuotaOrBilling", final.Err)
	}
	if got := gate.prompts.Load(); got != 1 {
		t.Fatalf("credential prompt invoked %d times, want exactly 1", got)
	}
}

func TestMissingCredentialPromptsBeforeStart(t *testing.T) {
	gate := &fakeGate{valid: false}
	tr, ch := newObserved(KindChatCompletion, WithCredentialGate[string](gate))

	_ = tr.Start(context.Background(), func(ctx context.Context) (Outcome[string], error) {
		return Outcome[string]{Value: "ok"}, nil
	})
	collectUntil(t, ch, func(s Snapshot[string]) bool { return s.Status.Terminal() })
	if got := gate.prompts.Load(); got != 1 {
		t.Fatalf("credential prompt invoked %d times, want 1", got)
	}
}

func TestRetryRerunsSameRequest(t *testing.T) {
	tr, ch := newObserved(KindChatCompletion)

	var calls atomic.Int32
	req := func(ctx context.Context) (Outcome[string], error) {
		if calls.Add(1) == 1 {
			return Outcome[string]{}, errors.New("connection reset")
		}
		return Outcome[string]{Value: "second try"}, nil
	}

	_ = tr.Start(context.Background(), req)
	seen := collectUntil(t, ch, func(s Snapshot[string]) bool { return s.Status == StatusFailed })
	if final := seen[len(seen)-1]; final.Err.Kind != ErrTransport {
		t.Fatalf("error kind = %s, want transport", final.Err.Kind)
	}

	if err := tr.Retry(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	seen = collectUntil(t, ch, func(s Snapshot[string]) bool { return s.Status.Terminal() })
	final := seen[len(seen)-1]
	if final.Status != StatusSucceeded || *final.Result != "second try" {
		t.Fatalf("retry outcome = %s/%v", final.Status, final.Result)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("request ran %d times, want 2 (no automatic retries)", got)
	}
}

func TestRetryOnlyFromFailed(t *testing.T) {
	tr, _ := newObserved(KindChatCompletion)
	if err := tr.Retry(context.Background()); !errors.Is(err, ErrNotRestartable) {
		t.Fatalf("retry from idle = %v, want ErrNotRestartable", err)
	}
}

func TestProgressRotationFreezesOnTerminal(t *testing.T) {
	tr, ch := newObserved(KindImageGeneration)
	release := make(chan struct{})

	_ = tr.Start(context.Background(), func(ctx context.Context) (Outcome[string], error) {
		<-release
		return Outcome[string]{Value: "img"}, nil
	})
	collectUntil(t, ch, func(s Snapshot[string]) bool { return s.Status == StatusPending })

	first := tr.Snapshot().Progress
	if first == "" {
		t.Fatal("expected a progress message while pending")
	}
	tr.TickProgress()
	if second := tr.Snapshot().Progress; second == first {
		t.Fatalf("progress did not rotate: %q", second)
	}

	close(release)
	collectUntil(t, ch, func(s Snapshot[string]) bool { return s.Status.Terminal() })
	tr.TickProgress() // must be a no-op now
	if got := tr.Snapshot().Progress; got != "" {
		t.Fatalf("terminal snapshot still carries progress %q", got)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorKind
	}{
		{errors.New("Rpc failed"), ErrQuotaOrBilling},
		{errors.New("Requested entity was not found"), ErrQuotaOrBilling},
		{errors.New("server returned 500"), ErrQuotaOrBilling},
		{errors.New("xhr error"), ErrQuotaOrBilling},
		{errors.New("dial tcp: connection refused"), ErrTransport},
		{fmt.Errorf("wrap: %w", ErrEmptyResult), ErrInvalidResult},
		{context.Canceled, ErrCancelled},
		{&OpError{Kind: ErrUserInputInvalid, Message: "no pet selected"}, ErrUserInputInvalid},
	}
	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Errorf("Classify(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
