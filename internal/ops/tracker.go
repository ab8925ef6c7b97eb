// Package ops wraps long-running or fallible calls to external services in a
// uniform lifecycle: Idle -> Pending -> (Polling)* -> Succeeded | Failed |
// Cancelled. The tracker performs no network I/O itself; it narrates the
// lifecycle of a caller-supplied request function. There are no automatic
// retries anywhere: these calls are externally metered, so a retry is always
// an explicit user action.
package ops

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"pawpal/internal/logging"
)

// Kind identifies what class of external operation a tracker wraps.
type Kind string

const (
	KindChatCompletion  Kind = "chat-completion"
	KindImageGeneration Kind = "image-generation"
	KindVideoGeneration Kind = "video-generation"
	KindImageEdit       Kind = "image-edit"
	KindGeocodeLookup   Kind = "geocode-lookup"
)

// Status is a tracker lifecycle state.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusPolling   Status = "polling"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether s admits no further transitions. Failed is
// terminal only until an explicit Retry.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusCancelled
}

var (
	// ErrBusy is returned by Start while a request is already in flight.
	// A second start is rejected, not queued.
	ErrBusy = errors.New("operation already in flight")
	// ErrNotRestartable is returned by Start/Retry from a state that does
	// not admit them.
	ErrNotRestartable = errors.New("operation not in a restartable state")
)

// PollFunc checks a long-running job once. done=true with a nil error means
// value is the final payload.
type PollFunc[T any] func(ctx context.Context) (done bool, value T, err error)

// Outcome is what a request function produces: either a final Value, or a
// Poll function for a job that must be polled to completion (the tracker
// then enters Polling).
type Outcome[T any] struct {
	Value T
	Poll  PollFunc[T]
}

// StartFunc performs the external call. It must respect ctx cancellation.
type StartFunc[T any] func(ctx context.Context) (Outcome[T], error)

// CredentialGate is the host environment's key-selection prompt. The tracker
// checks it before any billed call and re-prompts once when a failure
// classifies as QuotaOrBilling, since that is recoverable by user action.
type CredentialGate interface {
	HasValidCredential() bool
	PromptForCredential()
}

// Snapshot is an immutable view of a tracker, safe to hand to a renderer.
type Snapshot[T any] struct {
	ID          string
	Kind        Kind
	Status      Status
	Result      *T
	Err         *OpError
	Progress    string
	StartedAt   time.Time
	CompletedAt time.Time
}

// Tracker governs one external operation's lifecycle. Transitions are
// serialized; results arriving after a Cancel are discarded so no zombie
// update ever reaches UI state.
type Tracker[T any] struct {
	mu sync.Mutex

	id   string
	kind Kind

	status      Status
	result      *T
	err         *OpError
	startedAt   time.Time
	completedAt time.Time

	// epoch increments on every Cancel; in-flight goroutines from an older
	// epoch find their updates rejected.
	epoch  int
	cancel context.CancelFunc

	req          StartFunc[T]
	pollInterval time.Duration
	gate         CredentialGate
	notify       func(Snapshot[T])

	progress    []string
	progressIdx int
}

// TrackerOption configures a Tracker.
type TrackerOption[T any] func(*Tracker[T])

// WithPollInterval sets the minimum delay between poll ticks. The backoff is
// fixed, not exponential: polled jobs are long by nature and the delay only
// exists to avoid hot-looping.
func WithPollInterval[T any](d time.Duration) TrackerOption[T] {
	return func(t *Tracker[T]) { t.pollInterval = d }
}

// WithCredentialGate attaches the host's key-selection prompt.
func WithCredentialGate[T any](g CredentialGate) TrackerOption[T] {
	return func(t *Tracker[T]) { t.gate = g }
}

// WithProgressMessages sets the rotating user-facing status strings shown
// while Pending/Polling. Purely cosmetic; rotation never affects state.
func WithProgressMessages[T any](msgs []string) TrackerOption[T] {
	return func(t *Tracker[T]) { t.progress = msgs }
}

// WithNotify registers a callback invoked (outside the tracker lock) after
// every state transition, with a snapshot of the new state.
func WithNotify[T any](fn func(Snapshot[T])) TrackerOption[T] {
	return func(t *Tracker[T]) { t.notify = fn }
}

// NewTracker builds an idle tracker for one operation kind.
func NewTracker[T any](kind Kind, opts ...TrackerOption[T]) *Tracker[T] {
	t := &Tracker[T]{
		id:           uuid.NewString(),
		kind:         kind,
		status:       StatusIdle,
		pollInterval: 5 * time.Second,
		progress:     defaultProgress(kind),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ID returns the tracker's stable identifier.
func (t *Tracker[T]) ID() string { return t.id }

// Snapshot returns the current state.
func (t *Tracker[T]) Snapshot() Snapshot[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker[T]) snapshotLocked() Snapshot[T] {
	s := Snapshot[T]{
		ID:          t.id,
		Kind:        t.kind,
		Status:      t.status,
		Result:      t.result,
		Err:         t.err,
		StartedAt:   t.startedAt,
		CompletedAt: t.completedAt,
	}
	if (t.status == StatusPending || t.status == StatusPolling) && len(t.progress) > 0 {
		s.Progress = t.progress[t.progressIdx%len(t.progress)]
	}
	return s
}

// Start begins the operation. Allowed only from Idle; a Start while
// Pending/Polling returns ErrBusy (callers must Cancel first or wait), and a
// Start after a terminal state returns ErrNotRestartable.
func (t *Tracker[T]) Start(ctx context.Context, req StartFunc[T]) error {
	t.mu.Lock()
	switch t.status {
	case StatusPending, StatusPolling:
		t.mu.Unlock()
		return ErrBusy
	case StatusIdle:
		// proceed
	default:
		t.mu.Unlock()
		return ErrNotRestartable
	}
	t.req = req
	t.mu.Unlock()

	return t.launch(ctx)
}

// Retry re-runs the original request after a failure. Valid only from
// Failed; it is always an explicit user action.
func (t *Tracker[T]) Retry(ctx context.Context) error {
	t.mu.Lock()
	if t.status != StatusFailed || t.req == nil {
		t.mu.Unlock()
		return ErrNotRestartable
	}
	t.err = nil
	t.mu.Unlock()

	logging.Ops("%s %s: retry requested", t.kind, t.id)
	return t.launch(ctx)
}

func (t *Tracker[T]) launch(ctx context.Context) error {
	// Billed generative calls go through the credential gate first.
	if t.gate != nil && !t.gate.HasValidCredential() {
		t.gate.PromptForCredential()
	}

	runCtx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	t.cancel = cancel
	t.status = StatusPending
	t.result = nil
	t.startedAt = time.Now()
	t.completedAt = time.Time{}
	t.progressIdx = 0
	epoch := t.epoch
	req := t.req
	t.mu.Unlock()

	logging.Ops("%s %s: started", t.kind, t.id)
	t.emit()
	go t.run(runCtx, epoch, req)
	return nil
}

func (t *Tracker[T]) run(ctx context.Context, epoch int, req StartFunc[T]) {
	out, err := req(ctx)
	if err != nil {
		t.fail(epoch, err)
		return
	}
	if out.Poll == nil {
		t.succeed(epoch, out.Value)
		return
	}

	// Long-running job: enter Polling and tick at a fixed interval.
	if !t.transition(epoch, StatusPolling) {
		return
	}
	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			// Cancel already settled the state; nothing to report.
			return
		case <-ticker.C:
		}
		done, value, err := out.Poll(ctx)
		if err != nil {
			t.fail(epoch, err)
			return
		}
		if done {
			t.succeed(epoch, value)
			return
		}
		// Not done: stay in Polling, let the progress rotation breathe.
	}
}

// transition moves to status if the tracker is still in the given epoch and
// not terminal. Returns false when the update must be discarded.
func (t *Tracker[T]) transition(epoch int, status Status) bool {
	t.mu.Lock()
	if t.epoch != epoch || t.status.Terminal() || t.status == StatusFailed {
		t.mu.Unlock()
		return false
	}
	t.status = status
	t.mu.Unlock()
	t.emit()
	return true
}

func (t *Tracker[T]) succeed(epoch int, value T) {
	t.mu.Lock()
	if t.epoch != epoch || t.status.Terminal() || t.status == StatusFailed {
		t.mu.Unlock()
		return
	}
	t.status = StatusSucceeded
	t.result = &value
	t.err = nil
	t.completedAt = time.Now()
	t.mu.Unlock()

	logging.Ops("%s %s: succeeded in %v", t.kind, t.id, time.Since(t.startedAt))
	t.emit()
}

func (t *Tracker[T]) fail(epoch int, err error) {
	kind := Classify(err)
	if kind == ErrCancelled {
		// The cancel path already settled the state.
		return
	}

	// A quota/billing rejection is recoverable by selecting a valid key, so
	// prompt before surfacing the failure.
	if kind == ErrQuotaOrBilling && t.gate != nil {
		t.gate.PromptForCredential()
	}

	t.mu.Lock()
	if t.epoch != epoch || t.status.Terminal() || t.status == StatusFailed {
		t.mu.Unlock()
		return
	}
	t.status = StatusFailed
	t.err = &OpError{Kind: kind, Message: err.Error()}
	t.completedAt = time.Now()
	t.mu.Unlock()

	logging.OpsError("%s %s: failed (%s): %v", t.kind, t.id, kind, err)
	t.emit()
}

// Cancel aborts the operation from any non-terminal state. Results arriving
// after cancellation are discarded. Safe to call repeatedly. Failed is
// already settled; only Retry moves it.
func (t *Tracker[T]) Cancel() {
	t.mu.Lock()
	if t.status.Terminal() || t.status == StatusFailed || t.status == StatusIdle {
		t.mu.Unlock()
		return
	}
	t.status = StatusCancelled
	t.result = nil
	t.err = nil
	t.completedAt = time.Now()
	t.epoch++
	cancel := t.cancel
	t.cancel = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	logging.Ops("%s %s: cancelled", t.kind, t.id)
	t.emit()
}

// TickProgress advances the rotating progress message. Driven by the UI's
// timer while an operation is Pending/Polling; a no-op in any other state
// so a terminal transition freezes the message.
func (t *Tracker[T]) TickProgress() {
	t.mu.Lock()
	if t.status == StatusPending || t.status == StatusPolling {
		t.progressIdx++
	}
	t.mu.Unlock()
}

func (t *Tracker[T]) emit() {
	if t.notify == nil {
		return
	}
	t.notify(t.Snapshot())
}
