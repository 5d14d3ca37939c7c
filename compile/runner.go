package compile

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"void/task"
)

const DefaultDelay = 1500 * time.Millisecond

const clockLayout = "15:04:05"

// Runner plays a simulated compilation out over time: Start reports the
// running state at once and the final result after the configured delay.
// Only the most recent run ever completes.
type Runner struct {
	delay time.Duration
	slot  *task.Slot
	now   func() time.Time
	log   *zap.Logger
}

type RunnerOption func(*Runner)

func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

func WithAfterFunc(after task.AfterFunc) RunnerOption {
	return func(r *Runner) { r.slot = task.NewSlot(after) }
}

func WithLogger(log *zap.Logger) RunnerOption {
	return func(r *Runner) { r.log = log }
}

func NewRunner(delay time.Duration, opts ...RunnerOption) *Runner {
	if delay <= 0 {
		delay = DefaultDelay
	}
	r := &Runner{
		delay: delay,
		now:   time.Now,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.slot == nil {
		r.slot = task.NewSlot(nil)
	}
	return r
}

// Start begins a run for src, cancelling any run still in progress. The
// final result is passed to done together with the run's handle; done runs
// on a timer goroutine, so callers that hop to another goroutine should
// check Handle.Current before applying it.
func (r *Runner) Start(src Source, done func(Result, task.Handle)) Result {
	startedAt := r.now()
	running := Result{
		Status:    Running,
		Output:    []string{fmt.Sprintf("[%s] Starting compilation for %s...", startedAt.Format(clockLayout), src.Name)},
		Timestamp: startedAt,
	}
	r.log.Debug("compile started", zap.String("file", src.Name), zap.String("language", src.Language))

	r.slot.Schedule(r.delay, func(h task.Handle) {
		res := Simulate(src)
		finished := r.now()
		res.Output = slices.Concat(running.Output, res.Output,
			[]string{fmt.Sprintf("[%s] Process finished.", finished.Format(clockLayout))})
		res.Timestamp = finished
		r.log.Debug("compile finished", zap.String("file", src.Name), zap.String("status", string(res.Status)))
		if done != nil {
			done(res, h)
		}
	})
	return running
}

// Cancel abandons the pending run, if any.
func (r *Runner) Cancel() bool {
	return r.slot.Cancel()
}

func (r *Runner) Busy() bool { return r.slot.Pending() }
