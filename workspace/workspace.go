package workspace

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Workspace owns the current Store and is the only writer to it. Reads go
// through Snapshot and never block; writes are serialized and publish a new
// snapshot atomically.
type Workspace struct {
	mu      sync.Mutex
	current atomic.Pointer[Store]

	newID     func() ID
	log       *zap.Logger
	listeners []func(*Store)
}

type Option func(*Workspace)

// WithIDGenerator replaces the uuid generator, mostly for tests that want
// predictable ids.
func WithIDGenerator(gen func() ID) Option {
	return func(w *Workspace) { w.newID = gen }
}

func WithLogger(log *zap.Logger) Option {
	return func(w *Workspace) { w.log = log }
}

func New(opts ...Option) *Workspace {
	w := &Workspace{
		newID: func() ID { return ID(uuid.NewString()) },
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.current.Store(NewStore())
	return w
}

func (w *Workspace) Snapshot() *Store { return w.current.Load() }

// Subscribe registers fn to run after every change with the new snapshot.
// Listeners run on the goroutine that made the change.
func (w *Workspace) Subscribe(fn func(*Store)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

func (w *Workspace) Get(id ID) (Entity, bool) { return w.Snapshot().Get(id) }

// apply runs fn against the current snapshot and publishes the result.
// Returning the same pointer signals that nothing changed.
func (w *Workspace) apply(fn func(*Store) *Store) bool {
	w.mu.Lock()
	prev := w.current.Load()
	next := fn(prev)
	if next == prev {
		w.mu.Unlock()
		return false
	}
	w.current.Store(next)
	listeners := w.listeners
	w.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
	return true
}

func (w *Workspace) ignored(op string, id ID, reason string) {
	w.log.Debug("workspace operation ignored",
		zap.String("op", op), zap.String("id", string(id)), zap.String("reason", reason))
}
