package assistant

import (
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"void/task"
)

type Role string

const (
	User      Role = "user"
	Assistant Role = "assistant"
)

type Message struct {
	ID          string
	Role        Role
	Content     string
	Code        string
	Suggestions []string
	Time        time.Time
}

const (
	DefaultMinDelay = 1000 * time.Millisecond
	DefaultMaxDelay = 1500 * time.Millisecond
)

const stoppedMessage = "Response stopped."

// Session is one conversation with the assistant. At most one reply is in
// flight; sending again replaces it.
type Session struct {
	mu       sync.Mutex
	messages []Message
	slot     *task.Slot

	minDelay, maxDelay time.Duration
	jitter             func(n int64) int64
	now                func() time.Time
	log                *zap.Logger
}

type Option func(*Session)

// WithDelay sets the range the reply delay is drawn from.
func WithDelay(lo, hi time.Duration) Option {
	return func(s *Session) {
		if lo > 0 {
			s.minDelay = lo
		}
		if hi >= s.minDelay {
			s.maxDelay = hi
		} else {
			s.maxDelay = s.minDelay
		}
	}
}

func WithAfterFunc(after task.AfterFunc) Option {
	return func(s *Session) { s.slot = task.NewSlot(after) }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Session) { s.log = log }
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		minDelay: DefaultMinDelay,
		maxDelay: DefaultMaxDelay,
		jitter:   rand.Int64N,
		now:      time.Now,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.slot == nil {
		s.slot = task.NewSlot(nil)
	}
	s.messages = []Message{s.message(Assistant, Reply{Content: greeting, Suggestions: greetingSuggestions})}
	return s
}

func (s *Session) message(role Role, r Reply) Message {
	return Message{
		ID:          uuid.NewString(),
		Role:        role,
		Content:     r.Content,
		Code:        r.Code,
		Suggestions: r.Suggestions,
		Time:        s.now(),
	}
}

func (s *Session) delay() time.Duration {
	spread := int64(s.maxDelay - s.minDelay)
	if spread <= 0 {
		return s.minDelay
	}
	return s.minDelay + time.Duration(s.jitter(spread+1))
}

// Send records req as a user message and schedules the reply. A reply still
// pending from an earlier Send is dropped. done, if set, runs on a timer
// goroutine after the reply has been added to the transcript. Blank
// prompts are ignored.
func (s *Session) Send(req Request, done func(Message)) bool {
	if strings.TrimSpace(req.Text) == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, s.message(User, Reply{Content: req.Text}))

	d := s.delay()
	s.slot.Schedule(d, func(h task.Handle) {
		s.mu.Lock()
		if !h.Current() {
			s.mu.Unlock()
			return
		}
		msg := s.message(Assistant, Respond(req))
		s.messages = append(s.messages, msg)
		s.mu.Unlock()

		s.log.Debug("assistant replied", zap.Int("chars", len(msg.Content)), zap.Bool("code", msg.Code != ""))
		if done != nil {
			done(msg)
		}
	})
	s.log.Debug("assistant request queued", zap.Duration("delay", d))
	return true
}

// Stop abandons the pending reply and notes that in the transcript. It
// reports false when nothing was pending.
func (s *Session) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.slot.Cancel() {
		return false
	}
	s.messages = append(s.messages, s.message(Assistant, Reply{Content: stoppedMessage}))
	return true
}

func (s *Session) Busy() bool { return s.slot.Pending() }

func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.messages)
}

// LastCode returns the most recent code block the assistant produced.
func (s *Session) LastCode() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.messages) - 1; i >= 0; i-- {
		if m := s.messages[i]; m.Role == Assistant && m.Code != "" {
			return m.Code, true
		}
	}
	return "", false
}
