package playback

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/praaatap/gdit.site/pkg/catalog"
	"github.com/praaatap/gdit.site/pkg/clock"
	"github.com/praaatap/gdit.site/pkg/domain"
	"github.com/praaatap/gdit.site/pkg/matcher"
	"github.com/praaatap/gdit.site/pkg/transcript"
)

// State is the playback gate.
type State int

const (
	Idle State = iota
	Busy
)

func (s State) String() string {
	if s == Busy {
		return "busy"
	}
	return "idle"
}

// NotFoundMessage formats the synthetic error line for unrecognised input.
func NotFoundMessage(raw string) string {
	return fmt.Sprintf(`Command not found: %s. Type "help" for available commands.`, raw)
}

// Session is the interactive playback engine. It is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	catalog     *catalog.Catalog
	sched       clock.Scheduler
	timing      Timing
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	welcome     []domain.OutputLine
	resetBanner []domain.OutputLine
	ctx         context.Context

	transcript *transcript.Transcript
	busy       bool
	generation uint64
	pending    clock.Timer
	idle       chan struct{}
}

// New creates a session over an immutable catalog, seeded with the welcome banner.
func New(cat *catalog.Catalog, sched clock.Scheduler, opts ...Option) *Session {
	s := &Session{
		catalog:     cat,
		sched:       sched,
		timing:      DefaultTiming(),
		welcome:     WelcomeBanner,
		resetBanner: ResetBanner,
		ctx:         context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.transcript = transcript.New(s.welcome...)
	s.idle = closedChan()
	return s
}

// Submit hands one line of input to the engine. It returns false when the input is
// blank or a command is still playing; such submissions leave no trace.
func (s *Session) Submit(raw string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(raw) == "" {
		return false
	}
	if s.busy {
		s.logger.Debug("submission dropped", "input", raw, "generation", s.generation)
		if s.hooks.OnDrop != nil {
			s.hooks.OnDrop(s.ctx, &domain.SubmitEvent{EventBase: s.base(domain.EventDrop), Input: raw})
		}
		return false
	}

	s.busy = true
	s.idle = make(chan struct{})
	gen := s.generation
	s.transcript.Append(domain.Line(domain.KindCommand, raw))

	if matcher.IsClear(raw) {
		s.notifySubmit(raw, catalog.ClearCommand, true)
		s.schedule(gen, s.timing.ClearDelay, func() {
			s.transcript.Replace()
			if s.hooks.OnClear != nil {
				s.hooks.OnClear(s.ctx, ptr(s.base(domain.EventClear)))
			}
			s.finish()
		})
		return true
	}

	entry, ok := matcher.Match(s.catalog, raw)
	s.notifySubmit(raw, entry.Command, ok)
	if !ok {
		s.schedule(gen, s.timing.NotFoundDelay, func() {
			s.appendLine(domain.Line(domain.KindError, NotFoundMessage(raw)))
			s.finish()
		})
		return true
	}

	s.emitFrom(gen, entry.Lines, 0)
	return true
}

// SubmitSuggestion submits the i-th suggestion of the catalog.
func (s *Session) SubmitSuggestion(i int) bool {
	suggestions := s.catalog.Suggestions()
	if i < 0 || i >= len(suggestions) {
		return false
	}
	return s.Submit(suggestions[i])
}

// Reset replaces the transcript with the reset banner and returns the session to Idle.
// Output still scheduled from an earlier submission is discarded.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.transcript.Replace(s.resetBanner...)
	s.logger.Debug("session reset", "generation", s.generation)
	if s.hooks.OnReset != nil {
		s.hooks.OnReset(s.ctx, ptr(s.base(domain.EventReset)))
	}
	if s.busy {
		s.busy = false
		close(s.idle)
	}
}

// emitFrom appends lines[i:] one by one, each after its kind-dependent delay.
func (s *Session) emitFrom(gen uint64, lines []domain.OutputLine, i int) {
	if i >= len(lines) {
		s.finish()
		return
	}
	line := lines[i]
	s.schedule(gen, s.timing.DelayFor(line.Kind), func() {
		s.appendLine(line)
		s.emitFrom(gen, lines, i+1)
	})
}

// schedule runs fn later under the session lock, unless the session was reset meanwhile.
func (s *Session) schedule(gen uint64, d time.Duration, fn func()) {
	s.pending = s.sched.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.generation != gen {
			s.logger.Debug("stale continuation skipped", "generation", gen, "current", s.generation)
			return
		}
		fn()
	})
}

func (s *Session) appendLine(line domain.OutputLine) {
	s.transcript.Append(line)
	if s.hooks.OnLine != nil {
		s.hooks.OnLine(s.ctx, &domain.LineEvent{
			EventBase: s.base(domain.EventLine),
			Line:      line,
			Index:     s.transcript.Len() - 1,
		})
	}
}

func (s *Session) finish() {
	s.busy = false
	s.pending = nil
	close(s.idle)
	s.logger.Debug("playback idle", "generation", s.generation)
	if s.hooks.OnIdle != nil {
		s.hooks.OnIdle(s.ctx, ptr(s.base(domain.EventIdle)))
	}
}

func (s *Session) notifySubmit(raw, command string, matched bool) {
	s.logger.Debug("submission accepted", "input", raw, "command", command, "matched", matched, "generation", s.generation)
	if s.hooks.OnSubmit != nil {
		s.hooks.OnSubmit(s.ctx, &domain.SubmitEvent{
			EventBase: s.base(domain.EventSubmit),
			Input:     raw,
			Command:   command,
			Matched:   matched,
		})
	}
}

func (s *Session) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: s.sched.Now(), Type: t, Generation: s.generation}
}

// Lines returns a copy of the transcript.
func (s *Session) Lines() []domain.OutputLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Lines()
}

// Busy reports whether a command is playing.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// State returns Idle or Busy.
func (s *Session) State() State {
	if s.Busy() {
		return Busy
	}
	return Idle
}

// Generation returns the number of resets so far.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Idle returns a channel that is closed once the session is idle.
// When the session is already idle the channel is closed on return.
func (s *Session) Idle() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idle
}

// Wait blocks until the session is idle or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	select {
	case <-s.Idle():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot is a consistent view of a session.
type Snapshot struct {
	Lines      []domain.OutputLine `json:"lines"`
	Busy       bool                `json:"busy"`
	Generation uint64              `json:"generation"`
	Version    uint64              `json:"version"`
}

// Snapshot returns the transcript and gate state under a single lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Lines:      s.transcript.Lines(),
		Busy:       s.busy,
		Generation: s.generation,
		Version:    s.transcript.Version(),
	}
}

// Listen registers fn for transcript events. fn runs under the session lock and must
// not call back into the session. The returned function removes the listener.
func (s *Session) Listen(fn transcript.Listener) (remove func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rm := s.transcript.Listen(fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		rm()
	}
}

// Catalog returns the catalog the session resolves against.
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// Suggestions returns the one-click suggestion commands.
func (s *Session) Suggestions() []string {
	return s.catalog.Suggestions()
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func ptr[T any](v T) *T {
	return &v
}
