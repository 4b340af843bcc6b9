package script

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/praaatap/gdit.site/pkg/clock"
	"github.com/praaatap/gdit.site/pkg/domain"
	"github.com/praaatap/gdit.site/pkg/transcript"
)

// State is the autoplay engine state.
type State int

const (
	Pending    State = iota // not started yet
	TypingChar              // revealing a command line character by character
	LineReady               // a whole line was revealed, waiting its post-line delay
	Done                    // script exhausted, only the cursor blinks
)

var stateNames = [...]string{"pending", "typing", "line_ready", "done"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Frame is what a view needs to draw the autoplay terminal.
type Frame struct {
	Lines         []domain.OutputLine `json:"lines"`
	Typing        string              `json:"typing"`
	State         State               `json:"state"`
	Cursor        domain.Cursor       `json:"cursor"`
	CursorVisible bool                `json:"cursor_visible"`
	Blinks        uint64              `json:"blinks"`
}

// IsTyping reports whether a partially typed command line should be drawn.
func (f Frame) IsTyping() bool {
	return f.State == TypingChar
}

// Player is the one-shot autoplay engine. It is safe for concurrent use.
type Player struct {
	mu sync.Mutex

	script []domain.ScriptLine
	sched  clock.Scheduler
	rng    *rand.Rand
	timing Timing
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	ctx    context.Context

	transcript    *transcript.Transcript
	state         State
	cursor        domain.Cursor
	typing        []rune
	cursorVisible bool
	blinks        uint64
	started       bool
	stopped       bool
	pending       clock.Timer
	done          chan struct{}
}

// New creates a player for a non-empty script.
func New(lines []domain.ScriptLine, sched clock.Scheduler, opts ...Option) (*Player, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyScript
	}
	p := &Player{
		script:        slices.Clone(lines),
		sched:         sched,
		timing:        DefaultTiming(),
		ctx:           context.Background(),
		transcript:    transcript.New(),
		cursorVisible: true,
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p, nil
}

// Start schedules the first step after the start delay. A player runs once.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return domain.ErrAlreadyStarted
	}
	p.started = true
	p.logger.Debug("autoplay started", "lines", len(p.script))
	p.schedule(p.timing.StartDelay, p.step)
	return nil
}

// Stop cancels pending typing or blinking. The player cannot be restarted.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	if p.pending != nil {
		p.pending.Stop()
		p.pending = nil
	}
}

func (p *Player) schedule(d time.Duration, fn func()) {
	p.pending = p.sched.AfterFunc(d, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.stopped {
			return
		}
		fn()
	})
}

// step advances the cursor by one character or one line. Runs under p.mu.
func (p *Player) step() {
	if p.cursor.Line >= len(p.script) {
		p.enterDone()
		return
	}
	line := p.script[p.cursor.Line]
	runes := []rune(line.Text)

	if line.Kind == domain.KindCommand && p.cursor.Char < len(runes) {
		p.state = TypingChar
		p.cursor.Char++
		p.typing = runes[:p.cursor.Char]
		if p.hooks.OnType != nil {
			p.hooks.OnType(p.ctx, &domain.TypeEvent{
				EventBase: p.base(domain.EventTyping),
				Cursor:    p.cursor,
				Prefix:    string(p.typing),
			})
		}
		p.schedule(p.typeDelay(), p.step)
		return
	}

	p.state = LineReady
	p.typing = nil
	p.transcript.Append(line.Output())
	if p.hooks.OnLine != nil {
		p.hooks.OnLine(p.ctx, &domain.LineEvent{
			EventBase: p.base(domain.EventLine),
			Line:      line.Output(),
			Index:     p.cursor.Line,
		})
	}
	p.cursor = domain.Cursor{Line: p.cursor.Line + 1}

	delay := line.PostDelay
	if delay <= 0 {
		delay = p.timing.LineDelay
	}
	p.schedule(delay, p.step)
}

func (p *Player) enterDone() {
	p.state = Done
	p.cursorVisible = true
	close(p.done)
	p.logger.Debug("autoplay done", "lines", p.transcript.Len())
	if p.hooks.OnScriptDone != nil {
		p.hooks.OnScriptDone(p.ctx, ptr(p.base(domain.EventScriptDone)))
	}
	p.schedule(p.timing.BlinkPeriod, p.blink)
}

func (p *Player) blink() {
	p.cursorVisible = !p.cursorVisible
	p.blinks++
	p.schedule(p.timing.BlinkPeriod, p.blink)
}

func (p *Player) typeDelay() time.Duration {
	lo, hi := p.timing.TypeMin, p.timing.TypeMax
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(p.rng.Int64N(int64(hi-lo)))
}

func (p *Player) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: p.sched.Now(), Type: t}
}

// Snapshot returns the current frame.
func (p *Player) Snapshot() Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Frame{
		Lines:         p.transcript.Lines(),
		Typing:        string(p.typing),
		State:         p.state,
		Cursor:        p.cursor,
		CursorVisible: p.cursorVisible,
		Blinks:        p.blinks,
	}
}

// Done returns a channel closed when the script is exhausted.
func (p *Player) Done() <-chan struct{} {
	return p.done
}

// Script returns a copy of the script being played.
func (p *Player) Script() []domain.ScriptLine {
	return slices.Clone(p.script)
}

// Listen registers fn for transcript events. fn runs under the player lock and must not
// call back into the player.
func (p *Player) Listen(fn transcript.Listener) (remove func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	rm := p.transcript.Listen(fn)
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		rm()
	}
}

func ptr[T any](v T) *T {
	return &v
}
