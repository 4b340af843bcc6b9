package script

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praaatap/gdit.site/pkg/clock"
	"github.com/praaatap/gdit.site/pkg/domain"
	"github.com/praaatap/gdit.site/pkg/transcript"
)

func newTestPlayer(t *testing.T, lines []domain.ScriptLine, opts ...Option) (*Player, *clock.Virtual) {
	t.Helper()
	v := clock.NewVirtual()
	p, err := New(lines, v, append([]Option{WithSeed(42)}, opts...)...)
	require.NoError(t, err)
	return p, v
}

// runToDone steps until the script is exhausted; the blink would otherwise run forever.
func runToDone(t *testing.T, p *Player, v *clock.Virtual) {
	t.Helper()
	for i := 0; i < 10000; i++ {
		select {
		case <-p.Done():
			return
		default:
		}
		require.True(t, v.Step(), "scheduler ran dry before the script finished")
	}
	t.Fatal("script did not finish")
}

func texts(lines []domain.ScriptLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestPlayer_TranscriptMatchesScript(t *testing.T) {
	script := DefaultScript()
	var typed = map[int][]string{}
	p, v := newTestPlayer(t, script, WithLifecycleHooks(domain.LifecycleHooks{
		OnType: func(_ context.Context, e *domain.TypeEvent) {
			typed[e.Cursor.Line] = append(typed[e.Cursor.Line], e.Prefix)
		},
	}))
	require.NoError(t, p.Start())

	runToDone(t, p, v)

	frame := p.Snapshot()
	assert.Equal(t, Done, frame.State)
	assert.Equal(t, texts(script), transcript.Texts(frame.Lines))

	for i, l := range script {
		if l.Kind != domain.KindCommand {
			assert.Empty(t, typed[i], "line %d is not typed", i)
			continue
		}
		runes := []rune(l.Text)
		want := make([]string, len(runes))
		for n := range runes {
			want[n] = string(runes[:n+1])
		}
		assert.Equal(t, want, typed[i], "line %d passes through every prefix", i)
	}
}

func TestPlayer_SameSeedSameTiming(t *testing.T) {
	finish := func() time.Time {
		p, v := newTestPlayer(t, DefaultScript())
		require.NoError(t, p.Start())
		runToDone(t, p, v)
		return v.Now()
	}
	assert.Equal(t, finish(), finish())
}

func TestPlayer_TypingDelaysStayInRange(t *testing.T) {
	script := []domain.ScriptLine{{Kind: domain.KindCommand, Text: "gdit push"}}
	var stamps []time.Time
	p, v := newTestPlayer(t, script, WithLifecycleHooks(domain.LifecycleHooks{
		OnType: func(_ context.Context, e *domain.TypeEvent) { stamps = append(stamps, e.Timestamp) },
	}))
	require.NoError(t, p.Start())
	runToDone(t, p, v)

	require.Len(t, stamps, len("gdit push"))
	assert.Equal(t, clock.Epoch.Add(800*time.Millisecond), stamps[0])
	for i := 1; i < len(stamps); i++ {
		gap := stamps[i].Sub(stamps[i-1])
		assert.GreaterOrEqual(t, gap, 30*time.Millisecond)
		assert.Less(t, gap, 70*time.Millisecond)
	}
}

func TestPlayer_StateMachine(t *testing.T) {
	script := []domain.ScriptLine{
		{Kind: domain.KindCommand, Text: "ab", PostDelay: 500 * time.Millisecond},
		{Kind: domain.KindSuccess, Text: "ok"},
	}
	p, v := newTestPlayer(t, script, WithTiming(Timing{
		StartDelay: 10 * time.Millisecond, TypeMin: 5 * time.Millisecond, TypeMax: 5 * time.Millisecond,
		LineDelay: 100 * time.Millisecond, BlinkPeriod: 530 * time.Millisecond,
	}))
	assert.Equal(t, Pending, p.Snapshot().State)
	require.NoError(t, p.Start())

	v.Advance(10 * time.Millisecond)
	f := p.Snapshot()
	assert.Equal(t, TypingChar, f.State)
	assert.Equal(t, "a", f.Typing)
	assert.True(t, f.IsTyping())

	v.Advance(5 * time.Millisecond)
	assert.Equal(t, "ab", p.Snapshot().Typing)
	assert.Empty(t, p.Snapshot().Lines, "line is committed only after typing completes")

	v.Advance(5 * time.Millisecond)
	f = p.Snapshot()
	assert.Equal(t, LineReady, f.State)
	assert.Equal(t, domain.Cursor{Line: 1}, f.Cursor)
	assert.Equal(t, []string{"ab"}, transcript.Texts(f.Lines))

	v.Advance(500 * time.Millisecond)
	assert.Equal(t, []string{"ab", "ok"}, transcript.Texts(p.Snapshot().Lines))

	v.Advance(100 * time.Millisecond)
	assert.Equal(t, Done, p.Snapshot().State)
}

func TestPlayer_CursorNeverMovesBackwards(t *testing.T) {
	p, v := newTestPlayer(t, DefaultScript())
	require.NoError(t, p.Start())

	prev := p.Snapshot().Cursor
	for i := 0; i < 400; i++ {
		if !v.Step() {
			break
		}
		cur := p.Snapshot().Cursor
		if cur.Line == prev.Line {
			assert.GreaterOrEqual(t, cur.Char, prev.Char)
		} else {
			assert.Greater(t, cur.Line, prev.Line)
		}
		prev = cur
	}
}

func TestPlayer_BlinksForeverAfterDone(t *testing.T) {
	p, v := newTestPlayer(t, []domain.ScriptLine{{Kind: domain.KindOutput, Text: "hi"}})
	require.NoError(t, p.Start())
	runToDone(t, p, v)

	doneAt := v.Now()
	lines := p.Snapshot().Lines
	visible := p.Snapshot().CursorVisible

	for i := 1; i <= 20; i++ {
		v.Advance(530 * time.Millisecond)
		f := p.Snapshot()
		assert.Equal(t, uint64(i), f.Blinks)
		assert.Equal(t, visible == (i%2 == 0), f.CursorVisible)
		assert.Equal(t, lines, f.Lines, "blink never touches the transcript")
		assert.Equal(t, Done, f.State)
	}
	assert.Equal(t, doneAt.Add(20*530*time.Millisecond), v.Now())
	assert.Equal(t, 1, v.Pending(), "exactly one blink scheduled")
}

func TestPlayer_StartOnce(t *testing.T) {
	p, _ := newTestPlayer(t, DefaultScript())
	require.NoError(t, p.Start())
	assert.ErrorIs(t, p.Start(), domain.ErrAlreadyStarted)
}

func TestPlayer_StopHaltsEverything(t *testing.T) {
	p, v := newTestPlayer(t, DefaultScript())
	require.NoError(t, p.Start())
	v.Advance(2 * time.Second)
	before := p.Snapshot()

	p.Stop()
	v.Advance(time.Minute)

	assert.Equal(t, before, p.Snapshot())
	assert.Zero(t, v.Pending())
}

func TestNew_EmptyScript(t *testing.T) {
	_, err := New(nil, clock.NewVirtual())
	assert.ErrorIs(t, err, domain.ErrEmptyScript)
}

func TestTiming_Scaled(t *testing.T) {
	got := DefaultTiming().Scaled(2)
	assert.Equal(t, 400*time.Millisecond, got.StartDelay)
	assert.Equal(t, 15*time.Millisecond, got.TypeMin)
	assert.Equal(t, 530*time.Millisecond, got.BlinkPeriod)
	assert.Equal(t, DefaultTiming(), DefaultTiming().Scaled(0))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
lines:
  - kind: comment
    text: "# hello"
  - kind: command
    text: gdit whoami
    delay: 250ms
  - text: "  Email:    developer@example.com"
`), 0o644))

	lines, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.ScriptLine{
		{Kind: domain.KindComment, Text: "# hello"},
		{Kind: domain.KindCommand, Text: "gdit whoami", PostDelay: 250 * time.Millisecond},
		{Kind: domain.KindOutput, Text: "  Email:    developer@example.com"},
	}, lines)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("lines: []"))
	assert.ErrorIs(t, err, domain.ErrEmptyScript)

	_, err = Parse([]byte("lines:\n  - kind: shout\n    text: x\n"))
	assert.ErrorIs(t, err, domain.ErrUnknownKind)

	_, err = Parse([]byte("lines:\n  - kind: command\n    text: gdit init\n    delay: 500\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no unit")

	_, err = Parse([]byte("lines:\n  - kind: command\n    text: gdit init\n    delay: 0.5\n"))
	assert.Error(t, err)
}

func TestParse_DurationStrings(t *testing.T) {
	lines, err := Parse([]byte("lines:\n  - kind: command\n    text: gdit init\n    delay: 500ms\n  - kind: output\n    text: done\n"))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 500*time.Millisecond, lines[0].PostDelay)
	assert.Zero(t, lines[1].PostDelay)
}
