package playback

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praaatap/gdit.site/pkg/catalog"
	"github.com/praaatap/gdit.site/pkg/clock"
	"github.com/praaatap/gdit.site/pkg/domain"
	"github.com/praaatap/gdit.site/pkg/transcript"
)

func newTestSession(t *testing.T, opts ...Option) (*Session, *clock.Virtual) {
	t.Helper()
	v := clock.NewVirtual()
	return New(catalog.Default(), v, opts...), v
}

func TestSession_StartsWithWelcomeBanner(t *testing.T) {
	s, _ := newTestSession(t)

	assert.Equal(t, WelcomeBanner, s.Lines())
	assert.Equal(t, Idle, s.State())
	select {
	case <-s.Idle():
	default:
		t.Fatal("new session must be idle")
	}
}

func TestSession_EveryCatalogKeyReplaysItsLines(t *testing.T) {
	cat := catalog.Default()
	for _, key := range cat.Keys() {
		if key == catalog.ClearCommand {
			continue
		}
		t.Run(key, func(t *testing.T) {
			s, v := newTestSession(t, WithWelcome())
			require.True(t, s.Submit(key))
			assert.True(t, s.Busy())

			v.RunUntilIdle(0)

			entry, _ := cat.Lookup(key)
			want := append([]domain.OutputLine{domain.Line(domain.KindCommand, key)}, entry.Lines...)
			if diff := cmp.Diff(want, s.Lines()); diff != "" {
				t.Errorf("transcript mismatch (-want +got):\n%s", diff)
			}
			assert.False(t, s.Busy())
		})
	}
}

func TestSession_StatusLines(t *testing.T) {
	s, v := newTestSession(t, WithWelcome())
	s.Submit("gdit status")
	v.RunUntilIdle(0)

	assert.Equal(t, []string{
		"gdit status",
		"",
		"📁 Repository: my-project",
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━",
		"✓ 14 files staged",
		"",
		"  Modified:  src/index.ts",
		"  Modified:  package.json",
		"  New:       README.md",
	}, transcript.Texts(s.Lines()))
}

func TestSession_LineDelaysDependOnKind(t *testing.T) {
	s, v := newTestSession(t, WithWelcome())
	s.Submit("gdit init") // info, success, success, output, output

	v.Advance(299 * time.Millisecond)
	assert.Len(t, s.Lines(), 1, "info line waits 300ms")

	v.Advance(time.Millisecond)
	assert.Len(t, s.Lines(), 2)

	v.Advance(80 * time.Millisecond)
	assert.Len(t, s.Lines(), 3)

	v.Advance(3 * 80 * time.Millisecond)
	assert.Len(t, s.Lines(), 6)
	assert.False(t, s.Busy())
}

func TestSession_DropsSubmissionsWhileBusy(t *testing.T) {
	var drops []string
	s, v := newTestSession(t, WithWelcome(), WithLifecycleHooks(domain.LifecycleHooks{
		OnDrop: func(_ context.Context, e *domain.SubmitEvent) { drops = append(drops, e.Input) },
	}))

	require.True(t, s.Submit("gdit push"))
	v.Advance(300 * time.Millisecond)
	before := s.Lines()

	assert.False(t, s.Submit("gdit pull"))
	assert.False(t, s.SubmitSuggestion(0))
	assert.Equal(t, before, s.Lines())

	v.RunUntilIdle(0)
	for _, l := range s.Lines() {
		assert.NotEqual(t, "gdit pull", l.Text)
	}
	assert.Equal(t, []string{"gdit pull", "gdit init"}, drops)
	assert.True(t, s.Submit("gdit pull"), "accepted again once idle")
}

func TestSession_BlankInputIgnored(t *testing.T) {
	s, _ := newTestSession(t)
	assert.False(t, s.Submit("   \t"))
	assert.Equal(t, WelcomeBanner, s.Lines())
	assert.False(t, s.Busy())
}

func TestSession_Clear(t *testing.T) {
	for _, input := range []string{"clear", "  CLEAR  ", "Clear"} {
		t.Run(input, func(t *testing.T) {
			s, v := newTestSession(t)
			require.True(t, s.Submit(input))
			assert.Equal(t, input, s.Lines()[len(s.Lines())-1].Text, "echo before the clear")

			v.Advance(99 * time.Millisecond)
			assert.True(t, s.Busy())

			v.Advance(time.Millisecond)
			assert.Empty(t, s.Lines())
			assert.False(t, s.Busy())
		})
	}
}

func TestSession_NotFound(t *testing.T) {
	s, v := newTestSession(t, WithWelcome())
	s.Submit("gdit xyz")
	v.RunUntilIdle(0)

	assert.Equal(t, []domain.OutputLine{
		domain.Line(domain.KindCommand, "gdit xyz"),
		domain.Line(domain.KindError, `Command not found: gdit xyz. Type "help" for available commands.`),
	}, s.Lines())
	assert.False(t, s.Busy())
}

func TestSession_NotFoundEmbedsVerbatimInput(t *testing.T) {
	s, v := newTestSession(t, WithWelcome())
	s.Submit("  Make Coffee ")
	v.RunUntilIdle(0)

	lines := s.Lines()
	assert.Equal(t, "  Make Coffee ", lines[0].Text)
	assert.Equal(t, NotFoundMessage("  Make Coffee "), lines[1].Text)
}

func TestSession_EmptyEntryGoesIdleImmediately(t *testing.T) {
	s, v := newTestSession(t, WithWelcome())
	require.True(t, s.Submit("cl"))

	assert.False(t, s.Busy())
	assert.Zero(t, v.Pending())
	assert.Equal(t, []string{"cl"}, transcript.Texts(s.Lines()))
}

func TestSession_ResetDiscardsInFlightOutput(t *testing.T) {
	var resets int
	s, v := newTestSession(t, WithLifecycleHooks(domain.LifecycleHooks{
		OnReset: func(context.Context, *domain.EventBase) { resets++ },
	}))

	s.Submit("gdit log")
	v.Advance(200 * time.Millisecond)
	require.True(t, s.Busy())

	s.Reset()
	assert.False(t, s.Busy())
	assert.Equal(t, uint64(1), s.Generation())

	v.RunUntilIdle(0)
	assert.Equal(t, ResetBanner, s.Lines(), "no stale lines after reset")
	assert.Equal(t, 1, resets)

	require.True(t, s.Submit("gdit whoami"))
	v.RunUntilIdle(0)
	assert.Len(t, s.Lines(), len(ResetBanner)+6)
}

func TestSession_ListenerSeesEventsInOrder(t *testing.T) {
	s, v := newTestSession(t, WithWelcome())
	var got []string
	remove := s.Listen(func(e transcript.Event) {
		got = append(got, string(e.Type)+":"+joinTexts(e.Lines))
	})
	defer remove()

	s.Submit("gdit commit")
	v.RunUntilIdle(0)
	s.Submit("clear")
	v.RunUntilIdle(0)

	assert.Equal(t, []string{
		"appended:gdit commit",
		"appended:✓ Committed: Update project files",
		"appended:  14 files | +234 -12 lines",
		"appended:clear",
		"replaced:",
	}, got)
}

func TestSession_HooksReportMatches(t *testing.T) {
	var events []domain.SubmitEvent
	var lines, idles int
	s, v := newTestSession(t, WithLifecycleHooks(domain.LifecycleHooks{
		OnSubmit: func(_ context.Context, e *domain.SubmitEvent) { events = append(events, *e) },
		OnLine:   func(context.Context, *domain.LineEvent) { lines++ },
		OnIdle:   func(context.Context, *domain.EventBase) { idles++ },
	}))

	s.Submit("GDIT ADD readme.md")
	v.RunUntilIdle(0)
	s.Submit("nope")
	v.RunUntilIdle(0)

	require.Len(t, events, 2)
	assert.Equal(t, "gdit add", events[0].Command)
	assert.True(t, events[0].Matched)
	assert.False(t, events[1].Matched)
	assert.Equal(t, 4, lines)
	assert.Equal(t, 2, idles)
}

func TestSession_WaitWithRealClock(t *testing.T) {
	s := New(catalog.Default(), clock.NewReal(), WithTiming(Timing{
		InfoDelay: time.Millisecond, LineDelay: time.Millisecond,
		ClearDelay: time.Millisecond, NotFoundDelay: time.Millisecond,
	}))
	require.True(t, s.Submit("gdit push"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Wait(ctx))
	assert.False(t, s.Busy())
}

func joinTexts(lines []domain.OutputLine) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "|"
		}
		out += l.Text
	}
	return out
}
