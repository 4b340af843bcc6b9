package observability

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praaatap/gdit.site/pkg/catalog"
	"github.com/praaatap/gdit.site/pkg/clock"
	"github.com/praaatap/gdit.site/pkg/domain"
	"github.com/praaatap/gdit.site/pkg/playback"
	"github.com/praaatap/gdit.site/pkg/script"
)

func TestMetrics_PlaybackHooks(t *testing.T) {
	m := NewMetrics()
	vc := clock.NewVirtual()
	s := playback.New(catalog.Default(), vc, playback.WithLifecycleHooks(m.Hooks()))

	require.True(t, s.Submit("gdit push"))
	assert.False(t, s.Submit("gdit pull"), "busy submissions are dropped")
	vc.RunUntilIdle(0)

	require.True(t, s.Submit("gdit nope"))
	vc.RunUntilIdle(0)
	require.True(t, s.Submit("clear"))
	vc.RunUntilIdle(0)
	s.Reset()

	expected := `
# HELP gdit_submissions_total Accepted submissions by outcome (matched, not_found, clear).
# TYPE gdit_submissions_total counter
gdit_submissions_total{outcome="clear"} 1
gdit_submissions_total{outcome="matched"} 1
gdit_submissions_total{outcome="not_found"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "gdit_submissions_total"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.drops))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resets))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.clears))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lines.WithLabelValues("error")))
}

func TestMetrics_ScriptHooks(t *testing.T) {
	m := NewMetrics()
	vc := clock.NewVirtual()
	p, err := script.New(script.DefaultScript(), vc, script.WithSeed(1), script.WithLifecycleHooks(m.Hooks()))
	require.NoError(t, err)
	require.NoError(t, p.Start())

	runUntilDone(t, vc, p.Done())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.scriptsDone))
	assert.Positive(t, testutil.ToFloat64(m.keystrokes))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.Hooks().OnReset(context.Background(), &domain.EventBase{Type: domain.EventReset})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gdit_resets_total 1")
}

func TestChain_FansOutInOrder(t *testing.T) {
	var order []string
	first := domain.LifecycleHooks{
		OnReset: func(context.Context, *domain.EventBase) { order = append(order, "first") },
	}
	second := domain.LifecycleHooks{
		OnReset: func(context.Context, *domain.EventBase) { order = append(order, "second") },
		OnIdle:  func(context.Context, *domain.EventBase) { order = append(order, "idle") },
	}

	hooks := Chain(first, second)
	hooks.OnReset(context.Background(), &domain.EventBase{})
	hooks.OnIdle(context.Background(), &domain.EventBase{})
	hooks.OnLine(context.Background(), &domain.LineEvent{}) // unset everywhere

	assert.Equal(t, []string{"first", "second", "idle"}, order)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	vc := clock.NewVirtual()
	s := playback.New(catalog.Default(), vc, playback.WithLifecycleHooks(LogHooks(logger)))
	s.Submit("  GDIT Whoami ")
	vc.RunUntilIdle(0)

	assert.Contains(t, buf.String(), "msg=submit")
	assert.Contains(t, buf.String(), `command="gdit whoami"`)
	assert.Contains(t, buf.String(), "matched=true")
}

func runUntilDone(t *testing.T, vc *clock.Virtual, done <-chan struct{}) {
	t.Helper()
	for {
		select {
		case <-done:
			return
		default:
		}
		require.True(t, vc.Step(), "scheduler drained before completion")
	}
}
