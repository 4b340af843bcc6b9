package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/praaatap/gdit.site/pkg/catalog"
	"github.com/praaatap/gdit.site/pkg/domain"
)

const namespace = "gdit"

// Metrics collects counters for submissions, emitted lines and resets.
type Metrics struct {
	registry *prometheus.Registry

	submissions *prometheus.CounterVec
	drops       prometheus.Counter
	lines       *prometheus.CounterVec
	clears      prometheus.Counter
	resets      prometheus.Counter
	keystrokes  prometheus.Counter
	scriptsDone prometheus.Counter
}

// NewMetrics creates and registers the gdit collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Accepted submissions by outcome (matched, not_found, clear).",
		}, []string{"outcome"}),
		drops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_dropped_total",
			Help:      "Submissions ignored because playback was busy.",
		}),
		lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_emitted_total",
			Help:      "Lines appended to transcripts, by kind.",
		}, []string{"kind"}),
		clears: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clears_total",
			Help:      "Transcripts emptied by the clear command.",
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "Sessions reset to the banner.",
		}),
		keystrokes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "autoplay_keystrokes_total",
			Help:      "Characters revealed by the autoplay typist.",
		}),
		scriptsDone: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "autoplay_completed_total",
			Help:      "Autoplay scripts played to the end.",
		}),
	}
	m.registry.MustRegister(m.submissions, m.drops, m.lines, m.clears, m.resets, m.keystrokes, m.scriptsDone)
	return m
}

// Registry exposes the underlying registry (e.g. for testutil or extra collectors).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that record into m.
// Pass them to playback.WithLifecycleHooks or script.WithLifecycleHooks.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSubmit: func(_ context.Context, e *domain.SubmitEvent) {
			m.submissions.WithLabelValues(outcome(e)).Inc()
		},
		OnDrop: func(_ context.Context, _ *domain.SubmitEvent) {
			m.drops.Inc()
		},
		OnLine: func(_ context.Context, e *domain.LineEvent) {
			m.lines.WithLabelValues(e.Line.Kind.String()).Inc()
		},
		OnClear: func(_ context.Context, _ *domain.EventBase) {
			m.clears.Inc()
		},
		OnReset: func(_ context.Context, _ *domain.EventBase) {
			m.resets.Inc()
		},
		OnType: func(_ context.Context, _ *domain.TypeEvent) {
			m.keystrokes.Inc()
		},
		OnScriptDone: func(_ context.Context, _ *domain.EventBase) {
			m.scriptsDone.Inc()
		},
	}
}

func outcome(e *domain.SubmitEvent) string {
	switch {
	case e.Command == catalog.ClearCommand:
		return "clear"
	case e.Matched:
		return "matched"
	default:
		return "not_found"
	}
}
