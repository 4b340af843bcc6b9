package observability

import (
	"context"
	"log/slog"

	"github.com/praaatap/gdit.site/pkg/domain"
)

// Chain fans every hook out to each of the given sets, in order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSubmit: func(ctx context.Context, e *domain.SubmitEvent) {
			for _, h := range sets {
				if h.OnSubmit != nil {
					h.OnSubmit(ctx, e)
				}
			}
		},
		OnDrop: func(ctx context.Context, e *domain.SubmitEvent) {
			for _, h := range sets {
				if h.OnDrop != nil {
					h.OnDrop(ctx, e)
				}
			}
		},
		OnLine: func(ctx context.Context, e *domain.LineEvent) {
			for _, h := range sets {
				if h.OnLine != nil {
					h.OnLine(ctx, e)
				}
			}
		},
		OnIdle: func(ctx context.Context, e *domain.EventBase) {
			for _, h := range sets {
				if h.OnIdle != nil {
					h.OnIdle(ctx, e)
				}
			}
		},
		OnClear: func(ctx context.Context, e *domain.EventBase) {
			for _, h := range sets {
				if h.OnClear != nil {
					h.OnClear(ctx, e)
				}
			}
		},
		OnReset: func(ctx context.Context, e *domain.EventBase) {
			for _, h := range sets {
				if h.OnReset != nil {
					h.OnReset(ctx, e)
				}
			}
		},
		OnType: func(ctx context.Context, e *domain.TypeEvent) {
			for _, h := range sets {
				if h.OnType != nil {
					h.OnType(ctx, e)
				}
			}
		},
		OnScriptDone: func(ctx context.Context, e *domain.EventBase) {
			for _, h := range sets {
				if h.OnScriptDone != nil {
					h.OnScriptDone(ctx, e)
				}
			}
		},
	}
}

// LogHooks logs each lifecycle event at Info level, like an audit trail.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSubmit: func(ctx context.Context, e *domain.SubmitEvent) {
			logger.InfoContext(ctx, "submit", "input", e.Input, "command", e.Command, "matched", e.Matched, "generation", e.Generation)
		},
		OnDrop: func(ctx context.Context, e *domain.SubmitEvent) {
			logger.InfoContext(ctx, "submit_dropped", "input", e.Input)
		},
		OnClear: func(ctx context.Context, e *domain.EventBase) {
			logger.InfoContext(ctx, "clear", "generation", e.Generation)
		},
		OnReset: func(ctx context.Context, e *domain.EventBase) {
			logger.InfoContext(ctx, "reset", "generation", e.Generation)
		},
		OnScriptDone: func(ctx context.Context, e *domain.EventBase) {
			logger.InfoContext(ctx, "script_done")
		},
	}
}
