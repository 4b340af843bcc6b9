package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSubmit     EventType = "submit"
	EventDrop       EventType = "drop"
	EventLine       EventType = "line"
	EventIdle       EventType = "idle"
	EventClear      EventType = "clear"
	EventReset      EventType = "reset"
	EventTyping     EventType = "typing"
	EventScriptDone EventType = "script_done"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp  time.Time `json:"timestamp"`
	Type       EventType `json:"type"`
	Generation uint64    `json:"generation"`
}

// SubmitEvent describes an input handed to the interactive engine.
type SubmitEvent struct {
	EventBase
	Input   string `json:"input"`
	Command string `json:"command,omitempty"` // matched catalog key, empty when not found
	Matched bool   `json:"matched"`
}

// LineEvent describes a line appended to a transcript by a scheduled continuation.
type LineEvent struct {
	EventBase
	Line  OutputLine `json:"line"`
	Index int        `json:"index"`
}

// TypeEvent describes the autoplay engine revealing one more character.
type TypeEvent struct {
	EventBase
	Cursor Cursor `json:"cursor"`
	Prefix string `json:"prefix"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run on the engine's continuation and must not call back into the engine.
type LifecycleHooks struct {
	OnSubmit     func(context.Context, *SubmitEvent)
	OnDrop       func(context.Context, *SubmitEvent)
	OnLine       func(context.Context, *LineEvent)
	OnIdle       func(context.Context, *EventBase)
	OnClear      func(context.Context, *EventBase)
	OnReset      func(context.Context, *EventBase)
	OnType       func(context.Context, *TypeEvent)
	OnScriptDone func(context.Context, *EventBase)
}
