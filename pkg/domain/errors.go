package domain

import "errors"

// ErrUnknownKind is returned when a line kind name cannot be parsed.
var ErrUnknownKind = errors.New("unknown line kind")

// ErrEmptyInput is returned by adapters when a submission is blank after trimming.
var ErrEmptyInput = errors.New("empty input")

// ErrSessionNotFound is returned when a session ID cannot be found in the registry.
var ErrSessionNotFound = errors.New("session not found")

// ErrDuplicateCommand is returned when a catalog declares the same command twice.
var ErrDuplicateCommand = errors.New("duplicate command")

// ErrEmptyScript is returned when an autoplay script has no lines.
var ErrEmptyScript = errors.New("empty script")

// ErrAlreadyStarted is returned when a one-shot player is started a second time.
var ErrAlreadyStarted = errors.New("player already started")

// ErrTooManySessions is returned when the session registry is full.
var ErrTooManySessions = errors.New("too many sessions")

// ErrBusy is returned by adapters when a submission arrives while a command is playing.
var ErrBusy = errors.New("session busy")
