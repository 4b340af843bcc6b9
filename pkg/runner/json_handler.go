package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/praaatap/gdit.site/pkg/domain"
)

// Message is one JSON line written by JSONHandler.
type Message struct {
	Type string             `json:"type"` // line, clear, busy, idle, typing, system
	Line *domain.OutputLine `json:"line,omitempty"`
	Text string             `json:"text,omitempty"`
	Args map[string]any     `json:"args,omitempty"`
}

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder

	mu sync.Mutex
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) emit(m Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Encoder.Encode(m)
}

func (h *JSONHandler) Output(ctx context.Context, lines []domain.OutputLine) error {
	for i := range lines {
		if err := h.emit(Message{Type: "line", Line: &lines[i]}); err != nil {
			return err
		}
	}
	return nil
}

func (h *JSONHandler) Clear(ctx context.Context) error {
	return h.emit(Message{Type: "clear"})
}

// Input reads one line. It accepts a JSON string, an object with an "input" field,
// or raw text.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	text = strings.TrimSpace(text)

	var val string
	var obj struct {
		Input string `json:"input"`
	}
	switch {
	case json.Unmarshal([]byte(text), &val) == nil:
	case json.Unmarshal([]byte(text), &obj) == nil:
		val = obj.Input
	default:
		val = text
	}
	return SanitizeInput(val)
}

func (h *JSONHandler) Signal(ctx context.Context, name string, args map[string]any) error {
	return h.emit(Message{Type: name, Args: args})
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.emit(Message{Type: "system", Text: msg})
}
