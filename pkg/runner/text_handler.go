package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"

	"github.com/praaatap/gdit.site/pkg/domain"
)

// Prompt precedes command lines and the input cursor.
const Prompt = "❯ "

// TextHandler renders the transcript as coloured terminal text.
type TextHandler struct {
	Reader *bufio.Reader
	Writer io.Writer

	out     *termenv.Output
	profile termenv.Profile
	typing  bool

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithColorProfile forces a colour profile instead of detecting it from the writer.
// termenv.Ascii disables colours and cursor control.
func WithColorProfile(p termenv.Profile) TextHandlerOption {
	return func(h *TextHandler) {
		h.out = termenv.NewOutput(h.Writer, termenv.WithProfile(p))
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		out:    termenv.NewOutput(w),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.profile = h.out.Profile
	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

func (h *TextHandler) pump() {
	defer close(h.inputChan)
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				h.inputChan <- inputResult{err: err}
			}
			return
		}
	}
}

// StyleLine renders one transcript line with the colours of its kind.
func StyleLine(o *termenv.Output, line domain.OutputLine) string {
	switch line.Kind {
	case domain.KindCommand:
		return o.String(strings.TrimSpace(Prompt)).Foreground(o.Color("6")).String() + " " +
			o.String(line.Text).Foreground(o.Color("15")).String()
	case domain.KindSuccess:
		return o.String(line.Text).Foreground(o.Color("2")).String()
	case domain.KindError:
		return o.String(line.Text).Foreground(o.Color("1")).String()
	case domain.KindInfo:
		return o.String(line.Text).Foreground(o.Color("4")).String()
	case domain.KindComment:
		return o.String(line.Text).Faint().String()
	default:
		return o.String(line.Text).Foreground(o.Color("7")).String()
	}
}

func (h *TextHandler) Output(ctx context.Context, lines []domain.OutputLine) error {
	h.endTyping()
	for _, line := range lines {
		if _, err := fmt.Fprintln(h.Writer, StyleLine(h.out, line)); err != nil {
			return err
		}
	}
	return nil
}

func (h *TextHandler) Clear(ctx context.Context) error {
	h.endTyping()
	if h.profile == termenv.Ascii {
		return nil
	}
	h.out.ClearScreen()
	h.out.MoveCursor(1, 1)
	return nil
}

func (h *TextHandler) endTyping() {
	if !h.typing {
		return
	}
	h.typing = false
	fmt.Fprint(h.Writer, "\r")
	h.out.ClearLine()
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	h.initPump()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			fmt.Fprint(h.Writer, h.out.String(Prompt).Foreground(h.out.Color("6")))
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}
			clean, err := SanitizeInput(res.text)
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return clean, nil
		}
	}
}

// Signal redraws the partially typed command line. Plain output ignores it.
func (h *TextHandler) Signal(ctx context.Context, name string, args map[string]any) error {
	if name != SignalTyping || h.profile == termenv.Ascii {
		return nil
	}
	prefix, _ := args["prefix"].(string)
	fmt.Fprint(h.Writer, "\r")
	h.out.ClearLine()
	fmt.Fprint(h.Writer, StyleLine(h.out, domain.Line(domain.KindCommand, prefix)))
	h.typing = true
	return nil
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	h.endTyping()
	_, err := fmt.Fprintln(h.Writer, h.out.String("[gdit] "+msg).Faint())
	return err
}
