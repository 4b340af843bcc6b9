package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestHandleExecutionError(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"canceled", context.Canceled, nil},
		{"wrapped eof", fmt.Errorf("input error: %w", io.EOF), nil},
		{"program killed", tea.ErrProgramKilled, nil},
		{"real error", boom, boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, handleExecutionError(tt.err))
		})
	}
}

func TestLogCompletion(t *testing.T) {
	var buf bytes.Buffer
	logCompletion(&buf, "Session", nil, false, nil)
	assert.Equal(t, ">>> Session finished.\n", buf.String())

	buf.Reset()
	logCompletion(&buf, "Session", context.Canceled, false, os.Interrupt)
	assert.Equal(t, "[CTRL+C]\n>>> Session interrupted.\n", buf.String())

	buf.Reset()
	logCompletion(&buf, "Session", nil, true, nil)
	assert.Empty(t, buf.String())
}

func TestSignalContext_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	sc := NewSignalContext(parent)
	defer sc.Cancel()

	cancel()
	<-sc.Done()
	assert.Nil(t, sc.Signal())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
	assert.False(t, fullScreen(RunOptions{Stdin: &bytes.Buffer{}, Stdout: &bytes.Buffer{}}))
}
