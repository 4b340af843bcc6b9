package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praaatap/gdit.site/internal/logging"
	"github.com/praaatap/gdit.site/pkg/runner"
	"github.com/praaatap/gdit.site/pkg/script"
)

func TestRunTry_JSON(t *testing.T) {
	var out bytes.Buffer
	err := RunTry(context.Background(), RunOptions{
		JSON:   true,
		Speed:  100,
		Stdin:  strings.NewReader("gdit whoami\nexit\n"),
		Stdout: &out,
		Stderr: io.Discard,
	})
	require.NoError(t, err)

	var texts []string
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var m runner.Message
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m), sc.Text())
		if m.Line != nil {
			texts = append(texts, m.Line.Text)
		}
	}
	assert.Contains(t, texts, "gdit whoami")
	assert.Contains(t, texts, "  Email:    developer@example.com")
}

func TestRunTry_PlainPrintsBannerAndCompletion(t *testing.T) {
	var out bytes.Buffer
	err := RunTry(context.Background(), RunOptions{
		Plain:  true,
		Speed:  100,
		Stdin:  strings.NewReader("help\n"),
		Stdout: &out,
		Stderr: io.Discard,
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "git for Google Drive")
	assert.Contains(t, text, "📖 Available Commands:")
	assert.Contains(t, text, ">>> Session finished.")
	assert.NotContains(t, text, "\x1b[", "plain mode must not emit escapes")
}

func TestRunPlay_Plain(t *testing.T) {
	var out bytes.Buffer
	err := RunPlay(context.Background(), RunOptions{
		Plain:  true,
		Seed:   1,
		Speed:  200,
		Stdin:  strings.NewReader(""),
		Stdout: &out,
		Stderr: io.Discard,
	})
	require.NoError(t, err)

	lines := script.DefaultScript()
	assert.Contains(t, out.String(), lines[len(lines)-1].Text)
	assert.Contains(t, out.String(), ">>> Autoplay finished.")
}

func TestRunCommands(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunCommands(context.Background(), RunOptions{Plain: true, Stdout: &out}))
		assert.Contains(t, out.String(), "gdit status")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunCommands(context.Background(), RunOptions{JSON: true, Stdout: &out}))

		var entries []commandJSON
		require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
		require.NotEmpty(t, entries)
		assert.Equal(t, "gdit init", entries[0].Command)
		assert.Equal(t, 5, entries[0].Lines)
	})
}

func TestRunMCP_UnknownTransport(t *testing.T) {
	err := RunMCP(context.Background(), RunOptions{Stderr: io.Discard}, "carrier-pigeon")
	assert.ErrorContains(t, err, "unknown transport")
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	cfg, err := loadConfig(RunOptions{})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, logging.NewNop(), ln) }()

	client := &http.Client{Timeout: 2 * time.Second}
	defer client.CloseIdleConnections()

	url := fmt.Sprintf("http://%s/healthz", ln.Addr())
	require.Eventually(t, func() bool {
		resp, err := client.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := client.Post(fmt.Sprintf("http://%s/sessions", ln.Addr()), "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
}
