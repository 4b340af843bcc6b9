package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/praaatap/gdit.site/pkg/catalog"
	"github.com/praaatap/gdit.site/pkg/clock"
	"github.com/praaatap/gdit.site/pkg/domain"
	"github.com/praaatap/gdit.site/pkg/matcher"
	"github.com/praaatap/gdit.site/pkg/playback"
	"github.com/praaatap/gdit.site/pkg/runner"
	"github.com/praaatap/gdit.site/pkg/script"
)

// CatalogURI is the resource holding the command reference.
const CatalogURI = "gdit://catalog"

// RunResult is returned by run_command.
type RunResult struct {
	Input   string              `json:"input" jsonschema_description:"The submitted line, verbatim"`
	Command string              `json:"command,omitempty" jsonschema_description:"Catalog command that matched, if any"`
	Matched bool                `json:"matched" jsonschema_description:"False when the terminal answered with command not found"`
	Cleared bool                `json:"cleared" jsonschema_description:"True when the transcript was emptied"`
	Lines   []domain.OutputLine `json:"lines" jsonschema_description:"Lines appended by the command, including the echoed input"`
	Elapsed string              `json:"elapsed" jsonschema_description:"Playback time the command would take in the browser"`
}

// CommandList is returned by list_commands.
type CommandList struct {
	Commands    []CommandInfo `json:"commands"`
	Suggestions []string      `json:"suggestions"`
}

// CommandInfo summarises a catalog entry.
type CommandInfo struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// PlayResult is returned by play_script.
type PlayResult struct {
	Lines      []domain.OutputLine `json:"lines" jsonschema_description:"Final transcript of the autoplay animation"`
	Keystrokes int                 `json:"keystrokes" jsonschema_description:"Characters typed by the animation"`
	Elapsed    string              `json:"elapsed" jsonschema_description:"Duration of the animation"`
}

// TranscriptResult is returned by reset_terminal.
type TranscriptResult struct {
	Lines []domain.OutputLine `json:"lines"`
}

type runArgs struct {
	Input string `json:"input"`
}

type playArgs struct {
	Seed float64 `json:"seed"`
}

// Server exposes one shared gdit terminal as an MCP server. Playback runs on a
// virtual clock so every tool call returns the finished output immediately.
type Server struct {
	catalog *catalog.Catalog
	script  []domain.ScriptLine
	timing  script.Timing
	logger  *slog.Logger

	mu      sync.Mutex
	clock   *clock.Virtual
	session *playback.Session
	sessOpt []playback.Option

	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithScript replaces the autoplay script used by play_script.
func WithScript(lines []domain.ScriptLine) Option {
	return func(s *Server) {
		s.script = lines
	}
}

// WithScriptTiming sets the autoplay timing used by play_script.
func WithScriptTiming(t script.Timing) Option {
	return func(s *Server) {
		s.timing = t
	}
}

// WithSessionOptions configures the shared terminal session.
func WithSessionOptions(opts ...playback.Option) Option {
	return func(s *Server) {
		s.sessOpt = append(s.sessOpt, opts...)
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(cat *catalog.Catalog, version string, opts ...Option) *Server {
	s := &Server{
		catalog:   cat,
		script:    script.DefaultScript(),
		timing:    script.DefaultTiming(),
		logger:    slog.Default(),
		clock:     clock.NewVirtual(),
		mcpServer: server.NewMCPServer("gdit-mcp", version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.session = playback.New(cat, s.clock, s.sessOpt...)
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("run_command",
		mcp.WithDescription("Type a line into the gdit demo terminal and return the output it plays back."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Command line, e.g. \"gdit status\" or \"help\"")),
		mcp.WithOutputSchema[RunResult](),
	), mcp.NewStructuredToolHandler(s.handleRunCommand))

	s.mcpServer.AddTool(mcp.NewTool("list_commands",
		mcp.WithDescription("List the commands the demo terminal recognises."),
		mcp.WithOutputSchema[CommandList](),
	), mcp.NewStructuredToolHandler(s.handleListCommands))

	s.mcpServer.AddTool(mcp.NewTool("reset_terminal",
		mcp.WithDescription("Discard the demo terminal's history and show the welcome banner again."),
		mcp.WithOutputSchema[TranscriptResult](),
	), mcp.NewStructuredToolHandler(s.handleReset))

	s.mcpServer.AddTool(mcp.NewTool("play_script",
		mcp.WithDescription("Play the landing-page autoplay animation to the end and return its transcript."),
		mcp.WithNumber("seed", mcp.Description("Seed for the typing jitter (optional)")),
		mcp.WithOutputSchema[PlayResult](),
	), mcp.NewStructuredToolHandler(s.handlePlayScript))
}

func (s *Server) handleRunCommand(ctx context.Context, request mcp.CallToolRequest, args runArgs) (RunResult, error) {
	input, err := runner.SanitizeInput(args.Input)
	if err != nil {
		s.logger.Warn("MCP run_command: input rejected", "err", err, "size", len(args.Input))
		return RunResult{}, fmt.Errorf("input rejected: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.session.Snapshot()
	start := s.clock.Now()
	if !s.session.Submit(input) {
		return RunResult{}, domain.ErrEmptyInput
	}
	s.clock.RunUntilIdle(0)
	after := s.session.Snapshot()

	res := RunResult{
		Input:   input,
		Elapsed: s.clock.Now().Sub(start).String(),
		Lines:   []domain.OutputLine{},
	}
	if matcher.IsClear(input) {
		res.Command, res.Matched = catalog.ClearCommand, true
		res.Cleared = true
		return res, nil
	}
	entry, ok := matcher.Match(s.catalog, input)
	res.Command, res.Matched = entry.Command, ok

	if len(after.Lines) >= len(before.Lines) {
		res.Lines = after.Lines[len(before.Lines):]
	}
	return res, nil
}

func (s *Server) handleListCommands(ctx context.Context, request mcp.CallToolRequest, args struct{}) (CommandList, error) {
	list := CommandList{Suggestions: s.catalog.Suggestions()}
	for _, e := range s.catalog.Entries() {
		list.Commands = append(list.Commands, CommandInfo{Command: e.Command, Description: e.Description})
	}
	return list, nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest, args struct{}) (TranscriptResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Reset()
	s.clock.RunUntilIdle(0)
	return TranscriptResult{Lines: s.session.Lines()}, nil
}

func (s *Server) handlePlayScript(ctx context.Context, request mcp.CallToolRequest, args playArgs) (PlayResult, error) {
	vc := clock.NewVirtual()
	keystrokes := 0
	hooks := domain.LifecycleHooks{
		OnType: func(context.Context, *domain.TypeEvent) { keystrokes++ },
	}
	p, err := script.New(s.script, vc,
		script.WithTiming(s.timing),
		script.WithSeed(uint64(args.Seed)),
		script.WithLifecycleHooks(hooks),
	)
	if err != nil {
		return PlayResult{}, err
	}
	if err := p.Start(); err != nil {
		return PlayResult{}, err
	}
	defer p.Stop()

	for {
		select {
		case <-p.Done():
			return PlayResult{
				Lines:      p.Snapshot().Lines,
				Keystrokes: keystrokes,
				Elapsed:    vc.Now().Sub(clock.Epoch).String(),
			}, nil
		case <-ctx.Done():
			return PlayResult{}, ctx.Err()
		default:
		}
		if !vc.Step() {
			return PlayResult{}, errors.New("autoplay stalled before the end of the script")
		}
	}
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(CatalogURI, "gdit command reference",
		mcp.WithResourceDescription("Markdown table of the commands the demo terminal recognises"),
		mcp.WithMIMEType("text/markdown"),
	), s.handleCatalog)
}

func (s *Server) handleCatalog(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      CatalogURI,
			MIMEType: "text/markdown",
			Text:     s.catalog.Markdown(),
		},
	}, nil
}
