package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/praaatap/gdit.site"
	mcpAdapter "github.com/praaatap/gdit.site/pkg/adapters/mcp"
)

// Supported MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// RunMCP exposes the demo terminal to AI agents over the Model Context Protocol.
// Stdout carries JSON-RPC in stdio mode, so logs always go to Stderr.
func RunMCP(ctx context.Context, opts RunOptions, transport string) error {
	opts = opts.withDefaults()
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger, err := createLogger(cfg, opts, false)
	if err != nil {
		return err
	}
	engine, err := createEngine(cfg, logger)
	if err != nil {
		return err
	}

	srv := mcpAdapter.NewServer(engine.Catalog(), gdit.Version,
		mcpAdapter.WithScript(engine.Script()),
		mcpAdapter.WithScriptTiming(engine.AutoplayTiming()),
		mcpAdapter.WithSessionOptions(engine.SessionOptions()...),
		mcpAdapter.WithLogger(logger),
	)

	switch transport {
	case TransportStdio:
		logger.Info("Starting gdit MCP Server (Stdio)...")
		if err := srv.ServeStdio(); err != nil {
			return fmt.Errorf("MCP server failed: %w", err)
		}
		return nil
	case TransportSSE:
		sigCtx := NewSignalContext(ctx)
		defer sigCtx.Cancel()

		err := srv.ServeSSE(sigCtx, cfg.Addr, baseURL(cfg.Addr))
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("MCP server failed: %w", err)
		}
		logger.Info("MCP Server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport: %s. Supported: %s, %s", transport, TransportStdio, TransportSSE)
	}
}

func baseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
