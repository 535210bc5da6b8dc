package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/kursadbilgin/notify-mcp/internal/tools"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const serverName = "notify-mcp"

// NewMCPServer registers every tool definition against handlers.
func NewMCPServer(handlers *tools.Handlers, version string) *server.MCPServer {
	s := server.NewMCPServer(serverName, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	for _, tool := range tools.Definitions() {
		s.AddTool(tool, handlers.Handle)
	}
	return s
}

// ServeStdio speaks the protocol over in/out until ctx is cancelled or the
// input stream closes. ready, when set, runs once the server starts reading.
func ServeStdio(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer, logger *zap.Logger, ready func()) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(zap.NewStdLog(logger.Named("stdio")))

	in = &readyReader{Reader: in, ready: func() {
		logger.Info("stdio transport listening")
		if ready != nil {
			ready()
		}
	}}

	if err := stdio.Listen(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio transport failed: %w", err)
	}
	return nil
}

// readyReader fires ready before the first Read.
type readyReader struct {
	io.Reader
	once  sync.Once
	ready func()
}

func (r *readyReader) Read(p []byte) (int, error) {
	r.once.Do(r.ready)
	return r.Reader.Read(p)
}
