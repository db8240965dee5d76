package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/pkg/config"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RunsURI is the resource listing the stored runs.
const RunsURI = "waypoint://runs"

// DocumentArgs are the arguments of the document tools.
type DocumentArgs struct {
	Document        string  `json:"document"`
	FrameRate       float64 `json:"frame_rate,omitempty"`
	TransformParams string  `json:"transform_params,omitempty"`
}

// PathArgs are the arguments of get_path.
type PathArgs struct {
	RunID string `json:"run_id"`
	Key   string `json:"key"`
}

// Server exposes the converter as an MCP Server.
type Server struct {
	conv      *waypoint.Converter
	store     ports.PathStore
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used by the transports. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// NewServer creates a new MCP Server instance. store may be nil, in which
// case get_path and the runs resource are not registered.
func NewServer(conv *waypoint.Converter, store ports.PathStore, opts ...Option) *Server {
	s := &Server{
		conv:      conv,
		store:     store,
		logger:    slog.Default(),
		mcpServer: server.NewMCPServer("waypoint-mcp", waypoint.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

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

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: convert_document
	convertTool := mcp.NewTool("convert_document",
		mcp.WithDescription("Convert a Synfig .sif document into time-indexed animation paths."),
		mcp.WithString("document", mcp.Required(), mcp.Description("The .sif XML document")),
		mcp.WithNumber("frame_rate", mcp.Description("Frame rate override (optional, defaults to the canvas fps)")),
		mcp.WithString("transform_params", mcp.Description("Comma separated parameters that also get a transform-axis path (optional)")),
	)
	s.mcpServer.AddTool(convertTool, mcp.NewStructuredToolHandler(s.handleConvert))

	// TOOL: classify_document
	classifyTool := mcp.NewTool("classify_document",
		mcp.WithDescription("Report whether each parameter is static, partially or fully animated, without converting."),
		mcp.WithString("document", mcp.Required(), mcp.Description("The .sif XML document")),
	)
	s.mcpServer.AddTool(classifyTool, mcp.NewStructuredToolHandler(s.handleClassify))

	if s.store == nil {
		return
	}

	// TOOL: get_path
	s.mcpServer.AddTool(mcp.NewTool("get_path",
		mcp.WithDescription("Fetch a stored path of a previous conversion run."),
		mcp.WithString("run_id", mcp.Required(), mcp.Description("Run ID returned by convert_document")),
		mcp.WithString("key", mcp.Required(), mcp.Description("Store key, <layer-id>/<param>[@transform]")),
	), s.handleGetPath)
}

func (s *Server) handleGetPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args PathArgs
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	path, err := s.store.Load(ctx, args.RunID, args.Key)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	jsonBytes, err := json.Marshal(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode path: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleConvert(ctx context.Context, request mcp.CallToolRequest, args DocumentArgs) (*waypoint.Result, error) {
	conv, err := s.converterFor(args)
	if err != nil {
		return nil, err
	}
	res, err := conv.ConvertBytes(ctx, []byte(args.Document))
	if err != nil {
		return nil, fmt.Errorf("convert failed: %w", err)
	}
	return res, nil
}

func (s *Server) handleClassify(ctx context.Context, request mcp.CallToolRequest, args DocumentArgs) (*waypoint.Result, error) {
	res, err := s.conv.Inspect(ctx, []byte(args.Document))
	if err != nil {
		return nil, fmt.Errorf("classify failed: %w", err)
	}
	return res, nil
}

func (s *Server) converterFor(args DocumentArgs) (*waypoint.Converter, error) {
	overrides := map[string]any{}
	if args.FrameRate != 0 {
		overrides["frame_rate"] = args.FrameRate
	}
	if args.TransformParams != "" {
		overrides["transform_params"] = args.TransformParams
	}
	if len(overrides) == 0 {
		return s.conv, nil
	}
	settings, err := config.FromMap(s.conv.Settings(), overrides)
	if err != nil {
		return nil, err
	}
	return s.conv.Derive(waypoint.WithSettings(settings))
}

func (s *Server) registerResources() {
	if s.store == nil {
		return
	}
	// EXPOSE: waypoint://runs
	s.mcpServer.AddResource(mcp.NewResource(RunsURI, "Stored conversion runs",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		runs, err := s.store.Runs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list runs: %w", err)
		}
		if runs == nil {
			runs = []string{}
		}
		jsonBytes, err := json.Marshal(runs)
		if err != nil {
			return nil, fmt.Errorf("failed to encode runs: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      RunsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
