// Package mcp exposes Placify wizards as MCP tools so assistants can walk a
// user through registration one step at a time.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/nocap-placify/placify/internal/logging"
	"github.com/nocap-placify/placify/internal/runtime"
	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/ports"
	"github.com/nocap-placify/placify/pkg/presentation/view"
)

// WizardsURI is the resource listing every wizard definition.
const WizardsURI = "placify://wizards"

// SessionResponse is the structured result of every session tool.
type SessionResponse struct {
	SessionID string    `json:"session_id" jsonschema_description:"ID to pass to the next tool call"`
	View      view.View `json:"view" jsonschema_description:"What the user should see on the current step"`
	Error     string    `json:"error,omitempty" jsonschema_description:"Why the last action was refused or failed"`
	Invalid   []string  `json:"invalid,omitempty" jsonschema_description:"Fields that failed validation"`
}

// WizardSummary describes one wizard in list_wizards.
type WizardSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Steps       int    `json:"steps"`
}

// WizardList is the result of list_wizards.
type WizardList struct {
	Wizards []WizardSummary `json:"wizards"`
}

// StartArgs are the arguments of start_session.
type StartArgs struct {
	WizardID string `json:"wizard_id"`
}

// SessionArgs are the arguments of tools acting on one session.
type SessionArgs struct {
	SessionID string `json:"session_id"`
}

// SetFieldArgs are the arguments of set_field.
type SetFieldArgs struct {
	SessionID string `json:"session_id"`
	Field     string `json:"field"`
	Value     string `json:"value"`
}

// Server wraps a ports.WizardService as an MCP server.
type Server struct {
	svc       ports.WizardService
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(svc ports.WizardService, version string, opts ...Option) *Server {
	s := &Server{
		svc:    svc,
		logger: logging.NewNop(),
		mcpServer: server.NewMCPServer("placify-mcp", version,
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
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

// ServeSSE serves MCP over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_wizards",
		mcp.WithDescription("List the wizards a user can fill in."),
		mcp.WithOutputSchema[WizardList](),
	), mcp.NewStructuredToolHandler(s.handleListWizards))

	s.mcpServer.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Open a new session on the first step of a wizard."),
		mcp.WithString("wizard_id", mcp.Required(), mcp.Description("Wizard ID from list_wizards")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	s.mcpServer.AddTool(mcp.NewTool("set_field",
		mcp.WithDescription("Store a value for a field of the current step. Validation happens on advance."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("field", mcp.Required(), mcp.Description("Field name from the view")),
		mcp.WithString("value", mcp.Required(), mcp.Description("Raw value as typed by the user")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleSetField))

	s.mcpServer.AddTool(mcp.NewTool("advance",
		mcp.WithDescription("Validate the current step and move to the next one. Invalid fields are reported instead."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleAdvance))

	s.mcpServer.AddTool(mcp.NewTool("retreat",
		mcp.WithDescription("Go back one step. Entered values are kept."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleRetreat))

	s.mcpServer.AddTool(mcp.NewTool("submit",
		mcp.WithDescription("Submit the collected values from the review step."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleSubmit))

	s.mcpServer.AddTool(mcp.NewTool("view_session",
		mcp.WithDescription("Show the current step of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleView))
}

func (s *Server) respond(sess *domain.Session, cause error) (SessionResponse, error) {
	v, err := s.svc.Render(sess)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("render failed: %w", err)
	}
	resp := SessionResponse{SessionID: sess.ID, View: v}
	if cause != nil {
		resp.Error = cause.Error()
		var stepErr *runtime.StepError
		if errors.As(cause, &stepErr) {
			resp.Invalid = stepErr.Fields
		}
	}
	return resp, nil
}

func (s *Server) handleListWizards(ctx context.Context, request mcp.CallToolRequest, _ struct{}) (WizardList, error) {
	defs := s.svc.Wizards()
	list := WizardList{Wizards: make([]WizardSummary, 0, len(defs))}
	for _, def := range defs {
		list.Wizards = append(list.Wizards, WizardSummary{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Steps:       len(def.Steps),
		})
	}
	return list, nil
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest, args StartArgs) (SessionResponse, error) {
	sess, err := s.svc.Start(ctx, args.WizardID)
	if err != nil {
		return SessionResponse{}, err
	}
	s.logger.Info("MCP: session started", "session_id", sess.ID, "wizard", args.WizardID)
	return s.respond(sess, nil)
}

func (s *Server) handleSetField(ctx context.Context, request mcp.CallToolRequest, args SetFieldArgs) (SessionResponse, error) {
	sess, err := s.svc.SetValues(ctx, args.SessionID, map[string]string{args.Field: args.Value})
	if err != nil {
		s.logger.Warn("MCP set_field: Input rejected", "session_id", args.SessionID, "field", args.Field, "err", err)
		return SessionResponse{}, err
	}
	return s.respond(sess, nil)
}

func (s *Server) handleAdvance(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (SessionResponse, error) {
	sess, err := s.svc.Advance(ctx, args.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrStepInvalid) && sess != nil {
			return s.respond(sess, err)
		}
		return SessionResponse{}, err
	}
	return s.respond(sess, nil)
}

func (s *Server) handleRetreat(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (SessionResponse, error) {
	sess, err := s.svc.Retreat(ctx, args.SessionID)
	if err != nil {
		return SessionResponse{}, err
	}
	return s.respond(sess, nil)
}

func (s *Server) handleSubmit(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (SessionResponse, error) {
	sess, err := s.svc.Submit(ctx, args.SessionID)
	if err != nil {
		return SessionResponse{}, err
	}
	if sess.Failure != nil {
		return s.respond(sess, errors.New(sess.Failure.Message))
	}
	return s.respond(sess, nil)
}

func (s *Server) handleView(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (SessionResponse, error) {
	sess, err := s.svc.Session(ctx, args.SessionID)
	if err != nil {
		return SessionResponse{}, err
	}
	return s.respond(sess, nil)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(WizardsURI, "Wizard Definitions",
		mcp.WithResourceDescription("Every registered wizard with its steps and fields"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(s.svc.Wizards())
		if err != nil {
			return nil, fmt.Errorf("failed to encode wizards: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      WizardsURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
