package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jirabridge/jirabridge/internal/domain"
)

// Handler executes one tool call. It returns the remote service's decoded
// response on success, or an error which the gateway converts into a
// Failure envelope. Handlers never write to shared state.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// registration pairs a tool declaration with its handler. The slice keeps
// registration order stable for Attach.
type registration struct {
	tool    mcp.Tool
	handler Handler
}

// Gateway is the uniform tool-invocation gateway: a name-keyed handler
// table populated once at startup, plus a total Invoke that never lets a
// fault escape past its boundary.
type Gateway struct {
	mu     sync.RWMutex
	byName map[string]registration
	order  []string
	logger *slog.Logger
	tracer trace.Tracer
}

// NewGateway creates an empty gateway.
func NewGateway(logger *slog.Logger) *Gateway {
	return &Gateway{
		byName: make(map[string]registration),
		logger: logger.With("component", "gateway"),
		tracer: otel.Tracer("jirabridge/gateway"),
	}
}

// Register adds a tool and its handler. Names are unique; registering a
// duplicate or a nil handler is a startup programming error and fails
// loudly rather than shadowing the earlier registration.
func (g *Gateway) Register(tool mcp.Tool, handler Handler) error {
	if tool.Name == "" {
		return fmt.Errorf("tool name must not be empty")
	}
	if handler == nil {
		return fmt.Errorf("tool %q: handler must not be nil", tool.Name)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.byName[tool.Name]; exists {
		return fmt.Errorf("tool %q already registered", tool.Name)
	}
	g.byName[tool.Name] = registration{tool: tool, handler: handler}
	g.order = append(g.order, tool.Name)
	g.logger.Debug("Registered tool", slog.String("tool", tool.Name))
	return nil
}

// Tools returns the registered tool declarations in registration order.
func (g *Gateway) Tools() []mcp.Tool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	tools := make([]mcp.Tool, 0, len(g.order))
	for _, name := range g.order {
		tools = append(tools, g.byName[name].tool)
	}
	return tools
}

// Invoke dispatches one tool call and always returns a well-formed
// envelope. Unknown names, handler errors and handler panics all terminate
// here; nothing propagates to the transport.
func (g *Gateway) Invoke(ctx context.Context, name string, args map[string]any) (result domain.Result) {
	ctx, span := g.tracer.Start(ctx, "tool."+name,
		trace.WithAttributes(attribute.String("tool.name", name)))
	defer span.End()

	log := g.logger.With(slog.String("tool", name))

	defer func() {
		if r := recover(); r != nil {
			log.Error("Tool handler panicked", slog.Any("panic", r))
			span.SetStatus(codes.Error, "panic")
			result = domain.Failuref("internal error in tool %q: %v", name, r)
		}
	}()

	g.mu.RLock()
	reg, ok := g.byName[name]
	g.mu.RUnlock()
	if !ok {
		log.Warn("Unknown tool requested")
		span.SetStatus(codes.Error, ErrUnknownTool.Error())
		return domain.Failuref("%v: %q is not a registered tool", ErrUnknownTool, name)
	}

	data, err := reg.handler(ctx, args)
	if err != nil {
		log.Warn("Tool invocation failed", slog.Any("error", err))
		span.SetStatus(codes.Error, err.Error())
		return domain.Failure(err.Error())
	}

	log.Debug("Tool invocation succeeded")
	span.SetStatus(codes.Ok, "")
	return domain.Success(data)
}

// Attach registers every tool with the MCP server. The wrapper converts
// the envelope into a text result carrying its JSON form; Failures set the
// protocol-level error flag but are still envelopes, never protocol
// errors.
func (g *Gateway) Attach(srv MCPServerAdapter) {
	for _, tool := range g.Tools() {
		name := tool.Name
		srv.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			env := g.Invoke(ctx, name, req.GetArguments())
			return toolResult(env), nil
		})
	}
	g.logger.Info("Attached tools to MCP server", slog.Int("count", len(g.order)))
}

func toolResult(env domain.Result) *mcp.CallToolResult {
	payload, err := json.Marshal(env)
	if err != nil {
		// The envelope holds values decoded from JSON, so this should be
		// unreachable; keep the contract total anyway.
		payload, _ = json.Marshal(domain.Failuref("failed to encode result: %v", err))
	}
	res := mcp.NewToolResultText(string(payload))
	if !env.OK() {
		res.IsError = true
	}
	return res
}
