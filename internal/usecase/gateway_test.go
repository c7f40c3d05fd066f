package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"

	"github.com/jirabridge/jirabridge/internal/usecase"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGatewayInvoke(t *testing.T) {
	remoteErr := errors.New("jira: Issue does not exist (status 404)")

	tests := []struct {
		name     string
		handler  usecase.Handler
		toolName string
		invoke   string
		wantOK   bool
		wantData any
		wantErr  string
	}{
		{
			name: "success wraps the handler result unchanged",
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				return map[string]any{"key": "PROJ-1"}, nil
			},
			toolName: "getIssue",
			invoke:   "getIssue",
			wantOK:   true,
			wantData: map[string]any{"key": "PROJ-1"},
		},
		{
			name: "handler error becomes a failure envelope",
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				return nil, remoteErr
			},
			toolName: "getIssue",
			invoke:   "getIssue",
			wantOK:   false,
			wantErr:  remoteErr.Error(),
		},
		{
			name: "unknown tool name is a failure, not a panic",
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				return "unused", nil
			},
			toolName: "getIssue",
			invoke:   "nonexistentTool",
			wantOK:   false,
			wantErr:  `unknown tool: "nonexistentTool" is not a registered tool`,
		},
		{
			name: "handler panic is recovered into a failure",
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				panic("nil dereference somewhere deep")
			},
			toolName: "getIssue",
			invoke:   "getIssue",
			wantOK:   false,
			wantErr:  `internal error in tool "getIssue": nil dereference somewhere deep`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			gw := usecase.NewGateway(testLogger())
			assert.NoError(gw.Register(mcp.NewTool(tt.toolName), tt.handler))

			env := gw.Invoke(context.Background(), tt.invoke, map[string]any{})

			assert.Equal(tt.wantOK, env.OK())
			if tt.wantOK {
				assert.Equal(tt.wantData, env.Data())
			} else {
				assert.Equal(tt.wantErr, env.Err())
			}
		})
	}
}

func TestGatewayRegisterRejectsDuplicates(t *testing.T) {
	assert := assert.New(t)
	gw := usecase.NewGateway(testLogger())

	handler := func(ctx context.Context, args map[string]any) (any, error) { return nil, nil }

	assert.NoError(gw.Register(mcp.NewTool("getIssue"), handler))
	assert.ErrorContains(gw.Register(mcp.NewTool("getIssue"), handler), "already registered")
	assert.ErrorContains(gw.Register(mcp.NewTool(""), handler), "must not be empty")
	assert.ErrorContains(gw.Register(mcp.NewTool("other"), nil), "must not be nil")
}

func TestGatewayToolsPreserveRegistrationOrder(t *testing.T) {
	assert := assert.New(t)
	gw := usecase.NewGateway(testLogger())
	handler := func(ctx context.Context, args map[string]any) (any, error) { return nil, nil }

	names := []string{"health", "getIssue", "createIssue"}
	for _, name := range names {
		assert.NoError(gw.Register(mcp.NewTool(name), handler))
	}

	tools := gw.Tools()
	got := make([]string, len(tools))
	for i, tool := range tools {
		got[i] = tool.Name
	}
	assert.Equal(names, got)
}

// Concurrent invocations of fault-injected and healthy tools must each
// resolve to their own envelope with no cross-contamination.
func TestGatewayInvokeConcurrent(t *testing.T) {
	assert := assert.New(t)
	gw := usecase.NewGateway(testLogger())

	const tools = 8
	for i := 0; i < tools; i++ {
		i := i
		name := fmt.Sprintf("tool%d", i)
		handler := func(ctx context.Context, args map[string]any) (any, error) {
			if i%2 == 0 {
				return map[string]any{"tool": name}, nil
			}
			return nil, fmt.Errorf("fault from %s", name)
		}
		assert.NoError(gw.Register(mcp.NewTool(name), handler))
	}

	const iterations = 50
	var wg sync.WaitGroup
	for i := 0; i < tools; i++ {
		for j := 0; j < iterations; j++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				name := fmt.Sprintf("tool%d", i)
				env := gw.Invoke(context.Background(), name, nil)
				if i%2 == 0 {
					assert.True(env.OK())
					assert.Equal(map[string]any{"tool": name}, env.Data())
				} else {
					assert.False(env.OK())
					assert.Equal(fmt.Sprintf("fault from %s", name), env.Err())
				}
			}(i)
		}
	}
	wg.Wait()
}

// fakeMCPServer records AddTool calls so Attach can be exercised without a
// live transport.
type fakeMCPServer struct {
	handlers map[string]mcpserver.ToolHandlerFunc
}

func (f *fakeMCPServer) AddTool(tool mcp.Tool, handler mcpserver.ToolHandlerFunc) {
	if f.handlers == nil {
		f.handlers = make(map[string]mcpserver.ToolHandlerFunc)
	}
	f.handlers[tool.Name] = handler
}

func TestGatewayAttachWrapsEnvelopes(t *testing.T) {
	assert := assert.New(t)
	gw := usecase.NewGateway(testLogger())

	assert.NoError(gw.Register(mcp.NewTool("ok"), func(ctx context.Context, args map[string]any) (any, error) {
		return map[string]any{"id": "10001"}, nil
	}))
	assert.NoError(gw.Register(mcp.NewTool("bad"), func(ctx context.Context, args map[string]any) (any, error) {
		return nil, errors.New("remote fault")
	}))

	srv := &fakeMCPServer{}
	gw.Attach(srv)
	assert.Len(srv.handlers, 2)

	okResult, err := srv.handlers["ok"](context.Background(), mcp.CallToolRequest{})
	assert.NoError(err)
	assert.False(okResult.IsError)
	text := okResult.Content[0].(mcp.TextContent).Text
	var decoded map[string]any
	assert.NoError(json.Unmarshal([]byte(text), &decoded))
	assert.Equal(true, decoded["success"])
	assert.Equal(map[string]any{"id": "10001"}, decoded["data"])

	badResult, err := srv.handlers["bad"](context.Background(), mcp.CallToolRequest{})
	assert.NoError(err)
	assert.True(badResult.IsError)
	text = badResult.Content[0].(mcp.TextContent).Text
	assert.NoError(json.Unmarshal([]byte(text), &decoded))
	assert.Equal(false, decoded["success"])
	assert.Equal("remote fault", decoded["error"])
}
