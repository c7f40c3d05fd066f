package usecase

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Standard errors returned by the gateway.
var (
	// ErrUnknownTool is returned by Invoke for tool names with no
	// registered handler. This is a caller-side integration error, not a
	// remote-service fault.
	ErrUnknownTool = errors.New("unknown tool")
)

// MCPServerAdapter is the interface the gateway needs from the underlying
// MCP server (mcp-go). It keeps the gateway free of a hard dependency on a
// specific server implementation.
type MCPServerAdapter interface {
	AddTool(tool mcp.Tool, handler mcpserver.ToolHandlerFunc)
}

// IssueService is the port the tool handlers call. One method per remote
// operation; the production implementation forwards each to the Jira REST
// API. All responses are the remote service's decoded JSON, returned
// without transformation so envelopes wrap it unchanged.
type IssueService interface {
	// ServerInfo fetches instance metadata; used as the connectivity check.
	ServerInfo(ctx context.Context) (map[string]any, error)

	// Issue operations.
	Issue(ctx context.Context, key, fields, expand string) (map[string]any, error)
	CreateIssue(ctx context.Context, fields map[string]any) (map[string]any, error)
	UpdateIssue(ctx context.Context, key string, fields map[string]any) error
	SearchIssues(ctx context.Context, jql string, maxResults int, fields, expand string) (map[string]any, error)

	// Workflow transitions.
	Transitions(ctx context.Context, key string) ([]map[string]any, error)
	ApplyTransition(ctx context.Context, key string, payload map[string]any) error

	// Comments and attachments.
	AddComment(ctx context.Context, key, body string) (map[string]any, error)
	Comments(ctx context.Context, key string) ([]map[string]any, error)
	AddAttachment(ctx context.Context, key, filename string, content []byte) ([]map[string]any, error)

	// Users.
	SearchUsers(ctx context.Context, query string, maxResults int, includeInactive bool) ([]map[string]any, error)
	AssignableUsers(ctx context.Context, issueKey string, maxResults int) ([]map[string]any, error)

	// Worklogs.
	AddWorklog(ctx context.Context, key, timeSpent, comment, started string) (map[string]any, error)
	Worklogs(ctx context.Context, key string) ([]map[string]any, error)

	// Issue links.
	CreateIssueLink(ctx context.Context, payload map[string]any) error
	IssueLinkTypes(ctx context.Context) ([]map[string]any, error)

	// Projects and metadata.
	Projects(ctx context.Context) ([]map[string]any, error)
	Project(ctx context.Context, key string) (map[string]any, error)
	IssueTypes(ctx context.Context) ([]map[string]any, error)

	// Agile boards and sprints.
	Boards(ctx context.Context, projectKey string, maxResults int) (map[string]any, error)
	BoardIssues(ctx context.Context, boardID int, jql string, maxResults int) (map[string]any, error)
	Sprints(ctx context.Context, boardID int, state string, maxResults int) (map[string]any, error)
	SprintIssues(ctx context.Context, sprintID int, jql string, maxResults int) (map[string]any, error)
	MoveIssuesToSprint(ctx context.Context, sprintID int, issueKeys []string) error

	// Versions and components.
	ProjectVersions(ctx context.Context, projectKey string) ([]map[string]any, error)
	CreateVersion(ctx context.Context, payload map[string]any) (map[string]any, error)
	ProjectComponents(ctx context.Context, projectKey string) ([]map[string]any, error)

	// Saved filters.
	MyFilters(ctx context.Context) ([]map[string]any, error)
	FavouriteFilters(ctx context.Context) ([]map[string]any, error)
}
