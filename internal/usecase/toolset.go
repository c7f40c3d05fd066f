package usecase

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jirabridge/jirabridge/internal/domain"
)

// maxResultsCeiling is the upper bound enforced on every result-count
// argument before the remote service is called.
const maxResultsCeiling = 100

const defaultMaxResults = 50

// ConnectionInfo is the non-secret summary of the configured connection,
// reported by the health tool.
type ConnectionInfo struct {
	BaseURL        string
	Email          string
	DefaultProject string
}

// Toolset declares every tool the gateway exposes and binds each to a
// handler over the IssueService port. The set is closed: it is built once
// at startup and registered exhaustively with the gateway.
type Toolset struct {
	jira           IssueService
	info           ConnectionInfo
	defaultProject string
	logger         *slog.Logger
}

// NewToolset creates the toolset. The default project, when configured, is
// used by createIssue when the caller omits the project argument.
func NewToolset(jira IssueService, info ConnectionInfo, logger *slog.Logger) *Toolset {
	return &Toolset{
		jira:           jira,
		info:           info,
		defaultProject: info.DefaultProject,
		logger:         logger.With("component", "toolset"),
	}
}

// RegisterAll registers every tool with the gateway. A registration error
// here is a programming error (duplicate or unnamed tool) and aborts
// startup.
func (t *Toolset) RegisterAll(gw *Gateway) error {
	groups := [][]toolDef{
		t.issueTools(),
		t.workflowTools(),
		t.collaborationTools(),
		t.directoryTools(),
		t.agileTools(),
		t.planningTools(),
	}
	count := 0
	for _, group := range groups {
		for _, def := range group {
			if err := gw.Register(def.tool, def.handler); err != nil {
				return fmt.Errorf("register tools: %w", err)
			}
			count++
		}
	}
	t.logger.Info("Registered tools", slog.Int("count", count))
	return nil
}

type toolDef struct {
	tool    mcp.Tool
	handler Handler
}

// checkMaxResults validates a result-count argument against the ceiling.
// Out-of-range values are rejected, not clamped, so the caller learns the
// bound instead of silently receiving truncated results.
func checkMaxResults(n int) error {
	if n < 1 || n > maxResultsCeiling {
		return fmt.Errorf("max_results must be between 1 and %d (got %d)", maxResultsCeiling, n)
	}
	return nil
}

// mergeAdditionalFields parses the additional_fields JSON and merges it
// under the explicitly-named parameters. On key collision the explicit
// parameter wins.
func mergeAdditionalFields(fields map[string]any, raw string) error {
	if raw == "" {
		return nil
	}
	var extra map[string]any
	if err := json.Unmarshal([]byte(raw), &extra); err != nil {
		return fmt.Errorf("invalid JSON in additional_fields: %v", err)
	}
	for k, v := range extra {
		if _, exists := fields[k]; !exists {
			fields[k] = v
		}
	}
	return nil
}

// assigneePayload resolves the assignee and assignee_kind arguments into
// the wire-field payload.
func assigneePayload(args map[string]any) (map[string]any, error) {
	assignee, err := optionalString(args, "assignee")
	if err != nil {
		return nil, err
	}
	if assignee == "" {
		return nil, nil
	}
	kind, err := optionalString(args, "assignee_kind")
	if err != nil {
		return nil, err
	}
	return domain.IdentityPayload(assignee, domain.IdentityKind(kind))
}

// assigneeOptions declares the shared assignee/assignee_kind argument pair.
func assigneeOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("assignee",
			mcp.Description("Assignee account ID or username"),
		),
		mcp.WithString("assignee_kind",
			mcp.Description("How to interpret the assignee value; auto uses the colon heuristic"),
			mcp.Enum("auto", "account_id", "username"),
		),
	}
}
