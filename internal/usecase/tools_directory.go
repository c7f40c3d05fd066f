package usecase

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (t *Toolset) directoryTools() []toolDef {
	return []toolDef{
		{
			tool: mcp.NewTool("searchUsers",
				mcp.WithDescription("Search for users by email, username, or display name; returns the accountId needed for assignments"),
				mcp.WithString("query",
					mcp.Required(),
					mcp.Description("Search query (email, username, or display name)"),
				),
				mcp.WithNumber("max_results",
					mcp.Description("Maximum number of users to return"),
					mcp.DefaultNumber(defaultMaxResults),
					mcp.Min(1),
					mcp.Max(maxResultsCeiling),
				),
				mcp.WithBoolean("include_inactive",
					mcp.Description("Include inactive users in results"),
					mcp.DefaultBool(false),
				),
			),
			handler: t.handleSearchUsers,
		},
		{
			tool: mcp.NewTool("getAssignableUsers",
				mcp.WithDescription("Get users that can be assigned to a specific issue"),
				mcp.WithString("issue_key",
					mcp.Required(),
					mcp.Description("Issue key (e.g., PROJ-123)"),
				),
				mcp.WithNumber("max_results",
					mcp.Description("Maximum number of users to return"),
					mcp.DefaultNumber(defaultMaxResults),
					mcp.Min(1),
					mcp.Max(maxResultsCeiling),
				),
			),
			handler: t.handleGetAssignableUsers,
		},
		{
			tool: mcp.NewTool("getProjects",
				mcp.WithDescription("List all accessible projects"),
				mcp.WithNumber("limit",
					mcp.Description("Maximum number of projects to return"),
					mcp.DefaultNumber(defaultMaxResults),
					mcp.Min(1),
					mcp.Max(maxResultsCeiling),
				),
			),
			handler: t.handleGetProjects,
		},
		{
			tool: mcp.NewTool("getProject",
				mcp.WithDescription("Get detailed information about a specific project"),
				mcp.WithString("project_key",
					mcp.Required(),
					mcp.Description("Project key (e.g., PROJ)"),
				),
			),
			handler: t.handleGetProject,
		},
		{
			tool: mcp.NewTool("getIssueTypes",
				mcp.WithDescription("Get issue types for a project, or all issue types"),
				mcp.WithString("project_key",
					mcp.Description("Project key to get issue types for (optional)"),
				),
			),
			handler: t.handleGetIssueTypes,
		},
		{
			tool: mcp.NewTool("createIssueLink",
				mcp.WithDescription("Create a link between two issues; use getIssueLinkTypes for available link types"),
				mcp.WithString("link_type",
					mcp.Required(),
					mcp.Description("Link type name (e.g., 'Blocks', 'Relates')"),
				),
				mcp.WithString("inward_issue",
					mcp.Required(),
					mcp.Description("Inward issue key (e.g., PROJ-123)"),
				),
				mcp.WithString("outward_issue",
					mcp.Required(),
					mcp.Description("Outward issue key (e.g., PROJ-456)"),
				),
				mcp.WithString("comment",
					mcp.Description("Optional comment for the link"),
				),
			),
			handler: t.handleCreateIssueLink,
		},
		{
			tool: mcp.NewTool("getIssueLinkTypes",
				mcp.WithDescription("Get available issue link types (e.g., 'Blocks', 'Relates', 'Duplicates')"),
			),
			handler: t.handleGetIssueLinkTypes,
		},
	}
}

func (t *Toolset) handleSearchUsers(ctx context.Context, args map[string]any) (any, error) {
	query, err := requireString(args, "query")
	if err != nil {
		return nil, err
	}
	maxResults, err := optionalInt(args, "max_results", defaultMaxResults)
	if err != nil {
		return nil, err
	}
	if err := checkMaxResults(maxResults); err != nil {
		return nil, err
	}
	includeInactive, err := optionalBool(args, "include_inactive", false)
	if err != nil {
		return nil, err
	}
	return t.jira.SearchUsers(ctx, query, maxResults, includeInactive)
}

func (t *Toolset) handleGetAssignableUsers(ctx context.Context, args map[string]any) (any, error) {
	key, err := requireString(args, "issue_key")
	if err != nil {
		return nil, err
	}
	maxResults, err := optionalInt(args, "max_results", defaultMaxResults)
	if err != nil {
		return nil, err
	}
	if err := checkMaxResults(maxResults); err != nil {
		return nil, err
	}
	return t.jira.AssignableUsers(ctx, key, maxResults)
}

func (t *Toolset) handleGetProjects(ctx context.Context, args map[string]any) (any, error) {
	limit, err := optionalInt(args, "limit", defaultMaxResults)
	if err != nil {
		return nil, err
	}
	if limit < 1 || limit > maxResultsCeiling {
		return nil, fmt.Errorf("limit must be between 1 and %d (got %d)", maxResultsCeiling, limit)
	}
	projects, err := t.jira.Projects(ctx)
	if err != nil {
		return nil, err
	}
	if len(projects) > limit {
		projects = projects[:limit]
	}
	return projects, nil
}

func (t *Toolset) handleGetProject(ctx context.Context, args map[string]any) (any, error) {
	key, err := requireString(args, "project_key")
	if err != nil {
		return nil, err
	}
	return t.jira.Project(ctx, key)
}

func (t *Toolset) handleGetIssueTypes(ctx context.Context, args map[string]any) (any, error) {
	projectKey, err := optionalString(args, "project_key")
	if err != nil {
		return nil, err
	}
	if projectKey == "" {
		return t.jira.IssueTypes(ctx)
	}
	project, err := t.jira.Project(ctx, projectKey)
	if err != nil {
		return nil, err
	}
	types, _ := project["issueTypes"].([]any)
	if types == nil {
		types = []any{}
	}
	return types, nil
}

func (t *Toolset) handleCreateIssueLink(ctx context.Context, args map[string]any) (any, error) {
	linkType, err := requireString(args, "link_type")
	if err != nil {
		return nil, err
	}
	inward, err := requireString(args, "inward_issue")
	if err != nil {
		return nil, err
	}
	outward, err := requireString(args, "outward_issue")
	if err != nil {
		return nil, err
	}
	comment, err := optionalString(args, "comment")
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"type":         map[string]any{"name": linkType},
		"inwardIssue":  map[string]any{"key": inward},
		"outwardIssue": map[string]any{"key": outward},
	}
	if comment != "" {
		payload["comment"] = map[string]any{"body": comment}
	}

	if err := t.jira.CreateIssueLink(ctx, payload); err != nil {
		return nil, err
	}
	return map[string]any{
		"link_type":     linkType,
		"inward_issue":  inward,
		"outward_issue": outward,
	}, nil
}

func (t *Toolset) handleGetIssueLinkTypes(ctx context.Context, args map[string]any) (any, error) {
	return t.jira.IssueLinkTypes(ctx)
}
