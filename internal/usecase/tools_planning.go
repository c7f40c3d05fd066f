package usecase

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (t *Toolset) planningTools() []toolDef {
	return []toolDef{
		{
			tool: mcp.NewTool("getProjectVersions",
				mcp.WithDescription("Get all versions/releases for a project"),
				mcp.WithString("project_key",
					mcp.Required(),
					mcp.Description("Project key (e.g., PROJ)"),
				),
			),
			handler: t.handleGetProjectVersions,
		},
		{
			tool: mcp.NewTool("createVersion",
				mcp.WithDescription("Create a new version/release in a project"),
				mcp.WithString("project_key",
					mcp.Required(),
					mcp.Description("Project key (e.g., PROJ)"),
				),
				mcp.WithString("name",
					mcp.Required(),
					mcp.Description("Version name (e.g., '1.2.0')"),
				),
				mcp.WithString("description",
					mcp.Description("Optional version description"),
				),
				mcp.WithString("start_date",
					mcp.Description("Start date (YYYY-MM-DD)"),
				),
				mcp.WithString("release_date",
					mcp.Description("Release date (YYYY-MM-DD)"),
				),
				mcp.WithBoolean("released",
					mcp.Description("Mark the version as released"),
					mcp.DefaultBool(false),
				),
			),
			handler: t.handleCreateVersion,
		},
		{
			tool: mcp.NewTool("getProjectComponents",
				mcp.WithDescription("Get all components for a project"),
				mcp.WithString("project_key",
					mcp.Required(),
					mcp.Description("Project key (e.g., PROJ)"),
				),
			),
			handler: t.handleGetProjectComponents,
		},
		{
			tool: mcp.NewTool("getMyFilters",
				mcp.WithDescription("Get saved filters owned by the authenticated user"),
				mcp.WithBoolean("favourite",
					mcp.Description("Return favourite filters instead of owned filters"),
					mcp.DefaultBool(false),
				),
			),
			handler: t.handleGetMyFilters,
		},
		{
			tool: mcp.NewTool("executeFilter",
				mcp.WithDescription("Execute a saved filter and return its issues"),
				mcp.WithNumber("filter_id",
					mcp.Required(),
					mcp.Description("Saved filter id"),
				),
				mcp.WithNumber("max_results",
					mcp.Description("Maximum number of issues to return"),
					mcp.DefaultNumber(defaultMaxResults),
					mcp.Min(1),
					mcp.Max(maxResultsCeiling),
				),
			),
			handler: t.handleExecuteFilter,
		},
	}
}

func (t *Toolset) handleGetProjectVersions(ctx context.Context, args map[string]any) (any, error) {
	key, err := requireString(args, "project_key")
	if err != nil {
		return nil, err
	}
	return t.jira.ProjectVersions(ctx, key)
}

func (t *Toolset) handleCreateVersion(ctx context.Context, args map[string]any) (any, error) {
	key, err := requireString(args, "project_key")
	if err != nil {
		return nil, err
	}
	name, err := requireString(args, "name")
	if err != nil {
		return nil, err
	}
	description, err := optionalString(args, "description")
	if err != nil {
		return nil, err
	}
	startDate, err := optionalString(args, "start_date")
	if err != nil {
		return nil, err
	}
	releaseDate, err := optionalString(args, "release_date")
	if err != nil {
		return nil, err
	}
	released, err := optionalBool(args, "released", false)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"project":  key,
		"name":     name,
		"released": released,
	}
	if description != "" {
		payload["description"] = description
	}
	if startDate != "" {
		payload["startDate"] = startDate
	}
	if releaseDate != "" {
		payload["releaseDate"] = releaseDate
	}

	return t.jira.CreateVersion(ctx, payload)
}

func (t *Toolset) handleGetProjectComponents(ctx context.Context, args map[string]any) (any, error) {
	key, err := requireString(args, "project_key")
	if err != nil {
		return nil, err
	}
	return t.jira.ProjectComponents(ctx, key)
}

func (t *Toolset) handleGetMyFilters(ctx context.Context, args map[string]any) (any, error) {
	favourite, err := optionalBool(args, "favourite", false)
	if err != nil {
		return nil, err
	}
	if favourite {
		return t.jira.FavouriteFilters(ctx)
	}
	return t.jira.MyFilters(ctx)
}

// handleExecuteFilter runs the saved filter through JQL search, which is
// what Jira's own filter endpoints do underneath.
func (t *Toolset) handleExecuteFilter(ctx context.Context, args map[string]any) (any, error) {
	filterID, err := requireInt(args, "filter_id")
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
	return t.jira.SearchIssues(ctx, fmt.Sprintf("filter=%d", filterID), maxResults, "", "")
}
