package usecase

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (t *Toolset) agileTools() []toolDef {
	return []toolDef{
		{
			tool: mcp.NewTool("getBoards",
				mcp.WithDescription("List agile boards, optionally filtered by project"),
				mcp.WithString("project_key",
					mcp.Description("Project key to filter boards by (optional)"),
				),
				mcp.WithNumber("max_results",
					mcp.Description("Maximum number of boards to return"),
					mcp.DefaultNumber(defaultMaxResults),
					mcp.Min(1),
					mcp.Max(maxResultsCeiling),
				),
			),
			handler: t.handleGetBoards,
		},
		{
			tool: mcp.NewTool("getBoardIssues",
				mcp.WithDescription("Get issues for a board, optionally filtered by JQL"),
				mcp.WithNumber("board_id",
					mcp.Required(),
					mcp.Description("Board id (get from getBoards)"),
				),
				mcp.WithString("jql",
					mcp.Description("Optional JQL filter"),
				),
				mcp.WithNumber("max_results",
					mcp.Description("Maximum number of issues to return"),
					mcp.DefaultNumber(defaultMaxResults),
					mcp.Min(1),
					mcp.Max(maxResultsCeiling),
				),
			),
			handler: t.handleGetBoardIssues,
		},
		{
			tool: mcp.NewTool("getSprints",
				mcp.WithDescription("List sprints for a board"),
				mcp.WithNumber("board_id",
					mcp.Required(),
					mcp.Description("Board id (get from getBoards)"),
				),
				mcp.WithString("state",
					mcp.Description("Sprint state filter"),
					mcp.Enum("active", "closed", "future"),
				),
				mcp.WithNumber("max_results",
					mcp.Description("Maximum number of sprints to return"),
					mcp.DefaultNumber(defaultMaxResults),
					mcp.Min(1),
					mcp.Max(maxResultsCeiling),
				),
			),
			handler: t.handleGetSprints,
		},
		{
			tool: mcp.NewTool("getSprintIssues",
				mcp.WithDescription("Get issues in a sprint"),
				mcp.WithNumber("sprint_id",
					mcp.Required(),
					mcp.Description("Sprint id (get from getSprints)"),
				),
				mcp.WithString("jql",
					mcp.Description("Optional JQL filter"),
				),
				mcp.WithNumber("max_results",
					mcp.Description("Maximum number of issues to return"),
					mcp.DefaultNumber(defaultMaxResults),
					mcp.Min(1),
					mcp.Max(maxResultsCeiling),
				),
			),
			handler: t.handleGetSprintIssues,
		},
		{
			tool: mcp.NewTool("moveIssuesToSprint",
				mcp.WithDescription("Move issues to a sprint"),
				mcp.WithNumber("sprint_id",
					mcp.Required(),
					mcp.Description("Sprint id (get from getSprints)"),
				),
				mcp.WithArray("issue_keys",
					mcp.Required(),
					mcp.Description("Issue keys to move"),
					mcp.Items(map[string]any{"type": "string"}),
				),
			),
			handler: t.handleMoveIssuesToSprint,
		},
	}
}

func (t *Toolset) handleGetBoards(ctx context.Context, args map[string]any) (any, error) {
	projectKey, err := optionalString(args, "project_key")
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
	return t.jira.Boards(ctx, projectKey, maxResults)
}

func (t *Toolset) handleGetBoardIssues(ctx context.Context, args map[string]any) (any, error) {
	boardID, err := requireInt(args, "board_id")
	if err != nil {
		return nil, err
	}
	jql, err := optionalString(args, "jql")
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
	return t.jira.BoardIssues(ctx, boardID, jql, maxResults)
}

func (t *Toolset) handleGetSprints(ctx context.Context, args map[string]any) (any, error) {
	boardID, err := requireInt(args, "board_id")
	if err != nil {
		return nil, err
	}
	state, err := optionalString(args, "state")
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
	return t.jira.Sprints(ctx, boardID, state, maxResults)
}

func (t *Toolset) handleGetSprintIssues(ctx context.Context, args map[string]any) (any, error) {
	sprintID, err := requireInt(args, "sprint_id")
	if err != nil {
		return nil, err
	}
	jql, err := optionalString(args, "jql")
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
	return t.jira.SprintIssues(ctx, sprintID, jql, maxResults)
}

func (t *Toolset) handleMoveIssuesToSprint(ctx context.Context, args map[string]any) (any, error) {
	sprintID, err := requireInt(args, "sprint_id")
	if err != nil {
		return nil, err
	}
	keys, err := optionalStringSlice(args, "issue_keys")
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("issue_keys must contain at least one issue key")
	}
	if err := t.jira.MoveIssuesToSprint(ctx, sprintID, keys); err != nil {
		return nil, err
	}
	return map[string]any{"sprint_id": sprintID, "moved": keys}, nil
}
