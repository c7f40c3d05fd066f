package usecase

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (t *Toolset) collaborationTools() []toolDef {
	return []toolDef{
		{
			tool: mcp.NewTool("addComment",
				mcp.WithDescription("Add a comment to an issue"),
				mcp.WithString("issue_key",
					mcp.Required(),
					mcp.Description("Issue key (e.g., PROJ-123)"),
				),
				mcp.WithString("comment",
					mcp.Required(),
					mcp.Description("Comment text to add"),
				),
			),
			handler: t.handleAddComment,
		},
		{
			tool: mcp.NewTool("getComments",
				mcp.WithDescription("Get all comments for an issue"),
				mcp.WithString("issue_key",
					mcp.Required(),
					mcp.Description("Issue key (e.g., PROJ-123)"),
				),
			),
			handler: t.handleGetComments,
		},
		{
			tool: mcp.NewTool("addAttachment",
				mcp.WithDescription("Add an attachment to an issue"),
				mcp.WithString("issue_key",
					mcp.Required(),
					mcp.Description("Issue key (e.g., PROJ-123)"),
				),
				mcp.WithString("filename",
					mcp.Required(),
					mcp.Description("Name of the file to attach"),
				),
				mcp.WithString("content_base64",
					mcp.Required(),
					mcp.Description("Base64-encoded file content"),
				),
			),
			handler: t.handleAddAttachment,
		},
		{
			tool: mcp.NewTool("addWorklog",
				mcp.WithDescription("Add a worklog (time tracking) entry to an issue"),
				mcp.WithString("issue_key",
					mcp.Required(),
					mcp.Description("Issue key (e.g., PROJ-123)"),
				),
				mcp.WithString("time_spent",
					mcp.Required(),
					mcp.Description("Time spent (e.g., '3h 30m', '2d 4h', '1w 2d')"),
				),
				mcp.WithString("comment",
					mcp.Description("Optional worklog comment"),
				),
				mcp.WithString("started",
					mcp.Description("When work started (ISO 8601, e.g., '2024-01-15T09:00:00.000+0000')"),
				),
			),
			handler: t.handleAddWorklog,
		},
		{
			tool: mcp.NewTool("getWorklogs",
				mcp.WithDescription("Get all worklog entries for an issue"),
				mcp.WithString("issue_key",
					mcp.Required(),
					mcp.Description("Issue key (e.g., PROJ-123)"),
				),
			),
			handler: t.handleGetWorklogs,
		},
	}
}

func (t *Toolset) handleAddComment(ctx context.Context, args map[string]any) (any, error) {
	key, err := requireString(args, "issue_key")
	if err != nil {
		return nil, err
	}
	body, err := requireString(args, "comment")
	if err != nil {
		return nil, err
	}
	return t.jira.AddComment(ctx, key, body)
}

func (t *Toolset) handleGetComments(ctx context.Context, args map[string]any) (any, error) {
	key, err := requireString(args, "issue_key")
	if err != nil {
		return nil, err
	}
	return t.jira.Comments(ctx, key)
}

func (t *Toolset) handleAddAttachment(ctx context.Context, args map[string]any) (any, error) {
	key, err := requireString(args, "issue_key")
	if err != nil {
		return nil, err
	}
	filename, err := requireString(args, "filename")
	if err != nil {
		return nil, err
	}
	encoded, err := requireString(args, "content_base64")
	if err != nil {
		return nil, err
	}

	content, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 in content_base64: %v", err)
	}

	return t.jira.AddAttachment(ctx, key, filename, content)
}

func (t *Toolset) handleAddWorklog(ctx context.Context, args map[string]any) (any, error) {
	key, err := requireString(args, "issue_key")
	if err != nil {
		return nil, err
	}
	timeSpent, err := requireString(args, "time_spent")
	if err != nil {
		return nil, err
	}
	comment, err := optionalString(args, "comment")
	if err != nil {
		return nil, err
	}
	started, err := optionalString(args, "started")
	if err != nil {
		return nil, err
	}
	return t.jira.AddWorklog(ctx, key, timeSpent, comment, started)
}

func (t *Toolset) handleGetWorklogs(ctx context.Context, args map[string]any) (any, error) {
	key, err := requireString(args, "issue_key")
	if err != nil {
		return nil, err
	}
	return t.jira.Worklogs(ctx, key)
}
