package usecase

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (t *Toolset) issueTools() []toolDef {
	return []toolDef{
		{
			tool: mcp.NewTool("health",
				mcp.WithDescription("Health check: validates configuration and Jira connectivity"),
				mcp.WithBoolean("check_connectivity",
					mcp.Description("If true, verify Jira connectivity by fetching server info"),
					mcp.DefaultBool(true),
				),
			),
			handler: t.handleHealth,
		},
		{
			tool: mcp.NewTool("getIssue",
				mcp.WithDescription("Get issue details by key"),
				mcp.WithString("issue_key",
					mcp.Required(),
					mcp.Description("Issue key (e.g., PROJ-123)"),
				),
				mcp.WithString("fields",
					mcp.Description("Comma-separated list of fields to return"),
				),
				mcp.WithString("expand",
					mcp.Description("Comma-separated list of parameters to expand"),
				),
			),
			handler: t.handleGetIssue,
		},
		{
			tool: mcp.NewTool("createIssue",
				append([]mcp.ToolOption{
					mcp.WithDescription("Create a new issue in Jira"),
					mcp.WithString("project",
						mcp.Description("Project key (e.g., PROJ); defaults to the configured default project"),
					),
					mcp.WithString("summary",
						mcp.Required(),
						mcp.Description("Issue summary/title"),
					),
					mcp.WithString("description",
						mcp.Required(),
						mcp.Description("Issue description"),
					),
					mcp.WithString("issue_type",
						mcp.Description("Issue type (e.g., Task, Bug, Story)"),
						mcp.DefaultString("Task"),
					),
					mcp.WithString("priority",
						mcp.Description("Priority name (e.g., High, Medium, Low)"),
					),
					mcp.WithArray("labels",
						mcp.Description("List of labels"),
						mcp.Items(map[string]any{"type": "string"}),
					),
					mcp.WithString("additional_fields",
						mcp.Description("JSON object of additional fields; explicit arguments win on collision"),
					),
				}, assigneeOptions()...)...,
			),
			handler: t.handleCreateIssue,
		},
		{
			tool: mcp.NewTool("updateIssue",
				append([]mcp.ToolOption{
					mcp.WithDescription("Update an existing issue's fields"),
					mcp.WithString("issue_key",
						mcp.Required(),
						mcp.Description("Issue key (e.g., PROJ-123)"),
					),
					mcp.WithString("summary",
						mcp.Description("New summary/title"),
					),
					mcp.WithString("description",
						mcp.Description("New description"),
					),
					mcp.WithString("priority",
						mcp.Description("New priority name"),
					),
					mcp.WithArray("labels",
						mcp.Description("New list of labels (replaces existing)"),
						mcp.Items(map[string]any{"type": "string"}),
					),
					mcp.WithString("additional_fields",
						mcp.Description("JSON object of additional fields; explicit arguments win on collision"),
					),
				}, assigneeOptions()...)...,
			),
			handler: t.handleUpdateIssue,
		},
		{
			tool: mcp.NewTool("searchIssues",
				mcp.WithDescription("Search for issues using JQL (Jira Query Language)"),
				mcp.WithString("jql",
					mcp.Required(),
					mcp.Description("JQL query string (e.g., 'project = PROJ AND status = Open')"),
				),
				mcp.WithNumber("max_results",
					mcp.Description("Maximum number of issues to return"),
					mcp.DefaultNumber(defaultMaxResults),
					mcp.Min(1),
					mcp.Max(maxResultsCeiling),
				),
				mcp.WithString("fields",
					mcp.Description("Comma-separated list of fields to return"),
				),
				mcp.WithString("expand",
					mcp.Description("Comma-separated list of parameters to expand"),
				),
			),
			handler: t.handleSearchIssues,
		},
	}
}

func (t *Toolset) handleHealth(ctx context.Context, args map[string]any) (any, error) {
	checkConnectivity, err := optionalBool(args, "check_connectivity", true)
	if err != nil {
		return nil, err
	}

	status := map[string]any{
		"jira_url":             t.info.BaseURL,
		"jira_email":           t.info.Email,
		"api_token_configured": true,
		"default_project":      t.defaultProject,
	}

	var connectivity any = "not_checked"
	if checkConnectivity {
		info, err := t.jira.ServerInfo(ctx)
		if err != nil {
			connectivity = map[string]any{"status": "error", "error": err.Error()}
		} else {
			connectivity = map[string]any{"status": "ok", "server_info": info}
		}
	}

	return map[string]any{
		"config":       status,
		"connectivity": connectivity,
	}, nil
}

func (t *Toolset) handleGetIssue(ctx context.Context, args map[string]any) (any, error) {
	key, err := requireString(args, "issue_key")
	if err != nil {
		return nil, err
	}
	fields, err := optionalString(args, "fields")
	if err != nil {
		return nil, err
	}
	expand, err := optionalString(args, "expand")
	if err != nil {
		return nil, err
	}
	return t.jira.Issue(ctx, key, fields, expand)
}

func (t *Toolset) handleCreateIssue(ctx context.Context, args map[string]any) (any, error) {
	project, err := optionalString(args, "project")
	if err != nil {
		return nil, err
	}
	if project == "" {
		project = t.defaultProject
	}
	if project == "" {
		return nil, fmt.Errorf("missing required argument %q and no default project configured", "project")
	}

	summary, err := requireString(args, "summary")
	if err != nil {
		return nil, err
	}
	description, err := requireString(args, "description")
	if err != nil {
		return nil, err
	}
	issueType, err := optionalString(args, "issue_type")
	if err != nil {
		return nil, err
	}
	if issueType == "" {
		issueType = "Task"
	}

	fields := map[string]any{
		"project":     map[string]any{"key": project},
		"summary":     summary,
		"description": description,
		"issuetype":   map[string]any{"name": issueType},
	}

	priority, err := optionalString(args, "priority")
	if err != nil {
		return nil, err
	}
	if priority != "" {
		fields["priority"] = map[string]any{"name": priority}
	}

	assignee, err := assigneePayload(args)
	if err != nil {
		return nil, err
	}
	if assignee != nil {
		fields["assignee"] = assignee
	}

	labels, err := optionalStringSlice(args, "labels")
	if err != nil {
		return nil, err
	}
	if labels != nil {
		fields["labels"] = labels
	}

	additional, err := optionalString(args, "additional_fields")
	if err != nil {
		return nil, err
	}
	if err := mergeAdditionalFields(fields, additional); err != nil {
		return nil, err
	}

	return t.jira.CreateIssue(ctx, fields)
}

func (t *Toolset) handleUpdateIssue(ctx context.Context, args map[string]any) (any, error) {
	key, err := requireString(args, "issue_key")
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}

	summary, err := optionalString(args, "summary")
	if err != nil {
		return nil, err
	}
	if summary != "" {
		fields["summary"] = summary
	}

	description, err := optionalString(args, "description")
	if err != nil {
		return nil, err
	}
	if description != "" {
		fields["description"] = description
	}

	priority, err := optionalString(args, "priority")
	if err != nil {
		return nil, err
	}
	if priority != "" {
		fields["priority"] = map[string]any{"name": priority}
	}

	assignee, err := assigneePayload(args)
	if err != nil {
		return nil, err
	}
	if assignee != nil {
		fields["assignee"] = assignee
	}

	if _, present := args["labels"]; present {
		labels, err := optionalStringSlice(args, "labels")
		if err != nil {
			return nil, err
		}
		if labels == nil {
			labels = []string{}
		}
		// An explicit empty list clears the labels.
		fields["labels"] = labels
	}

	additional, err := optionalString(args, "additional_fields")
	if err != nil {
		return nil, err
	}
	if err := mergeAdditionalFields(fields, additional); err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("at least one field must be provided for update")
	}

	if err := t.jira.UpdateIssue(ctx, key, fields); err != nil {
		return nil, err
	}

	updated := make([]string, 0, len(fields))
	for name := range fields {
		updated = append(updated, name)
	}
	return map[string]any{"issue_key": key, "updated_fields": updated}, nil
}

func (t *Toolset) handleSearchIssues(ctx context.Context, args map[string]any) (any, error) {
	jql, err := requireString(args, "jql")
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
	fields, err := optionalString(args, "fields")
	if err != nil {
		return nil, err
	}
	expand, err := optionalString(args, "expand")
	if err != nil {
		return nil, err
	}
	return t.jira.SearchIssues(ctx, jql, maxResults, fields, expand)
}
