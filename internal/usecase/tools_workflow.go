package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (t *Toolset) workflowTools() []toolDef {
	return []toolDef{
		{
			tool: mcp.NewTool("getTransitions",
				mcp.WithDescription("Get available transitions (status changes) for an issue"),
				mcp.WithString("issue_key",
					mcp.Required(),
					mcp.Description("Issue key (e.g., PROJ-123)"),
				),
			),
			handler: t.handleGetTransitions,
		},
		{
			tool: mcp.NewTool("transitionIssue",
				mcp.WithDescription("Transition an issue to a new status, by transition id or name"),
				mcp.WithString("issue_key",
					mcp.Required(),
					mcp.Description("Issue key (e.g., PROJ-123)"),
				),
				mcp.WithString("transition_id",
					mcp.Description("Transition ID (get from getTransitions)"),
				),
				mcp.WithString("transition_name",
					mcp.Description("Transition name, matched case-insensitively; used when transition_id is not given"),
				),
				mcp.WithString("comment",
					mcp.Description("Optional comment to add with the transition"),
				),
				mcp.WithString("additional_fields",
					mcp.Description("JSON object of fields required by the transition"),
				),
			),
			handler: t.handleTransitionIssue,
		},
	}
}

func (t *Toolset) handleGetTransitions(ctx context.Context, args map[string]any) (any, error) {
	key, err := requireString(args, "issue_key")
	if err != nil {
		return nil, err
	}
	return t.jira.Transitions(ctx, key)
}

func (t *Toolset) handleTransitionIssue(ctx context.Context, args map[string]any) (any, error) {
	key, err := requireString(args, "issue_key")
	if err != nil {
		return nil, err
	}
	transitionID, err := optionalString(args, "transition_id")
	if err != nil {
		return nil, err
	}
	transitionName, err := optionalString(args, "transition_name")
	if err != nil {
		return nil, err
	}
	if transitionID == "" && transitionName == "" {
		return nil, fmt.Errorf("either transition_id or transition_name must be provided")
	}

	if transitionID == "" {
		transitionID, err = t.resolveTransition(ctx, key, transitionName)
		if err != nil {
			return nil, err
		}
	}

	payload := map[string]any{
		"transition": map[string]any{"id": transitionID},
	}

	additional, err := optionalString(args, "additional_fields")
	if err != nil {
		return nil, err
	}
	if additional != "" {
		var fields map[string]any
		if err := json.Unmarshal([]byte(additional), &fields); err != nil {
			return nil, fmt.Errorf("invalid JSON in additional_fields: %v", err)
		}
		payload["fields"] = fields
	}

	comment, err := optionalString(args, "comment")
	if err != nil {
		return nil, err
	}
	if comment != "" {
		payload["update"] = map[string]any{
			"comment": []any{
				map[string]any{"add": map[string]any{"body": comment}},
			},
		}
	}

	if err := t.jira.ApplyTransition(ctx, key, payload); err != nil {
		return nil, err
	}
	return map[string]any{"issue_key": key, "transition_id": transitionID}, nil
}

// resolveTransition looks up the transition id for a name, matched
// case-insensitively against the transitions currently available on the
// issue. No match is a caller error listing what was available; the
// transition is never applied with an unresolved id.
func (t *Toolset) resolveTransition(ctx context.Context, key, name string) (string, error) {
	transitions, err := t.jira.Transitions(ctx, key)
	if err != nil {
		return "", err
	}

	available := make([]string, 0, len(transitions))
	for _, tr := range transitions {
		trName, _ := tr["name"].(string)
		if trName == "" {
			continue
		}
		if strings.EqualFold(trName, name) {
			id, ok := tr["id"].(string)
			if !ok {
				// Some deployments return numeric ids.
				id = fmt.Sprintf("%v", tr["id"])
			}
			return id, nil
		}
		available = append(available, trName)
	}

	return "", fmt.Errorf("no transition named %q for %s; available: [%s]",
		name, key, strings.Join(available, ", "))
}
