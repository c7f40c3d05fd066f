// Package jirarest implements the IssueService port against the Jira REST
// API (core API v2, agile API 1.0). One client instance and its underlying
// connection pool are shared by all concurrent invocations.
package jirarest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Client talks to one Jira instance with basic auth (email + API token).
type Client struct {
	baseURL    string
	email      string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Client. The http.Client carries the per-call timeout; if
// nil, http.DefaultClient is used.
func New(baseURL, email, token string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		email:      email,
		token:      token,
		httpClient: httpClient,
		logger:     logger.With("component", "jira_client"),
	}
}

// do executes one JSON round-trip. Non-2xx responses come back as
// *RemoteError carrying the remote diagnostic; out may be nil for calls
// whose response body is irrelevant.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("Jira request", slog.String("method", method), slog.String("path", path))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("jira request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read jira response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		remoteErr := newRemoteError(resp.StatusCode, raw)
		c.logger.Warn("Jira request rejected",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("message", remoteErr.Message))
		return remoteErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode jira response: %w", err)
	}
	return nil
}

// ServerInfo implements the connectivity check.
func (c *Client) ServerInfo(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, "/rest/api/2/serverInfo", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Issue(ctx context.Context, key, fields, expand string) (map[string]any, error) {
	query := url.Values{}
	if fields != "" {
		query.Set("fields", fields)
	}
	if expand != "" {
		query.Set("expand", expand)
	}
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, "/rest/api/2/issue/"+url.PathEscape(key), query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateIssue(ctx context.Context, fields map[string]any) (map[string]any, error) {
	var out map[string]any
	payload := map[string]any{"fields": fields}
	if err := c.do(ctx, http.MethodPost, "/rest/api/2/issue", nil, payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateIssue(ctx context.Context, key string, fields map[string]any) error {
	payload := map[string]any{"fields": fields}
	return c.do(ctx, http.MethodPut, "/rest/api/2/issue/"+url.PathEscape(key), nil, payload, nil)
}

func (c *Client) SearchIssues(ctx context.Context, jql string, maxResults int, fields, expand string) (map[string]any, error) {
	query := url.Values{}
	query.Set("jql", jql)
	query.Set("maxResults", strconv.Itoa(maxResults))
	if fields != "" {
		query.Set("fields", fields)
	}
	if expand != "" {
		query.Set("expand", expand)
	}
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, "/rest/api/2/search", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Transitions(ctx context.Context, key string) ([]map[string]any, error) {
	var out struct {
		Transitions []map[string]any `json:"transitions"`
	}
	path := "/rest/api/2/issue/" + url.PathEscape(key) + "/transitions"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Transitions, nil
}

func (c *Client) ApplyTransition(ctx context.Context, key string, payload map[string]any) error {
	path := "/rest/api/2/issue/" + url.PathEscape(key) + "/transitions"
	return c.do(ctx, http.MethodPost, path, nil, payload, nil)
}

func (c *Client) AddComment(ctx context.Context, key, body string) (map[string]any, error) {
	var out map[string]any
	path := "/rest/api/2/issue/" + url.PathEscape(key) + "/comment"
	if err := c.do(ctx, http.MethodPost, path, nil, map[string]any{"body": body}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Comments(ctx context.Context, key string) ([]map[string]any, error) {
	var out struct {
		Comments []map[string]any `json:"comments"`
	}
	path := "/rest/api/2/issue/" + url.PathEscape(key) + "/comment"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Comments, nil
}

// AddAttachment uploads one file as multipart form data. Jira requires the
// X-Atlassian-Token header to disable XSRF checking on this endpoint.
func (c *Client) AddAttachment(ctx context.Context, key, filename string, content []byte) ([]map[string]any, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build attachment form: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("failed to build attachment form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build attachment form: %w", err)
	}

	endpoint := c.baseURL + "/rest/api/2/issue/" + url.PathEscape(key) + "/attachments"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Atlassian-Token", "no-check")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jira request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read jira response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newRemoteError(resp.StatusCode, raw)
	}

	var out []map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode jira response: %w", err)
	}
	return out, nil
}

// SearchUsers sends both the Cloud ("query") and Server ("username")
// parameter names; each deployment ignores the one it does not know.
func (c *Client) SearchUsers(ctx context.Context, queryText string, maxResults int, includeInactive bool) ([]map[string]any, error) {
	query := url.Values{}
	query.Set("query", queryText)
	query.Set("username", queryText)
	query.Set("maxResults", strconv.Itoa(maxResults))
	if includeInactive {
		query.Set("includeInactive", "true")
	}
	var out []map[string]any
	if err := c.do(ctx, http.MethodGet, "/rest/api/2/user/search", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AssignableUsers(ctx context.Context, issueKey string, maxResults int) ([]map[string]any, error) {
	query := url.Values{}
	query.Set("issueKey", issueKey)
	query.Set("maxResults", strconv.Itoa(maxResults))
	var out []map[string]any
	if err := c.do(ctx, http.MethodGet, "/rest/api/2/user/assignable/search", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddWorklog(ctx context.Context, key, timeSpent, comment, started string) (map[string]any, error) {
	payload := map[string]any{"timeSpent": timeSpent}
	if comment != "" {
		payload["comment"] = comment
	}
	if started != "" {
		payload["started"] = started
	}
	var out map[string]any
	path := "/rest/api/2/issue/" + url.PathEscape(key) + "/worklog"
	if err := c.do(ctx, http.MethodPost, path, nil, payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Worklogs(ctx context.Context, key string) ([]map[string]any, error) {
	var out struct {
		Worklogs []map[string]any `json:"worklogs"`
	}
	path := "/rest/api/2/issue/" + url.PathEscape(key) + "/worklog"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Worklogs, nil
}

func (c *Client) CreateIssueLink(ctx context.Context, payload map[string]any) error {
	return c.do(ctx, http.MethodPost, "/rest/api/2/issueLink", nil, payload, nil)
}

func (c *Client) IssueLinkTypes(ctx context.Context) ([]map[string]any, error) {
	var out struct {
		IssueLinkTypes []map[string]any `json:"issueLinkTypes"`
	}
	if err := c.do(ctx, http.MethodGet, "/rest/api/2/issueLinkType", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.IssueLinkTypes, nil
}

func (c *Client) Projects(ctx context.Context) ([]map[string]any, error) {
	var out []map[string]any
	if err := c.do(ctx, http.MethodGet, "/rest/api/2/project", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Project(ctx context.Context, key string) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, "/rest/api/2/project/"+url.PathEscape(key), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) IssueTypes(ctx context.Context) ([]map[string]any, error) {
	var out []map[string]any
	if err := c.do(ctx, http.MethodGet, "/rest/api/2/issuetype", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Boards(ctx context.Context, projectKey string, maxResults int) (map[string]any, error) {
	query := url.Values{}
	query.Set("maxResults", strconv.Itoa(maxResults))
	if projectKey != "" {
		query.Set("projectKeyOrId", projectKey)
	}
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, "/rest/agile/1.0/board", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) BoardIssues(ctx context.Context, boardID int, jql string, maxResults int) (map[string]any, error) {
	query := url.Values{}
	query.Set("maxResults", strconv.Itoa(maxResults))
	if jql != "" {
		query.Set("jql", jql)
	}
	var out map[string]any
	path := "/rest/agile/1.0/board/" + strconv.Itoa(boardID) + "/issue"
	if err := c.do(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Sprints(ctx context.Context, boardID int, state string, maxResults int) (map[string]any, error) {
	query := url.Values{}
	query.Set("maxResults", strconv.Itoa(maxResults))
	if state != "" {
		query.Set("state", state)
	}
	var out map[string]any
	path := "/rest/agile/1.0/board/" + strconv.Itoa(boardID) + "/sprint"
	if err := c.do(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SprintIssues(ctx context.Context, sprintID int, jql string, maxResults int) (map[string]any, error) {
	query := url.Values{}
	query.Set("maxResults", strconv.Itoa(maxResults))
	if jql != "" {
		query.Set("jql", jql)
	}
	var out map[string]any
	path := "/rest/agile/1.0/sprint/" + strconv.Itoa(sprintID) + "/issue"
	if err := c.do(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MoveIssuesToSprint(ctx context.Context, sprintID int, issueKeys []string) error {
	path := "/rest/agile/1.0/sprint/" + strconv.Itoa(sprintID) + "/issue"
	return c.do(ctx, http.MethodPost, path, nil, map[string]any{"issues": issueKeys}, nil)
}

func (c *Client) ProjectVersions(ctx context.Context, projectKey string) ([]map[string]any, error) {
	var out []map[string]any
	path := "/rest/api/2/project/" + url.PathEscape(projectKey) + "/versions"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateVersion(ctx context.Context, payload map[string]any) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodPost, "/rest/api/2/version", nil, payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProjectComponents(ctx context.Context, projectKey string) ([]map[string]any, error) {
	var out []map[string]any
	path := "/rest/api/2/project/" + url.PathEscape(projectKey) + "/components"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MyFilters(ctx context.Context) ([]map[string]any, error) {
	var out []map[string]any
	if err := c.do(ctx, http.MethodGet, "/rest/api/2/filter/my", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) FavouriteFilters(ctx context.Context) ([]map[string]any, error) {
	var out []map[string]any
	if err := c.do(ctx, http.MethodGet, "/rest/api/2/filter/favourite", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
