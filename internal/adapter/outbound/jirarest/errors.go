package jirarest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// RemoteError is a non-2xx response from the Jira API. Message carries the
// remote diagnostic extracted from the error body, so Failure envelopes can
// surface what Jira actually said.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("jira: %s (status %d)", e.Message, e.StatusCode)
}

const maxBodySnippet = 200

// newRemoteError extracts Jira's {"errorMessages":[],"errors":{}} shape
// when present, falling back to a trimmed body snippet, then to the status
// text.
func newRemoteError(status int, body []byte) *RemoteError {
	var parsed struct {
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		parts := append([]string{}, parsed.ErrorMessages...)
		fields := make([]string, 0, len(parsed.Errors))
		for field := range parsed.Errors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			parts = append(parts, fmt.Sprintf("%s: %s", field, parsed.Errors[field]))
		}
		if len(parts) > 0 {
			return &RemoteError{StatusCode: status, Message: strings.Join(parts, "; ")}
		}
	}

	snippet := strings.TrimSpace(string(body))
	if len(snippet) > maxBodySnippet {
		snippet = snippet[:maxBodySnippet] + "..."
	}
	if snippet == "" {
		snippet = http.StatusText(status)
	}
	return &RemoteError{StatusCode: status, Message: snippet}
}
