package jirarest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Request encoding must round-trip caller input exactly, or the remote
// service searches for something the caller never asked for.
func TestRequestEncodingProperties(t *testing.T) {
	var observedPath string
	var observedJQL string
	var observedMax string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		observedPath = r.URL.Path
		observedJQL = r.URL.Query().Get("jql")
		observedMax = r.URL.Query().Get("maxResults")
		json.NewEncoder(w).Encode(map[string]any{"issues": []any{}})
	}))
	defer server.Close()

	client := New(server.URL, "bot@example.com", "secret-token", server.Client(), testLogger())

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("jql and maxResults arrive verbatim", prop.ForAll(
		func(jql string, maxResults int) bool {
			_, err := client.SearchIssues(context.Background(), jql, maxResults, "", "")
			if err != nil {
				return false
			}
			return observedJQL == jql && observedMax == strconv.Itoa(maxResults)
		},
		gen.AnyString(),
		gen.IntRange(1, 100),
	))

	properties.Property("issue keys survive path escaping", prop.ForAll(
		func(project string, number int) bool {
			key := project + "-" + strconv.Itoa(number)
			_, err := client.Issue(context.Background(), key, "", "")
			if err != nil {
				return false
			}
			return observedPath == "/rest/api/2/issue/"+key
		},
		gen.Identifier(),
		gen.IntRange(1, 99999),
	))

	properties.TestingRun(t)
}
