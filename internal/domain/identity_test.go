package domain_test

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/jirabridge/jirabridge/internal/domain"
)

func TestIdentityPayload(t *testing.T) {
	tests := []struct {
		name     string
		identity string
		kind     domain.IdentityKind
		want     map[string]any
		wantErr  bool
	}{
		{
			name:     "cloud account id via heuristic",
			identity: "712020:af6d11d4-1824-4a43-97e4-964ba3318f82",
			kind:     domain.IdentityKindAuto,
			want:     map[string]any{"accountId": "712020:af6d11d4-1824-4a43-97e4-964ba3318f82"},
		},
		{
			name:     "plain username via heuristic",
			identity: "jane.doe",
			kind:     domain.IdentityKindAuto,
			want:     map[string]any{"name": "jane.doe"},
		},
		{
			name:     "empty kind behaves as auto",
			identity: "jane.doe",
			kind:     "",
			want:     map[string]any{"name": "jane.doe"},
		},
		{
			name:     "explicit account id kind overrides the heuristic",
			identity: "no-colon-id",
			kind:     domain.IdentityKindAccountID,
			want:     map[string]any{"accountId": "no-colon-id"},
		},
		{
			name:     "explicit username kind overrides the heuristic",
			identity: "strange:username",
			kind:     domain.IdentityKindUsername,
			want:     map[string]any{"name": "strange:username"},
		},
		{
			name:     "unknown kind is rejected",
			identity: "jane.doe",
			kind:     "email",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.IdentityPayload(tt.identity, tt.kind)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Property: the heuristic partitions every string by the presence of a
// colon, and always emits exactly one wire field.
func TestIdentityPayloadProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("identities with a colon go under accountId", prop.ForAll(
		func(prefix, suffix string) bool {
			identity := prefix + ":" + suffix
			payload, err := domain.IdentityPayload(identity, domain.IdentityKindAuto)
			if err != nil {
				return false
			}
			return len(payload) == 1 && payload["accountId"] == identity
		},
		gen.Identifier(),
		gen.Identifier(),
	))

	properties.Property("identities without a colon go under name", prop.ForAll(
		func(identity string) bool {
			if strings.Contains(identity, ":") {
				return true
			}
			payload, err := domain.IdentityPayload(identity, domain.IdentityKindAuto)
			if err != nil {
				return false
			}
			return len(payload) == 1 && payload["name"] == identity
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
