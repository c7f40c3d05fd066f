package domain

import (
	"fmt"
	"strings"
)

// IdentityKind selects which wire field a caller-supplied identity is sent
// under. Jira Cloud addresses accounts by accountId, Jira Server by
// username, and the two deployments reject each other's field.
type IdentityKind string

const (
	// IdentityKindAuto applies the colon heuristic: account ids issued by
	// Jira Cloud contain a colon ("712020:af6d..."), usernames normally do
	// not. The heuristic misfires for a username containing a colon or an
	// id without one; the remote service then rejects the request with a
	// "user not found" style error, which is the only signal available.
	IdentityKindAuto IdentityKind = "auto"

	IdentityKindAccountID IdentityKind = "account_id"
	IdentityKindUsername  IdentityKind = "username"
)

// IdentityPayload classifies identity into the field payload Jira expects.
// An empty kind means IdentityKindAuto.
func IdentityPayload(identity string, kind IdentityKind) (map[string]any, error) {
	switch kind {
	case IdentityKindAccountID:
		return map[string]any{"accountId": identity}, nil
	case IdentityKindUsername:
		return map[string]any{"name": identity}, nil
	case IdentityKindAuto, "":
		if strings.Contains(identity, ":") {
			return map[string]any{"accountId": identity}, nil
		}
		return map[string]any{"name": identity}, nil
	default:
		return nil, fmt.Errorf("invalid identity kind %q (want auto, account_id or username)", kind)
	}
}
