package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockIssueService is a testify mock over the IssueService port, shared by
// the gateway and toolset tests.
type MockIssueService struct {
	mock.Mock
}

func mapRet(args mock.Arguments) (map[string]any, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func sliceRet(args mock.Arguments) ([]map[string]any, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

func (m *MockIssueService) ServerInfo(ctx context.Context) (map[string]any, error) {
	return mapRet(m.Called(ctx))
}

func (m *MockIssueService) Issue(ctx context.Context, key, fields, expand string) (map[string]any, error) {
	return mapRet(m.Called(ctx, key, fields, expand))
}

func (m *MockIssueService) CreateIssue(ctx context.Context, fields map[string]any) (map[string]any, error) {
	return mapRet(m.Called(ctx, fields))
}

func (m *MockIssueService) UpdateIssue(ctx context.Context, key string, fields map[string]any) error {
	return m.Called(ctx, key, fields).Error(0)
}

func (m *MockIssueService) SearchIssues(ctx context.Context, jql string, maxResults int, fields, expand string) (map[string]any, error) {
	return mapRet(m.Called(ctx, jql, maxResults, fields, expand))
}

func (m *MockIssueService) Transitions(ctx context.Context, key string) ([]map[string]any, error) {
	return sliceRet(m.Called(ctx, key))
}

func (m *MockIssueService) ApplyTransition(ctx context.Context, key string, payload map[string]any) error {
	return m.Called(ctx, key, payload).Error(0)
}

func (m *MockIssueService) AddComment(ctx context.Context, key, body string) (map[string]any, error) {
	return mapRet(m.Called(ctx, key, body))
}

func (m *MockIssueService) Comments(ctx context.Context, key string) ([]map[string]any, error) {
	return sliceRet(m.Called(ctx, key))
}

func (m *MockIssueService) AddAttachment(ctx context.Context, key, filename string, content []byte) ([]map[string]any, error) {
	return sliceRet(m.Called(ctx, key, filename, content))
}

func (m *MockIssueService) SearchUsers(ctx context.Context, query string, maxResults int, includeInactive bool) ([]map[string]any, error) {
	return sliceRet(m.Called(ctx, query, maxResults, includeInactive))
}

func (m *MockIssueService) AssignableUsers(ctx context.Context, issueKey string, maxResults int) ([]map[string]any, error) {
	return sliceRet(m.Called(ctx, issueKey, maxResults))
}

func (m *MockIssueService) AddWorklog(ctx context.Context, key, timeSpent, comment, started string) (map[string]any, error) {
	return mapRet(m.Called(ctx, key, timeSpent, comment, started))
}

func (m *MockIssueService) Worklogs(ctx context.Context, key string) ([]map[string]any, error) {
	return sliceRet(m.Called(ctx, key))
}

func (m *MockIssueService) CreateIssueLink(ctx context.Context, payload map[string]any) error {
	return m.Called(ctx, payload).Error(0)
}

func (m *MockIssueService) IssueLinkTypes(ctx context.Context) ([]map[string]any, error) {
	return sliceRet(m.Called(ctx))
}

func (m *MockIssueService) Projects(ctx context.Context) ([]map[string]any, error) {
	return sliceRet(m.Called(ctx))
}

func (m *MockIssueService) Project(ctx context.Context, key string) (map[string]any, error) {
	return mapRet(m.Called(ctx, key))
}

func (m *MockIssueService) IssueTypes(ctx context.Context) ([]map[string]any, error) {
	return sliceRet(m.Called(ctx))
}

func (m *MockIssueService) Boards(ctx context.Context, projectKey string, maxResults int) (map[string]any, error) {
	return mapRet(m.Called(ctx, projectKey, maxResults))
}

func (m *MockIssueService) BoardIssues(ctx context.Context, boardID int, jql string, maxResults int) (map[string]any, error) {
	return mapRet(m.Called(ctx, boardID, jql, maxResults))
}

func (m *MockIssueService) Sprints(ctx context.Context, boardID int, state string, maxResults int) (map[string]any, error) {
	return mapRet(m.Called(ctx, boardID, state, maxResults))
}

func (m *MockIssueService) SprintIssues(ctx context.Context, sprintID int, jql string, maxResults int) (map[string]any, error) {
	return mapRet(m.Called(ctx, sprintID, jql, maxResults))
}

func (m *MockIssueService) MoveIssuesToSprint(ctx context.Context, sprintID int, issueKeys []string) error {
	return m.Called(ctx, sprintID, issueKeys).Error(0)
}

func (m *MockIssueService) ProjectVersions(ctx context.Context, projectKey string) ([]map[string]any, error) {
	return sliceRet(m.Called(ctx, projectKey))
}

func (m *MockIssueService) CreateVersion(ctx context.Context, payload map[string]any) (map[string]any, error) {
	return mapRet(m.Called(ctx, payload))
}

func (m *MockIssueService) ProjectComponents(ctx context.Context, projectKey string) ([]map[string]any, error) {
	return sliceRet(m.Called(ctx, projectKey))
}

func (m *MockIssueService) MyFilters(ctx context.Context) ([]map[string]any, error) {
	return sliceRet(m.Called(ctx))
}

func (m *MockIssueService) FavouriteFilters(ctx context.Context) ([]map[string]any, error) {
	return sliceRet(m.Called(ctx))
}
