package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deciflow/deciflow/internal/model"
)

func TestCreateRuleSendsStepsAsJSONColumn(t *testing.T) {
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/rules", r.URL.Path)
		body, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"id":5,"name":"big spend"}`))
	}))
	defer server.Close()

	maxAmount := int64(500000)
	svc := NewRulesService(New(server.URL, authedStore("tok")))
	rule, err := svc.Create(context.Background(), model.RuleInput{
		Name:      "big spend",
		MinAmount: 100000,
		MaxAmount: &maxAmount,
		ApprovalSteps: []model.RuleStep{
			{Step: 1, Role: model.RoleApprover},
			{Step: 2, Role: model.RoleSuperAdmin},
		},
		IsActive: true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), rule.ID)
	assert.JSONEq(t, `{
		"name": "big spend",
		"min_amount": 100000,
		"max_amount": 500000,
		"approval_steps_json": [
			{"step": 1, "role": "approver"},
			{"step": 2, "role": "super_admin"}
		],
		"category": null,
		"is_active": true
	}`, string(body))
}

func TestListRules(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/rules", r.URL.Path)
		json.NewEncoder(w).Encode([]model.Rule{{ID: 1, Name: "default"}})
	}))
	defer server.Close()

	svc := NewRulesService(New(server.URL, authedStore("tok")))
	rules, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "default", rules[0].Name)
}

func TestDeleteRule(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/rules/3", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	svc := NewRulesService(New(server.URL, authedStore("tok")))
	assert.NoError(t, svc.Delete(context.Background(), 3))
}

func TestAuditLogsPaginates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audit", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("per_page"))
		json.NewEncoder(w).Encode(model.Paginated[model.AuditLog]{
			Data:        []model.AuditLog{{ID: 41, Action: "approved"}},
			CurrentPage: 3,
			LastPage:    7,
		})
	}))
	defer server.Close()

	svc := NewAuditService(New(server.URL, authedStore("tok")))
	page, err := svc.Logs(context.Background(), 3, 0)

	require.NoError(t, err)
	assert.Equal(t, 3, page.CurrentPage)
	assert.Equal(t, 7, page.LastPage)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "approved", page.Data[0].Action)
}

func TestAuditForRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/requests/12/audit", r.URL.Path)
		json.NewEncoder(w).Encode([]model.AuditLog{
			{ID: 1, RequestID: 12, Action: "created"},
			{ID: 2, RequestID: 12, Action: "submitted"},
		})
	}))
	defer server.Close()

	svc := NewAuditService(New(server.URL, authedStore("tok")))
	logs, err := svc.ForRequest(context.Background(), 12)

	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "submitted", logs[1].Action)
}
