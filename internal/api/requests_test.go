package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deciflow/deciflow/internal/model"
)

func TestRequestFiltersEncode(t *testing.T) {
	assert.Empty(t, RequestFilters{}.Encode())

	q := RequestFilters{Status: model.StatusDraft, Page: 2}.Encode()
	values, err := url.ParseQuery(q[1:])
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", values.Get("status"))
	assert.Equal(t, "2", values.Get("page"))
	assert.Len(t, values, 2)

	full := RequestFilters{
		Status:       model.StatusInReview,
		Category:     model.CategoryTravel,
		DepartmentID: 3,
		AmountMin:    1000,
		AmountMax:    50000,
		DateFrom:     "2026-01-01",
		DateTo:       "2026-06-30",
		Page:         1,
		PerPage:      50,
	}.Encode()
	values, err = url.ParseQuery(full[1:])
	require.NoError(t, err)
	assert.Len(t, values, 9)
	assert.Equal(t, "TRAVEL", values.Get("category"))
	assert.Equal(t, "50000", values.Get("amount_max"))
}

func TestListBuildsQueryAndCallsOnce(t *testing.T) {
	var calls int
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(model.Paginated[model.Request]{
			Data:        []model.Request{{ID: 9, Status: model.StatusDraft}},
			CurrentPage: 2,
			Total:       21,
			PerPage:     20,
			LastPage:    2,
		})
	}))
	defer server.Close()

	svc := NewRequestsService(New(server.URL, authedStore("tok")))
	page, err := svc.List(context.Background(), RequestFilters{Status: model.StatusDraft, Page: 2})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "DRAFT", gotQuery.Get("status"))
	assert.Equal(t, "2", gotQuery.Get("page"))
	assert.Equal(t, 2, page.CurrentPage)
	require.Len(t, page.Data, 1)
	assert.Equal(t, int64(9), page.Data[0].ID)
}

func TestRequestLifecyclePaths(t *testing.T) {
	var paths []string
	var methods []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		methods = append(methods, r.Method)
		json.NewEncoder(w).Encode(model.Request{ID: 5, Status: model.StatusSubmitted})
	}))
	defer server.Close()

	svc := NewRequestsService(New(server.URL, authedStore("tok")))
	ctx := context.Background()

	_, err := svc.Create(ctx, model.RequestInput{Title: "Laptop"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, 5, model.RequestInput{Title: "Laptop v2"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, 5)
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, 5)
	require.NoError(t, err)
	_, err = svc.Archive(ctx, 5)
	require.NoError(t, err)
	_, err = svc.Get(ctx, 5)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/v1/requests",
		"/v1/requests/5",
		"/v1/requests/5/submit",
		"/v1/requests/5/cancel",
		"/v1/requests/5/archive",
		"/v1/requests/5",
	}, paths)
	assert.Equal(t, []string{"POST", "PUT", "POST", "POST", "POST", "GET"}, methods)
}

func TestApprovalsInboxIsPlainArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/approvals/inbox", r.URL.Path)
		json.NewEncoder(w).Encode([]model.Request{
			{ID: 1, Status: model.StatusInReview},
			{ID: 2, Status: model.StatusSubmitted},
		})
	}))
	defer server.Close()

	svc := NewApprovalsService(New(server.URL, authedStore("tok")))
	inbox, err := svc.Inbox(context.Background())

	require.NoError(t, err)
	assert.Len(t, inbox, 2)
}

func TestApproveOmitsBodyWithoutComment(t *testing.T) {
	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := make([]byte, 1024)
		n, _ := r.Body.Read(b)
		bodies = append(bodies, string(b[:n]))
		json.NewEncoder(w).Encode(model.Request{ID: 1})
	}))
	defer server.Close()

	svc := NewApprovalsService(New(server.URL, authedStore("tok")))
	ctx := context.Background()

	_, err := svc.Approve(ctx, 1, "")
	require.NoError(t, err)
	_, err = svc.Reject(ctx, 1, "Budget exhausted")
	require.NoError(t, err)

	assert.Empty(t, bodies[0])
	assert.JSONEq(t, `{"comment":"Budget exhausted"}`, bodies[1])
}
