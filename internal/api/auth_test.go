package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deciflow/deciflow/internal/model"
	"github.com/deciflow/deciflow/internal/session"
)

func TestLoginStoresTokenAndUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/auth/login", r.URL.Path)

		var in model.LoginInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "tanaka@example.com", in.Email)

		json.NewEncoder(w).Encode(model.LoginResponse{
			User:  model.User{ID: 4, Name: "Tanaka", Role: model.Role{Name: model.RoleApprover}},
			Token: "tok-abc",
		})
	}))
	defer server.Close()

	store := session.NewStore(nil)
	svc := NewAuthService(New(server.URL, store), store)

	resp, err := svc.Login(context.Background(), "tanaka@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "tok-abc", resp.Token)
	assert.True(t, store.Authenticated())
	assert.Equal(t, "tok-abc", store.Token())
	assert.Equal(t, model.RoleApprover, store.Role())
}

func TestLoginFailureLeavesStoreEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer server.Close()

	store := session.NewStore(nil)
	svc := NewAuthService(New(server.URL, store), store)

	_, err := svc.Login(context.Background(), "tanaka@example.com", "wrong")

	require.Error(t, err)
	assert.False(t, store.Authenticated())
}

func TestLogoutClearsSessionEvenWhenRevokeFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/auth/logout", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	}))
	defer server.Close()

	store := authedStore("tok")
	svc := NewAuthService(New(server.URL, store), store)

	err := svc.Logout(context.Background())

	assert.Error(t, err)
	assert.False(t, store.Authenticated())
}

func TestFetchMeRefreshesCachedUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/me", r.URL.Path)
		json.NewEncoder(w).Encode(model.User{
			ID:   1,
			Name: "Tanaka",
			Role: model.Role{Name: model.RoleDeptAdmin},
		})
	}))
	defer server.Close()

	store := authedStore("tok")
	svc := NewAuthService(New(server.URL, store), store)

	user, err := svc.FetchMe(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.RoleDeptAdmin, user.Role.Name)
	assert.Equal(t, model.RoleDeptAdmin, store.Role())
}
