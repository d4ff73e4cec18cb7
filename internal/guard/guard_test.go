package guard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deciflow/deciflow/internal/model"
	"github.com/deciflow/deciflow/internal/session"
)

type memStorage map[string][]byte

func (m memStorage) Set(k string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m[k] = b
	return nil
}

func (m memStorage) Get(k string, v any) error {
	b, ok := m[k]
	if !ok {
		return nil
	}
	return json.Unmarshal(b, v)
}

func (m memStorage) Del(k string) { delete(m, k) }

func approver() model.User {
	return model.User{ID: 3, Role: model.Role{Name: model.RoleApprover}}
}

func TestAuthAllowsAuthenticated(t *testing.T) {
	s := session.NewStore(nil)
	s.SetAuth(approver(), "tok")
	assert.Equal(t, Allow, Auth(s))
}

func TestAuthRedirectsWhenNotAuthenticated(t *testing.T) {
	assert.Equal(t, RedirectLogin, Auth(session.NewStore(nil)))
}

func TestAuthHydratesBeforeRedirecting(t *testing.T) {
	storage := memStorage{}
	seed := session.NewStore(storage)
	seed.SetAuth(approver(), "tok")

	fresh := session.NewStore(storage)
	require.False(t, fresh.Authenticated())

	assert.Equal(t, Allow, Auth(fresh))
	assert.True(t, fresh.Authenticated())
}

func TestGuest(t *testing.T) {
	s := session.NewStore(nil)
	assert.Equal(t, Allow, Guest(s))

	s.SetAuth(approver(), "tok")
	assert.Equal(t, RedirectHome, Guest(s))
}

func TestRole(t *testing.T) {
	s := session.NewStore(nil)
	s.SetAuth(approver(), "tok")

	assert.Equal(t, Allow, Role(s))
	assert.Equal(t, Allow, Role(s, model.RoleApprover, model.RoleSuperAdmin))
	assert.Equal(t, Forbidden, Role(s, model.RoleSuperAdmin))
	assert.Equal(t, Forbidden, Role(s, model.RoleSuperAdmin, model.RoleDeptAdmin))
}

func TestRoleWithoutUser(t *testing.T) {
	s := session.NewStore(nil)
	assert.Equal(t, Forbidden, Role(s, model.RoleRequester))
	assert.Equal(t, Allow, Role(s))
}
