package session

import "github.com/deciflow/deciflow/internal/model"

// Role predicates over the cached session user. These gate UI visibility
// only; the backend is the authoritative enforcer and re-checks every action.

// Role returns the current user's role name, empty when no user is set.
func (s *Store) Role() model.RoleName {
	u := s.User()
	if u == nil {
		return ""
	}
	return u.Role.Name
}

func (s *Store) IsSuperAdmin() bool { return s.Role() == model.RoleSuperAdmin }
func (s *Store) IsDeptAdmin() bool  { return s.Role() == model.RoleDeptAdmin }
func (s *Store) IsApprover() bool   { return s.Role() == model.RoleApprover }
func (s *Store) IsRequester() bool  { return s.Role() == model.RoleRequester }

// IsAdmin reports whether the user may manage routing rules.
func (s *Store) IsAdmin() bool {
	return s.HasRole(model.RoleSuperAdmin, model.RoleDeptAdmin)
}

// CanApprove reports whether the user may act on approval steps.
func (s *Store) CanApprove() bool {
	return s.HasRole(model.RoleApprover, model.RoleDeptAdmin, model.RoleSuperAdmin)
}

// HasRole reports whether the user's role is among the given ones.
func (s *Store) HasRole(roles ...model.RoleName) bool {
	current := s.Role()
	if current == "" {
		return false
	}
	for _, r := range roles {
		if current == r {
			return true
		}
	}
	return false
}

// CanEditRequest reports whether the current user may edit a request: only
// the owner, and only while the request is still a draft.
func (s *Store) CanEditRequest(ownerID int64, status model.RequestStatus) bool {
	u := s.User()
	if u == nil || u.ID != ownerID {
		return false
	}
	return status == model.StatusDraft
}
