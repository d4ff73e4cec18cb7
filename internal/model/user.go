package model

import "time"

// RoleName is the closed set of roles the backend assigns to users.
type RoleName string

const (
	RoleSuperAdmin RoleName = "super_admin"
	RoleDeptAdmin  RoleName = "dept_admin"
	RoleApprover   RoleName = "approver"
	RoleRequester  RoleName = "requester"
)

type Role struct {
	ID   int64    `json:"id"`
	Name RoleName `json:"name"`
}

type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	RoleID       int64      `json:"role_id"`
	DepartmentID int64      `json:"department_id"`
	Role         Role       `json:"role"`
	Department   Department `json:"department"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
