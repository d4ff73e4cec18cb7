package model

import "time"

// AuditLog is one immutable entry in a request's audit trail.
type AuditLog struct {
	ID         int64          `json:"id"`
	RequestID  int64          `json:"request_id"`
	UserID     int64          `json:"user_id"`
	Action     string         `json:"action"`
	FromStatus *RequestStatus `json:"from_status,omitempty"`
	ToStatus   *RequestStatus `json:"to_status,omitempty"`
	Meta       map[string]any `json:"meta,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`

	User *User `json:"user,omitempty"`
}
