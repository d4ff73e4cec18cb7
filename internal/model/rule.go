package model

import "time"

// RuleStep is one entry in a rule's ordered approval chain.
type RuleStep struct {
	Step int      `json:"step"`
	Role RoleName `json:"role"`
}

// Rule is an approval routing rule. Rules are configured by admins and
// evaluated only by the backend when a request is submitted.
type Rule struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	MinAmount     int64            `json:"min_amount"`
	MaxAmount     *int64           `json:"max_amount"`
	ApprovalSteps []RuleStep       `json:"approval_steps_json"`
	Category      *RequestCategory `json:"category"`
	IsActive      bool             `json:"is_active"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// RuleInput is the payload for creating or updating a rule.
type RuleInput struct {
	Name          string           `json:"name"`
	MinAmount     int64            `json:"min_amount"`
	MaxAmount     *int64           `json:"max_amount"`
	ApprovalSteps []RuleStep       `json:"approval_steps_json"`
	Category      *RequestCategory `json:"category"`
	IsActive      bool             `json:"is_active"`
}
