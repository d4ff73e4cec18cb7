package model

import "time"

// RequestStatus is the workflow status of a purchase request. Transitions
// between statuses are enforced entirely by the backend; the client only
// renders whatever status the server returns.
type RequestStatus string

const (
	StatusDraft     RequestStatus = "DRAFT"
	StatusSubmitted RequestStatus = "SUBMITTED"
	StatusInReview  RequestStatus = "IN_REVIEW"
	StatusApproved  RequestStatus = "APPROVED"
	StatusRejected  RequestStatus = "REJECTED"
	StatusReturned  RequestStatus = "RETURNED"
	StatusCancelled RequestStatus = "CANCELLED"
	StatusArchived  RequestStatus = "ARCHIVED"
)

type RequestCategory string

const (
	CategoryEquipment RequestCategory = "EQUIPMENT"
	CategorySoftware  RequestCategory = "SOFTWARE"
	CategoryService   RequestCategory = "SERVICE"
	CategoryTravel    RequestCategory = "TRAVEL"
)

type Urgency string

const (
	UrgencyNormal Urgency = "NORMAL"
	UrgencyUrgent Urgency = "URGENT"
)

// StepStatus is the status of a single approval step.
type StepStatus string

const (
	StepPending  StepStatus = "pending"
	StepApproved StepStatus = "approved"
	StepRejected StepStatus = "rejected"
	StepReturned StepStatus = "returned"
)

// Request is a purchase request as returned by the backend. Nested
// relationships are present only when the endpoint includes them.
type Request struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	DepartmentID    int64           `json:"department_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Category        RequestCategory `json:"category"`
	Amount          int64           `json:"amount"`
	VendorName      string          `json:"vendor_name,omitempty"`
	Urgency         Urgency         `json:"urgency"`
	UrgencyReason   string          `json:"urgency_reason,omitempty"`
	TravelStartDate string          `json:"travel_start_date,omitempty"`
	TravelEndDate   string          `json:"travel_end_date,omitempty"`
	Status          RequestStatus   `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	User          *User          `json:"user,omitempty"`
	Department    *Department    `json:"department,omitempty"`
	ApprovalSteps []ApprovalStep `json:"approval_steps,omitempty"`
	Attachments   []Attachment   `json:"attachments,omitempty"`
	AuditLogs     []AuditLog     `json:"audit_logs,omitempty"`
}

// ApprovalStep is one stage in a request's server-defined approval sequence.
type ApprovalStep struct {
	ID           int64      `json:"id"`
	RequestID    int64      `json:"request_id"`
	StepNumber   int        `json:"step_number"`
	ApproverRole RoleName   `json:"approver_role"`
	ApproverID   *int64     `json:"approver_id,omitempty"`
	Status       StepStatus `json:"status"`
	Comment      string     `json:"comment,omitempty"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Approver *User `json:"approver,omitempty"`
}

// RequestInput is the payload for creating or updating a request. Updates
// are only accepted by the backend while the request is still a draft.
type RequestInput struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Category        RequestCategory `json:"category"`
	Amount          int64           `json:"amount"`
	VendorName      string          `json:"vendor_name,omitempty"`
	Urgency         Urgency         `json:"urgency"`
	UrgencyReason   string          `json:"urgency_reason,omitempty"`
	TravelStartDate string          `json:"travel_start_date,omitempty"`
	TravelEndDate   string          `json:"travel_end_date,omitempty"`
}

// ApprovalAction carries the optional comment for approve/reject/return.
type ApprovalAction struct {
	Comment string `json:"comment,omitempty"`
}
