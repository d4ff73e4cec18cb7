package api

import (
	"context"
	"fmt"

	"github.com/deciflow/deciflow/internal/model"
)

// ApprovalsService is the client for approval actions and the approver's
// inbox.
type ApprovalsService struct {
	gw *Gateway
}

func NewApprovalsService(gw *Gateway) *ApprovalsService {
	return &ApprovalsService{gw: gw}
}

// Inbox returns the requests waiting on the current user. The backend
// answers with a plain array, not a pagination envelope.
func (s *ApprovalsService) Inbox(ctx context.Context) ([]model.Request, error) {
	var requests []model.Request
	if err := s.gw.Get(ctx, "/v1/approvals/inbox", &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// Approve approves the current step. The comment is optional.
func (s *ApprovalsService) Approve(ctx context.Context, id int64, comment string) (*model.Request, error) {
	return s.act(ctx, id, "approve", comment)
}

// Reject rejects the request with a comment.
func (s *ApprovalsService) Reject(ctx context.Context, id int64, comment string) (*model.Request, error) {
	return s.act(ctx, id, "reject", comment)
}

// Return sends the request back to the requester with a comment.
func (s *ApprovalsService) Return(ctx context.Context, id int64, comment string) (*model.Request, error) {
	return s.act(ctx, id, "return", comment)
}

func (s *ApprovalsService) act(ctx context.Context, id int64, verb, comment string) (*model.Request, error) {
	var body any
	if comment != "" {
		body = model.ApprovalAction{Comment: comment}
	}
	var req model.Request
	if err := s.gw.Post(ctx, fmt.Sprintf("/v1/requests/%d/%s", id, verb), body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
