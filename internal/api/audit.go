package api

import (
	"context"
	"fmt"

	"github.com/deciflow/deciflow/internal/model"
)

// AuditService is the client for the audit trail endpoints.
type AuditService struct {
	gw *Gateway
}

func NewAuditService(gw *Gateway) *AuditService {
	return &AuditService{gw: gw}
}

// Logs returns a page of the system-wide audit log (super_admin only).
func (s *AuditService) Logs(ctx context.Context, page, perPage int) (*model.Paginated[model.AuditLog], error) {
	if page == 0 {
		page = model.DefaultPage
	}
	if perPage == 0 {
		perPage = model.DefaultPerPage
	}
	var logs model.Paginated[model.AuditLog]
	path := fmt.Sprintf("/v1/audit?page=%d&per_page=%d", page, perPage)
	if err := s.gw.Get(ctx, path, &logs); err != nil {
		return nil, err
	}
	return &logs, nil
}

// ForRequest returns the audit entries of a single request, oldest first.
func (s *AuditService) ForRequest(ctx context.Context, requestID int64) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	if err := s.gw.Get(ctx, fmt.Sprintf("/v1/requests/%d/audit", requestID), &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
