package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/deciflow/deciflow/internal/model"
)

// RequestFilters narrows the request listing. Zero values are omitted from
// the query string.
type RequestFilters struct {
	Status       model.RequestStatus
	Category     model.RequestCategory
	DepartmentID int64
	AmountMin    int64
	AmountMax    int64
	DateFrom     string
	DateTo       string
	Page         int
	PerPage      int
}

// Encode renders the filters as a query string, empty when nothing is set.
func (f RequestFilters) Encode() string {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Category != "" {
		q.Set("category", string(f.Category))
	}
	if f.DepartmentID != 0 {
		q.Set("department_id", strconv.FormatInt(f.DepartmentID, 10))
	}
	if f.AmountMin != 0 {
		q.Set("amount_min", strconv.FormatInt(f.AmountMin, 10))
	}
	if f.AmountMax != 0 {
		q.Set("amount_max", strconv.FormatInt(f.AmountMax, 10))
	}
	if f.DateFrom != "" {
		q.Set("date_from", f.DateFrom)
	}
	if f.DateTo != "" {
		q.Set("date_to", f.DateTo)
	}
	if f.Page != 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage != 0 {
		q.Set("per_page", strconv.Itoa(f.PerPage))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// RequestsService is the client for the purchase request endpoints.
type RequestsService struct {
	gw *Gateway
}

func NewRequestsService(gw *Gateway) *RequestsService {
	return &RequestsService{gw: gw}
}

// Create creates a new draft request.
func (s *RequestsService) Create(ctx context.Context, in model.RequestInput) (*model.Request, error) {
	var req model.Request
	if err := s.gw.Post(ctx, "/v1/requests", in, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// Update updates a draft request.
func (s *RequestsService) Update(ctx context.Context, id int64, in model.RequestInput) (*model.Request, error) {
	var req model.Request
	if err := s.gw.Put(ctx, fmt.Sprintf("/v1/requests/%d", id), in, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// Submit sends a draft into its approval chain.
func (s *RequestsService) Submit(ctx context.Context, id int64) (*model.Request, error) {
	return s.action(ctx, id, "submit")
}

// Cancel withdraws a request.
func (s *RequestsService) Cancel(ctx context.Context, id int64) (*model.Request, error) {
	return s.action(ctx, id, "cancel")
}

// Archive archives a finished request (admin only).
func (s *RequestsService) Archive(ctx context.Context, id int64) (*model.Request, error) {
	return s.action(ctx, id, "archive")
}

func (s *RequestsService) action(ctx context.Context, id int64, verb string) (*model.Request, error) {
	var req model.Request
	if err := s.gw.Post(ctx, fmt.Sprintf("/v1/requests/%d/%s", id, verb), nil, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// List returns a page of requests matching the filters.
func (s *RequestsService) List(ctx context.Context, f RequestFilters) (*model.Paginated[model.Request], error) {
	var page model.Paginated[model.Request]
	if err := s.gw.Get(ctx, "/v1/requests"+f.Encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get returns a single request with its nested relationships.
func (s *RequestsService) Get(ctx context.Context, id int64) (*model.Request, error) {
	var req model.Request
	if err := s.gw.Get(ctx, fmt.Sprintf("/v1/requests/%d", id), &req); err != nil {
		return nil, err
	}
	return &req, nil
}
