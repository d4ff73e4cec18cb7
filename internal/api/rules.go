package api

import (
	"context"
	"fmt"

	"github.com/deciflow/deciflow/internal/model"
)

// RulesService is the client for the admin-managed approval routing rules.
// Rules are only evaluated by the backend; the client just edits them.
type RulesService struct {
	gw *Gateway
}

func NewRulesService(gw *Gateway) *RulesService {
	return &RulesService{gw: gw}
}

// List returns all rules.
func (s *RulesService) List(ctx context.Context) ([]model.Rule, error) {
	var rules []model.Rule
	if err := s.gw.Get(ctx, "/v1/rules", &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// Create adds a rule.
func (s *RulesService) Create(ctx context.Context, in model.RuleInput) (*model.Rule, error) {
	var rule model.Rule
	if err := s.gw.Post(ctx, "/v1/rules", in, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// Update replaces a rule.
func (s *RulesService) Update(ctx context.Context, id int64, in model.RuleInput) (*model.Rule, error) {
	var rule model.Rule
	if err := s.gw.Put(ctx, fmt.Sprintf("/v1/rules/%d", id), in, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// Delete removes a rule.
func (s *RulesService) Delete(ctx context.Context, id int64) error {
	return s.gw.Delete(ctx, fmt.Sprintf("/v1/rules/%d", id), nil)
}
