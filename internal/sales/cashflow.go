package sales

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"api_backoffice/internal/apperr"
)

// CreateCashFlowEntry posts a manual ledger entry.
func (s *Service) CreateCashFlowEntry(ctx context.Context, req CreateCashFlowRequest) (*CashFlowEntry, error) {
	if _, ok := cashFlowTypeLabels[req.Type]; !ok {
		return nil, apperr.Invalid("unknown cash flow type")
	}
	if _, ok := cashFlowCategoryLabels[req.Category]; !ok {
		return nil, apperr.Invalid("unknown cash flow category")
	}
	if !req.Amount.IsPositive() {
		return nil, apperr.Invalid("amount must be greater than zero")
	}

	now := s.now()
	date := req.Date
	if date.IsZero() {
		date = now
	}

	entry := &CashFlowEntry{
		ID:          uuid.NewString(),
		Date:        date,
		Type:        req.Type,
		Category:    req.Category,
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		CreatedAt:   now,
	}
	if err := s.storage.InsertCashFlowEntry(ctx, entry); err != nil {
		s.logger.Error("failed to save cash flow entry", zap.String("entry_id", entry.ID), zap.Error(err))
		return nil, apperr.Persistence("insert cash flow entry", err)
	}

	s.logger.Info("cash flow entry created",
		zap.String("entry_id", entry.ID),
		zap.Stringer("type", entry.Type),
		zap.Stringer("category", entry.Category),
		zap.String("amount", entry.Amount.StringFixed(2)),
	)
	return entry, nil
}

// ListCashFlow returns entries matching filter, newest first.
func (s *Service) ListCashFlow(ctx context.Context, filter CashFlowFilter) ([]*CashFlowEntry, error) {
	out, err := s.storage.FindCashFlow(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list cash flow", zap.Error(err))
		return nil, apperr.Persistence("find cash flow", err)
	}
	return out, nil
}

// DeleteCashFlowEntry removes a posting as an administrative correction.
func (s *Service) DeleteCashFlowEntry(ctx context.Context, id string) error {
	if err := s.storage.DeleteCashFlowEntry(ctx, id); err != nil {
		return apperr.Persistence("delete cash flow entry", err)
	}
	s.logger.Info("cash flow entry deleted", zap.String("entry_id", id))
	return nil
}
