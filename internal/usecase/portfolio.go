package usecase

import (
	"context"
	"errors"
	"strings"

	"stockify-agent/internal/domain"
)

type HoldingsReader interface {
	Holdings(ctx context.Context, sess domain.Session) ([]domain.Holding, error)
}

// HistorySource supplies the transaction list for an address. The demo
// implementation fabricates it; the dashboard polls this on a fixed interval.
type HistorySource func(address string) []domain.Transaction

// PortfolioService backs the dashboard read endpoints (holdings table,
// transaction history, balances widget).
type PortfolioService struct {
	balances BalanceReader
	holdings HoldingsReader
	history  HistorySource
}

func NewPortfolioService(balances BalanceReader, holdings HoldingsReader, history HistorySource) (*PortfolioService, error) {
	if balances == nil {
		return nil, errors.New("usecase: balance reader must not be nil")
	}
	if holdings == nil {
		return nil, errors.New("usecase: holdings reader must not be nil")
	}
	if history == nil {
		return nil, errors.New("usecase: history source must not be nil")
	}
	return &PortfolioService{balances: balances, holdings: holdings, history: history}, nil
}

func (s *PortfolioService) Holdings(ctx context.Context, address string) ([]domain.Holding, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, newError(ErrorInvalidInput, "missing_address", nil)
	}
	holdings, err := s.holdings.Holdings(ctx, domain.Session{Address: address})
	if err != nil {
		return nil, newError(ErrorInternal, "holdings_read_error", err)
	}
	return holdings, nil
}

func (s *PortfolioService) History(_ context.Context, address string) ([]domain.Transaction, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, newError(ErrorInvalidInput, "missing_address", nil)
	}
	return s.history(address), nil
}

func (s *PortfolioService) Balances(ctx context.Context, address string) (domain.Balances, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Balances{}, newError(ErrorInvalidInput, "missing_address", nil)
	}
	balances, err := s.balances.Balances(ctx, address)
	if err != nil {
		return domain.Balances{}, newError(ErrorInternal, "balance_read_error", err)
	}
	return balances, nil
}
