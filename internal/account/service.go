// Package account serves the wallet-facing read models: balances, the
// holdings snapshot, and the demo transaction history. Position figures are
// demo placeholders; a production build would decode the contract reads this
// package already performs.
package account

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"stockify-agent/internal/domain"
	"stockify-agent/internal/integrations/ledger"
)

// holdingTickers is the fixed set scanned when building the holdings table.
var holdingTickers = []string{"AAPL", "TSLA", "GOOGL", "MSFT", "NVDA"}

// Placeholder position figures reported for every held ticker.
const (
	placeholderShares  = 10
	placeholderAvgCost = 100.0
	placeholderPrice   = 105.0
)

var microPerSTX = decimal.NewFromInt(1_000_000)

type ledgerAPI interface {
	GetAccount(ctx context.Context, address string) (ledger.Account, error)
	CallReadOnly(ctx context.Context, function, sender string, args []string) (ledger.ReadResult, error)
}

// Service answers balance and holdings queries against the ledger.
type Service struct {
	ledger ledgerAPI
	logger *slog.Logger
}

func NewService(l ledgerAPI, logger *slog.Logger) (*Service, error) {
	if l == nil {
		return nil, errors.New("account: ledger api must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{ledger: l, logger: logger}, nil
}

// Balances performs one account read and formats the figures for display.
// A failed read degrades to zero balances rather than an error; the sBTC and
// DSTOCK figures are fixed demo values.
func (s *Service) Balances(ctx context.Context, address string) (domain.Balances, error) {
	acct, err := s.ledger.GetAccount(ctx, address)
	if err != nil {
		s.logger.Warn("balance read failed, reporting zeros", "address", address, "err", err)
		return zeroBalances(), nil
	}
	stx := decimal.NewFromInt(acct.BalanceMicroSTX).Div(microPerSTX)
	return domain.Balances{
		STX:    stx.StringFixed(6),
		SBTC:   "0.00000000",
		DStock: "0",
	}, nil
}

func zeroBalances() domain.Balances {
	return domain.Balances{STX: "0.000000", SBTC: "0.00000000", DStock: "0"}
}

// Holdings scans the fixed ticker set with one position read per ticker,
// sequentially. A ticker whose read fails is logged and skipped; the rest of
// the snapshot is still returned.
func (s *Service) Holdings(ctx context.Context, sess domain.Session) ([]domain.Holding, error) {
	holdings := make([]domain.Holding, 0, len(holdingTickers))
	for _, ticker := range holdingTickers {
		out, err := s.ledger.CallReadOnly(ctx, "get-position", sess.Address, []string{ledger.ClarityASCII(ticker)})
		if err != nil {
			s.logger.Warn("position read failed, skipping ticker", "ticker", ticker, "err", err)
			continue
		}
		if !out.Okay {
			s.logger.Warn("position read not okay, skipping ticker", "ticker", ticker, "cause", out.Cause)
			continue
		}
		holdings = append(holdings, placeholderHolding(ticker))
	}
	return holdings, nil
}

func placeholderHolding(ticker string) domain.Holding {
	shares := placeholderShares
	profitLoss := float64(shares) * (placeholderPrice - placeholderAvgCost)
	return domain.Holding{
		Ticker:            ticker,
		Shares:            shares,
		AvgCost:           placeholderAvgCost,
		CurrentPrice:      placeholderPrice,
		TotalValue:        float64(shares) * placeholderPrice,
		ProfitLoss:        profitLoss,
		ProfitLossPercent: (placeholderPrice - placeholderAvgCost) / placeholderAvgCost * 100,
	}
}
