// Package trading builds slippage-bounded buy and sell instructions and
// submits them to the ledger.
package trading

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"stockify-agent/internal/domain"
	"stockify-agent/internal/integrations/ledger"
	"stockify-agent/internal/pricing"
)

const (
	mintFunction   = "mint-stock"
	redeemFunction = "redeem-stock"
)

type broadcaster interface {
	BroadcastContractCall(ctx context.Context, call ledger.ContractCall) (string, error)
}

type priceSource interface {
	Price(ticker string) decimal.Decimal
}

// Submitter turns (ticker, shares) requests into contract calls with a limit
// price derived from the last oracle quote. It submits exactly once per call:
// no retries, no dedup of repeated identical requests.
type Submitter struct {
	ledger broadcaster
	prices priceSource
	logger *slog.Logger
}

func NewSubmitter(l broadcaster, p priceSource, logger *slog.Logger) (*Submitter, error) {
	if l == nil {
		return nil, errors.New("trading: ledger broadcaster must not be nil")
	}
	if p == nil {
		return nil, errors.New("trading: price source must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Submitter{ledger: l, prices: p, logger: logger}, nil
}

// SubmitBuy broadcasts a mint order capped at 5% above the oracle quote.
func (s *Submitter) SubmitBuy(ctx context.Context, sess domain.Session, ticker string, shares int) (domain.TradeResult, error) {
	price := s.prices.Price(ticker)
	order := domain.TradeOrder{
		Ticker:     ticker,
		Shares:     shares,
		LimitPrice: pricing.MaxBuyUnitPrice(price),
		Direction:  domain.DirectionBuy,
	}
	return s.submit(ctx, sess, order, price)
}

// SubmitSell broadcasts a redeem order floored at 5% below the oracle quote.
func (s *Submitter) SubmitSell(ctx context.Context, sess domain.Session, ticker string, shares int) (domain.TradeResult, error) {
	price := s.prices.Price(ticker)
	order := domain.TradeOrder{
		Ticker:     ticker,
		Shares:     shares,
		LimitPrice: pricing.MinSellUnitPrice(price),
		Direction:  domain.DirectionSell,
	}
	return s.submit(ctx, sess, order, price)
}

func (s *Submitter) submit(ctx context.Context, sess domain.Session, order domain.TradeOrder, price decimal.Decimal) (domain.TradeResult, error) {
	function := mintFunction
	if order.Direction == domain.DirectionSell {
		function = redeemFunction
	}

	txHash, err := s.ledger.BroadcastContractCall(ctx, ledger.ContractCall{
		Function: function,
		Args: []string{
			ledger.ClarityASCII(order.Ticker),
			ledger.ClarityUint(int64(order.Shares)),
			ledger.ClarityUint(order.LimitPrice),
		},
	})
	if err != nil {
		return domain.TradeResult{}, fmt.Errorf("trading: submit %s %s: %w", order.Direction, order.Ticker, err)
	}

	notional := price.Mul(decimal.NewFromInt(int64(order.Shares)))
	s.logger.Info("trade submitted",
		"direction", string(order.Direction),
		"ticker", order.Ticker,
		"shares", order.Shares,
		"limit_unit_price", order.LimitPrice,
		"address", sess.Address,
		"tx_hash", txHash,
	)

	return domain.TradeResult{
		TxHash:   txHash,
		Ticker:   order.Ticker,
		Shares:   order.Shares,
		Notional: notional.InexactFloat64(),
	}, nil
}
