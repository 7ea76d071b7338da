// Package usecase sequences one chat turn: parse the message into an intent,
// make at most one downstream call, and format the agent's reply.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"stockify-agent/internal/domain"
	"stockify-agent/internal/intent"
)

const defaultMaxMessageLen = 500

type Trader interface {
	SubmitBuy(ctx context.Context, sess domain.Session, ticker string, shares int) (domain.TradeResult, error)
	SubmitSell(ctx context.Context, sess domain.Session, ticker string, shares int) (domain.TradeResult, error)
}

type BalanceReader interface {
	Balances(ctx context.Context, address string) (domain.Balances, error)
}

type PriceSource interface {
	Price(ticker string) decimal.Decimal
}

// ChatService is stateless across turns; the caller passes a bounded history
// window which is carried for future use but plays no part in intent
// resolution today.
type ChatService struct {
	trader        Trader
	balances      BalanceReader
	prices        PriceSource
	logger        *slog.Logger
	maxMessageLen int
}

type ChatInput struct {
	Message string
	Session domain.Session
	History []domain.ChatMessage
}

type ChatOutput struct {
	Reply  string
	TxHash string
}

func NewChatService(trader Trader, balances BalanceReader, prices PriceSource, logger *slog.Logger, maxMessageLen int) (*ChatService, error) {
	if trader == nil {
		return nil, errors.New("usecase: trader must not be nil")
	}
	if balances == nil {
		return nil, errors.New("usecase: balance reader must not be nil")
	}
	if prices == nil {
		return nil, errors.New("usecase: price source must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if maxMessageLen <= 0 {
		maxMessageLen = defaultMaxMessageLen
	}
	return &ChatService{
		trader:        trader,
		balances:      balances,
		prices:        prices,
		logger:        logger,
		maxMessageLen: maxMessageLen,
	}, nil
}

// Chat handles one turn. Each intent triggers at most one downstream call;
// trade submission happens exactly once per buy/sell turn with no dedup of
// repeated commands. Submission failures come back as chat replies, not
// errors.
func (s *ChatService) Chat(ctx context.Context, in ChatInput) (ChatOutput, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return ChatOutput{}, newError(ErrorInvalidInput, "empty_message", nil)
	}
	if len(message) > s.maxMessageLen {
		return ChatOutput{}, newError(ErrorInvalidInput, "message_too_long", nil)
	}
	if strings.TrimSpace(in.Session.Address) == "" {
		return ChatOutput{}, newError(ErrorInvalidInput, "missing_address", nil)
	}

	parsed := intent.Parse(message)
	s.logger.Info("chat turn", "intent", parsed.Kind, "ticker", parsed.Ticker, "shares", parsed.Shares)

	switch parsed.Kind {
	case intent.KindCheckBalance:
		balances, err := s.balances.Balances(ctx, in.Session.Address)
		if err != nil {
			return ChatOutput{}, newError(ErrorInternal, "balance_read_error", err)
		}
		return ChatOutput{Reply: balancesReply(balances)}, nil

	case intent.KindGetPrice:
		return ChatOutput{Reply: priceReply(parsed.Ticker, s.prices.Price(parsed.Ticker))}, nil

	case intent.KindBuy:
		price := s.prices.Price(parsed.Ticker)
		result, err := s.trader.SubmitBuy(ctx, in.Session, parsed.Ticker, parsed.Shares)
		if err != nil {
			s.logger.Warn("buy submission failed", "ticker", parsed.Ticker, "err", err)
			return ChatOutput{Reply: buyFailureReply(err)}, nil
		}
		return ChatOutput{Reply: buyReply(parsed.Ticker, parsed.Shares, price), TxHash: result.TxHash}, nil

	case intent.KindSell:
		price := s.prices.Price(parsed.Ticker)
		result, err := s.trader.SubmitSell(ctx, in.Session, parsed.Ticker, parsed.Shares)
		if err != nil {
			s.logger.Warn("sell submission failed", "ticker", parsed.Ticker, "err", err)
			return ChatOutput{Reply: sellFailureReply(parsed.Shares, parsed.Ticker, err)}, nil
		}
		return ChatOutput{Reply: sellReply(parsed.Ticker, parsed.Shares, price), TxHash: result.TxHash}, nil

	case intent.KindViewHoldings:
		return ChatOutput{Reply: holdingsReply()}, nil

	default:
		return ChatOutput{Reply: helpReply()}, nil
	}
}
