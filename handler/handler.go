// Package handler adapts API Gateway events to the chat and portfolio
// usecases: one POST chat endpoint and three GET read endpoints for the
// dashboard widgets.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"stockify-agent/internal/domain"
	"stockify-agent/internal/usecase"
)

const (
	headerCorrelationID = "X-Correlation-Id"
	defaultExplorerBase = "https://explorer.hiro.so"
)

type Chatter interface {
	Chat(ctx context.Context, in usecase.ChatInput) (usecase.ChatOutput, error)
}

type PortfolioReader interface {
	Holdings(ctx context.Context, address string) ([]domain.Holding, error)
	History(ctx context.Context, address string) ([]domain.Transaction, error)
	Balances(ctx context.Context, address string) (domain.Balances, error)
}

type chatRequest struct {
	Message string `json:"message"`
	Context struct {
		UserAddress string `json:"userAddress"`
	} `json:"context"`
	History []domain.ChatMessage `json:"history"`
}

type chatResponse struct {
	Response    string `json:"response"`
	TxHash      string `json:"txHash,omitempty"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	chat         Chatter
	portfolio    PortfolioReader
	explorerBase string
	logger       *slog.Logger
}

type Option func(*Handler)

// WithExplorerBaseURL overrides the block-explorer host used when rendering
// transaction links.
func WithExplorerBaseURL(base string) Option {
	return func(h *Handler) {
		h.explorerBase = strings.TrimRight(strings.TrimSpace(base), "/")
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

func NewHandler(chat Chatter, portfolio PortfolioReader, opts ...Option) (*Handler, error) {
	if chat == nil {
		return nil, errors.New("handler: chat service must not be nil")
	}
	if portfolio == nil {
		return nil, errors.New("handler: portfolio service must not be nil")
	}
	h := &Handler{
		chat:         chat,
		portfolio:    portfolio,
		explorerBase: defaultExplorerBase,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Handle routes one API Gateway event. Every response carries the caller's
// correlation ID, or a generated one.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := correlationID(event.Headers)

	switch event.Path {
	case "/api/chat":
		if event.HTTPMethod != http.MethodPost {
			return respondError(corrID, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"), nil
		}
		return h.handleChat(ctx, corrID, event.Body), nil
	case "/api/holdings":
		if event.HTTPMethod != http.MethodGet {
			return respondError(corrID, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"), nil
		}
		return h.handleHoldings(ctx, corrID, event.QueryStringParameters["address"]), nil
	case "/api/history":
		if event.HTTPMethod != http.MethodGet {
			return respondError(corrID, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"), nil
		}
		return h.handleHistory(ctx, corrID, event.QueryStringParameters["address"]), nil
	case "/api/balances":
		if event.HTTPMethod != http.MethodGet {
			return respondError(corrID, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"), nil
		}
		return h.handleBalances(ctx, corrID, event.QueryStringParameters["address"]), nil
	default:
		return respondError(corrID, http.StatusNotFound, "NOT_FOUND"), nil
	}
}

func (h *Handler) handleChat(ctx context.Context, corrID, body string) events.APIGatewayProxyResponse {
	var req chatRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return respondError(corrID, http.StatusBadRequest, string(usecase.ErrorInvalidInput))
	}

	out, err := h.chat.Chat(ctx, usecase.ChatInput{
		Message: req.Message,
		Session: domain.Session{Address: req.Context.UserAddress},
		History: req.History,
	})
	if err != nil {
		return h.respondUsecaseError(corrID, err)
	}

	resp := chatResponse{Response: out.Reply, TxHash: out.TxHash}
	if out.TxHash != "" {
		resp.ExplorerURL = h.explorerTxURL(out.TxHash)
	}
	return respondJSON(corrID, http.StatusOK, resp)
}

func (h *Handler) handleHoldings(ctx context.Context, corrID, address string) events.APIGatewayProxyResponse {
	holdings, err := h.portfolio.Holdings(ctx, address)
	if err != nil {
		return h.respondUsecaseError(corrID, err)
	}
	return respondJSON(corrID, http.StatusOK, holdings)
}

func (h *Handler) handleHistory(ctx context.Context, corrID, address string) events.APIGatewayProxyResponse {
	history, err := h.portfolio.History(ctx, address)
	if err != nil {
		return h.respondUsecaseError(corrID, err)
	}
	return respondJSON(corrID, http.StatusOK, history)
}

func (h *Handler) handleBalances(ctx context.Context, corrID, address string) events.APIGatewayProxyResponse {
	balances, err := h.portfolio.Balances(ctx, address)
	if err != nil {
		return h.respondUsecaseError(corrID, err)
	}
	return respondJSON(corrID, http.StatusOK, balances)
}

func (h *Handler) respondUsecaseError(corrID string, err error) events.APIGatewayProxyResponse {
	var ucErr *usecase.Error
	if errors.As(err, &ucErr) {
		status := http.StatusInternalServerError
		switch ucErr.Code {
		case usecase.ErrorInvalidInput:
			status = http.StatusBadRequest
		case usecase.ErrorUpstream:
			status = http.StatusBadGateway
		}
		if status >= 500 {
			h.logger.Error("request failed", "code", ucErr.Code, "reason", ucErr.Reason, "err", err)
		}
		return respondError(corrID, status, string(ucErr.Code))
	}
	h.logger.Error("request failed", "err", err)
	return respondError(corrID, http.StatusInternalServerError, string(usecase.ErrorInternal))
}

func (h *Handler) explorerTxURL(txHash string) string {
	return fmt.Sprintf("%s/txid/%s?chain=testnet", h.explorerBase, txHash)
}

// correlationID returns the caller-provided correlation ID, matched
// case-insensitively, or generates one.
func correlationID(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, headerCorrelationID) && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return uuid.NewString()
}

func respondJSON(corrID string, status int, payload any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		body = []byte(`{"error":"INTERNAL_ERROR"}`)
		status = http.StatusInternalServerError
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":      "application/json",
			headerCorrelationID: corrID,
		},
		Body: string(body),
	}
}

func respondError(corrID string, status int, code string) events.APIGatewayProxyResponse {
	return respondJSON(corrID, status, errorResponse{Error: code})
}
