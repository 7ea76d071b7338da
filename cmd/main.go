package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"stockify-agent/handler"
	"stockify-agent/internal/account"
	"stockify-agent/internal/config"
	"stockify-agent/internal/integrations/ledger"
	"stockify-agent/internal/integrations/paramstore"
	"stockify-agent/internal/pricing"
	"stockify-agent/internal/trading"
	"stockify-agent/internal/usecase"
)

func main() {
	ctx := context.Background()
	logger := slog.Default()

	// ---- Configuration (read only here) ----
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	contract, err := ledger.ParseContract(cfg.Contract)
	if err != nil {
		slog.Error("failed to parse contract identifier", "err", err)
		os.Exit(1)
	}

	// ---- AWS SDK config ----
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Clients ----
	ssmClient, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
	if err != nil {
		slog.Error("failed to create SSM client", "err", err)
		os.Exit(1)
	}

	ledgerClient, err := ledger.NewClient(cfg.LedgerAPIURL, contract, ssmClient, cfg.ParamPrefix)
	if err != nil {
		slog.Error("failed to create ledger client", "err", err)
		os.Exit(1)
	}

	oracle := pricing.NewOracle()

	submitter, err := trading.NewSubmitter(ledgerClient, oracle, logger)
	if err != nil {
		slog.Error("failed to create trade submitter", "err", err)
		os.Exit(1)
	}

	accounts, err := account.NewService(ledgerClient, logger)
	if err != nil {
		slog.Error("failed to create account service", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	chatService, err := usecase.NewChatService(submitter, accounts, oracle, logger, cfg.MaxMessageLen)
	if err != nil {
		slog.Error("failed to create chat service", "err", err)
		os.Exit(1)
	}

	portfolioService, err := usecase.NewPortfolioService(accounts, accounts, account.History)
	if err != nil {
		slog.Error("failed to create portfolio service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(chatService, portfolioService,
		handler.WithExplorerBaseURL(cfg.ExplorerBaseURL),
		handler.WithLogger(logger),
	)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
