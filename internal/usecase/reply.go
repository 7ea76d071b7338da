package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"

	"stockify-agent/internal/domain"
)

// Reply templates mirror the agent voice of the original dashboard; the chat
// UI renders them verbatim, newlines included.

func balancesReply(b domain.Balances) string {
	return fmt.Sprintf(
		"💰 Your Balances:\n\nSTX: %s\nsBTC: %s\nDSTOCK: %s\n\nYou can use STX to buy stocks!",
		b.STX, b.SBTC, b.DStock,
	)
}

func priceReply(ticker string, price decimal.Decimal) string {
	return fmt.Sprintf(
		"💵 Current price of %s: $%s\n\nWant to buy? Just say \"buy 1 %s with STX\"",
		ticker, price.StringFixed(2), ticker,
	)
}

func buyReply(ticker string, shares int, price decimal.Decimal) string {
	total := price.Mul(decimal.NewFromInt(int64(shares)))
	return fmt.Sprintf(
		"✅ Purchase order submitted!\n\nTicker: %s\nShares: %d\nPrice: ~$%s per share\nTotal: ~$%s\n\nTransaction is being processed...",
		ticker, shares, price.StringFixed(2), total.StringFixed(2),
	)
}

func buyFailureReply(err error) string {
	return fmt.Sprintf(
		"❌ Transaction failed: %s\n\nPlease check your STX balance and try again.",
		err.Error(),
	)
}

func sellReply(ticker string, shares int, price decimal.Decimal) string {
	total := price.Mul(decimal.NewFromInt(int64(shares)))
	return fmt.Sprintf(
		"✅ Sale order submitted!\n\nTicker: %s\nShares: %d\nPrice: ~$%s per share\nTotal: ~$%s\n\nTransaction is being processed...",
		ticker, shares, price.StringFixed(2), total.StringFixed(2),
	)
}

func sellFailureReply(shares int, ticker string, err error) string {
	return fmt.Sprintf(
		"❌ Transaction failed: %s\n\nPlease check that you own %d shares of %s.",
		err.Error(), shares, ticker,
	)
}

func holdingsReply() string {
	return "📊 Check the \"Your Stock Holdings\" section to see your current positions!\n\n" +
		"It shows all your stocks with live prices and profit/loss calculations."
}

func helpReply() string {
	return "I can help you with:\n\n" +
		"📊 \"check balance\" - See your STX balance\n" +
		"💰 \"price of AAPL\" - Get current stock price\n" +
		"📈 \"buy 1 AAPL with STX\" - Buy stocks\n" +
		"📉 \"sell 2 TSLA\" - Sell stocks\n" +
		"🎯 \"show my holdings\" - View portfolio\n\n" +
		"Available tickers: AAPL, TSLA, GOOGL, MSFT, AMZN, NVDA, META, BRK.B, SPY, QQQ"
}
