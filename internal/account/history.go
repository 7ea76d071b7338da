package account

import (
	"strings"
	"time"

	"stockify-agent/internal/domain"
)

// History returns the fabricated transaction list the dashboard polls. The
// entries are fixed demo trades with timestamps relative to now; real history
// would come from the chain indexer.
func History(address string) []domain.Transaction {
	now := time.Now().Unix()
	return []domain.Transaction{
		{
			TxID:      "1",
			TxHash:    "0x" + strings.Repeat("1", 64),
			Ticker:    "AAPL",
			Shares:    5,
			Price:     175.50,
			Total:     877.50,
			Action:    "BUY",
			Asset:     "STX",
			Timestamp: now - 86400,
			Status:    "confirmed",
		},
		{
			TxID:      "2",
			TxHash:    "0x" + strings.Repeat("2", 64),
			Ticker:    "TSLA",
			Shares:    3,
			Price:     245.00,
			Total:     735.00,
			Action:    "BUY",
			Asset:     "STX",
			Timestamp: now - 43200,
			Status:    "confirmed",
		},
	}
}
