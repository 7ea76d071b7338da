package domain

// TradeDirection distinguishes buy (mint) from sell (redeem) orders.
type TradeDirection string

const (
	DirectionBuy  TradeDirection = "BUY"
	DirectionSell TradeDirection = "SELL"
)

// TradeOrder is a single slippage-bounded instruction submitted to the ledger.
// LimitPrice is in the ledger's smallest price unit (micro-STX): a ceiling for
// buys, a floor for sells. Orders are built per chat turn and submitted once.
type TradeOrder struct {
	Ticker     string
	Shares     int
	LimitPrice int64
	Direction  TradeDirection
}

// TradeResult is what the ledger returned for a submitted order.
type TradeResult struct {
	TxHash string `json:"txHash"`
	Ticker string `json:"ticker"`
	Shares int    `json:"shares"`
	// Notional is the estimated order value in whole STX, shares x oracle price.
	Notional float64 `json:"notional"`
}

// Holding is a read-only snapshot row for the dashboard holdings table.
type Holding struct {
	Ticker            string  `json:"ticker"`
	Shares            int     `json:"shares"`
	AvgCost           float64 `json:"avgCost"`
	CurrentPrice      float64 `json:"currentPrice"`
	TotalValue        float64 `json:"totalValue"`
	ProfitLoss        float64 `json:"profitLoss"`
	ProfitLossPercent float64 `json:"profitLossPercent"`
}

// Balances holds the wallet figures shown in the balance reply. Values are
// pre-formatted strings because the UI renders them verbatim.
type Balances struct {
	STX    string `json:"stx"`
	SBTC   string `json:"sbtc"`
	DStock string `json:"dstock"`
}

// Transaction is one row of the dashboard transaction history list.
type Transaction struct {
	TxID      string  `json:"txId"`
	TxHash    string  `json:"txHash"`
	Ticker    string  `json:"ticker"`
	Shares    int     `json:"shares"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
	Action    string  `json:"action"`
	Asset     string  `json:"asset"`
	Timestamp int64   `json:"timestamp"`
	Status    string  `json:"status"`
}
