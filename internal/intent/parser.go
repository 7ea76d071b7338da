// Package intent turns free-text chat commands into a closed set of trading
// intents. Parsing is an ordered cascade of pattern rules; the first rule that
// matches wins, and anything unrecognized degrades to the help intent rather
// than an error.
package intent

import (
	"regexp"
	"strconv"
	"strings"
)

type Kind int

const (
	KindHelp Kind = iota
	KindCheckBalance
	KindGetPrice
	KindBuy
	KindSell
	KindViewHoldings
)

// Intent is the parsed command. Ticker and Shares are only meaningful for the
// kinds that carry them.
type Intent struct {
	Kind   Kind
	Ticker string
	Shares int
}

var (
	priceRe = regexp.MustCompile(`price of ([a-z]+)`)
	buyRe   = regexp.MustCompile(`buy (\d+) ([a-z]+)`)
	sellRe  = regexp.MustCompile(`sell (\d+) ([a-z]+)`)
)

// defaultPriceTicker is quoted when the user asks about "price" without
// naming a ticker.
const defaultPriceTicker = "AAPL"

type rule func(msg string) (Intent, bool)

// Rule order is a stable contract: a message containing both "buy" and
// "price" resolves to the price intent because price is checked first.
var rules = []rule{
	matchBalance,
	matchPrice,
	matchBuy,
	matchSell,
	matchHoldings,
}

// Parse maps a raw user message to exactly one Intent. Input is lowercased
// before matching; extracted tickers are upper-cased and never validated
// against a known-ticker set.
func Parse(message string) Intent {
	msg := strings.ToLower(message)
	for _, match := range rules {
		if in, ok := match(msg); ok {
			return in
		}
	}
	return Intent{Kind: KindHelp}
}

func matchBalance(msg string) (Intent, bool) {
	if strings.Contains(msg, "balance") || strings.Contains(msg, "how much") {
		return Intent{Kind: KindCheckBalance}, true
	}
	return Intent{}, false
}

func matchPrice(msg string) (Intent, bool) {
	if m := priceRe.FindStringSubmatch(msg); m != nil {
		return Intent{Kind: KindGetPrice, Ticker: strings.ToUpper(m[1])}, true
	}
	if strings.Contains(msg, "price") {
		return Intent{Kind: KindGetPrice, Ticker: defaultPriceTicker}, true
	}
	return Intent{}, false
}

func matchBuy(msg string) (Intent, bool) {
	m := buyRe.FindStringSubmatch(msg)
	if m == nil {
		return Intent{}, false
	}
	// Share count is not range-checked: "buy 0 tsla" parses and is left to the
	// ledger to reject.
	shares, err := strconv.Atoi(m[1])
	if err != nil {
		return Intent{}, false
	}
	return Intent{Kind: KindBuy, Ticker: strings.ToUpper(m[2]), Shares: shares}, true
}

func matchSell(msg string) (Intent, bool) {
	m := sellRe.FindStringSubmatch(msg)
	if m == nil {
		return Intent{}, false
	}
	shares, err := strconv.Atoi(m[1])
	if err != nil {
		return Intent{}, false
	}
	return Intent{Kind: KindSell, Ticker: strings.ToUpper(m[2]), Shares: shares}, true
}

func matchHoldings(msg string) (Intent, bool) {
	if strings.Contains(msg, "holding") || strings.Contains(msg, "portfolio") || strings.Contains(msg, "what do i own") {
		return Intent{Kind: KindViewHoldings}, true
	}
	return Intent{}, false
}
