// Package ledger is a focused client for a Hiro-style Stacks node API. It
// covers the three operations this service needs: account balance reads,
// read-only contract calls, and contract-call broadcast.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// Contract identifies the on-chain tokenized-stock contract as ADDRESS.name.
type Contract struct {
	Address string
	Name    string
}

// ParseContract splits an "ADDRESS.name" contract identifier.
func ParseContract(id string) (Contract, error) {
	addr, name, ok := strings.Cut(strings.TrimSpace(id), ".")
	if !ok || addr == "" || name == "" {
		return Contract{}, fmt.Errorf("ledger: invalid contract identifier %q", id)
	}
	return Contract{Address: addr, Name: name}, nil
}

func (c Contract) String() string { return c.Address + "." + c.Name }

// Account is the subset of the node's account payload this service reads.
type Account struct {
	BalanceMicroSTX int64
	Nonce           int64
}

// ReadResult is the outcome of a read-only contract call. Result holds the
// hex-encoded Clarity value when Okay is true.
type ReadResult struct {
	Okay   bool
	Result string
	Cause  string
}

// ContractCall is a contract-call broadcast request. Args are hex-encoded
// Clarity values; the signer key is resolved by the client.
type ContractCall struct {
	Function string
	Args     []string
}

// API is the ledger surface consumed by the trading and account packages.
type API interface {
	GetAccount(ctx context.Context, address string) (Account, error)
	CallReadOnly(ctx context.Context, function, sender string, args []string) (ReadResult, error)
	BroadcastContractCall(ctx context.Context, call ContractCall) (string, error)
}

// Getter resolves secrets from the parameter store. Defined here so the
// client is testable without AWS.
type Getter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// HTTPStatusError captures non-2xx node responses with status-aware context.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("ledger: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Client talks to one node over HTTP for one contract.
type Client struct {
	http        *resty.Client
	contract    Contract
	getter      Getter
	paramPrefix string

	keyOnce   sync.Once
	signerKey string
	keyErr    error
}

type Option func(*Client)

// WithTimeout overrides the default 10s per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// NewClient creates a ledger client for the node at baseURL. The demo signer
// key is fetched from the parameter store on the first broadcast and cached
// for the process lifetime.
func NewClient(baseURL string, contract Contract, ps Getter, paramPrefix string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("ledger: base URL must not be empty")
	}
	if contract.Address == "" || contract.Name == "" {
		return nil, errors.New("ledger: contract must be fully specified")
	}
	if ps == nil {
		return nil, errors.New("ledger: paramstore getter must not be nil")
	}
	paramPrefix = strings.TrimRight(strings.TrimSpace(paramPrefix), "/")
	if paramPrefix == "" {
		return nil, errors.New("ledger: parameter prefix must not be empty")
	}

	h := resty.New()
	h.SetBaseURL(baseURL)
	h.SetTimeout(10 * time.Second)

	c := &Client{
		http:        h,
		contract:    contract,
		getter:      ps,
		paramPrefix: paramPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// accountResponse mirrors the node's /v2/accounts payload. Balance arrives as
// a hex string ("0x...") on real nodes and as a decimal string on some mocks.
type accountResponse struct {
	Balance string `json:"balance"`
	Nonce   int64  `json:"nonce"`
}

// GetAccount reads the account state for address.
func (c *Client) GetAccount(ctx context.Context, address string) (Account, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Account{}, errors.New("ledger: address must not be empty")
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("proof", "0").
		Get("/v2/accounts/" + address)
	if err != nil {
		return Account{}, fmt.Errorf("ledger: get account: %w", err)
	}
	if err := statusError(resp); err != nil {
		return Account{}, err
	}

	var payload accountResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return Account{}, fmt.Errorf("ledger: decode account response: %w", err)
	}
	balance, err := parseBalance(payload.Balance)
	if err != nil {
		return Account{}, fmt.Errorf("ledger: parse balance: %w", err)
	}
	return Account{BalanceMicroSTX: balance, Nonce: payload.Nonce}, nil
}

type readOnlyRequest struct {
	Sender    string   `json:"sender"`
	Arguments []string `json:"arguments"`
}

type readOnlyResponse struct {
	Okay   bool   `json:"okay"`
	Result string `json:"result"`
	Cause  string `json:"cause"`
}

// CallReadOnly invokes a read-only contract function as sender.
func (c *Client) CallReadOnly(ctx context.Context, function, sender string, args []string) (ReadResult, error) {
	if function == "" {
		return ReadResult{}, errors.New("ledger: function must not be empty")
	}
	if args == nil {
		args = []string{}
	}

	path := fmt.Sprintf("/v2/contracts/call-read/%s/%s/%s", c.contract.Address, c.contract.Name, function)
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(readOnlyRequest{Sender: sender, Arguments: args}).
		Post(path)
	if err != nil {
		return ReadResult{}, fmt.Errorf("ledger: call %s: %w", function, err)
	}
	if err := statusError(resp); err != nil {
		return ReadResult{}, err
	}

	var payload readOnlyResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return ReadResult{}, fmt.Errorf("ledger: decode %s response: %w", function, err)
	}
	return ReadResult{Okay: payload.Okay, Result: payload.Result, Cause: payload.Cause}, nil
}

type broadcastRequest struct {
	ContractAddress string   `json:"contract_address"`
	ContractName    string   `json:"contract_name"`
	FunctionName    string   `json:"function_name"`
	FunctionArgs    []string `json:"function_args"`
	SenderKey       string   `json:"sender_key"`
}

type broadcastResponse struct {
	TxID string `json:"txid"`
}

// BroadcastContractCall signs and broadcasts a contract call, returning the
// transaction ID the node assigned. No retries; a rejected broadcast is the
// caller's problem to report.
func (c *Client) BroadcastContractCall(ctx context.Context, call ContractCall) (string, error) {
	if call.Function == "" {
		return "", errors.New("ledger: function must not be empty")
	}
	key, err := c.resolveSignerKey(ctx)
	if err != nil {
		return "", err
	}
	args := call.Args
	if args == nil {
		args = []string{}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(broadcastRequest{
			ContractAddress: c.contract.Address,
			ContractName:    c.contract.Name,
			FunctionName:    call.Function,
			FunctionArgs:    args,
			SenderKey:       key,
		}).
		Post("/v2/transactions")
	if err != nil {
		return "", fmt.Errorf("ledger: broadcast %s: %w", call.Function, err)
	}
	if err := statusError(resp); err != nil {
		return "", err
	}

	var payload broadcastResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return "", fmt.Errorf("ledger: decode broadcast response: %w", err)
	}
	if payload.TxID == "" {
		return "", errors.New("ledger: broadcast response missing txid")
	}
	return payload.TxID, nil
}

// signerKeyPayload is the JSON shape stored in SSM for the demo signer key.
type signerKeyPayload struct {
	Key string `json:"key"`
}

// resolveSignerKey fetches the signer key from the parameter store on the
// first call and returns the cached result afterwards.
func (c *Client) resolveSignerKey(ctx context.Context) (string, error) {
	c.keyOnce.Do(func() {
		c.signerKey, c.keyErr = fetchSignerKey(ctx, c.getter, c.paramPrefix+"/signer-key")
	})
	return c.signerKey, c.keyErr
}

func fetchSignerKey(ctx context.Context, getter Getter, name string) (string, error) {
	raw, err := getter.GetParameter(ctx, name)
	if err != nil {
		return "", fmt.Errorf("ledger: fetch signer key: %w", err)
	}
	var payload signerKeyPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return "", fmt.Errorf("ledger: unmarshal signer key value: %w", err)
	}
	if payload.Key == "" {
		return "", errors.New("ledger: signer key is empty")
	}
	return payload.Key, nil
}

func statusError(resp *resty.Response) error {
	if resp.StatusCode() >= 200 && resp.StatusCode() < 300 {
		return nil
	}
	body := resp.String()
	if len(body) > 4096 {
		body = body[:4096]
	}
	return &HTTPStatusError{
		StatusCode: resp.StatusCode(),
		URL:        resp.Request.URL,
		Body:       body,
	}
}

// parseBalance accepts both hex ("0x...") and decimal balance encodings.
func parseBalance(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty balance")
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseInt(s[2:], 16, 64)
	}
	return strconv.ParseInt(s, 10, 64)
}
