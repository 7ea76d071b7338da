package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeGetter struct {
	val    string
	err    error
	onCall func()
}

func (f *fakeGetter) GetParameter(_ context.Context, _ string) (string, error) {
	if f.onCall != nil {
		f.onCall()
	}
	return f.val, f.err
}

const testContract = "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM.stockify-core"

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	contract, err := ParseContract(testContract)
	require.NoError(t, err)
	c, err := NewClient(srv.URL, contract, &fakeGetter{val: `{"key":"demo-signer"}`}, "/stockify-agent")
	require.NoError(t, err)
	return c
}

func TestParseContract(t *testing.T) {
	c, err := ParseContract(testContract)
	require.NoError(t, err)
	require.Equal(t, "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM", c.Address)
	require.Equal(t, "stockify-core", c.Name)
	require.Equal(t, testContract, c.String())

	_, err = ParseContract("no-dot-here")
	require.Error(t, err)
	_, err = ParseContract(".missing-address")
	require.Error(t, err)
}

func TestNewClient_Validation(t *testing.T) {
	contract, err := ParseContract(testContract)
	require.NoError(t, err)

	_, err = NewClient("", contract, &fakeGetter{}, "/p")
	require.Error(t, err)
	_, err = NewClient("http://localhost", Contract{}, &fakeGetter{}, "/p")
	require.Error(t, err)
	_, err = NewClient("http://localhost", contract, nil, "/p")
	require.Error(t, err)
	_, err = NewClient("http://localhost", contract, &fakeGetter{}, " ")
	require.Error(t, err)
}

func TestGetAccount_HappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v2/accounts/ST2TESTADDRESS", r.URL.Path)
		require.Equal(t, "0", r.URL.Query().Get("proof"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"balance":"0x0000000000000000000000000ee6b280","nonce":4}`))
	}))
	defer srv.Close()

	acct, err := newTestClient(t, srv).GetAccount(context.Background(), "ST2TESTADDRESS")
	require.NoError(t, err)
	require.Equal(t, int64(250_000_000), acct.BalanceMicroSTX)
	require.Equal(t, int64(4), acct.Nonce)
}

func TestGetAccount_DecimalBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"balance":"1000000","nonce":0}`))
	}))
	defer srv.Close()

	acct, err := newTestClient(t, srv).GetAccount(context.Background(), "ST2TESTADDRESS")
	require.NoError(t, err)
	require.Equal(t, int64(1_000_000), acct.BalanceMicroSTX)
}

func TestGetAccount_EmptyAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	_, err := newTestClient(t, srv).GetAccount(context.Background(), " ")
	require.Error(t, err)
}

func TestGetAccount_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"unknown address"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).GetAccount(context.Background(), "ST2TESTADDRESS")
	require.Error(t, err)
	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusNotFound, statusErr.HTTPStatusCode())
}

func TestCallReadOnly_HappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v2/contracts/call-read/ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM/stockify-core/get-position", r.URL.Path)

		var req readOnlyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "ST2TESTADDRESS", req.Sender)
		require.Len(t, req.Arguments, 1)

		_, _ = w.Write([]byte(`{"okay":true,"result":"0x0100000000000000000000000000000005"}`))
	}))
	defer srv.Close()

	out, err := newTestClient(t, srv).CallReadOnly(context.Background(), "get-position", "ST2TESTADDRESS", []string{ClarityASCII("AAPL")})
	require.NoError(t, err)
	require.True(t, out.Okay)
	require.Equal(t, "0x0100000000000000000000000000000005", out.Result)
}

func TestCallReadOnly_NotOkay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"okay":false,"cause":"unchecked position"}`))
	}))
	defer srv.Close()

	out, err := newTestClient(t, srv).CallReadOnly(context.Background(), "get-position", "ST2TESTADDRESS", nil)
	require.NoError(t, err)
	require.False(t, out.Okay)
	require.Equal(t, "unchecked position", out.Cause)
}

func TestBroadcastContractCall_HappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/transactions", r.URL.Path)
		var req broadcastRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM", req.ContractAddress)
		require.Equal(t, "stockify-core", req.ContractName)
		require.Equal(t, "mint-stock", req.FunctionName)
		require.Equal(t, "demo-signer", req.SenderKey)
		_, _ = w.Write([]byte(`{"txid":"0xabc123"}`))
	}))
	defer srv.Close()

	txid, err := newTestClient(t, srv).BroadcastContractCall(context.Background(), ContractCall{
		Function: "mint-stock",
		Args:     []string{ClarityASCII("AAPL"), ClarityUint(1), ClarityUint(184_275_000)},
	})
	require.NoError(t, err)
	require.Equal(t, "0xabc123", txid)
}

func TestBroadcastContractCall_MissingTxID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).BroadcastContractCall(context.Background(), ContractCall{Function: "mint-stock"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing txid")
}

func TestBroadcastContractCall_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"transaction rejected"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).BroadcastContractCall(context.Background(), ContractCall{Function: "redeem-stock"})
	require.Error(t, err)
	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	require.Contains(t, statusErr.Body, "transaction rejected")
}

func TestBroadcastContractCall_SignerKeyFetchedOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"txid":"0x1"}`))
	}))
	defer srv.Close()

	calls := 0
	contract, err := ParseContract(testContract)
	require.NoError(t, err)
	getter := &fakeGetter{val: `{"key":"demo-signer"}`}
	getter.onCall = func() { calls++ }
	c, err := NewClient(srv.URL, contract, getter, "/stockify-agent")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := c.BroadcastContractCall(context.Background(), ContractCall{Function: "mint-stock"})
		require.NoError(t, err)
	}
	require.Equal(t, 1, calls, "signer key must only be fetched once per process lifetime")
}

func TestBroadcastContractCall_SignerKeyErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	contract, err := ParseContract(testContract)
	require.NoError(t, err)

	c, err := NewClient(srv.URL, contract, &fakeGetter{err: errors.New("ssm unavailable")}, "/p")
	require.NoError(t, err)
	_, err = c.BroadcastContractCall(context.Background(), ContractCall{Function: "mint-stock"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "fetch signer key")

	c, err = NewClient(srv.URL, contract, &fakeGetter{val: `{"other":"x"}`}, "/p")
	require.NoError(t, err)
	_, err = c.BroadcastContractCall(context.Background(), ContractCall{Function: "mint-stock"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "signer key is empty")
}

func TestClarityEncoding(t *testing.T) {
	// tag 0x0d, length 4, "AAPL"
	require.Equal(t, "0x0d000000044141504c", ClarityASCII("AAPL"))
	// tag 0x01, 16-byte big-endian 5
	require.Equal(t, "0x0100000000000000000000000000000005", ClarityUint(5))
	require.Equal(t, "0x0100000000000000000000000000000000", ClarityUint(0))
}
