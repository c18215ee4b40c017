// Package walletrpc is a client for the Monero wallet daemon's JSON-RPC
// interface (basic auth over HTTP).
package walletrpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// AtomicUnitsPerXMR is the Monero denomination factor: 1 XMR = 1e12 atomic units.
const AtomicUnitsPerXMR = 1_000_000_000_000

const (
	rpcPath        = "/json_rpc"
	defaultTimeout = 15 * time.Second
	retryCount     = 2
	retryWaitTime  = time.Second

	// DefaultRingSize is the decoy count used for outgoing transfers.
	DefaultRingSize = 16
)

var ErrDaemonUnavailable = errors.New("wallet daemon unavailable")

type rpcRequest struct {
	Jsonrpc string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type Client struct {
	// query retries on transport errors; submit never does, so a transfer
	// cannot be replayed by the transport layer.
	query  *resty.Client
	submit *resty.Client
}

func New(baseURL, username, password string) *Client {
	query := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(retryWaitTime).
		AddRetryCondition(func(_ *resty.Response, err error) bool {
			return isRetryableError(err)
		})
	submit := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout)
	if username != "" {
		query.SetBasicAuth(username, password)
		submit.SetBasicAuth(username, password)
	}
	return &Client{query: query, submit: submit}
}

func (c *Client) call(ctx context.Context, client *resty.Client, method string, params, result any) error {
	var envelope rpcResponse
	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(rpcRequest{Jsonrpc: "2.0", ID: "0", Method: method, Params: params}).
		SetResult(&envelope).
		Post(rpcPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDaemonUnavailable, method, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: %s: status %d", ErrDaemonUnavailable, method, resp.StatusCode())
	}
	if envelope.Error != nil {
		return fmt.Errorf("wallet rpc %s failed: %s (code %d)", method, envelope.Error.Message, envelope.Error.Code)
	}
	if result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("can't parse %s result: %w", method, err)
		}
	}
	return nil
}

func (c *Client) CreateWallet(ctx context.Context, filename, password, language string) error {
	params := map[string]string{
		"filename": filename,
		"password": password,
		"language": language,
	}
	return c.call(ctx, c.query, "create_wallet", params, nil)
}

func (c *Client) OpenWallet(ctx context.Context, filename, password string) error {
	params := map[string]string{
		"filename": filename,
		"password": password,
	}
	return c.call(ctx, c.query, "open_wallet", params, nil)
}

func (c *Client) GetAddress(ctx context.Context, accountIndex uint32) (string, error) {
	params := map[string]uint32{"account_index": accountIndex}
	var result struct {
		Address string `json:"address"`
	}
	if err := c.call(ctx, c.query, "get_address", params, &result); err != nil {
		return "", err
	}
	return result.Address, nil
}

func (c *Client) CreateAddress(ctx context.Context, accountIndex uint32, label string) (string, uint32, error) {
	params := map[string]any{
		"account_index": accountIndex,
		"label":         label,
	}
	var result struct {
		Address      string `json:"address"`
		AddressIndex uint32 `json:"address_index"`
	}
	if err := c.call(ctx, c.query, "create_address", params, &result); err != nil {
		return "", 0, err
	}
	return result.Address, result.AddressIndex, nil
}

// QueryKey returns key material for keyType ("view_key", "spend_key" or "mnemonic").
func (c *Client) QueryKey(ctx context.Context, keyType string) (string, error) {
	params := map[string]string{"key_type": keyType}
	var result struct {
		Key string `json:"key"`
	}
	if err := c.call(ctx, c.query, "query_key", params, &result); err != nil {
		return "", err
	}
	return result.Key, nil
}

type Balance struct {
	Balance         uint64 `json:"balance"`
	UnlockedBalance uint64 `json:"unlocked_balance"`
}

func (c *Client) GetBalance(ctx context.Context, accountIndex uint32) (*Balance, error) {
	params := map[string]uint32{"account_index": accountIndex}
	var result Balance
	if err := c.call(ctx, c.query, "get_balance", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ValidateAddress(ctx context.Context, address string) (bool, error) {
	params := map[string]string{"address": address}
	var result struct {
		Valid bool `json:"valid"`
	}
	if err := c.call(ctx, c.query, "validate_address", params, &result); err != nil {
		return false, err
	}
	return result.Valid, nil
}

type Destination struct {
	Amount  uint64 `json:"amount"`
	Address string `json:"address"`
}

type TransferParams struct {
	Destinations []Destination `json:"destinations"`
	RingSize     uint32        `json:"ring_size"`
	Priority     uint32        `json:"priority"`
	GetTxKey     bool          `json:"get_tx_key"`
}

type TransferResult struct {
	TxHash string `json:"tx_hash"`
	TxKey  string `json:"tx_key"`
	Amount uint64 `json:"amount"`
	Fee    uint64 `json:"fee"`
}

// Transfer submits a transfer without transport-level retries: a retried
// submission could double-spend.
func (c *Client) Transfer(ctx context.Context, params TransferParams) (*TransferResult, error) {
	if params.RingSize == 0 {
		params.RingSize = DefaultRingSize
	}
	var result TransferResult
	if err := c.call(ctx, c.submit, "transfer", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DecimalToAtomic converts an XMR amount to atomic units, truncating
// anything below one atomic unit.
func DecimalToAtomic(amount decimal.Decimal) uint64 {
	return amount.Mul(decimal.NewFromInt(AtomicUnitsPerXMR)).BigInt().Uint64()
}

// AtomicToDecimal converts atomic units to an XMR amount.
func AtomicToDecimal(atomic uint64) decimal.Decimal {
	return decimal.NewFromUint64(atomic).Div(decimal.NewFromInt(AtomicUnitsPerXMR))
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}
