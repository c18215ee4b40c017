// Package rates fetches fiat price quotes for supported cryptocurrencies.
package rates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const (
	quotePath      = "/simple/price"
	defaultTimeout = 10 * time.Second
	retryCount     = 3
	retryWaitTime  = time.Second
)

var (
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrQuoteUnavailable    = errors.New("price quote unavailable")
)

// quote API asset identifiers per currency code
var assetIDs = map[string]string{
	"XMR": "monero",
}

type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(retryWaitTime)
	return &Client{http: client}
}

// Quote returns the fiat price of one unit of currency, e.g. EUR per XMR.
func (c *Client) Quote(ctx context.Context, currency, fiat string) (decimal.Decimal, error) {
	assetID, ok := assetIDs[strings.ToUpper(currency)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, currency)
	}
	vsCurrency := strings.ToLower(fiat)

	var result map[string]map[string]decimal.Decimal
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("ids", assetID).
		SetQueryParam("vs_currencies", vsCurrency).
		SetResult(&result).
		Get(quotePath)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrQuoteUnavailable, err)
	}
	if resp.IsError() {
		return decimal.Zero, fmt.Errorf("%w: status %d", ErrQuoteUnavailable, resp.StatusCode())
	}

	price, ok := result[assetID][vsCurrency]
	if !ok || !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: no %s/%s quote in response", ErrQuoteUnavailable, currency, fiat)
	}
	return price, nil
}
