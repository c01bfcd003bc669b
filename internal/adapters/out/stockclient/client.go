// Package stockclient implements the StockOracle port against the external
// stock service's HTTP API. The oracle is authoritative: on-hand counts are
// never cached, and transport failures surface as OracleUnavailable so the
// caller can fail the scan without guessing.
package stockclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"fulfillment/internal/pkg/errs"
)

// Client queries the stock service for on-hand quantities.
//
// Example:
//
//	oracle := stockclient.NewClient("http://stock.internal:8090", 2*time.Second)
//	onHand, err := oracle.OnHand(ctx, "WH-001")
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a stock service client. The timeout bounds each lookup
// end to end; a slow oracle must not hold an order's row lock indefinitely.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type stockResponse struct {
	SKU    string `json:"sku"`
	OnHand int    `json:"on_hand"`
}

// OnHand returns the quantity currently on hand for the SKU. Any transport
// error, non-200 response, or malformed body maps to OracleUnavailable; the
// engine never retries implicitly.
func (c *Client) OnHand(ctx context.Context, sku string) (int, error) {
	endpoint := fmt.Sprintf("%s/stock/%s", c.baseURL, url.PathEscape(sku))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, errs.NewOracleUnavailableError(sku, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, errs.NewOracleUnavailableError(sku, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errs.NewOracleUnavailableError(sku, fmt.Errorf("stock service returned %d", resp.StatusCode))
	}

	var body stockResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, errs.NewOracleUnavailableError(sku, err)
	}

	return body.OnHand, nil
}
