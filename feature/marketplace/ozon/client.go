// Package ozon implements the marketplace client for the Ozon Seller API.
//
// Listings are addressed by offer id, which is the feed item key. Product ids assigned by
// Ozon are only known once an import task completes, so they are not used.
package ozon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"catalog-sync/core/reconcile"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	pathProductList  = "/v2/product/list"
	pathProductInfo  = "/v3/product/info/list"
	pathImport       = "/v3/product/import"
	pathImportPrices = "/v1/product/import/prices"
	pathImportStocks = "/v1/product/import/stocks"

	defaultPageSize = 1000
	maxErrorBody    = 512
)

// Options configures the client.
type Options struct {
	BaseURL  string
	ClientID string
	APIKey   string
	Currency string
	PageSize int
	Timeout  time.Duration
	Logger   *zap.Logger
	// HTTPClient overrides the transport. Optional.
	HTTPClient *http.Client
}

// Client talks to the Seller API.
type Client struct {
	baseURL  string
	clientID string
	apiKey   string
	currency string
	pageSize int
	http     *http.Client
	log      *zap.Logger
}

// New creates a Seller API client.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	currency := opts.Currency
	if currency == "" {
		currency = "RUB"
	}

	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		clientID: opts.ClientID,
		apiKey:   opts.APIKey,
		currency: currency,
		pageSize: pageSize,
		http:     httpClient,
		log:      log.With(zap.String("marketplace", "ozon")),
	}
}

// Name returns "ozon".
func (c *Client) Name() string {
	return "ozon"
}

// ListCurrentListings pages through the product list and loads price and stock of each page.
func (c *Client) ListCurrentListings(ctx context.Context) ([]reconcile.RawListing, error) {
	var listings []reconcile.RawListing
	lastID := ""

	for {
		var page productListResponse
		req := productListRequest{
			Filter: productFilter{Visibility: "ALL"},
			LastID: lastID,
			Limit:  c.pageSize,
		}
		if err := c.post(ctx, pathProductList, req, &page); err != nil {
			return nil, err
		}

		offers := make([]string, 0, len(page.Result.Items))
		for _, item := range page.Result.Items {
			offers = append(offers, item.OfferID)
		}
		if len(offers) > 0 {
			items, err := c.productInfo(ctx, offers)
			if err != nil {
				return nil, err
			}
			listings = append(listings, items...)
		}

		c.log.Debug("Listed product page",
			zap.Int("items", len(page.Result.Items)),
			zap.Int("total", page.Result.Total))

		if page.Result.LastID == "" || len(page.Result.Items) < c.pageSize {
			break
		}
		lastID = page.Result.LastID
	}

	if listings == nil {
		listings = []reconcile.RawListing{}
	}
	return listings, nil
}

func (c *Client) productInfo(ctx context.Context, offers []string) ([]reconcile.RawListing, error) {
	var resp productInfoResponse
	if err := c.post(ctx, pathProductInfo, productInfoRequest{OfferID: offers}, &resp); err != nil {
		return nil, err
	}

	out := make([]reconcile.RawListing, 0, len(resp.Items))
	for _, item := range resp.Items {
		stock := 0
		for _, s := range item.Stocks.Stocks {
			stock += s.Present
		}
		out = append(out, reconcile.RawListing{
			MarketplaceID: item.OfferID,
			Key:           item.OfferID,
			Price:         item.Price,
			Stock:         stock,
		})
	}
	return out, nil
}

// CreateListing imports a new product. A 409 response is reported as ErrCreateConflict.
func (c *Client) CreateListing(ctx context.Context, record reconcile.SourceRecord) (string, error) {
	offerID := string(record.Key)
	req := importRequest{Items: []importItem{{
		OfferID:      offerID,
		Name:         record.Name,
		Price:        record.Price.String(),
		CurrencyCode: c.currency,
	}}}

	var resp importResponse
	if err := c.post(ctx, pathImport, req, &resp); err != nil {
		return "", err
	}
	c.log.Debug("Product import queued", zap.String("offer_id", offerID), zap.Int64("task_id", resp.Result.TaskID))

	if record.Stock > 0 {
		if err := c.UpdateStock(ctx, offerID, record.Stock); err != nil {
			return offerID, fmt.Errorf("listing created but stock not set: %w", err)
		}
	}
	return offerID, nil
}

// UpdatePrice sets the price of an offer.
func (c *Client) UpdatePrice(ctx context.Context, offerID string, price decimal.Decimal) error {
	req := pricesRequest{Prices: []priceItem{{
		OfferID:      offerID,
		Price:        price.String(),
		OldPrice:     "0",
		CurrencyCode: c.currency,
	}}}

	var resp updateResponse
	if err := c.post(ctx, pathImportPrices, req, &resp); err != nil {
		return err
	}
	return resp.check(offerID)
}

// UpdateStock sets the stock of an offer.
func (c *Client) UpdateStock(ctx context.Context, offerID string, stock int) error {
	req := stocksRequest{Stocks: []stockItem{{OfferID: offerID, Stock: stock}}}

	var resp updateResponse
	if err := c.post(ctx, pathImportStocks, req, &resp); err != nil {
		return err
	}
	return resp.check(offerID)
}

// UpdateBoth sets price and then stock. The Seller API has no combined endpoint.
func (c *Client) UpdateBoth(ctx context.Context, offerID string, price decimal.Decimal, stock int) error {
	if err := c.UpdatePrice(ctx, offerID, price); err != nil {
		return err
	}
	return c.UpdateStock(ctx, offerID, stock)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", path, err)
	}
	req.Header.Set("Client-Id", c.clientID)
	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", reconcile.ErrClientFailure, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("Seller API call",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode == http.StatusConflict {
		return fmt.Errorf("%w: %s: %s", reconcile.ErrCreateConflict, path, readError(resp.Body))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s: status %d: %s", reconcile.ErrClientFailure, path, resp.StatusCode, readError(resp.Body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: invalid response: %v", reconcile.ErrClientFailure, path, err)
	}
	return nil
}

func readError(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var apiErr apiError
	if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	return strings.TrimSpace(string(data))
}
