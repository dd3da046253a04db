// Package yandex implements the marketplace client for the Yandex Market Partner API.
//
// A client serves one campaign and one warehouse. FBS and DBS campaigns of the same shop are
// synced as separate marketplaces. Listings are addressed by shop SKU, which is the feed item
// key.
package yandex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalog-sync/core/reconcile"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	pathOfferMappings = "/campaigns/%s/offer-mapping-entries"
	pathOfferPrices   = "/campaigns/%s/offer-prices"
	pathPriceUpdates  = "/campaigns/%s/offer-prices/updates"
	pathStocks        = "/campaigns/%s/offers/stocks"
	pathMappingUpdate = "/businesses/%s/offer-mappings/update"

	defaultPageSize = 200
	maxErrorBody    = 512
	stockTypeFit    = "FIT"
)

// Options configures the client.
type Options struct {
	// Name identifies the campaign in reports, e.g. "yandex-fbs".
	Name        string
	BaseURL     string
	Token       string
	CampaignID  string
	WarehouseID int64
	// BusinessID is needed to create offers. Optional.
	BusinessID string
	Currency   string
	PageSize   int
	Timeout    time.Duration
	Logger     *zap.Logger
	// HTTPClient overrides the transport. Optional.
	HTTPClient *http.Client
}

// Client talks to the Partner API for one campaign.
type Client struct {
	name        string
	baseURL     string
	token       string
	campaignID  string
	warehouseID int64
	businessID  string
	currency    string
	pageSize    int
	http        *http.Client
	log         *zap.Logger
	now         func() time.Time
}

// New creates a Partner API client.
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
		currency = "RUR"
	}
	name := opts.Name
	if name == "" {
		name = "yandex"
	}

	return &Client{
		name:        name,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		token:       opts.Token,
		campaignID:  opts.CampaignID,
		warehouseID: opts.WarehouseID,
		businessID:  opts.BusinessID,
		currency:    currency,
		pageSize:    pageSize,
		http:        httpClient,
		log:         log.With(zap.String("marketplace", name), zap.String("campaign_id", opts.CampaignID)),
		now:         time.Now,
	}
}

// Name returns the campaign name given in Options.
func (c *Client) Name() string {
	return c.name
}

// ListCurrentListings lists the campaign offers with their price and warehouse stock.
// Offers without a price or stock entry are reported with zero.
func (c *Client) ListCurrentListings(ctx context.Context) ([]reconcile.RawListing, error) {
	skus, err := c.offerSkus(ctx)
	if err != nil {
		return nil, err
	}
	prices, err := c.offerPrices(ctx)
	if err != nil {
		return nil, err
	}
	stocks, err := c.offerStocks(ctx, skus)
	if err != nil {
		return nil, err
	}

	listings := make([]reconcile.RawListing, 0, len(skus))
	for _, sku := range skus {
		p, ok := prices[sku]
		if !ok {
			p = decimal.Zero
		}
		listings = append(listings, reconcile.RawListing{
			MarketplaceID: sku,
			Key:           sku,
			Price:         p,
			Stock:         stocks[sku],
		})
	}
	return listings, nil
}

func (c *Client) offerSkus(ctx context.Context) ([]string, error) {
	var skus []string
	token := ""
	for {
		var page offerMappingsResponse
		if err := c.do(ctx, http.MethodGet, c.campaignPath(pathOfferMappings), c.pageQuery(token), nil, &page); err != nil {
			return nil, err
		}
		for _, e := range page.Result.OfferMappingEntries {
			if e.Offer.ShopSku != "" {
				skus = append(skus, e.Offer.ShopSku)
			}
		}
		c.log.Debug("Listed offer page", zap.Int("offers", len(page.Result.OfferMappingEntries)))

		token = page.Result.Paging.NextPageToken
		if token == "" {
			return skus, nil
		}
	}
}

func (c *Client) offerPrices(ctx context.Context) (map[string]decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal)
	token := ""
	for {
		var page offerPricesResponse
		if err := c.do(ctx, http.MethodGet, c.campaignPath(pathOfferPrices), c.pageQuery(token), nil, &page); err != nil {
			return nil, err
		}
		for _, o := range page.Result.Offers {
			prices[o.ID] = o.Price.Value
		}

		token = page.Result.Paging.NextPageToken
		if token == "" {
			return prices, nil
		}
	}
}

// offerStocks sums the FIT stock of the configured warehouse, pageSize offers per request.
func (c *Client) offerStocks(ctx context.Context, skus []string) (map[string]int, error) {
	stocks := make(map[string]int, len(skus))
	for start := 0; start < len(skus); start += c.pageSize {
		end := min(start+c.pageSize, len(skus))

		var resp stocksResponse
		query := url.Values{"limit": {strconv.Itoa(c.pageSize)}}
		if err := c.do(ctx, http.MethodPost, c.campaignPath(pathStocks), query, stocksQuery{OfferIDs: skus[start:end]}, &resp); err != nil {
			return nil, err
		}
		for _, wh := range resp.Result.Warehouses {
			if c.warehouseID != 0 && wh.WarehouseID != c.warehouseID {
				continue
			}
			for _, o := range wh.Offers {
				for _, s := range o.Stocks {
					if s.Type == stockTypeFit {
						stocks[o.OfferID] += s.Count
					}
				}
			}
		}
	}
	return stocks, nil
}

// CreateListing adds the offer to the business catalog and sets its stock. A 409 response is
// reported as ErrCreateConflict.
func (c *Client) CreateListing(ctx context.Context, record reconcile.SourceRecord) (string, error) {
	if c.businessID == "" {
		return "", fmt.Errorf("%w: creating offers requires a business id", reconcile.ErrClientFailure)
	}

	sku := string(record.Key)
	req := mappingUpdateRequest{OfferMappings: []mappingEntry{{Offer: mappingOffer{
		OfferID:    sku,
		Name:       record.Name,
		BasicPrice: c.priceOf(record.Price),
	}}}}

	var resp statusResponse
	path := fmt.Sprintf(pathMappingUpdate, url.PathEscape(c.businessID))
	if err := c.do(ctx, http.MethodPost, path, nil, req, &resp); err != nil {
		return "", err
	}
	if err := resp.check(sku); err != nil {
		return "", err
	}

	if record.Stock > 0 {
		if err := c.UpdateStock(ctx, sku, record.Stock); err != nil {
			return sku, fmt.Errorf("listing created but stock not set: %w", err)
		}
	}
	return sku, nil
}

// UpdatePrice sets the campaign price of an offer.
func (c *Client) UpdatePrice(ctx context.Context, sku string, p decimal.Decimal) error {
	req := priceUpdateRequest{Offers: []priceOffer{{ID: sku, Price: c.priceOf(p)}}}

	var resp statusResponse
	if err := c.do(ctx, http.MethodPost, c.campaignPath(pathPriceUpdates), nil, req, &resp); err != nil {
		return err
	}
	return resp.check(sku)
}

// UpdateStock sets the FIT stock of an offer in the campaign warehouse.
func (c *Client) UpdateStock(ctx context.Context, sku string, stock int) error {
	req := stockUpdateRequest{Skus: []stockSku{{
		Sku:         sku,
		WarehouseID: c.warehouseID,
		Items: []stockItem{{
			Count:     stock,
			Type:      stockTypeFit,
			UpdatedAt: c.now().UTC().Truncate(time.Second).Format(time.RFC3339),
		}},
	}}}

	var resp statusResponse
	if err := c.do(ctx, http.MethodPut, c.campaignPath(pathStocks), nil, req, &resp); err != nil {
		return err
	}
	return resp.check(sku)
}

// UpdateBoth sets price and then stock. The Partner API has no combined endpoint.
func (c *Client) UpdateBoth(ctx context.Context, sku string, p decimal.Decimal, stock int) error {
	if err := c.UpdatePrice(ctx, sku, p); err != nil {
		return err
	}
	return c.UpdateStock(ctx, sku, stock)
}

func (c *Client) priceOf(p decimal.Decimal) price {
	return price{Value: json.Number(p.String()), CurrencyID: c.currency}
}

func (c *Client) campaignPath(format string) string {
	return fmt.Sprintf(format, url.PathEscape(c.campaignID))
}

func (c *Client) pageQuery(token string) url.Values {
	q := url.Values{"limit": {strconv.Itoa(c.pageSize)}}
	if token != "" {
		q.Set("page_token", token)
	}
	return q
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", reconcile.ErrClientFailure, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("Partner API call",
		zap.String("method", method),
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
	var resp statusResponse
	if json.Unmarshal(data, &resp) == nil && len(resp.Errors) > 0 {
		return joinErrors(resp.Errors)
	}
	return strings.TrimSpace(string(data))
}
