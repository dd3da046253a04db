package marketplace

import "time"

// Providers.
const (
	ProviderOzon      = "ozon"
	ProviderYandexFBS = "yandex-fbs"
	ProviderYandexDBS = "yandex-dbs"
	ProviderMemory    = "memory"
)

// Config holds configuration for the marketplace client.
type Config struct {
	// Provider selects the marketplace implementation (ozon, yandex-fbs, yandex-dbs, memory).
	Provider string `mapstructure:"provider" default:"ozon"`
	// BaseURL is the Seller API endpoint.
	BaseURL string `mapstructure:"base_url" default:"https://api-seller.ozon.ru"`
	// ClientID is the seller account id sent as Client-Id.
	ClientID string `mapstructure:"client_id" default:""`
	// APIKey is the seller API key sent as Api-Key.
	APIKey string `mapstructure:"api_key" default:""`
	// CallTimeoutSeconds bounds every marketplace call.
	CallTimeoutSeconds int `mapstructure:"call_timeout_seconds" default:"30"`
	// Currency is the currency code sent with prices.
	Currency string `mapstructure:"currency" default:"RUB"`
	// PageSize is the number of listings requested per page.
	PageSize int `mapstructure:"page_size" default:"1000"`
	// Yandex configures the Yandex Market campaigns.
	Yandex YandexConfig `mapstructure:"yandex"`
}

// YandexConfig holds the Partner API credentials and the campaigns of one shop.
type YandexConfig struct {
	BaseURL string `mapstructure:"base_url" default:"https://api.partner.market.yandex.ru"`
	// Token is the API key sent as a Bearer token.
	Token string `mapstructure:"token" default:""`
	// BusinessID is the cabinet id; only needed to create offers.
	BusinessID     string `mapstructure:"business_id" default:""`
	FBSCampaignID  string `mapstructure:"fbs_campaign_id" default:""`
	FBSWarehouseID int64  `mapstructure:"fbs_warehouse_id" default:"0"`
	DBSCampaignID  string `mapstructure:"dbs_campaign_id" default:""`
	DBSWarehouseID int64  `mapstructure:"dbs_warehouse_id" default:"0"`
	Currency       string `mapstructure:"currency" default:"RUR"`
	PageSize       int    `mapstructure:"page_size" default:"200"`
}

// Campaign returns the campaign and warehouse ids for a yandex provider.
func (c YandexConfig) Campaign(provider string) (string, int64) {
	if provider == ProviderYandexDBS {
		return c.DBSCampaignID, c.DBSWarehouseID
	}
	return c.FBSCampaignID, c.FBSWarehouseID
}

// CallTimeout returns the per-call timeout, defaulting to 30 seconds.
func (c Config) CallTimeout() time.Duration {
	if c.CallTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.CallTimeoutSeconds) * time.Second
}
