package marketplace

import (
	"fmt"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/marketplace/memory"
	"catalog-sync/feature/marketplace/ozon"
	"catalog-sync/feature/marketplace/yandex"

	"go.uber.org/zap"
)

// New builds the configured marketplace client.
func New(cfg Config, log *zap.Logger) (reconcile.Marketplace, error) {
	switch cfg.Provider {
	case ProviderOzon, "":
		if cfg.ClientID == "" || cfg.APIKey == "" {
			return nil, fmt.Errorf("ozon marketplace requires client_id and api_key")
		}
		return ozon.New(ozon.Options{
			BaseURL:  cfg.BaseURL,
			ClientID: cfg.ClientID,
			APIKey:   cfg.APIKey,
			Currency: cfg.Currency,
			PageSize: cfg.PageSize,
			Timeout:  cfg.CallTimeout(),
			Logger:   log,
		}), nil
	case ProviderYandexFBS, ProviderYandexDBS:
		campaign, warehouse := cfg.Yandex.Campaign(cfg.Provider)
		if cfg.Yandex.Token == "" || campaign == "" || warehouse == 0 {
			return nil, fmt.Errorf("%s marketplace requires token, campaign id and warehouse id", cfg.Provider)
		}
		return yandex.New(yandex.Options{
			Name:        cfg.Provider,
			BaseURL:     cfg.Yandex.BaseURL,
			Token:       cfg.Yandex.Token,
			CampaignID:  campaign,
			WarehouseID: warehouse,
			BusinessID:  cfg.Yandex.BusinessID,
			Currency:    cfg.Yandex.Currency,
			PageSize:    cfg.Yandex.PageSize,
			Timeout:     cfg.CallTimeout(),
			Logger:      log,
		}), nil
	case ProviderMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown marketplace provider: %s", cfg.Provider)
	}
}
