package marketplace

import (
	"testing"
	"time"

	"catalog-sync/feature/marketplace/memory"
	"catalog-sync/feature/marketplace/ozon"
	"catalog-sync/feature/marketplace/yandex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Run("ozon", func(t *testing.T) {
		m, err := New(Config{Provider: ProviderOzon, ClientID: "1", APIKey: "k"}, zap.NewNop())
		require.NoError(t, err)
		_, ok := m.(*ozon.Client)
		assert.True(t, ok)
		assert.Equal(t, "ozon", m.Name())
	})

	t.Run("ozon without credentials", func(t *testing.T) {
		_, err := New(Config{Provider: ProviderOzon}, zap.NewNop())
		assert.ErrorContains(t, err, "client_id")
	})

	yandexCfg := YandexConfig{
		Token:          "t",
		FBSCampaignID:  "11",
		FBSWarehouseID: 5,
		DBSCampaignID:  "12",
		DBSWarehouseID: 6,
	}

	for _, provider := range []string{ProviderYandexFBS, ProviderYandexDBS} {
		t.Run(provider, func(t *testing.T) {
			m, err := New(Config{Provider: provider, Yandex: yandexCfg}, zap.NewNop())
			require.NoError(t, err)
			_, ok := m.(*yandex.Client)
			assert.True(t, ok)
			assert.Equal(t, provider, m.Name())
		})
	}

	t.Run("yandex without campaign", func(t *testing.T) {
		_, err := New(Config{Provider: ProviderYandexDBS, Yandex: YandexConfig{Token: "t", FBSCampaignID: "11", FBSWarehouseID: 5}}, nil)
		assert.ErrorContains(t, err, "yandex-dbs marketplace requires")
	})

	t.Run("yandex without token", func(t *testing.T) {
		_, err := New(Config{Provider: ProviderYandexFBS, Yandex: YandexConfig{FBSCampaignID: "11", FBSWarehouseID: 5}}, nil)
		assert.ErrorContains(t, err, "token")
	})

	t.Run("memory", func(t *testing.T) {
		m, err := New(Config{Provider: ProviderMemory}, nil)
		require.NoError(t, err)
		_, ok := m.(*memory.Marketplace)
		assert.True(t, ok)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := New(Config{Provider: "wildberries"}, nil)
		assert.ErrorContains(t, err, "unknown marketplace provider")
	})
}

func TestYandexConfig_Campaign(t *testing.T) {
	cfg := YandexConfig{FBSCampaignID: "11", FBSWarehouseID: 5, DBSCampaignID: "12", DBSWarehouseID: 6}

	campaign, warehouse := cfg.Campaign(ProviderYandexFBS)
	assert.Equal(t, "11", campaign)
	assert.Equal(t, int64(5), warehouse)

	campaign, warehouse = cfg.Campaign(ProviderYandexDBS)
	assert.Equal(t, "12", campaign)
	assert.Equal(t, int64(6), warehouse)
}

func TestConfig_CallTimeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, Config{}.CallTimeout())
	assert.Equal(t, 5*time.Second, Config{CallTimeoutSeconds: 5}.CallTimeout())
}
