package feed

import "time"

// Source kinds.
const (
	SourceStorage = "storage"
	SourceHTTP    = "http"
)

// Config holds configuration for the product feed.
type Config struct {
	// Source selects where the feed is read from (storage, http).
	Source string `mapstructure:"source" default:"storage"`
	// Object is the feed object name in the storage bucket.
	Object string `mapstructure:"object" default:"feeds/stock.csv"`
	// URL is the feed location for the http source.
	URL string `mapstructure:"url" default:""`
	// Format forces the decoder (csv, json, yaml). Empty detects it from the file extension.
	Format string `mapstructure:"format" default:""`
	// Delimiter is the CSV field separator.
	Delimiter string `mapstructure:"delimiter" default:","`
	// SkipRows is the number of lines before the CSV header row.
	SkipRows int `mapstructure:"skip_rows" default:"0"`
	// KeyColumn holds the SKU / offer id.
	KeyColumn string `mapstructure:"key_column" default:"Код"`
	// NameColumn holds the product name.
	NameColumn string `mapstructure:"name_column" default:"Модель"`
	// PriceColumn holds the price.
	PriceColumn string `mapstructure:"price_column" default:"Цена"`
	// StockColumn holds the stock quantity.
	StockColumn string `mapstructure:"stock_column" default:"Количество"`
	// OverflowStock is published for overflow markers such as ">10".
	OverflowStock int `mapstructure:"overflow_stock" default:"100"`
	// ReserveStock publishes counts at or below this value as zero.
	ReserveStock int `mapstructure:"reserve_stock" default:"0"`
	// TruncatePrice drops the fractional part of prices.
	TruncatePrice bool `mapstructure:"truncate_price" default:"false"`
	// TimeoutSeconds bounds the feed download.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
	// MaxAgeHours marks older feed objects as stale in integrity checks. Zero disables it.
	MaxAgeHours int `mapstructure:"max_age_hours" default:"24"`
}

// Columns returns the column mapping of the feed.
func (c Config) Columns() Columns {
	return Columns{
		Key:   c.KeyColumn,
		Name:  c.NameColumn,
		Price: c.PriceColumn,
		Stock: c.StockColumn,
	}
}

// Timeout returns the download timeout, defaulting to one minute.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MaxAge returns the staleness threshold of the feed object.
func (c Config) MaxAge() time.Duration {
	return time.Duration(c.MaxAgeHours) * time.Hour
}
