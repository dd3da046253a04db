package storage

// Config holds the object storage connection. Feeds and archived run reports live in Bucket.
type Config struct {
	// Endpoint is the S3 compatible host, without scheme.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the static access key id.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey pairs with AccessKey.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL switches the client to https.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is created on start when missing.
	Bucket string `mapstructure:"bucket" default:"catalog"`
	// Region is passed to bucket creation. Empty uses the server default.
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds storage calls made at startup.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
