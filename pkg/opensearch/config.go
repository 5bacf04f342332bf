package opensearch

import "time"

// Config describes the cluster that receives classification records.
type Config struct {
	Addresses    []string `env:"OPENSEARCH_ADDRESSES" envSeparator:","`
	Username     string   `env:"OPENSEARCH_USERNAME"`
	Password     string   `env:"OPENSEARCH_PASSWORD"`
	MaxRetries   int      `env:"OPENSEARCH_MAX_RETRIES" envDefault:"3"`
	DisableRetry bool     `env:"OPENSEARCH_DISABLE_RETRY" envDefault:"false"`

	Index         string        `env:"OPENSEARCH_INDEX" envDefault:"user-agents"`
	BatchSize     int           `env:"OPENSEARCH_BATCH_SIZE" envDefault:"500"`
	FlushInterval time.Duration `env:"OPENSEARCH_FLUSH_INTERVAL" envDefault:"5s"`
}

// Enabled reports whether any cluster address is configured.
func (c Config) Enabled() bool { return len(c.Addresses) > 0 }
