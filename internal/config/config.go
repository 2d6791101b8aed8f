package config

import "time"

// Duration wraps time.Duration so config files can say "5s" instead of
// nanosecond integers.
type Duration struct {
	Duration time.Duration
}

type HTTPConfig struct {
	Addr              string   `yaml:"addr"`
	ReadHeaderTimeout Duration `yaml:"read_header_timeout"`
	IdleTimeout       Duration `yaml:"idle_timeout"`
	ShutdownTimeout   Duration `yaml:"shutdown_timeout"`
	MaxRequestBytes   int64    `yaml:"max_request_bytes"`
}

type StoreConfig struct {
	// BaseURL is the inventory store service, e.g. http://127.0.0.1:8000.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds every read/update call to the store. A timeout is a
	// transport failure for the affected step; there are no automatic retries.
	Timeout Duration `yaml:"timeout"`
}

type Config struct {
	Env   string      `yaml:"env"`
	HTTP  HTTPConfig  `yaml:"http"`
	Store StoreConfig `yaml:"store"`
}
