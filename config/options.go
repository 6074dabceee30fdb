package config

// Option overrides a field of Config, applied after Load/Default.
type Option func(*Config)

// WithInputDir overrides the input document directory.
func WithInputDir(dir string) Option { return func(c *Config) { c.InputDir = dir } }

// WithWorkers overrides the worker-rank count.
func WithWorkers(n uint) Option { return func(c *Config) { c.Workers = n } }

// WithLogLevel overrides the logging level.
func WithLogLevel(level string) Option { return func(c *Config) { c.LogLevel = level } }

// WithLogJSON selects structured JSON log output instead of console output.
func WithLogJSON() Option { return func(c *Config) { c.LogJSON = true } }

// WithMetricsAddr sets the address the Prometheus handler listens on; an
// empty address (the default) disables the metrics server.
func WithMetricsAddr(addr string) Option { return func(c *Config) { c.MetricsAddr = addr } }

// Apply layers opts over cfg in order.
func Apply(cfg Config, opts ...Option) Config {
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// DirPaths returns cfg's five directories as plain strings, in the field
// order of storage.Layout, so callers can build a storage.Layout without
// storage depending on config.
func (c Config) DirPaths() (inputDir, tempDir, directIndexDir, reverseTempDir, reverseDir string) {
	return c.InputDir, c.TempDir, c.DirectIndexDir, c.ReverseTempDir, c.ReverseDir
}
