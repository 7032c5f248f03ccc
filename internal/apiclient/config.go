package apiclient

import "time"

// Config holds the remote backend connection settings.
type Config struct {
	BaseURL    string
	Token      string
	TimeoutMs  int
	MaxRetries int
}

func DefaultConfig() Config {
	return Config{
		BaseURL:    "http://localhost:5000/api/v1",
		TimeoutMs:  10000,
		MaxRetries: 2,
	}
}

func (c Config) timeout() time.Duration {
	if c.TimeoutMs <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
