package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no client-side timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "operator-search/0.1"). Empty leaves the Go default.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DefaultBaseURL is the API address used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8010/api"

// ClientConfig holds settings for the search API client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the API prefix all requests are issued against
	// (default DefaultBaseURL). Fixed for the lifetime of a client.
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// StoreConfig holds settings for the operator store.
type StoreConfig struct {
	// Path is the SQLite database file (default "data/operators.db").
	Path string `json:"path" yaml:"path"`

	// CSVPath is the operator CSV loaded into an empty store on startup
	// (default "data/operadoras.csv").
	CSVPath string `json:"csv" yaml:"csv"`
}

// ServerConfig holds settings for the search API server.
type ServerConfig struct {
	// Addr is the listen address (default ":8010").
	Addr string `json:"addr" yaml:"addr"`

	// AllowedOrigins lists the CORS origins accepted (default ["*"]).
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Config groups all component configurations.
type Config struct {
	Client ClientConfig `json:"client" yaml:"client"`
	Server ServerConfig `json:"server" yaml:"server"`
	Store  StoreConfig  `json:"store" yaml:"store"`
}
