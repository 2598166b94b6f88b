// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds every externally tunable setting. Each field is a plain
// override of a documented default; no core logic branches on these beyond
// selecting endpoints.
type Config struct {
	// HTTP listen port.
	Port string

	// Google Cloud project and bucket holding data.json and receipts.
	GCPProjectID  string
	GCPKeyFile    string
	GCPBucketName string

	// Ethereum node RPC endpoint.
	EthereumNode string

	// Deployed contract coordinates. The ABI is parsed at startup to
	// validate the artifact; the gateway itself only does value transfers.
	ContractAddress string
	ContractABIPath string

	// Redis connection for the data cache.
	RedisHost string
	RedisPort string

	// Comma-separated list of allowed CORS origins.
	CORSAllowedOrigins []string

	// Upper bound on waiting for a submitted transaction to be mined.
	SubmitTimeout time.Duration

	// Log level for all components.
	LogLevel string
}

// Load reads configuration from environment variables, applying defaults
// for anything unset.
func Load() Config {
	return Config{
		Port:               getenv("PORT", "5000"),
		GCPProjectID:       os.Getenv("GCP_PROJECT_ID"),
		GCPKeyFile:         getenv("GCP_KEY_FILE", "./gcp-service-account.json"),
		GCPBucketName:      getenv("GCP_BUCKET_NAME", "blockchain-app-bucket"),
		EthereumNode:       getenv("ETHEREUM_NODE", "http://localhost:8545"),
		ContractAddress:    os.Getenv("CONTRACT_ADDRESS"),
		ContractABIPath:    getenv("CONTRACT_ABI_PATH", "contract_abi.json"),
		RedisHost:          getenv("REDIS_HOST", "localhost"),
		RedisPort:          getenv("REDIS_PORT", "6379"),
		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
		SubmitTimeout:      getenvDuration("SUBMIT_TIMEOUT", 90*time.Second),
		LogLevel:           getenv("LOG_LEVEL", "info"),
	}
}

// RedisAddr returns the host:port pair for the cache connection.
func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// ListenAddr returns the address the HTTP server binds to.
func (c Config) ListenAddr() string {
	return ":" + c.Port
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
