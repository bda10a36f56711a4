package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vanagogh/mint-gateway/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// EthereumConfig holds chain connection and contract configuration
type EthereumConfig struct {
	RPCURL          string       `mapstructure:"rpc_url"`
	ChainID         domain.Chain `mapstructure:"chain_id"`
	ContractAddress string       `mapstructure:"contract_address"`
}

// WalletConfig holds the signer configuration
type WalletConfig struct {
	PrivateKey string `mapstructure:"private_key"` // hex-encoded, no 0x prefix
}

// PollConfig holds the snapshot polling cadences
type PollConfig struct {
	FastInterval   time.Duration `mapstructure:"fast_interval"`   // mint-flow-critical fields
	SlowInterval   time.Duration `mapstructure:"slow_interval"`   // informational fields
	ReconcileDelay time.Duration `mapstructure:"reconcile_delay"` // post-submission wallet count re-read
	WorkerPoolSize int           `mapstructure:"worker_pool_size"`
}

// NATSConfig holds the optional event publisher configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// DatabaseConfig holds the optional mint journal database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// AuthConfig holds authentication configuration for the write endpoints
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// ExplorerConfig holds the indexing API client configuration
type ExplorerConfig struct {
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// GatewayConfig holds configuration for the mint-gateway binary
type GatewayConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
	Wallet     WalletConfig   `mapstructure:"wallet"`
	Poll       PollConfig     `mapstructure:"poll"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Database   DatabaseConfig `mapstructure:"database"`
	Auth       AuthConfig     `mapstructure:"auth"`
	Explorer   ExplorerConfig `mapstructure:"explorer"`
}

// LoadGatewayConfig loads configuration for the mint-gateway binary.
// A missing contract address is a startup-fatal configuration error.
func LoadGatewayConfig(configFile string, envPath string) (*GatewayConfig, error) {
	v := configureViper("mint-gateway", configFile, envPath)

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("ethereum.chain_id", uint64(domain.ChainVanaMainnet))
	v.SetDefault("poll.fast_interval", "5s")
	v.SetDefault("poll.slow_interval", "60s")
	v.SetDefault("poll.reconcile_delay", "2s")
	v.SetDefault("poll.worker_pool_size", 8)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "MINT_EVENTS")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("explorer.http_timeout", "30s")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg GatewayConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the deployment-time configuration values the minting core
// cannot run without
func (c *GatewayConfig) Validate() error {
	if c.Ethereum.ContractAddress == "" {
		return &domain.ConfigurationError{Field: "ethereum.contract_address", Reason: "required"}
	}
	if !common.IsHexAddress(c.Ethereum.ContractAddress) {
		return &domain.ConfigurationError{Field: "ethereum.contract_address", Reason: "not a valid hex address"}
	}
	if c.Ethereum.RPCURL == "" {
		return &domain.ConfigurationError{Field: "ethereum.rpc_url", Reason: "required"}
	}
	if !domain.IsValidChain(c.Ethereum.ChainID) {
		return &domain.ConfigurationError{
			Field:  "ethereum.chain_id",
			Reason: fmt.Sprintf("unsupported chain id %d", uint64(c.Ethereum.ChainID)),
		}
	}
	return nil
}

// JournalEnabled reports whether the optional mint journal is configured
func (c *GatewayConfig) JournalEnabled() bool {
	return c.Database.Host != "" && c.Database.DBName != ""
}

// EventsEnabled reports whether the optional NATS event publisher is configured
func (c *GatewayConfig) EventsEnabled() bool {
	return c.NATS.URL != ""
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("MINT_GATEWAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// This is required for viper to map env vars to config struct fields when no
// config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.chain_id",
		"ethereum.contract_address",
		// Wallet
		"wallet.private_key",
		// Poll
		"poll.fast_interval",
		"poll.slow_interval",
		"poll.reconcile_delay",
		"poll.worker_pool_size",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Explorer
		"explorer.http_timeout",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}
