package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanagogh/mint-gateway/internal/domain"
)

const testContractAddress = "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

func validConfig() *GatewayConfig {
	return &GatewayConfig{
		Ethereum: EthereumConfig{
			RPCURL:          "https://rpc.moksha.vana.org",
			ChainID:         domain.ChainVanaMoksha,
			ContractAddress: testContractAddress,
		},
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateMissingContractAddress(t *testing.T) {
	cfg := validConfig()
	cfg.Ethereum.ContractAddress = ""

	err := cfg.Validate()
	require.Error(t, err)

	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "ethereum.contract_address", cfgErr.Field)
}

func TestValidateMalformedContractAddress(t *testing.T) {
	cfg := validConfig()
	cfg.Ethereum.ContractAddress = "not-an-address"

	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, cfg.Validate(), &cfgErr)
	assert.Equal(t, "ethereum.contract_address", cfgErr.Field)
}

func TestValidateMissingRPCURL(t *testing.T) {
	cfg := validConfig()
	cfg.Ethereum.RPCURL = ""

	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, cfg.Validate(), &cfgErr)
	assert.Equal(t, "ethereum.rpc_url", cfgErr.Field)
}

func TestValidateUnsupportedChain(t *testing.T) {
	cfg := validConfig()
	cfg.Ethereum.ChainID = domain.Chain(1)

	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, cfg.Validate(), &cfgErr)
	assert.Equal(t, "ethereum.chain_id", cfgErr.Field)
}

func TestLoadGatewayConfigFromEnv(t *testing.T) {
	t.Setenv("MINT_GATEWAY_ETHEREUM_RPC_URL", "https://rpc.moksha.vana.org")
	t.Setenv("MINT_GATEWAY_ETHEREUM_CHAIN_ID", "14800")
	t.Setenv("MINT_GATEWAY_ETHEREUM_CONTRACT_ADDRESS", testContractAddress)

	cfg, err := LoadGatewayConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, domain.ChainVanaMoksha, cfg.Ethereum.ChainID)
	assert.Equal(t, testContractAddress, cfg.Ethereum.ContractAddress)

	// Defaults
	assert.Equal(t, 5*time.Second, cfg.Poll.FastInterval)
	assert.Equal(t, 60*time.Second, cfg.Poll.SlowInterval)
	assert.Equal(t, 2*time.Second, cfg.Poll.ReconcileDelay)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.JournalEnabled())
	assert.False(t, cfg.EventsEnabled())
}

func TestLoadGatewayConfigRequiresContractAddress(t *testing.T) {
	t.Setenv("MINT_GATEWAY_ETHEREUM_RPC_URL", "https://rpc.moksha.vana.org")

	_, err := LoadGatewayConfig("", t.TempDir())
	require.Error(t, err)

	var cfgErr *domain.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "gateway",
		Password: "secret",
		DBName:   "mint",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=gateway password=secret dbname=mint sslmode=disable",
		cfg.DSN())
}
