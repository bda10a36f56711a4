// Package explorer talks to the Blockscout indexing API of the configured
// network. Responses are served straight through without caching; callers see
// exactly what the indexer currently reports.
package explorer

import (
	"context"
	"fmt"

	"github.com/vanagogh/mint-gateway/internal/adapter"
	"github.com/vanagogh/mint-gateway/internal/domain"
	"github.com/vanagogh/mint-gateway/internal/ratelimit"
)

const PROVIDER_NAME = "blockscout"

// TokenInfo describes a token contract as reported by the indexer
type TokenInfo struct {
	Address string  `json:"address"`
	Name    *string `json:"name"`
	Symbol  *string `json:"symbol"`
	Type    string  `json:"type"`
}

// Attribute represents one metadata attribute of a token instance
type Attribute struct {
	TraitType string      `json:"trait_type"`
	Value     interface{} `json:"value"`
}

// InstanceMetadata is the parsed token metadata held by the indexer
type InstanceMetadata struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Image       *string     `json:"image"`
	Attributes  []Attribute `json:"attributes"`
}

// TokenInstance represents a single owned token
type TokenInstance struct {
	ID       string            `json:"id"`
	ImageURL *string           `json:"image_url"`
	Metadata *InstanceMetadata `json:"metadata"`
}

// NFTCollection groups the owned instances of one contract
type NFTCollection struct {
	Token          TokenInfo       `json:"token"`
	Amount         string          `json:"amount"`
	TokenInstances []TokenInstance `json:"token_instances"`
}

type collectionsResponse struct {
	Items []NFTCollection `json:"items"`
}

// Client defines the interface for indexing API operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/explorer_client.go -package=mocks -mock_names=Client=MockExplorerClient
type Client interface {
	// GetNFTCollections fetches the NFT holdings of an account, grouped by contract
	GetNFTCollections(ctx context.Context, account string) ([]NFTCollection, error)

	// GetTokenInstance fetches a single token instance of a contract
	GetTokenInstance(ctx context.Context, contract, tokenID string) (*TokenInstance, error)
}

// BlockscoutClient implements the indexing API client
type BlockscoutClient struct {
	httpClient     adapter.HTTPClient
	rateLimitProxy ratelimit.Proxy
	apiURL         string
	json           adapter.JSON
}

// NewClient creates a client for the given network's indexing API
func NewClient(httpClient adapter.HTTPClient, rateLimitProxy ratelimit.Proxy, chain domain.Chain, json adapter.JSON) *BlockscoutClient {
	return &BlockscoutClient{
		httpClient:     httpClient,
		rateLimitProxy: rateLimitProxy,
		apiURL:         chain.ExplorerAPIURL(),
		json:           json,
	}
}

// GetNFTCollections fetches the NFT holdings of an account, grouped by contract
func (c *BlockscoutClient) GetNFTCollections(ctx context.Context, account string) ([]NFTCollection, error) {
	url := fmt.Sprintf("%s/addresses/%s/nft/collections?type=ERC-721", c.apiURL, account)

	respBody, err := ratelimit.Request(ctx, c.rateLimitProxy, PROVIDER_NAME, func(ctx context.Context) ([]byte, error) {
		return c.httpClient.GetBytes(ctx, url, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call indexing API: %w", err)
	}

	var response collectionsResponse
	if err := c.json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal collections response: %w", err)
	}

	return response.Items, nil
}

// GetTokenInstance fetches a single token instance of a contract
func (c *BlockscoutClient) GetTokenInstance(ctx context.Context, contract, tokenID string) (*TokenInstance, error) {
	url := fmt.Sprintf("%s/tokens/%s/instances/%s", c.apiURL, contract, tokenID)

	respBody, err := ratelimit.Request(ctx, c.rateLimitProxy, PROVIDER_NAME, func(ctx context.Context) ([]byte, error) {
		return c.httpClient.GetBytes(ctx, url, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call indexing API: %w", err)
	}

	var instance TokenInstance
	if err := c.json.Unmarshal(respBody, &instance); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token instance: %w", err)
	}

	return &instance, nil
}
