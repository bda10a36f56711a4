// Package assets exposes the wallet's NFT holdings as reported by the
// network's indexing API. The browser holds no cache: every call fetches
// fresh, and an indexer failure surfaces as an error rather than stale data.
package assets

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/vanagogh/mint-gateway/internal/adapter"
	"github.com/vanagogh/mint-gateway/internal/domain"
	"github.com/vanagogh/mint-gateway/internal/logger"
	"github.com/vanagogh/mint-gateway/internal/messaging"
	"github.com/vanagogh/mint-gateway/internal/providers/explorer"
	"github.com/vanagogh/mint-gateway/internal/uri"
	"github.com/vanagogh/mint-gateway/internal/wallet"
)

// Token is one owned token instance, ready for display
type Token struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	ExplorerURL string `json:"explorer_url"`
}

// Collection groups the owned tokens of one contract
type Collection struct {
	Contract    string  `json:"contract"`
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	Amount      string  `json:"amount"`
	ExplorerURL string  `json:"explorer_url"`
	Tokens      []Token `json:"tokens"`
}

// Browser lists and transfers the connected wallet's tokens
type Browser struct {
	explorer  explorer.Client
	wallet    wallet.Wallet
	clock     adapter.Clock
	publisher messaging.Publisher
	chain     domain.Chain
}

// NewBrowser creates a browser for the connected wallet
func NewBrowser(
	explorerClient explorer.Client,
	w wallet.Wallet,
	clock adapter.Clock,
	publisher messaging.Publisher,
	chain domain.Chain,
) *Browser {
	return &Browser{
		explorer:  explorerClient,
		wallet:    w,
		clock:     clock,
		publisher: publisher,
		chain:     chain,
	}
}

// ListCollections fetches the wallet's current NFT holdings
func (b *Browser) ListCollections(ctx context.Context) ([]Collection, error) {
	account := b.wallet.Address().Hex()

	raw, err := b.explorer.GetNFTCollections(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holdings: %w", err)
	}

	collections := make([]Collection, 0, len(raw))
	for _, item := range raw {
		collection := Collection{
			Contract:    item.Token.Address,
			Amount:      item.Amount,
			ExplorerURL: b.chain.AddressURL(item.Token.Address),
		}
		if item.Token.Name != nil {
			collection.Name = *item.Token.Name
		}
		if item.Token.Symbol != nil {
			collection.Symbol = *item.Token.Symbol
		}

		for _, instance := range item.TokenInstances {
			collection.Tokens = append(collection.Tokens, b.buildToken(item.Token.Address, instance))
		}

		collections = append(collections, collection)
	}

	return collections, nil
}

// GetToken fetches a single owned token instance
func (b *Browser) GetToken(ctx context.Context, contract, tokenID string) (*Token, error) {
	instance, err := b.explorer.GetTokenInstance(ctx, contract, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch token instance: %w", err)
	}

	token := b.buildToken(contract, *instance)
	return &token, nil
}

// Transfer submits a transferFrom moving tokenID of contract from the
// connected wallet to the recipient
func (b *Browser) Transfer(ctx context.Context, contract common.Address, to common.Address, tokenID *big.Int) (common.Hash, error) {
	txHash, err := b.wallet.SubmitTransfer(ctx, contract, to, tokenID)
	if err != nil {
		return common.Hash{}, domain.ClassifySubmissionError(err)
	}

	logger.Info("Transfer transaction submitted",
		zap.String("tx_hash", txHash.Hex()),
		zap.String("contract", contract.Hex()),
		zap.String("token_id", tokenID.String()))

	event := &domain.GatewayEvent{
		Type:      domain.EventTypeTransfer,
		Chain:     b.chain,
		Account:   b.wallet.Address().Hex(),
		TxHash:    txHash.Hex(),
		Timestamp: b.clock.Now(),
	}
	if err := b.publisher.PublishEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish transfer event", zap.Error(err))
	}

	return txHash, nil
}

// buildToken maps an indexer token instance into the display model, picking
// metadata fields first and falling back to the indexer's own image URL
func (b *Browser) buildToken(contract string, instance explorer.TokenInstance) Token {
	token := Token{
		ID:          instance.ID,
		ExplorerURL: b.chain.TokenInstanceURL(contract, instance.ID),
	}

	if instance.Metadata != nil {
		if instance.Metadata.Name != nil {
			token.Name = *instance.Metadata.Name
		}
		if instance.Metadata.Description != nil {
			token.Description = *instance.Metadata.Description
		}
		if instance.Metadata.Image != nil {
			token.ImageURL = uri.Normalize(*instance.Metadata.Image)
		}
	}
	if token.ImageURL == "" && instance.ImageURL != nil {
		token.ImageURL = uri.Normalize(*instance.ImageURL)
	}

	return token
}
