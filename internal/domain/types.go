package domain

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Chain represents the blockchain network identifier (EIP-155 chain id)
type Chain uint64

const (
	ChainVanaMainnet Chain = 1480
	ChainVanaMoksha  Chain = 14800
)

// IsValidChain checks if a chain is supported
func IsValidChain(chain Chain) bool {
	return chain == ChainVanaMainnet || chain == ChainVanaMoksha
}

// Name returns the human-readable network name
func (c Chain) Name() string {
	switch c {
	case ChainVanaMainnet:
		return "vana"
	case ChainVanaMoksha:
		return "vana-moksha"
	default:
		return fmt.Sprintf("eip155:%d", uint64(c))
	}
}

// ExplorerAPIURL returns the base URL of the block explorer REST API for this network
func (c Chain) ExplorerAPIURL() string {
	switch c {
	case ChainVanaMainnet:
		return "https://vanascan.io/api/v2"
	case ChainVanaMoksha:
		return "https://moksha.vanascan.io/api/v2"
	default:
		return ""
	}
}

// ExplorerWebURL returns the base URL of the block explorer web UI for this network
func (c Chain) ExplorerWebURL() string {
	switch c {
	case ChainVanaMainnet:
		return "https://vanascan.io"
	case ChainVanaMoksha:
		return "https://moksha.vanascan.io"
	default:
		return ""
	}
}

// AddressURL returns the explorer web link for an address
func (c Chain) AddressURL(address string) string {
	return fmt.Sprintf("%s/address/%s", c.ExplorerWebURL(), address)
}

// TokenInstanceURL returns the explorer web link for a token instance
func (c Chain) TokenInstanceURL(contract, tokenID string) string {
	return fmt.Sprintf("%s/token/%s/instance/%s", c.ExplorerWebURL(), contract, tokenID)
}

// MintState holds the mint-flow-critical contract fields.
// Pointer fields are nil until the corresponding read has succeeded; an
// unknown field always fails closed in eligibility derivation.
// A MintState is replaced wholesale on each successful refresh, never patched.
type MintState struct {
	MintPrice        *big.Int        `json:"mint_price"`
	MintActive       *bool           `json:"mint_active"`
	MaxMintPerTx     *big.Int        `json:"max_mint_per_tx"`
	MaxMintPerWallet *big.Int        `json:"max_mint_per_wallet"`
	WalletMintCount  *big.Int        `json:"wallet_mint_count"`
	Account          *common.Address `json:"account"` // account WalletMintCount was read for, nil if disconnected
	TakenAt          time.Time       `json:"taken_at"`
}

// CollectionInfo holds the informational contract fields refreshed on the
// slow cadence. Replaced wholesale on each successful refresh.
type CollectionInfo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	TotalSupply *big.Int  `json:"total_supply"`
	MaxSupply   *big.Int  `json:"max_supply"`
	TakenAt     time.Time `json:"taken_at"`
}

// ContractSnapshot combines both views of the mint contract at one point in
// time. Either part may be nil before its first successful refresh.
type ContractSnapshot struct {
	Mint *MintState      `json:"mint"`
	Info *CollectionInfo `json:"info"`
}

// EligibilityResult is derived from a MintState and the connected account.
// It has no independent storage; it is recomputed on every snapshot change.
type EligibilityResult struct {
	RemainingMints int64 `json:"remaining_mints"`
	MaxSelectable  int64 `json:"max_selectable"`
	Eligible       bool  `json:"eligible"`
}

// MintRequest describes a user-initiated mint. Created on user action,
// consumed immediately by submission; persisted only to the optional journal.
type MintRequest struct {
	ID         string         `json:"id"`
	Account    common.Address `json:"account"`
	Quantity   int64          `json:"quantity"`
	TotalPrice *big.Int       `json:"total_price"`
}

// MintOutcome is the terminal state of a submission attempt
type MintOutcome string

const (
	OutcomeSubmitted MintOutcome = "submitted"
	OutcomeRejected  MintOutcome = "rejected"
	OutcomeFailed    MintOutcome = "failed"
)

// GatewayEventType classifies events published to the message broker
type GatewayEventType string

const (
	EventTypeSnapshotUpdate GatewayEventType = "snapshot_update"
	EventTypeMintSubmitted  GatewayEventType = "mint_submitted"
	EventTypeMintRejected   GatewayEventType = "mint_rejected"
	EventTypeMintFailed     GatewayEventType = "mint_failed"
	EventTypeTransfer       GatewayEventType = "transfer_submitted"
)

// GatewayEvent is the normalized event format published to NATS for
// rendering surfaces that want push updates instead of polling the API.
type GatewayEvent struct {
	Type      GatewayEventType `json:"type"`
	Chain     Chain            `json:"chain"`
	Account   string           `json:"account,omitempty"`
	TxHash    string           `json:"tx_hash,omitempty"`
	Quantity  int64            `json:"quantity,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}
