package schema

import (
	"time"

	"github.com/vanagogh/mint-gateway/internal/domain"
)

// MintRecord represents the mint_records table. One row is written per
// submission attempt, terminal outcomes included, so the journal doubles as
// an audit trail.
type MintRecord struct {
	// ID is the request identifier assigned at submission time
	ID string `gorm:"column:id;primaryKey"`
	// Chain is the blockchain network the mint was submitted on
	Chain domain.Chain `gorm:"column:chain;not null"`
	// Account is the minting wallet address
	Account string `gorm:"column:account;not null"`
	// Quantity is the number of tokens requested
	Quantity int64 `gorm:"column:quantity;not null"`
	// TotalPrice is the attached value in the smallest currency unit, as a decimal string
	TotalPrice string `gorm:"column:total_price;not null"`
	// TxHash is the submitted transaction hash, empty when submission never reached the network
	TxHash string `gorm:"column:tx_hash"`
	// Outcome is the terminal state of the attempt
	Outcome domain.MintOutcome `gorm:"column:outcome;not null"`
	// Error is the failure reason for rejected and failed attempts
	Error string `gorm:"column:error"`
	// CreatedAt is the timestamp when the record was written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName overrides the table name
func (MintRecord) TableName() string {
	return "mint_records"
}
