// Package eligibility derives mint allowances from chain state. Derivation is
// pure: it holds no state of its own and is recomputed from the latest
// snapshot on every call.
package eligibility

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/vanagogh/mint-gateway/internal/domain"
)

// Compute derives the eligibility result for account from state.
// The cap arithmetic only needs the per-wallet counters: remaining and
// selectable are reported whenever those are known for this account, even
// while the mint is paused or the price has not been read yet. Those two
// conditions gate Eligible alone. Unknown counters fail closed to a zero
// allowance, and a snapshot whose wallet mint count was read for a different
// account is treated as unknown.
func Compute(state *domain.MintState, account *common.Address) domain.EligibilityResult {
	var none domain.EligibilityResult

	if state == nil || account == nil {
		return none
	}
	if state.MaxMintPerTx == nil || state.MaxMintPerWallet == nil || state.WalletMintCount == nil {
		return none
	}
	if state.Account == nil || *state.Account != *account {
		return none
	}

	remaining := new(big.Int).Sub(state.MaxMintPerWallet, state.WalletMintCount)
	if remaining.Sign() < 0 {
		remaining = big.NewInt(0)
	}

	selectable := remaining
	if state.MaxMintPerTx.Cmp(remaining) < 0 {
		selectable = state.MaxMintPerTx
	}

	eligible := state.MintActive != nil && *state.MintActive &&
		state.MintPrice != nil &&
		selectable.Sign() > 0

	return domain.EligibilityResult{
		RemainingMints: remaining.Int64(),
		MaxSelectable:  selectable.Int64(),
		Eligible:       eligible,
	}
}

// ValidateQuantity checks a requested mint quantity against the current
// allowance. It reuses Compute so the same fail-closed rules apply.
func ValidateQuantity(state *domain.MintState, account *common.Address, quantity int64) error {
	if account == nil {
		return domain.ErrNoAccount
	}

	result := Compute(state, account)
	if !result.Eligible || quantity < 1 || quantity > result.MaxSelectable {
		return domain.ErrQuantityOutOfRange
	}
	return nil
}
