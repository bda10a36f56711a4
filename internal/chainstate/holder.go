package chainstate

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/vanagogh/mint-gateway/internal/domain"
)

// Holder is the single owner of the current contract view. Each part of the
// view is swapped wholesale on a successful refresh and never patched in
// place, so readers always observe field groups from one read pass.
//
// The generation counter guards against stale applies: changing the tracked
// account bumps the generation, and a mint state fetched under an older
// generation is discarded instead of applied.
type Holder struct {
	mu         sync.RWMutex
	mint       *domain.MintState
	info       *domain.CollectionInfo
	account    *common.Address
	generation uint64
}

// NewHolder creates an empty holder with no tracked account
func NewHolder() *Holder {
	return &Holder{}
}

// Account returns the currently tracked account and the generation the caller
// must present when applying a mint state fetched for it
func (h *Holder) Account() (*common.Address, uint64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.account, h.generation
}

// SetAccount changes the tracked account. The held mint state is dropped so
// allowances for the previous account can never leak to the new one, and any
// refresh still in flight is invalidated.
func (h *Holder) SetAccount(account *common.Address) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.account = account
	h.generation++
	h.mint = nil
}

// ApplyMintState installs a freshly fetched mint state. It reports false and
// leaves the holder untouched when generation no longer matches.
func (h *Holder) ApplyMintState(generation uint64, state *domain.MintState) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if generation != h.generation {
		return false
	}
	h.mint = state
	return true
}

// ApplyCollectionInfo installs freshly fetched collection info. Info is not
// account-scoped, so no generation check applies.
func (h *Holder) ApplyCollectionInfo(info *domain.CollectionInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.info = info
}

// MintState returns the current mint state, nil before the first successful
// refresh
func (h *Holder) MintState() *domain.MintState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.mint
}

// CollectionInfo returns the current collection info, nil before the first
// successful refresh
func (h *Holder) CollectionInfo() *domain.CollectionInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.info
}

// Snapshot returns both parts of the current view
func (h *Holder) Snapshot() domain.ContractSnapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return domain.ContractSnapshot{Mint: h.mint, Info: h.info}
}
