// Package chainstate keeps an in-memory view of the mint contract fresh by
// polling it on two cadences. The mint-flow-critical fields refresh fast, the
// informational fields slow. A failed refresh keeps the previous view intact.
package chainstate

import (
	"context"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum/common"

	"github.com/vanagogh/mint-gateway/internal/adapter"
	"github.com/vanagogh/mint-gateway/internal/domain"
	ethprovider "github.com/vanagogh/mint-gateway/internal/providers/ethereum"
)

// Reader fetches contract field groups as atomic snapshots. The individual
// field reads within a group run in parallel on the worker pool; the group
// fails as a whole if any read fails.
type Reader struct {
	contract ethprovider.ContractReader
	pool     pond.Pool
	clock    adapter.Clock
}

// NewReader creates a reader over the given contract
func NewReader(contract ethprovider.ContractReader, pool pond.Pool, clock adapter.Clock) *Reader {
	return &Reader{
		contract: contract,
		pool:     pool,
		clock:    clock,
	}
}

// FetchMintState reads the mint-flow-critical fields in one pass. When an
// account is given, its wallet mint count is read in the same pass so the
// per-wallet allowance is consistent with the caps it is compared against.
func (r *Reader) FetchMintState(ctx context.Context, account *common.Address) (*domain.MintState, error) {
	state := &domain.MintState{TakenAt: r.clock.Now()}

	group := r.pool.NewGroupContext(ctx)
	group.SubmitErr(func() error {
		price, err := r.contract.MintPrice(ctx)
		if err != nil {
			return err
		}
		state.MintPrice = price
		return nil
	})
	group.SubmitErr(func() error {
		active, err := r.contract.IsMintActive(ctx)
		if err != nil {
			return err
		}
		state.MintActive = &active
		return nil
	})
	group.SubmitErr(func() error {
		perTx, err := r.contract.MaxMintPerTx(ctx)
		if err != nil {
			return err
		}
		state.MaxMintPerTx = perTx
		return nil
	})
	group.SubmitErr(func() error {
		perWallet, err := r.contract.MaxMintPerWallet(ctx)
		if err != nil {
			return err
		}
		state.MaxMintPerWallet = perWallet
		return nil
	})
	if account != nil {
		addr := *account
		group.SubmitErr(func() error {
			count, err := r.contract.WalletMintCount(ctx, addr)
			if err != nil {
				return err
			}
			state.WalletMintCount = count
			return nil
		})
		state.Account = &addr
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return state, nil
}

// FetchCollectionInfo reads the informational fields in one pass
func (r *Reader) FetchCollectionInfo(ctx context.Context) (*domain.CollectionInfo, error) {
	info := &domain.CollectionInfo{TakenAt: r.clock.Now()}

	group := r.pool.NewGroupContext(ctx)
	group.SubmitErr(func() error {
		name, err := r.contract.Name(ctx)
		if err != nil {
			return err
		}
		info.Name = name
		return nil
	})
	group.SubmitErr(func() error {
		description, err := r.contract.Description(ctx)
		if err != nil {
			return err
		}
		info.Description = description
		return nil
	})
	group.SubmitErr(func() error {
		owner, err := r.contract.Owner(ctx)
		if err != nil {
			return err
		}
		info.Owner = owner
		return nil
	})
	group.SubmitErr(func() error {
		total, err := r.contract.TotalSupply(ctx)
		if err != nil {
			return err
		}
		info.TotalSupply = total
		return nil
	})
	group.SubmitErr(func() error {
		max, err := r.contract.MaxSupply(ctx)
		if err != nil {
			return err
		}
		info.MaxSupply = max
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return info, nil
}
