package chainstate

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vanagogh/mint-gateway/internal/adapter"
	"github.com/vanagogh/mint-gateway/internal/domain"
	"github.com/vanagogh/mint-gateway/internal/logger"
	"github.com/vanagogh/mint-gateway/internal/messaging"
)

// Poller drives the two refresh cadences against a holder. Refresh failures
// are logged and swallowed; the holder keeps serving the last good view.
type Poller struct {
	reader    *Reader
	holder    *Holder
	clock     adapter.Clock
	publisher messaging.Publisher
	chain     domain.Chain

	fastInterval time.Duration
	slowInterval time.Duration
}

// NewPoller creates a poller over reader and holder
func NewPoller(
	reader *Reader,
	holder *Holder,
	clock adapter.Clock,
	publisher messaging.Publisher,
	chain domain.Chain,
	fastInterval time.Duration,
	slowInterval time.Duration,
) *Poller {
	return &Poller{
		reader:       reader,
		holder:       holder,
		clock:        clock,
		publisher:    publisher,
		chain:        chain,
		fastInterval: fastInterval,
		slowInterval: slowInterval,
	}
}

// Run polls until ctx is cancelled. It performs one refresh of each cadence
// immediately so the holder is populated before the first tick.
func (p *Poller) Run(ctx context.Context) error {
	logger.Info("Starting contract state poller",
		zap.Duration("fast_interval", p.fastInterval),
		zap.Duration("slow_interval", p.slowInterval))

	p.RefreshMintState(ctx)
	p.RefreshCollectionInfo(ctx)

	fast := p.clock.NewTicker(p.fastInterval)
	defer fast.Stop()
	slow := p.clock.NewTicker(p.slowInterval)
	defer slow.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Contract state poller stopped")
			return ctx.Err()
		case <-fast.C():
			p.RefreshMintState(ctx)
		case <-slow.C():
			p.RefreshCollectionInfo(ctx)
		}
	}
}

// RefreshMintState performs one fast-cadence refresh. It is also called out
// of cadence to reconcile the wallet mint count after a submission.
func (p *Poller) RefreshMintState(ctx context.Context) {
	account, generation := p.holder.Account()

	state, err := p.reader.FetchMintState(ctx, account)
	if err != nil {
		logger.Warn("Mint state refresh failed, keeping previous state", zap.Error(err))
		return
	}

	if !p.holder.ApplyMintState(generation, state) {
		logger.Debug("Discarded mint state fetched for a superseded account")
		return
	}

	p.publishSnapshotUpdate(ctx)
}

// RefreshCollectionInfo performs one slow-cadence refresh
func (p *Poller) RefreshCollectionInfo(ctx context.Context) {
	info, err := p.reader.FetchCollectionInfo(ctx)
	if err != nil {
		logger.Warn("Collection info refresh failed, keeping previous state", zap.Error(err))
		return
	}

	p.holder.ApplyCollectionInfo(info)
	p.publishSnapshotUpdate(ctx)
}

func (p *Poller) publishSnapshotUpdate(ctx context.Context) {
	event := &domain.GatewayEvent{
		Type:      domain.EventTypeSnapshotUpdate,
		Chain:     p.chain,
		Timestamp: p.clock.Now(),
	}
	if err := p.publisher.PublishEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish snapshot update", zap.Error(err))
	}
}
