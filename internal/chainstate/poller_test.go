package chainstate

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/alitto/pond/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanagogh/mint-gateway/internal/adapter"
	"github.com/vanagogh/mint-gateway/internal/domain"
	"github.com/vanagogh/mint-gateway/internal/mocks"
)

func newTestPoller(t *testing.T) (*Poller, *Holder, *mocks.MockContractReader, *mocks.MockPublisher, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	contract := mocks.NewMockContractReader(ctrl)
	publisher := mocks.NewMockPublisher(ctrl)

	reader := NewReader(contract, pond.NewPool(4), adapter.NewClock())
	holder := NewHolder()
	poller := NewPoller(reader, holder, adapter.NewClock(), publisher, domain.ChainVanaMoksha, 0, 0)

	return poller, holder, contract, publisher, ctrl
}

func expectMintStateReads(contract *mocks.MockContractReader, price int64) {
	contract.EXPECT().MintPrice(gomock.Any()).Return(big.NewInt(price), nil)
	contract.EXPECT().IsMintActive(gomock.Any()).Return(true, nil)
	contract.EXPECT().MaxMintPerTx(gomock.Any()).Return(big.NewInt(5), nil)
	contract.EXPECT().MaxMintPerWallet(gomock.Any()).Return(big.NewInt(10), nil)
}

func TestRefreshMintStateAppliesAndPublishes(t *testing.T) {
	poller, holder, contract, publisher, ctrl := newTestPoller(t)
	defer ctrl.Finish()

	expectMintStateReads(contract, 1000)
	publisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.GatewayEvent) error {
			assert.Equal(t, domain.EventTypeSnapshotUpdate, event.Type)
			assert.Equal(t, domain.ChainVanaMoksha, event.Chain)
			return nil
		})

	poller.RefreshMintState(context.Background())

	require.NotNil(t, holder.MintState())
	assert.Equal(t, big.NewInt(1000), holder.MintState().MintPrice)
}

func TestRefreshMintStateKeepsPreviousOnFailure(t *testing.T) {
	poller, holder, contract, publisher, ctrl := newTestPoller(t)
	defer ctrl.Finish()

	expectMintStateReads(contract, 1000)
	publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)
	poller.RefreshMintState(context.Background())

	previous := holder.MintState()
	require.NotNil(t, previous)

	// Next refresh fails; the held state must survive untouched
	contract.EXPECT().MintPrice(gomock.Any()).Return(nil, errors.New("rpc unavailable"))
	contract.EXPECT().IsMintActive(gomock.Any()).Return(true, nil).AnyTimes()
	contract.EXPECT().MaxMintPerTx(gomock.Any()).Return(big.NewInt(5), nil).AnyTimes()
	contract.EXPECT().MaxMintPerWallet(gomock.Any()).Return(big.NewInt(10), nil).AnyTimes()

	poller.RefreshMintState(context.Background())

	assert.Equal(t, previous, holder.MintState())
}

func TestRefreshCollectionInfoKeepsPreviousOnFailure(t *testing.T) {
	poller, holder, contract, publisher, ctrl := newTestPoller(t)
	defer ctrl.Finish()

	contract.EXPECT().Name(gomock.Any()).Return("Test", nil)
	contract.EXPECT().Description(gomock.Any()).Return("", nil)
	contract.EXPECT().Owner(gomock.Any()).Return("0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB", nil)
	contract.EXPECT().TotalSupply(gomock.Any()).Return(big.NewInt(1), nil)
	contract.EXPECT().MaxSupply(gomock.Any()).Return(big.NewInt(100), nil)
	publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)

	poller.RefreshCollectionInfo(context.Background())
	previous := holder.CollectionInfo()
	require.NotNil(t, previous)

	contract.EXPECT().Name(gomock.Any()).Return("", errors.New("rpc unavailable"))
	contract.EXPECT().Description(gomock.Any()).Return("", nil).AnyTimes()
	contract.EXPECT().Owner(gomock.Any()).Return("", nil).AnyTimes()
	contract.EXPECT().TotalSupply(gomock.Any()).Return(big.NewInt(1), nil).AnyTimes()
	contract.EXPECT().MaxSupply(gomock.Any()).Return(big.NewInt(100), nil).AnyTimes()

	poller.RefreshCollectionInfo(context.Background())

	assert.Equal(t, previous, holder.CollectionInfo())
}
