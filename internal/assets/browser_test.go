package assets

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanagogh/mint-gateway/internal/domain"
	"github.com/vanagogh/mint-gateway/internal/mocks"
	"github.com/vanagogh/mint-gateway/internal/providers/explorer"
)

var testAccount = common.HexToAddress("0x1111111111111111111111111111111111111111")

func strPtr(s string) *string { return &s }

type browserMocks struct {
	ctrl      *gomock.Controller
	explorer  *mocks.MockExplorerClient
	wallet    *mocks.MockWallet
	clock     *mocks.MockClock
	publisher *mocks.MockPublisher
}

func newTestBrowser(t *testing.T) (*Browser, *browserMocks) {
	ctrl := gomock.NewController(t)

	m := &browserMocks{
		ctrl:      ctrl,
		explorer:  mocks.NewMockExplorerClient(ctrl),
		wallet:    mocks.NewMockWallet(ctrl),
		clock:     mocks.NewMockClock(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
	}

	m.wallet.EXPECT().Address().Return(testAccount).AnyTimes()
	m.clock.EXPECT().Now().Return(time.Now()).AnyTimes()

	browser := NewBrowser(m.explorer, m.wallet, m.clock, m.publisher, domain.ChainVanaMoksha)
	return browser, m
}

func TestListCollectionsMapsDisplayFields(t *testing.T) {
	browser, m := newTestBrowser(t)
	defer m.ctrl.Finish()

	m.explorer.EXPECT().
		GetNFTCollections(gomock.Any(), testAccount.Hex()).
		Return([]explorer.NFTCollection{
			{
				Token: explorer.TokenInfo{
					Address: "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
					Name:    strPtr("Test Collection"),
					Symbol:  strPtr("TST"),
					Type:    "ERC-721",
				},
				Amount: "2",
				TokenInstances: []explorer.TokenInstance{
					{
						ID: "1",
						Metadata: &explorer.InstanceMetadata{
							Name:  strPtr("Token #1"),
							Image: strPtr("ipfs://QmHash/1.png"),
						},
					},
					{
						ID:       "2",
						ImageURL: strPtr("https://cdn.example.com/2.png"),
					},
				},
			},
		}, nil)

	collections, err := browser.ListCollections(context.Background())
	require.NoError(t, err)
	require.Len(t, collections, 1)

	collection := collections[0]
	assert.Equal(t, "Test Collection", collection.Name)
	assert.Equal(t, "TST", collection.Symbol)
	assert.Equal(t, "https://moksha.vanascan.io/address/0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", collection.ExplorerURL)
	require.Len(t, collection.Tokens, 2)

	assert.Equal(t, "Token #1", collection.Tokens[0].Name)
	assert.Equal(t, "https://ipfs.io/ipfs/QmHash/1.png", collection.Tokens[0].ImageURL)
	assert.Equal(t,
		"https://moksha.vanascan.io/token/0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA/instance/1",
		collection.Tokens[0].ExplorerURL)

	// Falls back to the indexer's image when metadata has none
	assert.Equal(t, "https://cdn.example.com/2.png", collection.Tokens[1].ImageURL)
}

func TestListCollectionsSurfacesIndexerError(t *testing.T) {
	browser, m := newTestBrowser(t)
	defer m.ctrl.Finish()

	m.explorer.EXPECT().
		GetNFTCollections(gomock.Any(), testAccount.Hex()).
		Return(nil, errors.New("indexer down"))

	_, err := browser.ListCollections(context.Background())
	assert.Error(t, err)
}

func TestTransferPublishesEvent(t *testing.T) {
	browser, m := newTestBrowser(t)
	defer m.ctrl.Finish()

	contract := common.HexToAddress("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	to := common.HexToAddress("0x2222222222222222222222222222222222222222")
	txHash := common.HexToHash("0xbeef")

	m.wallet.EXPECT().
		SubmitTransfer(gomock.Any(), contract, to, big.NewInt(7)).
		Return(txHash, nil)
	m.publisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.GatewayEvent) error {
			assert.Equal(t, domain.EventTypeTransfer, event.Type)
			assert.Equal(t, txHash.Hex(), event.TxHash)
			return nil
		})

	got, err := browser.Transfer(context.Background(), contract, to, big.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, txHash, got)
}

func TestTransferClassifiesRejection(t *testing.T) {
	browser, m := newTestBrowser(t)
	defer m.ctrl.Finish()

	m.wallet.EXPECT().
		SubmitTransfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(common.Hash{}, errors.New("signature request denied"))

	_, err := browser.Transfer(context.Background(),
		common.HexToAddress("0xA"), common.HexToAddress("0xB"), big.NewInt(1))
	require.Error(t, err)

	var subErr *domain.SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, domain.SubmissionUserRejected, subErr.Kind)
}
