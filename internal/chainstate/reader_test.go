package chainstate

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanagogh/mint-gateway/internal/adapter"
	"github.com/vanagogh/mint-gateway/internal/mocks"
)

func newTestReader(t *testing.T) (*Reader, *mocks.MockContractReader, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	contract := mocks.NewMockContractReader(ctrl)

	pool := pond.NewPool(4)
	reader := NewReader(contract, pool, adapter.NewClock())

	return reader, contract, ctrl
}

func TestFetchMintStateWithAccount(t *testing.T) {
	reader, contract, ctrl := newTestReader(t)
	defer ctrl.Finish()

	account := common.HexToAddress("0x1111111111111111111111111111111111111111")

	contract.EXPECT().MintPrice(gomock.Any()).Return(big.NewInt(1000), nil)
	contract.EXPECT().IsMintActive(gomock.Any()).Return(true, nil)
	contract.EXPECT().MaxMintPerTx(gomock.Any()).Return(big.NewInt(5), nil)
	contract.EXPECT().MaxMintPerWallet(gomock.Any()).Return(big.NewInt(10), nil)
	contract.EXPECT().WalletMintCount(gomock.Any(), account).Return(big.NewInt(2), nil)

	state, err := reader.FetchMintState(context.Background(), &account)
	require.NoError(t, err)

	assert.Equal(t, big.NewInt(1000), state.MintPrice)
	require.NotNil(t, state.MintActive)
	assert.True(t, *state.MintActive)
	assert.Equal(t, big.NewInt(5), state.MaxMintPerTx)
	assert.Equal(t, big.NewInt(10), state.MaxMintPerWallet)
	assert.Equal(t, big.NewInt(2), state.WalletMintCount)
	require.NotNil(t, state.Account)
	assert.Equal(t, account, *state.Account)
	assert.False(t, state.TakenAt.IsZero())
}

func TestFetchMintStateWithoutAccount(t *testing.T) {
	reader, contract, ctrl := newTestReader(t)
	defer ctrl.Finish()

	contract.EXPECT().MintPrice(gomock.Any()).Return(big.NewInt(1000), nil)
	contract.EXPECT().IsMintActive(gomock.Any()).Return(false, nil)
	contract.EXPECT().MaxMintPerTx(gomock.Any()).Return(big.NewInt(5), nil)
	contract.EXPECT().MaxMintPerWallet(gomock.Any()).Return(big.NewInt(10), nil)

	state, err := reader.FetchMintState(context.Background(), nil)
	require.NoError(t, err)

	assert.Nil(t, state.Account)
	assert.Nil(t, state.WalletMintCount)
}

func TestFetchMintStateFailsAsAWhole(t *testing.T) {
	reader, contract, ctrl := newTestReader(t)
	defer ctrl.Finish()

	readErr := errors.New("rpc unavailable")
	contract.EXPECT().MintPrice(gomock.Any()).Return(nil, readErr)
	contract.EXPECT().IsMintActive(gomock.Any()).Return(true, nil).AnyTimes()
	contract.EXPECT().MaxMintPerTx(gomock.Any()).Return(big.NewInt(5), nil).AnyTimes()
	contract.EXPECT().MaxMintPerWallet(gomock.Any()).Return(big.NewInt(10), nil).AnyTimes()

	state, err := reader.FetchMintState(context.Background(), nil)
	assert.Error(t, err)
	assert.Nil(t, state)
}

func TestFetchCollectionInfo(t *testing.T) {
	reader, contract, ctrl := newTestReader(t)
	defer ctrl.Finish()

	contract.EXPECT().Name(gomock.Any()).Return("Test Collection", nil)
	contract.EXPECT().Description(gomock.Any()).Return("A test drop", nil)
	contract.EXPECT().Owner(gomock.Any()).Return("0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB", nil)
	contract.EXPECT().TotalSupply(gomock.Any()).Return(big.NewInt(42), nil)
	contract.EXPECT().MaxSupply(gomock.Any()).Return(big.NewInt(1000), nil)

	info, err := reader.FetchCollectionInfo(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Test Collection", info.Name)
	assert.Equal(t, "A test drop", info.Description)
	assert.Equal(t, big.NewInt(42), info.TotalSupply)
	assert.Equal(t, big.NewInt(1000), info.MaxSupply)
}
