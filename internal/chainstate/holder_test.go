package chainstate

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/vanagogh/mint-gateway/internal/domain"
)

func TestHolderAppliesMatchingGeneration(t *testing.T) {
	holder := NewHolder()
	account := common.HexToAddress("0x1111111111111111111111111111111111111111")
	holder.SetAccount(&account)

	_, generation := holder.Account()
	state := &domain.MintState{MintPrice: big.NewInt(100), Account: &account}

	assert.True(t, holder.ApplyMintState(generation, state))
	assert.Equal(t, state, holder.MintState())
}

func TestHolderDiscardsStaleGeneration(t *testing.T) {
	holder := NewHolder()
	first := common.HexToAddress("0x1111111111111111111111111111111111111111")
	holder.SetAccount(&first)

	_, staleGeneration := holder.Account()

	// Account changes while a refresh for the first account is in flight
	second := common.HexToAddress("0x2222222222222222222222222222222222222222")
	holder.SetAccount(&second)

	stale := &domain.MintState{WalletMintCount: big.NewInt(5), Account: &first}
	assert.False(t, holder.ApplyMintState(staleGeneration, stale))
	assert.Nil(t, holder.MintState())
}

func TestHolderSetAccountDropsMintState(t *testing.T) {
	holder := NewHolder()
	account := common.HexToAddress("0x1111111111111111111111111111111111111111")
	holder.SetAccount(&account)

	_, generation := holder.Account()
	holder.ApplyMintState(generation, &domain.MintState{MintPrice: big.NewInt(100)})
	holder.ApplyCollectionInfo(&domain.CollectionInfo{Name: "Test"})

	other := common.HexToAddress("0x2222222222222222222222222222222222222222")
	holder.SetAccount(&other)

	// Wallet-scoped state is gone, collection info survives
	assert.Nil(t, holder.MintState())
	assert.NotNil(t, holder.CollectionInfo())
	assert.Equal(t, "Test", holder.CollectionInfo().Name)
}

func TestHolderSnapshotCombinesBothParts(t *testing.T) {
	holder := NewHolder()

	snapshot := holder.Snapshot()
	assert.Nil(t, snapshot.Mint)
	assert.Nil(t, snapshot.Info)

	holder.ApplyCollectionInfo(&domain.CollectionInfo{Name: "Test", MaxSupply: big.NewInt(1000)})
	_, generation := holder.Account()
	holder.ApplyMintState(generation, &domain.MintState{MintPrice: big.NewInt(100)})

	snapshot = holder.Snapshot()
	assert.Equal(t, big.NewInt(100), snapshot.Mint.MintPrice)
	assert.Equal(t, "Test", snapshot.Info.Name)
}
