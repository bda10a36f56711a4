package explorer_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanagogh/mint-gateway/internal/adapter"
	"github.com/vanagogh/mint-gateway/internal/domain"
	"github.com/vanagogh/mint-gateway/internal/mocks"
	"github.com/vanagogh/mint-gateway/internal/providers/explorer"
)

func newTestClient(t *testing.T) (*explorer.BlockscoutClient, *mocks.MockHTTPClient, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)

	// nil proxy executes requests directly
	client := explorer.NewClient(httpClient, nil, domain.ChainVanaMoksha, adapter.NewJSON())

	return client, httpClient, ctrl
}

func TestGetNFTCollections(t *testing.T) {
	client, httpClient, ctrl := newTestClient(t)
	defer ctrl.Finish()

	body := `{
		"items": [
			{
				"token": {"address": "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", "name": "Test Collection", "symbol": "TST", "type": "ERC-721"},
				"amount": "2",
				"token_instances": [
					{"id": "1", "metadata": {"name": "Token #1", "image": "ipfs://QmHash1"}},
					{"id": "2", "image_url": "https://cdn.example.com/2.png"}
				]
			}
		]
	}`

	httpClient.EXPECT().
		GetBytes(gomock.Any(),
			"https://moksha.vanascan.io/api/v2/addresses/0x1111111111111111111111111111111111111111/nft/collections?type=ERC-721",
			nil).
		Return([]byte(body), nil)

	collections, err := client.GetNFTCollections(context.Background(), "0x1111111111111111111111111111111111111111")
	require.NoError(t, err)
	require.Len(t, collections, 1)

	collection := collections[0]
	assert.Equal(t, "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", collection.Token.Address)
	require.NotNil(t, collection.Token.Name)
	assert.Equal(t, "Test Collection", *collection.Token.Name)
	assert.Equal(t, "2", collection.Amount)
	require.Len(t, collection.TokenInstances, 2)
	require.NotNil(t, collection.TokenInstances[0].Metadata)
	assert.Equal(t, "ipfs://QmHash1", *collection.TokenInstances[0].Metadata.Image)
}

func TestGetTokenInstance(t *testing.T) {
	client, httpClient, ctrl := newTestClient(t)
	defer ctrl.Finish()

	body := `{"id": "7", "metadata": {"name": "Token #7", "description": "Lucky", "attributes": [{"trait_type": "color", "value": "red"}]}}`

	httpClient.EXPECT().
		GetBytes(gomock.Any(),
			"https://moksha.vanascan.io/api/v2/tokens/0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA/instances/7",
			nil).
		Return([]byte(body), nil)

	instance, err := client.GetTokenInstance(context.Background(), "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", "7")
	require.NoError(t, err)

	assert.Equal(t, "7", instance.ID)
	require.NotNil(t, instance.Metadata)
	assert.Equal(t, "Token #7", *instance.Metadata.Name)
	require.Len(t, instance.Metadata.Attributes, 1)
	assert.Equal(t, "color", instance.Metadata.Attributes[0].TraitType)
}

func TestGetTokenInstancePropagatesHTTPError(t *testing.T) {
	client, httpClient, ctrl := newTestClient(t)
	defer ctrl.Finish()

	httpClient.EXPECT().
		GetBytes(gomock.Any(), gomock.Any(), nil).
		Return(nil, &domain.HTTPError{StatusCode: 404, URL: "https://moksha.vanascan.io/api/v2/tokens/x/instances/1"})

	_, err := client.GetTokenInstance(context.Background(), "x", "1")
	require.Error(t, err)

	var httpErr *domain.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.StatusCode)
}
