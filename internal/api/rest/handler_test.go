package rest

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanagogh/mint-gateway/internal/adapter"
	"github.com/vanagogh/mint-gateway/internal/api/middleware"
	"github.com/vanagogh/mint-gateway/internal/assets"
	"github.com/vanagogh/mint-gateway/internal/chainstate"
	"github.com/vanagogh/mint-gateway/internal/domain"
	"github.com/vanagogh/mint-gateway/internal/minting"
	"github.com/vanagogh/mint-gateway/internal/mocks"
	"github.com/vanagogh/mint-gateway/internal/providers/explorer"
)

const testAPIKey = "test-api-key"

var testAccount = common.HexToAddress("0x1111111111111111111111111111111111111111")

type routerMocks struct {
	ctrl      *gomock.Controller
	wallet    *mocks.MockWallet
	explorer  *mocks.MockExplorerClient
	journal   *mocks.MockStore
	publisher *mocks.MockPublisher
	holder    *chainstate.Holder
}

func newTestRouter(t *testing.T) (*gin.Engine, *routerMocks) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	m := &routerMocks{
		ctrl:      ctrl,
		wallet:    mocks.NewMockWallet(ctrl),
		explorer:  mocks.NewMockExplorerClient(ctrl),
		journal:   mocks.NewMockStore(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		holder:    chainstate.NewHolder(),
	}

	m.wallet.EXPECT().Address().Return(testAccount).AnyTimes()

	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	// Reconcile goroutines park here; the handler tests never fire it
	clock.EXPECT().After(gomock.Any()).Return(make(chan time.Time)).AnyTimes()

	contract := mocks.NewMockContractReader(ctrl)
	reader := chainstate.NewReader(contract, pond.NewPool(2), adapter.NewClock())
	poller := chainstate.NewPoller(reader, m.holder, adapter.NewClock(), m.publisher,
		domain.ChainVanaMoksha, time.Second, time.Minute)
	submitter := minting.NewSubmitter(m.holder, poller, m.wallet, clock, m.publisher,
		m.journal, domain.ChainVanaMoksha, time.Second)
	browser := assets.NewBrowser(m.explorer, m.wallet, clock, m.publisher, domain.ChainVanaMoksha)

	handler := NewHandler(m.holder, submitter, browser, m.wallet, m.journal, domain.ChainVanaMoksha)

	router := gin.New()
	SetupRoutes(router, handler, middleware.AuthConfig{APIKeys: []string{testAPIKey}})

	return router, m
}

func boolPtr(b bool) *bool { return &b }

func seedEligibleState(holder *chainstate.Holder) {
	account := testAccount
	holder.SetAccount(&account)
	_, generation := holder.Account()
	holder.ApplyMintState(generation, &domain.MintState{
		MintPrice:        big.NewInt(1000),
		MintActive:       boolPtr(true),
		MaxMintPerTx:     big.NewInt(5),
		MaxMintPerWallet: big.NewInt(10),
		WalletMintCount:  big.NewInt(0),
		Account:          &account,
		TakenAt:          time.Now(),
	})
}

func perform(router *gin.Engine, method, path, body string, authed bool) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "ApiKey "+testAPIKey)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeErrorCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body.Error.Code
}

func TestHealthCheck(t *testing.T) {
	router, m := newTestRouter(t)
	defer m.ctrl.Finish()

	recorder := perform(router, http.MethodGet, "/health", "", false)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "vana-moksha")
}

func TestGetEligibility(t *testing.T) {
	router, m := newTestRouter(t)
	defer m.ctrl.Finish()

	seedEligibleState(m.holder)

	recorder := perform(router, http.MethodGet, "/api/v1/eligibility", "", false)
	require.Equal(t, http.StatusOK, recorder.Code)

	var result domain.EligibilityResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.True(t, result.Eligible)
	assert.Equal(t, int64(5), result.MaxSelectable)
	assert.Equal(t, int64(10), result.RemainingMints)
}

func TestGetEligibilityFailsClosedWithoutState(t *testing.T) {
	router, m := newTestRouter(t)
	defer m.ctrl.Finish()

	recorder := perform(router, http.MethodGet, "/api/v1/eligibility", "", false)
	require.Equal(t, http.StatusOK, recorder.Code)

	var result domain.EligibilityResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.False(t, result.Eligible)
	assert.Zero(t, result.MaxSelectable)
}

func TestPostMintRequiresAuth(t *testing.T) {
	router, m := newTestRouter(t)
	defer m.ctrl.Finish()

	recorder := perform(router, http.MethodPost, "/api/v1/mint", `{"quantity":1}`, false)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "unauthorized", decodeErrorCode(t, recorder))
}

func TestPostMintSubmits(t *testing.T) {
	router, m := newTestRouter(t)
	defer m.ctrl.Finish()

	seedEligibleState(m.holder)

	txHash := common.HexToHash("0xdead")
	m.wallet.EXPECT().
		SubmitMint(gomock.Any(), big.NewInt(2), big.NewInt(2000)).
		Return(txHash, nil)
	m.journal.EXPECT().SaveMintRecord(gomock.Any(), gomock.Any()).Return(nil)
	m.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)

	recorder := perform(router, http.MethodPost, "/api/v1/mint", `{"quantity":2}`, true)

	assert.Equal(t, http.StatusAccepted, recorder.Code)
	assert.Contains(t, recorder.Body.String(), txHash.Hex())
}

func TestPostMintRejectsQuantityBeyondAllowance(t *testing.T) {
	router, m := newTestRouter(t)
	defer m.ctrl.Finish()

	seedEligibleState(m.holder)

	recorder := perform(router, http.MethodPost, "/api/v1/mint", `{"quantity":6}`, true)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "validation_failed", decodeErrorCode(t, recorder))
}

func TestListAssets(t *testing.T) {
	router, m := newTestRouter(t)
	defer m.ctrl.Finish()

	m.explorer.EXPECT().
		GetNFTCollections(gomock.Any(), testAccount.Hex()).
		Return([]explorer.NFTCollection{}, nil)

	recorder := perform(router, http.MethodGet, "/api/v1/assets", "", false)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetAssetRejectsMalformedContract(t *testing.T) {
	router, m := newTestRouter(t)
	defer m.ctrl.Finish()

	recorder := perform(router, http.MethodGet, "/api/v1/assets/not-an-address/1", "", false)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "bad_request", decodeErrorCode(t, recorder))
}

func TestPostTransferValidatesRecipient(t *testing.T) {
	router, m := newTestRouter(t)
	defer m.ctrl.Finish()

	body := `{"contract":"0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA","to":"nope","token_id":"1"}`
	recorder := perform(router, http.MethodPost, "/api/v1/assets/transfer", body, true)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "bad_request", decodeErrorCode(t, recorder))
}

func TestPostTransferSubmits(t *testing.T) {
	router, m := newTestRouter(t)
	defer m.ctrl.Finish()

	txHash := common.HexToHash("0xbeef")
	m.wallet.EXPECT().
		SubmitTransfer(gomock.Any(),
			common.HexToAddress("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"),
			common.HexToAddress("0x2222222222222222222222222222222222222222"),
			big.NewInt(7)).
		Return(txHash, nil)
	m.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)

	body := `{"contract":"0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA","to":"0x2222222222222222222222222222222222222222","token_id":"7"}`
	recorder := perform(router, http.MethodPost, "/api/v1/assets/transfer", body, true)

	assert.Equal(t, http.StatusAccepted, recorder.Code)
	assert.Contains(t, recorder.Body.String(), txHash.Hex())
}
