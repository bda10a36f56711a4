package rest

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vanagogh/mint-gateway/internal/assets"
	"github.com/vanagogh/mint-gateway/internal/chainstate"
	"github.com/vanagogh/mint-gateway/internal/domain"
	"github.com/vanagogh/mint-gateway/internal/eligibility"
	"github.com/vanagogh/mint-gateway/internal/minting"
	"github.com/vanagogh/mint-gateway/internal/store"
	"github.com/vanagogh/mint-gateway/internal/wallet"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// HealthCheck returns the health status of the gateway
	// GET /health
	HealthCheck(c *gin.Context)

	// GetStatus returns the current contract view and submission status
	// GET /api/v1/status
	GetStatus(c *gin.Context)

	// GetEligibility returns the wallet's current mint allowance
	// GET /api/v1/eligibility
	GetEligibility(c *gin.Context)

	// PostMint validates and submits a mint transaction
	// POST /api/v1/mint
	PostMint(c *gin.Context)

	// ListMints returns the wallet's journaled submission attempts
	// GET /api/v1/mints
	ListMints(c *gin.Context)

	// ListAssets returns the wallet's NFT holdings grouped by contract
	// GET /api/v1/assets
	ListAssets(c *gin.Context)

	// GetAsset returns a single owned token instance
	// GET /api/v1/assets/:contract/:token_id
	GetAsset(c *gin.Context)

	// PostTransfer submits a transfer of an owned token
	// POST /api/v1/assets/transfer
	PostTransfer(c *gin.Context)
}

// mintRequest is the body of POST /api/v1/mint
type mintRequest struct {
	Quantity int64 `json:"quantity" binding:"required"`
}

// transferRequest is the body of POST /api/v1/assets/transfer
type transferRequest struct {
	Contract string `json:"contract" binding:"required"`
	To       string `json:"to" binding:"required"`
	TokenID  string `json:"token_id" binding:"required"`
}

// statusResponse is the body of GET /api/v1/status
type statusResponse struct {
	Chain      string                  `json:"chain"`
	Account    string                  `json:"account"`
	Snapshot   domain.ContractSnapshot `json:"snapshot"`
	Submission minting.Status          `json:"submission"`
}

// handler implements the Handler interface
type handler struct {
	holder    *chainstate.Holder
	submitter *minting.Submitter
	browser   *assets.Browser
	wallet    wallet.Wallet
	journal   store.Store
	chain     domain.Chain
}

// NewHandler creates a new REST API handler
func NewHandler(
	holder *chainstate.Holder,
	submitter *minting.Submitter,
	browser *assets.Browser,
	w wallet.Wallet,
	journal store.Store,
	chain domain.Chain,
) Handler {
	return &handler{
		holder:    holder,
		submitter: submitter,
		browser:   browser,
		wallet:    w,
		journal:   journal,
		chain:     chain,
	}
}

// HealthCheck returns the health status of the gateway
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"chain":  h.chain.Name(),
	})
}

// GetStatus returns the current contract view and submission status
func (h *handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{
		Chain:      h.chain.Name(),
		Account:    h.wallet.Address().Hex(),
		Snapshot:   h.holder.Snapshot(),
		Submission: h.submitter.Status(),
	})
}

// GetEligibility returns the wallet's current mint allowance
func (h *handler) GetEligibility(c *gin.Context) {
	account := h.wallet.Address()
	result := eligibility.Compute(h.holder.MintState(), &account)
	c.JSON(http.StatusOK, result)
}

// PostMint validates and submits a mint transaction
func (h *handler) PostMint(c *gin.Context) {
	var req mintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	request, err := h.submitter.Mint(c.Request.Context(), req.Quantity)
	if err != nil {
		h.respondMintError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"request":    request,
		"submission": h.submitter.Status(),
	})
}

func (h *handler) respondMintError(c *gin.Context, err error) {
	var subErr *domain.SubmissionError

	switch {
	case errors.Is(err, minting.ErrInFlight):
		respondConflict(c, errCodeConflict, "Another mint is in flight")
	case errors.Is(err, domain.ErrNoAccount),
		errors.Is(err, domain.ErrPriceUnknown),
		errors.Is(err, domain.ErrQuantityOutOfRange):
		respondValidationError(c, err.Error())
	case errors.As(err, &subErr) && subErr.Kind == domain.SubmissionUserRejected:
		respondConflict(c, errCodeUserRejected, "Signature request was declined")
	default:
		respondUpstreamError(c, err, "Mint submission failed")
	}
}

// ListMints returns the wallet's journaled submission attempts
func (h *handler) ListMints(c *gin.Context) {
	records, err := h.journal.ListMintRecords(c.Request.Context(), h.wallet.Address().Hex(), 50)
	if err != nil {
		respondInternalError(c, err, "Failed to list mint records")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": records})
}

// ListAssets returns the wallet's NFT holdings grouped by contract
func (h *handler) ListAssets(c *gin.Context) {
	collections, err := h.browser.ListCollections(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err, "Failed to fetch holdings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": collections})
}

// GetAsset returns a single owned token instance
func (h *handler) GetAsset(c *gin.Context) {
	contract := c.Param("contract")
	tokenID := c.Param("token_id")

	if !common.IsHexAddress(contract) {
		respondBadRequest(c, "Invalid contract address")
		return
	}

	token, err := h.browser.GetToken(c.Request.Context(), contract, tokenID)
	if err != nil {
		var httpErr *domain.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			respondNotFound(c, "Token not found")
			return
		}
		respondUpstreamError(c, err, "Failed to fetch token",
			zap.String("contract", contract),
			zap.String("token_id", tokenID))
		return
	}

	c.JSON(http.StatusOK, token)
}

// PostTransfer submits a transfer of an owned token
func (h *handler) PostTransfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if !common.IsHexAddress(req.Contract) {
		respondBadRequest(c, "Invalid contract address")
		return
	}
	if !common.IsHexAddress(req.To) {
		respondBadRequest(c, "Invalid recipient address")
		return
	}
	tokenID, ok := new(big.Int).SetString(req.TokenID, 10)
	if !ok || tokenID.Sign() < 0 {
		respondBadRequest(c, "Invalid token ID")
		return
	}

	txHash, err := h.browser.Transfer(c.Request.Context(),
		common.HexToAddress(req.Contract),
		common.HexToAddress(req.To),
		tokenID)
	if err != nil {
		var subErr *domain.SubmissionError
		if errors.As(err, &subErr) && subErr.Kind == domain.SubmissionUserRejected {
			respondConflict(c, errCodeUserRejected, "Signature request was declined")
			return
		}
		respondUpstreamError(c, err, "Transfer submission failed")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"tx_hash": txHash.Hex()})
}
