// Package minting turns a validated mint request into a submitted
// transaction. At most one submission is in flight at a time; everything the
// submission needs is validated against the held chain view before the signer
// is contacted.
package minting

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vanagogh/mint-gateway/internal/adapter"
	"github.com/vanagogh/mint-gateway/internal/chainstate"
	"github.com/vanagogh/mint-gateway/internal/domain"
	"github.com/vanagogh/mint-gateway/internal/eligibility"
	"github.com/vanagogh/mint-gateway/internal/logger"
	"github.com/vanagogh/mint-gateway/internal/messaging"
	"github.com/vanagogh/mint-gateway/internal/store"
	"github.com/vanagogh/mint-gateway/internal/store/schema"
	"github.com/vanagogh/mint-gateway/internal/wallet"
)

// ErrInFlight is returned when a mint is attempted while another submission
// has not yet reached a terminal phase
var ErrInFlight = errors.New("another mint submission is in flight")

// Phase is the submitter's position in the submission lifecycle
type Phase string

const (
	PhaseIdle              Phase = "idle"
	PhaseValidating        Phase = "validating"
	PhaseAwaitingSignature Phase = "awaiting_signature"
	PhaseSubmitted         Phase = "submitted"
	PhaseConfirmed         Phase = "confirmed"
	PhaseRejected          Phase = "rejected"
	PhaseFailed            Phase = "failed"
)

// inFlight reports whether the phase still holds the submission slot
func (p Phase) inFlight() bool {
	return p == PhaseValidating || p == PhaseAwaitingSignature
}

// Status describes the most recent submission attempt
type Status struct {
	Phase     Phase  `json:"phase"`
	RequestID string `json:"request_id,omitempty"`
	TxHash    string `json:"tx_hash,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Submitter owns the submission lifecycle for one wallet
type Submitter struct {
	holder         *chainstate.Holder
	poller         *chainstate.Poller
	wallet         wallet.Wallet
	clock          adapter.Clock
	publisher      messaging.Publisher
	journal        store.Store
	chain          domain.Chain
	reconcileDelay time.Duration

	mu     sync.Mutex
	status Status
}

// NewSubmitter creates a submitter in the idle phase
func NewSubmitter(
	holder *chainstate.Holder,
	poller *chainstate.Poller,
	w wallet.Wallet,
	clock adapter.Clock,
	publisher messaging.Publisher,
	journal store.Store,
	chain domain.Chain,
	reconcileDelay time.Duration,
) *Submitter {
	return &Submitter{
		holder:         holder,
		poller:         poller,
		wallet:         w,
		clock:          clock,
		publisher:      publisher,
		journal:        journal,
		chain:          chain,
		reconcileDelay: reconcileDelay,
		status:         Status{Phase: PhaseIdle},
	}
}

// Status returns the current submission status
func (s *Submitter) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Mint validates quantity against the held chain view and submits the mint
// transaction. Validation never contacts the signer; a request that cannot
// satisfy the current allowance or has no known price fails before any
// signature is requested. The total price is quantity times the unit price
// in exact integer arithmetic.
func (s *Submitter) Mint(ctx context.Context, quantity int64) (*domain.MintRequest, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}

	account := s.wallet.Address()
	state := s.holder.MintState()

	// Validation failures are recoverable user-facing rejections, kept
	// distinct from submission faults
	if state != nil && state.MintPrice == nil {
		s.finish(Status{Phase: PhaseRejected, Error: domain.ErrPriceUnknown.Error()})
		return nil, domain.ErrPriceUnknown
	}
	if err := eligibility.ValidateQuantity(state, &account, quantity); err != nil {
		s.finish(Status{Phase: PhaseRejected, Error: err.Error()})
		return nil, err
	}

	request := &domain.MintRequest{
		ID:         uuid.NewString(),
		Account:    account,
		Quantity:   quantity,
		TotalPrice: new(big.Int).Mul(state.MintPrice, big.NewInt(quantity)),
	}

	s.transition(Status{Phase: PhaseAwaitingSignature, RequestID: request.ID})

	txHash, err := s.wallet.SubmitMint(ctx, big.NewInt(quantity), request.TotalPrice)
	if err != nil {
		subErr := domain.ClassifySubmissionError(err)

		phase := PhaseFailed
		outcome := domain.OutcomeFailed
		eventType := domain.EventTypeMintFailed
		if subErr.Kind == domain.SubmissionUserRejected {
			phase = PhaseRejected
			outcome = domain.OutcomeRejected
			eventType = domain.EventTypeMintRejected
		}

		s.finish(Status{Phase: phase, RequestID: request.ID, Error: subErr.Error()})
		s.record(ctx, request, "", outcome, subErr.Error())
		s.publish(ctx, eventType, request, "")
		return nil, subErr
	}

	s.finish(Status{Phase: PhaseSubmitted, RequestID: request.ID, TxHash: txHash.Hex()})
	s.record(ctx, request, txHash.Hex(), domain.OutcomeSubmitted, "")
	s.publish(ctx, domain.EventTypeMintSubmitted, request, txHash.Hex())

	logger.Info("Mint transaction submitted",
		zap.String("request_id", request.ID),
		zap.String("tx_hash", txHash.Hex()),
		zap.Int64("quantity", quantity))

	go s.reconcile(request.ID)

	return request, nil
}

// begin claims the submission slot
func (s *Submitter) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Phase.inFlight() {
		return ErrInFlight
	}
	s.status = Status{Phase: PhaseValidating}
	return nil
}

// transition moves between non-terminal phases
func (s *Submitter) transition(status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// finish moves to a terminal phase, releasing the submission slot
func (s *Submitter) finish(status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// reconcile re-reads the mint-flow-critical fields shortly after submission
// so the wallet mint count catches up with the transaction. The fixed delay
// gives the node a chance to include it; the regular cadence corrects the
// count eventually either way. Once the re-read lands, the submission is
// marked confirmed. That is an approximation: the refreshed counts may still
// predate inclusion, and a later poll corrects them.
func (s *Submitter) reconcile(requestID string) {
	<-s.clock.After(s.reconcileDelay)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.poller.RefreshMintState(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Phase == PhaseSubmitted && s.status.RequestID == requestID {
		s.status.Phase = PhaseConfirmed
	}
}

func (s *Submitter) record(ctx context.Context, request *domain.MintRequest, txHash string, outcome domain.MintOutcome, errMsg string) {
	record := &schema.MintRecord{
		ID:         request.ID,
		Chain:      s.chain,
		Account:    request.Account.Hex(),
		Quantity:   request.Quantity,
		TotalPrice: request.TotalPrice.String(),
		TxHash:     txHash,
		Outcome:    outcome,
		Error:      errMsg,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.journal.SaveMintRecord(ctx, record); err != nil {
		logger.Warn("Failed to journal mint record", zap.Error(err), zap.String("request_id", request.ID))
	}
}

func (s *Submitter) publish(ctx context.Context, eventType domain.GatewayEventType, request *domain.MintRequest, txHash string) {
	event := &domain.GatewayEvent{
		Type:      eventType,
		Chain:     s.chain,
		Account:   request.Account.Hex(),
		TxHash:    txHash,
		Quantity:  request.Quantity,
		Timestamp: s.clock.Now(),
	}
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish mint event", zap.Error(err), zap.String("request_id", request.ID))
	}
}
