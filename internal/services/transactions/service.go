// Package transactions orchestrates signing, submission and receipt
// persistence for funds transfers.
package transactions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chaingate-io/chaingate/internal/chain"
	"github.com/chaingate-io/chaingate/internal/domain/transfer"
	"github.com/chaingate-io/chaingate/internal/metrics"
	"github.com/chaingate-io/chaingate/internal/storage"
	"github.com/chaingate-io/chaingate/pkg/logger"
)

// receiptPrefix is where receipt objects live in the durable store.
const receiptPrefix = "transactions/"

// Result is what a successful (or partially successful) submission
// reports back: the on-chain coordinates and the receipt object name.
type Result struct {
	TransactionHash string
	BlockNumber     uint64
	ObjectName      string
}

// PersistenceError reports that the transfer reached the chain but the
// receipt write failed. The ledger-side effect is irreversible, so the
// hash and block number travel with the error instead of being hidden
// behind it.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("receipt persistence failed after successful submission: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Service validates transfer requests, hands them to the ledger gateway
// and persists one receipt per successful transfer.
type Service struct {
	gateway chain.Gateway
	store   storage.ObjectStore
	log     *logger.Logger

	now   func() time.Time
	newID func() string
}

// New creates the transaction service.
func New(gateway chain.Gateway, store storage.ObjectStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("transactions")
	}
	return &Service{
		gateway: gateway,
		store:   store,
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Submit runs the full transfer pipeline. Validation failures return
// before the ledger is touched. Submission is not idempotent: identical
// requests produce distinct on-chain transfers and distinct receipts.
//
// The gateway call runs on a context detached from the request: a client
// disconnect must not cancel an in-flight broadcast, only the delivery of
// the response is abandoned.
func (s *Service) Submit(ctx context.Context, req transfer.Request) (Result, error) {
	if err := req.Validate(); err != nil {
		metrics.RecordTransfer("client_error")
		return Result{}, err
	}
	amountWei, err := req.AmountWei()
	if err != nil {
		metrics.RecordTransfer("client_error")
		return Result{}, err
	}

	ctx = context.WithoutCancel(ctx)

	rcpt, err := s.gateway.Transfer(ctx, chain.TransferParams{
		From:       req.From,
		To:         req.To,
		AmountWei:  amountWei,
		PrivateKey: req.PrivateKey,
	})
	if err != nil {
		metrics.RecordTransfer("submission_error")
		return Result{}, fmt.Errorf("submit transfer: %w", err)
	}

	record := transfer.NewReceipt(rcpt.TransactionHash, rcpt.BlockNumber, req.From, req.To, req.Amount, s.now())
	name := receiptPrefix + s.newID() + ".json"

	payload, err := json.Marshal(record)
	if err != nil {
		metrics.RecordTransfer("persistence_error")
		return Result{TransactionHash: rcpt.TransactionHash, BlockNumber: rcpt.BlockNumber}, &PersistenceError{Err: err}
	}
	if err := s.store.Write(ctx, name, payload); err != nil {
		metrics.RecordTransfer("persistence_error")
		s.log.WithError(err).WithField("tx", rcpt.TransactionHash).Error("receipt write failed; transfer is already on chain")
		return Result{TransactionHash: rcpt.TransactionHash, BlockNumber: rcpt.BlockNumber}, &PersistenceError{Err: err}
	}

	metrics.RecordTransfer("success")
	s.log.WithField("tx", rcpt.TransactionHash).WithField("object", name).Info("transfer persisted")

	return Result{
		TransactionHash: rcpt.TransactionHash,
		BlockNumber:     rcpt.BlockNumber,
		ObjectName:      name,
	}, nil
}

// IsClientError reports whether err stems from bad request input rather
// than a downstream failure.
func IsClientError(err error) bool {
	return errors.Is(err, transfer.ErrMissingFields) || errors.Is(err, transfer.ErrInvalidAmount)
}
