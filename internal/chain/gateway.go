// Package chain provides Ethereum ledger interaction for chaingate.
package chain

import (
	"context"
	"errors"
	"math/big"
)

// ErrSubmission indicates the ledger rejected the transfer or the bounded
// wait for its receipt ran out. A timeout leaves the actual on-chain state
// unknown to the caller.
var ErrSubmission = errors.New("submission failed")

// Receipt is the normalized confirmation returned once a transfer is
// included in a block.
type Receipt struct {
	TransactionHash string
	BlockNumber     uint64
}

// TransferParams describes one value transfer to sign and broadcast. The
// private key is held only for the duration of the call and is never
// logged or persisted.
type TransferParams struct {
	From       string
	To         string
	AmountWei  *big.Int
	PrivateKey string
}

// Gateway signs and submits transfers, blocking until a receipt is
// available or the submission fails. Implementations must not retry
// internally: a silently retried broadcast risks duplicating a transfer
// that already reached the network.
type Gateway interface {
	Transfer(ctx context.Context, p TransferParams) (Receipt, error)
}
