// Package transfer holds the domain model for funds transfers.
package transfer

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/params"
)

// ErrMissingFields indicates a request with one or more empty fields.
var ErrMissingFields = errors.New("missing required fields")

// ErrInvalidAmount indicates an amount that cannot be converted to wei.
var ErrInvalidAmount = errors.New("invalid amount")

// Request is a client-supplied transfer order. Amount is a decimal string
// denominated in ether. PrivateKey is used once, in-process, and must never
// be persisted or logged.
type Request struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Amount     string `json:"amount"`
	PrivateKey string `json:"privateKey"`
}

// Validate checks that every field is present.
func (r Request) Validate() error {
	if r.From == "" || r.To == "" || r.Amount == "" || r.PrivateKey == "" {
		return ErrMissingFields
	}
	return nil
}

// AmountWei converts the decimal ether amount to an integral wei value.
func (r Request) AmountWei() (*big.Int, error) {
	rat, ok := new(big.Rat).SetString(r.Amount)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidAmount, r.Amount)
	}
	if rat.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %q must be positive", ErrInvalidAmount, r.Amount)
	}
	wei := new(big.Rat).Mul(rat, new(big.Rat).SetInt64(params.Ether))
	if !wei.IsInt() {
		return nil, fmt.Errorf("%w: %q has sub-wei precision", ErrInvalidAmount, r.Amount)
	}
	return wei.Num(), nil
}

// Receipt is the immutable record persisted after a successful submission,
// one per transfer, never overwritten.
type Receipt struct {
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	From        string `json:"from"`
	To          string `json:"to"`
	Amount      string `json:"amount"`
	Timestamp   string `json:"timestamp"`
}

// NewReceipt builds a receipt stamped with the given time in RFC 3339 UTC.
func NewReceipt(hash string, block uint64, from, to, amount string, at time.Time) Receipt {
	return Receipt{
		TxHash:      hash,
		BlockNumber: block,
		From:        from,
		To:          to,
		Amount:      amount,
		Timestamp:   at.UTC().Format(time.RFC3339),
	}
}
