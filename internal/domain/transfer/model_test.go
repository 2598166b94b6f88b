package transfer

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	full := Request{From: "0xa", To: "0xb", Amount: "1", PrivateKey: "k"}
	require.NoError(t, full.Validate())

	cases := []Request{
		{To: "0xb", Amount: "1", PrivateKey: "k"},
		{From: "0xa", Amount: "1", PrivateKey: "k"},
		{From: "0xa", To: "0xb", PrivateKey: "k"},
		{From: "0xa", To: "0xb", Amount: "1"},
	}
	for _, c := range cases {
		require.ErrorIs(t, c.Validate(), ErrMissingFields)
	}
}

func TestAmountWei(t *testing.T) {
	half := Request{Amount: "0.5"}
	wei, err := half.AmountWei()
	require.NoError(t, err)
	require.Equal(t, "500000000000000000", wei.String())

	one := Request{Amount: "1"}
	wei, err = one.AmountWei()
	require.NoError(t, err)
	require.Equal(t, new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil), wei)

	smallest := Request{Amount: "0.000000000000000001"}
	wei, err = smallest.AmountWei()
	require.NoError(t, err)
	require.Equal(t, "1", wei.String())
}

func TestAmountWeiRejectsBadInput(t *testing.T) {
	for _, amount := range []string{"abc", "", "-1", "0", "0.0000000000000000001", "1ether"} {
		_, err := Request{Amount: amount}.AmountWei()
		require.ErrorIs(t, err, ErrInvalidAmount, "amount %q", amount)
	}
}

func TestNewReceipt(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	rec := NewReceipt("0xabc", 42, "0xa", "0xb", "0.5", at)

	require.Equal(t, "0xabc", rec.TxHash)
	require.Equal(t, uint64(42), rec.BlockNumber)
	require.Equal(t, "2025-06-01T10:30:00Z", rec.Timestamp)
}
