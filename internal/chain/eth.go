package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/chaingate-io/chaingate/pkg/logger"
)

// transferGasLimit is a conservative ceiling for a plain value transfer,
// not a computed estimate.
const transferGasLimit = 2_000_000

// receiptPollInterval is how often the gateway asks the node whether a
// broadcast transaction has been mined.
const receiptPollInterval = 500 * time.Millisecond

// EthGateway submits transfers to an Ethereum node over RPC.
type EthGateway struct {
	client      *ethclient.Client
	nodeURL     string
	waitTimeout time.Duration
	log         *logger.Logger

	chainMu sync.Mutex
	chainID *big.Int
}

// NewEthGateway dials the node at nodeURL. waitTimeout bounds the wait for
// a mined receipt per submission.
func NewEthGateway(nodeURL string, waitTimeout time.Duration, log *logger.Logger) (*EthGateway, error) {
	client, err := ethclient.Dial(nodeURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", nodeURL, err)
	}
	if waitTimeout <= 0 {
		waitTimeout = 90 * time.Second
	}
	if log == nil {
		log = logger.NewDefault("chain")
	}
	return &EthGateway{
		client:      client,
		nodeURL:     nodeURL,
		waitTimeout: waitTimeout,
		log:         log,
	}, nil
}

// NodeURL returns the RPC endpoint this gateway talks to.
func (g *EthGateway) NodeURL() string {
	return g.nodeURL
}

// Transfer signs the transfer in-process, broadcasts it, and blocks until
// the node reports a receipt or the bounded wait expires. There is no
// internal retry at any step.
func (g *EthGateway) Transfer(ctx context.Context, p TransferParams) (Receipt, error) {
	if !common.IsHexAddress(p.From) {
		return Receipt{}, fmt.Errorf("%w: malformed sender address", ErrSubmission)
	}
	if !common.IsHexAddress(p.To) {
		return Receipt{}, fmt.Errorf("%w: malformed recipient address", ErrSubmission)
	}

	key, err := parsePrivateKey(p.PrivateKey)
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %v", ErrSubmission, err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.waitTimeout)
	defer cancel()

	chainID, err := g.networkChainID(ctx)
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: chain id: %v", ErrSubmission, err)
	}

	from := common.HexToAddress(p.From)
	to := common.HexToAddress(p.To)

	nonce, err := g.client.PendingNonceAt(ctx, from)
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: nonce: %v", ErrSubmission, err)
	}
	gasPrice, err := g.client.SuggestGasPrice(ctx)
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: gas price: %v", ErrSubmission, err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    p.AmountWei,
		Gas:      transferGasLimit,
		GasPrice: gasPrice,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: sign: %v", ErrSubmission, err)
	}

	if err := g.client.SendTransaction(ctx, signed); err != nil {
		return Receipt{}, fmt.Errorf("%w: broadcast: %v", ErrSubmission, err)
	}

	hash := signed.Hash()
	g.log.WithField("tx", hash.Hex()).Info("transfer broadcast, waiting for receipt")

	rcpt, err := g.waitMined(ctx, hash)
	if err != nil {
		return Receipt{}, err
	}
	if rcpt.Status != types.ReceiptStatusSuccessful {
		return Receipt{}, fmt.Errorf("%w: transaction %s reverted", ErrSubmission, hash.Hex())
	}

	return Receipt{
		TransactionHash: hash.Hex(),
		BlockNumber:     rcpt.BlockNumber.Uint64(),
	}, nil
}

// waitMined polls for the receipt until the context deadline. A deadline
// hit means the on-chain outcome is unknown, and the error says so.
func (g *EthGateway) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		rcpt, err := g.client.TransactionReceipt(ctx, hash)
		if err == nil {
			return rcpt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("%w: receipt lookup: %v", ErrSubmission, err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: timed out waiting for receipt of %s; on-chain state unknown", ErrSubmission, hash.Hex())
		case <-ticker.C:
		}
	}
}

// networkChainID caches the chain id after the first successful lookup.
func (g *EthGateway) networkChainID(ctx context.Context) (*big.Int, error) {
	g.chainMu.Lock()
	defer g.chainMu.Unlock()

	if g.chainID != nil {
		return g.chainID, nil
	}
	id, err := g.client.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	g.chainID = id
	return id, nil
}

// parsePrivateKey decodes a hex-encoded secp256k1 key, with or without a
// 0x prefix.
func parsePrivateKey(s string) (*ecdsa.PrivateKey, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	key, err := crypto.HexToECDSA(s)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return key, nil
}
