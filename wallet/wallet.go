package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Backend is the subset of an Ethereum node client a wallet needs to send
// and confirm transactions. *ethclient.Client satisfies it.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
}

// Receipt describes a mined transaction sent by the wallet
type Receipt struct {
	Hash        common.Hash
	Nonce       uint64
	BlockNumber *big.Int
	GasUsed     uint64
}

// Wallet holds a private key and, once connected, the node it transacts through
type Wallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
	backend Backend
}

// LoadFromPrivateKey parses a hex private key, with or without 0x prefix
func LoadFromPrivateKey(key string) (*Wallet, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "0x")
	if key == "" {
		return nil, ErrInvalidPrivateKey
	}
	pk, err := crypto.HexToECDSA(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return &Wallet{
		key:     pk,
		address: crypto.PubkeyToAddress(pk.PublicKey),
	}, nil
}

// Connect returns a copy of the wallet bound to backend
func (w *Wallet) Connect(b Backend) *Wallet {
	return &Wallet{key: w.key, address: w.address, backend: b}
}

// Connected reports whether the wallet can send transactions
func (w *Wallet) Connected() bool {
	return w != nil && w.backend != nil
}

// Address returns the wallet's account address
func (w *Wallet) Address() common.Address {
	return w.address
}

// SignMessage signs text as an EIP-191 personal message and returns the
// 65-byte signature as 0x-prefixed hex with V in {27, 28}.
func (w *Wallet) SignMessage(text string) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash([]byte(text)), w.key)
	if err != nil {
		return "", fmt.Errorf("sign message: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig), nil
}

// SendTransaction signs and submits a transaction to `to` carrying value and
// data, then blocks until it is mined. There is no timeout beyond ctx.
func (w *Wallet) SendTransaction(ctx context.Context, to common.Address, value *big.Int, data []byte) (*Receipt, error) {
	if !w.Connected() {
		return nil, ErrNoBackend
	}
	if value == nil {
		value = new(big.Int)
	}

	chainID, err := w.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}

	nonce, err := w.backend.PendingNonceAt(ctx, w.address)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := w.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	gasLimit, err := w.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  w.address,
		To:    &to,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       &to,
		Value:    value,
		Data:     data,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), w.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := w.backend.SendTransaction(ctx, signedTx); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, w.backend, signedTx.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s: %w", signedTx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: %s", ErrReverted, signedTx.Hash().Hex())
	}

	return &Receipt{
		Hash:        signedTx.Hash(),
		Nonce:       signedTx.Nonce(),
		BlockNumber: receipt.BlockNumber,
		GasUsed:     receipt.GasUsed,
	}, nil
}
