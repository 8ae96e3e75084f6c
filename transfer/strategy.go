package transfer

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"scan-wallet-tui/contract"
	"scan-wallet-tui/helpers"
	"scan-wallet-tui/wallet"
)

// Wallet is what the strategies need from the active wallet
type Wallet interface {
	Address() common.Address
	SendTransaction(ctx context.Context, to common.Address, value *big.Int, data []byte) (*wallet.Receipt, error)
}

// Outcome is what a strategy reports on success. Hash and Nonce are only
// set when the mechanism guarantees them.
type Outcome struct {
	Hash      *common.Hash
	Nonce     *uint64
	BaseUnits *big.Int
}

// Strategy moves one kind of asset
type Strategy interface {
	AttemptTransfer(ctx context.Context, to common.Address, amount string) (*Outcome, error)
}

// StrategyFunc adapts a function to Strategy
type StrategyFunc func(ctx context.Context, to common.Address, amount string) (*Outcome, error)

func (f StrategyFunc) AttemptTransfer(ctx context.Context, to common.Address, amount string) (*Outcome, error) {
	return f(ctx, to, amount)
}

type nativeStrategy struct {
	wallet Wallet
}

func (s nativeStrategy) AttemptTransfer(ctx context.Context, to common.Address, amount string) (*Outcome, error) {
	wei, err := helpers.ParseUnits(amount, 18)
	if err != nil {
		return nil, err
	}
	receipt, err := s.wallet.SendTransaction(ctx, to, wei, nil)
	if err != nil {
		return nil, err
	}
	return &Outcome{Hash: &receipt.Hash, Nonce: &receipt.Nonce, BaseUnits: wei}, nil
}

type tokenStrategy struct {
	wallet Wallet
	token  Token
}

func (s tokenStrategy) AttemptTransfer(ctx context.Context, to common.Address, amount string) (*Outcome, error) {
	units, err := helpers.ParseUnits(amount, s.token.Decimals)
	if err != nil {
		return nil, err
	}
	handle, err := contract.New(s.wallet, s.token.Contract, s.token.Type)
	if err != nil {
		return nil, fmt.Errorf("token contract: %w", err)
	}
	if _, err := handle.Transfer(ctx, to, units); err != nil {
		return nil, err
	}
	return &Outcome{BaseUnits: units}, nil
}
