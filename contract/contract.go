package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"scan-wallet-tui/wallet"
)

var (
	// ErrUnsupportedTokenType is returned for a token type with no known ABI
	ErrUnsupportedTokenType = errors.New("unsupported token type")

	// ErrZeroAddress is returned when the contract or recipient address is empty
	ErrZeroAddress = errors.New("zero address")
)

// Sender sends signed transactions on behalf of an account. *wallet.Wallet satisfies it.
type Sender interface {
	Address() common.Address
	SendTransaction(ctx context.Context, to common.Address, value *big.Int, data []byte) (*wallet.Receipt, error)
}

// Token is a handle on a deployed token contract, scoped to one wallet
type Token struct {
	sender    Sender
	address   common.Address
	tokenType string
	abi       *abi.ABI
}

// New builds a token handle from {wallet, address, type}
func New(sender Sender, address common.Address, tokenType string) (*Token, error) {
	if address == (common.Address{}) {
		return nil, fmt.Errorf("token contract: %w", ErrZeroAddress)
	}
	parsed, err := abiFor(tokenType)
	if err != nil {
		return nil, err
	}
	return &Token{
		sender:    sender,
		address:   address,
		tokenType: tokenType,
		abi:       parsed,
	}, nil
}

// Address returns the contract address
func (t *Token) Address() common.Address { return t.address }

// Type returns the token type the handle was built for
func (t *Token) Type() string { return t.tokenType }

// PackTransfer encodes transfer(to, amount) call data
func (t *Token) PackTransfer(to common.Address, amount *big.Int) ([]byte, error) {
	if to == (common.Address{}) {
		return nil, fmt.Errorf("recipient: %w", ErrZeroAddress)
	}
	data, err := t.abi.Pack("transfer", to, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to pack transfer: %w", err)
	}
	return data, nil
}

// Transfer moves amount base units of the token to `to` and waits for the
// transaction to be mined.
func (t *Token) Transfer(ctx context.Context, to common.Address, amount *big.Int) (*wallet.Receipt, error) {
	data, err := t.PackTransfer(to, amount)
	if err != nil {
		return nil, err
	}
	return t.sender.SendTransaction(ctx, t.address, big.NewInt(0), data)
}
