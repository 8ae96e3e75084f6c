package wallet

import "errors"

var (
	// ErrInvalidPrivateKey is returned when a private key cannot be parsed
	ErrInvalidPrivateKey = errors.New("invalid private key")

	// ErrNoBackend is returned when a transaction is sent from a wallet that is not connected to a node
	ErrNoBackend = errors.New("wallet is not connected to a network")

	// ErrReverted is returned when a mined transaction has a failed status
	ErrReverted = errors.New("transaction reverted")
)
