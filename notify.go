package main

import (
	"errors"

	"scan-wallet-tui/auth"
	"scan-wallet-tui/session"
	"scan-wallet-tui/storage"
	"scan-wallet-tui/transfer"
	"scan-wallet-tui/wallet"
)

// userMessage turns a failure from the core into the line shown to the user
func userMessage(err error) string {
	var terr *transfer.Error
	switch {
	case err == nil:
		return ""
	case errors.Is(err, session.ErrBusy):
		return "Another action is still running, please wait."
	case errors.Is(err, session.ErrInvalidScan):
		return "Invalid wallet address!"
	case errors.Is(err, auth.ErrAuth):
		return "Login using wallet failed!"
	case errors.Is(err, storage.ErrAssetNotFound):
		return "Asset not found, pick one from your assets."
	case errors.Is(err, transfer.ErrMissingFields):
		return "Send amount and receiver address is required."
	case errors.Is(err, transfer.ErrInvalidAddress):
		return "Destination address is invalid!"
	case errors.Is(err, wallet.ErrNoBackend):
		return "Not connected to a network."
	case errors.As(err, &terr) && terr.Err != nil:
		return terr.Err.Error()
	default:
		return err.Error()
	}
}
