package main

import (
	"scan-wallet-tui/rpc"
	"scan-wallet-tui/storage"
	"scan-wallet-tui/transfer"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct {
	what string
}

// clearNoticeMsg clears transient feedback after a delay
type clearNoticeMsg struct{}

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}

// rpcConnectedMsg contains result of RPC connection attempt
type rpcConnectedMsg struct {
	network string
	client  *rpc.Client
	err     error
}

// assetsLoadedMsg carries the stored asset list
type assetsLoadedMsg struct {
	assets []storage.Asset
	err    error
}

// balancesLoadedMsg carries refreshed balances after they were saved
type balancesLoadedMsg struct {
	b   rpc.AssetBalances
	err error
}

// assetResolvedMsg is the asset a scan or selection wants to send
type assetResolvedMsg struct {
	asset storage.Asset
	to    string
	err   error
}

// assetImportedMsg reports the result of saving an imported token
type assetImportedMsg struct {
	asset storage.Asset
	err   error
}

// loginResultMsg reports the result of answering a login challenge
type loginResultMsg struct {
	err error
}

// transferSettledMsg reports a send after the strategy settled
type transferSettledMsg struct {
	receipt *transfer.Receipt
	err     error
}

// qrSavedMsg reports the PNG export of the receive QR code
type qrSavedMsg struct {
	path string
	err  error
}

// configSavedMsg reports a config write
type configSavedMsg struct {
	err error
}
