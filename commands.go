package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"

	"scan-wallet-tui/auth"
	"scan-wallet-tui/helpers"
	"scan-wallet-tui/rpc"
	"scan-wallet-tui/scan"
	"scan-wallet-tui/storage"
	"scan-wallet-tui/transfer"
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

// connectRPC establishes an RPC connection to the Ethereum node
func connectRPC(network, url string) tea.Cmd {
	return func() tea.Msg {
		result := rpc.Connect(url)
		return rpcConnectedMsg{network: network, client: result.Client, err: result.Error}
	}
}

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// loadAssets reads the stored asset list
func loadAssets(store *storage.Store) tea.Cmd {
	return func() tea.Msg {
		assets, err := store.ListAssets(context.Background())
		return assetsLoadedMsg{assets: assets, err: err}
	}
}

// refreshBalancesCmd fetches balances over RPC and writes them back to the store
func refreshBalancesCmd(client *rpc.Client, store *storage.Store, owner common.Address) tea.Cmd {
	return func() tea.Msg {
		assets, err := store.ListAssets(context.Background())
		if err != nil {
			return balancesLoadedMsg{err: err}
		}
		b := rpc.LoadAssetBalances(client, owner, assets)
		if b.ErrMessage != "" {
			return balancesLoadedMsg{b: b}
		}
		err = rpc.SaveBalances(context.Background(), store, b)
		return balancesLoadedMsg{b: b, err: err}
	}
}

// resolveByName finds the asset a token descriptor scan names
func resolveByName(store *storage.Store, name, to string) tea.Cmd {
	return func() tea.Msg {
		a, err := store.FindByName(context.Background(), name)
		return assetResolvedMsg{asset: a, to: to, err: err}
	}
}

// importAsset saves a token typed into the import form
func importAsset(store *storage.Store, a storage.Asset) tea.Cmd {
	return func() tea.Msg {
		err := store.SaveAsset(context.Background(), a)
		return assetImportedMsg{asset: a, err: err}
	}
}

// respondToLogin answers a scanned login challenge
func respondToLogin(r *auth.Responder, login scan.Login, key string) tea.Cmd {
	return func() tea.Msg {
		err := r.RespondToLogin(context.Background(), login, key)
		return loginResultMsg{err: err}
	}
}

// executeTransfer runs a confirmed plan. The send is not cancellable once
// submitted, so it gets a background context.
func executeTransfer(d *transfer.Dispatcher, plan *transfer.Plan) tea.Cmd {
	return func() tea.Msg {
		receipt, err := d.Execute(context.Background(), plan)
		return transferSettledMsg{receipt: receipt, err: err}
	}
}

// saveQRCode exports the receive address as a PNG in dir
func saveQRCode(address, dir string) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(dir, fmt.Sprintf("wallet-%s.png", address[2:10]))
		err := helpers.SaveQRCodePNG(address, path, 512)
		return qrSavedMsg{path: path, err: err}
	}
}

// saveConfigCmd persists the active network and logger flag
func saveConfigCmd(a *app) tea.Cmd {
	return func() tea.Msg {
		return configSavedMsg{err: a.saveConfig()}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text, what string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(text)
		if err == nil {
			return clipboardCopiedMsg{what: what}
		}
		return nil
	}
}

// clearNotice waits 2 seconds then clears transient feedback
func clearNotice() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearNoticeMsg{}
	})
}

// deleteAsset removes a token and reloads the list
func deleteAsset(store *storage.Store, address string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := store.DeleteAsset(ctx, address); err != nil {
			return assetsLoadedMsg{err: err}
		}
		assets, err := store.ListAssets(ctx)
		return assetsLoadedMsg{assets: assets, err: err}
	}
}
