package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scan-wallet-tui/auth"
	"scan-wallet-tui/contract"
	"scan-wallet-tui/scan"
	"scan-wallet-tui/session"
	"scan-wallet-tui/storage"
	"scan-wallet-tui/transfer"
	"scan-wallet-tui/wallet"
)

const usdt = "0xdAC17F958D2ee523a2206206994597C13D831ec7"

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"busy", fmt.Errorf("send: %w", session.ErrBusy), "Another action is still running, please wait."},
		{"invalid scan", session.ErrInvalidScan, "Invalid wallet address!"},
		{"auth", &auth.Error{Err: errors.New("status 500")}, "Login using wallet failed!"},
		{"asset", fmt.Errorf("%w: usdt", storage.ErrAssetNotFound), "Asset not found, pick one from your assets."},
		{"missing", &transfer.Error{Kind: transfer.MissingFields}, "Send amount and receiver address is required."},
		{"address", &transfer.Error{Kind: transfer.InvalidAddress}, "Destination address is invalid!"},
		{"backend", &transfer.Error{Kind: transfer.ExecutionFailed, Err: wallet.ErrNoBackend}, "Not connected to a network."},
		{"cause", &transfer.Error{Kind: transfer.ExecutionFailed, Err: errors.New("insufficient funds")}, "insufficient funds"},
		{"other", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, userMessage(tt.err))
		})
	}
}

func TestPrintPayload(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printPayload(&out, scan.Classify("usdt:"+usdt+",decimals:6")))
	assert.Equal(t, "kind: token\ntoken: usdt\naddress: "+usdt+"\ndecimals: 6\n", out.String())

	out.Reset()
	require.NoError(t, printPayload(&out, scan.Classify(`{"action":"login","id":"42","token":"abc"}`)))
	assert.Equal(t, "kind: login\nid: 42\ntoken: abc\n", out.String())

	out.Reset()
	require.NoError(t, printPayload(&out, scan.Classify(usdt)))
	assert.Equal(t, "kind: address\naddress: "+usdt+"\n", out.String())

	out.Reset()
	err := printPayload(&out, scan.Classify("nonsense"))
	require.Error(t, err)
	assert.Equal(t, "kind: invalid\n", out.String())
}

func TestValidateImport(t *testing.T) {
	ok := storage.Asset{Address: usdt, Type: "erc20", Name: "tether", Symbol: "USDT", Decimals: 6}
	assert.NoError(t, validateImport(ok))

	noName := ok
	noName.Name = "  "
	assert.Error(t, validateImport(noName))

	badAddr := ok
	badAddr.Address = "0x123"
	assert.Error(t, validateImport(badAddr))

	badType := ok
	badType.Type = "erc721"
	assert.ErrorIs(t, validateImport(badType), contract.ErrUnsupportedTokenType)
}

func TestParseDecimals(t *testing.T) {
	n, err := parseDecimals(" 6 ")
	require.NoError(t, err)
	assert.Equal(t, uint8(6), n)

	for _, in := range []string{"", "-1", "256", "six"} {
		_, err := parseDecimals(in)
		assert.Error(t, err, in)
	}
}

func TestResolveAsset(t *testing.T) {
	ctx := context.Background()
	store, err := storage.Open(ctx, filepath.Join(t.TempDir(), "assets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.SaveAsset(ctx, storage.Asset{
		Address: usdt, Type: "erc20", Name: "tether", Symbol: "USDT", Decimals: 6,
	}))

	a, err := resolveAsset(ctx, store, storage.NativeAddress)
	require.NoError(t, err)
	assert.True(t, a.IsNative())

	a, err = resolveAsset(ctx, store, usdt)
	require.NoError(t, err)
	assert.Equal(t, "tether", a.Name)

	a, err = resolveAsset(ctx, store, "usdt")
	require.NoError(t, err)
	assert.Equal(t, "erc20", a.Type)

	_, err = resolveAsset(ctx, store, "dai")
	assert.ErrorIs(t, err, storage.ErrAssetNotFound)
}

func TestPrintAssets(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printAssets(&out, []storage.Asset{storage.DefaultNative}))
	assert.Contains(t, out.String(), "NAME")
	assert.Contains(t, out.String(), "ethereum")
	assert.Contains(t, out.String(), "ETH")
}

func TestLogBuffer(t *testing.T) {
	var b logBuffer
	_, err := b.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", b.String())
}
