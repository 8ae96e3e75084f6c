package rpc

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"scan-wallet-tui/storage"
)

type fakeReader struct {
	native   *big.Int
	tokens   map[common.Address]*big.Int
	failWith error
}

func (f *fakeReader) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.native, nil
}

func (f *fakeReader) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if !bytes.Equal(msg.Data[:4], balanceOfSelector) || len(msg.Data) != 36 {
		return nil, errors.New("unexpected call data")
	}
	bal, ok := f.tokens[*msg.To]
	if !ok {
		return nil, nil
	}
	return common.LeftPadBytes(bal.Bytes(), 32), nil
}

var (
	owner = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	usdc  = storage.Asset{Address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", Type: "erc20", Name: "usd coin", Symbol: "USDC", Decimals: 6, Balance: "0"}
	dai   = storage.Asset{Address: "0x6b175474e89094c44da98b954eedeac495271d0f", Type: "erc20", Name: "dai", Symbol: "DAI", Decimals: 18, Balance: "7"}
)

func TestLoadAssetBalances(t *testing.T) {
	reader := &fakeReader{
		native: big.NewInt(1_000_000_000_000_000_000),
		tokens: map[common.Address]*big.Int{common.HexToAddress(usdc.Address): big.NewInt(2_500_000)},
	}

	b := LoadAssetBalances(reader, owner, []storage.Asset{storage.DefaultNative, usdc, dai})
	if b.ErrMessage != "" {
		t.Fatalf("unexpected error message: %s", b.ErrMessage)
	}
	if len(b.Failed) != 0 {
		t.Fatalf("unexpected failures: %v", b.Failed)
	}

	want := []string{"1000000000000000000", "2500000", "0"}
	for i, a := range b.Assets {
		if a.Balance != want[i] {
			t.Errorf("%s balance = %s, want %s", a.Symbol, a.Balance, want[i])
		}
	}
	if b.Owner != owner.Hex() {
		t.Errorf("owner = %s", b.Owner)
	}
	if b.LoadedAt.IsZero() {
		t.Error("LoadedAt timestamp is zero")
	}
}

func TestLoadAssetBalancesFailures(t *testing.T) {
	t.Run("nil client", func(t *testing.T) {
		b := LoadAssetBalances(nil, owner, []storage.Asset{storage.DefaultNative})
		if b.ErrMessage == "" {
			t.Error("expected error message for nil client")
		}
	})

	t.Run("nil rpc client", func(t *testing.T) {
		var c *Client
		b := LoadAssetBalances(c, owner, []storage.Asset{storage.DefaultNative})
		if b.ErrMessage == "" {
			t.Error("expected error message for nil client")
		}
	})

	t.Run("node down keeps stored balances", func(t *testing.T) {
		b := LoadAssetBalances(&fakeReader{failWith: errors.New("connection refused")}, owner, []storage.Asset{dai})
		if b.ErrMessage == "" {
			t.Error("expected error message when every asset fails")
		}
		if b.Assets[0].Balance != "7" {
			t.Errorf("balance = %s, want stored 7", b.Assets[0].Balance)
		}
		if _, ok := b.Failed[dai.Address]; !ok {
			t.Error("dai not reported as failed")
		}
	})

	t.Run("bad contract address", func(t *testing.T) {
		bad := storage.Asset{Address: "nope", Name: "bad", Type: "erc20"}
		b := LoadAssetBalances(&fakeReader{native: big.NewInt(1)}, owner, []storage.Asset{storage.DefaultNative, bad})
		if b.ErrMessage != "" {
			t.Errorf("partial failure should not set ErrMessage: %s", b.ErrMessage)
		}
		if _, ok := b.Failed["nope"]; !ok {
			t.Error("bad asset not reported as failed")
		}
	})
}

func TestSaveBalances(t *testing.T) {
	ctx := context.Background()
	store, err := storage.Open(ctx, filepath.Join(t.TempDir(), "assets.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if err := store.SaveAsset(ctx, usdc); err != nil {
		t.Fatalf("save asset: %v", err)
	}

	reader := &fakeReader{
		native: big.NewInt(42),
		tokens: map[common.Address]*big.Int{common.HexToAddress(usdc.Address): big.NewInt(9)},
	}
	assets, err := store.ListAssets(ctx)
	if err != nil {
		t.Fatalf("list assets: %v", err)
	}
	if err := SaveBalances(ctx, store, LoadAssetBalances(reader, owner, assets)); err != nil {
		t.Fatalf("save balances: %v", err)
	}

	native, err := store.GetAsset(ctx, storage.NativeAddress)
	if err != nil {
		t.Fatalf("get native: %v", err)
	}
	if native.Balance != "42" {
		t.Errorf("native balance = %s, want 42", native.Balance)
	}
	token, err := store.GetAsset(ctx, usdc.Address)
	if err != nil {
		t.Fatalf("get usdc: %v", err)
	}
	if token.Balance != "9" {
		t.Errorf("usdc balance = %s, want 9", token.Balance)
	}
}

func TestConnect(t *testing.T) {
	rpcURL := os.Getenv("ETH_RPC_URL")
	if rpcURL == "" {
		t.Skip("ETH_RPC_URL not set, skipping connection test")
	}

	t.Run("successful connection", func(t *testing.T) {
		result := Connect(rpcURL)
		if result.Error != nil {
			t.Fatalf("Failed to connect to RPC: %v", result.Error)
		}
		if result.Client == nil {
			t.Fatal("Client is nil despite no error")
		}
		if result.Client.URL != rpcURL {
			t.Errorf("Expected URL %s, got %s", rpcURL, result.Client.URL)
		}
		t.Logf("Connected to chain ID: %s", result.ChainID)
	})

	t.Run("balances of a known holder", func(t *testing.T) {
		result := ConnectWithTimeout(rpcURL, 10*time.Second)
		if result.Error != nil {
			t.Fatalf("Failed to connect: %v", result.Error)
		}
		vitalik := common.HexToAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
		b := LoadAssetBalances(result.Client, vitalik, []storage.Asset{storage.DefaultNative, usdc})
		if b.ErrMessage != "" {
			t.Logf("Got error message (may be due to rate limiting): %s", b.ErrMessage)
		}
		for _, a := range b.Assets {
			t.Logf("  %s: %s", a.Symbol, a.Balance)
		}
	})

	t.Run("invalid URL", func(t *testing.T) {
		result := Connect("not-a-valid-url")
		if result.Error == nil {
			t.Error("expected an error for a malformed URL")
		}
	})
}
