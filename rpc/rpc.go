package rpc

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"scan-wallet-tui/storage"
)

// Client wraps an Ethereum RPC client
type Client struct {
	*ethclient.Client
	URL string
}

// ConnectResult holds the result of an RPC connection attempt
type ConnectResult struct {
	Client  *Client
	ChainID *big.Int
	Error   error
}

// Connect attempts to connect to an Ethereum RPC endpoint
func Connect(url string) ConnectResult {
	return ConnectWithTimeout(url, 8*time.Second)
}

// ConnectWithTimeout dials url and asks for the chain id, so an unreachable
// endpoint fails here rather than on the first send.
func ConnectWithTimeout(url string, timeout time.Duration) ConnectResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return ConnectResult{Error: err}
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return ConnectResult{Error: fmt.Errorf("chain id: %w", err)}
	}

	return ConnectResult{
		Client:  &Client{Client: client, URL: url},
		ChainID: chainID,
	}
}

// BalanceReader is the read side of a node client. *ethclient.Client satisfies it.
type BalanceReader interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// AssetBalances is the result of refreshing every stored asset for one owner
type AssetBalances struct {
	Owner      string
	Assets     []storage.Asset
	Failed     map[string]error // by asset address
	LoadedAt   time.Time
	ErrMessage string
}

// LoadAssetBalances refreshes the balance of each asset held by owner
func LoadAssetBalances(client BalanceReader, owner common.Address, assets []storage.Asset) AssetBalances {
	return LoadAssetBalancesWithTimeout(client, owner, assets, 12*time.Second)
}

// LoadAssetBalancesWithTimeout refreshes balances with a custom timeout. Assets
// whose balance could not be read keep their stored value and are listed in
// Failed.
func LoadAssetBalancesWithTimeout(client BalanceReader, owner common.Address, assets []storage.Asset, timeout time.Duration) AssetBalances {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	b := AssetBalances{
		Owner:    owner.Hex(),
		Assets:   append([]storage.Asset(nil), assets...),
		Failed:   make(map[string]error),
		LoadedAt: time.Now(),
	}

	if client == nil {
		b.ErrMessage = "No RPC client (set ETH_RPC_URL)."
		return b
	}
	if c, ok := client.(*Client); ok && (c == nil || c.Client == nil) {
		b.ErrMessage = "No RPC client (set ETH_RPC_URL)."
		return b
	}

	// sequential calls; the list is short
	for i, a := range b.Assets {
		bal, err := balanceOf(ctx, client, a, owner)
		if err != nil {
			b.Failed[a.Address] = err
			continue
		}
		b.Assets[i].Balance = bal.String()
	}
	if len(b.Failed) > 0 && len(b.Failed) == len(b.Assets) {
		b.ErrMessage = "Failed to load balances."
	}
	return b
}

func balanceOf(ctx context.Context, client BalanceReader, a storage.Asset, owner common.Address) (*big.Int, error) {
	if a.IsNative() {
		return client.BalanceAt(ctx, owner, nil)
	}
	if !common.IsHexAddress(a.Address) {
		return nil, fmt.Errorf("invalid contract address %q", a.Address)
	}
	return erc20BalanceOf(ctx, client, common.HexToAddress(a.Address), owner)
}

// balanceOf(address) methodID = keccak256("balanceOf(address)")[:4]
var balanceOfSelector = []byte{0x70, 0xa0, 0x82, 0x31}

func erc20BalanceOf(ctx context.Context, client BalanceReader, token common.Address, owner common.Address) (*big.Int, error) {
	data := make([]byte, 0, 4+32)
	data = append(data, balanceOfSelector...)
	data = append(data, common.LeftPadBytes(owner.Bytes(), 32)...)

	out, err := client.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return big.NewInt(0), nil
	}
	return new(big.Int).SetBytes(out), nil
}

// SaveBalances writes refreshed balances back to the store
func SaveBalances(ctx context.Context, store *storage.Store, b AssetBalances) error {
	for _, a := range b.Assets {
		if _, failed := b.Failed[a.Address]; failed {
			continue
		}
		if err := store.UpdateBalance(ctx, a.Address, a.Balance); err != nil {
			return fmt.Errorf("save balance of %s: %w", a.Name, err)
		}
	}
	return nil
}
