package transfer

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"scan-wallet-tui/contract"
	"scan-wallet-tui/storage"
)

// AssetKind says how an asset moves: Native or Token. Each kind builds its
// own Strategy, so adding a kind without a strategy does not compile.
type AssetKind interface {
	strategy(w Wallet) Strategy
	fmt.Stringer
}

// Native is the chain's base asset
type Native struct{}

// Token is a contract-based asset
type Token struct {
	Contract common.Address
	Type     string
	Decimals uint8
}

func (Native) String() string { return "native" }

func (t Token) String() string { return fmt.Sprintf("%s token %s", t.Type, t.Contract.Hex()) }

func (Native) strategy(w Wallet) Strategy { return nativeStrategy{wallet: w} }

func (t Token) strategy(w Wallet) Strategy { return tokenStrategy{wallet: w, token: t} }

// KindOf resolves stored token metadata to an AssetKind. The store's
// "default" address is the only spelling of the native asset.
func KindOf(a storage.Asset) (AssetKind, error) {
	if a.IsNative() {
		return Native{}, nil
	}
	if !common.IsHexAddress(a.Address) {
		return nil, fmt.Errorf("asset %q has invalid contract address %q", a.Name, a.Address)
	}
	if !contract.Supported(a.Type) {
		return nil, fmt.Errorf("asset %q: %w: %q", a.Name, contract.ErrUnsupportedTokenType, a.Type)
	}
	return Token{
		Contract: common.HexToAddress(a.Address),
		Type:     a.Type,
		Decimals: a.Decimals,
	}, nil
}
