package contract

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Minimal ERC20 interface: the transfer call plus the read-only metadata
// used when importing a token.
const erc20ABI = `[
	{"type":"function","name":"transfer","stateMutability":"nonpayable",
	 "inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view",
	 "inputs":[{"name":"owner","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"decimals","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"uint8"}]},
	{"type":"function","name":"symbol","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"string"}]}
]`

// token types that share the ERC20 transfer(address,uint256) interface
var erc20Aliases = []string{"erc20", "erc-20", "bep20", "bep-20", "token"}

var (
	registryOnce sync.Once
	registry     map[string]*abi.ABI
	registryErr  error
)

func loadRegistry() {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		registryErr = fmt.Errorf("parse erc20 abi: %w", err)
		return
	}
	registry = make(map[string]*abi.ABI, len(erc20Aliases))
	for _, name := range erc20Aliases {
		registry[name] = &parsed
	}
}

// abiFor returns the ABI used for a stored token type. Matching is case-insensitive.
func abiFor(tokenType string) (*abi.ABI, error) {
	registryOnce.Do(loadRegistry)
	if registryErr != nil {
		return nil, registryErr
	}
	parsed, ok := registry[strings.ToLower(strings.TrimSpace(tokenType))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTokenType, tokenType)
	}
	return parsed, nil
}

// Supported reports whether tokenType has a known contract interface
func Supported(tokenType string) bool {
	_, err := abiFor(tokenType)
	return err == nil
}
