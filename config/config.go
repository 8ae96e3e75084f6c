package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config represents the application configuration
type Config struct {
	Networks    []Network `json:"networks"`
	LoginServer string    `json:"login_server,omitempty"`
	AssetsDB    string    `json:"assets_db,omitempty"`
	Logger      bool      `json:"logger"`
}

// Network represents a chain the wallet can use
type Network struct {
	Name    string `json:"name"`
	Display string `json:"display"`
	RPCURL  string `json:"rpc_url"`
	ChainID int64  `json:"chain_id"`
	Active  bool   `json:"active"`
}

// DefaultPath is ~/.scan-wallet-config.json, or the working directory if
// there is no home
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".scan-wallet-config.json"
	}
	return filepath.Join(home, ".scan-wallet-config.json")
}

// DefaultAssetsDB is ~/.scan-wallet/assets.db
func DefaultAssetsDB() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "scan-wallet-assets.db"
	}
	return filepath.Join(home, ".scan-wallet", "assets.db")
}

// Load reads the config from the specified path
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}

	return cfg
}

// Save writes the config to the specified path
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Networks: []Network{
			{
				Name:    "sepolia",
				Display: "Sepolia Testnet",
				RPCURL:  "https://ethereum-sepolia-rpc.publicnode.com",
				ChainID: 11155111,
				Active:  true,
			},
			{
				Name:    "mainnet",
				Display: "Ethereum Mainnet",
				RPCURL:  "https://ethereum-rpc.publicnode.com",
				ChainID: 1,
			},
		},
		AssetsDB: DefaultAssetsDB(),
		Logger:   false,
	}
}

// LoadOrCreate loads config from path, or creates a default one if not found
func LoadOrCreate(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		cfg := DefaultConfig()
		_ = Save(path, cfg)
		return cfg
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig()
	}
	if len(cfg.Networks) == 0 {
		cfg.Networks = DefaultConfig().Networks
	}
	if cfg.AssetsDB == "" {
		cfg.AssetsDB = DefaultAssetsDB()
	}

	return cfg
}

// ActiveNetwork returns the network marked active, or the first one
func (c Config) ActiveNetwork() (Network, bool) {
	for _, n := range c.Networks {
		if n.Active {
			return n, true
		}
	}
	if len(c.Networks) > 0 {
		return c.Networks[0], true
	}
	return Network{}, false
}

// SetActive marks the named network active and every other inactive
func (c *Config) SetActive(name string) bool {
	found := false
	for i := range c.Networks {
		c.Networks[i].Active = c.Networks[i].Name == name
		found = found || c.Networks[i].Active
	}
	return found
}
