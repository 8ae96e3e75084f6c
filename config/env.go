package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Env holds settings that come from the environment. Set values win over the
// config file.
type Env struct {
	RPCURL        string        `envconfig:"ETH_RPC_URL"`
	LoginServer   string        `envconfig:"WALLET_LOGIN_SERVER"`
	PrivateKey    string        `envconfig:"WALLET_PRIVATE_KEY"`
	ConfigPath    string        `envconfig:"WALLET_CONFIG_PATH"`
	AssetsDB      string        `envconfig:"WALLET_ASSETS_DB"`
	TransferDelay time.Duration `envconfig:"WALLET_TRANSFER_DELAY" default:"250ms"`
}

// LoadEnv reads Env from the process environment
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("failed to process env: %w", err)
	}
	return env, nil
}

// Path returns the config file to use
func (e Env) Path() string {
	if e.ConfigPath != "" {
		return e.ConfigPath
	}
	return DefaultPath()
}

// Apply overlays the environment on cfg. ETH_RPC_URL replaces the active
// network's endpoint.
func (e Env) Apply(cfg Config) Config {
	if e.LoginServer != "" {
		cfg.LoginServer = e.LoginServer
	}
	if e.AssetsDB != "" {
		cfg.AssetsDB = e.AssetsDB
	}
	if e.RPCURL != "" {
		networks := make([]Network, len(cfg.Networks))
		copy(networks, cfg.Networks)
		cfg.Networks = networks

		active, ok := cfg.ActiveNetwork()
		if !ok {
			cfg.Networks = append(cfg.Networks, Network{Name: "custom", Display: "Custom RPC", RPCURL: e.RPCURL, Active: true})
			return cfg
		}
		for i := range cfg.Networks {
			if cfg.Networks[i].Name == active.Name {
				cfg.Networks[i].RPCURL = e.RPCURL
			}
		}
	}
	return cfg
}

// ErrNoTerminal is returned when a key is needed but stdin cannot prompt
var ErrNoTerminal = errors.New("stdin is not a terminal: set WALLET_PRIVATE_KEY or run interactively")

// PrivateKeyOrPrompt returns the configured key, prompting for it with hidden input
// when none is set.
func (e Env) PrivateKeyOrPrompt() (string, error) {
	if e.PrivateKey != "" {
		return e.PrivateKey, nil
	}
	return PromptForPrivateKey()
}

// PromptForPrivateKey reads a private key from the terminal without echo
func PromptForPrivateKey() (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", ErrNoTerminal
	}
	fmt.Fprint(os.Stderr, "Enter wallet private key: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read private key: %w", err)
	}
	key := strings.TrimSpace(string(raw))
	clear(raw)
	if key == "" {
		return "", errors.New("private key cannot be empty")
	}
	return key, nil
}
