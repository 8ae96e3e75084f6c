package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateWritesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := LoadOrCreate(path)
	assert.Equal(t, DefaultConfig().Networks, cfg.Networks)

	_, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, Load(path))
}

func TestLoadOrCreateFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"login_server":"https://auth.example","logger":true}`), 0600))

	cfg := LoadOrCreate(path)
	assert.Equal(t, "https://auth.example", cfg.LoginServer)
	assert.True(t, cfg.Logger)
	assert.NotEmpty(t, cfg.Networks)
	assert.NotEmpty(t, cfg.AssetsDB)
}

func TestLoadOrCreateInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{nope`), 0600))

	assert.Equal(t, DefaultConfig(), LoadOrCreate(path))
}

func TestActiveNetwork(t *testing.T) {
	cfg := DefaultConfig()
	n, ok := cfg.ActiveNetwork()
	require.True(t, ok)
	assert.Equal(t, "sepolia", n.Name)

	require.True(t, cfg.SetActive("mainnet"))
	n, _ = cfg.ActiveNetwork()
	assert.Equal(t, "mainnet", n.Name)
	assert.Equal(t, int64(1), n.ChainID)

	assert.False(t, cfg.SetActive("nowhere"))
	n, ok = cfg.ActiveNetwork()
	require.True(t, ok)
	assert.Equal(t, "sepolia", n.Name, "falls back to the first network")

	_, ok = Config{}.ActiveNetwork()
	assert.False(t, ok)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("ETH_RPC_URL", "http://localhost:8545")
	t.Setenv("WALLET_LOGIN_SERVER", "https://auth.example")
	t.Setenv("WALLET_ASSETS_DB", "/tmp/assets.db")
	t.Setenv("WALLET_CONFIG_PATH", "/tmp/cfg.json")
	t.Setenv("WALLET_PRIVATE_KEY", "")
	t.Setenv("WALLET_TRANSFER_DELAY", "")
	require.NoError(t, os.Unsetenv("WALLET_TRANSFER_DELAY"))

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, env.TransferDelay)
	assert.Equal(t, "/tmp/cfg.json", env.Path())

	cfg := env.Apply(DefaultConfig())
	assert.Equal(t, "https://auth.example", cfg.LoginServer)
	assert.Equal(t, "/tmp/assets.db", cfg.AssetsDB)
	n, _ := cfg.ActiveNetwork()
	assert.Equal(t, "http://localhost:8545", n.RPCURL)
	assert.NotEqual(t, "http://localhost:8545", cfg.Networks[1].RPCURL)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	base := DefaultConfig()
	_ = Env{RPCURL: "http://localhost:8545"}.Apply(base)
	assert.Equal(t, DefaultConfig().Networks, base.Networks)
}

func TestApplyWithoutNetworks(t *testing.T) {
	cfg := Env{RPCURL: "http://localhost:8545"}.Apply(Config{})
	n, ok := cfg.ActiveNetwork()
	require.True(t, ok)
	assert.Equal(t, "http://localhost:8545", n.RPCURL)
}

func TestPrivateKeyOrPromptUsesEnv(t *testing.T) {
	key, err := Env{PrivateKey: "0xabc"}.PrivateKeyOrPrompt()
	require.NoError(t, err)
	assert.Equal(t, "0xabc", key)
}

func TestLoadEnvBadDelay(t *testing.T) {
	t.Setenv("WALLET_TRANSFER_DELAY", "soon")
	_, err := LoadEnv()
	assert.Error(t, err)
}
