package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"scan-wallet-tui/auth"
	"scan-wallet-tui/config"
	"scan-wallet-tui/rpc"
	"scan-wallet-tui/session"
	"scan-wallet-tui/storage"
	"scan-wallet-tui/transfer"
	"scan-wallet-tui/wallet"
)

// app wires config, storage, wallet and session for both the TUI and the CLI
type app struct {
	env     config.Env
	cfg     config.Config
	cfgPath string

	store      *storage.Store
	wallet     *wallet.Wallet
	privateKey string
	session    *session.Context
	client     *rpc.Client

	logger *log.Logger
}

// newApp loads config and opens the asset store. When needKey is set a
// missing private key is an error, otherwise the app runs read-only.
func newApp(ctx context.Context, logger *log.Logger, needKey bool) (*app, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	cfgPath := env.Path()
	cfg := env.Apply(config.LoadOrCreate(cfgPath))

	store, err := storage.Open(ctx, cfg.AssetsDB)
	if err != nil {
		return nil, err
	}

	a := &app{
		env:     env,
		cfg:     cfg,
		cfgPath: cfgPath,
		store:   store,
		logger:  logger,
	}
	network, _ := cfg.ActiveNetwork()
	a.session = session.New(nil, sessionNetwork(network))

	key, err := env.PrivateKeyOrPrompt()
	switch {
	case err == nil:
		w, err := wallet.LoadFromPrivateKey(key)
		if err != nil {
			store.Close()
			return nil, err
		}
		a.wallet = w
		a.privateKey = key
		a.session.SetWallet(w)
		logger.Debug("wallet loaded", "address", w.Address().Hex())
	case needKey || !errors.Is(err, config.ErrNoTerminal):
		store.Close()
		return nil, err
	default:
		logger.Warn("no private key, running read-only")
	}

	return a, nil
}

func sessionNetwork(n config.Network) session.Network {
	return session.Network{Name: n.Name, Display: n.Display, RPCURL: n.RPCURL, ChainID: n.ChainID}
}

// connect dials the active network and attaches the wallet to it
func (a *app) connect() error {
	n := a.session.Network()
	if n.RPCURL == "" {
		return fmt.Errorf("network %q has no RPC URL", n.Name)
	}
	res := rpc.Connect(n.RPCURL)
	if res.Error != nil {
		return fmt.Errorf("connect %s: %w", n.Name, res.Error)
	}
	a.attach(res.Client)
	return nil
}

func (a *app) attach(c *rpc.Client) {
	if a.client != nil && a.client != c {
		a.client.Close()
	}
	a.client = c
	if a.wallet != nil && c != nil {
		a.session.SetWallet(a.wallet.Connect(c.Client))
	}
}

func (a *app) dispatcher() *transfer.Dispatcher {
	return transfer.NewDispatcher(
		transfer.WithLogger(a.logger),
		transfer.WithDelay(a.env.TransferDelay),
		transfer.WithSession(a.session),
	)
}

func (a *app) responder() *auth.Responder {
	return auth.NewResponder(a.cfg.LoginServer,
		auth.WithLogger(a.logger),
		auth.WithSession(a.session),
	)
}

// saveConfig persists cfg without the environment overlay
func (a *app) saveConfig() error {
	onDisk := config.LoadOrCreate(a.cfgPath)
	onDisk.Logger = a.cfg.Logger
	if n, ok := a.cfg.ActiveNetwork(); ok {
		onDisk.SetActive(n.Name)
	}
	return config.Save(a.cfgPath, onDisk)
}

func (a *app) Close() {
	if a.client != nil {
		a.client.Close()
	}
	if a.store != nil {
		a.store.Close()
	}
}

// logBuffer collects log output for the TUI log panel. Commands log from
// their own goroutines, so writes are locked.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newStderrLogger(verbose bool) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}
