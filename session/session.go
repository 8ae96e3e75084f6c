// Package session holds the state shared between wallet screens for the
// lifetime of one app session.
//
// Mutation contract: only Accept writes the scanned target and the sending
// token name, and only TakeScan clears them. Wallet and Network are written by
// the shell on unlock and on network change. Begin guards scan, login and send
// actions so only one runs at a time.
package session

import (
	"errors"
	"fmt"
	"sync"

	"scan-wallet-tui/scan"
	"scan-wallet-tui/wallet"
)

var (
	// ErrBusy is returned when an action starts while another is in flight
	ErrBusy = errors.New("another action is in progress")

	// ErrInvalidScan is returned by Accept for an unclassifiable payload
	ErrInvalidScan = errors.New("invalid wallet address")
)

// Network describes the chain the wallet is talking to
type Network struct {
	Name    string
	Display string
	RPCURL  string
	ChainID int64
}

// Target is what the last scan pointed at
type Target struct {
	Address   string
	TokenName string // empty for a bare address scan
	Fields    []scan.Field
}

// Route tells the shell where to go after a scan is accepted
type Route int

const (
	RouteNone        Route = iota
	RouteLogin             // answer a login challenge
	RouteSelectToken       // pick which asset to send to the scanned address
	RouteTransfer          // open the transfer page for the scanned token
)

func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "login"
	case RouteSelectToken:
		return "select-token"
	case RouteTransfer:
		return "transfer"
	default:
		return "none"
	}
}

// Context is the process-wide session. The zero value is ready to use.
type Context struct {
	mu sync.Mutex

	wallet  *wallet.Wallet
	network Network

	scanned          *Target
	sendingTokenName string

	inFlight string
}

// New returns a session for w on network n
func New(w *wallet.Wallet, n Network) *Context {
	return &Context{wallet: w, network: n}
}

// Wallet returns the active wallet, nil while locked
func (c *Context) Wallet() *wallet.Wallet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wallet
}

// SetWallet replaces the active wallet
func (c *Context) SetWallet(w *wallet.Wallet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wallet = w
}

// Network returns the selected network
func (c *Context) Network() Network {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.network
}

// SetNetwork selects a network
func (c *Context) SetNetwork(n Network) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.network = n
}

// ScannedAddress returns the last accepted scan target, if any
func (c *Context) ScannedAddress() (Target, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scanned == nil {
		return Target{}, false
	}
	return *c.scanned, true
}

// SendingTokenName returns the token named by the last token scan
func (c *Context) SendingTokenName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sendingTokenName
}

// TakeScan returns and clears the scanned target and sending token name.
// The transfer page calls it once when prefilling its form.
func (c *Context) TakeScan() (Target, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scanned == nil {
		return Target{}, false
	}
	t := *c.scanned
	c.scanned = nil
	c.sendingTokenName = ""
	return t, true
}

// Accept records a classified payload and returns where the shell should go.
// Login payloads leave the session untouched. Invalid payloads return an
// error wrapping ErrInvalidScan and the classifier's reason.
func (c *Context) Accept(p scan.Payload) (Route, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight != "" {
		return RouteNone, fmt.Errorf("%w: %s", ErrBusy, c.inFlight)
	}

	switch p := p.(type) {
	case scan.Login:
		return RouteLogin, nil
	case scan.Address:
		c.scanned = &Target{Address: p.Address}
		c.sendingTokenName = ""
		return RouteSelectToken, nil
	case scan.Token:
		c.scanned = &Target{Address: p.Address, TokenName: p.Name, Fields: p.Fields}
		c.sendingTokenName = p.Name
		return RouteTransfer, nil
	case scan.Invalid:
		return RouteNone, fmt.Errorf("%w: %w", ErrInvalidScan, p)
	default:
		return RouteNone, fmt.Errorf("%w: unknown payload %T", ErrInvalidScan, p)
	}
}

// Begin marks action as in flight. The returned release func must be called
// once the action settles; calling it more than once is harmless.
func (c *Context) Begin(action string) (release func(), err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight != "" {
		return nil, fmt.Errorf("%w: %s", ErrBusy, c.inFlight)
	}
	c.inFlight = action

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			c.inFlight = ""
			c.mu.Unlock()
		})
	}, nil
}

// InFlight returns the running action, or "" when idle
func (c *Context) InFlight() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}
