package transfer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"scan-wallet-tui/helpers"
	"scan-wallet-tui/session"
	"scan-wallet-tui/storage"
)

// DefaultDelay gives the loading indicator time to render before the send
const DefaultDelay = 250 * time.Millisecond

// StrategyFactory picks the strategy for an asset kind
type StrategyFactory func(kind AssetKind, w Wallet) Strategy

func defaultStrategy(kind AssetKind, w Wallet) Strategy { return kind.strategy(w) }

// Dispatcher validates, confirms and routes send actions
type Dispatcher struct {
	logger   *log.Logger
	delay    time.Duration
	session  *session.Context
	strategy StrategyFactory
}

type Option func(*Dispatcher)

func WithLogger(l *log.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

func WithDelay(delay time.Duration) Option {
	return func(d *Dispatcher) { d.delay = delay }
}

// WithSession makes Execute hold the session's in-flight guard
func WithSession(s *session.Context) Option {
	return func(d *Dispatcher) { d.session = s }
}

func WithStrategies(f StrategyFactory) Option {
	return func(d *Dispatcher) {
		if f != nil {
			d.strategy = f
		}
	}
}

func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger:   log.New(io.Discard),
		delay:    DefaultDelay,
		strategy: defaultStrategy,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Plan is a validated send waiting for confirmation
type Plan struct {
	ID      string
	Request Request
	Asset   storage.Asset
	Kind    AssetKind
	To      common.Address

	strategy Strategy
}

func (p *Plan) Confirmation() Confirmation {
	return Confirmation{Amount: p.Request.Amount, Symbol: p.Asset.Symbol, To: p.To.Hex()}
}

// Receipt reports a settled send. Hash and TxCount are only set for native
// transfers.
type Receipt struct {
	ActionID string
	Amount   string
	Symbol   string
	To       common.Address
	Native   bool
	Hash     *common.Hash
	TxCount  *uint64
}

func (r *Receipt) Message() string {
	msg := fmt.Sprintf("You sent %s %s to %s.", r.Amount, r.Symbol, r.To.Hex())
	if r.Hash != nil {
		msg += fmt.Sprintf(" Your confirmation code is %s.", r.Hash.Hex())
	}
	if r.TxCount != nil {
		msg += fmt.Sprintf(" So far your account has completed %d transactions.", *r.TxCount)
	}
	return msg
}

// Prepare validates req and selects the strategy for asset. Nothing is sent.
func (d *Dispatcher) Prepare(req Request, asset storage.Asset, w Wallet) (*Plan, error) {
	if req.To == "" || req.Amount == "" {
		return nil, newError(MissingFields, nil)
	}
	if !helpers.IsValidEthAddress(req.To) {
		return nil, newError(InvalidAddress, fmt.Errorf("%q", req.To))
	}
	kind, err := KindOf(asset)
	if err != nil {
		return nil, newError(ExecutionFailed, err)
	}
	return &Plan{
		ID:       uuid.NewString(),
		Request:  req,
		Asset:    asset,
		Kind:     kind,
		To:       common.HexToAddress(req.To),
		strategy: d.strategy(kind, w),
	}, nil
}

// Execute runs a prepared plan. It returns session.ErrBusy without touching
// the chain if another action holds the session.
func (d *Dispatcher) Execute(ctx context.Context, plan *Plan) (*Receipt, error) {
	receipt, _, err := d.execute(ctx, plan)
	return receipt, err
}

// execute reports whether the strategy ran, so callers know if the form
// has to be reset.
func (d *Dispatcher) execute(ctx context.Context, plan *Plan) (*Receipt, bool, error) {
	if d.session != nil {
		release, err := d.session.Begin("send")
		if err != nil {
			return nil, false, err
		}
		defer release()
	}

	logger := d.logger.With("action_id", plan.ID)
	logger.Info("sending", "asset", plan.Kind, "amount", plan.Request.Amount, "to", plan.To.Hex())

	if d.delay > 0 {
		t := time.NewTimer(d.delay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return nil, false, newError(ExecutionFailed, ctx.Err())
		}
	}

	out, err := plan.strategy.AttemptTransfer(ctx, plan.To, plan.Request.Amount)
	if err != nil {
		logger.Error("transfer failed", "err", err)
		return nil, true, newError(ExecutionFailed, err)
	}

	receipt := &Receipt{
		ActionID: plan.ID,
		Amount:   plan.Request.Amount,
		Symbol:   plan.Asset.Symbol,
		To:       plan.To,
	}
	if _, ok := plan.Kind.(Native); ok {
		receipt.Native = true
	}
	if out != nil {
		receipt.Hash = out.Hash
		if out.Nonce != nil {
			n := *out.Nonce + 1
			receipt.TxCount = &n
		}
	}
	logger.Info("transfer settled", "hash", receipt.Hash)
	return receipt, true, nil
}

// Dispatch runs one send from form: validate, confirm, execute. A declined
// confirmation returns (nil, nil). The form is reset exactly once after the
// strategy settles and is left as is on validation failure or decline.
func (d *Dispatcher) Dispatch(ctx context.Context, form FormState, asset storage.Asset, w Wallet, confirm Confirmer) (*Receipt, error) {
	plan, err := d.Prepare(form.Request(), asset, w)
	if err != nil {
		return nil, err
	}

	ok, err := confirm.Confirm(ctx, plan.Confirmation())
	if err != nil {
		return nil, fmt.Errorf("confirm: %w", err)
	}
	if !ok {
		d.logger.Debug("send declined", "action_id", plan.ID)
		return nil, nil
	}

	receipt, settled, err := d.execute(ctx, plan)
	if settled {
		form.Reset()
	}
	return receipt, err
}
