package transfer

import (
	"context"
	"fmt"
	"strings"
)

// Request is one send action as typed by the user
type Request struct {
	To     string
	Amount string
}

// FormState is the transient input behind a send. The dispatcher resets it
// once the strategy settles.
type FormState interface {
	Request() Request
	Reset()
}

// Form is the plain FormState used by the TUI and CLI. Its fields are bound
// directly to form inputs.
type Form struct {
	To     string
	Amount string
	Symbol string
}

func (f *Form) Request() Request {
	return Request{To: strings.TrimSpace(f.To), Amount: strings.TrimSpace(f.Amount)}
}

func (f *Form) Reset() {
	f.To = ""
	f.Amount = ""
	f.Symbol = ""
}

// Confirmation is what the user is asked to approve
type Confirmation struct {
	Amount string
	Symbol string
	To     string
}

func (c Confirmation) String() string {
	return fmt.Sprintf("You are sending %s %s to %s", c.Amount, c.Symbol, c.To)
}

// Confirmer asks the user for a yes/no decision
type Confirmer interface {
	Confirm(ctx context.Context, c Confirmation) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, c Confirmation) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, c Confirmation) (bool, error) {
	return f(ctx, c)
}

// AlwaysConfirm approves every send
var AlwaysConfirm = ConfirmFunc(func(context.Context, Confirmation) (bool, error) { return true, nil })
