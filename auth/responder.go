// Package auth answers wallet login challenges scanned from a QR code.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"scan-wallet-tui/scan"
	"scan-wallet-tui/session"
	"scan-wallet-tui/wallet"
)

// LoginPath is where signed challenges are posted, relative to the server base URL
const LoginPath = "/api/v1/auth/wallet"

// ErrAuth matches every login failure
var ErrAuth = errors.New("login using wallet failed")

// errRejected is the cause when the server answers with a falsy body
var errRejected = errors.New("server rejected the signature")

// Error is the single failure the responder reports. Err keeps the cause for
// logs; callers only need errors.Is(err, ErrAuth).
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", ErrAuth, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrAuth, e.Err}
}

type loginRequest struct {
	ID        string `json:"id"`
	Signature string `json:"signature"`
}

// Responder signs login challenges and posts them to the auth server
type Responder struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
	session *session.Context
}

type Option func(*Responder)

func WithHTTPClient(c *http.Client) Option {
	return func(r *Responder) {
		if c != nil {
			r.client = c
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(r *Responder) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithSession makes RespondToLogin hold the session's in-flight guard
func WithSession(s *session.Context) Option {
	return func(r *Responder) { r.session = s }
}

func NewResponder(baseURL string, opts ...Option) *Responder {
	r := &Responder{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RespondToLogin loads the wallet from privateKey, signs the challenge token
// and posts {id, signature} to the server. Any failure is an *Error.
func (r *Responder) RespondToLogin(ctx context.Context, login scan.Login, privateKey string) error {
	if r.session != nil {
		release, err := r.session.Begin("login")
		if err != nil {
			return err
		}
		defer release()
	}

	if err := r.respond(ctx, login, privateKey); err != nil {
		r.logger.Error("login failed", "id", login.ID, "err", err)
		return &Error{Err: err}
	}
	r.logger.Info("logged in", "id", login.ID)
	return nil
}

func (r *Responder) respond(ctx context.Context, login scan.Login, privateKey string) error {
	if r.baseURL == "" {
		return errors.New("no login server configured")
	}

	w, err := wallet.LoadFromPrivateKey(privateKey)
	if err != nil {
		return err
	}
	signature, err := w.SignMessage(login.Token)
	if err != nil {
		return fmt.Errorf("sign challenge: %w", err)
	}

	body, err := json.Marshal(loginRequest{ID: login.ID, Signature: signature})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+LoginPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("post challenge: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post challenge: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if !truthy(data) {
		return errRejected
	}
	return nil
}

// truthy reports whether a response body counts as success. JSON false, null,
// 0 and "" are falsy, as is an empty body. Anything else, including text that
// is not JSON, is truthy.
func truthy(body []byte) bool {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return true
	}
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}
