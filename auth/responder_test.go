package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scan-wallet-tui/scan"
	"scan-wallet-tui/session"
)

const (
	testKey     = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func authServer(t *testing.T, status int, body string, got *loginRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, LoginPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRespondToLogin(t *testing.T) {
	var got loginRequest
	srv := authServer(t, http.StatusOK, `{"ok":true}`, &got)

	r := NewResponder(srv.URL + "/")
	err := r.RespondToLogin(context.Background(), scan.Login{ID: "A", Token: "B"}, testKey)
	require.NoError(t, err)

	assert.Equal(t, "A", got.ID)
	sig, err := hexutil.Decode(got.Signature)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	sig[crypto.RecoveryIDOffset] -= 27
	pub, err := crypto.SigToPub(accounts.TextHash([]byte("B")), sig)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAddress), crypto.PubkeyToAddress(*pub))
}

func TestRespondToLoginEmptyToken(t *testing.T) {
	var got loginRequest
	srv := authServer(t, http.StatusOK, "true", &got)

	err := NewResponder(srv.URL).RespondToLogin(context.Background(), scan.Login{ID: "A"}, testKey)
	require.NoError(t, err)

	sig, err := hexutil.Decode(got.Signature)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] -= 27
	pub, err := crypto.SigToPub(accounts.TextHash([]byte("")), sig)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAddress), crypto.PubkeyToAddress(*pub))
}

func TestRespondToLoginFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		key    string
		token  string
	}{
		{name: "falsy body", status: http.StatusOK, body: "false", key: testKey, token: "B"},
		{name: "null body", status: http.StatusOK, body: "null", key: testKey, token: "B"},
		{name: "empty body", status: http.StatusOK, body: "", key: testKey, token: "B"},
		{name: "server error", status: http.StatusInternalServerError, body: `{"ok":true}`, key: testKey, token: "B"},
		{name: "bad key", status: http.StatusOK, body: "true", key: "0xnothex", token: "B"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := authServer(t, tc.status, tc.body, nil)
			err := NewResponder(srv.URL).RespondToLogin(context.Background(), scan.Login{ID: "A", Token: tc.token}, tc.key)
			require.ErrorIs(t, err, ErrAuth)
			var aerr *Error
			require.ErrorAs(t, err, &aerr)
			assert.Error(t, aerr.Err)
		})
	}
}

func TestRespondToLoginUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewResponder(url).RespondToLogin(context.Background(), scan.Login{ID: "A", Token: "B"}, testKey)
	assert.ErrorIs(t, err, ErrAuth)
}

func TestRespondToLoginNoServer(t *testing.T) {
	err := NewResponder("").RespondToLogin(context.Background(), scan.Login{ID: "A", Token: "B"}, testKey)
	assert.ErrorIs(t, err, ErrAuth)
}

func TestRespondToLoginBusy(t *testing.T) {
	srv := authServer(t, http.StatusOK, "true", nil)
	sess := session.New(nil, session.Network{})
	release, err := sess.Begin("send")
	require.NoError(t, err)
	defer release()

	err = NewResponder(srv.URL, WithSession(sess)).RespondToLogin(context.Background(), scan.Login{ID: "A", Token: "B"}, testKey)
	assert.ErrorIs(t, err, session.ErrBusy)
	assert.NotErrorIs(t, err, ErrAuth)
}

func TestTruthy(t *testing.T) {
	for body, want := range map[string]bool{
		"":            false,
		"  ":          false,
		"false":       false,
		"null":        false,
		"0":           false,
		`""`:          false,
		"true":        true,
		"1":           true,
		`"ok"`:        true,
		"{}":          true,
		"[]":          true,
		"logged in":   true,
		`{"token":1}`: true,
	} {
		assert.Equal(t, want, truthy([]byte(body)), "body %q", body)
	}
}
