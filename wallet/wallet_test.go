package wallet

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hardhat's first development account.
const (
	testKey     = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

type fakeBackend struct {
	nonce   uint64
	sent    []*types.Transaction
	status  uint64
	sendErr error
}

func (f *fakeBackend) ChainID(context.Context) (*big.Int, error) { return big.NewInt(31337), nil }

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return f.nonce, nil
}

func (f *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 21000, nil
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeBackend) TransactionReceipt(_ context.Context, h common.Hash) (*types.Receipt, error) {
	for _, tx := range f.sent {
		if tx.Hash() == h {
			return &types.Receipt{TxHash: h, Status: f.status, BlockNumber: big.NewInt(7), GasUsed: 21000}, nil
		}
	}
	return nil, ethereum.NotFound
}

func (f *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return nil, nil
}

func TestLoadFromPrivateKey(t *testing.T) {
	w, err := LoadFromPrivateKey(testKey)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAddress), w.Address())
	assert.False(t, w.Connected())

	w2, err := LoadFromPrivateKey(testKey[2:])
	require.NoError(t, err)
	assert.Equal(t, w.Address(), w2.Address())
}

func TestLoadFromPrivateKey_Invalid(t *testing.T) {
	for _, key := range []string{"", "0x", "not-hex", "0x1234"} {
		_, err := LoadFromPrivateKey(key)
		assert.ErrorIs(t, err, ErrInvalidPrivateKey, "key %q", key)
	}
}

func TestSignMessage_Recoverable(t *testing.T) {
	w, err := LoadFromPrivateKey(testKey)
	require.NoError(t, err)

	sigHex, err := w.SignMessage("login-challenge-123")
	require.NoError(t, err)

	sig, err := hexutil.Decode(sigHex)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	assert.Contains(t, []byte{27, 28}, sig[64])

	sig[64] -= 27
	pub, err := crypto.SigToPub(accounts.TextHash([]byte("login-challenge-123")), sig)
	require.NoError(t, err)
	assert.Equal(t, w.Address(), crypto.PubkeyToAddress(*pub))

	sigHex, err = w.SignMessage("")
	require.NoError(t, err)
	sig, err = hexutil.Decode(sigHex)
	require.NoError(t, err)
	sig[64] -= 27
	pub, err = crypto.SigToPub(accounts.TextHash(nil), sig)
	require.NoError(t, err)
	assert.Equal(t, w.Address(), crypto.PubkeyToAddress(*pub))
}

func TestSendTransaction(t *testing.T) {
	w, err := LoadFromPrivateKey(testKey)
	require.NoError(t, err)

	backend := &fakeBackend{nonce: 4, status: types.ReceiptStatusSuccessful}
	to := common.HexToAddress("0x1111111111111111111111111111111111111111")

	receipt, err := w.Connect(backend).SendTransaction(context.Background(), to, big.NewInt(1000), nil)
	require.NoError(t, err)
	require.Len(t, backend.sent, 1)

	tx := backend.sent[0]
	assert.Equal(t, tx.Hash(), receipt.Hash)
	assert.Equal(t, uint64(4), receipt.Nonce)
	assert.Equal(t, to, *tx.To())
	assert.Equal(t, big.NewInt(1000), tx.Value())

	from, err := types.Sender(types.LatestSignerForChainID(big.NewInt(31337)), tx)
	require.NoError(t, err)
	assert.Equal(t, w.Address(), from)
}

func TestSendTransaction_Failures(t *testing.T) {
	w, err := LoadFromPrivateKey(testKey)
	require.NoError(t, err)
	to := common.HexToAddress("0x1111111111111111111111111111111111111111")
	ctx := context.Background()

	_, err = w.SendTransaction(ctx, to, big.NewInt(1), nil)
	assert.ErrorIs(t, err, ErrNoBackend)

	boom := errors.New("insufficient funds")
	_, err = w.Connect(&fakeBackend{sendErr: boom}).SendTransaction(ctx, to, big.NewInt(1), nil)
	assert.ErrorIs(t, err, boom)

	_, err = w.Connect(&fakeBackend{status: types.ReceiptStatusFailed}).SendTransaction(ctx, to, big.NewInt(1), nil)
	assert.ErrorIs(t, err, ErrReverted)
}
