package contract

import (
	"bytes"
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scan-wallet-tui/wallet"
)

type recordingSender struct {
	to    common.Address
	value *big.Int
	data  []byte
}

func (r *recordingSender) Address() common.Address {
	return common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
}

func (r *recordingSender) SendTransaction(_ context.Context, to common.Address, value *big.Int, data []byte) (*wallet.Receipt, error) {
	r.to, r.value, r.data = to, value, data
	return &wallet.Receipt{Nonce: 1}, nil
}

var (
	usdt      = common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
	recipient = common.HexToAddress("0x1111111111111111111111111111111111111111")
)

func TestTransfer_EncodesERC20Call(t *testing.T) {
	sender := &recordingSender{}
	tok, err := New(sender, usdt, "ERC20")
	require.NoError(t, err)

	_, err = tok.Transfer(context.Background(), recipient, big.NewInt(2500000))
	require.NoError(t, err)

	assert.Equal(t, usdt, sender.to)
	assert.Equal(t, 0, sender.value.Sign())
	require.Len(t, sender.data, 4+32+32)
	assert.True(t, bytes.Equal(sender.data[:4], []byte{0xa9, 0x05, 0x9c, 0xbb}), "selector %x", sender.data[:4])
	assert.Equal(t, common.LeftPadBytes(recipient.Bytes(), 32), sender.data[4:36])
	assert.Equal(t, big.NewInt(2500000), new(big.Int).SetBytes(sender.data[36:]))
}

func TestNew_Rejects(t *testing.T) {
	_, err := New(&recordingSender{}, usdt, "erc721")
	assert.ErrorIs(t, err, ErrUnsupportedTokenType)

	_, err = New(&recordingSender{}, common.Address{}, "erc20")
	assert.ErrorIs(t, err, ErrZeroAddress)
}

func TestSupported(t *testing.T) {
	for _, typ := range []string{"erc20", "ERC20", "erc-20", " BEP20 ", "token"} {
		assert.True(t, Supported(typ), typ)
	}
	assert.False(t, Supported(""))
	assert.False(t, Supported("erc1155"))
}

func TestPackTransfer_ZeroRecipient(t *testing.T) {
	tok, err := New(&recordingSender{}, usdt, "erc20")
	require.NoError(t, err)
	_, err = tok.PackTransfer(common.Address{}, big.NewInt(1))
	assert.ErrorIs(t, err, ErrZeroAddress)
}
