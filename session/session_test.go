package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scan-wallet-tui/scan"
)

func TestAccept_Address(t *testing.T) {
	c := New(nil, Network{Name: "sepolia", ChainID: 11155111})

	route, err := c.Accept(scan.Classify("0x1111111111111111111111111111111111111111"))
	require.NoError(t, err)
	assert.Equal(t, RouteSelectToken, route)

	target, ok := c.ScannedAddress()
	require.True(t, ok)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", target.Address)
	assert.Empty(t, target.TokenName)
	assert.Empty(t, c.SendingTokenName())
}

func TestAccept_Token(t *testing.T) {
	c := &Context{}

	route, err := c.Accept(scan.Classify("usdc:0x2222222222222222222222222222222222222222,amount:5"))
	require.NoError(t, err)
	assert.Equal(t, RouteTransfer, route)
	assert.Equal(t, "usdc", c.SendingTokenName())

	target, ok := c.TakeScan()
	require.True(t, ok)
	assert.Equal(t, "0x2222222222222222222222222222222222222222", target.Address)
	assert.Len(t, target.Fields, 2)

	_, ok = c.ScannedAddress()
	assert.False(t, ok)
	assert.Empty(t, c.SendingTokenName())
}

func TestAccept_LoginDoesNotMutate(t *testing.T) {
	c := &Context{}
	_, err := c.Accept(scan.Classify("eth:0x01"))
	require.NoError(t, err)

	route, err := c.Accept(scan.Classify(`{"action":"login","id":"1","token":"t"}`))
	require.NoError(t, err)
	assert.Equal(t, RouteLogin, route)

	target, ok := c.ScannedAddress()
	require.True(t, ok)
	assert.Equal(t, "0x01", target.Address)
}

func TestAccept_Invalid(t *testing.T) {
	c := &Context{}
	route, err := c.Accept(scan.Classify("nonsense"))
	assert.Equal(t, RouteNone, route)
	assert.ErrorIs(t, err, ErrInvalidScan)
	assert.ErrorIs(t, err, scan.ErrMissingSeparator)

	_, ok := c.ScannedAddress()
	assert.False(t, ok)
}

func TestBegin_RejectsSecondAction(t *testing.T) {
	c := &Context{}

	release, err := c.Begin("send")
	require.NoError(t, err)
	assert.Equal(t, "send", c.InFlight())

	_, err = c.Begin("login")
	assert.ErrorIs(t, err, ErrBusy)

	_, err = c.Accept(scan.Classify("0x01"))
	assert.ErrorIs(t, err, ErrBusy)

	release()
	release()
	assert.Empty(t, c.InFlight())

	release2, err := c.Begin("login")
	require.NoError(t, err)
	release2()
}

func TestSetters(t *testing.T) {
	c := &Context{}
	c.SetNetwork(Network{Name: "mainnet", ChainID: 1})
	assert.Equal(t, int64(1), c.Network().ChainID)
	assert.Nil(t, c.Wallet())
	assert.Equal(t, "transfer", RouteTransfer.String())
}
