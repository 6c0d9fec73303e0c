package tonlaunch

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

func TestJettonMasterFromConfig(t *testing.T) {
	cfg := &JettonMasterConfig{
		TotalSupply: tlb.ZeroCoins,
		Admin:       testAddr(1),
		Content:     cell.BeginCell().MustStoreUInt(1, 8).EndCell(),
		WalletCode:  testCode(0x3a11e7),
	}
	chain := newFakeChain()
	master, err := JettonMasterFromConfig(cfg, testCode(0x8a57e2), chain)
	require.NoError(t, err)

	s := master.StateInit().Data.BeginParse()
	assert.Equal(t, "0", s.MustLoadBigCoins().String())
	admin, err := s.LoadAddr()
	require.NoError(t, err)
	requireSameAddr(t, cfg.Admin, admin)
	assert.Equal(t, 2, int(master.StateInit().Data.RefsNum()))

	require.NoError(t, master.SendDeploy(context.Background(), chain, tlb.MustFromTON("0.05")))
	assert.NotNil(t, chain.lastSent(t).StateInit())
}

func TestJettonMint(t *testing.T) {
	master := NewJettonMaster(testAddr(0x50), newFakeChain())
	to := testAddr(0x51)

	t.Run("layout", func(t *testing.T) {
		msg, err := master.MintMessage(to, tlb.MustFromTON("1000.23"), tlb.MustFromTON("0.05"), tlb.MustFromTON("1"))
		require.NoError(t, err)

		assert.Equal(t, OpJettonMint, msg.Op())
		assert.Equal(t, "1015000000", nano(msg.Value()))

		s := msg.Body().BeginParse()
		assert.Equal(t, uint64(21), s.MustLoadUInt(32))
		assert.Equal(t, uint64(0), s.MustLoadUInt(64))
		dst, err := s.LoadAddr()
		require.NoError(t, err)
		requireSameAddr(t, to, dst)
		assert.Equal(t, "1000000000", s.MustLoadBigCoins().String())
		assert.Equal(t, "1000230000000", s.MustLoadBigCoins().String())

		inner, err := s.LoadRef()
		require.NoError(t, err)
		assert.Equal(t, uint64(OpJettonInternalTransfer), inner.MustLoadUInt(32))
		assert.Equal(t, uint64(0), inner.MustLoadUInt(64))
		assert.Equal(t, "1000230000000", inner.MustLoadBigCoins().String())
		from, err := inner.LoadAddr()
		require.NoError(t, err)
		assert.Equal(t, address.NoneAddress, from.Type())
		resp, err := inner.LoadAddr()
		require.NoError(t, err)
		requireSameAddr(t, master.Address(), resp)
		assert.Equal(t, "50000000", inner.MustLoadBigCoins().String())
		assert.False(t, inner.MustLoadBoolBit())
	})

	t.Run("total must exceed forward", func(t *testing.T) {
		_, err := master.MintMessage(to, tlb.MustFromTON("1"), tlb.MustFromTON("1"), tlb.MustFromTON("1"))
		assert.ErrorIs(t, err, ErrMintAmount)

		_, err = master.MintMessage(to, tlb.MustFromTON("1"), tlb.MustFromTON("2"), tlb.MustFromTON("1"))
		assert.ErrorIs(t, err, ErrMintAmount)
	})

	t.Run("send", func(t *testing.T) {
		chain := newFakeChain()
		m := NewJettonMaster(testAddr(0x50), chain)
		require.NoError(t, m.SendMint(context.Background(), chain, to, tlb.MustFromTON("5"), tlb.MustFromTON("0.05"), tlb.MustFromTON("1")))
		assert.Equal(t, OpJettonMint, chain.lastSent(t).Op())
	})
}

func TestJettonMasterAdminMessages(t *testing.T) {
	master := NewJettonMaster(testAddr(0x50), newFakeChain())
	owner := testAddr(0x52)

	t.Run("discovery", func(t *testing.T) {
		msg := master.DiscoveryMessage(owner, true)
		assert.Equal(t, "100000000", nano(msg.Value()))

		_, v, err := DecodeBody(msg.Body())
		require.NoError(t, err)
		req := v.(*JettonProvideWalletAddressMsg)
		requireSameAddr(t, owner, req.Owner)
		assert.True(t, req.IncludeAddress)
	})

	t.Run("change admin", func(t *testing.T) {
		msg := master.ChangeAdminMessage(owner)
		assert.Equal(t, "50000000", nano(msg.Value()))
		assert.Equal(t, OpJettonChangeAdmin, msg.Op())
		assert.Equal(t, uint(32+64+267), msg.Body().BitsSize())
	})

	t.Run("change content", func(t *testing.T) {
		content := cell.BeginCell().MustStoreUInt(0x01, 8).MustStoreStringSnake("https://example.org/jetton.json").EndCell()
		msg, err := master.ChangeContentMessage(content)
		require.NoError(t, err)
		assert.Equal(t, "50000000", nano(msg.Value()))

		s := msg.Body().BeginParse()
		assert.Equal(t, uint64(4), s.MustLoadUInt(32))
		assert.Equal(t, uint64(0), s.MustLoadUInt(64))
		ref, err := s.LoadRefCell()
		require.NoError(t, err)
		assert.Equal(t, content.Hash(), ref.Hash())
	})
}

func TestJettonMasterGetters(t *testing.T) {
	ctx := context.Background()
	chain := newFakeChain()
	master := NewJettonMaster(testAddr(0x50), chain)
	admin, owner, wallet := testAddr(0x52), testAddr(0x53), testAddr(0x54)
	content, walletCode := testCode(0xc0), testCode(0xc1)

	chain.returns(master.Address(), "get_jetton_data",
		tlb.MustFromTON("888888888").Nano(),
		big.NewInt(-1),
		StackArgAddress(admin),
		content,
		walletCode,
	)
	chain.handle(master.Address(), "get_wallet_address", func(args []any) ([]any, error) {
		got, err := args[0].(*cell.Slice).LoadAddr()
		require.NoError(t, err)
		requireSameAddr(t, owner, got)
		return []any{StackArgAddress(wallet)}, nil
	})

	d, err := master.JettonData(ctx)
	require.NoError(t, err)
	assert.True(t, d.Mintable)
	assert.Equal(t, "888888888000000000", nano(d.TotalSupply))
	assert.Equal(t, walletCode.Hash(), d.WalletCode.Hash())

	supply, err := master.TotalSupply(ctx)
	require.NoError(t, err)
	assert.Equal(t, nano(d.TotalSupply), nano(supply))

	a, err := master.AdminAddress(ctx)
	require.NoError(t, err)
	requireSameAddr(t, admin, a)

	c, err := master.Content(ctx)
	require.NoError(t, err)
	assert.Equal(t, content.Hash(), c.Hash())

	w, err := master.Wallet(ctx, owner)
	require.NoError(t, err)
	requireSameAddr(t, wallet, w.Address())
}

func TestJettonWalletMessages(t *testing.T) {
	w := NewJettonWallet(testAddr(0x60), newFakeChain())
	dst, resp := testAddr(0x61), testAddr(0x62)

	t.Run("transfer", func(t *testing.T) {
		fwd := cell.BeginCell().MustStoreUInt(0, 32).MustStoreStringSnake("hi").EndCell()
		msg, err := w.TransferMessage(tlb.MustFromTON("0.1"), JettonTransfer{
			QueryID:             7,
			Amount:              tlb.MustFromTON("4000"),
			Destination:         dst,
			ResponseDestination: resp,
			ForwardTonAmount:    tlb.MustFromTON("0.05"),
			ForwardPayload:      fwd,
		})
		require.NoError(t, err)
		assert.Equal(t, OpJettonTransfer, msg.Op())

		_, v, err := DecodeBody(msg.Body())
		require.NoError(t, err)
		tr := v.(*JettonTransferMsg)
		assert.Equal(t, uint64(7), tr.QueryID)
		assert.Equal(t, "4000000000000", nano(tr.Amount))
		requireSameAddr(t, dst, tr.Destination)
		requireSameAddr(t, resp, tr.ResponseDestination)
		assert.Nil(t, tr.CustomPayload)
		assert.Equal(t, "50000000", nano(tr.ForwardTonAmount))
		require.NotNil(t, tr.ForwardPayload)
		assert.Equal(t, fwd.Hash(), tr.ForwardPayload.Hash())
	})

	t.Run("burn", func(t *testing.T) {
		msg, err := w.BurnMessage(tlb.MustFromTON("0.1"), 3, tlb.MustFromTON("1"), resp, nil)
		require.NoError(t, err)

		s := msg.Body().BeginParse()
		assert.Equal(t, uint64(OpJettonBurn), s.MustLoadUInt(32))
		assert.Equal(t, uint64(3), s.MustLoadUInt(64))
		assert.Equal(t, "1000000000", s.MustLoadBigCoins().String())
		r, err := s.LoadAddr()
		require.NoError(t, err)
		requireSameAddr(t, resp, r)
		assert.False(t, s.MustLoadBoolBit())
		assert.Equal(t, 0, int(s.BitsLeft()))
	})

	t.Run("send", func(t *testing.T) {
		chain := newFakeChain()
		jw := NewJettonWallet(testAddr(0x60), chain)
		require.NoError(t, jw.SendBurn(context.Background(), chain, tlb.MustFromTON("0.1"), 0, tlb.MustFromTON("1"), resp, nil))
		assert.Equal(t, OpJettonBurn, chain.lastSent(t).Op())
	})
}

func TestJettonWalletBalance(t *testing.T) {
	ctx := context.Background()
	chain := newFakeChain()
	w := NewJettonWallet(testAddr(0x60), chain)
	owner, master := testAddr(0x61), testAddr(0x50)

	chain.returns(w.Address(), "get_wallet_data",
		tlb.MustFromTON("4000").Nano(),
		StackArgAddress(owner),
		StackArgAddress(master),
		testCode(0xc1),
	)

	t.Run("zero before deploy", func(t *testing.T) {
		bal, err := w.JettonBalance(ctx)
		require.NoError(t, err)
		assert.Equal(t, "0", nano(bal))
		assert.NotContains(t, chain.calls, "get_wallet_data")
	})

	chain.setActive(w.Address(), nil)

	t.Run("reads wallet data", func(t *testing.T) {
		bal, err := w.JettonBalance(ctx)
		require.NoError(t, err)
		assert.Equal(t, "4000000000000", nano(bal))

		d, err := w.Data(ctx)
		require.NoError(t, err)
		requireSameAddr(t, owner, d.Owner)
		requireSameAddr(t, master, d.Master)
	})
}

func TestJettonBurnNotificationDecode(t *testing.T) {
	sender, resp := testAddr(0x70), testAddr(0x71)
	body := cell.BeginCell().
		MustStoreUInt(uint64(OpJettonBurnNotification), 32).
		MustStoreUInt(1, 64).
		MustStoreCoins(10).
		MustStoreAddr(sender).
		MustStoreAddr(resp).
		EndCell()

	_, v, err := DecodeBody(body)
	require.NoError(t, err)
	n := v.(*JettonBurnNotification)
	assert.Equal(t, "10", nano(n.Amount))
	requireSameAddr(t, sender, n.Sender)
	requireSameAddr(t, resp, n.ResponseAddress)
}
