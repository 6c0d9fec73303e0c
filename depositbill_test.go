package tonlaunch

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/tlb"
)

func TestDepositBillFromConfig(t *testing.T) {
	funding, user := testAddr(0x10), testAddr(0x20)
	code := testCode(0xb111)

	cfg := DepositBillConfig{
		Funding:         funding,
		TotalDeposited:  tlb.MustFromTON("99"),
		IndividualLimit: tlb.MustFromTON("100"),
		User:            user,
	}
	bill, err := DepositBillFromConfig(cfg, code, newFakeChain())
	require.NoError(t, err)

	t.Run("stores zero deposited", func(t *testing.T) {
		s := bill.StateInit().Data.BeginParse()
		a, err := s.LoadAddr()
		require.NoError(t, err)
		requireSameAddr(t, funding, a)
		assert.Equal(t, "0", s.MustLoadBigCoins().String())
		assert.Equal(t, "100000000000", s.MustLoadBigCoins().String())
		u, err := s.LoadAddr()
		require.NoError(t, err)
		requireSameAddr(t, user, u)
	})

	t.Run("address depends on user and limit", func(t *testing.T) {
		same, err := DepositBillFromConfig(cfg, code, nil)
		require.NoError(t, err)
		assert.True(t, sameAddr(bill.Address(), same.Address()))

		other := cfg
		other.User = testAddr(0x21)
		b2, err := DepositBillFromConfig(other, code, nil)
		require.NoError(t, err)
		assert.False(t, sameAddr(bill.Address(), b2.Address()))

		other = cfg
		other.IndividualLimit = tlb.MustFromTON("101")
		b3, err := DepositBillFromConfig(other, code, nil)
		require.NoError(t, err)
		assert.False(t, sameAddr(bill.Address(), b3.Address()))
	})

	t.Run("deploy", func(t *testing.T) {
		chain := newFakeChain()
		b, err := DepositBillFromConfig(cfg, code, chain)
		require.NoError(t, err)

		require.NoError(t, b.SendDeploy(context.Background(), chain, tlb.MustFromTON("0.05")))
		assert.NotNil(t, chain.lastSent(t).StateInit())
	})
}

func TestDepositBillGetters(t *testing.T) {
	ctx := context.Background()
	chain := newFakeChain()
	bill := NewDepositBill(testAddr(0x40), chain)
	funding, user := testAddr(0x10), testAddr(0x20)

	chain.returns(bill.Address(), "get_is_deposit_withdrawn", big.NewInt(-1))
	chain.returns(bill.Address(), "get_deposit_bill_balance", tlb.MustFromTON("0.01").Nano())
	chain.returns(bill.Address(), "get_deposit_bill_data",
		StackArgAddress(funding),
		tlb.MustFromTON("12").Nano(),
		tlb.MustFromTON("100").Nano(),
		StackArgAddress(user),
	)

	t.Run("withdrawn is false before deploy", func(t *testing.T) {
		withdrawn, err := bill.IsDepositWithdrawn(ctx)
		require.NoError(t, err)
		assert.False(t, withdrawn)
		assert.NotContains(t, chain.calls, "get_is_deposit_withdrawn")
	})

	chain.setActive(bill.Address(), nil)

	t.Run("withdrawn after deploy", func(t *testing.T) {
		withdrawn, err := bill.IsDepositWithdrawn(ctx)
		require.NoError(t, err)
		assert.True(t, withdrawn)
	})

	t.Run("bill data", func(t *testing.T) {
		d, err := bill.Data(ctx)
		require.NoError(t, err)
		requireSameAddr(t, funding, d.Funding)
		requireSameAddr(t, user, d.User)
		assert.Equal(t, "12000000000", nano(d.TotalDeposited))
		assert.Equal(t, "100000000000", nano(d.IndividualLimit))
	})

	t.Run("bill balance", func(t *testing.T) {
		bal, err := bill.BillBalance(ctx)
		require.NoError(t, err)
		assert.Equal(t, "10000000", nano(bal))
	})
}
