package tonlaunch

import (
	"context"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// DepositBillConfig is the storage of a per-investor deposit record.
type DepositBillConfig struct {
	Funding         *address.Address `tlb:"addr"`
	TotalDeposited  tlb.Coins        `tlb:"."`
	IndividualLimit tlb.Coins        `tlb:"."`
	User            *address.Address `tlb:"addr"`
}

// DepositBill tracks how much one investor deposited into a presale.
type DepositBill struct {
	*Contract
}

// NewDepositBill opens a deployed deposit bill.
func NewDepositBill(addr *address.Address, provider Provider, opts ...ContractOption) *DepositBill {
	return &DepositBill{Contract: NewContract(addr, provider, opts...)}
}

// DepositBillFromConfig derives the bill address for funding, user and limit.
// TotalDeposited in cfg is ignored and stored as zero.
func DepositBillFromConfig(cfg DepositBillConfig, code *cell.Cell, provider Provider, opts ...ContractOption) (*DepositBill, error) {
	cfg.TotalDeposited = tlb.ZeroCoins
	data, err := EncodeBody(&cfg)
	if err != nil {
		return nil, err
	}
	c, err := NewContractFromInit(code, data, provider, opts...)
	if err != nil {
		return nil, err
	}
	return &DepositBill{Contract: c}, nil
}

// SendDeploy deploys the bill with an empty body.
func (b *DepositBill) SendDeploy(ctx context.Context, via Sender, value tlb.Coins) error {
	msg, err := b.DeployMessage(value, nil)
	if err != nil {
		return err
	}
	return b.Send(ctx, via, msg)
}

// IsDepositWithdrawn reports whether the investor already withdrew.
// A bill that is not deployed yet reports false.
func (b *DepositBill) IsDepositWithdrawn(ctx context.Context) (bool, error) {
	deployed, err := b.IsDeployed(ctx)
	if err != nil || !deployed {
		return false, err
	}
	return b.getBool(ctx, "get_is_deposit_withdrawn")
}

// Data reads the bill through get_deposit_bill_data.
func (b *DepositBill) Data(ctx context.Context) (*DepositBillConfig, error) {
	st, err := b.RunGetMethod(ctx, "get_deposit_bill_data")
	if err != nil {
		return nil, err
	}

	d := new(DepositBillConfig)
	if d.Funding, err = st.ReadAddress(); err != nil {
		return nil, err
	}
	if d.TotalDeposited, err = st.ReadCoins(); err != nil {
		return nil, err
	}
	if d.IndividualLimit, err = st.ReadCoins(); err != nil {
		return nil, err
	}
	if d.User, err = st.ReadAddress(); err != nil {
		return nil, err
	}
	return d, nil
}

// BillBalance returns get_deposit_bill_balance.
func (b *DepositBill) BillBalance(ctx context.Context) (tlb.Coins, error) {
	return b.getCoins(ctx, "get_deposit_bill_balance")
}
