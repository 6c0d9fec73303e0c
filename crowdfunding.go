package tonlaunch

import (
	"context"
	"fmt"
	"math"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
	"golang.org/x/sync/errgroup"
)

// FundraisingHalted is the get_fundraising_status value while soft halt is on.
const FundraisingHalted int64 = -1

// CrowdFundingConfig is the presale storage layout.
type CrowdFundingConfig struct {
	Admin               *address.Address `tlb:"addr"`
	Jetton              *address.Address `tlb:"addr"`
	StartTime           uint64           `tlb:"## 64"`
	EndTime             uint64           `tlb:"## 64"`
	IndividualLimit     tlb.Coins        `tlb:"."`
	SoftCap             tlb.Coins        `tlb:"."`
	TotalCapRaised      tlb.Coins        `tlb:"."`
	TokensForPresale    tlb.Coins        `tlb:"."`
	LiquidityPercent    uint16           `tlb:"## 16"`
	LiquidityWithdrawn  uint8            `tlb:"## 8"`
	CommissionWithdrawn uint8            `tlb:"## 8"`
	SoftHalt            uint8            `tlb:"## 8"`
	JettonWalletCode    *cell.Cell       `tlb:"^"`
	BillCode            *cell.Cell       `tlb:"^"`
}

// DecodeCrowdFundingData parses a presale data cell.
func DecodeCrowdFundingData(data *cell.Cell) (*CrowdFundingConfig, error) {
	cfg := new(CrowdFundingConfig)
	if err := DecodeInto(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Presale request bodies. None of them carry a query_id.
type (
	DepositMsg struct {
		_ tlb.Magic `tlb:"#95db9d39"`
	}

	ChangeAdminMsg struct {
		_        tlb.Magic        `tlb:"#d4deb03b"`
		NewAdmin *address.Address `tlb:"addr"`
	}

	WithdrawCommissionMsg struct {
		_        tlb.Magic        `tlb:"#fe83b4df"`
		Platform *address.Address `tlb:"addr"`
	}

	WithdrawLiquidityMsg struct {
		_ tlb.Magic `tlb:"#996df920"`
	}

	TxToProjectOwnerMsg struct {
		_       tlb.Magic        `tlb:"#a63d3f48"`
		Creator *address.Address `tlb:"addr"`
	}

	InvestorWithdrawalReqMsg struct {
		_ tlb.Magic `tlb:"#0f018569"`
	}

	JettonClaimReqMsg struct {
		_ tlb.Magic `tlb:"#b3a4e170"`
	}

	ActivateSoftHaltMsg struct {
		_ tlb.Magic `tlb:"#d42a7a18"`
	}

	DeactivateSoftHaltMsg struct {
		_ tlb.Magic `tlb:"#880b221a"`
	}

	AdminJettonWithdrawalMsg struct {
		_      tlb.Magic        `tlb:"#815f97ee"`
		To     *address.Address `tlb:"addr"`
		Amount tlb.Coins        `tlb:"."`
	}

	AdminTonWithdrawalMsg struct {
		_      tlb.Magic        `tlb:"#7c71b911"`
		To     *address.Address `tlb:"addr"`
		Amount tlb.Coins        `tlb:"."`
	}

	ExtendTimeMsg struct {
		_       tlb.Magic `tlb:"#26a1174b"`
		NewTime uint64    `tlb:"## 64"`
	}
)

// CrowdFunding is a presale contract.
type CrowdFunding struct {
	*Contract
}

// NewCrowdFunding opens a deployed presale.
func NewCrowdFunding(addr *address.Address, provider Provider, opts ...ContractOption) *CrowdFunding {
	return &CrowdFunding{Contract: NewContract(addr, provider, opts...)}
}

// CrowdFundingFromConfig derives a presale address from its initial storage.
func CrowdFundingFromConfig(cfg *CrowdFundingConfig, code *cell.Cell, provider Provider, opts ...ContractOption) (*CrowdFunding, error) {
	data, err := EncodeBody(cfg)
	if err != nil {
		return nil, err
	}
	c, err := NewContractFromInit(code, data, provider, opts...)
	if err != nil {
		return nil, err
	}
	return &CrowdFunding{Contract: c}, nil
}

// SendDeploy deploys the presale with an empty body.
func (c *CrowdFunding) SendDeploy(ctx context.Context, via Sender, value tlb.Coins) error {
	msg, err := c.DeployMessage(value, nil)
	if err != nil {
		return err
	}
	return c.Send(ctx, via, msg)
}

func (c *CrowdFunding) message(value tlb.Coins, body any) *Message {
	return c.Message(value, MustEncodeBody(body))
}

// DepositMessage builds an investor deposit. The deposited amount is value.
func (c *CrowdFunding) DepositMessage(value tlb.Coins) *Message {
	return c.message(value, &DepositMsg{})
}

// ChangeAdminMessage hands presale administration to newAdmin.
func (c *CrowdFunding) ChangeAdminMessage(value tlb.Coins, newAdmin *address.Address) *Message {
	return c.message(value, &ChangeAdminMsg{NewAdmin: newAdmin})
}

// WithdrawCommissionMessage pays the platform commission to platform.
func (c *CrowdFunding) WithdrawCommissionMessage(value tlb.Coins, platform *address.Address) *Message {
	return c.message(value, &WithdrawCommissionMsg{Platform: platform})
}

// WithdrawLiquidityMessage releases the liquidity allocation.
func (c *CrowdFunding) WithdrawLiquidityMessage(value tlb.Coins) *Message {
	return c.message(value, &WithdrawLiquidityMsg{})
}

// TxToProjectOwnerMessage sends the raised funds to creator.
func (c *CrowdFunding) TxToProjectOwnerMessage(value tlb.Coins, creator *address.Address) *Message {
	return c.message(value, &TxToProjectOwnerMsg{Creator: creator})
}

// InvestorWithdrawalMessage requests a refund of the sender's deposit.
func (c *CrowdFunding) InvestorWithdrawalMessage(value tlb.Coins) *Message {
	return c.message(value, &InvestorWithdrawalReqMsg{})
}

// JettonClaimMessage requests the sender's jetton allocation.
func (c *CrowdFunding) JettonClaimMessage(value tlb.Coins) *Message {
	return c.message(value, &JettonClaimReqMsg{})
}

// SoftHaltMessage activates or deactivates soft halt.
func (c *CrowdFunding) SoftHaltMessage(value tlb.Coins, halt bool) *Message {
	if halt {
		return c.message(value, &ActivateSoftHaltMsg{})
	}
	return c.message(value, &DeactivateSoftHaltMsg{})
}

// AdminJettonWithdrawalMessage moves jettons held by the presale to to.
func (c *CrowdFunding) AdminJettonWithdrawalMessage(value tlb.Coins, to *address.Address, amount tlb.Coins) *Message {
	return c.message(value, &AdminJettonWithdrawalMsg{To: to, Amount: amount})
}

// AdminTonWithdrawalMessage moves TON held by the presale to to.
func (c *CrowdFunding) AdminTonWithdrawalMessage(value tlb.Coins, to *address.Address, amount tlb.Coins) *Message {
	return c.message(value, &AdminTonWithdrawalMsg{To: to, Amount: amount})
}

// ExtendTimeMessage moves the presale end time to newTime (unix seconds).
func (c *CrowdFunding) ExtendTimeMessage(value tlb.Coins, newTime uint64) *Message {
	return c.message(value, &ExtendTimeMsg{NewTime: newTime})
}

func (c *CrowdFunding) SendDeposit(ctx context.Context, via Sender, value tlb.Coins) error {
	return c.Send(ctx, via, c.DepositMessage(value))
}

func (c *CrowdFunding) SendChangeAdmin(ctx context.Context, via Sender, value tlb.Coins, newAdmin *address.Address) error {
	return c.Send(ctx, via, c.ChangeAdminMessage(value, newAdmin))
}

func (c *CrowdFunding) SendWithdrawCommission(ctx context.Context, via Sender, value tlb.Coins, platform *address.Address) error {
	return c.Send(ctx, via, c.WithdrawCommissionMessage(value, platform))
}

func (c *CrowdFunding) SendWithdrawLiquidity(ctx context.Context, via Sender, value tlb.Coins) error {
	return c.Send(ctx, via, c.WithdrawLiquidityMessage(value))
}

func (c *CrowdFunding) SendTxToProjectOwner(ctx context.Context, via Sender, value tlb.Coins, creator *address.Address) error {
	return c.Send(ctx, via, c.TxToProjectOwnerMessage(value, creator))
}

func (c *CrowdFunding) SendInvestorWithdrawal(ctx context.Context, via Sender, value tlb.Coins) error {
	return c.Send(ctx, via, c.InvestorWithdrawalMessage(value))
}

func (c *CrowdFunding) SendJettonClaim(ctx context.Context, via Sender, value tlb.Coins) error {
	return c.Send(ctx, via, c.JettonClaimMessage(value))
}

func (c *CrowdFunding) SendSoftHalt(ctx context.Context, via Sender, value tlb.Coins, halt bool) error {
	return c.Send(ctx, via, c.SoftHaltMessage(value, halt))
}

func (c *CrowdFunding) SendAdminJettonWithdrawal(ctx context.Context, via Sender, value tlb.Coins, to *address.Address, amount tlb.Coins) error {
	return c.Send(ctx, via, c.AdminJettonWithdrawalMessage(value, to, amount))
}

func (c *CrowdFunding) SendAdminTonWithdrawal(ctx context.Context, via Sender, value tlb.Coins, to *address.Address, amount tlb.Coins) error {
	return c.Send(ctx, via, c.AdminTonWithdrawalMessage(value, to, amount))
}

func (c *CrowdFunding) SendExtendTime(ctx context.Context, via Sender, value tlb.Coins, newTime uint64) error {
	return c.Send(ctx, via, c.ExtendTimeMessage(value, newTime))
}

// PresalePublicData is the result of get_public_data.
type PresalePublicData struct {
	Jetton           *address.Address
	StartTime        uint64
	EndTime          uint64
	IndividualLimit  tlb.Coins
	SoftCap          tlb.Coins
	TotalCapRaised   tlb.Coins
	TokensForPresale tlb.Coins
	LiquidityPercent uint16
}

// PublicData reads the presale parameters.
func (c *CrowdFunding) PublicData(ctx context.Context) (*PresalePublicData, error) {
	st, err := c.RunGetMethod(ctx, "get_public_data")
	if err != nil {
		return nil, err
	}

	d := new(PresalePublicData)
	if d.Jetton, err = st.ReadAddress(); err != nil {
		return nil, err
	}
	if d.StartTime, err = st.ReadUint64(); err != nil {
		return nil, err
	}
	if d.EndTime, err = st.ReadUint64(); err != nil {
		return nil, err
	}
	if d.IndividualLimit, err = st.ReadCoins(); err != nil {
		return nil, err
	}
	if d.SoftCap, err = st.ReadCoins(); err != nil {
		return nil, err
	}
	if d.TotalCapRaised, err = st.ReadCoins(); err != nil {
		return nil, err
	}
	if d.TokensForPresale, err = st.ReadCoins(); err != nil {
		return nil, err
	}
	pct, err := st.ReadUint64()
	if err != nil {
		return nil, err
	}
	if pct > math.MaxUint16 {
		return nil, &StackError{Method: st.Method(), Index: 7, Err: fmt.Errorf("liquidity percent %d overflows uint16", pct)}
	}
	d.LiquidityPercent = uint16(pct)
	return d, nil
}

// Admin returns the presale administrator.
func (c *CrowdFunding) Admin(ctx context.Context) (*address.Address, error) {
	return c.getAddress(ctx, "getAdmin")
}

// ContractBalance returns the balance the contract reports for itself.
func (c *CrowdFunding) ContractBalance(ctx context.Context) (tlb.Coins, error) {
	return c.getCoins(ctx, "get_contract_balance")
}

// TotalCapRaised returns the sum of all deposits.
func (c *CrowdFunding) TotalCapRaised(ctx context.Context) (tlb.Coins, error) {
	return c.getCoins(ctx, "get_total_cap_raised")
}

// JettonWalletAddress returns the presale's own jetton wallet.
func (c *CrowdFunding) JettonWalletAddress(ctx context.Context) (*address.Address, error) {
	return c.getAddress(ctx, "get_jetton_wallet_address")
}

// StartTime returns the presale start in unix seconds.
func (c *CrowdFunding) StartTime(ctx context.Context) (uint64, error) {
	return c.getUint64(ctx, "get_start_time")
}

// EndTime returns the presale end in unix seconds.
func (c *CrowdFunding) EndTime(ctx context.Context) (uint64, error) {
	return c.getUint64(ctx, "get_end_time")
}

// FundraisingStatus returns the raw status. It is FundraisingHalted while
// soft halt is active.
func (c *CrowdFunding) FundraisingStatus(ctx context.Context) (int64, error) {
	st, err := c.RunGetMethod(ctx, "get_fundraising_status")
	if err != nil {
		return 0, err
	}
	return st.ReadInt64()
}

// SoftCap returns the soft cap.
func (c *CrowdFunding) SoftCap(ctx context.Context) (tlb.Coins, error) {
	return c.getCoins(ctx, "get_soft_cap")
}

// IndividualLimit returns the per-investor deposit limit.
func (c *CrowdFunding) IndividualLimit(ctx context.Context) (tlb.Coins, error) {
	return c.getCoins(ctx, "get_individual_limit")
}

// ValidFundingRound returns the raw result of check_valid_funding_round.
func (c *CrowdFunding) ValidFundingRound(ctx context.Context) (int64, error) {
	st, err := c.RunGetMethod(ctx, "check_valid_funding_round")
	if err != nil {
		return 0, err
	}
	return st.ReadInt64()
}

// BillAddress returns the deposit bill address of user.
func (c *CrowdFunding) BillAddress(ctx context.Context, user *address.Address) (*address.Address, error) {
	return c.getAddress(ctx, "get_bill_address", StackArgAddress(user))
}

// Bill opens the deposit bill of user.
func (c *CrowdFunding) Bill(ctx context.Context, user *address.Address) (*DepositBill, error) {
	addr, err := c.BillAddress(ctx, user)
	if err != nil {
		return nil, err
	}
	return NewDepositBill(addr, c.provider, WithLogger(c.log)), nil
}

// Config reads the presale storage from the account data.
func (c *CrowdFunding) Config(ctx context.Context) (*CrowdFundingConfig, error) {
	st, err := c.State(ctx)
	if err != nil {
		return nil, err
	}
	if !st.IsActive() {
		return nil, fmt.Errorf("tonlaunch: presale %s is %s", addrString(c.address), st.Status)
	}
	return DecodeCrowdFundingData(st.Data)
}

// PresaleSnapshot bundles the values an operator usually checks together.
type PresaleSnapshot struct {
	Address *address.Address
	Public  *PresalePublicData
	Admin   *address.Address
	Balance tlb.Coins
	Status  int64
}

// Snapshot fetches public data, admin, balance and status concurrently.
// The first failure cancels the remaining reads.
func (c *CrowdFunding) Snapshot(ctx context.Context) (*PresaleSnapshot, error) {
	snap := &PresaleSnapshot{Address: c.address}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		d, err := c.PublicData(gctx)
		snap.Public = d
		return err
	})
	g.Go(func() error {
		a, err := c.Admin(gctx)
		snap.Admin = a
		return err
	})
	g.Go(func() error {
		b, err := c.ContractBalance(gctx)
		snap.Balance = b
		return err
	})
	g.Go(func() error {
		s, err := c.FundraisingStatus(gctx)
		snap.Status = s
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
