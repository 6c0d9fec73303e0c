package tonlaunch

import (
	"context"
	"math/big"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// Fixed amounts attached to minter requests.
var (
	// MintFee is added to total_ton on every mint.
	MintFee = tlb.MustFromTON("0.015")

	// DiscoveryValue is attached to provide_wallet_address.
	DiscoveryValue = tlb.MustFromTON("0.1")

	// MinterAdminValue is attached to change_admin and change_content.
	MinterAdminValue = tlb.MustFromTON("0.05")
)

// JettonMasterConfig is the minter storage layout.
type JettonMasterConfig struct {
	TotalSupply tlb.Coins        `tlb:"."`
	Admin       *address.Address `tlb:"addr"`
	Content     *cell.Cell       `tlb:"^"`
	WalletCode  *cell.Cell       `tlb:"^"`
}

// JettonMintMsg asks the minter to mint JettonAmount to To.
type JettonMintMsg struct {
	_            tlb.Magic        `tlb:"#00000015"`
	QueryID      uint64           `tlb:"## 64"`
	To           *address.Address `tlb:"addr"`
	TotalTon     tlb.Coins        `tlb:"."`
	JettonAmount tlb.Coins        `tlb:"."`
	Transfer     *cell.Cell       `tlb:"^"`
}

// JettonProvideWalletAddressMsg is a TEP-89 discovery request.
type JettonProvideWalletAddressMsg struct {
	_              tlb.Magic        `tlb:"#2c76b973"`
	QueryID        uint64           `tlb:"## 64"`
	Owner          *address.Address `tlb:"addr"`
	IncludeAddress bool             `tlb:"bool"`
}

// JettonTakeWalletAddress is the minter's reply to a discovery request.
type JettonTakeWalletAddress struct {
	_            tlb.Magic        `tlb:"#d1735400"`
	QueryID      uint64           `tlb:"## 64"`
	Wallet       *address.Address `tlb:"addr"`
	OwnerAddress *cell.Cell       `tlb:"maybe ^"`
}

// Owner returns the owner address included in the reply, or nil.
func (m *JettonTakeWalletAddress) Owner() (*address.Address, error) {
	if m.OwnerAddress == nil {
		return nil, nil
	}
	return m.OwnerAddress.BeginParse().LoadAddr()
}

// JettonChangeAdminMsg transfers minter administration.
type JettonChangeAdminMsg struct {
	_        tlb.Magic        `tlb:"#00000003"`
	QueryID  uint64           `tlb:"## 64"`
	NewAdmin *address.Address `tlb:"addr"`
}

// JettonChangeContentMsg replaces the minter metadata cell.
type JettonChangeContentMsg struct {
	_       tlb.Magic  `tlb:"#00000004"`
	QueryID uint64     `tlb:"## 64"`
	Content *cell.Cell `tlb:"^"`
}

// JettonBurnNotification is sent by a wallet to its minter after a burn.
type JettonBurnNotification struct {
	_               tlb.Magic        `tlb:"#7bdd97de"`
	QueryID         uint64           `tlb:"## 64"`
	Amount          tlb.Coins        `tlb:"."`
	Sender          *address.Address `tlb:"addr"`
	ResponseAddress *address.Address `tlb:"addr"`
}

// JettonData is the result of get_jetton_data.
type JettonData struct {
	TotalSupply tlb.Coins
	Mintable    bool
	Admin       *address.Address
	Content     *cell.Cell
	WalletCode  *cell.Cell
}

// JettonMaster is a jetton minter.
type JettonMaster struct {
	*Contract
}

// NewJettonMaster opens a deployed minter.
func NewJettonMaster(addr *address.Address, provider Provider, opts ...ContractOption) *JettonMaster {
	return &JettonMaster{Contract: NewContract(addr, provider, opts...)}
}

// JettonMasterFromConfig derives a minter address from its initial storage.
func JettonMasterFromConfig(cfg *JettonMasterConfig, code *cell.Cell, provider Provider, opts ...ContractOption) (*JettonMaster, error) {
	data, err := EncodeBody(cfg)
	if err != nil {
		return nil, err
	}
	c, err := NewContractFromInit(code, data, provider, opts...)
	if err != nil {
		return nil, err
	}
	return &JettonMaster{Contract: c}, nil
}

// SendDeploy deploys the minter with an empty body.
func (m *JettonMaster) SendDeploy(ctx context.Context, via Sender, value tlb.Coins) error {
	msg, err := m.DeployMessage(value, nil)
	if err != nil {
		return err
	}
	return m.Send(ctx, via, msg)
}

// MintMessage mints jettonAmount to to. forwardTon is passed on to the
// receiving wallet and totalTon pays for the whole chain; the attached value
// is totalTon plus MintFee.
func (m *JettonMaster) MintMessage(to *address.Address, jettonAmount, forwardTon, totalTon tlb.Coins) (*Message, error) {
	if totalTon.Nano().Cmp(forwardTon.Nano()) <= 0 {
		return nil, ErrMintAmount
	}

	transfer, err := EncodeBody(&JettonInternalTransferMsg{
		QueryID:          0,
		Amount:           jettonAmount,
		From:             address.NewAddressNone(),
		ResponseAddress:  m.address,
		ForwardTonAmount: forwardTon,
	})
	if err != nil {
		return nil, err
	}

	body, err := EncodeBody(&JettonMintMsg{
		To:           to,
		TotalTon:     totalTon,
		JettonAmount: jettonAmount,
		Transfer:     transfer,
	})
	if err != nil {
		return nil, err
	}

	value := tlb.FromNanoTON(new(big.Int).Add(totalTon.Nano(), MintFee.Nano()))
	return m.Message(value, body), nil
}

// SendMint mints jettonAmount to to.
func (m *JettonMaster) SendMint(ctx context.Context, via Sender, to *address.Address, jettonAmount, forwardTon, totalTon tlb.Coins) error {
	msg, err := m.MintMessage(to, jettonAmount, forwardTon, totalTon)
	if err != nil {
		return err
	}
	return m.Send(ctx, via, msg)
}

// DiscoveryMessage asks the minter for the wallet address of owner.
func (m *JettonMaster) DiscoveryMessage(owner *address.Address, includeAddress bool) *Message {
	return m.Message(DiscoveryValue, MustEncodeBody(&JettonProvideWalletAddressMsg{
		Owner:          owner,
		IncludeAddress: includeAddress,
	}))
}

func (m *JettonMaster) SendDiscovery(ctx context.Context, via Sender, owner *address.Address, includeAddress bool) error {
	return m.Send(ctx, via, m.DiscoveryMessage(owner, includeAddress))
}

// ChangeAdminMessage hands minter administration to newAdmin.
func (m *JettonMaster) ChangeAdminMessage(newAdmin *address.Address) *Message {
	return m.Message(MinterAdminValue, MustEncodeBody(&JettonChangeAdminMsg{NewAdmin: newAdmin}))
}

func (m *JettonMaster) SendChangeAdmin(ctx context.Context, via Sender, newAdmin *address.Address) error {
	return m.Send(ctx, via, m.ChangeAdminMessage(newAdmin))
}

// ChangeContentMessage replaces the metadata cell.
func (m *JettonMaster) ChangeContentMessage(content *cell.Cell) (*Message, error) {
	body, err := EncodeBody(&JettonChangeContentMsg{Content: content})
	if err != nil {
		return nil, err
	}
	return m.Message(MinterAdminValue, body), nil
}

func (m *JettonMaster) SendChangeContent(ctx context.Context, via Sender, content *cell.Cell) error {
	msg, err := m.ChangeContentMessage(content)
	if err != nil {
		return err
	}
	return m.Send(ctx, via, msg)
}

// WalletAddress returns the jetton wallet address of owner.
func (m *JettonMaster) WalletAddress(ctx context.Context, owner *address.Address) (*address.Address, error) {
	return m.getAddress(ctx, "get_wallet_address", StackArgAddress(owner))
}

// Wallet opens the jetton wallet of owner.
func (m *JettonMaster) Wallet(ctx context.Context, owner *address.Address) (*JettonWallet, error) {
	addr, err := m.WalletAddress(ctx, owner)
	if err != nil {
		return nil, err
	}
	return NewJettonWallet(addr, m.provider, WithLogger(m.log)), nil
}

// JettonData reads get_jetton_data.
func (m *JettonMaster) JettonData(ctx context.Context) (*JettonData, error) {
	st, err := m.RunGetMethod(ctx, "get_jetton_data")
	if err != nil {
		return nil, err
	}

	d := new(JettonData)
	if d.TotalSupply, err = st.ReadCoins(); err != nil {
		return nil, err
	}
	if d.Mintable, err = st.ReadBool(); err != nil {
		return nil, err
	}
	if d.Admin, err = st.ReadAddress(); err != nil {
		return nil, err
	}
	if d.Content, err = st.ReadCell(); err != nil {
		return nil, err
	}
	if d.WalletCode, err = st.ReadCell(); err != nil {
		return nil, err
	}
	return d, nil
}

// TotalSupply returns the minted supply.
func (m *JettonMaster) TotalSupply(ctx context.Context) (tlb.Coins, error) {
	d, err := m.JettonData(ctx)
	if err != nil {
		return tlb.ZeroCoins, err
	}
	return d.TotalSupply, nil
}

// AdminAddress returns the minter administrator.
func (m *JettonMaster) AdminAddress(ctx context.Context) (*address.Address, error) {
	d, err := m.JettonData(ctx)
	if err != nil {
		return nil, err
	}
	return d.Admin, nil
}

// Content returns the metadata cell.
func (m *JettonMaster) Content(ctx context.Context) (*cell.Cell, error) {
	d, err := m.JettonData(ctx)
	if err != nil {
		return nil, err
	}
	return d.Content, nil
}
