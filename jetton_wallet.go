package tonlaunch

import (
	"context"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// JettonTransferMsg moves jettons from the sender's wallet to Destination.
type JettonTransferMsg struct {
	_                   tlb.Magic        `tlb:"#0f8a7ea5"`
	QueryID             uint64           `tlb:"## 64"`
	Amount              tlb.Coins        `tlb:"."`
	Destination         *address.Address `tlb:"addr"`
	ResponseDestination *address.Address `tlb:"addr"`
	CustomPayload       *cell.Cell       `tlb:"maybe ^"`
	ForwardTonAmount    tlb.Coins        `tlb:"."`
	ForwardPayload      *cell.Cell       `tlb:"maybe ^"`
}

// JettonInternalTransferMsg is the wallet-to-wallet leg of a transfer or mint.
type JettonInternalTransferMsg struct {
	_                tlb.Magic        `tlb:"#178d4519"`
	QueryID          uint64           `tlb:"## 64"`
	Amount           tlb.Coins        `tlb:"."`
	From             *address.Address `tlb:"addr"`
	ResponseAddress  *address.Address `tlb:"addr"`
	ForwardTonAmount tlb.Coins        `tlb:"."`
	ForwardPayload   *cell.Cell       `tlb:"maybe ^"`
}

// JettonTransferNotification tells the new owner that jettons arrived.
type JettonTransferNotification struct {
	_              tlb.Magic        `tlb:"#7362d09c"`
	QueryID        uint64           `tlb:"## 64"`
	Amount         tlb.Coins        `tlb:"."`
	Sender         *address.Address `tlb:"addr"`
	ForwardPayload *cell.Cell       `tlb:"either . ^"`
}

// JettonExcesses returns unspent TON to the response destination.
type JettonExcesses struct {
	_       tlb.Magic `tlb:"#d53276db"`
	QueryID uint64    `tlb:"## 64"`
}

// JettonBurnMsg destroys jettons held by the sender's wallet.
type JettonBurnMsg struct {
	_                   tlb.Magic        `tlb:"#595f07bc"`
	QueryID             uint64           `tlb:"## 64"`
	Amount              tlb.Coins        `tlb:"."`
	ResponseDestination *address.Address `tlb:"addr"`
	CustomPayload       *cell.Cell       `tlb:"maybe ^"`
}

// JettonTransfer describes a transfer request.
type JettonTransfer struct {
	QueryID             uint64
	Amount              tlb.Coins
	Destination         *address.Address
	ResponseDestination *address.Address
	CustomPayload       *cell.Cell
	ForwardTonAmount    tlb.Coins
	ForwardPayload      *cell.Cell
}

// WalletData is the result of get_wallet_data.
type WalletData struct {
	Balance    tlb.Coins
	Owner      *address.Address
	Master     *address.Address
	WalletCode *cell.Cell
}

// JettonWallet is the jetton wallet of one owner.
type JettonWallet struct {
	*Contract
}

// NewJettonWallet opens a jetton wallet.
func NewJettonWallet(addr *address.Address, provider Provider, opts ...ContractOption) *JettonWallet {
	return &JettonWallet{Contract: NewContract(addr, provider, opts...)}
}

// TransferMessage builds a transfer. value pays for the transfer chain and
// must cover ForwardTonAmount.
func (w *JettonWallet) TransferMessage(value tlb.Coins, t JettonTransfer) (*Message, error) {
	body, err := EncodeBody(&JettonTransferMsg{
		QueryID:             t.QueryID,
		Amount:              t.Amount,
		Destination:         t.Destination,
		ResponseDestination: t.ResponseDestination,
		CustomPayload:       t.CustomPayload,
		ForwardTonAmount:    t.ForwardTonAmount,
		ForwardPayload:      t.ForwardPayload,
	})
	if err != nil {
		return nil, err
	}
	return w.Message(value, body), nil
}

func (w *JettonWallet) SendTransfer(ctx context.Context, via Sender, value tlb.Coins, t JettonTransfer) error {
	msg, err := w.TransferMessage(value, t)
	if err != nil {
		return err
	}
	return w.Send(ctx, via, msg)
}

// BurnMessage burns amount. Excess TON goes to response.
func (w *JettonWallet) BurnMessage(value tlb.Coins, queryID uint64, amount tlb.Coins, response *address.Address, customPayload *cell.Cell) (*Message, error) {
	body, err := EncodeBody(&JettonBurnMsg{
		QueryID:             queryID,
		Amount:              amount,
		ResponseDestination: response,
		CustomPayload:       customPayload,
	})
	if err != nil {
		return nil, err
	}
	return w.Message(value, body), nil
}

func (w *JettonWallet) SendBurn(ctx context.Context, via Sender, value tlb.Coins, queryID uint64, amount tlb.Coins, response *address.Address, customPayload *cell.Cell) error {
	msg, err := w.BurnMessage(value, queryID, amount, response, customPayload)
	if err != nil {
		return err
	}
	return w.Send(ctx, via, msg)
}

// Data reads get_wallet_data.
func (w *JettonWallet) Data(ctx context.Context) (*WalletData, error) {
	st, err := w.RunGetMethod(ctx, "get_wallet_data")
	if err != nil {
		return nil, err
	}

	d := new(WalletData)
	if d.Balance, err = st.ReadCoins(); err != nil {
		return nil, err
	}
	if d.Owner, err = st.ReadAddress(); err != nil {
		return nil, err
	}
	if d.Master, err = st.ReadAddress(); err != nil {
		return nil, err
	}
	if d.WalletCode, err = st.ReadCell(); err != nil {
		return nil, err
	}
	return d, nil
}

// JettonBalance returns the jetton balance. A wallet that is not deployed
// holds zero.
func (w *JettonWallet) JettonBalance(ctx context.Context) (tlb.Coins, error) {
	deployed, err := w.IsDeployed(ctx)
	if err != nil {
		return tlb.ZeroCoins, err
	}
	if !deployed {
		return tlb.ZeroCoins, nil
	}
	d, err := w.Data(ctx)
	if err != nil {
		return tlb.ZeroCoins, err
	}
	return d.Balance, nil
}
