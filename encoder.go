package tonlaunch

import (
	"fmt"
	"sync"

	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// OpcodeSize is the width of an opcode in bits.
const OpcodeSize = 32

// QueryIDSize is the width of a query_id field in bits.
const QueryIDSize = 64

// EncodeBody serializes a tlb-tagged struct into a cell.
func EncodeBody(v any) (*cell.Cell, error) {
	c, err := tlb.ToCell(v)
	if err != nil {
		return nil, &EncodingError{Value: v, Err: err}
	}
	return c, nil
}

// MustEncodeBody is like EncodeBody but panics on error.
func MustEncodeBody(v any) *cell.Cell {
	c, err := EncodeBody(v)
	if err != nil {
		panic(err)
	}
	return c
}

// DecodeInto parses a cell into a tlb-tagged struct.
func DecodeInto(c *cell.Cell, v any) error {
	if c == nil {
		return &EncodingError{Value: v, Err: ErrShortBody}
	}
	if err := tlb.LoadFromCell(v, c.BeginParse()); err != nil {
		return &EncodingError{Value: v, Err: err}
	}
	return nil
}

// PeekOpcode returns the first 32 bits of a body without consuming them.
func PeekOpcode(body *cell.Cell) (Opcode, error) {
	if body == nil || body.BitsSize() < OpcodeSize {
		return 0, ErrShortBody
	}
	op, err := body.BeginParse().LoadUInt(OpcodeSize)
	if err != nil {
		return 0, fmt.Errorf("tonlaunch: read opcode: %w", err)
	}
	return Opcode(op), nil
}

// BodyFactory returns a fresh pointer to a tlb-tagged body struct.
type BodyFactory func() any

var (
	registryMu sync.RWMutex
	registry   = map[Opcode]BodyFactory{}
)

// RegisterBody registers the layout decoded for op. Registering the same
// opcode twice panics.
func RegisterBody(op Opcode, factory BodyFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[op]; exists {
		panic(fmt.Sprintf("tonlaunch: body for opcode %s registered twice", op))
	}
	registry[op] = factory
}

// DecodeBody decodes a body into the struct registered for its opcode.
func DecodeBody(body *cell.Cell) (Opcode, any, error) {
	op, err := PeekOpcode(body)
	if err != nil {
		return 0, nil, err
	}

	registryMu.RLock()
	factory, ok := registry[op]
	registryMu.RUnlock()
	if !ok {
		return op, nil, &UnknownOpcodeError{Op: op}
	}

	v := factory()
	if err := DecodeInto(body, v); err != nil {
		return op, nil, err
	}
	return op, v, nil
}

func init() {
	// Presale requests
	RegisterBody(OpDeposit, func() any { return new(DepositMsg) })
	RegisterBody(OpChangeAdmin, func() any { return new(ChangeAdminMsg) })
	RegisterBody(OpWithdrawCommission, func() any { return new(WithdrawCommissionMsg) })
	RegisterBody(OpWithdrawLiquidity, func() any { return new(WithdrawLiquidityMsg) })
	RegisterBody(OpTxToProjectOwner, func() any { return new(TxToProjectOwnerMsg) })
	RegisterBody(OpInvestorWithdrawalReq, func() any { return new(InvestorWithdrawalReqMsg) })
	RegisterBody(OpJettonClaimReq, func() any { return new(JettonClaimReqMsg) })
	RegisterBody(OpActivateSoftHalt, func() any { return new(ActivateSoftHaltMsg) })
	RegisterBody(OpDeactivateSoftHalt, func() any { return new(DeactivateSoftHaltMsg) })
	RegisterBody(OpAdminJettonWithdrawal, func() any { return new(AdminJettonWithdrawalMsg) })
	RegisterBody(OpAdminTonWithdrawal, func() any { return new(AdminTonWithdrawalMsg) })
	RegisterBody(OpExtendTime, func() any { return new(ExtendTimeMsg) })

	// Jetton
	RegisterBody(OpJettonTransfer, func() any { return new(JettonTransferMsg) })
	RegisterBody(OpJettonTransferNotification, func() any { return new(JettonTransferNotification) })
	RegisterBody(OpJettonInternalTransfer, func() any { return new(JettonInternalTransferMsg) })
	RegisterBody(OpJettonExcesses, func() any { return new(JettonExcesses) })
	RegisterBody(OpJettonBurn, func() any { return new(JettonBurnMsg) })
	RegisterBody(OpJettonBurnNotification, func() any { return new(JettonBurnNotification) })
	RegisterBody(OpJettonProvideWalletAddress, func() any { return new(JettonProvideWalletAddressMsg) })
	RegisterBody(OpJettonTakeWalletAddress, func() any { return new(JettonTakeWalletAddress) })
	RegisterBody(OpJettonMint, func() any { return new(JettonMintMsg) })
	RegisterBody(OpJettonChangeAdmin, func() any { return new(JettonChangeAdminMsg) })
	RegisterBody(OpJettonChangeContent, func() any { return new(JettonChangeContentMsg) })

	// Airdrop
	RegisterBody(OpAirdropDeploy, func() any { return new(AirdropDeployMsg) })
}
