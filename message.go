package tonlaunch

import (
	"fmt"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton/wallet"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// Send modes understood by wallet contracts.
const (
	ModePayGasSeparately  uint8 = wallet.PayGasSeparately
	ModeIgnoreErrors      uint8 = wallet.IgnoreErrors
	ModeCarryAllRemaining uint8 = wallet.CarryAllRemainingBalance
)

// Message is an outgoing internal message waiting to be sent by a wallet.
// Message is immutable - modifier methods return new instances.
type Message struct {
	to        *address.Address
	value     tlb.Coins
	body      *cell.Cell
	stateInit *tlb.StateInit
	mode      uint8
	bounce    bool
	op        Opcode
}

// NewMessage creates a bounceable message paying gas separately.
// The opcode is read from the body when it has one.
func NewMessage(to *address.Address, value tlb.Coins, body *cell.Cell) *Message {
	m := &Message{
		to:     to,
		value:  value,
		body:   body,
		mode:   ModePayGasSeparately,
		bounce: true,
	}
	if op, err := PeekOpcode(body); err == nil {
		m.op = op
	}
	return m
}

// To returns the destination address.
func (m *Message) To() *address.Address {
	return m.to
}

// Value returns the attached TON amount.
func (m *Message) Value() tlb.Coins {
	return m.value
}

// Body returns the message body, or nil for an empty body.
func (m *Message) Body() *cell.Cell {
	return m.body
}

// StateInit returns the attached StateInit, or nil.
func (m *Message) StateInit() *tlb.StateInit {
	return m.stateInit
}

// Mode returns the wallet send mode.
func (m *Message) Mode() uint8 {
	return m.mode
}

// Bounce reports whether the message bounces on failure.
func (m *Message) Bounce() bool {
	return m.bounce
}

// Op returns the body opcode, or 0 for bodies without one.
func (m *Message) Op() Opcode {
	return m.op
}

// WithMode returns a copy using the given send mode.
func (m *Message) WithMode(mode uint8) *Message {
	cp := *m
	cp.mode = mode
	return &cp
}

// WithValue returns a copy carrying a different TON amount.
func (m *Message) WithValue(value tlb.Coins) *Message {
	cp := *m
	cp.value = value
	return &cp
}

// WithStateInit returns a non-bounceable copy that deploys init.
func (m *Message) WithStateInit(init *tlb.StateInit) *Message {
	cp := *m
	cp.stateInit = init
	cp.bounce = false
	return &cp
}

// NonBounceable returns a copy that does not bounce.
func (m *Message) NonBounceable() *Message {
	cp := *m
	cp.bounce = false
	return &cp
}

// Validate checks the message can be handed to a wallet.
func (m *Message) Validate() error {
	if m.to == nil || m.to.Type() == address.NoneAddress {
		return ErrNoDestination
	}
	if m.value.Nano().Sign() < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidValue, m.value.String())
	}
	return nil
}

// Internal converts the message to its TL-B form.
func (m *Message) Internal() *tlb.InternalMessage {
	body := m.body
	if body == nil {
		body = cell.BeginCell().EndCell()
	}
	return &tlb.InternalMessage{
		IHRDisabled: true,
		Bounce:      m.bounce,
		DstAddr:     m.to,
		Amount:      m.value,
		StateInit:   m.stateInit,
		Body:        body,
	}
}

// walletMessage converts the message for a tonutils-go wallet.
func (m *Message) walletMessage() *wallet.Message {
	return &wallet.Message{
		Mode:            m.mode,
		InternalMessage: m.Internal(),
	}
}

func (m *Message) String() string {
	return fmt.Sprintf("%s -> %s (%s TON)", m.op, addrString(m.to), m.value.String())
}
