package tonlaunch

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// Contract is the shared base of every wrapper: an address, an optional
// StateInit used to deploy it, and the provider that reads chain state.
type Contract struct {
	address   *address.Address
	init      *tlb.StateInit
	provider  Provider
	workchain int8
	log       zerolog.Logger
}

// NewContract opens a deployed contract by address.
func NewContract(addr *address.Address, provider Provider, opts ...ContractOption) *Contract {
	c := &Contract{
		address:  addr,
		provider: provider,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewContractFromInit derives the address of code and data and keeps the
// StateInit for deployment.
func NewContractFromInit(code, data *cell.Cell, provider Provider, opts ...ContractOption) (*Contract, error) {
	c := NewContract(nil, provider, opts...)
	c.init = &tlb.StateInit{Code: code, Data: data}

	addr, err := ContractAddress(c.workchain, c.init)
	if err != nil {
		return nil, err
	}
	c.address = addr
	return c, nil
}

// ContractAddress returns the standard address of a StateInit in workchain wc.
func ContractAddress(wc int8, init *tlb.StateInit) (*address.Address, error) {
	if init == nil {
		return nil, ErrNoStateInit
	}
	c, err := tlb.ToCell(init)
	if err != nil {
		return nil, &EncodingError{Value: init, Err: err}
	}
	return address.NewAddress(0, byte(wc), c.Hash()), nil
}

// Address returns the contract address.
func (c *Contract) Address() *address.Address {
	return c.address
}

// StateInit returns the StateInit the wrapper was created from, or nil.
func (c *Contract) StateInit() *tlb.StateInit {
	return c.init
}

// Provider returns the provider used for reads.
func (c *Contract) Provider() Provider {
	return c.provider
}

// State returns the current account state.
func (c *Contract) State(ctx context.Context) (*AccountState, error) {
	return c.provider.AccountState(ctx, c.address)
}

// IsDeployed reports whether the account is active.
func (c *Contract) IsDeployed(ctx context.Context) (bool, error) {
	st, err := c.State(ctx)
	if err != nil {
		return false, err
	}
	return st.IsActive(), nil
}

// Balance returns the account balance in TON.
func (c *Contract) Balance(ctx context.Context) (tlb.Coins, error) {
	st, err := c.State(ctx)
	if err != nil {
		return tlb.ZeroCoins, err
	}
	return st.Balance, nil
}

// Message builds a message addressed to the contract.
func (c *Contract) Message(value tlb.Coins, body *cell.Cell) *Message {
	return NewMessage(c.address, value, body)
}

// DeployMessage builds a message that carries the StateInit.
func (c *Contract) DeployMessage(value tlb.Coins, body *cell.Cell) (*Message, error) {
	if c.init == nil {
		return nil, ErrNoStateInit
	}
	return c.Message(value, body).WithStateInit(c.init), nil
}

// Prepare attaches the StateInit to msg when the account is not active yet.
func (c *Contract) Prepare(ctx context.Context, msg *Message) (*Message, error) {
	if c.init == nil || msg.StateInit() != nil {
		return msg, nil
	}
	deployed, err := c.IsDeployed(ctx)
	if err != nil {
		return nil, fmt.Errorf("tonlaunch: check deployment of %s: %w", addrString(c.address), err)
	}
	if deployed {
		return msg, nil
	}
	c.log.Debug().Str("address", addrString(c.address)).Msg("attaching state init")
	return msg.WithStateInit(c.init), nil
}

// Send prepares msg and sends it through via.
func (c *Contract) Send(ctx context.Context, via Sender, msg *Message) error {
	msg, err := c.Prepare(ctx, msg)
	if err != nil {
		return err
	}
	c.log.Debug().
		Str("op", msg.Op().String()).
		Str("to", addrString(msg.To())).
		Str("value", msg.Value().String()).
		Msg("sending message")
	return via.Send(ctx, msg)
}

// send encodes body and sends it with value.
func (c *Contract) send(ctx context.Context, via Sender, value tlb.Coins, body any) error {
	b, err := EncodeBody(body)
	if err != nil {
		return err
	}
	return c.Send(ctx, via, c.Message(value, b))
}

// RunGetMethod runs a get-method on the contract.
func (c *Contract) RunGetMethod(ctx context.Context, method string, args ...any) (*Stack, error) {
	c.log.Debug().Str("method", method).Str("address", addrString(c.address)).Msg("running get-method")
	return c.provider.RunGetMethod(ctx, c.address, method, args...)
}

// getAddress runs a get-method returning a single address.
func (c *Contract) getAddress(ctx context.Context, method string, args ...any) (*address.Address, error) {
	st, err := c.RunGetMethod(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	return st.ReadAddress()
}

// getCoins runs a get-method returning a single amount.
func (c *Contract) getCoins(ctx context.Context, method string) (tlb.Coins, error) {
	st, err := c.RunGetMethod(ctx, method)
	if err != nil {
		return tlb.ZeroCoins, err
	}
	return st.ReadCoins()
}

// getUint64 runs a get-method returning a single integer.
func (c *Contract) getUint64(ctx context.Context, method string) (uint64, error) {
	st, err := c.RunGetMethod(ctx, method)
	if err != nil {
		return 0, err
	}
	return st.ReadUint64()
}

// getBool runs a get-method returning a single flag.
func (c *Contract) getBool(ctx context.Context, method string, args ...any) (bool, error) {
	st, err := c.RunGetMethod(ctx, method, args...)
	if err != nil {
		return false, err
	}
	return st.ReadBool()
}

func addrString(a *address.Address) string {
	if a == nil {
		return "<none>"
	}
	return a.String()
}
