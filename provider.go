package tonlaunch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/liteclient"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton"
	"github.com/xssnick/tonutils-go/ton/wallet"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// Provider reads chain state and delivers external messages.
type Provider interface {
	RunGetMethod(ctx context.Context, addr *address.Address, method string, args ...any) (*Stack, error)
	AccountState(ctx context.Context, addr *address.Address) (*AccountState, error)
	SendExternal(ctx context.Context, addr *address.Address, init *tlb.StateInit, body *cell.Cell) error
}

// Sender signs and sends internal messages from a wallet.
// All messages passed to one Send call go out in a single transaction.
type Sender interface {
	Address() *address.Address
	Send(ctx context.Context, msgs ...*Message) error
}

// LiteProvider is a Provider backed by a tonutils-go lite-server client.
type LiteProvider struct {
	api ton.APIClientWrapped
	log zerolog.Logger
}

// NewLiteProvider wraps an existing API client.
func NewLiteProvider(api ton.APIClientWrapped, opts ...ProviderOption) *LiteProvider {
	p := &LiteProvider{api: api, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DialLiteProvider connects to the lite servers listed in a global config.
func DialLiteProvider(ctx context.Context, configURL string, opts ...ProviderOption) (*LiteProvider, error) {
	cfg, err := liteclient.GetConfigFromUrl(ctx, configURL)
	if err != nil {
		return nil, fmt.Errorf("tonlaunch: load network config: %w", err)
	}

	pool := liteclient.NewConnectionPool()
	if err := pool.AddConnectionsFromConfig(ctx, cfg); err != nil {
		return nil, fmt.Errorf("tonlaunch: connect to lite servers: %w", err)
	}

	api := ton.NewAPIClient(pool).WithRetry()
	return NewLiteProvider(api, opts...), nil
}

// API returns the underlying client, e.g. for opening a wallet.
func (p *LiteProvider) API() ton.APIClientWrapped {
	return p.api
}

// RunGetMethod runs method on addr at the current masterchain block.
func (p *LiteProvider) RunGetMethod(ctx context.Context, addr *address.Address, method string, args ...any) (*Stack, error) {
	block, err := p.api.CurrentMasterchainInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("tonlaunch: get masterchain info: %w", err)
	}

	p.log.Debug().
		Str("method", method).
		Str("address", addrString(addr)).
		Uint32("seqno", block.SeqNo).
		Msg("run get-method")

	res, err := p.api.RunGetMethod(ctx, block, addr, method, args...)
	if err != nil {
		var execErr ton.ContractExecError
		if errors.As(err, &execErr) {
			return nil, &GetMethodError{Address: addr, Method: method, ExitCode: ExitCode(execErr.Code)}
		}
		return nil, fmt.Errorf("tonlaunch: run %s on %s: %w", method, addrString(addr), err)
	}
	return NewStack(method, res.AsTuple()), nil
}

// AccountState fetches the account at the current masterchain block.
func (p *LiteProvider) AccountState(ctx context.Context, addr *address.Address) (*AccountState, error) {
	block, err := p.api.CurrentMasterchainInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("tonlaunch: get masterchain info: %w", err)
	}
	acc, err := p.api.GetAccount(ctx, block, addr)
	if err != nil {
		return nil, fmt.Errorf("tonlaunch: get account %s: %w", addrString(addr), err)
	}
	return accountStateFromTLB(acc), nil
}

// SendExternal delivers an external message to addr.
func (p *LiteProvider) SendExternal(ctx context.Context, addr *address.Address, init *tlb.StateInit, body *cell.Cell) error {
	p.log.Debug().Str("to", addrString(addr)).Bool("state_init", init != nil).Msg("send external message")

	err := p.api.SendExternalMessage(ctx, &tlb.ExternalMessage{
		DstAddr:   addr,
		StateInit: init,
		Body:      body,
	})
	if err != nil {
		return fmt.Errorf("tonlaunch: send external message to %s: %w", addrString(addr), err)
	}
	return nil
}

// WalletSender is a Sender backed by a tonutils-go wallet.
type WalletSender struct {
	w    *wallet.Wallet
	wait bool
	log  zerolog.Logger
}

// NewWalletSender wraps w. Sends wait for confirmation unless disabled.
func NewWalletSender(w *wallet.Wallet, opts ...SenderOption) *WalletSender {
	s := &WalletSender{w: w, wait: true, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Address returns the wallet address.
func (s *WalletSender) Address() *address.Address {
	return s.w.WalletAddress()
}

// Send signs msgs into one wallet transaction.
func (s *WalletSender) Send(ctx context.Context, msgs ...*Message) error {
	if len(msgs) == 0 {
		return ErrEmptyBatch
	}

	out := make([]*wallet.Message, 0, len(msgs))
	for i, m := range msgs {
		if m == nil {
			return &BatchError{MessageIndex: i, Err: ErrNilMessage}
		}
		if err := m.Validate(); err != nil {
			return &BatchError{MessageIndex: i, Op: m.Op(), Err: err}
		}
		s.log.Debug().
			Str("op", m.Op().String()).
			Str("to", addrString(m.To())).
			Str("value", m.Value().String()).
			Bool("bounce", m.Bounce()).
			Msg("wallet message")
		out = append(out, m.walletMessage())
	}

	var err error
	if len(out) == 1 {
		err = s.w.Send(ctx, out[0], s.wait)
	} else {
		err = s.w.SendMany(ctx, out, s.wait)
	}
	if err != nil {
		return fmt.Errorf("tonlaunch: wallet send: %w", err)
	}
	return nil
}

// ParseWalletVersion maps a version name (v3r1, v3r2, v4r2, highload-v2r2)
// to a tonutils-go wallet version.
func ParseWalletVersion(name string) (wallet.VersionConfig, error) {
	switch strings.ToLower(name) {
	case "v3r1":
		return wallet.V3R1, nil
	case "v3", "v3r2":
		return wallet.V3R2, nil
	case "", "v4", "v4r2":
		return wallet.V4R2, nil
	case "highload-v2r2", "highloadv2r2":
		return wallet.HighloadV2R2, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrWalletVersion, name)
	}
}

// WalletFromSeed opens a wallet from a mnemonic.
func WalletFromSeed(api wallet.TonAPI, words []string, version string) (*wallet.Wallet, error) {
	v, err := ParseWalletVersion(version)
	if err != nil {
		return nil, err
	}
	w, err := wallet.FromSeed(api, words, v)
	if err != nil {
		return nil, fmt.Errorf("tonlaunch: open wallet: %w", err)
	}
	return w, nil
}
