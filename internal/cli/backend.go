package cli

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"

	"github.com/branched-services/go-tonlaunch"
)

// Backend supplies the chain connection and the signing wallet.
type Backend interface {
	Provider(ctx context.Context) (tonlaunch.Provider, error)
	Sender(ctx context.Context) (tonlaunch.Sender, error)
}

// liteBackend dials the configured lite servers on first use.
type liteBackend struct {
	mu       sync.Mutex
	provider *tonlaunch.LiteProvider
	sender   *tonlaunch.WalletSender
}

func (b *liteBackend) dial(ctx context.Context) (*tonlaunch.LiteProvider, error) {
	if b.provider != nil {
		return b.provider, nil
	}
	logger.Debug().Str("config_url", cfg.Network.ConfigURL).Msg("connecting to lite servers")
	p, err := tonlaunch.DialLiteProvider(ctx, cfg.Network.ConfigURL, tonlaunch.WithProviderLogger(logger))
	if err != nil {
		return nil, err
	}
	b.provider = p
	return p, nil
}

func (b *liteBackend) Provider(ctx context.Context) (tonlaunch.Provider, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dial(ctx)
}

func (b *liteBackend) Sender(ctx context.Context) (tonlaunch.Sender, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sender != nil {
		return b.sender, nil
	}
	words, err := cfg.Seed()
	if err != nil {
		return nil, err
	}
	p, err := b.dial(ctx)
	if err != nil {
		return nil, err
	}
	w, err := tonlaunch.WalletFromSeed(p.API(), words, cfg.Wallet.Version)
	if err != nil {
		return nil, err
	}
	b.sender = tonlaunch.NewWalletSender(w, tonlaunch.WithSenderLogger(logger))
	logger.Debug().Str("wallet", b.sender.Address().String()).Msg("wallet opened")
	return b.sender, nil
}

// EncodedMessage is what --dry-run prints.
type EncodedMessage struct {
	To     string `json:"to" yaml:"to"`
	Value  string `json:"value" yaml:"value"`
	Op     string `json:"op" yaml:"op"`
	Opcode string `json:"opcode" yaml:"opcode"`
	Body   string `json:"body" yaml:"body"`
}

func encodeMessage(msg *tonlaunch.Message) EncodedMessage {
	return EncodedMessage{
		To:     msg.To().String(),
		Value:  msg.Value().String(),
		Op:     msg.Op().String(),
		Opcode: msg.Op().Hex(),
		Body:   hex.EncodeToString(msg.Body().ToBOC()),
	}
}

// deliver sends msg from the configured wallet, or prints it with --dry-run.
func deliver(cmd *cobra.Command, msg *tonlaunch.Message) error {
	if dryRun {
		return render(cmd, encodeMessage(msg))
	}
	if err := msg.Validate(); err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	via, err := chain.Sender(ctx)
	if err != nil {
		return err
	}
	logger.Info().Str("op", msg.Op().String()).Str("to", msg.To().String()).Str("value", msg.Value().String()).Msg("sending")
	if err := via.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send %s: %w", msg.Op(), err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sent %s to %s.\n", msg.Op(), msg.To().String())
	return nil
}

func parseAddr(name, s string) (*address.Address, error) {
	addr, err := address.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid %s address %q: %w", name, s, err)
	}
	return addr, nil
}

func parseCoins(name, s string) (tlb.Coins, error) {
	c, err := tlb.FromTON(strings.TrimSpace(s))
	if err != nil {
		return tlb.ZeroCoins, fmt.Errorf("invalid %s amount %q: %w", name, s, err)
	}
	return c, nil
}

// parseBOC decodes a hex-encoded bag of cells, with or without 0x.
func parseBOC(name, s string) (*cell.Cell, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	raw, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	c, err := cell.FromBOC(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return c, nil
}

func gas() (tlb.Coins, error) {
	return cfg.Gas()
}

func contractProvider(cmd *cobra.Command) (tonlaunch.Provider, context.Context, context.CancelFunc, error) {
	ctx, cancel := commandContext(cmd)
	p, err := chain.Provider(ctx)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}
	return p, ctx, cancel, nil
}
