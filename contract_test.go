package tonlaunch

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/xssnick/tonutils-go/tlb"
)

func TestContractAddress(t *testing.T) {
	init := &tlb.StateInit{Code: testCode(1), Data: testCode(2)}

	t.Run("hash of state init", func(t *testing.T) {
		addr, err := ContractAddress(0, init)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		c, err := tlb.ToCell(init)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !bytes.Equal(addr.Data(), c.Hash()) {
			t.Error("Expected address data to be the state init hash")
		}
		if addr.Workchain() != 0 {
			t.Errorf("Expected workchain 0, got %d", addr.Workchain())
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a, _ := ContractAddress(0, init)
		b, _ := ContractAddress(0, &tlb.StateInit{Code: testCode(1), Data: testCode(2)})
		if !sameAddr(a, b) {
			t.Error("Expected equal state inits to give equal addresses")
		}
	})

	t.Run("data changes address", func(t *testing.T) {
		a, _ := ContractAddress(0, init)
		b, _ := ContractAddress(0, &tlb.StateInit{Code: testCode(1), Data: testCode(3)})
		if sameAddr(a, b) {
			t.Error("Expected different data to give different addresses")
		}
	})

	t.Run("masterchain", func(t *testing.T) {
		a, _ := ContractAddress(-1, init)
		if a.Workchain() != -1 {
			t.Errorf("Expected workchain -1, got %d", a.Workchain())
		}
	})

	t.Run("nil state init", func(t *testing.T) {
		if _, err := ContractAddress(0, nil); !errors.Is(err, ErrNoStateInit) {
			t.Errorf("Expected ErrNoStateInit, got %v", err)
		}
	})
}

func TestContractPrepare(t *testing.T) {
	ctx := context.Background()

	t.Run("attaches state init to inactive account", func(t *testing.T) {
		chain := newFakeChain()
		c, err := NewContractFromInit(testCode(1), testCode(2), chain)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		msg, err := c.Prepare(ctx, c.Message(tlb.MustFromTON("0.05"), nil))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if msg.StateInit() == nil || msg.Bounce() {
			t.Error("Expected non-bounceable deploy message")
		}
	})

	t.Run("leaves active account alone", func(t *testing.T) {
		chain := newFakeChain()
		c, _ := NewContractFromInit(testCode(1), testCode(2), chain)
		chain.setActive(c.Address(), testCode(2))

		msg, err := c.Prepare(ctx, c.Message(tlb.MustFromTON("0.05"), nil))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if msg.StateInit() != nil || !msg.Bounce() {
			t.Error("Expected plain bounceable message")
		}
	})

	t.Run("address-only wrapper never deploys", func(t *testing.T) {
		chain := newFakeChain()
		c := NewContract(testAddr(1), chain)

		msg, err := c.Prepare(ctx, c.Message(tlb.MustFromTON("0.05"), nil))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if msg.StateInit() != nil {
			t.Error("Expected no state init")
		}
		if _, err := c.DeployMessage(tlb.MustFromTON("0.05"), nil); !errors.Is(err, ErrNoStateInit) {
			t.Errorf("Expected ErrNoStateInit, got %v", err)
		}
	})

	t.Run("state lookup failure", func(t *testing.T) {
		chain := newFakeChain()
		c, _ := NewContractFromInit(testCode(1), testCode(2), chain)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := c.Prepare(cancelled, c.Message(tlb.ZeroCoins, nil)); !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	})
}

func TestContractSend(t *testing.T) {
	var buf bytes.Buffer
	chain := newFakeChain()
	c, _ := NewContractFromInit(testCode(1), testCode(2), chain,
		WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	err := c.Send(context.Background(), chain, c.Message(tlb.MustFromTON("0.05"), MustEncodeBody(&DepositMsg{})))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	msg := chain.lastSent(t)
	if msg.StateInit() == nil {
		t.Error("Expected first message to deploy")
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"op":"deposit"`)) {
		t.Errorf("Expected op in debug log, got %q", buf.String())
	}
}

func TestContractReads(t *testing.T) {
	ctx := context.Background()
	chain := newFakeChain()
	c := NewContract(testAddr(1), chain)

	t.Run("not deployed", func(t *testing.T) {
		deployed, err := c.IsDeployed(ctx)
		if err != nil || deployed {
			t.Errorf("Expected not deployed, got %v (%v)", deployed, err)
		}
	})

	t.Run("deployed with balance", func(t *testing.T) {
		chain.setActive(c.Address(), nil)

		deployed, err := c.IsDeployed(ctx)
		if err != nil || !deployed {
			t.Errorf("Expected deployed, got %v (%v)", deployed, err)
		}
		bal, err := c.Balance(ctx)
		if err != nil || nano(bal) != "1000000000" {
			t.Errorf("Expected 1 TON, got %s (%v)", bal.String(), err)
		}
	})

	t.Run("get-method exit code", func(t *testing.T) {
		chain.fails(c.Address(), "get_soft_cap", ExitCellUnderflow)

		_, err := c.getCoins(ctx, "get_soft_cap")
		var gm *GetMethodError
		if !errors.As(err, &gm) || gm.ExitCode != ExitCellUnderflow {
			t.Errorf("Expected exit code 9, got %v", err)
		}
	})
}
