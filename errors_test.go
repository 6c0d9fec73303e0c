package tonlaunch

import (
	"errors"
	"strings"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrStackUnderflow", ErrStackUnderflow, "tonlaunch: get-method stack underflow"},
		{"ErrShortBody", ErrShortBody, "tonlaunch: body shorter than 32 bits"},
		{"ErrEmptyBatch", ErrEmptyBatch, "tonlaunch: batch has no messages"},
		{"ErrTooManyMessages", ErrTooManyMessages, "tonlaunch: too many messages for one wallet transaction"},
		{"ErrNoDestination", ErrNoDestination, "tonlaunch: message has no destination"},
		{"ErrInvalidValue", ErrInvalidValue, "tonlaunch: message value must be non-negative"},
		{"ErrMintAmount", ErrMintAmount, "tonlaunch: total ton amount must exceed forward ton amount"},
		{"ErrNoStateInit", ErrNoStateInit, "tonlaunch: contract has no state init"},
		{"ErrEntryNotFound", ErrEntryNotFound, "tonlaunch: airdrop entry not found"},
		{"ErrIndexRange", ErrIndexRange, "tonlaunch: airdrop index out of range"},
		{"ErrNilMessage", ErrNilMessage, "tonlaunch: nil message"},
		{"ErrNoProof", ErrNoProof, "tonlaunch: airdrop proof is required"},
		{"ErrWalletVersion", ErrWalletVersion, "tonlaunch: unsupported wallet version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.msg {
				t.Errorf("Expected error message %q, got %q", tt.msg, tt.err.Error())
			}
		})
	}
}

func TestGetMethodError(t *testing.T) {
	t.Run("names method and exit code", func(t *testing.T) {
		err := &GetMethodError{Address: testAddr(1), Method: "get_public_data", ExitCode: ExitDepositTimeEnded}

		msg := err.Error()
		if !strings.Contains(msg, `"get_public_data"`) {
			t.Errorf("Expected method in message, got %q", msg)
		}
		if !strings.Contains(msg, "deposit_time_ended (80)") {
			t.Errorf("Expected exit code name in message, got %q", msg)
		}
	})

	t.Run("nil address does not panic", func(t *testing.T) {
		err := &GetMethodError{Method: "getAdmin", ExitCode: 11}
		if !strings.Contains(err.Error(), "<none>") {
			t.Errorf("Expected <none> placeholder, got %q", err.Error())
		}
	})

	t.Run("errors.As exposes exit code", func(t *testing.T) {
		var wrapped error = &StackError{Method: "x", Err: &GetMethodError{ExitCode: ExitWithdrawalNotAllowed}}

		var gm *GetMethodError
		if !errors.As(wrapped, &gm) {
			t.Fatal("errors.As should find GetMethodError")
		}
		if gm.ExitCode != ExitWithdrawalNotAllowed {
			t.Errorf("Expected exit code 88, got %d", gm.ExitCode)
		}
	})
}

func TestStackError(t *testing.T) {
	t.Run("with method", func(t *testing.T) {
		err := &StackError{Method: "get_end_time", Index: 2, Err: ErrStackUnderflow}

		expected := `tonlaunch: stack item 2 of "get_end_time": tonlaunch: get-method stack underflow`
		if err.Error() != expected {
			t.Errorf("Expected error message %q, got %q", expected, err.Error())
		}
	})

	t.Run("without method", func(t *testing.T) {
		err := &StackError{Index: 0, Err: errors.New("boom")}

		expected := "tonlaunch: stack item 0: boom"
		if err.Error() != expected {
			t.Errorf("Expected error message %q, got %q", expected, err.Error())
		}
	})

	t.Run("unwraps", func(t *testing.T) {
		err := &StackError{Err: ErrStackUnderflow}
		if !errors.Is(err, ErrStackUnderflow) {
			t.Error("Expected errors.Is to find ErrStackUnderflow")
		}
	})
}

func TestTypeMismatchError(t *testing.T) {
	err := &TypeMismatchError{Expected: "int", Got: "*cell.Cell"}

	expected := "tonlaunch: type mismatch: expected int, got *cell.Cell"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
}

func TestUnknownOpcodeError(t *testing.T) {
	t.Run("unknown opcode prints hex", func(t *testing.T) {
		err := &UnknownOpcodeError{Op: 0xdeadbeef}

		expected := "tonlaunch: unknown opcode 0xdeadbeef"
		if err.Error() != expected {
			t.Errorf("Expected error message %q, got %q", expected, err.Error())
		}
	})
}

func TestEncodingError(t *testing.T) {
	t.Run("names the value type", func(t *testing.T) {
		err := &EncodingError{Value: &ExtendTimeMsg{}, Err: errors.New("overflow")}

		expected := "tonlaunch: encoding error for value *tonlaunch.ExtendTimeMsg: overflow"
		if err.Error() != expected {
			t.Errorf("Expected error message %q, got %q", expected, err.Error())
		}
	})

	t.Run("unwraps", func(t *testing.T) {
		err := &EncodingError{Err: ErrShortBody}
		if !errors.Is(err, ErrShortBody) {
			t.Error("Expected errors.Is to find ErrShortBody")
		}
	})
}

func TestBatchError(t *testing.T) {
	t.Run("with opcode", func(t *testing.T) {
		err := &BatchError{MessageIndex: 1, Op: OpDeposit, Err: ErrNoDestination}

		expected := "tonlaunch: message 1 (deposit): tonlaunch: message has no destination"
		if err.Error() != expected {
			t.Errorf("Expected error message %q, got %q", expected, err.Error())
		}
	})

	t.Run("without opcode", func(t *testing.T) {
		err := &BatchError{MessageIndex: 0, Err: ErrInvalidValue}

		expected := "tonlaunch: message 0: tonlaunch: message value must be non-negative"
		if err.Error() != expected {
			t.Errorf("Expected error message %q, got %q", expected, err.Error())
		}
	})

	t.Run("unwraps", func(t *testing.T) {
		err := &BatchError{Err: ErrTooManyMessages}
		if !errors.Is(err, ErrTooManyMessages) {
			t.Error("Expected errors.Is to find ErrTooManyMessages")
		}
	})
}

func TestErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrStackUnderflow,
		ErrShortBody,
		ErrEmptyBatch,
		ErrTooManyMessages,
		ErrNoDestination,
		ErrInvalidValue,
		ErrMintAmount,
		ErrNoStateInit,
		ErrEntryNotFound,
		ErrIndexRange,
		ErrNilMessage,
		ErrNoProof,
		ErrWalletVersion,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("Expected %v and %v to be distinct", a, b)
			}
		}
	}
}
