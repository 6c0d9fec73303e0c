// Package tonlaunch provides typed Go clients for a TON token launch
// contract suite.
package tonlaunch

import (
	"errors"
	"fmt"

	"github.com/xssnick/tonutils-go/address"
)

// Sentinel errors for common failure conditions.
var (
	// ErrStackUnderflow indicates a get-method returned fewer values than expected.
	ErrStackUnderflow = errors.New("tonlaunch: get-method stack underflow")

	// ErrShortBody indicates a message body too short to carry an opcode.
	ErrShortBody = errors.New("tonlaunch: body shorter than 32 bits")

	// ErrEmptyBatch indicates a batch was sent without messages.
	ErrEmptyBatch = errors.New("tonlaunch: batch has no messages")

	// ErrTooManyMessages indicates a batch exceeds the wallet's per-transaction limit.
	ErrTooManyMessages = errors.New("tonlaunch: too many messages for one wallet transaction")

	// ErrNoDestination indicates a message without a destination address.
	ErrNoDestination = errors.New("tonlaunch: message has no destination")

	// ErrInvalidValue indicates a missing or negative message value.
	ErrInvalidValue = errors.New("tonlaunch: message value must be non-negative")

	// ErrMintAmount indicates the total TON for a mint does not cover the forward amount.
	ErrMintAmount = errors.New("tonlaunch: total ton amount must exceed forward ton amount")

	// ErrNoStateInit indicates a deploy was requested for a wrapper opened by address only.
	ErrNoStateInit = errors.New("tonlaunch: contract has no state init")

	// ErrEntryNotFound indicates an airdrop index missing from the entries dictionary.
	ErrEntryNotFound = errors.New("tonlaunch: airdrop entry not found")

	// ErrIndexRange indicates an airdrop index that is negative or wider than 256 bits.
	ErrIndexRange = errors.New("tonlaunch: airdrop index out of range")

	// ErrNilMessage indicates a nil message passed to a sender.
	ErrNilMessage = errors.New("tonlaunch: nil message")

	// ErrNoProof indicates a claim helper requested without a proof cell.
	ErrNoProof = errors.New("tonlaunch: airdrop proof is required")

	// ErrWalletVersion indicates an unsupported wallet version name.
	ErrWalletVersion = errors.New("tonlaunch: unsupported wallet version")
)

// GetMethodError indicates a get-method finished with a non-zero exit code.
type GetMethodError struct {
	Address  *address.Address
	Method   string
	ExitCode ExitCode
}

func (e *GetMethodError) Error() string {
	return fmt.Sprintf("tonlaunch: get-method %q on %s exited with %s", e.Method, addrString(e.Address), e.ExitCode)
}

// StackError indicates a get-method result could not be decoded.
type StackError struct {
	Method string
	Index  int
	Err    error
}

func (e *StackError) Error() string {
	if e.Method != "" {
		return fmt.Sprintf("tonlaunch: stack item %d of %q: %v", e.Index, e.Method, e.Err)
	}
	return fmt.Sprintf("tonlaunch: stack item %d: %v", e.Index, e.Err)
}

func (e *StackError) Unwrap() error {
	return e.Err
}

// TypeMismatchError indicates a stack item's type doesn't match the expected type.
type TypeMismatchError struct {
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("tonlaunch: type mismatch: expected %s, got %s", e.Expected, e.Got)
}

// UnknownOpcodeError indicates a body whose opcode has no registered layout.
type UnknownOpcodeError struct {
	Op Opcode
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("tonlaunch: unknown opcode %s", e.Op)
}

// EncodingError indicates a failure while serializing or parsing a cell layout.
type EncodingError struct {
	Value any
	Err   error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("tonlaunch: encoding error for value %T: %v", e.Value, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// BatchError wraps errors that occur while planning a batch.
type BatchError struct {
	MessageIndex int
	Op           Opcode
	Err          error
}

func (e *BatchError) Error() string {
	if e.Op != 0 {
		return fmt.Sprintf("tonlaunch: message %d (%s): %v", e.MessageIndex, e.Op, e.Err)
	}
	return fmt.Sprintf("tonlaunch: message %d: %v", e.MessageIndex, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
