package tonlaunch

import (
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	// StatusActive accounts have code and data deployed.
	StatusActive AccountStatus = "active"

	// StatusUninit accounts hold a balance but no code.
	StatusUninit AccountStatus = "uninit"

	// StatusFrozen accounts were frozen for unpaid storage.
	StatusFrozen AccountStatus = "frozen"

	// StatusNonexistent accounts have never received a message.
	StatusNonexistent AccountStatus = "nonexistent"
)

// AccountState is a snapshot of an account at the latest masterchain block.
type AccountState struct {
	Status   AccountStatus
	Balance  tlb.Coins
	Code     *cell.Cell
	Data     *cell.Cell
	LastTxLT uint64
}

// IsActive returns true if the account has code deployed.
func (s *AccountState) IsActive() bool {
	return s != nil && s.Status == StatusActive
}

// accountStateFromTLB converts a lite-client account.
func accountStateFromTLB(acc *tlb.Account) *AccountState {
	if acc == nil || acc.State == nil {
		return &AccountState{Status: StatusNonexistent, Balance: tlb.ZeroCoins}
	}

	state := &AccountState{
		Status:   statusFromTLB(acc.State.Status),
		Balance:  acc.State.Balance,
		LastTxLT: acc.LastTxLT,
	}
	if acc.IsActive {
		state.Code = acc.Code
		state.Data = acc.Data
	} else if state.Status == StatusActive {
		// Active status without a parsed state means the proof omitted it.
		state.Status = StatusUninit
	}
	return state
}

func statusFromTLB(status tlb.AccountStatus) AccountStatus {
	switch status {
	case tlb.AccountStatusActive:
		return StatusActive
	case tlb.AccountStatusUninit:
		return StatusUninit
	case tlb.AccountStatusFrozen:
		return StatusFrozen
	default:
		return StatusNonexistent
	}
}
