package tonlaunch

import "fmt"

// ExitCode is a TVM exit code from a compute phase or get-method.
type ExitCode int32

// TVM exit codes the presale suite is known to produce.
const (
	ExitOK            ExitCode = 0
	ExitCellUnderflow ExitCode = 9
)

// Presale exit codes.
const (
	ExitDepositTimeEnded       ExitCode = 80
	ExitWithdrawalNotAllowed   ExitCode = 88
	ExitInvalidAdminWithdrawal ExitCode = 99
	ExitWithdrawalAfterSoftCap ExitCode = 511
	ExitDepositBelowMinimum    ExitCode = 600
)

// Jetton exit codes from the reference minter and wallet.
const (
	ExitJettonNotAdmin         ExitCode = 73
	ExitJettonUnauthorizedBurn ExitCode = 74
	ExitJettonDiscoveryFee     ExitCode = 75
	ExitJettonWrongWorkchain   ExitCode = 333
	ExitJettonNotOwner         ExitCode = 705
	ExitJettonBalanceError     ExitCode = 706
	ExitJettonNotValidWallet   ExitCode = 707
	ExitJettonNotEnoughTon     ExitCode = 709
	ExitJettonWrongOp          ExitCode = 0xffff
)

var exitCodeNames = map[ExitCode]string{
	ExitOK:                     "ok",
	ExitCellUnderflow:          "cell_underflow",
	ExitDepositTimeEnded:       "deposit_time_ended",
	ExitWithdrawalNotAllowed:   "withdrawal_not_allowed",
	ExitInvalidAdminWithdrawal: "invalid_admin_withdrawal_request",
	ExitWithdrawalAfterSoftCap: "withdrawal_after_soft_cap",
	ExitDepositBelowMinimum:    "deposit_below_minimum",
	ExitJettonNotAdmin:         "not_admin",
	ExitJettonUnauthorizedBurn: "unauthorized_burn",
	ExitJettonDiscoveryFee:     "discovery_fee_not_matched",
	ExitJettonWrongWorkchain:   "wrong_workchain",
	ExitJettonNotOwner:         "not_owner",
	ExitJettonBalanceError:     "balance_error",
	// 707 doubles as not_enough_gas in the wallet.
	ExitJettonNotValidWallet: "not_valid_wallet",
	// 709 doubles as invalid_op in the minter.
	ExitJettonNotEnoughTon: "not_enough_ton",
	ExitJettonWrongOp:      "wrong_op",
}

// String returns "name (code)" for known codes and the bare number otherwise.
func (c ExitCode) String() string {
	if name, ok := exitCodeNames[c]; ok {
		return fmt.Sprintf("%s (%d)", name, int32(c))
	}
	return fmt.Sprintf("exit code %d", int32(c))
}
