package tonlaunch

import (
	"fmt"
	"hash/crc32"
	"sort"
)

// Opcode is the 32-bit tag at the start of a message body.
type Opcode uint32

// OpcodeOf derives an opcode from an operation name as CRC-32 (IEEE) of
// its ASCII bytes. This matches the crc32 helper used when the presale
// contracts were compiled.
func OpcodeOf(name string) Opcode {
	return Opcode(crc32.ChecksumIEEE([]byte(name)))
}

// Presale opcodes. Names are part of the wire format, including the
// "op::" prefixes and the misspelled liquidity allocation.
var (
	OpDeposit                   = OpcodeOf("deposit")
	OpWithdrawFunds             = OpcodeOf("withdraw_funds")
	OpUpdateInvestmentToBill    = OpcodeOf("op::update_investment_to_bill")
	OpInvestorWithdrawalReq     = OpcodeOf("investor_withdrawal_req")
	OpInitiateWithdrawal        = OpcodeOf("op::initiate_withdrawal")
	OpProcessInvestorWithdrawal = OpcodeOf("process_investor_withdrawal")
	OpWithdrawFromBill          = OpcodeOf("op::withdraw_from_bill")
	OpWithdrawCommission        = OpcodeOf("withdraw_commission")
	OpTxToProjectOwner          = OpcodeOf("tx_to_project_owner")
	OpWithdrawLiquidity         = OpcodeOf("withdraw_liquidty_allocation")
	OpSetupJettonWallet         = OpcodeOf("setup_jetton_wallet")
	OpInitiateJettonClaim       = OpcodeOf("initiate_jetton_claim")
	OpJettonClaimReq            = OpcodeOf("jetton_claim_req")
	OpProcessJettonClaim        = OpcodeOf("process_jetton_claim")
	OpChangeAdmin               = OpcodeOf("change_admin")
	OpActivateSoftHalt          = OpcodeOf("activate_soft_halt")
	OpDeactivateSoftHalt        = OpcodeOf("deactivate_soft_halt")
	OpAdminJettonWithdrawal     = OpcodeOf("admin_jetton_withdrawal")
	OpAdminTonWithdrawal        = OpcodeOf("admin_ton_withdrawal")
	OpExtendTime                = OpcodeOf("extend_time")
)

// Jetton opcodes (TEP-74, TEP-89 and the reference minter).
const (
	OpJettonTransfer             Opcode = 0x0f8a7ea5
	OpJettonTransferNotification Opcode = 0x7362d09c
	OpJettonInternalTransfer     Opcode = 0x178d4519
	OpJettonExcesses             Opcode = 0xd53276db
	OpJettonBurn                 Opcode = 0x595f07bc
	OpJettonBurnNotification     Opcode = 0x7bdd97de
	OpJettonProvideWalletAddress Opcode = 0x2c76b973
	OpJettonTakeWalletAddress    Opcode = 0xd1735400
	OpJettonMint                 Opcode = 21
	OpJettonChangeAdmin          Opcode = 3
	OpJettonChangeContent        Opcode = 4
)

// Airdrop opcodes.
const (
	OpAirdropDeploy Opcode = 0x610ca46c
)

// opcodeNames maps every known opcode to its wire name.
var opcodeNames = map[Opcode]string{}

// opcodesByName is the reverse of opcodeNames.
var opcodesByName = map[string]Opcode{}

func init() {
	for _, name := range []string{
		"deposit",
		"withdraw_funds",
		"op::update_investment_to_bill",
		"investor_withdrawal_req",
		"op::initiate_withdrawal",
		"process_investor_withdrawal",
		"op::withdraw_from_bill",
		"withdraw_commission",
		"tx_to_project_owner",
		"withdraw_liquidty_allocation",
		"setup_jetton_wallet",
		"initiate_jetton_claim",
		"jetton_claim_req",
		"process_jetton_claim",
		"change_admin",
		"activate_soft_halt",
		"deactivate_soft_halt",
		"admin_jetton_withdrawal",
		"admin_ton_withdrawal",
		"extend_time",
	} {
		nameOpcode(OpcodeOf(name), name)
	}

	nameOpcode(OpJettonTransfer, "jetton::transfer")
	nameOpcode(OpJettonTransferNotification, "jetton::transfer_notification")
	nameOpcode(OpJettonInternalTransfer, "jetton::internal_transfer")
	nameOpcode(OpJettonExcesses, "jetton::excesses")
	nameOpcode(OpJettonBurn, "jetton::burn")
	nameOpcode(OpJettonBurnNotification, "jetton::burn_notification")
	nameOpcode(OpJettonProvideWalletAddress, "jetton::provide_wallet_address")
	nameOpcode(OpJettonTakeWalletAddress, "jetton::take_wallet_address")
	nameOpcode(OpJettonMint, "jetton::mint")
	nameOpcode(OpJettonChangeAdmin, "jetton::change_admin")
	nameOpcode(OpJettonChangeContent, "jetton::change_content")
	nameOpcode(OpAirdropDeploy, "airdrop::deploy")
}

func nameOpcode(op Opcode, name string) {
	if prev, ok := opcodeNames[op]; ok {
		panic(fmt.Sprintf("tonlaunch: opcode %#08x named twice (%s, %s)", uint32(op), prev, name))
	}
	opcodeNames[op] = name
	opcodesByName[name] = op
}

// Name returns the wire name of a known opcode.
func (o Opcode) Name() (string, bool) {
	name, ok := opcodeNames[o]
	return name, ok
}

// String returns the name of a known opcode, or its hex form.
func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return o.Hex()
}

// Hex returns the opcode as 0x-prefixed, zero-padded hex.
func (o Opcode) Hex() string {
	return fmt.Sprintf("0x%08x", uint32(o))
}

// LookupOpcode returns the opcode registered under name.
// Jetton and airdrop opcodes use the "jetton::" and "airdrop::" prefixes.
func LookupOpcode(name string) (Opcode, bool) {
	op, ok := opcodesByName[name]
	return op, ok
}

// OpcodeEntry is one row of the opcode table.
type OpcodeEntry struct {
	Name   string `json:"name" yaml:"name"`
	Opcode Opcode `json:"opcode" yaml:"opcode"`
}

// Opcodes returns every known opcode sorted by name.
func Opcodes() []OpcodeEntry {
	entries := make([]OpcodeEntry, 0, len(opcodeNames))
	for op, name := range opcodeNames {
		entries = append(entries, OpcodeEntry{Name: name, Opcode: op})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}
