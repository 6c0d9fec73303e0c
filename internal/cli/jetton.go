package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/xssnick/tonutils-go/address"

	"github.com/branched-services/go-tonlaunch"
)

// JettonInfo is the output of jetton info.
type JettonInfo struct {
	Master         string `json:"master" yaml:"master"`
	TotalSupply    string `json:"total_supply" yaml:"total_supply"`
	Mintable       bool   `json:"mintable" yaml:"mintable"`
	Admin          string `json:"admin" yaml:"admin"`
	ContentHash    string `json:"content_hash" yaml:"content_hash"`
	WalletCodeHash string `json:"wallet_code_hash" yaml:"wallet_code_hash"`
}

var jettonCmd = &cobra.Command{
	Use:   "jetton",
	Short: "Inspect and administer a jetton minter",
}

var jettonInfoCmd = &cobra.Command{
	Use:   "info <master>",
	Short: "Show jetton supply, admin and code hashes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := parseAddr("master", args[0])
		if err != nil {
			return err
		}
		p, ctx, cancel, err := contractProvider(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		d, err := tonlaunch.NewJettonMaster(addr, p, tonlaunch.WithLogger(logger)).JettonData(ctx)
		if err != nil {
			return fmt.Errorf("failed to read jetton data: %w", err)
		}
		return render(cmd, JettonInfo{
			Master:         addr.String(),
			TotalSupply:    d.TotalSupply.String(),
			Mintable:       d.Mintable,
			Admin:          d.Admin.String(),
			ContentHash:    hexutil.Encode(d.Content.Hash()),
			WalletCodeHash: hexutil.Encode(d.WalletCode.Hash()),
		})
	},
}

var (
	mintTo      string
	mintForward string
	mintTotal   string
)

var jettonMintCmd = &cobra.Command{
	Use:   "mint <master> <amount>",
	Short: "Mint jettons to an owner",
	Long: `Mint jettons to --to, or to the sending wallet when --to is not set.

--total pays for the whole mint chain and must exceed --forward, which is
passed on to the receiving wallet. A fixed mint fee is added on top.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := parseAddr("master", args[0])
		if err != nil {
			return err
		}
		amount, err := parseCoins("jetton", args[1])
		if err != nil {
			return err
		}
		forward, err := parseCoins("forward", mintForward)
		if err != nil {
			return err
		}
		total, err := parseCoins("total", mintTotal)
		if err != nil {
			return err
		}

		var to *address.Address
		switch {
		case mintTo != "":
			if to, err = parseAddr("recipient", mintTo); err != nil {
				return err
			}
		case dryRun:
			return fmt.Errorf("--to is required with --dry-run")
		default:
			ctx, cancel := commandContext(cmd)
			defer cancel()
			via, err := chain.Sender(ctx)
			if err != nil {
				return err
			}
			to = via.Address()
		}

		msg, err := tonlaunch.NewJettonMaster(addr, nil, tonlaunch.WithLogger(logger)).MintMessage(to, amount, forward, total)
		if err != nil {
			return err
		}
		return deliver(cmd, msg)
	},
}

var jettonChangeAdminCmd = &cobra.Command{
	Use:   "change-admin <master> <new-admin>",
	Short: "Hand minter administration to another address",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := parseAddr("master", args[0])
		if err != nil {
			return err
		}
		admin, err := parseAddr("admin", args[1])
		if err != nil {
			return err
		}
		return deliver(cmd, tonlaunch.NewJettonMaster(addr, nil, tonlaunch.WithLogger(logger)).ChangeAdminMessage(admin))
	},
}

func init() {
	jettonMintCmd.Flags().StringVar(&mintTo, "to", "", "jetton owner (default is the sending wallet)")
	jettonMintCmd.Flags().StringVar(&mintForward, "forward", "0.01", "TON forwarded to the receiving wallet")
	jettonMintCmd.Flags().StringVar(&mintTotal, "total", "0.1", "TON paying for the mint chain")

	jettonCmd.AddCommand(jettonInfoCmd)
	jettonCmd.AddCommand(jettonMintCmd)
	jettonCmd.AddCommand(jettonChangeAdminCmd)
	rootCmd.AddCommand(jettonCmd)
}
