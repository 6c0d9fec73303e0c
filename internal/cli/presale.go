package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"

	"github.com/branched-services/go-tonlaunch"
)

// PresaleInfo is the output of presale info.
type PresaleInfo struct {
	Address          string `json:"address" yaml:"address"`
	Admin            string `json:"admin" yaml:"admin"`
	Jetton           string `json:"jetton" yaml:"jetton"`
	Start            string `json:"start" yaml:"start"`
	End              string `json:"end" yaml:"end"`
	IndividualLimit  string `json:"individual_limit" yaml:"individual_limit"`
	SoftCap          string `json:"soft_cap" yaml:"soft_cap"`
	TotalCapRaised   string `json:"total_cap_raised" yaml:"total_cap_raised"`
	TokensForPresale string `json:"tokens_for_presale" yaml:"tokens_for_presale"`
	LiquidityPercent uint16 `json:"liquidity_percent" yaml:"liquidity_percent"`
	Balance          string `json:"balance" yaml:"balance"`
	Status           string `json:"status" yaml:"status"`
}

// BillInfo is the output of presale bill.
type BillInfo struct {
	Address         string `json:"address" yaml:"address"`
	Deployed        bool   `json:"deployed" yaml:"deployed"`
	User            string `json:"user" yaml:"user"`
	TotalDeposited  string `json:"total_deposited" yaml:"total_deposited"`
	IndividualLimit string `json:"individual_limit" yaml:"individual_limit"`
	Withdrawn       bool   `json:"withdrawn" yaml:"withdrawn"`
}

func unixTime(t uint64) string {
	return time.Unix(int64(t), 0).UTC().Format(time.RFC3339)
}

func fundraisingStatus(s int64) string {
	if s == tonlaunch.FundraisingHalted {
		return "halted"
	}
	return strconv.FormatInt(s, 10)
}

// presaleAdmin builds an admin request against args[0].
func presaleAdmin(cmd *cobra.Command, args []string, build func(cf *tonlaunch.CrowdFunding, gas tlb.Coins) (*tonlaunch.Message, error)) error {
	addr, err := parseAddr("presale", args[0])
	if err != nil {
		return err
	}
	g, err := gas()
	if err != nil {
		return err
	}
	msg, err := build(tonlaunch.NewCrowdFunding(addr, nil, tonlaunch.WithLogger(logger)), g)
	if err != nil {
		return err
	}
	return deliver(cmd, msg)
}

var presaleCmd = &cobra.Command{
	Use:   "presale",
	Short: "Inspect and administer a presale contract",
}

var presaleInfoCmd = &cobra.Command{
	Use:   "info <presale>",
	Short: "Show presale parameters, admin, balance and status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := parseAddr("presale", args[0])
		if err != nil {
			return err
		}
		p, ctx, cancel, err := contractProvider(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		snap, err := tonlaunch.NewCrowdFunding(addr, p, tonlaunch.WithLogger(logger)).Snapshot(ctx)
		if err != nil {
			return fmt.Errorf("failed to read presale: %w", err)
		}
		return render(cmd, PresaleInfo{
			Address:          snap.Address.String(),
			Admin:            snap.Admin.String(),
			Jetton:           snap.Public.Jetton.String(),
			Start:            unixTime(snap.Public.StartTime),
			End:              unixTime(snap.Public.EndTime),
			IndividualLimit:  snap.Public.IndividualLimit.String(),
			SoftCap:          snap.Public.SoftCap.String(),
			TotalCapRaised:   snap.Public.TotalCapRaised.String(),
			TokensForPresale: snap.Public.TokensForPresale.String(),
			LiquidityPercent: snap.Public.LiquidityPercent,
			Balance:          snap.Balance.String(),
			Status:           fundraisingStatus(snap.Status),
		})
	},
}

var presaleBillCmd = &cobra.Command{
	Use:   "bill <presale> <user>",
	Short: "Show the deposit bill of an investor",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := parseAddr("presale", args[0])
		if err != nil {
			return err
		}
		user, err := parseAddr("user", args[1])
		if err != nil {
			return err
		}
		p, ctx, cancel, err := contractProvider(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		bill, err := tonlaunch.NewCrowdFunding(addr, p, tonlaunch.WithLogger(logger)).Bill(ctx, user)
		if err != nil {
			return fmt.Errorf("failed to resolve bill: %w", err)
		}
		info := BillInfo{Address: bill.Address().String(), User: user.String()}

		if info.Deployed, err = bill.IsDeployed(ctx); err != nil {
			return err
		}
		if !info.Deployed {
			return render(cmd, info)
		}

		data, err := bill.Data(ctx)
		if err != nil {
			return fmt.Errorf("failed to read bill: %w", err)
		}
		info.TotalDeposited = data.TotalDeposited.String()
		info.IndividualLimit = data.IndividualLimit.String()
		if info.Withdrawn, err = bill.IsDepositWithdrawn(ctx); err != nil {
			return err
		}
		return render(cmd, info)
	},
}

var presaleExtendTimeCmd = &cobra.Command{
	Use:   "extend-time <presale> <unix>",
	Short: "Move the presale end time",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid unix time %q: %w", args[1], err)
		}
		return presaleAdmin(cmd, args, func(cf *tonlaunch.CrowdFunding, g tlb.Coins) (*tonlaunch.Message, error) {
			return cf.ExtendTimeMessage(g, t), nil
		})
	},
}

var presaleSoftHaltCmd = &cobra.Command{
	Use:       "soft-halt <presale> on|off",
	Short:     "Activate or deactivate the soft halt",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var halt bool
		switch strings.ToLower(args[1]) {
		case "on":
			halt = true
		case "off":
		default:
			return fmt.Errorf("soft-halt wants on or off, got %q", args[1])
		}
		return presaleAdmin(cmd, args, func(cf *tonlaunch.CrowdFunding, g tlb.Coins) (*tonlaunch.Message, error) {
			return cf.SoftHaltMessage(g, halt), nil
		})
	},
}

func presaleWithdrawCmd(use, short string, build func(cf *tonlaunch.CrowdFunding, g tlb.Coins, to *address.Address, amount tlb.Coins) *tonlaunch.Message) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <presale> <to> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := parseAddr("recipient", args[1])
			if err != nil {
				return err
			}
			amount, err := parseCoins("withdrawal", args[2])
			if err != nil {
				return err
			}
			return presaleAdmin(cmd, args, func(cf *tonlaunch.CrowdFunding, g tlb.Coins) (*tonlaunch.Message, error) {
				return build(cf, g, to, amount), nil
			})
		},
	}
}

var presaleChangeAdminCmd = &cobra.Command{
	Use:   "change-admin <presale> <new-admin>",
	Short: "Hand presale administration to another address",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := parseAddr("admin", args[1])
		if err != nil {
			return err
		}
		return presaleAdmin(cmd, args, func(cf *tonlaunch.CrowdFunding, g tlb.Coins) (*tonlaunch.Message, error) {
			return cf.ChangeAdminMessage(g, admin), nil
		})
	},
}

func init() {
	presaleCmd.AddCommand(presaleInfoCmd)
	presaleCmd.AddCommand(presaleBillCmd)
	presaleCmd.AddCommand(presaleExtendTimeCmd)
	presaleCmd.AddCommand(presaleSoftHaltCmd)
	presaleCmd.AddCommand(presaleWithdrawCmd("withdraw-ton", "Withdraw TON held by the presale",
		(*tonlaunch.CrowdFunding).AdminTonWithdrawalMessage))
	presaleCmd.AddCommand(presaleWithdrawCmd("withdraw-jetton", "Withdraw jettons held by the presale",
		(*tonlaunch.CrowdFunding).AdminJettonWithdrawalMessage))
	presaleCmd.AddCommand(presaleChangeAdminCmd)
	rootCmd.AddCommand(presaleCmd)
}
