package cli

import (
	"github.com/spf13/cobra"

	"github.com/branched-services/go-tonlaunch"
)

type opcodeRow struct {
	Name   string `json:"name" yaml:"name"`
	Opcode string `json:"opcode" yaml:"opcode"`
}

var opcodesCmd = &cobra.Command{
	Use:   "opcodes",
	Short: "Print the opcode table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := tonlaunch.Opcodes()
		rows := make([]opcodeRow, len(entries))
		for i, e := range entries {
			rows[i] = opcodeRow{Name: e.Name, Opcode: e.Opcode.Hex()}
		}
		return render(cmd, rows)
	},
}

func init() {
	rootCmd.AddCommand(opcodesCmd)
}
