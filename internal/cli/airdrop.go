package cli

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/branched-services/go-tonlaunch"
)

// EntriesFile is the YAML list of airdrop recipients. Entry i gets index i.
type EntriesFile struct {
	Entries []struct {
		Address string `yaml:"address"`
		Amount  string `yaml:"amount"`
	} `yaml:"entries"`
}

// RootInfo is the output of airdrop root.
type RootInfo struct {
	Entries    int    `json:"entries" yaml:"entries"`
	MerkleRoot string `json:"merkle_root" yaml:"merkle_root"`
}

// ProofInfo is the output of airdrop proof.
type ProofInfo struct {
	Index     string `json:"index" yaml:"index"`
	Address   string `json:"address" yaml:"address"`
	Amount    string `json:"amount" yaml:"amount"`
	ProofHash string `json:"proof_hash" yaml:"proof_hash"`
	Proof     string `json:"proof" yaml:"proof"`
	Helper    string `json:"helper,omitempty" yaml:"helper,omitempty"`
}

func loadEntries(path string) (*tonlaunch.AirdropEntries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f EntriesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Entries) == 0 {
		return nil, fmt.Errorf("%s: no entries", path)
	}

	list := make([]tonlaunch.AirdropEntry, len(f.Entries))
	for i, e := range f.Entries {
		addr, err := parseAddr(fmt.Sprintf("entry %d", i), e.Address)
		if err != nil {
			return nil, err
		}
		amount, err := parseCoins(fmt.Sprintf("entry %d", i), e.Amount)
		if err != nil {
			return nil, err
		}
		list[i] = tonlaunch.AirdropEntry{Address: addr, Amount: amount}
	}
	return tonlaunch.NewAirdropEntries(list)
}

func rootHex(root *big.Int) string {
	return hexutil.Encode(math.PaddedBigBytes(root, 32))
}

var airdropCmd = &cobra.Command{
	Use:   "airdrop",
	Short: "Build Merkle roots and claim proofs for an airdrop",
}

var airdropRootCmd = &cobra.Command{
	Use:   "root <entries.yaml>",
	Short: "Print the Merkle root of an entries file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := loadEntries(args[0])
		if err != nil {
			return err
		}
		root, err := entries.MerkleRoot()
		if err != nil {
			return err
		}
		return render(cmd, RootInfo{Entries: entries.Len(), MerkleRoot: rootHex(root)})
	},
}

var (
	proofAirdrop    string
	proofHelperCode string
)

var airdropProofCmd = &cobra.Command{
	Use:   "proof <entries.yaml> <index>",
	Short: "Print the claim proof of one entry",
	Long: `Print the Merkle proof of the entry at index, as a hex BOC.

The index is decimal or 0x-prefixed hex. With --airdrop and --helper-code
the address of the claim helper for this entry is printed too.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, ok := math.ParseBig256(args[1])
		if !ok || index.Sign() < 0 {
			return fmt.Errorf("invalid index %q", args[1])
		}
		if (proofAirdrop == "") != (proofHelperCode == "") {
			return errors.New("--airdrop and --helper-code must be set together")
		}

		entries, err := loadEntries(args[0])
		if err != nil {
			return err
		}
		entry, err := entries.Get(index)
		if err != nil {
			return err
		}
		proof, err := entries.MerkleProof(index)
		if err != nil {
			return err
		}

		info := ProofInfo{
			Index:     index.String(),
			Address:   entry.Address.String(),
			Amount:    entry.Amount.String(),
			ProofHash: hexutil.Encode(proof.Hash()),
			Proof:     hex.EncodeToString(proof.ToBOC()),
		}

		if proofAirdrop != "" {
			addr, err := parseAddr("airdrop", proofAirdrop)
			if err != nil {
				return err
			}
			code, err := parseBOC("helper code", proofHelperCode)
			if err != nil {
				return err
			}
			h, err := tonlaunch.NewAirdrop(addr, nil, tonlaunch.WithLogger(logger)).Helper(index, proof, code)
			if err != nil {
				return err
			}
			info.Helper = h.Address().String()
		}
		return render(cmd, info)
	},
}

func init() {
	airdropProofCmd.Flags().StringVar(&proofAirdrop, "airdrop", "", "airdrop contract address")
	airdropProofCmd.Flags().StringVar(&proofHelperCode, "helper-code", "", "helper contract code as hex BOC")

	airdropCmd.AddCommand(airdropRootCmd)
	airdropCmd.AddCommand(airdropProofCmd)
	rootCmd.AddCommand(airdropCmd)
}
