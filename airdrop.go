package tonlaunch

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// AirdropKeySize is the width of an entry index in bits.
const AirdropKeySize = 256

// HelperDeployValue is attached when deploying a claim helper.
var HelperDeployValue = tlb.MustFromTON("0.15")

// AirdropEntry is one recipient of the distribution.
type AirdropEntry struct {
	Address *address.Address `tlb:"addr"`
	Amount  tlb.Coins        `tlb:"."`
}

// AirdropEntries is the index-keyed dictionary whose root hash is the
// airdrop Merkle root.
type AirdropEntries struct {
	dict *cell.Dictionary
	n    int
}

// NewAirdropEntries builds a dictionary keyed 0..len(entries)-1.
func NewAirdropEntries(entries []AirdropEntry) (*AirdropEntries, error) {
	e := &AirdropEntries{dict: cell.NewDict(AirdropKeySize)}
	for i := range entries {
		if err := e.Set(big.NewInt(int64(i)), entries[i]); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// entryKey stores index as an unsigned 256-bit dictionary key.
func entryKey(index *big.Int) (*cell.Cell, error) {
	if index == nil || index.Sign() < 0 || index.BitLen() > AirdropKeySize {
		return nil, fmt.Errorf("%w: %v", ErrIndexRange, index)
	}
	return cell.BeginCell().MustStoreBigUInt(index, AirdropKeySize).EndCell(), nil
}

// Set stores entry under index.
func (e *AirdropEntries) Set(index *big.Int, entry AirdropEntry) error {
	key, err := entryKey(index)
	if err != nil {
		return err
	}
	v, err := EncodeBody(&entry)
	if err != nil {
		return err
	}
	if _, err := e.dict.LoadValue(key); err != nil {
		e.n++
	}
	if err := e.dict.Set(key, v); err != nil {
		return fmt.Errorf("tonlaunch: set airdrop entry %s: %w", index, err)
	}
	return nil
}

// Get returns the entry stored under index.
func (e *AirdropEntries) Get(index *big.Int) (*AirdropEntry, error) {
	key, err := entryKey(index)
	if err != nil {
		return nil, err
	}
	sl, err := e.dict.LoadValue(key)
	if err != nil {
		if errors.Is(err, cell.ErrNoSuchKeyInDict) {
			return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, index)
		}
		return nil, err
	}
	entry := new(AirdropEntry)
	if err := tlb.LoadFromCell(entry, sl); err != nil {
		return nil, &EncodingError{Value: entry, Err: err}
	}
	return entry, nil
}

// Len returns the number of entries.
func (e *AirdropEntries) Len() int {
	return e.n
}

// Dict returns the underlying dictionary.
func (e *AirdropEntries) Dict() *cell.Dictionary {
	return e.dict
}

// RootCell returns the dictionary root cell.
func (e *AirdropEntries) RootCell() (*cell.Cell, error) {
	if e.dict.IsEmpty() {
		return nil, fmt.Errorf("%w: dictionary is empty", ErrEntryNotFound)
	}
	return e.dict.AsCell(), nil
}

// MerkleRoot returns the root hash as the 256-bit integer stored on chain.
func (e *AirdropEntries) MerkleRoot() (*big.Int, error) {
	root, err := e.RootCell()
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(root.Hash()), nil
}

// MerkleProof returns a Merkle proof cell that keeps only the path to index.
func (e *AirdropEntries) MerkleProof(index *big.Int) (*cell.Cell, error) {
	key, err := entryKey(index)
	if err != nil {
		return nil, err
	}
	root, err := e.RootCell()
	if err != nil {
		return nil, err
	}

	sk := cell.CreateProofSkeleton()
	if _, _, err := e.dict.LoadValueWithProof(key, sk); err != nil {
		if errors.Is(err, cell.ErrNoSuchKeyInDict) {
			return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, index)
		}
		return nil, fmt.Errorf("tonlaunch: walk airdrop dictionary: %w", err)
	}

	proof, err := root.CreateProof(sk)
	if err != nil {
		return nil, fmt.Errorf("tonlaunch: create merkle proof: %w", err)
	}
	return proof, nil
}

// AirdropConfig is the airdrop storage layout.
type AirdropConfig struct {
	JettonWallet *address.Address `tlb:"addr"`
	MerkleRoot   *big.Int         `tlb:"## 256"`
	HelperCode   *cell.Cell       `tlb:"^"`
	Salt         uint64           `tlb:"## 64"`
}

// AirdropDeployMsg sets the airdrop's jetton wallet.
type AirdropDeployMsg struct {
	_            tlb.Magic        `tlb:"#610ca46c"`
	QueryID      uint64           `tlb:"## 64"`
	JettonWallet *address.Address `tlb:"addr"`
}

// Airdrop is a Merkle distribution contract.
type Airdrop struct {
	*Contract
}

// NewAirdrop opens a deployed airdrop.
func NewAirdrop(addr *address.Address, provider Provider, opts ...ContractOption) *Airdrop {
	return &Airdrop{Contract: NewContract(addr, provider, opts...)}
}

// AirdropFromConfig derives an airdrop address. A nil JettonWallet is
// stored as addr_none and a zero Salt is replaced with a random one.
func AirdropFromConfig(cfg AirdropConfig, code *cell.Cell, provider Provider, opts ...ContractOption) (*Airdrop, error) {
	if cfg.JettonWallet == nil {
		cfg.JettonWallet = address.NewAddressNone()
	}
	if cfg.MerkleRoot == nil {
		return nil, errors.New("tonlaunch: airdrop merkle root is required")
	}
	if cfg.Salt == 0 {
		var b [8]byte
		if _, err := rand.Read(b[:]); err != nil {
			return nil, fmt.Errorf("tonlaunch: airdrop salt: %w", err)
		}
		cfg.Salt = binary.BigEndian.Uint64(b[:])
	}

	data, err := EncodeBody(&cfg)
	if err != nil {
		return nil, err
	}
	c, err := NewContractFromInit(code, data, provider, opts...)
	if err != nil {
		return nil, err
	}
	return &Airdrop{Contract: c}, nil
}

// DeployMessage builds the deploy request carrying the airdrop's own
// jetton wallet address.
func (a *Airdrop) DeployMessage(value tlb.Coins, jettonWallet *address.Address) (*Message, error) {
	body, err := EncodeBody(&AirdropDeployMsg{JettonWallet: jettonWallet})
	if err != nil {
		return nil, err
	}
	return a.Contract.DeployMessage(value, body)
}

func (a *Airdrop) SendDeploy(ctx context.Context, via Sender, value tlb.Coins, jettonWallet *address.Address) error {
	msg, err := a.DeployMessage(value, jettonWallet)
	if err != nil {
		return err
	}
	return a.Send(ctx, via, msg)
}

// Helper derives the claim helper for index.
func (a *Airdrop) Helper(index *big.Int, proof, helperCode *cell.Cell) (*AirdropHelper, error) {
	if proof == nil {
		return nil, ErrNoProof
	}
	return AirdropHelperFromConfig(AirdropHelperConfig{
		Airdrop:   a.address,
		ProofHash: proof.Hash(),
		Index:     index,
	}, helperCode, a.provider, WithLogger(a.log), WithWorkchain(a.workchain))
}

// AirdropHelperConfig is the storage of a per-claim helper.
type AirdropHelperConfig struct {
	Claimed   bool             `tlb:"bool"`
	Airdrop   *address.Address `tlb:"addr"`
	ProofHash []byte           `tlb:"bits 256"`
	Index     *big.Int         `tlb:"## 256"`
}

// AirdropClaimMsg is the external message that triggers a claim.
type AirdropClaimMsg struct {
	QueryID uint64     `tlb:"## 64"`
	Proof   *cell.Cell `tlb:"^"`
}

// AirdropHelper guards a single claim against replay.
type AirdropHelper struct {
	*Contract
}

// AirdropHelperFromConfig derives a helper address. Claimed is always stored
// as false.
func AirdropHelperFromConfig(cfg AirdropHelperConfig, code *cell.Cell, provider Provider, opts ...ContractOption) (*AirdropHelper, error) {
	if len(cfg.ProofHash) != 32 {
		return nil, fmt.Errorf("tonlaunch: proof hash must be 32 bytes, got %d", len(cfg.ProofHash))
	}
	if cfg.Index == nil {
		return nil, errors.New("tonlaunch: airdrop helper index is required")
	}
	cfg.Claimed = false

	data, err := EncodeBody(&cfg)
	if err != nil {
		return nil, err
	}
	c, err := NewContractFromInit(code, data, provider, opts...)
	if err != nil {
		return nil, err
	}
	return &AirdropHelper{Contract: c}, nil
}

// NewAirdropHelper opens a deployed helper.
func NewAirdropHelper(addr *address.Address, provider Provider, opts ...ContractOption) *AirdropHelper {
	return &AirdropHelper{Contract: NewContract(addr, provider, opts...)}
}

// SendDeploy deploys the helper with HelperDeployValue and an empty body.
func (h *AirdropHelper) SendDeploy(ctx context.Context, via Sender) error {
	msg, err := h.DeployMessage(HelperDeployValue, nil)
	if err != nil {
		return err
	}
	return h.Send(ctx, via, msg)
}

// ClaimBody encodes the external claim body.
func ClaimBody(queryID uint64, proof *cell.Cell) (*cell.Cell, error) {
	return EncodeBody(&AirdropClaimMsg{QueryID: queryID, Proof: proof})
}

// SendClaim submits proof as an external message. No wallet is involved.
func (h *AirdropHelper) SendClaim(ctx context.Context, queryID uint64, proof *cell.Cell) error {
	body, err := ClaimBody(queryID, proof)
	if err != nil {
		return err
	}
	h.log.Debug().Str("to", addrString(h.address)).Uint64("query_id", queryID).Msg("claiming airdrop")
	return h.provider.SendExternal(ctx, h.address, nil, body)
}

// Claimed reports whether the helper already claimed. A helper that is not
// deployed reports false.
func (h *AirdropHelper) Claimed(ctx context.Context) (bool, error) {
	deployed, err := h.IsDeployed(ctx)
	if err != nil || !deployed {
		return false, err
	}
	return h.getBool(ctx, "get_claimed")
}
