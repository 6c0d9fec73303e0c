package tonlaunch

import (
	"fmt"
	"math/big"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// Stack reads a get-method result tuple from first to last item.
//
// Items come from the lite-client runtime: *big.Int for integers,
// *cell.Cell and *cell.Slice for cells, nil for null and []any for tuples.
type Stack struct {
	method string
	items  []any
	pos    int
}

// NewStack wraps a get-method result tuple.
func NewStack(method string, items []any) *Stack {
	return &Stack{method: method, items: items}
}

// Method returns the name of the get-method that produced the stack.
func (s *Stack) Method() string {
	return s.method
}

// Len returns the total number of items.
func (s *Stack) Len() int {
	return len(s.items)
}

// Remaining returns the number of unread items.
func (s *Stack) Remaining() int {
	return len(s.items) - s.pos
}

// Items returns the raw tuple.
func (s *Stack) Items() []any {
	return s.items
}

// next returns the next item and advances the cursor.
func (s *Stack) next() (any, int, error) {
	if s.pos >= len(s.items) {
		return nil, s.pos, &StackError{Method: s.method, Index: s.pos, Err: ErrStackUnderflow}
	}
	idx := s.pos
	s.pos++
	return s.items[idx], idx, nil
}

func (s *Stack) mismatch(idx int, expected string, got any) error {
	return &StackError{
		Method: s.method,
		Index:  idx,
		Err:    &TypeMismatchError{Expected: expected, Got: fmt.Sprintf("%T", got)},
	}
}

// Skip discards n items.
func (s *Stack) Skip(n int) error {
	for i := 0; i < n; i++ {
		if _, _, err := s.next(); err != nil {
			return err
		}
	}
	return nil
}

// ReadBigInt reads an integer item.
func (s *Stack) ReadBigInt() (*big.Int, error) {
	item, idx, err := s.next()
	if err != nil {
		return nil, err
	}
	v, ok := item.(*big.Int)
	if !ok || v == nil {
		return nil, s.mismatch(idx, "int", item)
	}
	return new(big.Int).Set(v), nil
}

// ReadInt64 reads an integer item that must fit in int64.
func (s *Stack) ReadInt64() (int64, error) {
	idx := s.pos
	v, err := s.ReadBigInt()
	if err != nil {
		return 0, err
	}
	if !v.IsInt64() {
		return 0, &StackError{Method: s.method, Index: idx, Err: fmt.Errorf("value %s overflows int64", v)}
	}
	return v.Int64(), nil
}

// ReadUint64 reads a non-negative integer item that must fit in uint64.
func (s *Stack) ReadUint64() (uint64, error) {
	idx := s.pos
	v, err := s.ReadBigInt()
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, &StackError{Method: s.method, Index: idx, Err: fmt.Errorf("value %s is not a uint64", v)}
	}
	return v.Uint64(), nil
}

// ReadBool reads an integer item as a boolean. TVM true is -1, any
// non-zero value is treated as true.
func (s *Stack) ReadBool() (bool, error) {
	v, err := s.ReadBigInt()
	if err != nil {
		return false, err
	}
	return v.Sign() != 0, nil
}

// ReadCoins reads an integer item as a nanoton amount.
func (s *Stack) ReadCoins() (tlb.Coins, error) {
	idx := s.pos
	v, err := s.ReadBigInt()
	if err != nil {
		return tlb.ZeroCoins, err
	}
	if v.Sign() < 0 {
		return tlb.ZeroCoins, &StackError{Method: s.method, Index: idx, Err: fmt.Errorf("negative amount %s", v)}
	}
	return tlb.FromNanoTON(v), nil
}

// ReadCell reads a cell or slice item as a cell.
func (s *Stack) ReadCell() (*cell.Cell, error) {
	item, idx, err := s.next()
	if err != nil {
		return nil, err
	}
	switch v := item.(type) {
	case *cell.Cell:
		if v != nil {
			return v, nil
		}
	case *cell.Slice:
		if v != nil {
			c, err := v.Copy().ToCell()
			if err != nil {
				return nil, &StackError{Method: s.method, Index: idx, Err: err}
			}
			return c, nil
		}
	}
	return nil, s.mismatch(idx, "cell", item)
}

// ReadOptionalCell reads a cell item that may be null.
func (s *Stack) ReadOptionalCell() (*cell.Cell, error) {
	if s.pos < len(s.items) && s.items[s.pos] == nil {
		s.pos++
		return nil, nil
	}
	return s.ReadCell()
}

// ReadAddress reads a slice (or cell) item holding a MsgAddress.
func (s *Stack) ReadAddress() (*address.Address, error) {
	item, idx, err := s.next()
	if err != nil {
		return nil, err
	}

	var sl *cell.Slice
	switch v := item.(type) {
	case *cell.Slice:
		if v != nil {
			sl = v.Copy()
		}
	case *cell.Cell:
		if v != nil {
			sl = v.BeginParse()
		}
	}
	if sl == nil {
		return nil, s.mismatch(idx, "slice", item)
	}

	addr, err := sl.LoadAddr()
	if err != nil {
		return nil, &StackError{Method: s.method, Index: idx, Err: err}
	}
	return addr, nil
}

// StackArgAddress packs an address into a slice argument for a get-method.
func StackArgAddress(addr *address.Address) *cell.Slice {
	return cell.BeginCell().MustStoreAddr(addr).EndCell().BeginParse()
}
