package mask

import (
	"fmt"
	"sync"
)

// Bit is one named entry of a kind's registry.
type Bit struct {
	Name  string
	Value uint64
}

// Kind owns an insertion-ordered mapping from bit names to values. Masks of
// different kinds never compare equal, even when their integers match.
//
// Definitions and lookups may run concurrently.
type Kind struct {
	name string
	seq  uint64

	mu     sync.RWMutex
	order  []string
	values map[string]uint64
	frozen bool
}

// NewKind creates an empty kind and registers it in the process-wide
// directory under name.
func NewKind(name string) (*Kind, error) {
	if name == "" {
		return nil, ErrInvalidKind
	}

	k := &Kind{
		name:   name,
		values: make(map[string]uint64),
	}
	if err := register(k); err != nil {
		return nil, err
	}

	return k, nil
}

// Define creates a kind and defines bits on it in order.
func Define(name string, bits ...Bit) (*Kind, error) {
	k, err := NewKind(name)
	if err != nil {
		return nil, err
	}

	for _, b := range bits {
		if err := k.DefineBit(b.Name, b.Value); err != nil {
			Forget(name)
			return nil, err
		}
	}

	return k, nil
}

// MustDefine is like [Define] but panics on error. It is meant for
// package-level kind declarations.
func MustDefine(name string, bits ...Bit) *Kind {
	k, err := Define(name, bits...)
	if err != nil {
		panic(fmt.Sprintf("mask: define kind %q: %v", name, err))
	}
	return k
}

// Name returns the kind's directory name.
func (k *Kind) Name() string {
	return k.name
}

// DefineBit maps name to value. Redefining a name overwrites its value and
// keeps its original position in iteration order.
func (k *Kind) DefineBit(name string, value uint64) error {
	if name == "" || value == 0 {
		return fmt.Errorf("%w: %q=%d", ErrInvalidBit, name, value)
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if k.frozen {
		return ErrKindFrozen
	}

	if _, exists := k.values[name]; !exists {
		k.order = append(k.order, name)
	}
	k.values[name] = value

	return nil
}

// Value returns the value defined for name, or false if it is not defined.
func (k *Kind) Value(name string) (uint64, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	v, ok := k.values[name]
	return v, ok
}

// Bits returns every defined bit in definition order.
func (k *Kind) Bits() []Bit {
	k.mu.RLock()
	defer k.mu.RUnlock()

	out := make([]Bit, 0, len(k.order))
	for _, name := range k.order {
		out = append(out, Bit{Name: name, Value: k.values[name]})
	}
	return out
}

// Names returns every defined bit name in definition order.
func (k *Kind) Names() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return append([]string(nil), k.order...)
}

// Count returns the number of defined bits.
func (k *Kind) Count() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.order)
}

// Freeze prevents further definitions.
func (k *Kind) Freeze() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.frozen = true
}

// ResetBits drops every definition and unfreezes the kind. Masks created
// earlier keep their integers but their names no longer resolve.
// Intended for tests.
func (k *Kind) ResetBits() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.order = nil
	k.values = make(map[string]uint64)
	k.frozen = false
}

// New returns a mask of this kind holding bitmask.
func (k *Kind) New(bitmask uint64) Mask {
	return Mask{kind: k, bits: bitmask}
}

// FromNames folds names left to right through [Mask.Push], starting from an
// empty mask.
func (k *Kind) FromNames(names ...string) (Mask, error) {
	m := k.New(0)
	if err := m.Push(names...); err != nil {
		return Mask{}, err
	}
	return m, nil
}

func (k *Kind) String() string {
	return k.name
}

// resolve ORs the values of names, failing on the first undefined name.
func (k *Kind) resolve(names []string) (uint64, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var out uint64
	for _, name := range names {
		v, ok := k.values[name]
		if !ok {
			return 0, &UndefinedBitError{Kind: k.name, Name: name}
		}
		out |= v
	}
	return out, nil
}
