package mask

import (
	"encoding/binary"
	"iter"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Mask is an integer bitmask read through a [Kind]. It is a comparable value:
// two masks are == (and collide as map keys) exactly when they share a kind
// and an integer.
//
// The zero Mask has no kind; every name lookup on it fails.
type Mask struct {
	kind *Kind
	bits uint64
}

// Kind returns the kind the mask belongs to.
func (m Mask) Kind() *Kind {
	return m.kind
}

// Uint64 returns the raw bitmask.
func (m Mask) Uint64() uint64 {
	return m.bits
}

// IsEmpty reports whether no bit is set.
func (m Mask) IsEmpty() bool {
	return m.bits == 0
}

// Names returns, in the kind's definition order, every name whose value
// overlaps the mask.
func (m Mask) Names() []string {
	var out []string
	for name := range m.All() {
		out = append(out, name)
	}
	return out
}

// All yields the same names as [Mask.Names] without building a slice. The
// sequence reads the kind's registry each time it is ranged over.
func (m Mask) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		if m.kind == nil {
			return
		}
		for _, b := range m.kind.Bits() {
			if m.bits&b.Value == 0 {
				continue
			}
			if !yield(b.Name) {
				return
			}
		}
	}
}

// Push enables names in place. All names are resolved before the mask is
// touched, so an undefined name leaves it unchanged.
func (m *Mask) Push(names ...string) error {
	v, err := m.resolve(names)
	if err != nil {
		return err
	}
	m.bits |= v
	return nil
}

// Or returns a new mask with names enabled. The receiver is not modified.
func (m Mask) Or(names ...string) (Mask, error) {
	v, err := m.resolve(names)
	if err != nil {
		return Mask{}, err
	}
	return Mask{kind: m.kind, bits: m.bits | v}, nil
}

// Has reports whether every one of names overlaps the mask. It returns
// ErrArity when called without names.
func (m Mask) Has(names ...string) (bool, error) {
	if len(names) == 0 {
		return false, ErrArity
	}

	result := true
	for _, name := range names {
		v, err := m.resolve([]string{name})
		if err != nil {
			return false, err
		}
		if m.bits&v == 0 {
			result = false
		}
	}
	return result, nil
}

// Equal reports whether m and other share a kind and an integer.
func (m Mask) Equal(other Mask) bool {
	return m == other
}

// Hash returns a digest consistent with [Mask.Equal].
func (m Mask) Hash() uint64 {
	var buf [16]byte
	d := xxhash.New()
	if m.kind != nil {
		binary.BigEndian.PutUint64(buf[:8], m.kind.seq)
		_, _ = d.WriteString(m.kind.name)
	}
	binary.BigEndian.PutUint64(buf[8:], m.bits)
	_, _ = d.Write(buf[:])
	return d.Sum64()
}

// String renders the mask as kind(name|name).
func (m Mask) String() string {
	var b strings.Builder
	if m.kind != nil {
		b.WriteString(m.kind.name)
	}
	b.WriteByte('(')
	b.WriteString(strings.Join(m.Names(), "|"))
	b.WriteByte(')')
	return b.String()
}

func (m Mask) resolve(names []string) (uint64, error) {
	if m.kind == nil {
		if len(names) > 0 {
			return 0, &UndefinedBitError{Name: names[0]}
		}
		return 0, nil
	}
	return m.kind.resolve(names)
}
