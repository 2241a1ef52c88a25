package bind

import (
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"

	"github.com/MrEthical07/banditry/mask"
)

// Accessor reads, writes and queries one integer field of H as a mask of a
// single kind. It holds no per-host state; every call goes to the field.
//
// An Accessor is safe for concurrent use. Concurrent calls on the same host
// value need external synchronisation, like any field access.
type Accessor[H any] struct {
	host      reflect.Type
	attribute string
	index     []int
	name      string
	methods   []string
	kind      *mask.Kind
}

// Bind binds accessor to the integer field named attribute on struct type H,
// interpreting it through k.
//
// The accessor reserves three method names on H: the getter (accessor with
// its first letter upper-cased), the setter ("Set" + getter) and the query
// ("Has" + getter). If H has a method with any of these names, or another
// accessor already reserved one, Bind returns a *MethodCollisionError and
// reserves nothing.
func Bind[H any](attribute, accessor string, k *mask.Kind) (*Accessor[H], error) {
	if k == nil {
		return nil, ErrNilKind
	}

	getter, err := exportedName(accessor)
	if err != nil {
		return nil, err
	}

	host := reflect.TypeFor[H]()
	index, err := integerField(host, attribute)
	if err != nil {
		return nil, err
	}

	a := &Accessor[H]{
		host:      host,
		attribute: attribute,
		index:     index,
		name:      accessor,
		methods:   []string{getter, "Set" + getter, "Has" + getter},
		kind:      k,
	}
	if err := reserve(host, a.methods, a); err != nil {
		return nil, err
	}

	return a, nil
}

// MustBind is like [Bind] but panics on error. It is meant for package-level
// accessor declarations.
func MustBind[H any](attribute, accessor string, k *mask.Kind) *Accessor[H] {
	a, err := Bind[H](attribute, accessor, k)
	if err != nil {
		panic(fmt.Sprintf("bind: %v", err))
	}
	return a
}

// Name returns the accessor name given to [Bind].
func (a *Accessor[H]) Name() string {
	return a.name
}

// Methods returns the reserved getter, setter and query names.
func (a *Accessor[H]) Methods() []string {
	return append([]string(nil), a.methods...)
}

// Kind returns the bound kind.
func (a *Accessor[H]) Kind() *mask.Kind {
	return a.kind
}

// Bits returns every bit defined on the bound kind.
func (a *Accessor[H]) Bits() []mask.Bit {
	return a.kind.Bits()
}

// Get returns the field of h as a mask. h must not be nil.
//
// The mask is a copy read on every call; nothing is cached. Pushing names
// onto it does not change h; use [Accessor.Enable] or [Accessor.Set].
func (a *Accessor[H]) Get(h *H) mask.Mask {
	return a.kind.New(readUint(a.field(h)))
}

// Set overwrites the field of h. The field is left untouched when v holds
// a mask of another kind, an undefined name, or a value too wide for it.
func (a *Accessor[H]) Set(h *H, v Value) error {
	var m mask.Mask
	if v.fromMask {
		if v.mask.Kind() != a.kind {
			return fmt.Errorf("%w: %s mask for %s accessor", mask.ErrKindMismatch, v.mask.Kind(), a.kind)
		}
		m = v.mask
	} else {
		var err error
		if m, err = a.kind.FromNames(v.names...); err != nil {
			return err
		}
	}

	return a.write(h, m.Uint64())
}

// Enable adds names to the field of h, keeping bits that are already set.
func (a *Accessor[H]) Enable(h *H, names ...string) error {
	m := a.Get(h)
	if err := m.Push(names...); err != nil {
		return err
	}
	return a.write(h, m.Uint64())
}

// Has reports whether every one of names is enabled in the field of h, with
// the errors of [mask.Mask.Has].
func (a *Accessor[H]) Has(h *H, names ...string) (bool, error) {
	return a.Get(h).Has(names...)
}

// Unbind releases the reserved method names. The accessor keeps working.
func (a *Accessor[H]) Unbind() {
	release(a.host, a.methods, a)
}

func (a *Accessor[H]) field(h *H) reflect.Value {
	return reflect.ValueOf(h).Elem().FieldByIndex(a.index)
}

// write stores bits into the field. Signed fields hold the two's-complement
// pattern, so any value fitting the field width round-trips through readUint.
func (a *Accessor[H]) write(h *H, bits uint64) error {
	f := a.field(h)
	width := uint(f.Type().Bits())
	if width < 64 && bits>>width != 0 {
		return fmt.Errorf("%w: %d into %s.%s (%s)", ErrAttributeOverflow, bits, a.host, a.attribute, f.Type())
	}

	switch f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		shift := 64 - width
		f.SetInt(int64(bits<<shift) >> shift)
	default:
		f.SetUint(bits)
	}
	return nil
}

// readUint returns the field's bit pattern truncated to its width.
func readUint(f reflect.Value) uint64 {
	switch f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		bits := uint64(f.Int())
		if width := uint(f.Type().Bits()); width < 64 {
			bits &= 1<<width - 1
		}
		return bits
	default:
		return f.Uint()
	}
}

func exportedName(accessor string) (string, error) {
	r, size := utf8.DecodeRuneInString(accessor)
	if size == 0 || !(unicode.IsLetter(r) || r == '_') {
		return "", fmt.Errorf("%w: %q", ErrInvalidAccessor, accessor)
	}
	for _, c := range accessor[size:] {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			return "", fmt.Errorf("%w: %q", ErrInvalidAccessor, accessor)
		}
	}
	if !unicode.IsUpper(unicode.ToUpper(r)) {
		return "", fmt.Errorf("%w: %q cannot be exported", ErrInvalidAccessor, accessor)
	}
	return string(unicode.ToUpper(r)) + accessor[size:], nil
}

// integerField returns the index path of an exported integer field reachable
// without following pointers.
func integerField(host reflect.Type, attribute string) ([]int, error) {
	if host.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrInvalidAttribute, host)
	}

	f, ok := host.FieldByName(attribute)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no field %q", ErrInvalidAttribute, host, attribute)
	}
	if !f.IsExported() {
		return nil, fmt.Errorf("%w: %s.%s is not exported", ErrInvalidAttribute, host, attribute)
	}

	t := host
	for _, i := range f.Index[:len(f.Index)-1] {
		t = t.Field(i).Type
		if t.Kind() != reflect.Struct {
			return nil, fmt.Errorf("%w: %s.%s is promoted through a pointer", ErrInvalidAttribute, host, attribute)
		}
	}

	switch f.Type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return f.Index, nil
	default:
		return nil, fmt.Errorf("%w: %s.%s is %s, not an integer", ErrInvalidAttribute, host, attribute, f.Type)
	}
}
