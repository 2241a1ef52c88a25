package bind

import (
	"github.com/MrEthical07/banditry/mask"
)

// Value is the argument of [Accessor.Set]: either a ready mask or a list of
// names. Build one with [FromMask] or [FromNames].
type Value struct {
	mask     mask.Mask
	names    []string
	fromMask bool
}

// FromMask sets the field to m's integer. m must belong to the bound kind.
func FromMask(m mask.Mask) Value {
	return Value{mask: m, fromMask: true}
}

// FromNames sets the field to the OR of names, replacing whatever it held.
// No names clears the field.
func FromNames(names ...string) Value {
	return Value{names: names}
}
