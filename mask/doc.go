// Package mask provides named bitmasks: a [Kind] maps symbolic names to bit
// values, and a [Mask] is an integer bitmask interpreted through one kind.
//
// # Kinds
//
// A kind is defined once, usually in a package-level var, and lives for the
// process lifetime. Values are arbitrary nonzero uint64s, so composite bits
// (several positions under one name) are allowed. Every kind is registered in
// a process-wide directory so encoded masks can be resolved back to their
// kind by name, see [Lookup].
//
//	var Perms = mask.MustDefine("perms",
//		mask.Bit{Name: "read", Value: 0b001},
//		mask.Bit{Name: "write", Value: 0b010},
//		mask.Bit{Name: "execute", Value: 0b100},
//	)
//
// # Membership
//
// A name is considered enabled when any of its bits overlap the mask, i.e.
// bits&value != 0. For single-bit values this is the same as a subset test.
//
// # What this package must NOT do
//
//   - Access Redis, databases, or the network.
//   - Import bind, store, or token.
//   - Log. Errors are returned to the caller.
package mask
