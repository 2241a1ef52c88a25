// Package store persists the raw integer behind a [mask.Mask] in Redis.
//
// Each record lives under "prefix:kind:id" and holds the 8-byte encoding
// produced by [mask.Encode]. Only the integer is stored; the reader names the
// kind, so a record can be loaded by any process that defined the same kind.
// Kinds whose name contains ':' are rejected with [ErrKindName].
//
// # Architecture boundaries
//
// Store is a thin persistence adapter. It never defines bits or kinds, and
// name resolution errors from package mask are returned unchanged.
package store
