// Package bind attaches named-bitmask accessors to an integer field of a host
// struct without changing the host type.
//
// [Bind] resolves the field once, reserves three accessor names for the host
// type and returns an [Accessor] that reads, writes and queries the field
// through a [mask.Kind]:
//
//	type File struct {
//		ModeMask uint8
//	}
//
//	var fileMode = bind.MustBind[File]("ModeMask", "mode", FileMode)
//
//	fileMode.Set(f, bind.FromNames("r", "x")) // f.ModeMask == 5
//	fileMode.Has(f, "r")                      // true, nil
//
// Accessor "mode" reserves the names Mode, SetMode and HasMode. Binding fails
// with a [*MethodCollisionError] when the host already declares a method
// with one of them, or when another accessor on the same host holds it.
//
// # Architecture boundaries
//
// The binder only wires and detects collisions. Every other check is done by
// package mask, and its errors are returned unchanged.
package bind
