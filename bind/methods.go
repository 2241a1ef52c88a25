package bind

import (
	"reflect"
	"sync"
)

type methodKey struct {
	host reflect.Type
	name string
}

// bound records which accessor holds each reserved method name.
var bound = struct {
	mu     sync.Mutex
	owners map[methodKey]any
}{
	owners: make(map[methodKey]any),
}

// reserve claims every name for owner, or none of them.
func reserve(host reflect.Type, names []string, owner any) error {
	bound.mu.Lock()
	defer bound.mu.Unlock()

	ptr := reflect.PointerTo(host)
	for _, name := range names {
		if _, ok := ptr.MethodByName(name); ok {
			return &MethodCollisionError{Host: host, Method: name}
		}
		if _, ok := bound.owners[methodKey{host, name}]; ok {
			return &MethodCollisionError{Host: host, Method: name}
		}
	}

	for _, name := range names {
		bound.owners[methodKey{host, name}] = owner
	}
	return nil
}

func release(host reflect.Type, names []string, owner any) {
	bound.mu.Lock()
	defer bound.mu.Unlock()

	for _, name := range names {
		key := methodKey{host, name}
		if bound.owners[key] == owner {
			delete(bound.owners, key)
		}
	}
}
