package mask

import (
	"fmt"
	"slices"
	"sync"
)

// directory is the process-wide table of kinds keyed by name.
var directory = struct {
	mu      sync.RWMutex
	kinds   map[string]*Kind
	nextSeq uint64
}{
	kinds: make(map[string]*Kind),
}

func register(k *Kind) error {
	directory.mu.Lock()
	defer directory.mu.Unlock()

	if _, exists := directory.kinds[k.name]; exists {
		return fmt.Errorf("%w: %q", ErrKindExists, k.name)
	}

	directory.nextSeq++
	k.seq = directory.nextSeq
	directory.kinds[k.name] = k
	return nil
}

// Lookup returns the kind registered under name.
func Lookup(name string) (*Kind, bool) {
	directory.mu.RLock()
	defer directory.mu.RUnlock()
	k, ok := directory.kinds[name]
	return k, ok
}

// Kinds returns the names of all registered kinds, sorted.
func Kinds() []string {
	directory.mu.RLock()
	defer directory.mu.RUnlock()

	names := make([]string, 0, len(directory.kinds))
	for name := range directory.kinds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Forget removes name from the directory so it can be defined again. The
// removed *Kind stays usable by masks that already hold it.
func Forget(name string) {
	directory.mu.Lock()
	defer directory.mu.Unlock()
	delete(directory.kinds, name)
}
