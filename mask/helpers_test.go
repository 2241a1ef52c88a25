package mask

import (
	"testing"
)

// newTestKind defines a read/write/execute kind whose directory entry is
// removed when the test ends.
func newTestKind(tb testing.TB, suffix string) *Kind {
	tb.Helper()

	name := tb.Name() + "/" + suffix
	k, err := Define(name,
		Bit{Name: "read", Value: 1 << 0},
		Bit{Name: "write", Value: 1 << 1},
		Bit{Name: "execute", Value: 1 << 2},
	)
	if err != nil {
		tb.Fatalf("define kind %q: %v", name, err)
	}
	tb.Cleanup(func() { Forget(name) })

	return k
}

func mustOr(t *testing.T, m Mask, names ...string) Mask {
	t.Helper()
	out, err := m.Or(names...)
	if err != nil {
		t.Fatalf("Or(%v): %v", names, err)
	}
	return out
}

func mustHas(t *testing.T, m Mask, names ...string) bool {
	t.Helper()
	ok, err := m.Has(names...)
	if err != nil {
		t.Fatalf("Has(%v): %v", names, err)
	}
	return ok
}
