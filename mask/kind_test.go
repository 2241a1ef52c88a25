package mask

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefineBitListsInDefinitionOrder(t *testing.T) {
	k, err := NewKind(t.Name())
	if err != nil {
		t.Fatalf("NewKind: %v", err)
	}
	t.Cleanup(func() { Forget(t.Name()) })

	if err := k.DefineBit("foo", 0b01); err != nil {
		t.Fatalf("DefineBit foo: %v", err)
	}
	if diff := cmp.Diff([]Bit{{"foo", 0b01}}, k.Bits()); diff != "" {
		t.Fatalf("bits mismatch (-want +got):\n%s", diff)
	}

	if err := k.DefineBit("bar", 0b10); err != nil {
		t.Fatalf("DefineBit bar: %v", err)
	}
	if diff := cmp.Diff([]Bit{{"foo", 0b01}, {"bar", 0b10}}, k.Bits()); diff != "" {
		t.Fatalf("bits mismatch (-want +got):\n%s", diff)
	}
}

func TestRedefineBitOverwritesValueOnly(t *testing.T) {
	k := newTestKind(t, "perms")

	if err := k.DefineBit("write", 0b1000); err != nil {
		t.Fatalf("DefineBit: %v", err)
	}

	if v, ok := k.Value("write"); !ok || v != 0b1000 {
		t.Fatalf("expected write=8, got %d (ok=%v)", v, ok)
	}
	if v, _ := k.Value("read"); v != 1 {
		t.Fatalf("expected read untouched, got %d", v)
	}
	if diff := cmp.Diff([]string{"read", "write", "execute"}, k.Names()); diff != "" {
		t.Fatalf("order changed (-want +got):\n%s", diff)
	}
}

func TestDefineBitRejectsInvalidInput(t *testing.T) {
	k := newTestKind(t, "perms")

	if err := k.DefineBit("", 1); !errors.Is(err, ErrInvalidBit) {
		t.Fatalf("expected ErrInvalidBit for empty name, got %v", err)
	}
	if err := k.DefineBit("none", 0); !errors.Is(err, ErrInvalidBit) {
		t.Fatalf("expected ErrInvalidBit for zero value, got %v", err)
	}
	if k.Count() != 3 {
		t.Fatalf("expected 3 bits, got %d", k.Count())
	}
}

func TestFrozenKindRejectsDefinitions(t *testing.T) {
	k := newTestKind(t, "perms")
	k.Freeze()

	if err := k.DefineBit("admin", 1<<3); !errors.Is(err, ErrKindFrozen) {
		t.Fatalf("expected ErrKindFrozen, got %v", err)
	}

	k.ResetBits()
	if k.Count() != 0 {
		t.Fatalf("expected empty kind after reset, got %d bits", k.Count())
	}
	if err := k.DefineBit("admin", 1<<3); err != nil {
		t.Fatalf("expected reset to unfreeze, got %v", err)
	}
}

func TestDirectory(t *testing.T) {
	k := newTestKind(t, "perms")

	got, ok := Lookup(k.Name())
	if !ok || got != k {
		t.Fatalf("Lookup(%q) = %v, %v", k.Name(), got, ok)
	}

	if _, err := NewKind(k.Name()); !errors.Is(err, ErrKindExists) {
		t.Fatalf("expected ErrKindExists, got %v", err)
	}
	if _, err := NewKind(""); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}

	Forget(k.Name())
	if _, ok := Lookup(k.Name()); ok {
		t.Fatalf("expected %q to be forgotten", k.Name())
	}
}

func TestDefineFailureDoesNotRegisterKind(t *testing.T) {
	name := t.Name()
	_, err := Define(name, Bit{Name: "read", Value: 1}, Bit{Name: "bad", Value: 0})
	if !errors.Is(err, ErrInvalidBit) {
		t.Fatalf("expected ErrInvalidBit, got %v", err)
	}
	if _, ok := Lookup(name); ok {
		t.Fatalf("expected failed Define to leave no directory entry")
	}
}

func TestMustDefinePanicsOnDuplicateKind(t *testing.T) {
	k := newTestKind(t, "perms")

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MustDefine(k.Name())
}

func TestBitResolvableOnceDefined(t *testing.T) {
	k := newTestKind(t, "perms")
	m := k.New(0)

	if err := m.Push("admin"); !errors.Is(err, ErrUndefinedBit) {
		t.Fatalf("expected ErrUndefinedBit, got %v", err)
	}
	if err := k.DefineBit("admin", 1<<3); err != nil {
		t.Fatalf("DefineBit: %v", err)
	}
	if err := m.Push("admin"); err != nil {
		t.Fatalf("expected admin to resolve after definition, got %v", err)
	}
	if m.Uint64() != 1<<3 {
		t.Fatalf("expected 8, got %d", m.Uint64())
	}
}

func TestConcurrentDefineAndLookup(t *testing.T) {
	k, err := NewKind(t.Name())
	if err != nil {
		t.Fatalf("NewKind: %v", err)
	}
	t.Cleanup(func() { Forget(t.Name()) })

	const writers = 8
	var wg sync.WaitGroup
	wg.Add(writers * 2)
	for i := 0; i < writers; i++ {
		name := string(rune('a' + i))
		go func() {
			defer wg.Done()
			_ = k.DefineBit(name, 1<<i)
		}()
		go func() {
			defer wg.Done()
			_ = k.Bits()
			_, _ = k.New(0xff).Has(name)
		}()
	}
	wg.Wait()

	if k.Count() != writers {
		t.Fatalf("expected %d bits, got %d", writers, k.Count())
	}
}
