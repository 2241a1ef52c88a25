package mask

import (
	"errors"
	"fmt"
)

var (
	// ErrUndefinedBit is matched by every [UndefinedBitError].
	ErrUndefinedBit = errors.New("undefined bit")
	// ErrArity is returned when a membership test is given no names.
	ErrArity = errors.New("wrong number of arguments (0 for 1+)")
	// ErrInvalidBit is returned when defining a bit with an empty name or a zero value.
	ErrInvalidBit = errors.New("invalid bit definition")
	// ErrInvalidKind is returned when creating a kind with an empty name.
	ErrInvalidKind = errors.New("invalid kind name")
	// ErrKindExists is returned when a kind name is already registered.
	ErrKindExists = errors.New("kind already registered")
	// ErrKindFrozen is returned when defining a bit on a frozen kind.
	ErrKindFrozen = errors.New("kind frozen")
	// ErrKindMismatch is returned when a mask of one kind is used where another is expected.
	ErrKindMismatch = errors.New("kind mismatch")
	// ErrInvalidMaskSize is returned by [Decode] for inputs that are not 8 bytes long.
	ErrInvalidMaskSize = errors.New("invalid mask size")
)

// UndefinedBitError reports a name that is not present in a kind's registry.
type UndefinedBitError struct {
	Kind string
	Name string
}

func (e *UndefinedBitError) Error() string {
	return fmt.Sprintf("undefined bit: %q", e.Name)
}

// Is makes errors.Is(err, ErrUndefinedBit) hold for any UndefinedBitError.
func (e *UndefinedBitError) Is(target error) bool {
	return target == ErrUndefinedBit
}
