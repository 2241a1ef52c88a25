package bind

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrMethodCollision is matched by every [MethodCollisionError].
	ErrMethodCollision = errors.New("method collision")
	// ErrInvalidAttribute is returned when the host field cannot back a mask.
	ErrInvalidAttribute = errors.New("invalid attribute")
	// ErrInvalidAccessor is returned for accessor names that are not Go identifiers.
	ErrInvalidAccessor = errors.New("invalid accessor name")
	// ErrNilKind is returned when binding without a kind.
	ErrNilKind = errors.New("nil kind")
	// ErrAttributeOverflow is returned when a mask does not fit the host field.
	ErrAttributeOverflow = errors.New("mask overflows attribute")
)

// MethodCollisionError reports an accessor name that the host type already has.
type MethodCollisionError struct {
	Host   reflect.Type
	Method string
}

func (e *MethodCollisionError) Error() string {
	return fmt.Sprintf("method `%s.%s` already exists", e.Host, e.Method)
}

// Is makes errors.Is(err, ErrMethodCollision) hold.
func (e *MethodCollisionError) Is(target error) bool {
	return target == ErrMethodCollision
}
