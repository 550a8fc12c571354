// SPDX-License-Identifier: MPL-2.0

package office

import "fmt"

// Object is a late-bound handle onto a live automation object.
//
// Values crossing the boundary are plain Go values: nil, bool, int64,
// float64, string, time.Time, []any (arrays, nested for multi-dimensional
// ranges) and Object for nested automation objects. Arguments accept the same
// set plus int and the other sized integer types.
type Object interface {
	// Get reads a property, optionally parameterized.
	Get(name string, args ...any) (any, error)
	// Put assigns a property. The last argument is the value.
	Put(name string, args ...any) error
	// Call invokes a method.
	Call(name string, args ...any) (any, error)
	// Default invokes the default member, such as a collection's Item.
	Default(args ...any) (any, error)
	// Release drops the handle. Further calls fail.
	Release()
}

// MemberError wraps a failure from a single member access.
type MemberError struct {
	Member string
	Err    error
}

// Error implements the error interface.
func (e *MemberError) Error() string {
	return fmt.Sprintf("%s: %v", e.Member, e.Err)
}

// Unwrap returns the underlying automation error.
func (e *MemberError) Unwrap() error { return e.Err }

// GetObject reads a property that must hold an automation object.
func GetObject(obj Object, name string, args ...any) (Object, error) {
	v, err := obj.Get(name, args...)
	if err != nil {
		return nil, err
	}
	o, ok := v.(Object)
	if !ok {
		return nil, &MemberError{Member: name, Err: fmt.Errorf("expected an object, got %T", v)}
	}
	return o, nil
}

// GetString reads a property and coerces it to a string. nil is reported as "".
func GetString(obj Object, name string) (string, error) {
	v, err := obj.Get(name)
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	default:
		return fmt.Sprint(s), nil
	}
}

// GetInt reads a numeric property.
func GetInt(obj Object, name string) (int, error) {
	v, err := obj.Get(name)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case float64:
		return int(n), nil
	default:
		return 0, &MemberError{Member: name, Err: fmt.Errorf("expected a number, got %T", v)}
	}
}
