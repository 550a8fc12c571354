// SPDX-License-Identifier: MPL-2.0

package script

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	starlarktime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"

	"github.com/officeharness/officeharness/internal/office"
	"github.com/officeharness/officeharness/internal/report"
)

// hostObject exposes an office.Object to Starlark.
//
//	obj.Name             property get
//	obj.Name = v         property put
//	obj(1)               default member
//	obj["Sheet1"]        default member
//	obj.Save()           method call, for a member that is not a readable property
//	obj.get("Cells", 1, 2), obj.set("Cells", 1, 2, v), obj.call("Save")
type hostObject struct {
	obj office.Object
}

var (
	_ starlark.HasAttrs    = (*hostObject)(nil)
	_ starlark.HasSetField = (*hostObject)(nil)
	_ starlark.Callable    = (*hostObject)(nil)
	_ starlark.Mapping     = (*hostObject)(nil)
)

var hostMethods = map[string]*starlark.Builtin{
	"get":  starlark.NewBuiltin("get", hostGet),
	"set":  starlark.NewBuiltin("set", hostSet),
	"call": starlark.NewBuiltin("call", hostCall),
}

func (h *hostObject) String() string {
	if s, ok := h.obj.(fmt.Stringer); ok {
		return s.String()
	}
	return "<office object>"
}

func (h *hostObject) Type() string         { return "office_object" }
func (h *hostObject) Freeze()              {}
func (h *hostObject) Truth() starlark.Bool { return starlark.True }
func (h *hostObject) Name() string         { return h.Type() }

func (h *hostObject) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", h.Type())
}

func (h *hostObject) Attr(name string) (starlark.Value, error) {
	if m, ok := hostMethods[name]; ok {
		return m.BindReceiver(h), nil
	}
	v, err := h.obj.Get(name)
	if errors.Is(err, office.ErrNotProperty) {
		return &hostMethod{recv: h, name: name}, nil
	}
	if err != nil {
		return nil, err
	}
	return toStarlark(v), nil
}

func (h *hostObject) AttrNames() []string {
	return []string{"call", "get", "set"}
}

func (h *hostObject) SetField(name string, val starlark.Value) error {
	return h.obj.Put(name, exportArg(val))
}

func (h *hostObject) CallInternal(_ *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: keyword arguments are not supported", h.Type())
	}
	v, err := h.obj.Default(exportArgs(args)...)
	if err != nil {
		return nil, err
	}
	return toStarlark(v), nil
}

func (h *hostObject) Get(k starlark.Value) (starlark.Value, bool, error) {
	v, err := h.obj.Default(exportArg(k))
	if err != nil {
		return nil, false, err
	}
	return toStarlark(v), true, nil
}

// hostMethod is returned for a member that exists but is not a readable
// property. Calling it invokes the member as a method.
type hostMethod struct {
	recv *hostObject
	name string
}

var _ starlark.Callable = (*hostMethod)(nil)

func (m *hostMethod) String() string        { return fmt.Sprintf("<method %s of %s>", m.name, m.recv) }
func (m *hostMethod) Type() string          { return "office_method" }
func (m *hostMethod) Freeze()               {}
func (m *hostMethod) Truth() starlark.Bool  { return starlark.True }
func (m *hostMethod) Name() string          { return m.name }
func (m *hostMethod) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: %s", m.Type()) }

func (m *hostMethod) CallInternal(_ *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: keyword arguments are not supported", m.name)
	}
	v, err := m.recv.obj.Call(m.name, exportArgs(args)...)
	if err != nil {
		return nil, err
	}
	return toStarlark(v), nil
}

func hostGet(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	h, name, rest, err := memberArgs(b, args, kwargs, 1)
	if err != nil {
		return nil, err
	}
	v, err := h.obj.Get(name, exportArgs(rest)...)
	if err != nil {
		return nil, err
	}
	return toStarlark(v), nil
}

func hostSet(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	h, name, rest, err := memberArgs(b, args, kwargs, 2)
	if err != nil {
		return nil, err
	}
	if err := h.obj.Put(name, exportArgs(rest)...); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func hostCall(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	h, name, rest, err := memberArgs(b, args, kwargs, 1)
	if err != nil {
		return nil, err
	}
	v, err := h.obj.Call(name, exportArgs(rest)...)
	if err != nil {
		return nil, err
	}
	return toStarlark(v), nil
}

// memberArgs unpacks (name, *args) for get/set/call, requiring at least min
// positional arguments including the name.
func memberArgs(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, minArgs int) (*hostObject, string, starlark.Tuple, error) {
	if len(kwargs) > 0 {
		return nil, "", nil, fmt.Errorf("%s: keyword arguments are not supported", b.Name())
	}
	if len(args) < minArgs {
		return nil, "", nil, fmt.Errorf("%s: got %d arguments, want at least %d", b.Name(), len(args), minArgs)
	}
	name, ok := starlark.AsString(args[0])
	if !ok {
		return nil, "", nil, fmt.Errorf("%s: member name must be a string, not %s", b.Name(), args[0].Type())
	}
	return b.Receiver().(*hostObject), name, args[1:], nil
}

// constantsValue exposes office.Constants as read-only attributes.
type constantsValue struct {
	c office.Constants
}

var _ starlark.HasAttrs = (*constantsValue)(nil)

func (c *constantsValue) String() string        { return fmt.Sprintf("<constants (%d)>", c.c.Len()) }
func (c *constantsValue) Type() string          { return "constants" }
func (c *constantsValue) Freeze()               {}
func (c *constantsValue) Truth() starlark.Bool  { return starlark.True }
func (c *constantsValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: %s", c.Type()) }
func (c *constantsValue) AttrNames() []string   { return c.c.Names() }

func (c *constantsValue) Attr(name string) (starlark.Value, error) {
	v, err := c.c.Lookup(name)
	if err != nil {
		// nil, nil makes Starlark report a missing attribute.
		return nil, nil
	}
	return starlark.MakeInt64(v), nil
}

// toStarlark converts a Go value from the namespace or the host.
func toStarlark(v any) starlark.Value {
	switch x := v.(type) {
	case nil:
		return starlark.None
	case starlark.Value:
		return x
	case bool:
		return starlark.Bool(x)
	case int:
		return starlark.MakeInt(x)
	case int32:
		return starlark.MakeInt64(int64(x))
	case int64:
		return starlark.MakeInt64(x)
	case float64:
		return starlark.Float(x)
	case string:
		return starlark.String(x)
	case time.Time:
		return starlarktime.Time(x)
	case []any:
		elems := make([]starlark.Value, len(x))
		for i, e := range x {
			elems[i] = toStarlark(e)
		}
		return starlark.NewList(elems)
	case office.Object:
		return &hostObject{obj: x}
	case office.Constants:
		return &constantsValue{c: x}
	default:
		return starlark.String(fmt.Sprint(x))
	}
}

func exportArgs(args starlark.Tuple) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = exportArg(a)
	}
	return out
}

// exportArg converts a Starlark value for passing to the host.
func exportArg(v starlark.Value) any {
	return export(v, false)
}

// exportResult converts a Starlark value for reporting. Values with no JSON
// form are left as Starlark values and reported by their string form.
func exportResult(v starlark.Value) any {
	return export(v, true)
}

func export(v starlark.Value, forResult bool) any {
	switch x := v.(type) {
	case starlark.NoneType:
		return nil
	case starlark.Bool:
		return bool(x)
	case starlark.Int:
		if n, ok := x.Int64(); ok {
			return n
		}
		if forResult {
			return json.Number(x.String())
		}
		f, _ := new(big.Float).SetInt(x.BigInt()).Float64()
		return f
	case starlark.Float:
		return float64(x)
	case starlark.String:
		return string(x)
	case starlarktime.Time:
		return time.Time(x)
	case *starlark.List:
		out := make([]any, x.Len())
		for i := range x.Len() {
			out[i] = export(x.Index(i), forResult)
		}
		return out
	case starlark.Tuple:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = export(e, forResult)
		}
		return out
	case *starlark.Dict:
		items := x.Items()
		m := make(report.OrderedMap, 0, len(items))
		for _, kv := range items {
			m = append(m, report.Field{Key: export(kv[0], forResult), Value: export(kv[1], forResult)})
		}
		return m
	case *hostObject:
		if forResult {
			return x
		}
		return x.obj
	default:
		return v
	}
}
