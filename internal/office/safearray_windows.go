// SPDX-License-Identifier: MPL-2.0

//go:build windows

package office

import (
	"errors"
	"fmt"
	"math"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
)

// go-ole only converts one-dimensional SAFEARRAYs, while Range.Value is
// two-dimensional. The multi-dimensional accessors come straight from oleaut32.
var (
	modoleaut32             = syscall.NewLazyDLL("oleaut32.dll")
	procSafeArrayCreate     = modoleaut32.NewProc("SafeArrayCreate")
	procSafeArrayGetDim     = modoleaut32.NewProc("SafeArrayGetDim")
	procSafeArrayGetLBound  = modoleaut32.NewProc("SafeArrayGetLBound")
	procSafeArrayGetUBound  = modoleaut32.NewProc("SafeArrayGetUBound")
	procSafeArrayGetElement = modoleaut32.NewProc("SafeArrayGetElement")
	procSafeArrayPutElement = modoleaut32.NewProc("SafeArrayPutElement")
	procSafeArrayGetVartype = modoleaut32.NewProc("SafeArrayGetVartype")
)

type safeArrayBound struct {
	elements uint32
	lower    int32
}

func hresult(r uintptr) error {
	if int32(r) < 0 {
		return ole.NewError(r)
	}
	return nil
}

// fromSafeArray converts a VT_ARRAY variant. One-dimensional arrays become
// []any; two-dimensional arrays become rows of []any.
func (s *comSession) fromSafeArray(v *ole.VARIANT) (any, error) {
	sac := v.ToArray()
	if sac == nil || sac.Array == nil {
		return []any{}, nil
	}
	psa := uintptr(unsafe.Pointer(sac.Array))

	var vt uint16
	if err := hresult(ret(procSafeArrayGetVartype.Call(psa, uintptr(unsafe.Pointer(&vt))))); err != nil {
		return nil, fmt.Errorf("SafeArrayGetVartype: %w", err)
	}

	dims := int(ret(procSafeArrayGetDim.Call(psa)))
	if ole.VT(vt) != ole.VT_VARIANT {
		if dims != 1 {
			return nil, fmt.Errorf("unsupported %d-dimensional array of %v", dims, ole.VT(vt))
		}
		values := sac.ToValueArray()
		for i := range values {
			values[i] = normalizeScalar(values[i])
		}
		return values, nil
	}

	bounds := make([][2]int32, dims)
	for d := range dims {
		var lo, hi int32
		if err := hresult(ret(procSafeArrayGetLBound.Call(psa, uintptr(d+1), uintptr(unsafe.Pointer(&lo))))); err != nil {
			return nil, fmt.Errorf("SafeArrayGetLBound: %w", err)
		}
		if err := hresult(ret(procSafeArrayGetUBound.Call(psa, uintptr(d+1), uintptr(unsafe.Pointer(&hi))))); err != nil {
			return nil, fmt.Errorf("SafeArrayGetUBound: %w", err)
		}
		bounds[d] = [2]int32{lo, hi}
	}

	switch dims {
	case 1:
		out := make([]any, 0, bounds[0][1]-bounds[0][0]+1)
		for i := bounds[0][0]; i <= bounds[0][1]; i++ {
			val, err := s.element(psa, []int32{i})
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	case 2:
		rows := make([]any, 0, bounds[0][1]-bounds[0][0]+1)
		for r := bounds[0][0]; r <= bounds[0][1]; r++ {
			row := make([]any, 0, bounds[1][1]-bounds[1][0]+1)
			for c := bounds[1][0]; c <= bounds[1][1]; c++ {
				val, err := s.element(psa, []int32{r, c})
				if err != nil {
					return nil, err
				}
				row = append(row, val)
			}
			rows = append(rows, row)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("unsupported %d-dimensional array", dims)
	}
}

func (s *comSession) element(psa uintptr, indices []int32) (any, error) {
	var elem ole.VARIANT
	ole.VariantInit(&elem)
	if err := hresult(ret(procSafeArrayGetElement.Call(psa, uintptr(unsafe.Pointer(&indices[0])), uintptr(unsafe.Pointer(&elem))))); err != nil {
		return nil, fmt.Errorf("SafeArrayGetElement%v: %w", indices, err)
	}
	return s.fromVariant(&elem)
}

// newSafeArrayVariant builds a VT_ARRAY|VT_VARIANT from a list, or from a
// list of equal-length lists for two-dimensional values such as Range.Value.
// The caller clears the returned variant, which destroys the array.
func newSafeArrayVariant(list []any) (*ole.VARIANT, error) {
	rows, cols, twoD, err := shapeOf(list)
	if err != nil {
		return nil, err
	}

	var bounds []safeArrayBound
	if twoD {
		bounds = []safeArrayBound{{elements: uint32(rows)}, {elements: uint32(cols)}}
	} else {
		bounds = []safeArrayBound{{elements: uint32(rows)}}
	}

	psa := ret(procSafeArrayCreate.Call(uintptr(ole.VT_VARIANT), uintptr(len(bounds)), uintptr(unsafe.Pointer(&bounds[0]))))
	if psa == 0 {
		return nil, errors.New("SafeArrayCreate failed")
	}
	arr := ole.NewVariant(ole.VT_ARRAY|ole.VT_VARIANT, int64(psa))

	put := func(indices []int32, value any) error {
		elem, err := scalarVariant(value)
		if err != nil {
			return err
		}
		defer func() { _ = ole.VariantClear(&elem) }()
		return hresult(ret(procSafeArrayPutElement.Call(psa, uintptr(unsafe.Pointer(&indices[0])), uintptr(unsafe.Pointer(&elem)))))
	}

	for r, item := range list {
		if !twoD {
			if err := put([]int32{int32(r)}, item); err != nil {
				_ = ole.VariantClear(&arr)
				return nil, err
			}
			continue
		}
		for c, cell := range item.([]any) {
			if err := put([]int32{int32(r), int32(c)}, cell); err != nil {
				_ = ole.VariantClear(&arr)
				return nil, err
			}
		}
	}
	return &arr, nil
}

// shapeOf reports whether list is flat or a rectangular list of lists.
func shapeOf(list []any) (rows, cols int, twoD bool, err error) {
	rows = len(list)
	if rows == 0 {
		return 0, 0, false, nil
	}
	first, twoD := list[0].([]any)
	if !twoD {
		return rows, 0, false, nil
	}
	cols = len(first)
	for i, item := range list {
		row, ok := item.([]any)
		if !ok || len(row) != cols {
			return 0, 0, false, fmt.Errorf("row %d: nested lists must all have %d elements", i, cols)
		}
	}
	return rows, cols, true, nil
}

func scalarVariant(value any) (ole.VARIANT, error) {
	switch v := value.(type) {
	case nil:
		return ole.NewVariant(ole.VT_EMPTY, 0), nil
	case bool:
		if v {
			return ole.NewVariant(ole.VT_BOOL, -1), nil
		}
		return ole.NewVariant(ole.VT_BOOL, 0), nil
	case int:
		return intVariant(int64(v)), nil
	case int64:
		return intVariant(v), nil
	case int32:
		return ole.NewVariant(ole.VT_I4, int64(v)), nil
	case float64:
		return ole.NewVariant(ole.VT_R8, int64(math.Float64bits(v))), nil
	case string:
		return ole.NewVariant(ole.VT_BSTR, int64(uintptr(unsafe.Pointer(ole.SysAllocStringLen(v))))), nil
	case *comObject:
		if v.disp == nil {
			return ole.VARIANT{}, errReleased
		}
		v.disp.AddRef()
		return ole.NewVariant(ole.VT_DISPATCH, int64(uintptr(unsafe.Pointer(v.disp)))), nil
	default:
		return ole.VARIANT{}, fmt.Errorf("unsupported array element type %T", value)
	}
}

func intVariant(n int64) ole.VARIANT {
	if n >= -1<<31 && n <= 1<<31-1 {
		return ole.NewVariant(ole.VT_I4, n)
	}
	return ole.NewVariant(ole.VT_R8, int64(math.Float64bits(float64(n))))
}

// ret keeps the HRESULT or pointer result of a LazyProc call.
func ret(r, _ uintptr, _ error) uintptr { return r }
