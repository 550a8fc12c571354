// SPDX-License-Identifier: MPL-2.0

//go:build windows

package office

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// dispidValue is the DISPID of an object's default member.
const dispidValue int32 = 0

// HRESULTs a property get returns for a member that is a method, or that
// needs arguments the get did not pass.
const (
	dispEMemberNotFound   = 0x80020003
	dispEBadParamCount    = 0x8002000E
	dispEParamNotOptional = 0x8002000F
)

// sFalse is returned by CoInitializeEx when the apartment was already initialized.
// The call still has to be balanced by CoUninitialize.
const sFalse = 1

var errReleased = errors.New("object has been released")

type comAttacher struct{}

// NewAttacher returns the COM attacher.
//
// Attach locks the calling goroutine to its OS thread for the lifetime of the
// session; Close must be called from the same goroutine.
func NewAttacher() Attacher {
	return comAttacher{}
}

func (comAttacher) Attach(_ context.Context, kind Kind) (Session, error) {
	runtime.LockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != sFalse {
			runtime.UnlockOSThread()
			return nil, &SessionNotFoundError{App: kind.App, Noun: kind.Noun, Err: fmt.Errorf("CoInitializeEx: %w", err)}
		}
	}

	unknown, err := oleutil.GetActiveObject(kind.ProgID)
	if err != nil {
		detach()
		return nil, &SessionNotFoundError{App: kind.App, Noun: kind.Noun, Err: err}
	}

	disp, err := unknown.QueryInterface(ole.IID_IDispatch)
	unknown.Release()
	if err != nil {
		detach()
		return nil, &SessionNotFoundError{App: kind.App, Noun: kind.Noun, Err: err}
	}

	s := &comSession{kind: kind}
	s.app = s.wrap(disp)
	slog.Debug("attached to running application", "progID", kind.ProgID)
	return s, nil
}

func detach() {
	ole.CoUninitialize()
	runtime.UnlockOSThread()
}

// comSession tracks every dispatch handed out so Close can release them in
// reverse order before the apartment is torn down.
type comSession struct {
	kind    Kind
	app     *comObject
	objects []*comObject
	once    sync.Once
}

func (s *comSession) Application() Object { return s.app }

func (s *comSession) Close() {
	s.once.Do(func() {
		released := 0
		for _, obj := range slices.Backward(s.objects) {
			if obj.release() {
				released++
			}
		}
		s.objects = nil
		detach()
		slog.Debug("detached from application", "progID", s.kind.ProgID, "released", released)
	})
}

func (s *comSession) wrap(disp *ole.IDispatch) *comObject {
	obj := &comObject{disp: disp, session: s}
	s.objects = append(s.objects, obj)
	return obj
}

// comObject is an Object backed by an IDispatch pointer.
type comObject struct {
	disp    *ole.IDispatch
	session *comSession
}

func (o *comObject) Get(name string, args ...any) (any, error) {
	v, err := o.invoke(name, ole.DISPATCH_PROPERTYGET, args)
	var memberErr *MemberError
	if errors.As(err, &memberErr) && !errors.Is(err, ErrUnknownMember) && methodOnly(memberErr.Err) {
		memberErr.Err = fmt.Errorf("%w: %w", ErrNotProperty, memberErr.Err)
	}
	return v, err
}

// methodOnly reports whether a property get failed because the member
// resolved but has to be called.
func methodOnly(err error) bool {
	var oleErr *ole.OleError
	if !errors.As(err, &oleErr) {
		return false
	}
	switch oleErr.Code() {
	case dispEMemberNotFound, dispEBadParamCount, dispEParamNotOptional:
		return true
	}
	return false
}

func (o *comObject) Put(name string, args ...any) error {
	if len(args) == 0 {
		return &MemberError{Member: name, Err: errors.New("missing value to assign")}
	}
	_, err := o.invoke(name, ole.DISPATCH_PROPERTYPUT, args)
	return err
}

func (o *comObject) Call(name string, args ...any) (any, error) {
	return o.invoke(name, ole.DISPATCH_METHOD|ole.DISPATCH_PROPERTYGET, args)
}

func (o *comObject) Default(args ...any) (any, error) {
	if o.disp == nil {
		return nil, errReleased
	}
	return o.invokeID("(default)", dispidValue, ole.DISPATCH_METHOD|ole.DISPATCH_PROPERTYGET, args)
}

// Release drops the handle early. The session skips it on Close.
func (o *comObject) Release() {
	o.release()
}

func (o *comObject) release() bool {
	if o.disp == nil {
		return false
	}
	o.disp.Release()
	o.disp = nil
	return true
}

func (o *comObject) String() string {
	if o.disp == nil {
		return "<released COM object>"
	}
	if name, err := o.invoke("Name", ole.DISPATCH_PROPERTYGET, nil); err == nil {
		if s, ok := name.(string); ok {
			return fmt.Sprintf("<COM object %s>", s)
		}
	}
	return "<COM object>"
}

func (o *comObject) invoke(name string, flags int16, args []any) (any, error) {
	if o.disp == nil {
		return nil, &MemberError{Member: name, Err: errReleased}
	}
	ids, err := o.disp.GetIDsOfName([]string{name})
	if err != nil {
		return nil, &MemberError{Member: name, Err: fmt.Errorf("%w: %w", ErrUnknownMember, err)}
	}
	return o.invokeID(name, ids[0], flags, args)
}

func (o *comObject) invokeID(name string, dispid int32, flags int16, args []any) (any, error) {
	params, cleanup, err := toParams(args)
	defer cleanup()
	if err != nil {
		return nil, &MemberError{Member: name, Err: err}
	}

	result, err := o.disp.Invoke(dispid, flags, params...)
	if err != nil {
		return nil, &MemberError{Member: name, Err: err}
	}
	return o.session.fromVariant(result)
}

// fromVariant converts a result VARIANT to a plain Go value and clears it.
// Dispatch results are kept alive and tracked by the session instead.
func (s *comSession) fromVariant(v *ole.VARIANT) (any, error) {
	if v == nil {
		return nil, nil
	}

	if v.VT&ole.VT_ARRAY != 0 {
		defer func() { _ = ole.VariantClear(v) }()
		return s.fromSafeArray(v)
	}

	switch v.VT {
	case ole.VT_DISPATCH:
		disp := v.ToIDispatch()
		if disp == nil {
			return nil, nil
		}
		return s.wrap(disp), nil
	case ole.VT_UNKNOWN:
		unknown := v.ToIUnknown()
		if unknown == nil {
			return nil, nil
		}
		disp, err := unknown.QueryInterface(ole.IID_IDispatch)
		unknown.Release()
		if err != nil {
			return nil, fmt.Errorf("object does not support late binding: %w", err)
		}
		return s.wrap(disp), nil
	}

	defer func() { _ = ole.VariantClear(v) }()
	return normalizeScalar(v.Value()), nil
}

// normalizeScalar folds the sized numeric types go-ole produces into int64 and float64.
func normalizeScalar(v any) any {
	switch n := v.(type) {
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	case uint:
		return int64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}

// toParams converts caller arguments into values go-ole's Invoke accepts.
// The returned cleanup frees any SAFEARRAYs built for slice arguments and is
// always safe to call.
func toParams(args []any) ([]any, func(), error) {
	var arrays []*ole.VARIANT
	cleanup := func() {
		for _, v := range arrays {
			_ = ole.VariantClear(v)
		}
	}

	params := make([]any, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case nil, bool, string, float64, float32, int8, int16, int32, uint8, uint16, uint32, time.Time:
			params[i] = v
		case int:
			params[i] = narrowInt(int64(v))
		case int64:
			params[i] = narrowInt(v)
		case *comObject:
			if v.disp == nil {
				return nil, cleanup, errReleased
			}
			params[i] = v.disp
		case []any:
			arr, err := newSafeArrayVariant(v)
			if err != nil {
				return nil, cleanup, err
			}
			arrays = append(arrays, arr)
			params[i] = arr
		default:
			return nil, cleanup, fmt.Errorf("unsupported argument type %T", a)
		}
	}
	return params, cleanup, nil
}

// narrowInt passes integers as VT_I4 when they fit. Most automation servers
// reject VT_I8.
func narrowInt(n int64) any {
	if n >= -1<<31 && n <= 1<<31-1 {
		return int32(n)
	}
	return float64(n)
}
