package capi

import (
	"fmt"
	"runtime/debug"
)

// contain runs fn and turns a panic into StatusFailed. Every entry point
// goes through it; nothing raised below may reach the caller.
func (rt *Runtime) contain(op string, fn func() Status) (st Status) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		attrs := []any{"op", op, "panic", fmt.Sprint(r)}
		if rt.cfg.TraceStack {
			attrs = append(attrs, "stack", string(debug.Stack()))
		}
		rt.log.Error("capi: contained panic", attrs...)
		st = StatusFailed
	}()
	return fn()
}

// fail logs err and maps it to a status.
func (rt *Runtime) fail(op string, err error) Status {
	st := statusOf(err)
	switch st {
	case StatusFailed:
		rt.log.Error("capi: operation failed", "op", op, "err", err)
	default:
		rt.log.Warn("capi: rejected call", "op", op, "status", st.String(), "err", err)
	}
	return st
}
