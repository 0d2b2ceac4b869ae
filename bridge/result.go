package bridge

import (
	"sync"
)

// RawResult is either a byte payload or an error message produced by the simulator. It owns
// the payload buffer until IntoResult copies it out and releases it.
type RawResult struct {
	data    []byte
	errMsg  string
	isErr   bool
	release func()
	once    sync.Once
}

// Success returns a RawResult carrying data. release, if not nil, is called exactly once when
// the result is converted or released.
func Success(data []byte, release func()) *RawResult {
	return &RawResult{data: data, release: release}
}

// Failure returns a RawResult carrying the error message msg.
func Failure(msg string) *RawResult {
	return &RawResult{errMsg: msg, isErr: true}
}

// IsErr reports whether the result carries an error message.
func (r *RawResult) IsErr() bool {
	return r.isErr
}

// IntoResult copies the payload out of the result and releases the underlying buffer. A
// failure is returned as *ResultError. Calling IntoResult twice returns an error.
func (r *RawResult) IntoResult() ([]byte, error) {
	released := false
	r.once.Do(func() { released = true })
	if !released {
		return nil, &ResultError{Msg: "raw result already consumed"}
	}
	defer r.free()

	if r.isErr {
		return nil, &ResultError{Msg: r.errMsg}
	}

	var out []byte
	switch {
	case r.data == nil:
		out = nil
	case len(r.data) == 0:
		out = []byte{}
	default:
		out = make([]byte, len(r.data))
		copy(out, r.data)
	}

	return out, nil
}

// Release drops the result without reading it.
func (r *RawResult) Release() {
	r.once.Do(r.free)
}

func (r *RawResult) free() {
	r.data = nil
	if r.release != nil {
		r.release()
		r.release = nil
	}
}

// ResultError is the error message the simulator returned instead of a payload.
type ResultError struct {
	Msg string
}

func (e *ResultError) Error() string {
	return e.Msg
}
