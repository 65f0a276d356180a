// Package run executes functions so that their panics come back as errors.
package run

import "fmt"

//WithError calls fn and turns its panic, if any, into the returned error.
func WithError(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fromPanic(p)
		}
	}()

	return fn()
}

//AsyncWithError calls fn in a new goroutine. The channel receives exactly one value.
func AsyncWithError(fn func() error) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- WithError(fn)
	}()

	return errCh
}

func fromPanic(p any) error {
	if perr, ok := p.(error); ok {
		return perr
	}
	return fmt.Errorf("panic: %v", p)
}
