// Package testsupport provides the helpers integration tests lean on:
// starting an embeddable virtboard server, allocating free ports, issuing
// authenticated JSON requests, swapping the authentication subsystem for a
// fake in-memory user store, and recording ordered rollback actions.
package testsupport

// CleanupFunc is a deferred unit of work. Arguments are bound by closing
// over them at registration time.
type CleanupFunc func() error

// Rollback records cleanup actions during a sequence of setup steps and
// plays them back, in order, exactly once when the scope closes. The first
// error encountered - the scope body's own error if there was one, otherwise
// the first failing cleanup action - is the one surfaced to the caller;
// later cleanup failures are discarded.
//
// A Rollback is owned by the goroutine that created it and is not safe for
// concurrent use.
//
// Sample usage:
//
//	err := testsupport.Run(func(r *testsupport.Rollback) error {
//		srv, err := startServer()
//		if err != nil {
//			return err
//		}
//		r.PrependDefer(func() error { return srv.Shutdown(ctx) })
//		return exercise(srv)
//	})
type Rollback struct {
	actions []CleanupFunc
	closed  bool
}

// NewRollback opens a new rollback scope with an empty action list.
func NewRollback() *Rollback {
	return &Rollback{}
}

// Defer appends fn to the end of the action list.
func (r *Rollback) Defer(fn CleanupFunc) {
	if r.closed {
		panic("testsupport: Defer called after Close")
	}
	r.actions = append(r.actions, fn)
}

// PrependDefer inserts fn at the front of the action list, so it runs
// before every action registered so far. Use it when undoing steps in
// reverse acquisition order.
func (r *Rollback) PrependDefer(fn CleanupFunc) {
	if r.closed {
		panic("testsupport: PrependDefer called after Close")
	}
	r.actions = append([]CleanupFunc{fn}, r.actions...)
}

// Close runs every registered action front to back exactly once and returns
// the first error: bodyErr if non-nil, otherwise the first cleanup error.
// A failing action never stops the playback; remaining actions still run.
// The returned error is the original value, so errors.Is and errors.As keep
// working against it.
//
// Close is single-shot; the scope is terminal afterwards.
func (r *Rollback) Close(bodyErr error) error {
	if r.closed {
		panic("testsupport: Close called twice")
	}
	r.closed = true

	firstErr := bodyErr
	for _, fn := range r.actions {
		if err := fn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.actions = nil

	return firstErr
}

// Run executes body inside a fresh rollback scope and guarantees Close runs
// on every exit path, including a panic (the panic propagates after the
// cleanup actions have run). It returns the first error per Close.
func Run(body func(*Rollback) error) (err error) {
	r := NewRollback()
	defer func() {
		err = r.Close(err)
	}()
	return body(r)
}
