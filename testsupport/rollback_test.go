package testsupport

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errBody    = errors.New("body failed")
	errCleanup = errors.New("cleanup failed")
)

// record returns a CleanupFunc that appends label to got and returns err.
func record(got *[]string, label string, err error) CleanupFunc {
	return func() error {
		*got = append(*got, label)
		return err
	}
}

func TestRollbackRunsActionsInOrder(t *testing.T) {
	var got []string

	r := NewRollback()
	for i := 0; i < 5; i++ {
		r.Defer(record(&got, fmt.Sprintf("a%d", i), nil))
	}

	require.NoError(t, r.Close(nil))
	assert.Equal(t, []string{"a0", "a1", "a2", "a3", "a4"}, got)
}

func TestRollbackPrependDeferRunsFirst(t *testing.T) {
	var got []string

	r := NewRollback()
	r.Defer(record(&got, "A", nil))
	r.Defer(record(&got, "B", nil))
	r.PrependDefer(record(&got, "C", nil))

	require.NoError(t, r.Close(nil))
	assert.Equal(t, []string{"C", "A", "B"}, got)
}

func TestRollbackInterleavedPrepends(t *testing.T) {
	var got []string

	r := NewRollback()
	r.PrependDefer(record(&got, "step1-undo", nil))
	r.PrependDefer(record(&got, "step2-undo", nil))
	r.Defer(record(&got, "logged-last", nil))
	r.PrependDefer(record(&got, "step3-undo", nil))

	require.NoError(t, r.Close(nil))
	// each prepend runs before everything registered before it
	assert.Equal(t, []string{"step3-undo", "step2-undo", "step1-undo", "logged-last"}, got)
}

func TestRollbackEachActionRunsExactlyOnce(t *testing.T) {
	counts := make([]int, 4)

	r := NewRollback()
	for i := range counts {
		i := i
		r.Defer(func() error {
			counts[i]++
			return nil
		})
	}

	require.NoError(t, r.Close(nil))
	for i, n := range counts {
		assert.Equalf(t, 1, n, "action %d ran %d times", i, n)
	}
}

func TestRollbackBodyErrorWins(t *testing.T) {
	var got []string

	r := NewRollback()
	r.Defer(record(&got, "ok", nil))

	err := r.Close(errBody)
	assert.ErrorIs(t, err, errBody)
	assert.Equal(t, []string{"ok"}, got)
}

func TestRollbackFirstCleanupErrorWins(t *testing.T) {
	var got []string
	later := errors.New("later cleanup failure")

	r := NewRollback()
	r.Defer(record(&got, "ok", nil))
	r.Defer(record(&got, "boom", errCleanup))
	r.Defer(record(&got, "also-boom", later))
	r.Defer(record(&got, "after", nil))

	err := r.Close(nil)
	assert.ErrorIs(t, err, errCleanup)
	assert.NotErrorIs(t, err, later)
	// a failing action never halts the playback
	assert.Equal(t, []string{"ok", "boom", "also-boom", "after"}, got)
}

func TestRollbackBodyErrorBeatsCleanupError(t *testing.T) {
	var got []string

	r := NewRollback()
	r.Defer(record(&got, "boom", errCleanup))

	err := r.Close(errBody)
	assert.ErrorIs(t, err, errBody)
	assert.NotErrorIs(t, err, errCleanup)
	assert.Equal(t, []string{"boom"}, got, "cleanup must still run")
}

func TestRollbackPreservesErrorIdentity(t *testing.T) {
	wrapped := fmt.Errorf("opening store: %w", errBody)

	r := NewRollback()
	err := r.Close(wrapped)

	// the original value comes back, not a re-wrapped copy
	assert.Same(t, wrapped, err)
	assert.ErrorIs(t, err, errBody)
}

func TestRollbackDeferAfterClosePanics(t *testing.T) {
	r := NewRollback()
	require.NoError(t, r.Close(nil))

	assert.Panics(t, func() { r.Defer(func() error { return nil }) })
	assert.Panics(t, func() { r.PrependDefer(func() error { return nil }) })
}

func TestRollbackDoubleClosePanics(t *testing.T) {
	r := NewRollback()
	require.NoError(t, r.Close(nil))
	assert.Panics(t, func() { _ = r.Close(nil) })
}

func TestRunReturnsBodyError(t *testing.T) {
	var got []string

	err := Run(func(r *Rollback) error {
		r.Defer(record(&got, "undo", nil))
		return errBody
	})

	assert.ErrorIs(t, err, errBody)
	assert.Equal(t, []string{"undo"}, got)
}

func TestRunReturnsFirstCleanupError(t *testing.T) {
	err := Run(func(r *Rollback) error {
		r.Defer(func() error { return errCleanup })
		return nil
	})

	assert.ErrorIs(t, err, errCleanup)
}

func TestRunCleansUpOnPanic(t *testing.T) {
	var got []string

	assert.Panics(t, func() {
		_ = Run(func(r *Rollback) error {
			r.Defer(record(&got, "undo", nil))
			panic("setup exploded")
		})
	})

	assert.Equal(t, []string{"undo"}, got, "cleanup must run before the panic propagates")
}

func TestRunReverseAcquisitionOrder(t *testing.T) {
	var got []string

	err := Run(func(r *Rollback) error {
		for i := 1; i <= 3; i++ {
			r.PrependDefer(record(&got, fmt.Sprintf("undo%d", i), nil))
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"undo3", "undo2", "undo1"}, got)
}
