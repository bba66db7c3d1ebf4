package locator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/locator"
	"github.com/junioryono/locator/internal/testutil"
)

func TestRegistry_Close(t *testing.T) {
	t.Run("disposes cached instances in reverse order", func(t *testing.T) {
		t.Parallel()

		rec := &testutil.CloseRecorder{}
		r := testutil.NewRegistry(t)

		for _, name := range []string{"first", "second", "third"} {
			locator.RegisterFunc(r, func() (*testutil.TestDisposable, error) {
				return &testutil.TestDisposable{Name: name, Recorder: rec}, nil
			}, locator.Name(name), locator.WithLifecycle(locator.Cached))
		}

		// Populate in a different order than registration.
		locator.MustResolve[*testutil.TestDisposable](r, locator.Name("second"))
		locator.MustResolve[*testutil.TestDisposable](r, locator.Name("first"))
		locator.MustResolve[*testutil.TestDisposable](r, locator.Name("third"))

		require.NoError(t, r.Close())
		assert.Equal(t, []string{"third", "first", "second"}, rec.Closed())
		assert.Equal(t, 0, r.Len())
	})

	t.Run("skips unpopulated and transient registrations", func(t *testing.T) {
		t.Parallel()

		rec := &testutil.CloseRecorder{}
		r := testutil.NewRegistry(t)

		locator.RegisterFunc(r, func() (*testutil.TestDisposable, error) {
			return &testutil.TestDisposable{Name: "lazy", Recorder: rec}, nil
		}, locator.Name("lazy"), locator.WithLifecycle(locator.Cached))
		locator.RegisterFunc(r, func() (*testutil.TestDisposable, error) {
			return &testutil.TestDisposable{Name: "transient", Recorder: rec}, nil
		}, locator.Name("transient"))
		locator.MustResolve[*testutil.TestDisposable](r, locator.Name("transient"))

		require.NoError(t, r.Close())
		assert.Empty(t, rec.Closed())
	})

	t.Run("unregistered instances are not disposed", func(t *testing.T) {
		t.Parallel()

		rec := &testutil.CloseRecorder{}
		r := testutil.NewRegistry(t)
		key := locator.RegisterInstance(r, &testutil.TestDisposable{Name: "gone", Recorder: rec})
		locator.MustResolve[*testutil.TestDisposable](r)

		r.Unregister(key)
		require.NoError(t, r.Close())
		assert.Empty(t, rec.Closed())
	})

	t.Run("aggregates errors", func(t *testing.T) {
		t.Parallel()

		r := testutil.NewRegistry(t)
		locator.RegisterInstance(r, &testutil.TestDisposable{Name: "a", Err: testutil.ErrDisposal}, locator.Name("a"))
		locator.RegisterInstance(r, &testutil.TestDisposable{Name: "b", Err: testutil.ErrDisposal}, locator.Name("b"))
		locator.MustResolve[*testutil.TestDisposable](r, locator.Name("a"))
		locator.MustResolve[*testutil.TestDisposable](r, locator.Name("b"))

		err := r.Close()
		require.Error(t, err)
		assert.ErrorIs(t, err, testutil.ErrDisposal)

		var derr locator.DisposalError
		require.ErrorAs(t, err, &derr)
		assert.Len(t, derr.Errors, 2)
		assert.Contains(t, err.Error(), "2 errors")
	})

	t.Run("shutdown passes context", func(t *testing.T) {
		t.Parallel()

		type ctxKey struct{}
		ctx := context.WithValue(context.Background(), ctxKey{}, "shutdown")

		d := &testutil.TestContextDisposable{Name: "ctx"}
		r := testutil.NewRegistry(t)
		locator.RegisterInstance(r, d)
		locator.MustResolve[*testutil.TestContextDisposable](r)

		require.NoError(t, r.Shutdown(ctx))
		require.NotNil(t, d.Ctx)
		assert.Equal(t, "shutdown", d.Ctx.Value(ctxKey{}))
	})

	t.Run("registry is usable after close", func(t *testing.T) {
		t.Parallel()

		r := testutil.NewRegistry(t)
		require.NoError(t, r.Close())

		locator.RegisterInstance(r, 5)
		assert.Equal(t, 5, locator.MustResolve[int](r))
	})
}
