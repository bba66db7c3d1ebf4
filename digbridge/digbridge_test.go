package digbridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"github.com/junioryono/locator"
	"github.com/junioryono/locator/digbridge"
)

type database struct {
	dsn string
}

type repository struct {
	db *database
}

func TestProvide(t *testing.T) {
	t.Run("unnamed registration", func(t *testing.T) {
		r := locator.New()
		db := &database{dsn: "postgres://localhost"}
		locator.RegisterInstance(r, db)

		c := dig.New()
		require.NoError(t, digbridge.Provide[*database](c, r, nil))
		require.NoError(t, c.Provide(func(db *database) *repository {
			return &repository{db: db}
		}))

		err := c.Invoke(func(repo *repository) {
			assert.Same(t, db, repo.db)
		})
		require.NoError(t, err)
	})

	t.Run("named registration", func(t *testing.T) {
		r := locator.New()
		locator.RegisterInstance(r, &database{dsn: "primary"}, locator.Name("primary"))
		locator.RegisterInstance(r, &database{dsn: "replica"}, locator.Name("replica"))

		c := dig.New()
		require.NoError(t, digbridge.Provide[*database](c, r, "primary"))
		require.NoError(t, digbridge.Provide[*database](c, r, "replica"))

		type params struct {
			dig.In

			Primary *database `name:"primary"`
			Replica *database `name:"replica"`
		}

		err := c.Invoke(func(p params) {
			assert.Equal(t, "primary", p.Primary.dsn)
			assert.Equal(t, "replica", p.Replica.dsn)
		})
		require.NoError(t, err)
	})

	t.Run("missing registration", func(t *testing.T) {
		r := locator.New()

		c := dig.New()
		require.NoError(t, digbridge.Provide[*database](c, r, nil))

		err := c.Invoke(func(*database) {})
		require.Error(t, err)
		assert.ErrorIs(t, dig.RootCause(err), locator.ErrNotFound)
	})

	t.Run("factory failure", func(t *testing.T) {
		r := locator.New()
		locator.RegisterFunc(r, func() (*database, error) {
			return nil, assert.AnError
		})

		c := dig.New()
		require.NoError(t, digbridge.Provide[*database](c, r, nil))

		err := c.Invoke(func(*database) {})
		require.Error(t, err)

		var rerr locator.ResolutionError
		require.ErrorAs(t, dig.RootCause(err), &rerr)
		assert.ErrorIs(t, rerr, assert.AnError)
	})
}

func TestProvideKey(t *testing.T) {
	r := locator.New()
	key := locator.RegisterFactory(r, func(n int) (int, error) {
		return n * 2, nil
	}, locator.Name("double"))

	c := dig.New()
	require.NoError(t, digbridge.ProvideKey[int](c, r, key, 21))

	type params struct {
		dig.In

		Double int `name:"double"`
	}

	err := c.Invoke(func(p params) {
		assert.Equal(t, 42, p.Double)
	})
	require.NoError(t, err)
}

func TestProvideAll(t *testing.T) {
	r := locator.New()
	locator.RegisterInstance(r, &database{dsn: "default"}, locator.InContainer("prod"))
	locator.RegisterInstance(r, &database{dsn: "analytics"}, locator.Name("analytics"), locator.InContainer("prod"))
	locator.RegisterInstance(r, &database{dsn: "test"}, locator.InContainer("test"))

	c := dig.New()
	require.NoError(t, digbridge.ProvideAll[*database](c, r, "prod"))

	type params struct {
		dig.In

		Default   *database
		Analytics *database `name:"analytics"`
	}

	err := c.Invoke(func(p params) {
		assert.Equal(t, "default", p.Default.dsn)
		assert.Equal(t, "analytics", p.Analytics.dsn)
	})
	require.NoError(t, err)
}
