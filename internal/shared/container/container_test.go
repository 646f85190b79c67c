package container_test

import (
	"testing"

	"github.com/skku-gallery/gallery/go-web-server/internal/shared/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeter struct{ name string }

func TestContainer_RegisterGetHas(t *testing.T) {
	c := container.New()
	assert.False(t, c.Has("greeter"))

	c.Register("greeter", &greeter{name: "gallery"})
	assert.True(t, c.Has("greeter"))

	instance, err := c.Get("greeter")
	require.NoError(t, err)
	assert.Equal(t, "gallery", instance.(*greeter).name)
}

func TestContainer_GetMissing(t *testing.T) {
	c := container.New()

	_, err := c.Get("missing")
	assert.ErrorIs(t, err, container.ErrServiceNotFound)
	assert.Contains(t, err.Error(), "missing")
}

func TestResolve(t *testing.T) {
	c := container.New()
	c.Register("greeter", &greeter{name: "gallery"})
	c.Register("count", 3)

	g, err := container.Resolve[*greeter](c, "greeter")
	require.NoError(t, err)
	assert.Equal(t, "gallery", g.name)

	_, err = container.Resolve[*greeter](c, "count")
	assert.Error(t, err)

	assert.Panics(t, func() {
		container.MustResolve[*greeter](c, "missing")
	})
	assert.Equal(t, 3, container.MustResolve[int](c, "count"))
}
