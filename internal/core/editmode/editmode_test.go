package editmode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	attached []Mode
	attaches int
	detaches int
}

func (s *fakeSurface) Attach(m Mode) {
	s.attached = append(s.attached, m)
	s.attaches++
}

func (s *fakeSurface) Detach(m Mode) {
	for i, a := range s.attached {
		if a == m {
			s.attached = append(s.attached[:i], s.attached[i+1:]...)
			break
		}
	}
	s.detaches++
}

func TestController_EnableTwiceAttachesOnce(t *testing.T) {
	s := &fakeSurface{}
	c := NewController(s, NewVimMode)

	c.Enable()
	first := c.Active()
	c.Enable()

	require.Len(t, s.attached, 1)
	assert.Equal(t, 1, s.attaches)
	assert.Same(t, first, c.Active())
	assert.True(t, c.Enabled())
}

func TestController_DisableDetaches(t *testing.T) {
	s := &fakeSurface{}
	c := NewController(s, NewVimMode)

	c.Enable()
	c.Enable()
	c.Disable()

	assert.Empty(t, s.attached)
	assert.Equal(t, 1, s.detaches)
	assert.False(t, c.Enabled())
	assert.Nil(t, c.Active())
}

func TestController_DisableWhenAbsentIsNoop(t *testing.T) {
	s := &fakeSurface{}
	c := NewController(s, NewVimMode)

	assert.NotPanics(t, func() {
		c.Disable()
		c.Disable()
	})
	assert.Equal(t, 0, s.detaches)
}

func TestController_ToggleAndKey(t *testing.T) {
	s := &fakeSurface{}
	c := NewController(s, NewVimMode)

	assert.Equal(t, []string{"h"}, c.Key("h"))

	assert.True(t, c.Toggle())
	assert.Equal(t, []string{KeyLeft}, c.Key("h"))

	assert.False(t, c.Toggle())
	assert.Equal(t, []string{"h"}, c.Key("h"))

	// re-enabling attaches a fresh instance
	c.Toggle()
	assert.Equal(t, 2, s.attaches)
	assert.Len(t, s.attached, 1)
}
