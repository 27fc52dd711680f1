package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type divider struct{ pos int }

func (d *divider) Position() int       { return d.pos }
func (d *divider) SetPosition(pos int) { d.pos = pos }

func TestToggleHidden_RoundTrip(t *testing.T) {
	d := &divider{pos: 350}
	c := NewController(d, 200)

	assert.True(t, c.ToggleHidden())
	assert.Equal(t, 0, d.pos)
	assert.True(t, c.Hidden())

	assert.False(t, c.ToggleHidden())
	assert.Equal(t, 350, d.pos)
	assert.False(t, c.Hidden())
}

func TestToggleHidden_NonPositiveUsesFallback(t *testing.T) {
	d := &divider{pos: 0}
	c := NewController(d, 200)

	c.ToggleHidden()
	c.ToggleHidden()

	assert.Equal(t, 200, d.pos)
}

func TestToggleHidden_RememberedOnlyOnHide(t *testing.T) {
	d := &divider{pos: 120}
	c := NewController(d, 200)

	c.ToggleHidden()
	// resize while hidden does not change what is restored
	d.pos = 5
	c.ToggleHidden()
	assert.Equal(t, 120, d.pos)

	// manual resize while visible is picked up on the next hide
	d.pos = 90
	c.ToggleHidden()
	assert.Equal(t, 90, c.Remembered())
	c.ToggleHidden()
	assert.Equal(t, 90, d.pos)
}

func TestToggleHidden_Repeated(t *testing.T) {
	d := &divider{pos: 42}
	c := NewController(d, 10)

	for range 5 {
		c.ToggleHidden()
		c.ToggleHidden()
		assert.Equal(t, 42, d.pos)
	}
}
