// Package layout tracks the visibility of the secondary panel.
package layout

// Divider exposes the position of the split between the panels.
type Divider interface {
	Position() int
	SetPosition(pos int)
}

// Controller hides and restores the secondary panel, remembering its size.
type Controller struct {
	divider    Divider
	fallback   int
	remembered int
	hidden     bool
}

// NewController returns a controller for divider. fallback is remembered when
// the panel is hidden while the divider sits at a non-positive position.
func NewController(divider Divider, fallback int) *Controller {
	return &Controller{divider: divider, fallback: fallback}
}

// ToggleHidden collapses the panel or restores its remembered position and
// reports whether the panel is now hidden.
func (c *Controller) ToggleHidden() bool {
	if c.hidden {
		c.divider.SetPosition(c.remembered)
		c.hidden = false
		return false
	}

	pos := c.divider.Position()
	if pos > 0 {
		c.remembered = pos
	} else {
		c.remembered = c.fallback
	}
	c.divider.SetPosition(0)
	c.hidden = true
	return true
}

// Hidden reports whether the panel is collapsed.
func (c *Controller) Hidden() bool {
	return c.hidden
}

// Remembered returns the position restored on the next show.
func (c *Controller) Remembered() int {
	return c.remembered
}
