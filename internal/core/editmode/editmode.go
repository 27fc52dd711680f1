// Package editmode manages an optional alternate input mode attached to the
// editing surface. At most one mode is attached at any time.
package editmode

// Mode interprets keystrokes before they reach the editing surface.
type Mode interface {
	// Name identifies the mode, e.g. "vim".
	Name() string
	// HandleKey consumes key and returns the keys the surface should receive,
	// in order. An empty result means the key was swallowed.
	HandleKey(key string) []string
	// Status is a short indicator for the status bar.
	Status() string
}

// Surface is the editing surface modes attach to.
type Surface interface {
	Attach(m Mode)
	Detach(m Mode)
}

// Factory constructs a mode bound to surface.
type Factory func(surface Surface) Mode

// Controller owns the single optional mode slot.
type Controller struct {
	surface Surface
	factory Factory
	active  Mode
}

// NewController returns a disabled controller.
func NewController(surface Surface, factory Factory) *Controller {
	return &Controller{surface: surface, factory: factory}
}

// Enable attaches a new mode unless one is already attached.
func (c *Controller) Enable() {
	if c.active != nil {
		return
	}
	m := c.factory(c.surface)
	c.surface.Attach(m)
	c.active = m
}

// Disable detaches the attached mode, if any.
func (c *Controller) Disable() {
	if c.active == nil {
		return
	}
	c.surface.Detach(c.active)
	c.active = nil
}

// Toggle flips between enabled and disabled and reports the new state.
func (c *Controller) Toggle() bool {
	if c.active != nil {
		c.Disable()
		return false
	}
	c.Enable()
	return true
}

// Enabled reports whether a mode is attached.
func (c *Controller) Enabled() bool {
	return c.active != nil
}

// Active returns the attached mode or nil.
func (c *Controller) Active() Mode {
	return c.active
}

// Key passes key through the attached mode. Without a mode the key reaches
// the surface unchanged.
func (c *Controller) Key(key string) []string {
	if c.active == nil {
		return []string{key}
	}
	return c.active.HandleKey(key)
}
