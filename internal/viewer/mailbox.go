// Package viewer provides the surfaces that rendered pages are published to.
package viewer

import (
	"sync"

	"github.com/hay-kot/markview/internal/core/page"
)

// Mailbox holds the latest published page. Each Load replaces the previous
// page entirely.
type Mailbox struct {
	mu         sync.Mutex
	page       page.Page
	background page.RGB
	loads      int
}

// NewMailbox returns an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{}
}

func (m *Mailbox) SetBackground(bg page.RGB) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.background = bg
}

func (m *Mailbox) Load(p page.Page) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.page = p
	m.loads++
	return nil
}

// Latest returns the current page and whether one was ever loaded.
func (m *Mailbox) Latest() (page.Page, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.page, m.loads > 0
}

// Background returns the last published background colour.
func (m *Mailbox) Background() page.RGB {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.background
}

// Loads returns the number of pages published so far.
func (m *Mailbox) Loads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}
