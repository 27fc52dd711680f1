package theme

import (
	"context"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// TerminalSystem seeds the system signal from the terminal background and
// then follows changes of the desktop colour-scheme setting. The lipgloss
// default renderer's dark-background flag is the host setting.
type TerminalSystem struct {
	mu   sync.Mutex
	dark bool

	probe func(ctx context.Context) (dark, ok bool)
	last  bool // last desktop reading
	known bool // last is valid
}

// NewTerminalSystem queries the terminal background once. Query before a
// bubbletea program takes over stdin.
func NewTerminalSystem() *TerminalSystem {
	return newTerminalSystem(termenv.HasDarkBackground(), DesktopDark)
}

func newTerminalSystem(dark bool, probe func(ctx context.Context) (bool, bool)) *TerminalSystem {
	s := &TerminalSystem{dark: dark, probe: probe}
	s.last, s.known = probe(context.Background())
	return s
}

// Refresh reads the desktop setting and reports whether the system signal
// changed. Only a change of the desktop setting moves the signal, so a
// desktop that disagrees with the terminal at startup does not override it.
func (s *TerminalSystem) Refresh(ctx context.Context) bool {
	reading, ok := s.probe(ctx)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.known && reading == s.last {
		return false
	}
	s.last, s.known = reading, true

	if reading == s.dark {
		return false
	}
	s.dark = reading
	return true
}

func (s *TerminalSystem) SystemDark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

func (s *TerminalSystem) Apply(mode Mode) {
	switch mode {
	case ModeForceDark:
		lipgloss.SetHasDarkBackground(true)
	case ModeForceLight:
		lipgloss.SetHasDarkBackground(false)
	default:
		lipgloss.SetHasDarkBackground(s.SystemDark())
	}
}

// StaticSystem reports a fixed signal and records the last applied mode.
type StaticSystem struct {
	Dark    bool
	Applied Mode
}

func (s *StaticSystem) SystemDark() bool { return s.Dark }

func (s *StaticSystem) Apply(mode Mode) { s.Applied = mode }
