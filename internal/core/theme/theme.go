// Package theme resolves the persisted appearance mode against the live
// system dark/light signal and maps editor scheme preferences onto the
// schemes the host provides.
package theme

// Mode is the user-selected appearance preference.
type Mode int

const (
	ModeDefault Mode = iota
	ModeForceDark
	ModeForceLight
)

// Preference values as stored under the "theme" key.
const (
	ValueDefault    = "default"
	ValueForceDark  = "force-dark"
	ValueForceLight = "force-light"
)

// ParseMode maps a stored preference value to a Mode. Unknown and empty values
// select ModeDefault.
func ParseMode(s string) Mode {
	switch s {
	case ValueForceDark:
		return ModeForceDark
	case ValueForceLight:
		return ModeForceLight
	default:
		return ModeDefault
	}
}

// String returns the preference value for m.
func (m Mode) String() string {
	switch m {
	case ModeForceDark:
		return ValueForceDark
	case ModeForceLight:
		return ValueForceLight
	default:
		return ValueDefault
	}
}

// Next cycles default -> force-dark -> force-light -> default.
func (m Mode) Next() Mode {
	switch m {
	case ModeDefault:
		return ModeForceDark
	case ModeForceDark:
		return ModeForceLight
	default:
		return ModeDefault
	}
}

// System is the host presentation setting. SystemDark reports the live
// dark/light signal of the host; Apply pushes a resolved mode into the
// host-wide setting so surfaces outside the preview match.
type System interface {
	SystemDark() bool
	Apply(mode Mode)
}

// Resolve returns whether the dark presentation applies. Force modes win over
// the system signal; ModeDefault follows it. The mode is applied to sys before
// the signal is read.
func Resolve(mode Mode, sys System) bool {
	sys.Apply(mode)

	switch mode {
	case ModeForceDark:
		return true
	case ModeForceLight:
		return false
	default:
		return sys.SystemDark()
	}
}

// ResolveValue is Resolve for a raw preference value.
func ResolveValue(value string, sys System) bool {
	return Resolve(ParseMode(value), sys)
}
