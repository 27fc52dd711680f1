package theme

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// desktopTimeout bounds one desktop setting query.
const desktopTimeout = time.Second

// DesktopDark reads the desktop colour-scheme setting: the GNOME
// interface color-scheme key on Linux and BSD, AppleInterfaceStyle on macOS.
// ok is false when the platform has no such setting or the query fails.
func DesktopDark(ctx context.Context) (dark, ok bool) {
	ctx, cancel := context.WithTimeout(ctx, desktopTimeout)
	defer cancel()

	switch runtime.GOOS {
	case "darwin":
		out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").Output()
		if err != nil {
			// the key is absent in light mode, which exits non-zero
			var exitErr *exec.ExitError
			return false, errors.As(err, &exitErr)
		}
		return parseAppleInterfaceStyle(string(out)), true
	case "windows":
		return false, false
	default:
		out, err := exec.CommandContext(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme").Output()
		if err != nil {
			return false, false
		}
		return parseGSettingsColorScheme(string(out))
	}
}

// parseGSettingsColorScheme parses 'default', 'prefer-dark' or 'prefer-light'.
func parseGSettingsColorScheme(out string) (dark, ok bool) {
	switch strings.Trim(strings.TrimSpace(out), "'") {
	case "prefer-dark":
		return true, true
	case "prefer-light", "default":
		return false, true
	default:
		return false, false
	}
}

func parseAppleInterfaceStyle(out string) bool {
	return strings.EqualFold(strings.TrimSpace(out), "dark")
}
