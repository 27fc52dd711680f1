package theme

import (
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
)

const (
	// DefaultScheme is used when no color-scheme preference is stored.
	DefaultScheme = "github-dark"
	// FallbackScheme is selected when the host provides no schemes at all.
	FallbackScheme = "github"

	hostSample = 10
)

// KnownSchemes is the ordered list of preferred editor scheme ids.
var KnownSchemes = []string{
	"github-dark",
	"github",
	"monokai",
	"dracula",
	"nord",
	"onedark",
	"solarized-dark",
	"solarized-light",
	"tango",
	"friendly",
}

// HostSchemes returns the scheme ids bundled with chroma, sorted.
func HostSchemes() []string {
	return styles.Names()
}

// SchemeResolver picks an editor scheme from the schemes a host provides.
type SchemeResolver struct {
	Known    []string
	Fallback string
}

// NewSchemeResolver returns a resolver using known and fallback, substituting
// the built-in values for empty arguments.
func NewSchemeResolver(known []string, fallback string) SchemeResolver {
	if len(known) == 0 {
		known = KnownSchemes
	}
	if fallback == "" {
		fallback = FallbackScheme
	}
	return SchemeResolver{Known: known, Fallback: fallback}
}

// Candidates returns the ordered list a scheme is chosen from: the known ids
// the host provides, else the first ten host ids, else the fallback id. The
// result is never empty.
func (r SchemeResolver) Candidates(host []string) []string {
	byLower := make(map[string]string, len(host))
	for _, id := range host {
		byLower[strings.ToLower(id)] = id
	}

	var out []string
	for _, id := range r.Known {
		if hostID, ok := byLower[strings.ToLower(id)]; ok {
			out = append(out, hostID)
		}
	}
	if len(out) > 0 {
		return out
	}

	if len(host) > 0 {
		n := min(len(host), hostSample)
		return append([]string(nil), host[:n]...)
	}

	return []string{r.Fallback}
}

// Resolve returns the candidate matching pref case-insensitively, or the first
// candidate.
func (r SchemeResolver) Resolve(pref string, host []string) string {
	candidates := r.Candidates(host)
	for _, id := range candidates {
		if strings.EqualFold(id, pref) {
			return id
		}
	}
	return candidates[0]
}

// Next returns the candidate after current, wrapping around.
func (r SchemeResolver) Next(current string, host []string) string {
	candidates := r.Candidates(host)
	for i, id := range candidates {
		if strings.EqualFold(id, current) {
			return candidates[(i+1)%len(candidates)]
		}
	}
	return candidates[0]
}
