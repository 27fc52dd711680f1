package preview

// Event is a trigger that causes the preview to be recomputed.
type Event interface {
	Name() string
}

// TextChanged carries the full current text of the document.
type TextChanged struct {
	Text string
}

func (TextChanged) Name() string { return "text-changed" }

// AppearanceChanged signals that the appearance preference or the system
// signal changed. Text and identity are re-read from the document source.
type AppearanceChanged struct{}

func (AppearanceChanged) Name() string { return "appearance-changed" }

// IdentityChanged signals that the document was opened or saved under a new
// path. It is handled like AppearanceChanged.
type IdentityChanged struct{}

func (IdentityChanged) Name() string { return "identity-changed" }
