package editmode

// Surface key names produced by VimMode. They match bubbletea key strings.
const (
	KeyLeft         = "left"
	KeyRight        = "right"
	KeyUp           = "up"
	KeyDown         = "down"
	KeyHome         = "home"
	KeyEnd          = "end"
	KeyDelete       = "delete"
	KeyEnter        = "enter"
	KeyWordForward  = "alt+right"
	KeyWordBackward = "alt+left"
	KeyKillLine     = "ctrl+k"
)

type vimState int

const (
	vimNormal vimState = iota
	vimInsert
)

// VimMode is a small modal input layer: normal mode maps vim motions and
// edits onto surface keys, insert mode passes keys through until esc.
type VimMode struct {
	state   vimState
	pending string
}

// NewVimMode is a Factory for VimMode. It starts in normal mode.
func NewVimMode(Surface) Mode {
	return &VimMode{}
}

func (v *VimMode) Name() string { return "vim" }

func (v *VimMode) Status() string {
	if v.state == vimInsert {
		return "INSERT"
	}
	return "NORMAL"
}

func (v *VimMode) HandleKey(key string) []string {
	if v.state == vimInsert {
		if key == "esc" {
			v.state = vimNormal
			return []string{KeyLeft}
		}
		return []string{key}
	}

	if v.pending != "" {
		prev := v.pending
		v.pending = ""
		if prev == "d" && key == "d" {
			return []string{KeyHome, KeyKillLine, KeyDelete}
		}
		// unknown operator sequence is dropped
		return nil
	}

	switch key {
	case "h":
		return []string{KeyLeft}
	case "l":
		return []string{KeyRight}
	case "j":
		return []string{KeyDown}
	case "k":
		return []string{KeyUp}
	case "0":
		return []string{KeyHome}
	case "$":
		return []string{KeyEnd}
	case "w":
		return []string{KeyWordForward}
	case "b":
		return []string{KeyWordBackward}
	case "x":
		return []string{KeyDelete}
	case "D":
		return []string{KeyKillLine}
	case "d":
		v.pending = "d"
		return nil
	case "i":
		v.state = vimInsert
		return nil
	case "a":
		v.state = vimInsert
		return []string{KeyRight}
	case "A":
		v.state = vimInsert
		return []string{KeyEnd}
	case "I":
		v.state = vimInsert
		return []string{KeyHome}
	case "o":
		v.state = vimInsert
		return []string{KeyEnd, KeyEnter}
	case "O":
		v.state = vimInsert
		return []string{KeyHome, KeyEnter, KeyUp}
	case "left", "right", "up", "down", "home", "end", "pgup", "pgdown":
		return []string{key}
	}

	// everything else is swallowed in normal mode
	return nil
}
