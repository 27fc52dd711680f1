package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/markview/internal/core/editmode"
	"github.com/hay-kot/markview/internal/core/styles"
)

// surfaceKeys maps key names emitted by editing modes onto the key messages
// the textarea understands.
var surfaceKeys = map[string]tea.KeyMsg{
	editmode.KeyLeft:         {Type: tea.KeyLeft},
	editmode.KeyRight:        {Type: tea.KeyRight},
	editmode.KeyUp:           {Type: tea.KeyUp},
	editmode.KeyDown:         {Type: tea.KeyDown},
	editmode.KeyHome:         {Type: tea.KeyHome},
	editmode.KeyEnd:          {Type: tea.KeyEnd},
	editmode.KeyDelete:       {Type: tea.KeyDelete},
	editmode.KeyEnter:        {Type: tea.KeyEnter},
	editmode.KeyWordForward:  {Type: tea.KeyRight, Alt: true},
	editmode.KeyWordBackward: {Type: tea.KeyLeft, Alt: true},
	editmode.KeyKillLine:     {Type: tea.KeyCtrlK},
	"esc":                    {Type: tea.KeyEsc},
	"backspace":              {Type: tea.KeyBackspace},
	"tab":                    {Type: tea.KeyTab},
	" ":                      {Type: tea.KeySpace, Runes: []rune{' '}},
}

// editorPane is the editing surface. Editing modes attach to it.
type editorPane struct {
	textarea.Model
	mode editmode.Mode
}

func newEditorPane(text string, lineNumbers bool) *editorPane {
	ta := textarea.New()
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = lineNumbers
	ta.Prompt = ""
	ta.SetValue(text)
	ta.Focus()

	return &editorPane{Model: ta}
}

func (e *editorPane) Attach(m editmode.Mode) { e.mode = m }

func (e *editorPane) Detach(editmode.Mode) { e.mode = nil }

// applyScheme restyles the surface from the named highlighting scheme.
func (e *editorPane) applyScheme(scheme string) {
	st := styles.NewEditorStyles(styles.SchemeColors(scheme))
	ts := textarea.Style{
		Base:             st.Base,
		Text:             st.Text,
		LineNumber:       st.LineNumber,
		CursorLine:       st.CursorLine,
		CursorLineNumber: st.CursorLineNumber,
		EndOfBuffer:      st.LineNumber,
		Placeholder:      st.LineNumber,
		Prompt:           st.LineNumber,
	}
	e.FocusedStyle = ts
	e.BlurredStyle = ts
}

// press feeds keys to the textarea. When keys is exactly the original
// keystroke the original message is used so modifiers and pasted runes
// survive.
func (e *editorPane) press(keys []string, orig tea.KeyMsg) tea.Cmd {
	if len(keys) == 1 && keys[0] == orig.String() {
		var cmd tea.Cmd
		e.Model, cmd = e.Model.Update(orig)
		return cmd
	}

	var cmds []tea.Cmd
	for _, k := range keys {
		var cmd tea.Cmd
		e.Model, cmd = e.Model.Update(keyMsgFor(k))
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func keyMsgFor(k string) tea.KeyMsg {
	if msg, ok := surfaceKeys[k]; ok {
		return msg
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}
