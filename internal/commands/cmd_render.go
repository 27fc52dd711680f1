package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/markview/internal/core/document"
	"github.com/hay-kot/markview/internal/core/markdown"
	"github.com/hay-kot/markview/internal/core/prefs"
	"github.com/hay-kot/markview/internal/core/preview"
	"github.com/hay-kot/markview/internal/core/styles"
	"github.com/hay-kot/markview/internal/core/theme"
	"github.com/hay-kot/markview/internal/viewer"
)

type RenderCmd struct {
	flags      *Flags
	out        string
	theme      string
	systemDark bool
}

// NewRenderCmd creates a new render command
func NewRenderCmd(flags *Flags) *RenderCmd {
	return &RenderCmd{flags: flags}
}

// Register adds the render command to the application.
func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "render",
		Usage:     "Render markdown files to standalone HTML pages",
		UsageText: "markview render [options] <file|glob|->...",
		Description: `Renders each input once and writes the page.

Inputs may be doublestar globs such as docs/**/*.md. "-" reads stdin.
A single input is written to stdout unless -o names a file. With several
inputs -o names a directory; without it each page is written next to its
source with an .html extension.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output file, or directory for several inputs",
				Destination: &cmd.out,
			},
			&cli.StringFlag{
				Name:        "theme",
				Usage:       "appearance mode (default, force-dark, force-light); defaults to the stored preference",
				Destination: &cmd.theme,
			},
			&cli.BoolFlag{
				Name:        "system-dark",
				Usage:       "treat the system appearance as dark instead of asking the terminal",
				Destination: &cmd.systemDark,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *RenderCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("at least one input is required")
	}

	inputs, err := expandInputs(c.Args().Slice())
	if err != nil {
		return err
	}

	var sys theme.System
	if c.IsSet("system-dark") {
		sys = &theme.StaticSystem{Dark: cmd.systemDark}
	} else {
		sys = theme.NewTerminalSystem()
	}

	mode := cmd.theme
	if mode == "" {
		mode = cmd.flags.Prefs.Load(prefs.KeyTheme, theme.ValueDefault)
	}
	isDark := theme.ResolveValue(mode, sys)

	r := cmd.flags.Renderer()
	w := c.Root().Writer

	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}

		doc, err := readInput(in)
		if err != nil {
			return err
		}

		target := outputFor(in, cmd.out, len(inputs))
		if err := renderTo(w, r, doc, isDark, target); err != nil {
			return err
		}

		log.Debug().Str("input", in).Str("output", target).Bool("dark", isDark).Msg("rendered")
		if target != "" {
			_, _ = fmt.Fprintf(w, "%s %s\n", styles.MutedStyle.Render("wrote"), styles.ValueStyle.Render(target))
		}
	}

	return nil
}

func renderTo(w io.Writer, r *markdown.Renderer, doc document.Document, isDark bool, target string) error {
	p := preview.Recompute(r, doc, isDark)

	if target == "" {
		_, err := io.WriteString(w, viewer.WithBase(p.HTML, p.BaseURI))
		return err
	}

	if err := viewer.NewFile(target).Load(p); err != nil {
		return fmt.Errorf("render %s: %w", doc.Name(), err)
	}
	return nil
}

// expandInputs expands glob patterns. Plain paths are kept as given so a
// missing file reports a read error rather than an empty match.
func expandInputs(args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		if arg == "-" || !strings.ContainsAny(arg, "*?[{") {
			inputs = append(inputs, arg)
			continue
		}

		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		inputs = append(inputs, matches...)
	}
	return inputs, nil
}

func readInput(in string) (document.Document, error) {
	if in != "-" {
		return document.Open(in)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return document.Document{}, fmt.Errorf("read stdin: %w", err)
	}
	return document.Document{Text: string(data)}, nil
}

// outputFor picks the output path for in. An empty result means stdout.
func outputFor(in, out string, count int) string {
	if count == 1 {
		return out
	}

	name := "stdin.html"
	if in != "-" {
		name = strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ".html"
	}

	if out == "" {
		if in == "-" {
			return name
		}
		return filepath.Join(filepath.Dir(in), name)
	}
	return filepath.Join(out, name)
}
