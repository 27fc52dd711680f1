package commands

import (
	"context"
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/markview/internal/core/prefs"
	"github.com/hay-kot/markview/internal/core/styles"
	"github.com/hay-kot/markview/internal/core/theme"
	"github.com/hay-kot/markview/pkg/iojson"
)

type SchemesCmd struct {
	flags      *Flags
	jsonOutput bool
}

// NewSchemesCmd creates a new schemes command
func NewSchemesCmd(flags *Flags) *SchemesCmd {
	return &SchemesCmd{flags: flags}
}

// Register adds the schemes command to the application.
func (cmd *SchemesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "schemes",
		Usage:     "List editor highlighting schemes",
		UsageText: "markview schemes [--json]",
		Description: `Lists the schemes the editor cycles through with ctrl+y and marks
the one the stored color-scheme preference resolves to.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})
	return app
}

// schemeInfo is the JSON output format for markview schemes --json.
type schemeInfo struct {
	Candidates []string `json:"candidates"`
	Preferred  string   `json:"preferred"`
	Resolved   string   `json:"resolved"`
	Host       int      `json:"host_schemes"`
}

func (cmd *SchemesCmd) run(_ context.Context, c *cli.Command) error {
	host := theme.HostSchemes()
	resolver := cmd.flags.Schemes()

	info := schemeInfo{
		Candidates: resolver.Candidates(host),
		Preferred:  cmd.flags.Prefs.Load(prefs.KeyColorScheme, theme.DefaultScheme),
		Host:       len(host),
	}
	info.Resolved = resolver.Resolve(info.Preferred, host)

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteWith(out, c.Root().ErrWriter, info)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, id := range info.Candidates {
		marker := " "
		name := styles.ValueStyle.Render(id)
		if id == info.Resolved {
			marker = "*"
			name = styles.CommandHeaderStyle.Render(id)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", marker, name)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !slices.Contains(info.Candidates, info.Preferred) {
		_, _ = fmt.Fprintln(out, styles.MutedStyle.Render(fmt.Sprintf("preferred %q is unavailable, using %q", info.Preferred, info.Resolved)))
	}
	return nil
}
