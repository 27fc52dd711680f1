package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/markview/internal/core/prefs"
	"github.com/hay-kot/markview/internal/core/styles"
	"github.com/hay-kot/markview/internal/core/theme"
	"github.com/hay-kot/markview/pkg/iojson"
)

var themeValues = []string{theme.ValueDefault, theme.ValueForceDark, theme.ValueForceLight}

type PrefsCmd struct {
	flags      *Flags
	jsonOutput bool
	importer   iojson.FileReader[map[string]string]
}

// NewPrefsCmd creates a new prefs command
func NewPrefsCmd(flags *Flags) *PrefsCmd {
	return &PrefsCmd{flags: flags}
}

// Register adds the prefs command to the application.
func (cmd *PrefsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "prefs",
		Usage: "Read and change persisted preferences",
		Description: `Preferences live in a key=value file shared with the editor.

Known keys:
  theme         default, force-dark or force-light
  color-scheme  editor highlighting scheme, see 'markview schemes'`,
		Commands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "List all stored preferences",
				UsageText: "markview prefs list [--json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runList,
			},
			{
				Name:      "get",
				Usage:     "Print the value of a preference",
				UsageText: "markview prefs get <key>",
				Action:    cmd.runGet,
			},
			{
				Name:      "set",
				Usage:     "Store a preference",
				UsageText: "markview prefs set <key> [value]",
				Description: `Stores value under key. Without a value the known keys prompt for
one when stdin is a terminal.`,
				Action: cmd.runSet,
			},
			{
				Name:      "import",
				Usage:     "Store every key of a JSON object",
				UsageText: "markview prefs import [-f file.json]",
				Flags:     []cli.Flag{cmd.importer.Flag()},
				Action:    cmd.runImport,
			},
			{
				Name:   "path",
				Usage:  "Print the preference file path",
				Action: cmd.runPath,
			},
		},
	})
	return app
}

func (cmd *PrefsCmd) runList(_ context.Context, c *cli.Command) error {
	all := cmd.flags.Prefs.All()
	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteWith(out, c.Root().ErrWriter, all)
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", styles.KeyStyle.Render(k), styles.ValueStyle.Render(all[k]))
	}
	return w.Flush()
}

func (cmd *PrefsCmd) runGet(_ context.Context, c *cli.Command) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key is required")
	}

	all := cmd.flags.Prefs.All()
	v, ok := all[key]
	if !ok {
		return cli.Exit(fmt.Sprintf("%s is not set", key), 1)
	}

	_, err := fmt.Fprintln(c.Root().Writer, v)
	return err
}

func (cmd *PrefsCmd) runSet(_ context.Context, c *cli.Command) error {
	key := c.Args().Get(0)
	value := c.Args().Get(1)
	if key == "" {
		return fmt.Errorf("key is required")
	}

	if c.Args().Len() < 2 {
		v, err := cmd.prompt(key)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		value = v
	}

	if err := validatePref(key, value); err != nil {
		return err
	}

	cmd.flags.Prefs.Save(key, value)
	_, err := fmt.Fprintf(c.Root().Writer, "%s=%s\n", styles.KeyStyle.Render(key), styles.ValueStyle.Render(value))
	return err
}

func (cmd *PrefsCmd) runImport(_ context.Context, c *cli.Command) error {
	set, err := cmd.importer.Read()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(set))
	for k := range set {
		if err := validatePref(k, set[k]); err != nil {
			return err
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		cmd.flags.Prefs.Save(k, set[k])
	}

	_, err = fmt.Fprintf(c.Root().Writer, "imported %d preference(s)\n", len(keys))
	return err
}

func (cmd *PrefsCmd) runPath(_ context.Context, c *cli.Command) error {
	_, err := fmt.Fprintln(c.Root().Writer, cmd.flags.Prefs.Path())
	return err
}

// prompt asks for a value of a known key.
func (cmd *PrefsCmd) prompt(key string) (string, error) {
	var options []string
	switch key {
	case prefs.KeyTheme:
		options = themeValues
	case prefs.KeyColorScheme:
		options = cmd.flags.Schemes().Candidates(theme.HostSchemes())
	default:
		return "", fmt.Errorf("value is required for %q", key)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("value is required (stdin is not a terminal)")
	}

	value := cmd.flags.Prefs.Load(key, options[0])
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(key).
				Options(huh.NewOptions(options...)...).
				Value(&value),
		),
	).Run()
	return value, err
}

// validatePref rejects records the file format cannot hold and theme values
// the resolver would silently ignore.
func validatePref(key, value string) error {
	if err := prefs.Validate(key, value); err != nil {
		return err
	}
	if key == prefs.KeyTheme && !slices.Contains(themeValues, value) {
		return fmt.Errorf("invalid theme %q: must be one of %v", value, themeValues)
	}
	return nil
}
