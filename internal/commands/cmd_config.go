package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/markview/internal/core/styles"
	"github.com/hay-kot/markview/pkg/iojson"
)

type ConfigCmd struct {
	flags  *Flags
	format string
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config command to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "markview config validate [options]",
				Description: "Validates the configuration file, checking value ranges, locales and the preview output path.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.runValidate,
			},
			{
				Name:   "path",
				Usage:  "Print the config file path",
				Action: cmd.runPath,
			},
		},
	})

	return app
}

// validationError is the JSON output format for a failed field.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigCmd) runValidate(_ context.Context, c *cli.Command) error {
	err := cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath)

	var fieldErrs criterio.FieldErrors
	if err != nil && !errors.As(err, &fieldErrs) {
		return err
	}

	out := c.Root().Writer

	if cmd.format == "json" {
		result := struct {
			Valid  bool              `json:"valid"`
			Errors []validationError `json:"errors,omitempty"`
		}{Valid: err == nil}
		for _, fe := range fieldErrs {
			result.Errors = append(result.Errors, validationError{Field: fe.Field, Message: fe.Err.Error()})
		}
		if werr := iojson.WriteWith(out, c.Root().ErrWriter, result); werr != nil {
			return werr
		}
		if err != nil {
			return cli.Exit("", 1)
		}
		return nil
	}

	for _, fe := range fieldErrs {
		_, _ = fmt.Fprintf(out, "%s %s\n", styles.KeyStyle.Render(fe.Field+":"), fe.Err.Error())
	}

	if err != nil {
		_, _ = fmt.Fprintln(out)
		return cli.Exit(fmt.Sprintf("%d error(s) found", len(fieldErrs)), 1)
	}

	_, _ = fmt.Fprintln(out, styles.CommandHeaderStyle.Render("Configuration is valid"))
	return nil
}

func (cmd *ConfigCmd) runPath(_ context.Context, c *cli.Command) error {
	_, err := fmt.Fprintln(c.Root().Writer, cmd.flags.ConfigPath)
	return err
}
