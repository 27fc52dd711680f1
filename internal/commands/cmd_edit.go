package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/markview/internal/core/document"
	"github.com/hay-kot/markview/internal/core/logging"
	"github.com/hay-kot/markview/internal/core/prefs"
	"github.com/hay-kot/markview/internal/core/preview"
	"github.com/hay-kot/markview/internal/core/theme"
	"github.com/hay-kot/markview/internal/tui"
	"github.com/hay-kot/markview/internal/viewer"
	"github.com/hay-kot/markview/pkg/logutils"
)

type EditCmd struct {
	flags   *Flags
	out     string
	serve   string
	profile bool
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags) *EditCmd {
	return &EditCmd{flags: flags}
}

// Flags returns the editor flags for registration on the root command
func (cmd *EditCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "out",
			Aliases:     []string{"o"},
			Usage:       "mirror every preview to this HTML file (overrides preview.output)",
			Sources:     cli.EnvVars("MARKVIEW_OUT"),
			Destination: &cmd.out,
		},
		&cli.StringFlag{
			Name:        "serve",
			Usage:       "serve the preview over HTTP on this address (e.g. localhost:8080)",
			Sources:     cli.EnvVars("MARKVIEW_SERVE"),
			Destination: &cmd.serve,
		},
		&cli.BoolFlag{
			Name:        "profile",
			Usage:       "mount pprof handlers on the preview server",
			Destination: &cmd.profile,
		},
	}
}

// Register adds the edit command to the application.
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Edit a markdown document with a live preview",
		UsageText: "markview edit [options] [file]",
		Description: `Opens the terminal editor with the preview pane next to it.

A missing file is created on first save. Without a file the document is
untitled and ctrl+s asks for a path.`,
		Flags:  cmd.Flags(),
		Action: cmd.run,
	})
	return app
}

// Run executes the editor. Exported for use as default command.
func (cmd *EditCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	doc, err := openOrNew(c.Args().First())
	if err != nil {
		return err
	}

	out := cmd.out
	if out == "" {
		out = cmd.flags.Config.Preview.Output
	}

	// Log lines written to the terminal would tear the UI, hold them until
	// the program exits.
	if cmd.flags.LogFile == "" {
		deferred := cmd.deferLogs()
		defer func() { _ = deferred.Flush(os.Stderr) }()
	}

	mirrors, shutdown, err := openMirrors(ctx, out, cmd.serve, cmd.profile)
	if err != nil {
		return err
	}
	defer shutdown()

	m := tui.New(ctx, cmd.flags.Config, tui.Options{
		Renderer:    cmd.flags.Renderer(),
		Prefs:       cmd.flags.Prefs,
		System:      theme.NewTerminalSystem(),
		Schemes:     cmd.flags.Schemes(),
		HostSchemes: theme.HostSchemes(),
		Document:    doc,
		Mirror:      mirrors,
		Logger:      logging.Component("preview"),
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	if fm, ok := final.(tui.Model); ok && fm.Modified() {
		log.Warn().Str("document", fm.Document().Name()).Msg("exited with unsaved changes")
	}

	return nil
}

// deferLogs buffers the global logger and rebinds the preference store,
// whose logger was derived before the swap.
func (cmd *EditCmd) deferLogs() *logutils.DeferredWriter {
	logger, deferred := logutils.Defer(log.Logger)
	log.Logger = logger

	if cmd.flags.Prefs != nil {
		cmd.flags.Prefs = prefs.New(cmd.flags.Prefs.Path(), logging.Component("prefs"))
	}
	return deferred
}

// openOrNew opens path. A missing file yields an empty document that will be
// created on save; an empty path yields an untitled document.
func openOrNew(path string) (document.Document, error) {
	if path == "" {
		return document.Document{}, nil
	}

	doc, err := document.Open(path)
	if err == nil {
		return doc, nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return document.Document{}, fmt.Errorf("open document: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return document.Document{}, fmt.Errorf("resolve path: %w", err)
	}
	return document.Document{Path: abs}, nil
}

// openMirrors builds the optional viewers fed alongside the main one. The
// returned function stops the preview server, if any.
func openMirrors(ctx context.Context, out, serve string, profile bool) (preview.Viewer, func(), error) {
	var tee viewer.Tee
	shutdown := func() {}

	if out != "" {
		tee = append(tee, viewer.NewFile(out))
	}

	if serve != "" {
		var opts []viewer.ServerOption
		if profile {
			opts = append(opts, viewer.WithProfiling())
		}

		srv := viewer.NewServer(serve, logging.Component("server"), opts...)
		if err := srv.Start(ctx); err != nil {
			return nil, shutdown, fmt.Errorf("start preview server: %w", err)
		}
		shutdown = func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown preview server")
			}
		}
		tee = append(tee, srv)
	}

	if len(tee) == 0 {
		return nil, shutdown, nil
	}
	return tee, shutdown, nil
}
