package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/hay-kot/markview/internal/core/document"
	"github.com/hay-kot/markview/internal/core/logging"
	"github.com/hay-kot/markview/internal/core/preview"
	"github.com/hay-kot/markview/internal/core/theme"
	"github.com/hay-kot/markview/internal/store/fswatch"
)

const watchQueueSize = 32

type WatchCmd struct {
	flags *Flags
	out   string
	serve string
}

// NewWatchCmd creates a new watch command
func NewWatchCmd(flags *Flags) *WatchCmd {
	return &WatchCmd{flags: flags}
}

// Register adds the watch command to the application.
func (cmd *WatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "watch",
		Usage:     "Re-render a document to HTML whenever it or the preferences change",
		UsageText: "markview watch [-o out.html] [--serve addr] <file>",
		Description: `Watches the document and the preference file. Every change to the
document republishes the page with the new text; every change to the
preference file republishes it with the current appearance.

Open the output in a browser with auto reload to follow along.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output HTML file",
				Destination: &cmd.out,
			},
			&cli.StringFlag{
				Name:        "serve",
				Usage:       "serve the preview over HTTP on this address (e.g. localhost:8080)",
				Destination: &cmd.serve,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *WatchCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("exactly one document is required")
	}
	if cmd.out == "" && cmd.serve == "" {
		return fmt.Errorf("--out or --serve is required")
	}

	doc, err := document.Open(c.Args().First())
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.Component("watch")

	src := &watchedDocument{doc: doc}
	sys := theme.NewTerminalSystem()
	out, shutdown, err := openMirrors(ctx, cmd.out, cmd.serve, false)
	if err != nil {
		return err
	}
	defer shutdown()

	syncer := preview.New(preview.Deps{
		Renderer: cmd.flags.Renderer(),
		Source:   src,
		Prefs:    cmd.flags.Prefs,
		System:   sys,
		Viewer:   out,
		Logger:   logging.Component("preview"),
	})

	queue := preview.NewQueue(syncer, watchQueueSize)
	queue.OnHandled(func(ev preview.Event) {
		logger.Info().Str("trigger", ev.Name()).Msg("page published")
	})

	watcher, err := fswatch.New(logging.Component("fswatch"))
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	docEvents, err := watcher.Watch(ctx, doc.Path)
	if err != nil {
		return fmt.Errorf("watch document: %w", err)
	}
	// the preference file may not exist yet, its directory must
	if err := os.MkdirAll(filepath.Dir(cmd.flags.Prefs.Path()), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	prefEvents, err := watcher.Watch(ctx, cmd.flags.Prefs.Path())
	if err != nil {
		return fmt.Errorf("watch preferences: %w", err)
	}

	syncer.Start(ctx)
	logger.Info().Str("document", doc.Path).Msg("watching")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return queue.Run(ctx)
	})

	g.Go(func() error {
		for range docEvents {
			next, err := document.Open(doc.Path)
			if err != nil {
				// keep the last good page, the next save may fix it
				logger.Warn().Err(err).Msg("reload document")
				continue
			}
			src.set(next)
			if err := queue.Push(ctx, preview.TextChanged{Text: next.Text}); err != nil {
				return err
			}
		}
		return nil
	})

	g.Go(func() error {
		for range prefEvents {
			if err := queue.Push(ctx, preview.AppearanceChanged{}); err != nil {
				return err
			}
		}
		return nil
	})

	g.Go(func() error {
		return watchSystem(ctx, sys, systemPollInterval, queue)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		log.Debug().Msg("watch stopped")
		return nil
	}
	return err
}

// systemPollInterval is how often the system dark/light signal is re-read.
const systemPollInterval = 2 * time.Second

// watchSystem pushes AppearanceChanged whenever sys reports a changed signal.
func watchSystem(ctx context.Context, sys interface{ Refresh(context.Context) bool }, every time.Duration, queue *preview.Queue) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !sys.Refresh(ctx) {
				continue
			}
			if err := queue.Push(ctx, preview.AppearanceChanged{}); err != nil {
				return err
			}
		}
	}
}

// watchedDocument is the document as last read from disk.
type watchedDocument struct {
	mu  sync.Mutex
	doc document.Document
}

func (w *watchedDocument) Snapshot() document.Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doc
}

func (w *watchedDocument) set(doc document.Document) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.doc = doc
}
