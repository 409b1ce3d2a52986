package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dockshell/internal/dock"
	"dockshell/internal/engine"
	"dockshell/internal/layout"
	"dockshell/internal/logging"
	"dockshell/internal/settings"
	"dockshell/internal/shell"
	"dockshell/internal/telemetry"
	"dockshell/internal/tmux"
	"dockshell/internal/ui"
)

type options struct {
	project     string
	settings    string
	r2Path      string
	analysis    int
	noEngine    bool
	resetLayout bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "dockshell [file]",
		Short: "Docking terminal shell for radare2",
		Long: `dockshell arranges functions, disassembly, hexdump, strings and a console
around a radare2 session and remembers the layout between runs.

Press SPC for the menu, . for the console and ctrl+c to quit.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) == 1 {
				file = args[0]
			}
			return run(cmd.Context(), file, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.project, "project", "p", "", "open a saved project")
	f.StringVar(&opts.settings, "settings", "", "settings file (default $DOCKSHELL_SETTINGS or the user config dir)")
	f.StringVar(&opts.r2Path, "r2", "r2", "radare2 executable")
	f.IntVarP(&opts.analysis, "analysis", "A", 1, "analysis level after loading: 0 aa, 1 aaa, 2 aaaa, -1 none")
	f.BoolVar(&opts.noEngine, "no-engine", false, "run without radare2 (empty panels)")
	f.BoolVar(&opts.resetLayout, "reset-layout", false, "ignore the saved layout")
	return cmd
}

func run(ctx context.Context, file string, opts options) error {
	logFile, err := logging.OpenFile()
	if err != nil {
		return err
	}
	defer logFile.Close()
	ctx = logging.WithLogger(ctx, logging.New(logFile))
	log := logging.FromContext(ctx).With().Str("component", "main").Logger()

	provider, err := telemetry.Setup(ctx)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := provider.Shutdown(sctx); err != nil {
			log.Warn().Err(err).Msg("telemetry shutdown")
		}
	}()

	eng, err := startEngine(ctx, file, opts)
	if err != nil {
		return err
	}
	cached, err := engine.NewCached(eng, engine.DefaultCacheSize)
	if err != nil {
		_ = eng.Close()
		return err
	}
	traced := engine.NewTraced(cached, provider)

	store := openStore(ctx, opts.settings)
	conf := settings.NewConfiguration(store, traced)
	if err := conf.LoadInitial(ctx); err != nil {
		log.Warn().Err(err).Msg("apply initial configuration")
	}

	reg := dock.NewDefaultRegistry(ctx)
	vis := dock.NewVisibility(reg)
	lock := dock.NewLock(reg)
	mgr := layout.NewManager(ctx, reg, vis)

	shOpts := shell.Options{File: file, R2Path: opts.r2Path}
	if panes, err := tmux.NewPanes(); err == nil {
		shOpts.Floater = panes
		shOpts.Liveness = tmux.ListPaneIDs
	} else {
		log.Debug().Err(err).Msg("floating docks disabled")
	}
	sh := shell.New(reg, vis, lock, mgr, traced, conf, shOpts)
	defer func() {
		if err := sh.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("close engine")
		}
	}()

	geo, hasGeo := sh.RestoreWindow(ctx, settings.LoadWindow(store), opts.resetLayout)
	if err := sh.Open(ctx, shell.OpenOptions{Project: opts.project, Analysis: opts.analysis}); err != nil {
		sh.Console().Error(err.Error())
		log.Error().Err(err).Msg("open")
	}
	sh.Finalize(ctx)

	app := ui.NewAppModel(ctx, sh, nil)
	if hasGeo && geo.Focus != "" {
		app.RestoreFocus(geo.Focus)
	}
	p := tea.NewProgram(app.AsTeaModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	if err := sh.SaveWindow(app.Geometry()); err != nil {
		log.Error().Err(err).Msg("save window settings")
		return fmt.Errorf("save window settings: %w", err)
	}
	return nil
}

func startEngine(ctx context.Context, file string, opts options) (*engine.Client, error) {
	if opts.noEngine {
		return engine.NewClient(engine.NewStub()), nil
	}
	tr, err := engine.StartPipe(ctx, opts.r2Path, file)
	if err != nil {
		return nil, fmt.Errorf("start radare2 (use --no-engine to run without it): %w", err)
	}
	return engine.NewClient(tr), nil
}

// openStore falls back to an empty store when the settings file is
// unreadable, so a broken file never blocks startup.
func openStore(ctx context.Context, path string) *settings.Store {
	log := logging.FromContext(ctx).With().Str("component", "settings").Logger()
	if path == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			log.Warn().Err(err).Msg("no settings path; settings will not persist")
			p = os.DevNull
		}
		path = p
	}
	store, err := settings.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("settings unreadable; starting from defaults")
		return settings.NewEmpty(path)
	}
	return store
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
