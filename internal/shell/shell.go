// Package shell turns user actions into layout changes and engine commands.
// It is the only place the UI reaches the core from.
package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"dockshell/internal/dock"
	"dockshell/internal/engine"
	"dockshell/internal/layout"
	"dockshell/internal/logging"
	"dockshell/internal/session"
	"dockshell/internal/settings"
)

// Floater opens a dock's content in a separate terminal pane.
type Floater interface {
	Float(title string, argv []string) (paneID string, err error)
	Close(paneID string) error
}

// Options configures a Shell.
type Options struct {
	// File is the binary the engine was started on, if any.
	File string

	// R2Path is used for floated docks.
	R2Path string

	// Floater is nil when floating is unavailable.
	Floater Floater

	// Liveness lists the panes still open, so floats the user closed by
	// hand are forgotten. Nil keeps every float until shutdown.
	Liveness session.LivenessChecker
}

// Shell owns the core components for one window.
type Shell struct {
	reg     *dock.Registry
	vis     *dock.Visibility
	lock    *dock.Lock
	layout  *layout.Manager
	eng     engine.Engine
	conf    *settings.Configuration
	store   *settings.Store
	console *Console
	opts    Options

	project    string
	dirty      bool
	tabsOnTop  bool
	responsive bool
	floats     *session.Tracker
	refresh    []func()
}

// New wires a shell over the given components. Project saves are reported
// on the console.
func New(reg *dock.Registry, vis *dock.Visibility, lock *dock.Lock, mgr *layout.Manager,
	eng engine.Engine, conf *settings.Configuration, opts Options) *Shell {
	s := &Shell{
		reg:     reg,
		vis:     vis,
		lock:    lock,
		layout:  mgr,
		eng:     eng,
		conf:    conf,
		store:   conf.Store(),
		console: NewConsole(DefaultConsoleLines),
		opts:    opts,
		floats:  session.New(opts.Liveness),
	}
	eng.OnProjectSaved(func(name string) {
		s.console.Output("Project saved: " + name)
	})
	return s
}

func (s *Shell) Registry() *dock.Registry               { return s.reg }
func (s *Shell) Layout() *layout.Manager                { return s.layout }
func (s *Shell) Lock() *dock.Lock                       { return s.lock }
func (s *Shell) Visibility() *dock.Visibility           { return s.vis }
func (s *Shell) Engine() engine.Engine                  { return s.eng }
func (s *Shell) Console() *Console                      { return s.console }
func (s *Shell) Configuration() *settings.Configuration { return s.conf }

func (s *Shell) Project() string  { return s.project }
func (s *Shell) Dirty() bool      { return s.dirty }
func (s *Shell) TabsOnTop() bool  { return s.tabsOnTop }
func (s *Shell) Responsive() bool { return s.responsive }

// OnRefresh registers fn to run whenever panels should re-query the engine.
func (s *Shell) OnRefresh(fn func()) {
	s.refresh = append(s.refresh, fn)
}

// Dispatch runs req. Destructive requests return a *ConfirmError wrapping
// ErrNeedsConfirmation and change nothing; run them with DispatchConfirmed
// once the user agrees. Engine failures are written to the console and do
// not fail the dispatch.
func (s *Shell) Dispatch(ctx context.Context, req Request) (Outcome, error) {
	switch req.Action {
	case ActionResetSettings:
		return Outcome{}, &ConfirmError{Request: req, Prompt: "Do you really want to clear all settings?"}
	case ActionQuit:
		if s.dirty {
			return Outcome{}, &ConfirmError{Request: req, Prompt: "The project has unsaved changes. Quit anyway?"}
		}
	}
	return s.DispatchConfirmed(ctx, req)
}

// DispatchConfirmed runs req without asking.
func (s *Shell) DispatchConfirmed(ctx context.Context, req Request) (Outcome, error) {
	log := logging.FromContext(ctx).With().Str("component", "shell").Str("action", req.Action.String()).Logger()
	log.Debug().Str("dock", string(req.Dock)).Str("arg", req.Arg).Msg("dispatch")

	switch req.Action {
	case ActionResetLayout:
		s.layout.ResetToDefault()
		return Outcome{}, nil

	case ActionLockToggle, ActionLockAccelerator:
		s.lock.Toggle()
		return Outcome{}, nil

	case ActionTabsOnTop:
		s.tabsOnTop = !s.tabsOnTop
		return Outcome{}, nil

	case ActionResponsive:
		s.responsive = !s.responsive
		s.store.Set(settings.KeyResponsive, s.responsive)
		if err := s.store.Sync(); err != nil {
			log.Warn().Err(err).Msg("persist responsive flag")
		}
		return Outcome{}, nil

	case ActionResetSettings:
		if err := s.conf.ResetAll(ctx); err != nil {
			s.console.Error(err.Error())
			return Outcome{}, nil
		}
		s.console.Debug("settings reset to defaults")
		return Outcome{Refresh: s.notifyRefresh()}, nil

	case ActionSave:
		if s.project == "" {
			return Outcome{}, ErrNeedsProjectName
		}
		s.save(ctx, s.project)
		return Outcome{}, nil

	case ActionSaveAs:
		name := strings.TrimSpace(req.Arg)
		if name == "" {
			return Outcome{}, ErrNeedsProjectName
		}
		if s.save(ctx, name) {
			s.project = name
		}
		return Outcome{}, nil

	case ActionQuit:
		s.closeFloats(ctx)
		return Outcome{Quit: true}, nil

	case ActionSaveAndQuit:
		name := s.project
		if arg := strings.TrimSpace(req.Arg); arg != "" {
			name = arg
		}
		if name == "" {
			return Outcome{}, ErrNeedsProjectName
		}
		if !s.save(ctx, name) {
			return Outcome{}, nil
		}
		s.project = name
		s.closeFloats(ctx)
		return Outcome{Quit: true}, nil

	case ActionSeek:
		if strings.TrimSpace(req.Arg) == "" {
			return Outcome{}, nil
		}
		return s.run(ctx, engine.Seek(strings.TrimSpace(req.Arg)), false), nil
	case ActionSeekBack:
		return s.run(ctx, engine.Command{Kind: engine.KindSeekPrev}, false), nil
	case ActionSeekForward:
		return s.run(ctx, engine.Command{Kind: engine.KindSeekNext}, false), nil

	case ActionRefresh:
		if inv, ok := s.eng.(engine.Invalidator); ok {
			inv.Invalidate()
		}
		return Outcome{Refresh: s.notifyRefresh()}, nil

	case ActionRunScript:
		return s.run(ctx, engine.RunScript(req.Arg), true), nil
	case ActionLoadPDB:
		return s.run(ctx, engine.LoadPDB(req.Arg), true), nil
	case ActionAnalyze:
		return s.run(ctx, engine.Analyze(req.N), true), nil
	case ActionCommand:
		text := strings.TrimSpace(req.Arg)
		if text == "" {
			return Outcome{}, nil
		}
		s.console.Debug("> " + text)
		return s.run(ctx, engine.Raw(text), !inspectOnly(text)), nil

	case ActionToggleDock:
		visible, err := s.vis.Toggle(req.Dock)
		if err != nil {
			return Outcome{}, err
		}
		if visible && !s.layout.Tree().Contains(req.Dock) {
			if err := s.layout.Place(req.Dock); err != nil {
				return Outcome{}, err
			}
		}
		return Outcome{Refresh: visible}, nil

	case ActionCloseDock:
		if err := s.lock.Require(req.Dock, dock.Closable); err != nil {
			return Outcome{}, fmt.Errorf("close %s: %w", req.Dock, err)
		}
		return Outcome{}, s.vis.Hide(req.Dock)

	case ActionFloatDock:
		return Outcome{}, s.float(ctx, req.Dock)

	case ActionMoveDock:
		return Outcome{}, s.layout.Move(req.Dock, req.Target)

	case ActionResizePane:
		return Outcome{}, s.layout.Resize(req.Dock, req.Orientation, req.Delta)
	}
	return Outcome{}, fmt.Errorf("%w: %s", ErrUnknownAction, req.Action)
}

// run executes cmd, echoing its output to the console. Engine errors become
// console lines.
func (s *Shell) run(ctx context.Context, cmd engine.Command, mutates bool) Outcome {
	res, err := s.eng.Execute(ctx, cmd)
	if err != nil {
		logging.FromContext(ctx).Warn().Str("component", "shell").Err(err).Msg("engine command failed")
		s.console.Error(err.Error())
		return Outcome{}
	}
	s.console.Output(res.Text)
	if mutates {
		s.dirty = true
	}
	return Outcome{Refresh: s.notifyRefresh()}
}

// inspectOnly reports whether a typed command only prints: a single print,
// info, hexdump or help command. Anything chained, piped or backticked counts
// as a change.
func inspectOnly(text string) bool {
	if strings.ContainsAny(text, ";|`") {
		return false
	}
	switch text[0] {
	case 'p', 'i', 'x', '?':
		return true
	}
	return false
}

func (s *Shell) save(ctx context.Context, name string) bool {
	if err := s.eng.SaveProject(ctx, name); err != nil {
		s.console.Error(err.Error())
		return false
	}
	s.dirty = false
	return true
}

func (s *Shell) notifyRefresh() bool {
	for _, fn := range s.refresh {
		fn()
	}
	return true
}

// Query runs the content command for a dock.
func (s *Shell) Query(ctx context.Context, id dock.ID) (engine.Result, error) {
	cmd, ok := ContentCommand(id)
	if !ok {
		return engine.Result{}, nil
	}
	return s.eng.Execute(ctx, cmd)
}

// OpenOptions selects what Open loads.
type OpenOptions struct {
	Project string
	// Analysis is the analysis depth to run after loading; negative skips it.
	Analysis int
}

// Open loads a saved project, or runs the requested analysis on the file the
// engine was started with.
func (s *Shell) Open(ctx context.Context, o OpenOptions) error {
	log := logging.FromContext(ctx).With().Str("component", "shell").Logger()
	if o.Project != "" {
		if res, err := s.eng.Execute(ctx, engine.ProjectInfo(o.Project)); err == nil {
			if file := strings.TrimSpace(res.Text); file != "" {
				log.Info().Str("project", o.Project).Str("file", file).Msg("project file")
			}
		}
		if err := s.eng.OpenProject(ctx, o.Project); err != nil {
			return fmt.Errorf("open project %s: %w", o.Project, err)
		}
		s.project = o.Project
		return nil
	}
	if s.opts.File != "" && o.Analysis >= 0 {
		if _, err := s.eng.Execute(ctx, engine.Analyze(o.Analysis)); err != nil {
			s.console.Error(err.Error())
		}
	}
	return nil
}

// Finalize runs once loading is done: select the sections flag space,
// refresh every panel and greet with a fortune.
func (s *Shell) Finalize(ctx context.Context) {
	if _, err := s.eng.Execute(ctx, engine.FlagSpace("sections")); err != nil {
		s.console.Error(err.Error())
	}
	s.notifyRefresh()
	if res, err := s.eng.Execute(ctx, engine.Command{Kind: engine.KindFortune}); err == nil {
		s.console.Debug(res.Text)
	}
	s.dirty = false
}

// ScriptCandidate returns "<file>.r2" when such a script sits next to the
// opened file; the UI offers to run it.
func (s *Shell) ScriptCandidate() (string, bool) {
	if s.opts.File == "" {
		return "", false
	}
	path := s.opts.File + ".r2"
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return "", false
	}
	return path, true
}

// Close shuts down floated panes and the engine.
func (s *Shell) Close(ctx context.Context) error {
	s.closeFloats(ctx)
	return s.eng.Close()
}

// ErrNoFloater is returned when floating is not available.
var ErrNoFloater = errors.New("floating docks need tmux")

func (s *Shell) float(ctx context.Context, id dock.ID) error {
	if s.opts.Floater == nil {
		return ErrNoFloater
	}
	d, err := s.reg.Lookup(id)
	if err != nil {
		return err
	}
	if err := s.lock.Require(id, dock.Floatable); err != nil {
		return fmt.Errorf("float %s: %w", id, err)
	}
	argv, err := s.floatArgv(id)
	if err != nil {
		return err
	}
	pane, err := s.opts.Floater.Float(d.Title, argv)
	if err != nil {
		return err
	}
	typ := session.PaneContent
	if id == dock.Jupyter {
		typ = session.PaneRepl
	}
	if old, had := s.floats.Register(id, pane, typ); had && old.PaneID != pane {
		_ = s.opts.Floater.Close(old.PaneID)
	}
	logging.FromContext(ctx).Info().Str("component", "shell").Str("dock", string(id)).Str("pane", pane).Msg("dock floated")
	return nil
}

func (s *Shell) floatArgv(id dock.ID) ([]string, error) {
	if id == dock.Jupyter {
		return []string{"python3"}, nil
	}
	cmd, ok := ContentCommand(id)
	if !ok {
		return nil, fmt.Errorf("dock %s cannot be floated", id)
	}
	r2 := s.opts.R2Path
	if r2 == "" {
		r2 = "r2"
	}
	argv := []string{r2, "-c", cmd.String()}
	if s.opts.File != "" {
		argv = append(argv, s.opts.File)
	} else {
		argv = append(argv, "--")
	}
	return argv, nil
}

// Floating returns the pane ID a dock was floated to. Panes closed outside
// dockshell are pruned first.
func (s *Shell) Floating(id dock.ID) (string, bool) {
	_, _ = s.floats.Prune()
	p, ok := s.floats.Lookup(id)
	return p.PaneID, ok
}

func (s *Shell) closeFloats(ctx context.Context) {
	if s.opts.Floater == nil {
		return
	}
	for _, p := range s.floats.Drain() {
		if err := s.opts.Floater.Close(p.PaneID); err != nil {
			logging.FromContext(ctx).Debug().Str("component", "shell").Err(err).Str("pane", p.PaneID).Msg("close floated pane")
		}
	}
}
