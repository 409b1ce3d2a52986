package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"dockshell/internal/engine"
	"dockshell/internal/logging"
)

// Theme and font keys.
const (
	KeyDark        = "dark"
	KeyTheme       = "theme"
	KeyFontFamily  = "font.family"
	KeyFontSize    = "font.size"
	KeyGraphMaxCol = "graph.maxcols"

	DefaultTheme       = "solarized"
	DefaultFontFamily  = "Inconsolata"
	DefaultFontSize    = 12
	DefaultGraphMaxCol = 50

	colorPrefix    = "colors."
	asmPrefix      = "asmoptions."
	engineDefaults = "default"
)

// AsmOption is one engine disassembly option with the value the shell uses
// when the user has not saved their own.
type AsmOption struct {
	Key     string
	Default string
}

// AsmOptions lists the disassembly options reset by ResetToDefaultAsmOptions,
// in the order they are sent to the engine.
var AsmOptions = []AsmOption{
	{"asm.esil", "false"},
	{"asm.pseudo", "false"},
	{"asm.offset", "true"},
	{"asm.describe", "false"},
	{"asm.stackptr", "false"},
	{"asm.slow", "true"},
	{"asm.lines", "true"},
	{"asm.fcnlines", "true"},
	{"asm.flgoff", "false"},
	{"asm.emu", "false"},
	{"asm.cmt.right", "true"},
	{"asm.varsum", "false"},
	{"asm.bytes", "false"},
	{"asm.size", "false"},
	{"asm.bytespace", "false"},
	{"asm.lbytes", "true"},
	{"asm.nbytes", "10"},
	{"asm.syntax", "intel"},
	{"asm.ucase", "false"},
	{"asm.bbline", "false"},
	{"asm.capitalize", "false"},
	{"asm.varsub", "true"},
	{"asm.varsub_only", "true"},
	{"asm.tabs", "5"},
}

// Engine is the subset of engine.Engine the configuration drives.
type Engine interface {
	Execute(ctx context.Context, cmd engine.Command) (engine.Result, error)
	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error
}

// Configuration owns theme, font and disassembly preferences and keeps the
// engine in step with them.
type Configuration struct {
	store *Store
	eng   Engine

	mu            sync.Mutex
	fontsChanged  []func()
	colorsChanged []func()
	asmChanged    []func()
}

// NewConfiguration binds the preferences in store to eng. Call LoadInitial
// once the engine is running.
func NewConfiguration(store *Store, eng Engine) *Configuration {
	return &Configuration{store: store, eng: eng}
}

func (c *Configuration) Store() *Store { return c.store }

// OnFontsChanged, OnColorsChanged and OnAsmOptionsChanged register
// listeners, called synchronously after each change.
func (c *Configuration) OnFontsChanged(fn func()) {
	c.mu.Lock()
	c.fontsChanged = append(c.fontsChanged, fn)
	c.mu.Unlock()
}

func (c *Configuration) OnColorsChanged(fn func()) {
	c.mu.Lock()
	c.colorsChanged = append(c.colorsChanged, fn)
	c.mu.Unlock()
}

func (c *Configuration) OnAsmOptionsChanged(fn func()) {
	c.mu.Lock()
	c.asmChanged = append(c.asmChanged, fn)
	c.mu.Unlock()
}

func (c *Configuration) emit(list *[]func()) {
	c.mu.Lock()
	fns := append([]func(){}, *list...)
	c.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// LoadInitial applies the stored theme and disassembly options to the engine.
func (c *Configuration) LoadInitial(ctx context.Context) error {
	c.SetDarkTheme(c.DarkTheme())
	if err := c.SetColorTheme(ctx, c.CurrentTheme()); err != nil {
		return err
	}
	return c.ResetToDefaultAsmOptions(ctx)
}

// ResetAll resets the engine configuration, deletes the settings file and
// re-applies construction-time defaults. The caller is expected to have
// confirmed with the user.
func (c *Configuration) ResetAll(ctx context.Context) error {
	log := logging.FromContext(ctx).With().Str("component", "settings").Logger()

	if _, err := c.eng.Execute(ctx, engine.Command{Kind: engine.KindConfigReset}); err != nil {
		return fmt.Errorf("reset engine config: %w", err)
	}
	if err := c.store.Clear(); err != nil {
		return err
	}
	log.Info().Str("path", c.store.Path()).Msg("settings reset")

	if err := c.LoadInitial(ctx); err != nil {
		return err
	}
	c.emit(&c.fontsChanged)
	c.emit(&c.asmChanged)
	return nil
}

// DarkTheme reports whether the dark palette is selected.
func (c *Configuration) DarkTheme() bool {
	return c.store.Bool(KeyDark, false)
}

// SetDarkTheme stores the flag and loads the matching GUI palette.
func (c *Configuration) SetDarkTheme(dark bool) {
	c.store.Set(KeyDark, dark)
	palette := lightPalette
	if dark {
		palette = darkPalette
	}
	for _, p := range palette {
		c.SetColor(p.name, p.hex)
	}
	c.emit(&c.colorsChanged)
}

// CurrentTheme is the engine colour theme name.
func (c *Configuration) CurrentTheme() string {
	return c.store.String(KeyTheme, DefaultTheme)
}

// SetColorTheme switches the engine to theme and copies its graph colours
// into the store. "default" resets the engine palette.
func (c *Configuration) SetColorTheme(ctx context.Context, theme string) error {
	cmd := engine.ColorTheme(theme)
	if theme == engineDefaults {
		cmd = engine.Command{Kind: engine.KindColorDefault}
	}
	if _, err := c.eng.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("apply theme %s: %w", theme, err)
	}
	c.store.Set(KeyTheme, theme)

	res, err := c.eng.Execute(ctx, engine.Listing(engine.KindColors))
	if err != nil {
		return fmt.Errorf("read theme colours: %w", err)
	}
	if strings.TrimSpace(res.Text) != "" {
		var colors map[string][]int
		if err := res.Decode(&colors); err != nil {
			return err
		}
		for name, rgb := range colors {
			if !strings.Contains(name, "graph") || len(rgb) < 3 {
				continue
			}
			c.SetColor(name, fmt.Sprintf("#%02x%02x%02x", rgb[0]&0xff, rgb[1]&0xff, rgb[2]&0xff))
		}
	}
	c.emit(&c.colorsChanged)
	return nil
}

// SetColor stores a colour as #rrggbb.
func (c *Configuration) SetColor(name, hex string) {
	c.store.Set(colorPrefix+name, hex)
}

// Color returns the named colour, falling back to "other" and then to no
// colour.
func (c *Configuration) Color(name string) lipgloss.Color {
	if hex := c.store.String(colorPrefix+name, ""); hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(c.store.String(colorPrefix+"other", ""))
}

// Font returns the configured family and size.
func (c *Configuration) Font() (string, int) {
	return c.store.String(KeyFontFamily, DefaultFontFamily), c.store.Int(KeyFontSize, DefaultFontSize)
}

func (c *Configuration) SetFont(family string, size int) {
	c.store.Set(KeyFontFamily, family)
	c.store.Set(KeyFontSize, size)
	c.emit(&c.fontsChanged)
}

// GraphBlockMaxChars bounds the width of a graph block.
func (c *Configuration) GraphBlockMaxChars() int {
	return c.store.Int(KeyGraphMaxCol, DefaultGraphMaxCol)
}

// AsmOption returns the saved value for key, or def.
func (c *Configuration) AsmOption(key, def string) string {
	return c.store.String(asmPrefix+key, def)
}

// ResetToDefaultAsmOptions sends every disassembly option to the engine,
// using the user's saved value where one exists.
func (c *Configuration) ResetToDefaultAsmOptions(ctx context.Context) error {
	for _, opt := range AsmOptions {
		if err := c.eng.SetConfig(ctx, opt.Key, c.AsmOption(opt.Key, opt.Default)); err != nil {
			return fmt.Errorf("restore %s: %w", opt.Key, err)
		}
	}
	return nil
}

// SaveDefaultAsmOptions snapshots the engine's current disassembly options
// as the user's defaults.
func (c *Configuration) SaveDefaultAsmOptions(ctx context.Context) error {
	for _, opt := range AsmOptions {
		v, err := c.eng.GetConfig(ctx, opt.Key)
		if err != nil {
			return fmt.Errorf("read %s: %w", opt.Key, err)
		}
		if strings.TrimSpace(v) == "" {
			continue
		}
		c.store.Set(asmPrefix+opt.Key, normalizeOption(v))
	}
	return c.store.Sync()
}

// normalizeOption keeps numbers and booleans in the engine's spelling.
func normalizeOption(v string) string {
	v = strings.TrimSpace(v)
	if b, err := strconv.ParseBool(v); err == nil {
		return strconv.FormatBool(b)
	}
	return v
}

type paletteEntry struct {
	name string
	hex  string
}

var lightPalette = []paletteEntry{
	{"gui.cflow", "#000000"},
	{"gui.dataoffset", "#000000"},
	{"gui.border", "#000000"},
	{"highlight", "#d2d2ff"},
	{"gui.background", "#ffffff"},
	{"gui.alt_background", "#f5faff"},
	{"gui.imports", "#328cff"},
	{"gui.main", "#008000"},
	{"gui.navbar.err", "#ff0000"},
	{"gui.navbar.code", "#68e545"},
	{"gui.navbar.str", "#4568e5"},
	{"gui.navbar.sym", "#e59645"},
	{"gui.navbar.empty", "#646464"},
}

var darkPalette = []paletteEntry{
	{"gui.cflow", "#ffffff"},
	{"gui.dataoffset", "#ffffff"},
	{"gui.border", "#ffffff"},
	{"highlight", "#407373"},
	{"gui.background", "#24424f"},
	{"gui.alt_background", "#3a6480"},
	{"gui.imports", "#328cff"},
	{"gui.main", "#008000"},
	{"gui.navbar.err", "#ff0000"},
	{"gui.navbar.code", "#68e545"},
	{"gui.navbar.str", "#4568e5"},
	{"gui.navbar.sym", "#e59645"},
	{"gui.navbar.empty", "#646464"},
}
