package ui

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"texteditor/buffer"
	"texteditor/clipboardx"
	"texteditor/config"
	"texteditor/editor"
	"texteditor/highlight"
)

const messageTimeout = 3 * time.Second

// ConfigEvent carries a reloaded settings file to the event loop.
type ConfigEvent struct {
	tcell.EventTime
	Config *config.Config
	Err    error
}

// App hosts one editor in a terminal screen: the text area fills the
// screen above a one-line status bar.
type App struct {
	screen tcell.Screen
	ed     *editor.Editor
	cfg    *config.Config
	log    *zap.Logger

	path     string
	modified bool

	// fileCfg is cfg with the overrides for the open file. Save encodes
	// with it.
	fileCfg    *config.Config
	lineEnding string

	status    *StatusBar
	messageAt time.Time
	dialog    *Dialog
	mouse     MouseTracker
	watcher   *config.Watcher

	pasting bool
	paste   strings.Builder

	quit        bool
	quitPending bool
}

// NewApp wires an editor to screen. The screen must already be
// initialised.
func NewApp(screen tcell.Screen, cfg *config.Config, clip clipboardx.Clipboard, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{
		screen:  screen,
		cfg:     cfg,
		fileCfg: cfg,
		log:     log,
		status:  NewStatusBar(),
	}
	a.ed = editor.New(cfg,
		editor.WithLogger(log.Named("editor")),
		editor.WithClipboard(clip),
		editor.WithLeftMargin(1),
	)
	return a
}

func (a *App) Editor() *editor.Editor { return a.ed }

// Open loads path as plain text. A missing file opens an empty buffer that
// is created on save.
func (a *App) Open(path string) error {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("open %s: %w", path, err)
	}
	a.path = path
	a.lineEnding = config.DetectLineEnding(data)
	a.applyConfig(a.cfg)
	a.ed.SetText(config.DecodeText(data))
	a.modified = false
	if a.RestoreSession() {
		a.log.Debug("restored session", zap.String("path", path))
	}
	a.log.Info("opened file", zap.String("path", path), zap.Int("lines", a.ed.TotalLines()))
	return nil
}

// applyConfig applies cfg with the per-file overrides: language detected
// from the file name, the line ending the file was read with, and
// .editorconfig properties or the language's default indentation.
func (a *App) applyConfig(cfg *config.Config) {
	c := *cfg
	a.fileCfg = &c
	if c.Language == "" && a.path != "" {
		c.Language = highlight.DetectLanguage(a.path)
	}
	if c.LineEnding == "" {
		c.LineEnding = a.lineEnding
	}
	fromEditorConfig := a.path != "" && c.ApplyEditorConfig(a.path)
	a.ed.ApplyConfig(&c)
	if !fromEditorConfig {
		if d := a.ed.LanguageDefinition(); d != nil {
			a.ed.SetTabSize(c.LanguageTabSize(d.Name))
		}
	}
}

// Save writes the buffer back to its file.
func (a *App) Save() error {
	if a.path == "" {
		return errors.New("no file name")
	}
	if err := os.WriteFile(a.path, a.fileCfg.EncodeText(a.ed.Text()), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", a.path, err)
	}
	a.modified = false
	a.log.Info("saved file", zap.String("path", a.path))
	return nil
}

// WatchConfig reloads the settings file whenever it changes on disk. The
// watcher goroutine only posts events; the editor is touched from the
// event loop.
func (a *App) WatchConfig(path string) error {
	w, err := config.Watch(path, func(cfg *config.Config, err error) {
		ev := &ConfigEvent{Config: cfg, Err: err}
		ev.SetEventNow()
		if perr := a.screen.PostEvent(ev); perr != nil {
			a.log.Warn("dropped config reload", zap.Error(perr))
		}
	})
	if err != nil {
		return err
	}
	a.watcher = w
	return nil
}

// Run polls events until the user quits. While the colorizer has work
// left an interrupt is queued so that each cycle advances it by a chunk.
func (a *App) Run() error {
	a.screen.EnableMouse()
	a.screen.EnablePaste()
	a.screen.EnableFocus()
	defer func() {
		if a.watcher != nil {
			a.watcher.Close()
		}
	}()

	for !a.quit {
		a.Draw()
		if a.ed.ColorizerPending() {
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		a.HandleEvent(ev)
	}
	if err := a.SaveSession(); err != nil {
		a.log.Warn("session not saved", zap.Error(err))
	}
	return nil
}

// HandleEvent runs one interaction cycle for ev.
func (a *App) HandleEvent(ev tcell.Event) {
	var intents []editor.Intent

	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventFocus:
		a.ed.View.Focused = ev.Focused
	case *tcell.EventPaste:
		if ev.Start() {
			a.pasting = true
			a.paste.Reset()
		} else {
			a.pasting = false
			a.insertPaste()
		}
	case *tcell.EventKey:
		intents = a.handleKey(ev)
	case *tcell.EventMouse:
		intents = a.handleMouse(ev)
	case *ConfigEvent:
		a.reload(ev)
	}

	a.ed.Update(intents...)
	if a.ed.IsTextChanged() {
		a.modified = true
	}
}

func (a *App) insertPaste() {
	text := a.paste.String()
	a.paste.Reset()
	if text == "" || a.ed.IsReadOnly() {
		return
	}
	a.ed.InsertText(text)
	a.modified = true
}

func (a *App) handleKey(ev *tcell.EventKey) []editor.Intent {
	if a.pasting {
		switch ev.Key() {
		case tcell.KeyRune:
			a.paste.WriteRune(ev.Rune())
		case tcell.KeyEnter:
			a.paste.WriteByte('\n')
		case tcell.KeyTab:
			a.paste.WriteByte('\t')
		}
		return nil
	}

	if a.dialog != nil {
		a.dialog.HandleKey(ev)
		return nil
	}

	if ev.Key() != tcell.KeyCtrlQ {
		a.quitPending = false
	}

	intents, cmd := TranslateKey(ev)
	switch cmd {
	case CmdSave:
		a.save()
	case CmdQuit:
		a.handleQuit()
	case CmdGotoLine:
		a.openGotoLine()
	case CmdLanguage:
		a.openLanguage()
	case CmdToggleBreakpoint:
		line := a.ed.CursorPosition().Line + 1
		if a.ed.ToggleBreakpoint(line) {
			a.setMessage(fmt.Sprintf("Breakpoint set on line %d", line))
		} else {
			a.setMessage(fmt.Sprintf("Breakpoint removed from line %d", line))
		}
	case CmdToggleWhitespace:
		a.ed.SetShowWhitespace(!a.ed.IsShowingWhitespace())
	case CmdNextError:
		a.nextError()
	}
	return intents
}

func (a *App) handleMouse(ev *tcell.EventMouse) []editor.Intent {
	switch btn := ev.Buttons(); {
	case btn&tcell.WheelUp != 0:
		a.ed.View.ScrollY = max(0, a.ed.View.ScrollY-3)
		return nil
	case btn&tcell.WheelDown != 0:
		maxScroll := float64(max(0, a.ed.TotalLines()-1))
		a.ed.View.ScrollY = min(maxScroll, a.ed.View.ScrollY+3)
		return nil
	}
	_, h := a.screen.Size()
	if _, y := ev.Position(); y >= h-1 && ev.Buttons()&tcell.Button1 != 0 {
		return nil
	}
	if in := a.mouse.Translate(ev, Region{}); in != nil {
		return []editor.Intent{in}
	}
	return nil
}

func (a *App) reload(ev *ConfigEvent) {
	if ev.Err != nil {
		a.log.Warn("config reload failed", zap.Error(ev.Err))
		a.setMessage("Settings not reloaded: " + ev.Err.Error())
		return
	}
	a.cfg = ev.Config
	a.applyConfig(a.cfg)
	a.log.Info("config reloaded")
	a.setMessage("Settings reloaded")
}

func (a *App) save() {
	if a.path == "" {
		d := NewInputDialog("Save as: ", "")
		d.Palette = a.ed.Palette()
		d.OnSubmit = func(name string) {
			a.dialog = nil
			if name == "" {
				return
			}
			abs, err := filepath.Abs(name)
			if err != nil {
				a.setMessage("Error: " + err.Error())
				return
			}
			a.path = abs
			a.save()
		}
		d.OnCancel = func() { a.dialog = nil }
		a.dialog = d
		return
	}
	if err := a.Save(); err != nil {
		a.log.Error("save failed", zap.Error(err))
		a.setMessage("Error: " + err.Error())
		return
	}
	a.setMessage("Saved " + filepath.Base(a.path))
}

func (a *App) handleQuit() {
	if a.modified && !a.quitPending {
		a.quitPending = true
		a.setMessage("Unsaved changes. Press Ctrl+Q again to quit.")
		return
	}
	a.quit = true
}

func (a *App) openGotoLine() {
	d := NewGotoLineDialog()
	d.Palette = a.ed.Palette()
	d.OnSubmit = func(value string) {
		a.dialog = nil
		n, err := strconv.Atoi(value)
		if err != nil {
			return
		}
		a.gotoLine(n)
	}
	d.OnCancel = func() { a.dialog = nil }
	a.dialog = d
}

// gotoLine puts the cursor at the start of a 1-based line.
func (a *App) gotoLine(n int) {
	pos := buffer.Coordinates{Line: max(0, n-1)}
	a.ed.SetSelection(pos, pos, editor.Normal)
	a.ed.SetCursorPosition(pos)
}

func (a *App) openLanguage() {
	current := ""
	if d := a.ed.LanguageDefinition(); d != nil {
		current = d.Name
	}
	d := NewInputDialog("Language: ", current)
	d.Palette = a.ed.Palette()
	d.OnSubmit = func(name string) {
		a.dialog = nil
		def, err := highlight.Preset(name)
		if err != nil {
			a.setMessage("Unknown language " + strconv.Quote(name))
			return
		}
		a.ed.SetLanguageDefinition(def)
		a.setMessage("Language: " + def.Name)
	}
	d.OnCancel = func() { a.dialog = nil }
	a.dialog = d
}

// nextError moves to the first error marker below the cursor, wrapping to
// the top.
func (a *App) nextError() {
	markers := a.ed.ErrorMarkers()
	lines := make([]int, 0, len(markers))
	for l := range markers {
		lines = append(lines, l)
	}
	slices.Sort(lines)
	if len(lines) == 0 {
		a.setMessage("No errors")
		return
	}
	cur := a.ed.CursorPosition().Line + 1
	target := lines[0]
	for _, l := range lines {
		if l > cur {
			target = l
			break
		}
	}
	a.gotoLine(target)
}

func (a *App) setMessage(msg string) {
	a.status.Message = msg
	a.messageAt = time.Now()
}

// Draw lays out the editor and paints the whole screen.
func (a *App) Draw() {
	w, h := a.screen.Size()
	textH := max(0, h-1)
	a.ed.View.Width = float64(w)
	a.ed.View.Height = float64(textH)

	Paint(a.screen, Region{W: w, H: textH}, a.ed.Layout())

	if a.status.Message != "" && time.Since(a.messageAt) > messageTimeout {
		a.status.Message = ""
	}
	a.status.Sync(a.ed)
	a.status.Filename = ""
	if a.path != "" {
		a.status.Filename = filepath.Base(a.path)
	}
	a.status.Modified = a.modified
	if a.dialog != nil {
		a.dialog.Render(a.screen, 0, h-1, w)
	} else {
		a.status.Render(a.screen, 0, h-1, w)
	}
	a.screen.Show()
}
