// Package host runs a Session in a terminal.
//
// The host owns the screen, translates key chords and mouse gestures into
// Session calls, and renders the result. It never edits the buffer itself:
// every change goes through the Session API.
package host

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quillpad/internal/clipboard"
	"github.com/dshills/quillpad/internal/engine"
	"github.com/dshills/quillpad/internal/logging"
	"github.com/dshills/quillpad/internal/watcher"
)

// Shrug is inserted by Ctrl+U in place of the selection.
const Shrug = `\_('-')_/`

// wheelLines is how far one mouse wheel notch scrolls.
const wheelLines = 3

// fileChanged is posted by the watcher goroutine.
type fileChanged struct {
	event watcher.Event
}

// quitRequest is posted when the run context is cancelled.
type quitRequest struct{}

// Option configures a Host.
type Option func(*Host)

// WithRegister sets the clipboard register used by copy, cut and paste.
func WithRegister(r clipboard.Register) Option {
	return func(h *Host) {
		if r != nil {
			h.register = r
		}
	}
}

// WithWatcher reports external changes seen by w on the status line.
func WithWatcher(w *watcher.FileWatcher) Option {
	return func(h *Host) {
		h.watcher = w
	}
}

// WithScrollMargin sets the lines kept visible around the cursor.
func WithScrollMargin(n int) Option {
	return func(h *Host) {
		h.scrollMargin = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// Host drives a Session from terminal input.
type Host struct {
	term     *Terminal
	view     *View
	session  *engine.Session
	register clipboard.Register
	watcher  *watcher.FileWatcher
	logger   *logging.Logger

	path         string
	scrollMargin int
	message      string

	// extending is set while consecutive shifted moves grow one selection.
	extending bool
	// dragging is set between a primary button press and its release.
	dragging bool
	// pasting is set between the start and end of a bracketed paste.
	pasting bool
	// follow keeps the cursor in view on redraw. The wheel clears it so a
	// scrolled window stays put until the next key or click.
	follow bool
}

// New creates a host editing s, saving to path.
func New(term *Terminal, s *engine.Session, path string, opts ...Option) *Host {
	h := &Host{
		term:         term,
		session:      s,
		path:         path,
		register:     clipboard.NewMemory(),
		logger:       logging.Default(),
		scrollMargin: 2,
		follow:       true,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.WithComponent("host").WithField("session", s.ID())

	w, ht := term.Size()
	h.view = NewView(w, ht, s.TabWidth(), h.scrollMargin)
	return h
}

// Message returns the current status line message.
func (h *Host) Message() string {
	return h.message
}

// View returns the host's view.
func (h *Host) View() *View {
	return h.view
}

// Run draws and dispatches events until the user quits or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = h.term.PostInterrupt(quitRequest{})
		case <-done:
		}
	}()
	if h.watcher != nil {
		go h.forwardWatchEvents(done)
	}

	for {
		h.Draw()
		ev := h.term.PollEvent()
		if ev == nil {
			return nil
		}
		if h.HandleEvent(ev) {
			return nil
		}
	}
}

func (h *Host) forwardWatchEvents(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case ev, ok := <-h.watcher.Events():
			if !ok {
				return
			}
			_ = h.term.PostInterrupt(fileChanged{event: ev})
		case err, ok := <-h.watcher.Errors():
			if !ok {
				return
			}
			h.logger.Warn("watcher: %v", err)
		}
	}
}

// Draw renders the session.
func (h *Host) Draw() {
	if h.follow {
		h.view.ScrollToCursor(h.session)
	}
	h.view.Draw(h.term, h.session, Status{
		Name:     h.path,
		Modified: h.session.HasChanged(),
		Message:  h.message,
	})
	h.term.Show()
}

// HandleEvent applies one event to the session. It reports whether the
// host should quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(e)

	case *tcell.EventMouse:
		h.handleMouse(e)

	case *tcell.EventPaste:
		h.pasting = e.Start()

	case *tcell.EventResize:
		w, ht := e.Size()
		h.view.Resize(w, ht)
		h.follow = true
		h.term.Sync()

	case *tcell.EventInterrupt:
		switch data := e.Data().(type) {
		case quitRequest:
			return true
		case fileChanged:
			h.logger.Info("external change: %s", data.event.Op)
			h.message = "file changed on disk"
		}
	}
	return false
}

func (h *Host) handleKey(e *tcell.EventKey) bool {
	s := h.session
	key := chord(e)
	mod := e.Modifiers()
	shift := mod&tcell.ModShift != 0
	ctrl := mod&tcell.ModCtrl != 0
	alt := mod&tcell.ModAlt != 0
	h.follow = true

	if h.pasting {
		switch key {
		case tcell.KeyRune:
			s.InsertAtCursor(string(e.Rune()))
		case tcell.KeyEnter:
			s.InsertAtCursor("\n")
		case tcell.KeyTab:
			s.InsertAtCursor("\t")
		}
		return false
	}

	h.message = ""

	switch key {
	case tcell.KeyUp, tcell.KeyDown:
		up := key == tcell.KeyUp
		if (ctrl && shift) || alt {
			h.extending = false
			s.SwapSelectedLines(up)
			if up {
				s.MoveCursorUp(true)
			} else {
				s.MoveCursorDown(true)
			}
			return false
		}
		h.move(shift, func(extend bool) {
			if up {
				s.MoveCursorUp(extend)
			} else {
				s.MoveCursorDown(extend)
			}
		})

	case tcell.KeyLeft:
		h.move(shift && !ctrl, func(extend bool) { s.MoveCursorLeft(extend) })
	case tcell.KeyRight:
		h.move(shift && !ctrl, s.MoveCursorRight)
	case tcell.KeyHome:
		h.move(shift, s.MoveCursorToStart)
	case tcell.KeyEnd:
		h.move(shift, s.MoveCursorToEnd)

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		h.extending = false
		if !s.DeleteSelection() {
			s.DeleteBefore(1)
		}
	case tcell.KeyDelete:
		h.extending = false
		if !s.DeleteSelection() {
			s.DeleteAfter(1)
		}

	case tcell.KeyEnter:
		h.insert("\n")
	case tcell.KeyTab:
		h.insert("\t")
	case tcell.KeyRune:
		h.insert(string(e.Rune()))

	case tcell.KeyEscape:
		h.extending = false
		s.ClearSelections()

	case tcell.KeyCtrlD:
		h.extending = false
		s.DuplicateCurrentLine()
	case tcell.KeyCtrlU:
		h.insert(Shrug)
	case tcell.KeyCtrlC:
		h.copy()
	case tcell.KeyCtrlX:
		h.cut()
	case tcell.KeyCtrlV:
		h.paste()
	case tcell.KeyCtrlS:
		h.save()
	case tcell.KeyCtrlQ:
		return true
	}
	return false
}

// chord folds Ctrl+letter reported as a rune with ModCtrl into the
// matching control key, so both terminal encodings dispatch alike.
func chord(e *tcell.EventKey) tcell.Key {
	if e.Key() != tcell.KeyRune || e.Modifiers()&tcell.ModCtrl == 0 {
		return e.Key()
	}
	r := unicode.ToLower(e.Rune())
	if r < 'a' || r > 'z' {
		return e.Key()
	}
	return tcell.KeyCtrlA + tcell.Key(r-'a')
}

// move runs one cursor movement. The first shifted move of a run starts a
// fresh selection at the pre-move cursor; later ones extend it.
func (h *Host) move(shift bool, fn func(extend bool)) {
	if !shift {
		h.extending = false
		fn(false)
		return
	}
	if !h.extending {
		h.session.ClearSelections()
		h.session.BeginSelectionAtCursor()
		h.extending = true
	}
	fn(true)
}

// insert replaces the selection, if any, with text.
func (h *Host) insert(text string) {
	h.extending = false
	h.session.DeleteSelection()
	h.session.InsertAtCursor(text)
}

func (h *Host) copy() {
	text := h.session.CopySelection()
	if text == "" {
		text = h.session.CursorLine()
	}
	h.writeRegister(text)
}

func (h *Host) cut() {
	h.extending = false
	text := h.session.CopySelection()
	if text == "" {
		return
	}
	h.writeRegister(text)
	h.session.DeleteSelection()
}

func (h *Host) paste() {
	h.extending = false
	text, err := h.register.Read()
	if err != nil {
		h.message = fmt.Sprintf("paste failed: %v", err)
		return
	}
	h.session.InsertAtCursor(text)
}

func (h *Host) writeRegister(text string) {
	if err := h.register.Write(text); err != nil {
		h.message = fmt.Sprintf("copy failed: %v", err)
	}
}

func (h *Host) save() {
	if h.watcher != nil {
		h.watcher.Suppress(time.Second)
	}
	if err := h.session.Save(h.path); err != nil {
		if errors.Is(err, engine.ErrNoPath) {
			h.message = "no file name, start quillpad with a path to save"
		} else {
			h.message = fmt.Sprintf("save failed: %v", err)
		}
		h.logger.Error("save: %v", err)
		return
	}
	h.message = "saved " + filepath.Base(h.path)
}

func (h *Host) handleMouse(e *tcell.EventMouse) {
	buttons := e.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		h.follow = false
		h.view.Scroll(-wheelLines, h.session)
		return
	case buttons&tcell.WheelDown != 0:
		h.follow = false
		h.view.Scroll(wheelLines, h.session)
		return
	}

	x, y := e.Position()
	s := h.session

	if buttons&tcell.Button1 == 0 {
		h.dragging = false
		return
	}

	if !h.dragging {
		if y >= h.view.TextHeight() {
			return
		}
		h.follow = true
		line, char := s.DocumentCoords(h.view.CellToDocument(s, x, y))
		h.extending = false
		s.ClearSelections()
		s.ResetCursor(line, char)
		s.BeginSelection(line, char)
		h.dragging = true
		return
	}

	line, char := s.DocumentCoords(h.view.CellToDocument(s, x, y))
	s.ResetCursor(line, char)
	s.ExtendSelection(line, char)
}
