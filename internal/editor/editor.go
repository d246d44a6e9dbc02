// Package editor implements the line buffer, syntax highlighting, screen
// composition and key handling of the kilo text editor.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"
)

const (
	// Version is shown in the welcome banner.
	Version = "0.0.1"

	// QuitTimes is how many extra Ctrl-Q presses quitting a dirty document takes.
	QuitTimes = 3

	// MessageTTL is how long a status message stays visible.
	MessageTTL = 5 * time.Second

	// HelpMessage is the status message shown at startup.
	HelpMessage = "HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find"
)

// ErrQuit is returned by HandleKey when the user asked to exit.
var ErrQuit = errors.New("editor: quit")

// Store loads and saves documents as lists of lines.
type Store interface {
	Load(path string) ([]string, error)
	Save(path string, lines []string) (int, error)
}

// Config holds the collaborators and terminal size for New.
type Config struct {
	Input  io.ByteReader
	Output io.Writer
	Store  Store
	Logger *log.Logger

	// Rows and Cols are the full terminal size. Two rows are reserved
	// for the status and message bars.
	Rows int
	Cols int
}

// Editor is the whole editing state: document, cursor, viewport and
// status line. It is driven from a single goroutine.
type Editor struct {
	doc Document

	cx, cy int // cursor in character columns and rows
	rx     int // cursor render column, derived in scroll

	rowOff, colOff         int
	screenRows, screenCols int

	filename      string
	statusMsg     string
	statusMsgTime time.Time
	quitTimes     int

	in     io.ByteReader
	out    io.Writer
	store  Store
	logger *log.Logger
	now    func() time.Time
}

// New returns an editor over an empty, unnamed document.
func New(cfg Config) *Editor {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	screenRows := cfg.Rows - 2
	if screenRows < 1 {
		screenRows = 1
	}
	return &Editor{
		screenRows: screenRows,
		screenCols: cfg.Cols,
		quitTimes:  QuitTimes,
		in:         cfg.Input,
		out:        cfg.Output,
		store:      cfg.Store,
		logger:     logger,
		now:        time.Now,
	}
}

// Document returns the document being edited.
func (e *Editor) Document() *Document { return &e.doc }

// Cursor returns the cursor position as (character column, row).
func (e *Editor) Cursor() (int, int) { return e.cx, e.cy }

// Filename returns the current file name, empty when unnamed.
func (e *Editor) Filename() string { return e.filename }

// StatusMessage returns the current status message.
func (e *Editor) StatusMessage() string { return e.statusMsg }

// SetStatusMessage shows msg in the message bar for MessageTTL.
func (e *Editor) SetStatusMessage(msg string) {
	e.statusMsg = msg
	e.statusMsgTime = e.now()
}

// Open loads path into the document and selects its syntax.
func (e *Editor) Open(path string) error {
	lines, err := e.store.Load(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	e.filename = path
	e.doc.SetSyntax(SelectSyntax(path))
	for _, line := range lines {
		e.doc.InsertRow(e.doc.NumRows(), []byte(line))
	}
	e.doc.MarkClean()
	e.logger.Printf("opened %s: %d lines, filetype %s", path, len(lines), e.fileType())
	return nil
}

func (e *Editor) fileType() string {
	if syn := e.doc.Syntax(); syn != nil {
		return syn.FileType
	}
	return "no ft"
}

// Run alternates redrawing and handling one key until the user quits or
// ctx is cancelled. On quit the screen is cleared.
func (e *Editor) Run(ctx context.Context) error {
	for {
		if err := e.Refresh(); err != nil {
			return err
		}
		key, err := e.readKey(ctx)
		if err != nil {
			return err
		}
		if err := e.HandleKey(ctx, key); err != nil {
			if errors.Is(err, ErrQuit) {
				e.logger.Printf("quit")
				_, err := io.WriteString(e.out, "\x1b[2J\x1b[H")
				return err
			}
			return err
		}
	}
}

func (e *Editor) readKey(ctx context.Context) (Key, error) {
	return ReadKey(ctx, e.in)
}

// HandleKey applies one key. Keys that open a prompt read further input
// from the editor's input source.
func (e *Editor) HandleKey(ctx context.Context, key Key) error {
	switch key {
	case KeyEnter:
		e.InsertNewline()

	case CtrlKey('q'):
		if e.doc.Dirty() > 0 && e.quitTimes > 0 {
			times := "times"
			if e.quitTimes == 1 {
				times = "time"
			}
			e.SetStatusMessage(fmt.Sprintf(
				"WARNING!!! File has unsaved changes. Press Ctrl-Q %d more %s to quit.", e.quitTimes, times))
			e.quitTimes--
			return nil
		}
		return ErrQuit

	case CtrlKey('s'):
		if err := e.Save(ctx); err != nil {
			return err
		}

	case CtrlKey('f'):
		if err := e.Find(ctx); err != nil {
			return err
		}

	case HomeKey:
		e.cx = 0

	case EndKey:
		if e.cy < e.doc.NumRows() {
			e.cx = e.doc.Row(e.cy).Len()
		}

	case KeyBackspace, CtrlKey('h'), DeleteKey:
		if key == DeleteKey {
			e.moveCursor(ArrowRight)
		}
		e.DeleteChar()

	case PageUp, PageDown:
		if key == PageUp {
			e.cy = e.rowOff
		} else {
			e.cy = e.rowOff + e.screenRows - 1
			if e.cy > e.doc.NumRows() {
				e.cy = e.doc.NumRows()
			}
		}
		dir := ArrowUp
		if key == PageDown {
			dir = ArrowDown
		}
		for i := 0; i < e.screenRows; i++ {
			e.moveCursor(dir)
		}

	case ArrowUp, ArrowDown, ArrowLeft, ArrowRight:
		e.moveCursor(key)

	case CtrlKey('l'), KeyEscape:

	default:
		if key >= 0 && key < 256 {
			e.InsertChar(byte(key))
		}
	}

	e.quitTimes = QuitTimes
	return nil
}

func (e *Editor) moveCursor(key Key) {
	var row *Row
	if e.cy < e.doc.NumRows() {
		row = e.doc.Row(e.cy)
	}

	switch key {
	case ArrowLeft:
		if e.cx != 0 {
			e.cx--
		} else if e.cy > 0 {
			e.cy--
			e.cx = e.doc.Row(e.cy).Len()
		}
	case ArrowRight:
		if row != nil && e.cx < row.Len() {
			e.cx++
		} else if row != nil && e.cx == row.Len() {
			e.cy++
			e.cx = 0
		}
	case ArrowUp:
		if e.cy > 0 {
			e.cy--
		}
	case ArrowDown:
		if e.cy < e.doc.NumRows() {
			e.cy++
		}
	}

	rowLen := 0
	if e.cy < e.doc.NumRows() {
		rowLen = e.doc.Row(e.cy).Len()
	}
	if e.cx > rowLen {
		e.cx = rowLen
	}
}

// InsertChar inserts c at the cursor and advances it.
func (e *Editor) InsertChar(c byte) {
	if e.cy == e.doc.NumRows() {
		e.doc.InsertRow(e.doc.NumRows(), nil)
	}
	e.doc.rowInsertByte(e.doc.Row(e.cy), e.cx, c)
	e.cx++
}

// DeleteChar deletes the byte left of the cursor, joining the row onto the
// previous one when the cursor is at column 0.
func (e *Editor) DeleteChar() {
	if e.cy == e.doc.NumRows() {
		return
	}
	if e.cx == 0 && e.cy == 0 {
		return
	}

	if e.cx > 0 {
		e.doc.rowDeleteByte(e.doc.Row(e.cy), e.cx-1)
		e.cx--
		return
	}
	prev := e.doc.Row(e.cy - 1)
	prevLen := prev.Len()
	e.doc.rowAppend(prev, e.doc.Row(e.cy).chars)
	e.doc.DeleteRow(e.cy)
	e.cy--
	e.cx = prevLen
}

// InsertNewline splits the row at the cursor and moves to the start of the
// new row.
func (e *Editor) InsertNewline() {
	if e.cx == 0 {
		e.doc.InsertRow(e.cy, nil)
	} else {
		e.doc.InsertRow(e.cy+1, e.doc.Row(e.cy).chars[e.cx:])
		// InsertRow may have moved the rows; fetch the row again.
		e.doc.rowTruncate(e.doc.Row(e.cy), e.cx)
	}
	e.cy++
	e.cx = 0
}

// Save writes the document to its file, prompting for a name if it has
// none. Save failures are reported in the status bar; only input errors
// from the prompt are returned.
func (e *Editor) Save(ctx context.Context) error {
	if e.filename == "" {
		name, err := e.Prompt(ctx, "Save as: ", " (ESC to cancel)", nil)
		if err != nil {
			return err
		}
		if name == "" {
			e.SetStatusMessage("Save aborted")
			return nil
		}
		e.filename = name
		e.doc.SetSyntax(SelectSyntax(name))
	}

	n, err := e.store.Save(e.filename, e.doc.Lines())
	if err != nil {
		e.logger.Printf("save %s: %v", e.filename, err)
		e.SetStatusMessage("Can't save! I/O error: " + err.Error())
		return nil
	}
	e.doc.MarkClean()
	e.logger.Printf("saved %s: %d bytes", e.filename, n)
	e.SetStatusMessage(fmt.Sprintf("%d bytes written to disk", n))
	return nil
}
