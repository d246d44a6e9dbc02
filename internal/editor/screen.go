package editor

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/mattn/go-runewidth"
)

const (
	escHideCursor  = "\x1b[?25l"
	escShowCursor  = "\x1b[?25h"
	escCursorHome  = "\x1b[H"
	escClearLine   = "\x1b[K"
	escDefaultFg   = "\x1b[39m"
	escReverse     = "\x1b[7m"
	escResetFormat = "\x1b[m"

	filenameWidth = 20
)

// Refresh scrolls the viewport to the cursor and writes one full frame in a
// single write.
func (e *Editor) Refresh() error {
	e.scroll()

	var buf bytes.Buffer
	buf.WriteString(escHideCursor)
	buf.WriteString(escCursorHome)

	e.drawRows(&buf)
	e.drawStatusBar(&buf)
	e.drawMessageBar(&buf)

	fmt.Fprintf(&buf, "\x1b[%d;%dH", (e.cy-e.rowOff)+1, (e.rx-e.colOff)+1)
	buf.WriteString(escShowCursor)

	if _, err := e.out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (e *Editor) drawRows(buf *bytes.Buffer) {
	for y := 0; y < e.screenRows; y++ {
		fileRow := y + e.rowOff
		if fileRow >= e.doc.NumRows() {
			if e.doc.NumRows() == 0 && y == e.screenRows/3 {
				e.drawWelcome(buf)
			} else {
				buf.WriteByte('~')
			}
		} else {
			drawRow(buf, e.doc.Row(fileRow), e.colOff, e.screenCols)
		}
		buf.WriteString(escClearLine)
		buf.WriteString("\r\n")
	}
}

func (e *Editor) drawWelcome(buf *bytes.Buffer) {
	welcome := "Kilo editor -- version " + Version
	if len(welcome) > e.screenCols {
		welcome = welcome[:e.screenCols]
	}
	padding := (e.screenCols - len(welcome)) / 2
	if padding > 0 {
		buf.WriteByte('~')
		padding--
	}
	buf.Write(bytes.Repeat([]byte{' '}, padding))
	buf.WriteString(welcome)
}

// drawRow writes the visible slice of row, switching colors only where the
// highlight class changes.
func drawRow(buf *bytes.Buffer, row *Row, colOff, width int) {
	length := len(row.render) - colOff
	if length < 0 {
		length = 0
	}
	if length > width {
		length = width
	}

	currentColor := -1
	for j := colOff; j < colOff+length; j++ {
		c := row.render[j]
		if row.hl[j] == HLNormal {
			if currentColor != -1 {
				buf.WriteString(escDefaultFg)
				currentColor = -1
			}
			buf.WriteByte(c)
			continue
		}
		color := row.hl[j].Color()
		if color != currentColor {
			currentColor = color
			buf.WriteString("\x1b[" + strconv.Itoa(color) + "m")
		}
		buf.WriteByte(c)
	}
	buf.WriteString(escDefaultFg)
}

func (e *Editor) drawStatusBar(buf *bytes.Buffer) {
	buf.WriteString(escReverse)

	name := e.filename
	if name == "" {
		name = "[No Name]"
	}
	status := fmt.Sprintf("%s - %d lines", runewidth.Truncate(name, filenameWidth, ""), e.doc.NumRows())
	if e.doc.Dirty() > 0 {
		status += " (modified)"
	}
	rstatus := fmt.Sprintf("%s | %d/%d", e.fileType(), e.cy+1, e.doc.NumRows())

	status = runewidth.Truncate(status, e.screenCols, "")
	buf.WriteString(status)
	for length := runewidth.StringWidth(status); length < e.screenCols; length++ {
		if e.screenCols-length == len(rstatus) {
			buf.WriteString(rstatus)
			break
		}
		buf.WriteByte(' ')
	}

	buf.WriteString(escResetFormat)
	buf.WriteString("\r\n")
}

func (e *Editor) drawMessageBar(buf *bytes.Buffer) {
	buf.WriteString(escClearLine)
	if e.statusMsg != "" && e.now().Sub(e.statusMsgTime) < MessageTTL {
		buf.WriteString(runewidth.Truncate(e.statusMsg, e.screenCols, ""))
	}
}
