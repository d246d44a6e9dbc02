package editor

// clampOffset returns the scroll offset closest to off that keeps pos
// inside the window [off, off+span).
func clampOffset(off, pos, span int) int {
	if pos < off {
		return pos
	}
	if pos >= off+span {
		return pos - span + 1
	}
	return off
}

// scroll derives the render column of the cursor and snaps both offsets
// so the cursor is inside the viewport.
func (e *Editor) scroll() {
	e.rx = e.cx
	if e.cy < e.doc.NumRows() {
		e.rx = CharToRender(e.doc.Row(e.cy).chars, e.cx)
	}
	e.rowOff = clampOffset(e.rowOff, e.cy, e.screenRows)
	e.colOff = clampOffset(e.colOff, e.rx, e.screenCols)
}
