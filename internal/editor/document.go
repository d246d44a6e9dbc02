package editor

import "golang.org/x/exp/slices"

// Document is the ordered list of rows being edited.
type Document struct {
	rows   []Row
	dirty  int
	syntax *Syntax
}

// NumRows returns the number of rows.
func (d *Document) NumRows() int { return len(d.rows) }

// Row returns row at, which must be in range.
func (d *Document) Row(at int) *Row { return &d.rows[at] }

// Dirty returns the number of mutations since the last save.
func (d *Document) Dirty() int { return d.dirty }

// MarkClean resets the dirty counter after a successful save.
func (d *Document) MarkClean() { d.dirty = 0 }

// Syntax returns the active syntax, or nil.
func (d *Document) Syntax() *Syntax { return d.syntax }

// SetSyntax activates syn and rehighlights every row.
func (d *Document) SetSyntax(syn *Syntax) {
	d.syntax = syn
	for i := range d.rows {
		d.rows[i].update(syn)
	}
}

// InsertRow inserts a new row holding a copy of line before index at.
func (d *Document) InsertRow(at int, line []byte) {
	if at < 0 || at > len(d.rows) {
		return
	}
	row := Row{chars: slices.Clone(line)}
	if row.chars == nil {
		row.chars = []byte{}
	}
	row.update(d.syntax)
	d.rows = slices.Insert(d.rows, at, row)
	d.dirty++
}

// DeleteRow removes row at.
func (d *Document) DeleteRow(at int) {
	if at < 0 || at >= len(d.rows) {
		return
	}
	d.rows = slices.Delete(d.rows, at, at+1)
	d.dirty++
}

func (d *Document) rowInsertByte(row *Row, at int, c byte) {
	if at < 0 || at > len(row.chars) {
		at = len(row.chars)
	}
	row.chars = slices.Insert(row.chars, at, c)
	row.update(d.syntax)
	d.dirty++
}

func (d *Document) rowDeleteByte(row *Row, at int) {
	if at < 0 || at >= len(row.chars) {
		return
	}
	row.chars = slices.Delete(row.chars, at, at+1)
	row.update(d.syntax)
	d.dirty++
}

func (d *Document) rowAppend(row *Row, s []byte) {
	row.chars = append(row.chars, s...)
	row.update(d.syntax)
	d.dirty++
}

func (d *Document) rowTruncate(row *Row, at int) {
	row.chars = row.chars[:at]
	row.update(d.syntax)
	d.dirty++
}

// Lines returns the raw content of every row.
func (d *Document) Lines() []string {
	lines := make([]string, len(d.rows))
	for i := range d.rows {
		lines[i] = string(d.rows[i].chars)
	}
	return lines
}
