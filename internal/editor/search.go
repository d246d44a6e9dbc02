package editor

import (
	"bytes"
	"context"

	"golang.org/x/exp/slices"
)

// SearchSession carries incremental search state from one keystroke to the
// next: where the last match was, which way to go, and the highlight of the
// matched row before the match overlay was applied.
type SearchSession struct {
	lastMatch int
	direction int

	savedRow int
	savedHL  []Highlight
}

// NewSearchSession returns a session that searches forward from the top.
func NewSearchSession() *SearchSession {
	return &SearchSession{lastMatch: -1, direction: 1}
}

// Restore puts back the highlight overwritten by the last match, if any.
func (s *SearchSession) Restore(doc *Document) {
	if s.savedHL == nil {
		return
	}
	if s.savedRow < doc.NumRows() {
		doc.Row(s.savedRow).hl = s.savedHL
	}
	s.savedHL = nil
}

// Step handles one prompt keystroke and returns the row and render column of
// the next match. Arrow keys step to the next or previous match; Enter and
// Escape end the session; any other key restarts from the top.
func (s *SearchSession) Step(doc *Document, query string, key Key) (row, rx int, ok bool) {
	s.Restore(doc)

	switch key {
	case KeyEnter, KeyEscape:
		s.lastMatch = -1
		s.direction = 1
		return 0, 0, false
	case ArrowRight, ArrowDown:
		s.direction = 1
	case ArrowLeft, ArrowUp:
		s.direction = -1
	default:
		s.lastMatch = -1
		s.direction = 1
	}

	if s.lastMatch == -1 {
		s.direction = 1
	}
	if query == "" {
		return 0, 0, false
	}

	needle := []byte(query)
	current := s.lastMatch
	for i := 0; i < doc.NumRows(); i++ {
		current += s.direction
		if current == -1 {
			current = doc.NumRows() - 1
		} else if current == doc.NumRows() {
			current = 0
		}

		r := doc.Row(current)
		match := bytes.Index(r.render, needle)
		if match < 0 {
			continue
		}
		s.lastMatch = current
		s.savedRow = current
		s.savedHL = slices.Clone(r.hl)
		for j := match; j < match+len(needle); j++ {
			r.hl[j] = HLMatch
		}
		return current, match, true
	}
	return 0, 0, false
}

// Find runs an incremental search prompt. The cursor follows each match;
// cancelling restores the cursor and viewport to where they were.
func (e *Editor) Find(ctx context.Context) error {
	savedCx, savedCy := e.cx, e.cy
	savedColOff, savedRowOff := e.colOff, e.rowOff

	session := NewSearchSession()
	query, err := e.Prompt(ctx, "Search: ", " (Use ESC/Arrows/Enter)",
		PromptObserverFunc(func(input string, key Key) {
			row, rx, ok := session.Step(&e.doc, input, key)
			if !ok {
				return
			}
			e.cy = row
			e.cx = RenderToChar(e.doc.Row(row).chars, rx)
			// Past the end, so the next scroll puts the match row at the top.
			e.rowOff = e.doc.NumRows()
		}))
	session.Restore(&e.doc)
	if err != nil {
		return err
	}

	if query == "" {
		e.cx, e.cy = savedCx, savedCy
		e.colOff, e.rowOff = savedColOff, savedRowOff
		return nil
	}
	e.logger.Printf("search %q: row %d", query, e.cy)
	return nil
}
