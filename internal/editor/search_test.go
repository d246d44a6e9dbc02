package editor

import (
	"context"
	"errors"
	"io"
	"testing"

	"golang.org/x/exp/slices"
)

type keystroke struct {
	input string
	key   Key
}

func TestPrompt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"enter returns input", "abc\r", "abc"},
		{"backspace removes last byte", "abd\x7fc\r", "abc"},
		{"backspace on empty input", "\x7f\x7fok\r", "ok"},
		{"delete key removes last byte", "ab\x1b[3~\r", "a"},
		{"empty enter keeps prompting", "\r\rx\r", "x"},
		{"escape cancels", "abc\x1b", ""},
		{"control keys ignored", "a\x01\x02b\r", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := newTestEditor()
			e.in = script(tt.input)

			got, err := e.Prompt(context.Background(), "Name: ", "", nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
			if e.StatusMessage() != "" && got != "" {
				t.Errorf("expected message cleared, got %q", e.StatusMessage())
			}
		})
	}
}

func TestPromptNotifiesObserver(t *testing.T) {
	e, _, _ := newTestEditor()
	e.in = script("ab\x7f\r")

	var seen []keystroke
	_, err := e.Prompt(context.Background(), "> ", "", PromptObserverFunc(func(input string, key Key) {
		seen = append(seen, keystroke{input, key})
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []keystroke{{"a", 'a'}, {"ab", 'b'}, {"a", KeyBackspace}, {"a", KeyEnter}}
	if !slices.Equal(seen, expected) {
		t.Errorf("expected %v, got %v", expected, seen)
	}
}

func TestPromptShowsLabelAndHint(t *testing.T) {
	e, _, _ := newTestEditor()
	e.in = script("xy")

	_, err := e.Prompt(context.Background(), "Save as: ", " (ESC to cancel)", nil)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected read error once input runs out, got %v", err)
	}
	if e.StatusMessage() != "Save as: xy (ESC to cancel)" {
		t.Errorf("unexpected prompt line %q", e.StatusMessage())
	}
}

func newSearchDoc(lines ...string) *Document {
	var d Document
	for _, l := range lines {
		d.InsertRow(d.NumRows(), []byte(l))
	}
	return &d
}

func TestSearchStep(t *testing.T) {
	d := newSearchDoc("foo", "bar", "a foo")
	s := NewSearchSession()

	row, rx, ok := s.Step(d, "foo", 'o')
	if !ok || row != 0 || rx != 0 {
		t.Fatalf("expected first match at (0,0), got (%d,%d,%v)", row, rx, ok)
	}
	if got := classes(d.Row(0).Highlight()); got != "mmm" {
		t.Errorf("expected match overlay, got %q", got)
	}

	row, rx, ok = s.Step(d, "foo", ArrowDown)
	if !ok || row != 2 || rx != 2 {
		t.Fatalf("expected next match at (2,2), got (%d,%d,%v)", row, rx, ok)
	}
	if got := classes(d.Row(0).Highlight()); got != "..." {
		t.Errorf("expected previous overlay restored, got %q", got)
	}

	row, _, ok = s.Step(d, "foo", ArrowRight)
	if !ok || row != 0 {
		t.Errorf("expected forward search to wrap to row 0, got (%d,%v)", row, ok)
	}

	row, _, ok = s.Step(d, "foo", ArrowUp)
	if !ok || row != 2 {
		t.Errorf("expected backward search to wrap to row 2, got (%d,%v)", row, ok)
	}

	row, _, ok = s.Step(d, "foo", ArrowLeft)
	if !ok || row != 0 {
		t.Errorf("expected backward search to reach row 0, got (%d,%v)", row, ok)
	}
}

func TestSearchStepRestartsOnEdit(t *testing.T) {
	d := newSearchDoc("xa", "ab", "b")
	s := NewSearchSession()

	s.Step(d, "a", 'a')
	row, _, _ := s.Step(d, "a", ArrowDown)
	if row != 1 {
		t.Fatalf("expected row 1, got %d", row)
	}

	row, rx, ok := s.Step(d, "ab", 'b')
	if !ok || row != 1 || rx != 0 {
		t.Errorf("expected edited query to restart from the top and hit (1,0), got (%d,%d,%v)", row, rx, ok)
	}
}

func TestSearchStepNoMatch(t *testing.T) {
	d := newSearchDoc("one", "two")
	d.SetSyntax(SelectSyntax("x.c"))
	s := NewSearchSession()

	if _, _, ok := s.Step(d, "zzz", 'z'); ok {
		t.Error("expected no match")
	}
	if _, _, ok := s.Step(d, "", KeyBackspace); ok {
		t.Error("expected empty query to match nothing")
	}
	for i := 0; i < d.NumRows(); i++ {
		if got := classes(d.Row(i).Highlight()); got != "..." {
			t.Errorf("row %d: expected untouched highlight, got %q", i, got)
		}
	}
}

func TestSearchStepEndResetsSession(t *testing.T) {
	d := newSearchDoc("ab", "ab")
	s := NewSearchSession()

	s.Step(d, "ab", 'b')
	s.Step(d, "ab", ArrowDown)
	if _, _, ok := s.Step(d, "ab", KeyEnter); ok {
		t.Error("expected enter to end the search")
	}
	if got := classes(d.Row(1).Highlight()); got != ".." {
		t.Errorf("expected overlay removed on enter, got %q", got)
	}

	row, _, _ := s.Step(d, "ab", ArrowDown)
	if row != 0 {
		t.Errorf("expected a fresh session to start at row 0, got %d", row)
	}
}

func TestFindMovesCursorToMatch(t *testing.T) {
	e, _, _ := newTestEditor("hello", "world")
	e.in = script("lo\r")

	if err := e.Find(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cx, cy := e.Cursor(); cx != 3 || cy != 0 {
		t.Errorf("expected cursor (3,0), got (%d,%d)", cx, cy)
	}
	for i := 0; i < e.doc.NumRows(); i++ {
		if slices.Contains(e.doc.Row(i).Highlight(), HLMatch) {
			t.Errorf("row %d: match overlay left behind", i)
		}
	}
}

func TestFindStepsWithArrows(t *testing.T) {
	e, _, _ := newTestEditor("ab", "cab", "ab")
	e.in = script("ab\x1b[B\r")

	if err := e.Find(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cx, cy := e.Cursor(); cx != 1 || cy != 1 {
		t.Errorf("expected cursor (1,1), got (%d,%d)", cx, cy)
	}
}

func TestFindMapsRenderColumnBack(t *testing.T) {
	e, _, _ := newTestEditor("\tneedle")
	e.in = script("needle\r")

	e.Find(context.Background())
	if cx, _ := e.Cursor(); cx != 1 {
		t.Errorf("expected char column 1 after the tab, got %d", cx)
	}
}

func TestFindCancelRestoresCursor(t *testing.T) {
	lines := make([]string, 30)
	lines[25] = "target"
	e, _, _ := newTestEditor(lines...)
	e.cx, e.cy = 0, 1
	e.in = script("targ\x1b")

	if err := e.Find(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cx, cy := e.Cursor(); cx != 0 || cy != 1 {
		t.Errorf("expected cursor restored to (0,1), got (%d,%d)", cx, cy)
	}
	if e.rowOff != 0 || e.colOff != 0 {
		t.Errorf("expected offsets restored, got row %d col %d", e.rowOff, e.colOff)
	}
	if slices.Contains(e.doc.Row(25).Highlight(), HLMatch) {
		t.Error("match overlay left behind after cancel")
	}
}

func TestFindViaCtrlF(t *testing.T) {
	e, _, _ := newTestEditor("alpha", "beta")
	e.in = script("\x06bet\r\x11")

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cx, cy := e.Cursor(); cx != 0 || cy != 1 {
		t.Errorf("expected cursor on 'beta', got (%d,%d)", cx, cy)
	}
}
