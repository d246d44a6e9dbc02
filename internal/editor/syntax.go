package editor

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Highlight is the class of a rendered byte.
type Highlight uint8

const (
	HLNormal Highlight = iota
	HLComment
	HLString
	HLNumber
	HLMatch
)

// Color returns the ANSI foreground color code for h.
func (h Highlight) Color() int {
	switch h {
	case HLComment:
		return 36
	case HLString:
		return 35
	case HLNumber:
		return 31
	case HLMatch:
		return 34
	default:
		return 37
	}
}

// Syntax flags.
const (
	HighlightNumbers = 1 << iota
	HighlightStrings
)

// Syntax describes how to highlight one file type.
type Syntax struct {
	// FileType is shown in the status bar.
	FileType string
	// FileMatch patterns starting with '.' match the file extension;
	// anything else matches as a substring of the filename.
	FileMatch []string
	// SingleLineComment starts a comment running to the end of the line.
	SingleLineComment string
	Flags             int
}

var syntaxDB = []Syntax{
	{
		FileType:          "c",
		FileMatch:         []string{".c", ".h", ".cpp"},
		SingleLineComment: "//",
		Flags:             HighlightNumbers | HighlightStrings,
	},
	{
		FileType:          "go",
		FileMatch:         []string{".go"},
		SingleLineComment: "//",
		Flags:             HighlightNumbers | HighlightStrings,
	},
	{
		FileType:          "makefile",
		FileMatch:         []string{"Makefile", "makefile"},
		SingleLineComment: "#",
		Flags:             HighlightStrings,
	},
}

// SelectSyntax returns the syntax matching filename, or nil.
func SelectSyntax(filename string) *Syntax {
	if filename == "" {
		return nil
	}
	ext := filepath.Ext(filename)
	for i := range syntaxDB {
		syn := &syntaxDB[i]
		for _, pattern := range syn.FileMatch {
			isExt := strings.HasPrefix(pattern, ".")
			if (isExt && ext == pattern) || (!isExt && strings.Contains(filename, pattern)) {
				return syn
			}
		}
	}
	return nil
}

func isSeparator(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r', 0:
		return true
	}
	return strings.IndexByte(",.()+-/*=~%<>[];", c) >= 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// highlightRow classifies each byte of render. State never crosses lines,
// so strings and comments end with the row.
func highlightRow(render []byte, syn *Syntax) []Highlight {
	hl := make([]Highlight, len(render))
	if syn == nil {
		return hl
	}

	scs := []byte(syn.SingleLineComment)
	// Start of line counts as following a separator so leading digits highlight.
	prevSep := true
	var inString byte

	for i := 0; i < len(render); {
		c := render[i]
		prevHL := HLNormal
		if i > 0 {
			prevHL = hl[i-1]
		}

		if len(scs) > 0 && inString == 0 && bytes.HasPrefix(render[i:], scs) {
			for j := i; j < len(render); j++ {
				hl[j] = HLComment
			}
			break
		}

		if syn.Flags&HighlightStrings != 0 {
			if inString != 0 {
				hl[i] = HLString
				if c == '\\' && i+1 < len(render) {
					hl[i+1] = HLString
					i += 2
					continue
				}
				if c == inString {
					inString = 0
				}
				i++
				prevSep = true
				continue
			}
			if c == '"' || c == '\'' {
				inString = c
				hl[i] = HLString
				i++
				continue
			}
		}

		if syn.Flags&HighlightNumbers != 0 {
			if (isDigit(c) && (prevSep || prevHL == HLNumber)) || (c == '.' && prevHL == HLNumber) {
				hl[i] = HLNumber
				i++
				prevSep = false
				continue
			}
		}

		prevSep = isSeparator(c)
		i++
	}
	return hl
}
