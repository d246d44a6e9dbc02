package editor

// TabStop is the render width of a tab stop.
const TabStop = 8

// Row is one line of the document. chars is authoritative; render and hl are
// rebuilt from it by update and must not be edited independently, except for
// the search overlay on hl.
type Row struct {
	chars  []byte
	render []byte
	hl     []Highlight
}

// Chars returns the raw bytes of the row.
func (r *Row) Chars() []byte { return r.chars }

// Render returns the tab-expanded bytes of the row.
func (r *Row) Render() []byte { return r.render }

// Highlight returns the highlight class of each rendered byte.
func (r *Row) Highlight() []Highlight { return r.hl }

// Len returns the number of raw bytes in the row.
func (r *Row) Len() int { return len(r.chars) }

func (r *Row) update(syn *Syntax) {
	r.render = expandTabs(r.chars)
	r.hl = highlightRow(r.render, syn)
}

// expandTabs replaces every tab with spaces up to the next tab stop.
func expandTabs(chars []byte) []byte {
	render := make([]byte, 0, len(chars))
	for _, c := range chars {
		if c != '\t' {
			render = append(render, c)
			continue
		}
		render = append(render, ' ')
		for len(render)%TabStop != 0 {
			render = append(render, ' ')
		}
	}
	return render
}

// CharToRender converts a character column in chars into the render column
// it is drawn at.
func CharToRender(chars []byte, cx int) int {
	rx := 0
	for j := 0; j < cx && j < len(chars); j++ {
		if chars[j] == '\t' {
			rx += (TabStop - 1) - (rx % TabStop)
		}
		rx++
	}
	return rx
}

// RenderToChar converts a render column back into the character column
// whose rendering covers it. Render columns past the end map to len(chars).
func RenderToChar(chars []byte, rx int) int {
	cur := 0
	cx := 0
	for ; cx < len(chars); cx++ {
		if chars[cx] == '\t' {
			cur += (TabStop - 1) - (cur % TabStop)
		}
		cur++
		if cur > rx {
			return cx
		}
	}
	return cx
}
