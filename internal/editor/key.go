package editor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/braheezy/kilo/internal/terminal"
)

// Key is a decoded keystroke. Values below 256 are literal bytes; the named
// navigation keys live above that range.
type Key int

// Literal keys the editor reacts to.
const (
	KeyEnter     Key = '\r'
	KeyEscape    Key = '\x1b'
	KeyBackspace Key = 127
)

// Named keys decoded from escape sequences.
const (
	ArrowLeft Key = iota + 1000
	ArrowRight
	ArrowUp
	ArrowDown
	DeleteKey
	HomeKey
	EndKey
	PageUp
	PageDown
)

// CtrlKey is a mask for the control keys,
// stripping bits 5 and 6 from the character code, k.
func CtrlKey(k byte) Key {
	return Key(k & 0x1f)
}

// isControl reports whether k is an ASCII control byte.
func (k Key) isControl() bool {
	return k < 32 || k == 127
}

// isPrintable reports whether k is a printable ASCII byte.
func (k Key) isPrintable() bool {
	return k >= 0 && k < 128 && !k.isControl()
}

// ReadKey blocks until src yields one logical key. terminal.ErrNoData from
// src is retried; ctx is checked between retries. Any other read error is
// returned wrapped.
func ReadKey(ctx context.Context, src io.ByteReader) (Key, error) {
	var c byte
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		b, err := src.ReadByte()
		if errors.Is(err, terminal.ErrNoData) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("read key: %w", err)
		}
		c = b
		break
	}

	if Key(c) != KeyEscape {
		return Key(c), nil
	}
	return decodeEscape(src), nil
}

// decodeEscape maps the bytes following ESC to a named key. Anything it
// cannot recognise, including a sequence cut short, is a bare ESC.
func decodeEscape(src io.ByteReader) Key {
	seq0, err := src.ReadByte()
	if err != nil {
		return KeyEscape
	}
	seq1, err := src.ReadByte()
	if err != nil {
		return KeyEscape
	}

	switch seq0 {
	case '[':
		if seq1 >= '0' && seq1 <= '9' {
			seq2, err := src.ReadByte()
			if err != nil || seq2 != '~' {
				return KeyEscape
			}
			switch seq1 {
			case '1', '7':
				return HomeKey
			case '3':
				return DeleteKey
			case '4', '8':
				return EndKey
			case '5':
				return PageUp
			case '6':
				return PageDown
			}
			return KeyEscape
		}
		return letterKey(seq1)
	case 'O':
		return letterKey(seq1)
	}
	return KeyEscape
}

func letterKey(b byte) Key {
	switch b {
	case 'A':
		return ArrowUp
	case 'B':
		return ArrowDown
	case 'C':
		return ArrowRight
	case 'D':
		return ArrowLeft
	case 'H':
		return HomeKey
	case 'F':
		return EndKey
	}
	return KeyEscape
}
