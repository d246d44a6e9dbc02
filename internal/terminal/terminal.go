// Package terminal owns the controlling terminal: raw mode, window size and
// byte-level reads and writes.
package terminal

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

var (
	// ErrNoData is returned by ReadByte when the poll interval elapsed
	// without input. It is not a failure; callers retry.
	ErrNoData = errors.New("terminal: no data available")

	// ErrNotTerminal is returned by Open when stdin is not a terminal.
	ErrNotTerminal = errors.New("terminal: stdin is not a terminal")
)

// Terminal is the controlling terminal of the process.
type Terminal struct {
	in  *os.File
	out *os.File
	fd  int

	originalTermios *unix.Termios
	raw             bool
}

// Open wraps in and out. in must be a terminal.
func Open(in, out *os.File) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	return &Terminal{in: in, out: out, fd: fd}, nil
}

// EnableRawMode turns on raw mode for the terminal. It remembers the settings of the terminal
// before the change so Restore can put them back.
//
// Raw mode (as opposed to canonical mode) sends each input directly to program
// instead of buffering it and sending it when Enter is pressed.
func (t *Terminal) EnableRawMode() error {
	if t.raw {
		return nil
	}
	original, err := unix.IoctlGetTermios(t.fd, ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("get terminal settings: %w", err)
	}
	raw := *original
	// IXON: disable flow control
	// ICRNL: disable CR to NL conversion
	// BRKINT: disable break conditions from causing SIGINT
	// INPCK: disable parity check
	// ISTRIP: disable stripping of eighth bit of input byte
	raw.Iflag &^= unix.IXON | unix.ICRNL | unix.BRKINT | unix.INPCK | unix.ISTRIP
	// OPOST: disable output processing
	raw.Oflag &^= unix.OPOST
	// CS8: set character size to 8 bits
	raw.Cflag |= unix.CS8
	// ECHO: disable echo
	// ICANON: disable canonical mode
	// ISIG: disable signals like SIGINT and SIGTSTP
	// IEXTEN: disable extended input processing
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	// VMIN: minimum number of bytes for a noncanonical read
	// VTIME: read timeout in deciseconds
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1

	if err := unix.IoctlSetTermios(t.fd, ioctlWriteTermios, &raw); err != nil {
		return fmt.Errorf("set terminal settings: %w", err)
	}
	t.originalTermios = original
	t.raw = true
	return nil
}

// Restore puts back the settings saved by EnableRawMode. Calling it more
// than once, or without raw mode enabled, is a no-op.
func (t *Terminal) Restore() error {
	if !t.raw {
		return nil
	}
	if err := unix.IoctlSetTermios(t.fd, ioctlWriteTermios, t.originalTermios); err != nil {
		return fmt.Errorf("restore terminal settings: %w", err)
	}
	t.raw = false
	return nil
}

// ReadByte reads a single byte. It returns ErrNoData when the read timed
// out or was interrupted before any byte arrived.
func (t *Terminal) ReadByte() (byte, error) {
	var buf [1]byte
	n, err := unix.Read(t.fd, buf[:])
	switch {
	case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.EINTR):
		return 0, ErrNoData
	case err != nil:
		return 0, fmt.Errorf("read terminal: %w", err)
	case n == 0:
		return 0, ErrNoData
	}
	return buf[0], nil
}

// Write writes p to the terminal in one call.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// WindowSize reports the terminal size in rows and columns.
func (t *Terminal) WindowSize() (rows, cols int, err error) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err == nil && ws.Col != 0 {
		return int(ws.Row), int(ws.Col), nil
	}
	// Push the cursor to the bottom-right corner and ask where it ended up.
	if _, err := t.out.WriteString("\x1b[999C\x1b[999B"); err != nil {
		return 0, 0, fmt.Errorf("window size: %w", err)
	}
	return t.cursorPosition()
}

func (t *Terminal) cursorPosition() (rows, cols int, err error) {
	if _, err := t.out.WriteString("\x1b[6n"); err != nil {
		return 0, 0, fmt.Errorf("cursor position: %w", err)
	}
	var reply bytes.Buffer
	for reply.Len() < 32 {
		b, err := t.ReadByte()
		if err != nil {
			break
		}
		if b == 'R' {
			break
		}
		reply.WriteByte(b)
	}
	return parseCursorReport(reply.Bytes())
}

// parseCursorReport parses a device status reply of the form ESC [ rows ; cols
// with the trailing 'R' already removed.
func parseCursorReport(reply []byte) (rows, cols int, err error) {
	if len(reply) < 2 || reply[0] != '\x1b' || reply[1] != '[' {
		return 0, 0, fmt.Errorf("cursor position: malformed reply %q", reply)
	}
	if _, err := fmt.Sscanf(string(reply[2:]), "%d;%d", &rows, &cols); err != nil {
		return 0, 0, fmt.Errorf("cursor position: %w", err)
	}
	if rows <= 0 || cols <= 0 {
		return 0, 0, fmt.Errorf("cursor position: invalid size %dx%d", rows, cols)
	}
	return rows, cols, nil
}
