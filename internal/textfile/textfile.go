// Package textfile reads and writes flat newline-delimited text files.
package textfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Disk loads and saves files on the local filesystem.
type Disk struct{}

// Load implements the editor's store using Load.
func (Disk) Load(path string) ([]string, error) { return Load(path) }

// Save implements the editor's store using Save.
func (Disk) Save(path string, lines []string) (int, error) { return Save(path, lines) }

// Load returns the lines of the file at path with trailing CR/LF stripped.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimRight(line, "\r\n"))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading file %s: %w", path, err)
		}
	}
	return lines, nil
}

// Save writes lines to path, each followed by a single '\n', and returns
// the number of bytes written.
func Save(path string, lines []string) (int, error) {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return 0, fmt.Errorf("writing file %s: %w", path, err)
	}
	return b.Len(), nil
}
