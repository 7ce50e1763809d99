package buffer

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

// fileMode is the permission a save gives to a file it creates.
const fileMode os.FileMode = 0o644

// Open loads path into a new buffer, one row per line.
// A path that does not exist yet yields an empty buffer that keeps the path,
// so the first save creates the file.
func Open(path string, opts ...Option) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			b := New(opts...)
			b.path = path
			return b, nil
		}
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}

	b := NewFromLines(splitLines(string(data)), opts...)
	b.path = path
	return b, nil
}

// splitLines splits text on line boundaries. A single trailing newline does
// not produce an extra empty row, and "\r\n" endings are accepted.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	rows := strings.Split(text, "\n")
	for i, row := range rows {
		rows[i] = strings.TrimSuffix(row, "\r")
	}
	return rows
}

// Save writes the buffer to its associated path and returns the byte count.
func (b *Buffer) Save() (int, error) {
	if b.path == "" {
		return 0, ErrNoPath
	}
	return b.WriteFile(b.path)
}

// SaveAs saves the buffer to path and, on success, makes path the
// associated file. A failed write leaves the previous path in place.
func (b *Buffer) SaveAs(path string) (int, error) {
	if path == "" {
		return 0, ErrNoPath
	}
	n, err := b.WriteFile(path)
	if err != nil {
		return n, err
	}
	b.path = path
	return n, nil
}

// WriteFile writes the joined rows to path without changing the buffer's own
// path. The file is truncated to the exact content length before writing.
func (b *Buffer) WriteFile(path string) (int, error) {
	data := []byte(b.Text())

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, fileMode)
	if err != nil {
		return 0, &IOError{Op: "save", Path: path, Err: err}
	}
	if err := f.Truncate(int64(len(data))); err != nil {
		_ = f.Close()
		return 0, &IOError{Op: "save", Path: path, Err: err}
	}
	n, err := f.Write(data)
	if err != nil {
		_ = f.Close()
		return n, &IOError{Op: "save", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return n, &IOError{Op: "save", Path: path, Err: err}
	}
	return n, nil
}
