// Package textbuf holds the editable text as an ordered sequence of lines.
//
// Every operation addresses a logical (row, col) position where col is a
// code point index. Callers are expected to clamp positions first; an index
// outside the documented range turns the operation into a no-op rather than
// a panic.
package textbuf

import "strings"

// Buffer is an ordered, 0-indexed sequence of lines. It always holds at least
// one line; an empty file is a single empty line.
type Buffer struct {
	lines [][]rune
}

// New creates a buffer from file content split on '\n'.
// A single trailing newline does not produce an extra empty line.
func New(text string) *Buffer {
	text = strings.TrimSuffix(text, "\n")
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(strings.TrimSuffix(p, "\r"))
	}
	return &Buffer{lines: lines}
}

// FromLines creates a buffer holding a copy of the given lines.
func FromLines(lines ...string) *Buffer {
	if len(lines) == 0 {
		return &Buffer{lines: [][]rune{{}}}
	}
	b := &Buffer{lines: make([][]rune, len(lines))}
	for i, l := range lines {
		b.lines[i] = []rune(l)
	}
	return b
}

// LineCount returns the number of lines (always >= 1).
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineLen returns the length of line row in code points, or 0 if row is out of range.
func (b *Buffer) LineLen(row int) int {
	if !b.validRow(row) {
		return 0
	}
	return len(b.lines[row])
}

// Line returns line row as a string, or "" if row is out of range.
func (b *Buffer) Line(row int) string {
	if !b.validRow(row) {
		return ""
	}
	return string(b.lines[row])
}

// RuneAt returns the character at (row, col) and whether it exists.
func (b *Buffer) RuneAt(row, col int) (rune, bool) {
	if !b.validRow(row) || col < 0 || col >= len(b.lines[row]) {
		return 0, false
	}
	return b.lines[row][col], true
}

// Lines returns a copy of all lines as strings.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// Text joins all lines with '\n'. No trailing newline is appended.
func (b *Buffer) Text() string {
	return strings.Join(b.Lines(), "\n")
}

// InsertChar inserts ch at col on row. col must be in [0, LineLen(row)].
func (b *Buffer) InsertChar(row, col int, ch rune) {
	if !b.validRow(row) || col < 0 || col > len(b.lines[row]) {
		return
	}
	line := b.lines[row]
	line = append(line, 0)
	copy(line[col+1:], line[col:])
	line[col] = ch
	b.lines[row] = line
}

// DeleteChar removes the character at col on row. No-op on an empty line
// or when col is past the last character.
func (b *Buffer) DeleteChar(row, col int) {
	if !b.validRow(row) || col < 0 || col >= len(b.lines[row]) {
		return
	}
	line := b.lines[row]
	b.lines[row] = append(line[:col], line[col+1:]...)
}

// SplitLine keeps [0,col) on row and inserts [col,end) as a new line at row+1.
func (b *Buffer) SplitLine(row, col int) {
	if !b.validRow(row) || col < 0 || col > len(b.lines[row]) {
		return
	}
	line := b.lines[row]
	suffix := append([]rune(nil), line[col:]...)
	b.lines[row] = line[:col:col]
	b.insertLine(row+1, suffix)
}

// TruncateFrom keeps only the suffix of row starting at col.
func (b *Buffer) TruncateFrom(row, col int) {
	if !b.validRow(row) || col < 0 || col > len(b.lines[row]) {
		return
	}
	b.lines[row] = append([]rune(nil), b.lines[row][col:]...)
}

// InsertBlankLine inserts an empty line at row. row may equal LineCount()
// to append after the last line.
func (b *Buffer) InsertBlankLine(row int) {
	if row < 0 || row > len(b.lines) {
		return
	}
	b.insertLine(row, []rune{})
}

// JoinLines appends line row+1 to row, separated by a single space when both
// sides are non-empty, and removes row+1. Leading blanks of the joined line
// are dropped. Returns the column of the separating space, or the old length
// of row when no space was inserted, or -1 if there is no next line.
func (b *Buffer) JoinLines(row int) int {
	if !b.validRow(row) || row+1 >= len(b.lines) {
		return -1
	}
	next := b.lines[row+1]
	for len(next) > 0 && (next[0] == ' ' || next[0] == '\t') {
		next = next[1:]
	}
	line := b.lines[row]
	join := len(line)
	if len(line) > 0 && len(next) > 0 {
		line = append(line, ' ')
	}
	b.lines[row] = append(line, next...)
	b.lines = append(b.lines[:row+1], b.lines[row+2:]...)
	return join
}

func (b *Buffer) insertLine(row int, line []rune) {
	b.lines = append(b.lines, nil)
	copy(b.lines[row+1:], b.lines[row:])
	b.lines[row] = line
}

func (b *Buffer) validRow(row int) bool {
	return row >= 0 && row < len(b.lines)
}
