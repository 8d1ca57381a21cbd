// Package screen implements the logical screen buffer, region layout and
// the differential renderer.
package screen

// Buffer is a logical screen keyed by row index. Components write fully
// formatted lines (styling included) and never touch the terminal
// directly; the renderer decides what actually gets repainted.
type Buffer struct {
	rows []string
}

// NewBuffer returns a buffer with the given number of rows.
func NewBuffer(height int) *Buffer {
	if height < 1 {
		height = 1
	}
	return &Buffer{rows: make([]string, height)}
}

// Height returns the number of rows.
func (b *Buffer) Height() int {
	return len(b.rows)
}

// Row returns the content of row i, or "" when i is out of range.
func (b *Buffer) Row(i int) string {
	if i < 0 || i >= len(b.rows) {
		return ""
	}
	return b.rows[i]
}

// SetRow writes row i. Out-of-range writes are dropped so callers laying
// out an undersized terminal never panic.
func (b *Buffer) SetRow(i int, line string) {
	if i < 0 || i >= len(b.rows) {
		return
	}
	b.rows[i] = line
}

// Clear empties every row.
func (b *Buffer) Clear() {
	for i := range b.rows {
		b.rows[i] = ""
	}
}

// Resize grows or shrinks the buffer, clearing all content.
func (b *Buffer) Resize(height int) {
	if height < 1 {
		height = 1
	}
	b.rows = make([]string, height)
}

// copyFrom makes b an exact copy of src, resizing as needed.
func (b *Buffer) copyFrom(src *Buffer) {
	if len(b.rows) != len(src.rows) {
		b.rows = make([]string, len(src.rows))
	}
	copy(b.rows, src.rows)
}
