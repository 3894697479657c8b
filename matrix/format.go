package matrix

import (
	"fmt"
	"strings"
)

// String renders m as a shape header followed by one bracketed line per
// row, columns right-aligned:
//
//	2x3
//	[1 3 5]
//	[2 4 6]
func (m *Matrix[T]) String() string {
	if m == nil || m.IsEmpty() {
		return "0x0"
	}
	return render(m.rows, m.cols, m.at)
}

// String renders the view the same way as a Matrix. Degenerate and stale
// views render as a single descriptive line.
func (v View[T]) String() string {
	if v.IsDegenerate() {
		return "degenerate view"
	}
	if v.Stale() {
		return fmt.Sprintf("stale %dx%d %s view", v.rows, v.cols, v.orientation)
	}
	return render(v.rows, v.cols, v.at)
}

func render[T Number](rows, cols int, at func(i, j int) T) string {
	cells := make([][]string, rows)
	widths := make([]int, cols)
	for i := range cells {
		cells[i] = make([]string, cols)
		for j := range cells[i] {
			s := fmt.Sprint(at(i, j))
			cells[i][j] = s
			widths[j] = max(widths[j], len(s))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%dx%d", rows, cols)
	for _, row := range cells {
		b.WriteString("\n[")
		for j, s := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strings.Repeat(" ", widths[j]-len(s)))
			b.WriteString(s)
		}
		b.WriteByte(']')
	}
	return b.String()
}
