/*
Package matrix holds the connection-cost matrix: the cost of placing a word
with right-context id r immediately before a word with left-context id l.

The text format is a header line "height width" followed by sparse
"row col cost" lines:

	3 3
	0 0 -434
	1 2 120

Cells not mentioned cost 0.
*/
package matrix

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoHeader is returned by Load for input without a dimension line.
var ErrNoHeader = errors.New("cost matrix has no header line")

// Matrix is a dense height × width grid of costs, row-major by right-context id.
type Matrix struct {
	Height int     // number of right-context ids
	Width  int     // number of left-context ids
	Costs  []int16 // len == Height*Width
}

// New creates a zero-cost matrix.
func New(height, width int) *Matrix {
	if height < 0 || width < 0 {
		panic("negative matrix dimension")
	}
	return &Matrix{
		Height: height,
		Width:  width,
		Costs:  make([]int16, height*width),
	}
}

// Cost returns the transition cost from right-context id r to left-context
// id l. Ids must be within the matrix dimensions.
func (m *Matrix) Cost(r, l uint16) int16 {
	return m.Costs[int(r)*m.Width+int(l)]
}

// Set overwrites the transition cost for (r, l).
func (m *Matrix) Set(r, l uint16, cost int16) {
	m.Costs[int(r)*m.Width+int(l)] = cost
}

// Contains reports whether (r, l) lies within the matrix.
func (m *Matrix) Contains(r, l uint16) bool {
	return int(r) < m.Height && int(l) < m.Width
}

// Load parses a matrix in text form. Blank lines are skipped; malformed or
// out-of-range lines are reported with their line number.
func Load(r io.Reader) (*Matrix, error) {
	scanner := bufio.NewScanner(r)
	var m *Matrix
	lineno := 0
	for scanner.Scan() {
		lineno++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if m == nil {
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: header needs height and width", lineno)
			}
			h, err := dimension(fields[0])
			if err != nil {
				return nil, fmt.Errorf("line %d: height: %w", lineno, err)
			}
			w, err := dimension(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: width: %w", lineno, err)
			}
			m = New(h, w)
			continue
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: expected \"row col cost\", have %q", lineno, scanner.Text())
		}
		row, err1 := strconv.ParseUint(fields[0], 10, 16)
		col, err2 := strconv.ParseUint(fields[1], 10, 16)
		cost, err3 := strconv.ParseInt(fields[2], 10, 16)
		if err := errors.Join(err1, err2, err3); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		if !m.Contains(uint16(row), uint16(col)) {
			return nil, fmt.Errorf("line %d: cell (%d,%d) outside %dx%d matrix",
				lineno, row, col, m.Height, m.Width)
		}
		m.Set(uint16(row), uint16(col), int16(cost))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNoHeader
	}
	return m, nil
}

func dimension(s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
