package qr

import "fmt"

// Matrix is an immutable square grid of QR modules.
type Matrix struct {
	size int
	bits [][]bool
}

// NewMatrix copies bits into a Matrix. bits[row][col] is true for a set module.
func NewMatrix(bits [][]bool) (Matrix, error) {
	size := len(bits)
	if size == 0 {
		return Matrix{}, fmt.Errorf("empty module matrix")
	}

	copied := make([][]bool, size)
	for row, line := range bits {
		if len(line) != size {
			return Matrix{}, fmt.Errorf("module matrix row %d has %d columns, want %d", row, len(line), size)
		}
		copied[row] = append([]bool(nil), line...)
	}

	return Matrix{size: size, bits: copied}, nil
}

// Size returns the side length in modules.
func (m Matrix) Size() int {
	return m.size
}

// Get reports whether the module at (row, col) is set. Out of range cells are unset.
func (m Matrix) Get(row, col int) bool {
	if row < 0 || col < 0 || row >= m.size || col >= m.size {
		return false
	}
	return m.bits[row][col]
}
