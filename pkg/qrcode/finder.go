package qr

// finderSize is the side length of a finder pattern in modules.
const finderSize = 7

// IsFinder reports whether (row, col) belongs to one of the three finder patterns
// of a symbol with the given side length. There is no bottom-right finder.
func IsFinder(row, col, size int) bool {
	return (row < finderSize && col < finderSize) ||
		(row < finderSize && col >= size-finderSize) ||
		(row >= size-finderSize && col < finderSize)
}
