package layout

import (
	"fmt"

	"github.com/iremince/garden-project/internal/domain"
)

// Default grid dimensions: rows A..C, columns 1..4.
const (
	GridRows    = 3
	GridColumns = 4

	bedSize    = 2.0
	bedSpacing = 3.0
	bedHeight  = 0.5
)

// DefaultSlots is a 3x4 grid of 2x2 soil beds centered on the origin.
// Slot ids are row letter plus column number, e.g. "B3".
func DefaultSlots() []Slot {
	slots := make([]Slot, 0, GridRows*GridColumns)
	for r := 0; r < GridRows; r++ {
		z := (float64(r) - float64(GridRows-1)/2) * bedSpacing
		for c := 0; c < GridColumns; c++ {
			x := (float64(c) - float64(GridColumns-1)/2) * bedSpacing
			slots = append(slots, Slot{
				ID: fmt.Sprintf("%c%d", 'A'+r, c+1),
				Box: Box{
					Min: domain.Position{X: x - bedSize/2, Y: 0, Z: z - bedSize/2},
					Max: domain.Position{X: x + bedSize/2, Y: bedHeight, Z: z + bedSize/2},
				},
			})
		}
	}
	return slots
}

// Default returns the built-in grid layout.
func Default() *Layout {
	l, err := New(DefaultSlots())
	if err != nil {
		panic(fmt.Sprintf("layout: default grid is invalid: %v", err))
	}
	return l
}
