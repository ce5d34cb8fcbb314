package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// bar returns a width-cell block bar filled to pct, clamped to [0, 1].
func bar(pct float64, width int) string {
	pct = min(max(pct, 0), 1)
	width = max(width, 1)
	filled := min(int(pct*float64(width)+0.5), width)
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = min(max(pct, 0), 1)
	width = max(width, 2)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar(pct, width)), pct*100)
}

// RenderBar renders an unbracketed green bar of value against scale. Used
// for chart rows, where a zero value draws an empty track.
func RenderBar(value, scale, width int) string {
	pct := 0.0
	if scale > 0 {
		pct = float64(value) / float64(scale)
	}
	b := bar(pct, width)
	filled := strings.Count(b, filledBlock)
	return StyleGreen.Render(b[:filled*len(filledBlock)]) + StyleDim.Render(b[filled*len(filledBlock):])
}
