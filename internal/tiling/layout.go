// Package tiling computes arrangements of child windows inside a client area.
package tiling

import (
	"fmt"
	"math"

	"github.com/1broseidon/wintk/internal/geom"
)

// Mode selects the arrangement algorithm.
type Mode string

const (
	ModeGrid        Mode = "grid"
	ModeVertical    Mode = "vertical"
	ModeHorizontal  Mode = "horizontal"
	ModeMasterStack Mode = "master_stack"
)

// Layout configures an arrangement.
type Layout struct {
	Mode            Mode
	FlexibleLastRow bool
	// Master-stack settings.
	MasterWidthPercent int
	MaxStackRows       int
	MaxStackCols       int
	// Cells larger than these are shrunk and centered in their slot.
	MaxCellWidth  int
	MaxCellHeight int
}

// DefaultLayout is an auto grid whose last row stretches to fill the width.
var DefaultLayout = Layout{
	Mode:               ModeGrid,
	FlexibleLastRow:    true,
	MasterWidthPercent: 50,
	MaxStackRows:       3,
	MaxStackCols:       2,
}

// CalculateGrid determines the optimal grid dimensions for the given number of windows
func CalculateGrid(numWindows int) (rows, cols int) {
	if numWindows == 0 {
		return 0, 0
	}

	// Calculate columns first (ceiling of square root)
	cols = int(math.Ceil(math.Sqrt(float64(numWindows))))

	// Calculate rows needed
	rows = int(math.Ceil(float64(numWindows) / float64(cols)))

	return rows, cols
}

// Positions computes window positions using layout.
func Positions(numWindows int, area geom.Rect, layout Layout, gapSize int) ([]geom.Rect, error) {
	if numWindows == 0 {
		return nil, nil
	}

	var rows, cols int
	flexibleLastRow := layout.FlexibleLastRow

	switch layout.Mode {
	case ModeGrid, "":
		rows, cols = CalculateGrid(numWindows)

	case ModeVertical:
		rows = numWindows
		cols = 1
		flexibleLastRow = false

	case ModeHorizontal:
		rows = 1
		cols = numWindows
		flexibleLastRow = false

	case ModeMasterStack:
		return masterStack(numWindows, area, layout, gapSize)

	default:
		return nil, fmt.Errorf("unsupported layout mode: %q", layout.Mode)
	}

	slotWidth := (area.W - (cols+1)*gapSize) / cols
	slotHeight := (area.H - (rows+1)*gapSize) / rows
	if slotWidth <= 0 || slotHeight <= 0 {
		return nil, fmt.Errorf(
			"insufficient space for layout: area=%dx%d rows=%d cols=%d gap=%d (slot=%dx%d)",
			area.W, area.H, rows, cols, gapSize, slotWidth, slotHeight,
		)
	}

	cellWidth := slotWidth
	cellHeight := slotHeight
	if layout.MaxCellWidth > 0 && cellWidth > layout.MaxCellWidth {
		cellWidth = layout.MaxCellWidth
	}
	if layout.MaxCellHeight > 0 && cellHeight > layout.MaxCellHeight {
		cellHeight = layout.MaxCellHeight
	}

	lastRowIndex := rows - 1
	windowsInLastRow := numWindows - lastRowIndex*cols
	if windowsInLastRow <= 0 {
		windowsInLastRow = cols
	}

	// The last row may hold fewer windows; they expand to fill the width.
	var lastRowSlotWidth, lastRowCellWidth int
	if flexibleLastRow && windowsInLastRow < cols {
		lastRowSlotWidth = (area.W - (windowsInLastRow+1)*gapSize) / windowsInLastRow
		lastRowCellWidth = lastRowSlotWidth
		if layout.MaxCellWidth > 0 && lastRowCellWidth > layout.MaxCellWidth {
			lastRowCellWidth = layout.MaxCellWidth
		}
	}

	positions := make([]geom.Rect, numWindows)
	for i := 0; i < numWindows; i++ {
		row := i / cols
		col := i % cols

		thisSlotWidth, thisCellWidth := slotWidth, cellWidth
		x := area.X + gapSize + col*(slotWidth+gapSize)
		if flexibleLastRow && row == lastRowIndex && windowsInLastRow < cols {
			lastRowCol := i - lastRowIndex*cols
			thisSlotWidth, thisCellWidth = lastRowSlotWidth, lastRowCellWidth
			x = area.X + gapSize + lastRowCol*(thisSlotWidth+gapSize)
		}
		y := area.Y + gapSize + row*(slotHeight+gapSize)

		// Center within the slot when the cell is capped.
		x += (thisSlotWidth - thisCellWidth) / 2
		y += (slotHeight - cellHeight) / 2

		positions[i] = geom.R(x, y, thisCellWidth, cellHeight)
	}
	return positions, nil
}

func masterStack(numWindows int, area geom.Rect, layout Layout, gapSize int) ([]geom.Rect, error) {
	percent := layout.MasterWidthPercent
	if percent <= 0 || percent >= 100 {
		percent = 50
	}
	maxRows := max(layout.MaxStackRows, 1)
	maxCols := max(layout.MaxStackCols, 1)

	masterWidth := area.W*percent/100 - gapSize
	stackHeight := area.H - 2*gapSize

	if numWindows == 1 {
		return []geom.Rect{geom.R(area.X+gapSize, area.Y+gapSize, masterWidth, stackHeight)}, nil
	}

	rightStartX := area.X + masterWidth + 2*gapSize
	rightRegionWidth := area.W - masterWidth - 3*gapSize
	stackCount := numWindows - 1

	stackCols := int(math.Ceil(float64(stackCount) / float64(maxRows)))
	stackCols = min(max(stackCols, 1), maxCols)
	stackRows := min(int(math.Ceil(float64(stackCount)/float64(stackCols))), maxRows)

	// Windows beyond the stack capacity are not placed.
	if stackCount > stackRows*stackCols {
		stackCount = stackRows * stackCols
		numWindows = stackCount + 1
	}

	cellWidth := (rightRegionWidth - (stackCols-1)*gapSize) / stackCols
	cellHeight := (stackHeight - (stackRows-1)*gapSize) / stackRows
	if masterWidth <= 0 || cellWidth <= 0 || cellHeight <= 0 {
		return nil, fmt.Errorf(
			"insufficient space for master-stack layout: area=%dx%d masterWidth=%d cellWidth=%d cellHeight=%d gap=%d",
			area.W, area.H, masterWidth, cellWidth, cellHeight, gapSize,
		)
	}

	positions := make([]geom.Rect, numWindows)
	positions[0] = geom.R(area.X+gapSize, area.Y+gapSize, masterWidth, stackHeight)
	for i := 0; i < stackCount; i++ {
		row := i / stackCols
		col := i % stackCols
		positions[i+1] = geom.R(
			rightStartX+col*(cellWidth+gapSize),
			area.Y+gapSize+row*(cellHeight+gapSize),
			cellWidth,
			cellHeight,
		)
	}
	return positions, nil
}

// Cascade stacks windows diagonally from the area origin, each offset by step
// from the previous one. Every window gets size, shrunk to fit the area.
// The cascade restarts at the origin when it would run off the area.
func Cascade(numWindows int, area geom.Rect, step, size geom.Point) []geom.Rect {
	if numWindows == 0 {
		return nil
	}
	w := max(min(size.X, area.W), 1)
	h := max(min(size.Y, area.H), 1)

	perRun := numWindows
	if step.X > 0 {
		perRun = min(perRun, (area.W-w)/step.X+1)
	}
	if step.Y > 0 {
		perRun = min(perRun, (area.H-h)/step.Y+1)
	}
	perRun = max(perRun, 1)

	positions := make([]geom.Rect, numWindows)
	for i := range positions {
		k := i % perRun
		positions[i] = geom.R(area.X+k*step.X, area.Y+k*step.Y, w, h)
	}
	return positions
}
