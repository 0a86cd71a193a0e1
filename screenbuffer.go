package platen

// ScreenBuffer is the terminal front end's double buffer: the back
// buffer receives a frame's writes, the front buffer holds what the
// backend last received. Diff emits only the cells that differ, and
// Swap promotes the back buffer once a tick's flush completes.
type ScreenBuffer struct {
	width, height int
	front         [][]Cell
	back          [][]Cell
}

// NewScreenBuffer creates a screen buffer with the given dimensions.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	sb := &ScreenBuffer{width: width, height: height}
	sb.allocate()
	return sb
}

func (sb *ScreenBuffer) allocate() {
	sb.front = make([][]Cell, sb.height)
	sb.back = make([][]Cell, sb.height)
	for y := 0; y < sb.height; y++ {
		sb.front[y] = make([]Cell, sb.width)
		sb.back[y] = make([]Cell, sb.width)
		for x := 0; x < sb.width; x++ {
			sb.front[y][x] = DefaultCell()
			sb.back[y][x] = DefaultCell()
		}
	}
}

// Size returns the buffer dimensions.
func (sb *ScreenBuffer) Size() (width, height int) {
	return sb.width, sb.height
}

// SetCell writes a cell into the back buffer. Positions outside the
// buffer are silently ignored.
func (sb *ScreenBuffer) SetCell(x, y int, cell Cell) {
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return
	}
	sb.back[y][x] = cell
}

// SetString writes a string one rune per cell starting at (x, y),
// clipped to the row.
func (sb *ScreenBuffer) SetString(x, y int, s string, fg, bg Color, mods Modifier) {
	if y < 0 || y >= sb.height {
		return
	}
	col := x
	for _, r := range s {
		if col >= sb.width {
			break
		}
		if col >= 0 {
			sb.back[y][col] = Cell{
				Glyph:      string(r),
				Foreground: fg,
				Background: bg,
				Modifiers:  mods,
			}
		}
		col++
	}
}

// Fill sets every back-buffer cell to the given cell.
func (sb *ScreenBuffer) Fill(cell Cell) {
	for y := 0; y < sb.height; y++ {
		for x := 0; x < sb.width; x++ {
			sb.back[y][x] = cell
		}
	}
}

// Diff returns the cell updates needed to bring the front buffer up to
// date with the back buffer. Returns nil when nothing changed.
func (sb *ScreenBuffer) Diff() []CellUpdate {
	var updates []CellUpdate
	for y := 0; y < sb.height; y++ {
		for x := 0; x < sb.width; x++ {
			if sb.back[y][x] != sb.front[y][x] {
				updates = append(updates, CellUpdate{Col: x, Row: y, Cell: sb.back[y][x]})
			}
		}
	}
	return updates
}

// Swap copies the back buffer over the front buffer. Call after the
// diff of the current tick has been flushed, so the next tick diffs
// against the state the backend actually holds.
func (sb *ScreenBuffer) Swap() {
	for y := 0; y < sb.height; y++ {
		copy(sb.front[y], sb.back[y])
	}
}

// Resize reallocates both buffers, preserving overlapping back-buffer
// content. The front buffer resets to blank, forcing a full emit on
// the next Diff.
func (sb *ScreenBuffer) Resize(width, height int) {
	if width == sb.width && height == sb.height {
		return
	}
	oldBack := sb.back
	oldWidth, oldHeight := sb.width, sb.height

	sb.width, sb.height = width, height
	sb.allocate()

	copyHeight := min(oldHeight, height)
	copyWidth := min(oldWidth, width)
	for y := 0; y < copyHeight; y++ {
		copy(sb.back[y][:copyWidth], oldBack[y][:copyWidth])
	}
}
