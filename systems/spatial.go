package systems

import "math"

// Neighbor holds a nearby item with precomputed spatial data.
// Index refers to the slice the grid was built from and is valid only
// until that slice changes.
type Neighbor struct {
	Index  int
	DX, DY float32 // Toroidal delta from query origin
	DistSq float32 // Squared distance (avoid sqrt in hot path)
}

type gridEntry struct {
	index int
	pos   Vec2
}

// SpatialGrid provides O(1) neighbor lookups using a cell-based grid on a torus.
type SpatialGrid struct {
	cellW, cellH float32
	cols, rows   int
	bounds       Bounds
	cells        [][]gridEntry
}

// NewSpatialGrid creates a spatial grid covering the given bounds.
// Cells are at least cellSize wide and tile the world exactly so that
// wrapping from the last column to the first is seamless.
func NewSpatialGrid(bounds Bounds, cellSize float32) *SpatialGrid {
	cols := int(bounds.Width / cellSize)
	if cols < 1 {
		cols = 1
	}
	rows := int(bounds.Height / cellSize)
	if rows < 1 {
		rows = 1
	}

	cells := make([][]gridEntry, cols*rows)
	for i := range cells {
		cells[i] = make([]gridEntry, 0, 8) // pre-allocate small capacity
	}

	return &SpatialGrid{
		cellW:  bounds.Width / float32(cols),
		cellH:  bounds.Height / float32(rows),
		cols:   cols,
		rows:   rows,
		bounds: bounds,
		cells:  cells,
	}
}

// Clear removes all entries from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an item to the grid at the given position.
func (g *SpatialGrid) Insert(index int, pos Vec2) {
	pos = g.bounds.Wrap(pos)
	col, row := g.cell(pos)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], gridEntry{index: index, pos: pos})
}

// Rebuild clears the grid and inserts every position by slice index.
func (g *SpatialGrid) Rebuild(positions []Vec2) {
	g.Clear()
	for i, p := range positions {
		g.Insert(i, p)
	}
}

// QueryRadiusInto finds items within radius of pos and appends them to dst.
// The item with index exclude is skipped; pass -1 to keep everything.
// Returns the updated slice. Reuse dst across calls to avoid allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, pos Vec2, radius float32, exclude int) []Neighbor {
	pos = g.bounds.Wrap(pos)
	centerCol, centerRow := g.cell(pos)
	radiusSq := radius * radius

	colFrom, colTo := span(centerCol, int(radius/g.cellW)+1, g.cols)
	rowFrom, rowTo := span(centerRow, int(radius/g.cellH)+1, g.rows)

	for dc := colFrom; dc <= colTo; dc++ {
		for dr := rowFrom; dr <= rowTo; dr++ {
			// Toroidal wrap
			col := ((dc % g.cols) + g.cols) % g.cols
			row := ((dr % g.rows) + g.rows) % g.rows

			for _, e := range g.cells[row*g.cols+col] {
				if e.index == exclude {
					continue
				}

				dx, dy := ToroidalDelta(pos.X, pos.Y, e.pos.X, e.pos.Y, g.bounds.Width, g.bounds.Height)
				distSq := dx*dx + dy*dy
				if distSq <= radiusSq {
					dst = append(dst, Neighbor{Index: e.index, DX: dx, DY: dy, DistSq: distSq})
				}
			}
		}
	}

	return dst
}

// span returns the cell range to scan around center, visiting each of the
// n cells at most once.
func span(center, reach, n int) (from, to int) {
	if 2*reach+1 >= n {
		return 0, n - 1
	}
	return center - reach, center + reach
}

// cell returns the column and row for a wrapped world position.
func (g *SpatialGrid) cell(p Vec2) (col, row int) {
	col = int(p.X / g.cellW)
	row = int(p.Y / g.cellH)

	// Clamp to valid range
	if col >= g.cols {
		col = g.cols - 1
	}
	if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// Dist returns the distance for a neighbor.
func (n Neighbor) Dist() float32 {
	return float32(math.Sqrt(float64(n.DistSq)))
}
