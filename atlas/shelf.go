package atlas

// ShelfAllocator implements shelf-based rectangle packing on one page.
//
// The algorithm organizes rectangles in horizontal "shelves".
// Each shelf has a fixed height (determined by the tallest item placed so far).
// New items are placed left-to-right on the current shelf until no space remains,
// then a new shelf is started below.
//
// Padding separates neighbouring items; border keeps items away from the
// page edges.
type ShelfAllocator struct {
	width   int     // Total width of the page
	height  int     // Total height of the page
	padding int     // Padding between items
	border  int     // Padding along the page edges
	shelves []shelf // List of shelves

	// Tracking for utilization
	usedArea int
}

// shelf represents a horizontal strip in the page.
type shelf struct {
	y      int // Y position of shelf top
	height int // Height of the shelf (tallest item so far)
	x      int // Current X position (next free slot)
}

// NewShelfAllocator creates a new allocator for the given dimensions.
func NewShelfAllocator(width, height, padding, border int) *ShelfAllocator {
	return &ShelfAllocator{
		width:   width,
		height:  height,
		padding: padding,
		border:  border,
		shelves: make([]shelf, 0, 16),
	}
}

// Allocate finds space for a rectangle of the given size.
// Returns x, y position and true if space was found, or -1, -1, false if not.
//
// The algorithm:
// 1. Try to fit on an existing shelf with enough height
// 2. If no shelf fits, create a new shelf
// 3. If no space for new shelf, allocation fails
func (a *ShelfAllocator) Allocate(w, h int) (x, y int, ok bool) {
	if w <= 0 || h <= 0 {
		return -1, -1, false
	}
	right := a.width - a.border
	bottom := a.height - a.border

	for i := range a.shelves {
		s := &a.shelves[i]

		if s.x+w > right {
			continue
		}

		if h > s.height {
			// Only the last shelf can grow, and only into free space below.
			if i != len(a.shelves)-1 || s.y+h > bottom {
				continue
			}
			s.height = h
		}

		x, y = s.x, s.y
		s.x += w + a.padding
		a.usedArea += w * h
		return x, y, true
	}

	newY := a.nextShelfY()
	if a.border+w > right || newY+h > bottom {
		return -1, -1, false
	}

	a.shelves = append(a.shelves, shelf{
		y:      newY,
		height: h,
		x:      a.border + w + a.padding,
	})
	a.usedArea += w * h

	return a.border, newY, true
}

// FitsEmpty reports whether an item of the given size fits on an empty page.
func (a *ShelfAllocator) FitsEmpty(w, h int) bool {
	return w > 0 && h > 0 && w+2*a.border <= a.width && h+2*a.border <= a.height
}

// Reset clears all allocations, allowing the allocator to be reused.
func (a *ShelfAllocator) Reset() {
	a.shelves = a.shelves[:0]
	a.usedArea = 0
}

// Utilization returns the fraction of page area used (0.0 to 1.0).
func (a *ShelfAllocator) Utilization() float64 {
	if a.width <= 0 || a.height <= 0 {
		return 0
	}
	return float64(a.usedArea) / float64(a.width*a.height)
}

// UsedArea returns the total area used by allocations.
func (a *ShelfAllocator) UsedArea() int {
	return a.usedArea
}

// ShelfCount returns the number of shelves currently in use.
func (a *ShelfAllocator) ShelfCount() int {
	return len(a.shelves)
}

// nextShelfY returns the top of the next shelf.
func (a *ShelfAllocator) nextShelfY() int {
	if len(a.shelves) == 0 {
		return a.border
	}
	last := a.shelves[len(a.shelves)-1]
	return last.y + last.height + a.padding
}
