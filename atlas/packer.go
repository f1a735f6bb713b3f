package atlas

import (
	"image"
	"sort"
)

// Item is one named image to pack.
type Item struct {
	Name  string
	Image image.Image
}

// Placement is where an item landed.
type Placement struct {
	Page int
	X, Y int // top-left corner
}

// Layout is the result of packing: the page count and a placement per
// item name.
type Layout struct {
	Pages      int
	Placements map[string]Placement
}

// Packer places images onto as many fixed-size pages as needed.
//
// Packing is deterministic: items are visited by height descending, then
// width descending, then name, and each goes onto the first page with
// room for it.
type Packer struct {
	MaxWidth, MaxHeight int

	// Padding is the gap between neighbouring items.
	Padding int

	// BorderPadding is the gap between items and the page edges.
	BorderPadding int
}

// Validate checks the packer configuration.
func (p Packer) Validate() error {
	switch {
	case p.MaxWidth <= 0:
		return &ConfigError{Field: "MaxWidth", Reason: "must be positive"}
	case p.MaxHeight <= 0:
		return &ConfigError{Field: "MaxHeight", Reason: "must be positive"}
	case p.Padding < 0:
		return &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	case p.BorderPadding < 0:
		return &ConfigError{Field: "BorderPadding", Reason: "must be non-negative"}
	}
	return nil
}

// Pack assigns every item a page and position. Item names must be unique.
// An item that cannot fit on an empty page yields a *TooLargeError.
func (p Packer) Pack(items []Item) (*Layout, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := items[order[i]].Image.Bounds(), items[order[j]].Image.Bounds()
		if a.Dy() != b.Dy() {
			return a.Dy() > b.Dy()
		}
		if a.Dx() != b.Dx() {
			return a.Dx() > b.Dx()
		}
		return items[order[i]].Name < items[order[j]].Name
	})

	layout := &Layout{Placements: make(map[string]Placement, len(items))}
	var pages []*ShelfAllocator

	for _, idx := range order {
		it := items[idx]
		w, h := it.Image.Bounds().Dx(), it.Image.Bounds().Dy()

		probe := NewShelfAllocator(p.MaxWidth, p.MaxHeight, p.Padding, p.BorderPadding)
		if !probe.FitsEmpty(w, h) {
			return nil, &TooLargeError{
				Name:      it.Name,
				Width:     w,
				Height:    h,
				MaxWidth:  p.MaxWidth - 2*p.BorderPadding,
				MaxHeight: p.MaxHeight - 2*p.BorderPadding,
			}
		}

		placed := false
		for page, alloc := range pages {
			if x, y, ok := alloc.Allocate(w, h); ok {
				layout.Placements[it.Name] = Placement{Page: page, X: x, Y: y}
				placed = true
				break
			}
		}
		if !placed {
			alloc := probe
			x, y, _ := alloc.Allocate(w, h)
			pages = append(pages, alloc)
			layout.Placements[it.Name] = Placement{Page: len(pages) - 1, X: x, Y: y}
		}
	}

	layout.Pages = len(pages)
	return layout, nil
}
