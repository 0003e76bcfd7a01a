package canvas

import (
	"cmp"
	"slices"
)

// Layer pairs a child ID with its depth for ordering.
type Layer struct {
	ID    string
	Depth float64
}

// OrderByDepth returns the IDs sorted back-to-front: ascending depth, with
// equal depths kept in input order. Later IDs are drawn in front of earlier
// ones. Children sharing a depth are all kept.
func OrderByDepth(layers []Layer) []string {
	sorted := slices.Clone(layers)
	slices.SortStableFunc(sorted, func(a, b Layer) int {
		return cmp.Compare(a.Depth, b.Depth)
	})

	ids := make([]string, len(sorted))
	for i, l := range sorted {
		ids[i] = l.ID
	}
	return ids
}
