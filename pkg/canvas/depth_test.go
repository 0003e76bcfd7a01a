package canvas

import (
	"math"
	"slices"
	"testing"
)

func TestOrderByDepth(t *testing.T) {
	tests := []struct {
		name   string
		layers []Layer
		want   []string
	}{
		{
			name:   "empty",
			layers: nil,
			want:   []string{},
		},
		{
			name:   "back to front",
			layers: []Layer{{"front", 15}, {"back", 0}},
			want:   []string{"back", "front"},
		},
		{
			name:   "equal depths keep insertion order",
			layers: []Layer{{"a", 1}, {"b", 1}, {"c", 1}},
			want:   []string{"a", "b", "c"},
		},
		{
			name:   "duplicates interleaved",
			layers: []Layer{{"a", 2}, {"b", 1}, {"c", 2}, {"d", 1}, {"e", 0}},
			want:   []string{"e", "b", "d", "a", "c"},
		},
		{
			name:   "negative and infinite depths",
			layers: []Layer{{"top", math.Inf(1)}, {"mid", -3.5}, {"bottom", math.Inf(-1)}},
			want:   []string{"bottom", "mid", "top"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrderByDepth(tt.layers)
			if !slices.Equal(got, tt.want) {
				t.Errorf("OrderByDepth() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrderByDepthDoesNotMutateInput(t *testing.T) {
	layers := []Layer{{"b", 2}, {"a", 1}}
	OrderByDepth(layers)
	if layers[0].ID != "b" || layers[1].ID != "a" {
		t.Errorf("input reordered: %v", layers)
	}
}

func TestOrderByDepthProperties(t *testing.T) {
	depths := []float64{3, 1, 2, 1, 3, 0, 2, 2, -1, 0}
	layers := make([]Layer, len(depths))
	pos := make(map[string]int, len(depths))
	for i, d := range depths {
		id := string(rune('a' + i))
		layers[i] = Layer{ID: id, Depth: d}
		pos[id] = i
	}

	got := OrderByDepth(layers)
	if len(got) != len(layers) {
		t.Fatalf("len = %d, want %d", len(got), len(layers))
	}

	for i := 1; i < len(got); i++ {
		prev, cur := layers[pos[got[i-1]]], layers[pos[got[i]]]
		if prev.Depth > cur.Depth {
			t.Errorf("%s (depth %v) precedes %s (depth %v)", prev.ID, prev.Depth, cur.ID, cur.Depth)
		}
		if prev.Depth == cur.Depth && pos[prev.ID] > pos[cur.ID] {
			t.Errorf("equal depth %v: %s should follow %s", cur.Depth, prev.ID, cur.ID)
		}
	}
}
