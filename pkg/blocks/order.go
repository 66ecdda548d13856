package blocks

import "sort"

// Positioned is anything carrying an identifier and a sibling position.
type Positioned struct {
	ID    int64
	Order float64
}

// SortByOrder sorts positions ascending, breaking ties by id so results are
// stable across stores.
func SortByOrder(items []Positioned) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order == items[j].Order {
			return items[i].ID < items[j].ID
		}
		return items[i].Order < items[j].Order
	})
}

// Densify returns the new position of every item after renumbering them
// 0..n-1 in their current order. Only items whose position changes appear in
// the result.
func Densify(items []Positioned) map[int64]float64 {
	stored := make(map[int64]float64, len(items))
	for _, it := range items {
		stored[it.ID] = it.Order
	}
	return Renumber(items, stored)
}

// Renumber sorts wanted by its requested order and assigns positions
// 0..n-1. Only items whose new position differs from stored appear in the
// result.
func Renumber(wanted []Positioned, stored map[int64]float64) map[int64]float64 {
	sorted := make([]Positioned, len(wanted))
	copy(sorted, wanted)
	SortByOrder(sorted)

	changed := make(map[int64]float64)
	for i, it := range sorted {
		if cur, ok := stored[it.ID]; !ok || cur != float64(i) {
			changed[it.ID] = float64(i)
		}
	}
	return changed
}

// Move returns ids with the element at from moved to index to. Indices are
// clamped to the slice bounds.
func Move(ids []int64, from, to int) []int64 {
	out := make([]int64, len(ids))
	copy(out, ids)
	if len(out) == 0 || from < 0 || from >= len(out) {
		return out
	}
	if to < 0 {
		to = 0
	}
	if to >= len(out) {
		to = len(out) - 1
	}
	id := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]int64{id}, out[to:]...)...)
	return out
}
