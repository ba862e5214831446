package tab

import "slices"

// allOutstanding reports whether every requested menu number can be matched
// one-for-one against a distinct outstanding item. Matching scans left to
// right and consumes the first remaining entry with the same menu number.
func allOutstanding(outstanding []OrderedItem, requested []int) bool {
	pending := make([]int, len(outstanding))
	for i, item := range outstanding {
		pending[i] = item.MenuNumber
	}
	for _, number := range requested {
		idx := slices.Index(pending, number)
		if idx < 0 {
			return false
		}
		pending = slices.Delete(pending, idx, idx+1)
	}
	return true
}

func indexOfMenuNumber(items []OrderedItem, number int) int {
	return slices.IndexFunc(items, func(item OrderedItem) bool {
		return item.MenuNumber == number
	})
}
