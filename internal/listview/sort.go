package listview

import (
	"sort"

	"github.com/hostelhub/hostelctl/internal/filter"
	"github.com/hostelhub/hostelctl/internal/record"
)

// ApplySort orders view by the numeric value of priceField. Missing or
// non-numeric values count as 0 and records with equal keys keep their
// relative order. PriceOrderNone returns view unchanged.
func ApplySort(view []record.Record, priceField string, order filter.PriceOrder) []record.Record {
	if order != filter.PriceLowToHigh && order != filter.PriceHighToLow {
		return view
	}

	sorted := append([]record.Record(nil), view...)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Number(priceField), sorted[j].Number(priceField)
		if order == filter.PriceLowToHigh {
			return a < b
		}
		return a > b
	})

	return sorted
}
