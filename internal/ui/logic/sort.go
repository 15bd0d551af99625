package logic

import (
	"sort"
	"strings"

	"herbalsearch/internal/domain"
)

// SortMode represents different sort modes
type SortMode int

const (
	// SortByCatalog keeps the order the catalog returned
	SortByCatalog SortMode = iota
	SortByName
	SortByScientificName
	SortByCategory
)

func (m SortMode) String() string {
	switch m {
	case SortByName:
		return "name"
	case SortByScientificName:
		return "scientific name"
	case SortByCategory:
		return "category"
	default:
		return "catalog order"
	}
}

// Next returns the mode after m, wrapping around
func (m SortMode) Next() SortMode {
	return (m + 1) % (SortByCategory + 1)
}

// SortPlants returns a sorted copy of plants; the input slice is left untouched
func SortPlants(plants []domain.Plant, mode SortMode) []domain.Plant {
	out := make([]domain.Plant, len(plants))
	copy(out, plants)

	switch mode {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case SortByScientificName:
		sort.SliceStable(out, func(i, j int) bool {
			si, sj := out[i].ScientificName, out[j].ScientificName
			// Plants without a scientific name go last
			if (si == "") != (sj == "") {
				return sj == ""
			}
			return strings.ToLower(si) < strings.ToLower(sj)
		})
	case SortByCategory:
		sort.SliceStable(out, func(i, j int) bool {
			ci, cj := strings.ToLower(categoryOf(out[i])), strings.ToLower(categoryOf(out[j]))
			if ci != cj {
				return ci < cj
			}
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	}
	return out
}
