package logic

import (
	"sort"
	"strings"

	"herbalsearch/internal/domain"
)

// AllCategories is the category that matches every plant
const AllCategories = "all"

// MatchesCategory reports whether a plant is shown under the selected category.
// "all" and the empty string show everything; otherwise the category must match exactly.
func MatchesCategory(p domain.Plant, category string) bool {
	if category == "" || category == AllCategories {
		return true
	}
	return categoryOf(p) == category
}

// FilterByCategory returns the plants shown under category, keeping their order
func FilterByCategory(plants []domain.Plant, category string) []domain.Plant {
	if category == "" || category == AllCategories {
		return plants
	}
	out := make([]domain.Plant, 0, len(plants))
	for _, p := range plants {
		if MatchesCategory(p, category) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns "all" followed by the distinct categories of plants, sorted case-insensitively
func Categories(plants []domain.Plant) []string {
	seen := make(map[string]bool)
	var cats []string
	for _, p := range plants {
		c := categoryOf(p)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		return strings.ToLower(cats[i]) < strings.ToLower(cats[j])
	})
	return append([]string{AllCategories}, cats...)
}

// NextCategory steps through categories, wrapping around. An unknown current value restarts at "all".
func NextCategory(categories []string, current string, step int) string {
	if len(categories) == 0 {
		return AllCategories
	}
	idx := -1
	for i, c := range categories {
		if c == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return categories[0]
	}
	n := len(categories)
	return categories[((idx+step)%n+n)%n]
}

func categoryOf(p domain.Plant) string {
	if p.Category != "" {
		return p.Category
	}
	if p.CategoryInfo != nil {
		return p.CategoryInfo.Name
	}
	return ""
}
