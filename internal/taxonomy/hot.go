package taxonomy

import (
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// HotSkills maps a year to the in-demand canonical skills of each category.
type HotSkills map[int]map[Category][]string

// ParseHotSkills decodes the YAML form of the yearly hot skill lists.
func ParseHotSkills(data []byte) (HotSkills, error) {
	var hot HotSkills
	if err := yaml.Unmarshal(data, &hot); err != nil {
		return nil, err
	}
	if hot == nil {
		hot = HotSkills{}
	}
	return hot, nil
}

// Years returns the known years in ascending order.
func (h HotSkills) Years() []int {
	years := make([]int, 0, len(h))
	for y := range h {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Set returns the union of hot skills across the requested years.
// No years means every known year. Unknown years contribute nothing.
func (h HotSkills) Set(years ...int) map[string]struct{} {
	if len(years) == 0 {
		years = h.Years()
	}

	set := make(map[string]struct{})
	for _, y := range years {
		for _, skills := range h[y] {
			for _, s := range skills {
				set[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
			}
		}
	}
	return set
}

// IsHot reports whether skill is hot in any of the requested years.
func (h HotSkills) IsHot(skill string, years ...int) bool {
	_, ok := h.Set(years...)[strings.ToLower(strings.TrimSpace(skill))]
	return ok
}

// Examples returns up to n hot skills of the most recent requested year, in category order
// of MainCategories and then alphabetically for anything else.
func (h HotSkills) Examples(n int, years ...int) []string {
	if n <= 0 {
		return nil
	}
	if len(years) == 0 {
		years = h.Years()
	}
	if len(years) == 0 {
		return nil
	}

	latest := slices.Max(years)
	byCategory := h[latest]

	categories := make([]Category, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		ii, jj := slices.Index(MainCategories, categories[i]), slices.Index(MainCategories, categories[j])
		switch {
		case ii >= 0 && jj >= 0:
			return ii < jj
		case ii >= 0:
			return true
		case jj >= 0:
			return false
		default:
			return categories[i] < categories[j]
		}
	})

	seen := make(map[string]struct{})
	out := make([]string, 0, n)
	for _, c := range categories {
		for _, s := range byCategory[c] {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
			if len(out) == n {
				return out
			}
		}
	}
	return out
}
