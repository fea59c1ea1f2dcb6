// Package skills extracts, scores and matches taxonomy skills found in free text.
package skills

import (
	"sort"
	"strings"

	"github.com/spigell/skill-matcher/internal/taxonomy"
)

// SkillSet maps a category to the sorted, de-duplicated canonical skills found for it.
type SkillSet map[taxonomy.Category][]string

// NewSkillSet returns a set with an empty entry for every given category.
func NewSkillSet(categories []taxonomy.Category) SkillSet {
	s := make(SkillSet, len(categories))
	for _, c := range categories {
		s[c] = []string{}
	}
	return s
}

// FromMap lowercases, trims and de-duplicates a loosely built category map.
func FromMap(m map[string][]string) SkillSet {
	s := make(SkillSet, len(m))
	for c, skills := range m {
		category := taxonomy.Category(strings.ToLower(strings.TrimSpace(c)))
		if _, ok := s[category]; !ok {
			s[category] = []string{}
		}
		for _, skill := range skills {
			s.Add(category, skill)
		}
	}
	return s
}

// Add inserts skill under c keeping the slice sorted. It returns false for empty or duplicate names.
func (s SkillSet) Add(c taxonomy.Category, skill string) bool {
	skill = strings.ToLower(strings.TrimSpace(skill))
	if skill == "" {
		return false
	}

	list := s[c]
	idx := sort.SearchStrings(list, skill)
	if idx < len(list) && list[idx] == skill {
		return false
	}

	list = append(list, "")
	copy(list[idx+1:], list[idx:])
	list[idx] = skill
	s[c] = list
	return true
}

func (s SkillSet) Has(c taxonomy.Category, skill string) bool {
	skill = strings.ToLower(strings.TrimSpace(skill))
	list := s[c]
	idx := sort.SearchStrings(list, skill)
	return idx < len(list) && list[idx] == skill
}

// Flat returns every skill across categories, de-duplicated and sorted.
func (s SkillSet) Flat() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, list := range s {
		for _, skill := range list {
			if _, ok := seen[skill]; ok {
				continue
			}
			seen[skill] = struct{}{}
			out = append(out, skill)
		}
	}
	sort.Strings(out)
	return out
}

// Count returns the number of distinct skills across categories.
func (s SkillSet) Count() int {
	return len(s.Flat())
}

// NonEmptyCategories returns the categories holding at least one skill, sorted by name.
func (s SkillSet) NonEmptyCategories() []taxonomy.Category {
	out := make([]taxonomy.Category, 0, len(s))
	for c, list := range s {
		if len(list) > 0 {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CategoryOf returns the first category, by name, that holds skill.
func (s SkillSet) CategoryOf(skill string) (taxonomy.Category, bool) {
	for _, c := range s.NonEmptyCategories() {
		if s.Has(c, skill) {
			return c, true
		}
	}
	return "", false
}

func (s SkillSet) Clone() SkillSet {
	out := make(SkillSet, len(s))
	for c, list := range s {
		out[c] = append([]string{}, list...)
	}
	return out
}

// compact drops categories without skills.
func (s SkillSet) compact() SkillSet {
	for c, list := range s {
		if len(list) == 0 {
			delete(s, c)
		}
	}
	return s
}
