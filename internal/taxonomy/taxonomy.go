// Package taxonomy holds the curated skill catalog: categories, canonical skills with their
// aliases and the yearly in-demand ("hot") skill lists.
package taxonomy

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

type Category string

const (
	ProgrammingLanguages Category = "programming_languages"
	Frameworks           Category = "frameworks"
	Databases            Category = "databases"
	DevOps               Category = "devops"
	Infrastructure       Category = "infrastructure"
	Networking           Category = "networking"
	Compliance           Category = "compliance"
	SoftSkills           Category = "soft_skills"
	AIML                 Category = "ai_ml"
	Tools                Category = "tools"
	Methodologies        Category = "methodologies"

	// Other holds caller supplied skills that do not resolve to any taxonomy entry.
	// It is never part of the catalog itself.
	Other Category = "other"
)

// MainCategories are the categories that count towards categorization scoring.
var MainCategories = []Category{
	ProgrammingLanguages,
	Frameworks,
	Databases,
	DevOps,
	Infrastructure,
	Networking,
	Compliance,
	SoftSkills,
	AIML,
}

// IsMain reports whether c is one of MainCategories.
func IsMain(c Category) bool {
	return slices.Contains(MainCategories, c)
}

// SkillEntry is a canonical skill with its alternate surface forms.
type SkillEntry struct {
	Canonical string   `yaml:"canonical"`
	Aliases   []string `yaml:"aliases"`
}

// Forms returns the canonical name followed by every alias.
func (e SkillEntry) Forms() []string {
	forms := make([]string, 0, len(e.Aliases)+1)
	forms = append(forms, e.Canonical)
	return append(forms, e.Aliases...)
}

type categoryDoc struct {
	Name   Category     `yaml:"name"`
	Skills []SkillEntry `yaml:"skills"`
}

type taxonomyDoc struct {
	Categories []categoryDoc `yaml:"categories"`
}

// Taxonomy is an immutable, ordered catalog of categories and skills.
type Taxonomy struct {
	order   []Category
	entries map[Category][]SkillEntry
	hot     HotSkills
}

//go:embed taxonomy.yaml
var taxonomyData []byte

//go:embed hot_skills.yaml
var hotSkillsData []byte

// Load parses the embedded catalog.
func Load() (*Taxonomy, error) {
	t, err := Parse(taxonomyData)
	if err != nil {
		return nil, fmt.Errorf("parse embedded taxonomy: %w", err)
	}

	hot, err := ParseHotSkills(hotSkillsData)
	if err != nil {
		return nil, fmt.Errorf("parse embedded hot skills: %w", err)
	}

	t.hot = hot
	return t, nil
}

// Parse builds a taxonomy from its YAML form. Hot skills are left empty.
func Parse(data []byte) (*Taxonomy, error) {
	var doc taxonomyDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	t := &Taxonomy{entries: make(map[Category][]SkillEntry, len(doc.Categories))}
	for _, c := range doc.Categories {
		if err := t.add(c.Name, c.Skills); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// New builds a taxonomy from in-memory entries, keeping the order of categories as given.
func New(categories []Category, entries map[Category][]SkillEntry, hot HotSkills) (*Taxonomy, error) {
	t := &Taxonomy{entries: make(map[Category][]SkillEntry, len(categories)), hot: hot}
	for _, c := range categories {
		if err := t.add(c, entries[c]); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (t *Taxonomy) add(name Category, skills []SkillEntry) error {
	name = Category(strings.TrimSpace(string(name)))
	if name == "" {
		return fmt.Errorf("category name is required")
	}
	if name == Other {
		return fmt.Errorf("category %q is reserved", Other)
	}
	if _, ok := t.entries[name]; ok {
		return fmt.Errorf("category %q defined twice", name)
	}

	for _, s := range skills {
		canonical := strings.ToLower(strings.TrimSpace(s.Canonical))
		if canonical == "" {
			return fmt.Errorf("category %q: skill without canonical name", name)
		}
		if owner, ok := t.categoryOf(canonical); ok {
			return fmt.Errorf("canonical skill %q defined in both %q and %q", canonical, owner, name)
		}
		t.entries[name] = append(t.entries[name], SkillEntry{Canonical: canonical, Aliases: s.Aliases})
	}

	if t.entries[name] == nil {
		t.entries[name] = []SkillEntry{}
	}
	t.order = append(t.order, name)

	return nil
}

func (t *Taxonomy) categoryOf(canonical string) (Category, bool) {
	for c, skills := range t.entries {
		for _, s := range skills {
			if s.Canonical == canonical {
				return c, true
			}
		}
	}
	return "", false
}

// Categories returns the catalog categories in definition order.
func (t *Taxonomy) Categories() []Category {
	return slices.Clone(t.order)
}

// Entries returns the skills of a category in definition order.
func (t *Taxonomy) Entries(c Category) []SkillEntry {
	return slices.Clone(t.entries[c])
}

func (t *Taxonomy) HotSkills() HotSkills {
	return t.hot
}

// Len returns the number of canonical skills.
func (t *Taxonomy) Len() int {
	n := 0
	for _, skills := range t.entries {
		n += len(skills)
	}
	return n
}
