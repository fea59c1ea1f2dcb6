package skills

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/skill-matcher/internal/taxonomy"
)

type rule struct {
	alias     string
	canonical string
	category  taxonomy.Category
	shape     AliasShape
	re        *regexp.Regexp
}

// Extractor finds taxonomy skills in text. It is immutable after NewExtractor and safe for
// concurrent use.
type Extractor struct {
	categories []taxonomy.Category
	aliases    map[string]string
	owners     map[string]taxonomy.Category
	rules      []rule
	logger     *zap.Logger
}

// NewExtractor builds the alias lookup tables and compiles one rule per alias.
// Aliases that cannot be compiled are skipped and logged.
func NewExtractor(tax *taxonomy.Taxonomy, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Extractor{
		categories: tax.Categories(),
		aliases:    make(map[string]string),
		owners:     make(map[string]taxonomy.Category),
		logger:     logger,
	}

	for _, c := range e.categories {
		for _, entry := range tax.Entries(c) {
			e.owners[entry.Canonical] = c

			for _, form := range entry.Forms() {
				key := strings.ToLower(strings.TrimSpace(form))

				re, err := BuildPattern(key)
				if err != nil {
					logger.Warn("skipping alias",
						zap.String("canonical", entry.Canonical),
						zap.String("alias", form),
						zap.Error(err),
					)
					continue
				}

				if prev, ok := e.aliases[key]; ok && prev != entry.Canonical {
					logger.Warn("alias collision in taxonomy, last definition wins",
						zap.String("alias", key),
						zap.String("previous", prev),
						zap.String("canonical", entry.Canonical),
					)
				}
				e.aliases[key] = entry.Canonical

				e.rules = append(e.rules, rule{
					alias:     key,
					canonical: entry.Canonical,
					category:  c,
					shape:     ShapeOf(key),
					re:        re,
				})
			}
		}
	}

	logger.Debug("skill extractor ready",
		zap.Int("categories", len(e.categories)),
		zap.Int("skills", len(e.owners)),
		zap.Int("rules", len(e.rules)),
	)

	return e
}

// Categories returns the taxonomy categories in definition order.
func (e *Extractor) Categories() []taxonomy.Category {
	return append([]taxonomy.Category{}, e.categories...)
}

// CanonicalSkills returns every canonical skill name, sorted.
func (e *Extractor) CanonicalSkills() []string {
	out := make([]string, 0, len(e.owners))
	for canonical := range e.owners {
		out = append(out, canonical)
	}
	sort.Strings(out)
	return out
}

// NormalizeSkill resolves any alias to its canonical name.
func (e *Extractor) NormalizeSkill(text string) (string, bool) {
	canonical, ok := e.aliases[strings.ToLower(strings.TrimSpace(text))]
	return canonical, ok
}

// SkillCategory resolves text to a canonical skill and returns its category.
func (e *Extractor) SkillCategory(text string) (taxonomy.Category, bool) {
	canonical, ok := e.NormalizeSkill(text)
	if !ok {
		return "", false
	}
	c, ok := e.owners[canonical]
	return c, ok
}

// Canonicalize returns the canonical name for known aliases and the lowercased, trimmed
// input otherwise.
func (e *Extractor) Canonicalize(text string) string {
	if canonical, ok := e.NormalizeSkill(text); ok {
		return canonical
	}
	return strings.ToLower(strings.TrimSpace(text))
}

// ExtractSkills returns the categorized canonical skills mentioned in text.
// Every taxonomy category is present in the result, possibly empty.
func (e *Extractor) ExtractSkills(text string) SkillSet {
	found := NewSkillSet(e.categories)
	if strings.TrimSpace(text) == "" {
		return found
	}

	for _, r := range e.rules {
		if found.Has(r.category, r.canonical) {
			continue
		}
		if r.re.MatchString(text) {
			found.Add(r.category, r.canonical)
		}
	}

	return found
}

// ExtractSkillsFlat returns the extracted skills as one sorted, de-duplicated list.
func (e *Extractor) ExtractSkillsFlat(text string) []string {
	return e.ExtractSkills(text).Flat()
}

// ExtractSkillsWithOther extracts skills from text and merges externally identified skills.
// Known ones land in their taxonomy category, unknown ones in taxonomy.Other.
func (e *Extractor) ExtractSkillsWithOther(text string, external []string) SkillSet {
	found := e.ExtractSkills(text)
	found[taxonomy.Other] = []string{}

	for _, raw := range external {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if c, ok := e.SkillCategory(raw); ok {
			canonical, _ := e.NormalizeSkill(raw)
			found.Add(c, canonical)
			continue
		}
		found.Add(taxonomy.Other, raw)
	}

	return found
}

// Categorize buckets a flat list of skill names by taxonomy category. Unknown names go to
// taxonomy.Other. The result is sparse.
func (e *Extractor) Categorize(names []string) SkillSet {
	out := SkillSet{}
	for _, name := range names {
		canonical := e.Canonicalize(name)
		if canonical == "" {
			continue
		}
		c, ok := e.owners[canonical]
		if !ok {
			c = taxonomy.Other
		}
		out.Add(c, canonical)
	}
	return out
}
