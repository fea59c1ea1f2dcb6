package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/skill-matcher/internal/taxonomy"
)

func newTestMatcher(t *testing.T) (*Matcher, *Extractor) {
	t.Helper()

	e := newTestExtractor(t)
	return NewMatcher(e, nil), e
}

func TestMatchSkills(t *testing.T) {
	m, _ := newTestMatcher(t)

	candidate := SkillSet{
		taxonomy.ProgrammingLanguages: {"python", "java"},
		taxonomy.Frameworks:           {"django"},
	}

	got := m.MatchSkills(candidate, "Python, JavaScript, Django, React")

	assert.Equal(t, SkillSet{
		taxonomy.ProgrammingLanguages: {"python"},
		taxonomy.Frameworks:           {"django"},
	}, got.Matched)
	assert.Equal(t, SkillSet{
		taxonomy.ProgrammingLanguages: {"javascript"},
		taxonomy.Frameworks:           {"react"},
	}, got.Missing)
	assert.Equal(t, SkillSet{
		taxonomy.ProgrammingLanguages: {"java"},
	}, got.Extra)
	assert.Equal(t, 2, got.MatchedCount)
	assert.Equal(t, 4, got.RequiredCount)
	assert.Equal(t, 0.5, got.MatchRate)
}

func TestMatchSkillsEmptyRequirement(t *testing.T) {
	m, _ := newTestMatcher(t)

	candidate := SkillSet{taxonomy.ProgrammingLanguages: {"python"}}

	for _, text := range []string{"", "   ", "we value punctuality"} {
		got := m.MatchSkills(candidate, text)
		assert.Zero(t, got.MatchRate)
		assert.Empty(t, got.Matched)
		assert.Empty(t, got.Missing)
		assert.Equal(t, SkillSet{taxonomy.ProgrammingLanguages: {"python"}}, got.Extra)
	}
}

func TestMatchSkillsEmptyCandidate(t *testing.T) {
	m, _ := newTestMatcher(t)

	got := m.MatchSkills(nil, "Go lang and Redis")

	assert.Zero(t, got.MatchRate)
	assert.Empty(t, got.Matched)
	assert.Empty(t, got.Extra)
	assert.Equal(t, 2, got.RequiredCount)
}

func TestMatchSkillsNormalizesCandidate(t *testing.T) {
	m, _ := newTestMatcher(t)

	// Aliases resolve and known skills move to their taxonomy category.
	candidate := SkillSet{
		taxonomy.Tools: {"K8s", "ReactJS"},
		taxonomy.Other: {"Cobol"},
	}

	got := m.MatchSkills(candidate, "Kubernetes and React")

	assert.Equal(t, 1.0, got.MatchRate)
	assert.Equal(t, SkillSet{
		taxonomy.DevOps:     {"kubernetes"},
		taxonomy.Frameworks: {"react"},
	}, got.Matched)
	assert.Equal(t, SkillSet{taxonomy.Other: {"cobol"}}, got.Extra)
}

func TestMatchSkillsPartition(t *testing.T) {
	m, e := newTestMatcher(t)

	cases := []struct {
		candidate SkillSet
		text      string
	}{
		{SkillSet{taxonomy.ProgrammingLanguages: {"python", "go"}, taxonomy.Databases: {"redis"}}, "Golang, Redis, Kafka, PostgreSQL and Scrum"},
		{SkillSet{taxonomy.DevOps: {"aws", "docker", "terraform"}}, "AWS, Azure, GCP, Docker"},
		{SkillSet{taxonomy.SoftSkills: {"teamwork"}}, "Kỹ năng giao tiếp, làm việc nhóm"},
		{SkillSet{}, ""},
	}

	for _, tc := range cases {
		requirement := e.ExtractSkills(tc.text)
		candidate := m.NormalizeCandidate(tc.candidate)
		got := m.MatchSkills(tc.candidate, tc.text)

		categories := map[taxonomy.Category]struct{}{}
		for c := range requirement {
			categories[c] = struct{}{}
		}
		for c := range candidate {
			categories[c] = struct{}{}
		}

		for c := range categories {
			union := SkillSet{}
			for _, s := range got.Matched[c] {
				union.Add(c, s)
			}
			for _, s := range got.Missing[c] {
				union.Add(c, s)
			}
			assert.ElementsMatch(t, requirement[c], union[c], "matched+missing in %s", c)

			union = SkillSet{}
			for _, s := range got.Matched[c] {
				union.Add(c, s)
			}
			for _, s := range got.Extra[c] {
				union.Add(c, s)
			}
			assert.ElementsMatch(t, candidate[c], union[c], "matched+extra in %s", c)
		}

		assert.GreaterOrEqual(t, got.MatchRate, 0.0)
		assert.LessOrEqual(t, got.MatchRate, 1.0)
	}
}

func TestMatchRate(t *testing.T) {
	assert.Zero(t, MatchRate(0, 0))
	assert.Zero(t, MatchRate(3, 0))
	assert.Equal(t, 0.3333, MatchRate(1, 3))
	assert.Equal(t, 0.6667, MatchRate(2, 3))
	assert.Equal(t, 1.0, MatchRate(5, 5))
}
