package skills

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/skill-matcher/internal/taxonomy"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()

	tax, err := taxonomy.Load()
	require.NoError(t, err)

	return NewExtractor(tax, zap.NewNop())
}

func TestExtractSkillsCategorizes(t *testing.T) {
	e := newTestExtractor(t)

	got := e.ExtractSkills("Skills: Python, JavaScript, React, PostgreSQL. Experience with Docker and AWS.")

	assert.Equal(t, []string{"javascript", "python"}, got[taxonomy.ProgrammingLanguages])
	assert.Equal(t, []string{"react"}, got[taxonomy.Frameworks])
	assert.Equal(t, []string{"postgresql"}, got[taxonomy.Databases])
	assert.Equal(t, []string{"aws", "docker"}, got[taxonomy.DevOps])

	for _, c := range []taxonomy.Category{taxonomy.Infrastructure, taxonomy.Networking, taxonomy.Compliance, taxonomy.SoftSkills, taxonomy.AIML, taxonomy.Tools, taxonomy.Methodologies} {
		list, ok := got[c]
		assert.True(t, ok, "category %s must be present", c)
		assert.Empty(t, list, "category %s", c)
	}
}

func TestExtractSkillsEmptyInput(t *testing.T) {
	e := newTestExtractor(t)

	for _, text := range []string{"", "   \n\t"} {
		got := e.ExtractSkills(text)
		assert.Len(t, got, len(e.Categories()))
		assert.Zero(t, got.Count())
	}
}

func TestExtractSkillsBoundaries(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name    string
		text    string
		want    []string
		notWant []string
	}{
		{
			name:    "no substring inside longer identifier",
			text:    "We use JavaScript daily",
			want:    []string{"javascript"},
			notWant: []string{"java"},
		},
		{
			name: "symbol tokens are self terminating",
			text: "Languages: C++, C# and F#.",
			want: []string{"c++", "c#", "f#"},
		},
		{
			name:    "symbol token preceded by a letter is rejected",
			text:    "abc++ and xc# are not languages",
			notWant: []string{"c++", "c#"},
		},
		{
			name:    "symbol token followed by a digit is rejected",
			text:    "C++17 features",
			notWant: []string{"c++"},
		},
		{
			name: "dot prefixed alias needs no leading boundary",
			text: "Built services on ASP.NET and .NET Core",
			want: []string{".net"},
		},
		{
			name:    "dot prefixed alias needs a trailing boundary",
			text:    "see example.network for details",
			notWant: []string{".net"},
		},
		{
			name: "markdown emphasis counts as boundary",
			text: "**Python** and _Django_ and __k8s__",
			want: []string{"python", "django", "kubernetes"},
		},
		{
			name: "multi word alias tolerates whitespace runs",
			text: "Strong background in machine\n  learning",
			want: []string{"machine learning"},
		},
		{
			name:    "multi word alias not matched inside identifier",
			text:    "machine learningX",
			notWant: []string{"machine learning"},
		},
		{
			name: "case insensitive",
			text: "POSTGRES, ReactJS, K8S",
			want: []string{"postgresql", "react", "kubernetes"},
		},
		{
			name:    "framework dot js suffix is not a language mention",
			text:    "Node.js/Express backend",
			want:    []string{"node.js"},
			notWant: []string{"javascript"},
		},
		{
			name: "vietnamese aliases",
			text: "Kỹ năng giao tiếp và làm việc nhóm tốt",
			want: []string{"communication", "teamwork"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := e.ExtractSkillsFlat(tt.text)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, got, nw)
			}
		})
	}
}

func TestExtractSkillsOrderIndependentAndIdempotent(t *testing.T) {
	e := newTestExtractor(t)

	parts := []string{"Kubernetes", "Python", "machine learning", "C#", "PostgreSQL", "GDPR"}
	forward := strings.Join(parts, ", ")

	reversed := make([]string, len(parts))
	for i, p := range parts {
		reversed[len(parts)-1-i] = p
	}
	backward := strings.Join(reversed, ", ")

	first := e.ExtractSkills(forward)
	assert.Equal(t, first, e.ExtractSkills(backward))
	assert.Equal(t, first, e.ExtractSkills(forward))
}

func TestExtractSkillsCollapsesDuplicates(t *testing.T) {
	e := newTestExtractor(t)

	got := e.ExtractSkills("React, ReactJS, react.js and REACT")
	assert.Equal(t, []string{"react"}, got[taxonomy.Frameworks])
}

func TestExtractSkillsFlatSorted(t *testing.T) {
	e := newTestExtractor(t)

	got := e.ExtractSkillsFlat("Terraform, AWS, Python, aws")
	assert.Equal(t, []string{"aws", "python", "terraform"}, got)
}

func TestNormalizeSkill(t *testing.T) {
	e := newTestExtractor(t)

	got, ok := e.NormalizeSkill("ReactJS")
	assert.True(t, ok)
	assert.Equal(t, "react", got)

	got, ok = e.NormalizeSkill("  k8s ")
	assert.True(t, ok)
	assert.Equal(t, "kubernetes", got)

	_, ok = e.NormalizeSkill("totally-unknown-thing")
	assert.False(t, ok)

	c, ok := e.SkillCategory("Postgres")
	assert.True(t, ok)
	assert.Equal(t, taxonomy.Databases, c)

	_, ok = e.SkillCategory("")
	assert.False(t, ok)
}

func TestNormalizeSkillAliasRoundTrip(t *testing.T) {
	tax, err := taxonomy.Load()
	require.NoError(t, err)
	e := NewExtractor(tax, nil)

	for _, c := range tax.Categories() {
		for _, entry := range tax.Entries(c) {
			for _, form := range entry.Forms() {
				for _, variant := range []string{form, strings.ToUpper(form), "  " + form + "\t"} {
					got, ok := e.NormalizeSkill(variant)
					require.True(t, ok, "alias %q", variant)
					assert.Equal(t, entry.Canonical, got, "alias %q", variant)
				}
			}
		}
	}
}

func TestExtractSkillsWithOther(t *testing.T) {
	e := newTestExtractor(t)

	got := e.ExtractSkillsWithOther("Python developer", []string{"K8s", "Quantum Basket Weaving", " ", "quantum basket weaving", "Python"})

	assert.Equal(t, []string{"python"}, got[taxonomy.ProgrammingLanguages])
	assert.Equal(t, []string{"kubernetes"}, got[taxonomy.DevOps])
	assert.Equal(t, []string{"quantum basket weaving"}, got[taxonomy.Other])
}

func TestExtractSkillsWithOtherAlwaysHasOtherBucket(t *testing.T) {
	e := newTestExtractor(t)

	got := e.ExtractSkillsWithOther("", nil)
	list, ok := got[taxonomy.Other]
	assert.True(t, ok)
	assert.Empty(t, list)
}

func TestNewExtractorSkipsMalformedAliases(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	tax, err := taxonomy.New(
		[]taxonomy.Category{taxonomy.DevOps},
		map[taxonomy.Category][]taxonomy.SkillEntry{
			taxonomy.DevOps: {{Canonical: "docker", Aliases: []string{"", "   ", "moby"}}},
		},
		nil,
	)
	require.NoError(t, err)

	e := NewExtractor(tax, zap.New(core))

	assert.Equal(t, 2, logs.FilterMessage("skipping alias").Len())
	assert.Equal(t, []string{"docker"}, e.ExtractSkillsFlat("moby engine"))
}

func TestNewExtractorAliasCollisionLastWins(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	tax, err := taxonomy.New(
		[]taxonomy.Category{taxonomy.DevOps, taxonomy.Tools},
		map[taxonomy.Category][]taxonomy.SkillEntry{
			taxonomy.DevOps: {{Canonical: "argocd", Aliases: []string{"argo"}}},
			taxonomy.Tools:  {{Canonical: "argo workflows", Aliases: []string{"Argo"}}},
		},
		nil,
	)
	require.NoError(t, err)

	e := NewExtractor(tax, zap.New(core))

	got, ok := e.NormalizeSkill("argo")
	assert.True(t, ok)
	assert.Equal(t, "argo workflows", got)
	assert.Equal(t, 1, logs.FilterMessage("alias collision in taxonomy, last definition wins").Len())
}

func TestCategorize(t *testing.T) {
	e := newTestExtractor(t)

	got := e.Categorize([]string{"ReactJS", "Python", "Cobol", "", "python"})

	assert.Equal(t, SkillSet{
		taxonomy.Frameworks:           {"react"},
		taxonomy.ProgrammingLanguages: {"python"},
		taxonomy.Other:                {"cobol"},
	}, got)
}

func TestExtractorConcurrentUse(t *testing.T) {
	e := newTestExtractor(t)
	want := e.ExtractSkills("Go lang, Kafka, Redis, Scrum")

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, e.ExtractSkills("Go lang, Kafka, Redis, Scrum"))
		}()
	}
	wg.Wait()
}

func TestShapeOf(t *testing.T) {
	assert.Equal(t, ShapeSymbolToken, ShapeOf("c++"))
	assert.Equal(t, ShapeSymbolToken, ShapeOf("C#"))
	assert.Equal(t, ShapeDotPrefixed, ShapeOf(".net core"))
	assert.Equal(t, ShapeGeneric, ShapeOf("node.js"))
	assert.Equal(t, ShapeGeneric, ShapeOf("machine learning"))
}

func TestBuildPattern(t *testing.T) {
	_, err := BuildPattern("  ")
	assert.ErrorIs(t, err, errEmptyAlias)

	re, err := BuildPattern("ci/cd")
	require.NoError(t, err)
	assert.True(t, re.MatchString("Owned the CI/CD pipeline"))
	assert.False(t, re.MatchString("xci/cdx"))
}
