package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	tax, err := Load()
	require.NoError(t, err)

	assert.Greater(t, tax.Len(), 100)
	assert.Equal(t, ProgrammingLanguages, tax.Categories()[0])

	for _, c := range MainCategories {
		assert.NotEmpty(t, tax.Entries(c), "main category %s has no skills", c)
	}

	assert.Equal(t, []int{2024, 2025}, tax.HotSkills().Years())
}

func TestLoadEmbeddedHotSkillsAreCanonical(t *testing.T) {
	tax, err := Load()
	require.NoError(t, err)

	known := make(map[string]bool)
	for _, c := range tax.Categories() {
		for _, e := range tax.Entries(c) {
			known[e.Canonical] = true
		}
	}

	for skill := range tax.HotSkills().Set() {
		assert.True(t, known[skill], "hot skill %q is not a canonical taxonomy skill", skill)
	}
}

func TestParseRejectsDuplicateCanonical(t *testing.T) {
	data := []byte(`
categories:
  - name: frameworks
    skills:
      - canonical: react
  - name: tools
    skills:
      - canonical: React
`)

	_, err := Parse(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `canonical skill "react"`)
}

func TestParseRejectsReservedCategory(t *testing.T) {
	_, err := Parse([]byte("categories:\n  - name: other\n"))
	require.Error(t, err)
}

func TestParseKeepsEmptyCategory(t *testing.T) {
	tax, err := Parse([]byte("categories:\n  - name: databases\n"))
	require.NoError(t, err)

	assert.Equal(t, []Category{Databases}, tax.Categories())
	assert.Empty(t, tax.Entries(Databases))
}

func TestHotSkillsUnionAcrossYears(t *testing.T) {
	hot := HotSkills{
		2023: {DevOps: {"docker"}},
		2024: {DevOps: {"kubernetes"}, AIML: {"llm"}},
	}

	assert.True(t, hot.IsHot("docker"))
	assert.True(t, hot.IsHot("Kubernetes"))
	assert.True(t, hot.IsHot("docker", 2023, 2024))
	assert.False(t, hot.IsHot("docker", 2024))
	assert.False(t, hot.IsHot("llm", 1999))
	assert.Len(t, hot.Set(), 3)
}

func TestHotSkillsExamples(t *testing.T) {
	hot := HotSkills{
		2023: {DevOps: {"docker"}},
		2024: {AIML: {"llm", "pytorch"}, ProgrammingLanguages: {"rust"}, "custom": {"zig"}},
	}

	assert.Equal(t, []string{"rust", "llm"}, hot.Examples(2))
	assert.Equal(t, []string{"rust", "llm", "pytorch", "zig"}, hot.Examples(10))
	assert.Equal(t, []string{"docker"}, hot.Examples(3, 2023))
	assert.Nil(t, hot.Examples(0))
	assert.Nil(t, HotSkills{}.Examples(3))
}
