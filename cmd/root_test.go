package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/skill-matcher/internal/ranking"
	"github.com/spigell/skill-matcher/internal/relevance"
)

func TestReadText(t *testing.T) {
	got, err := readText([]string{"senior", "golang"}, "")
	require.NoError(t, err)
	assert.Equal(t, "senior golang", got)

	path := filepath.Join(t.TempDir(), "cv.txt")
	require.NoError(t, os.WriteFile(path, []byte("Python, Django"), 0o644))
	got, err = readText([]string{"ignored"}, path)
	require.NoError(t, err)
	assert.Equal(t, "Python, Django", got)

	_, err = readText(nil, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestRankingOptionsFlagsOverrideConfig(t *testing.T) {
	c := &cobra.Command{Use: "test"}
	addRankingFlags(c)
	require.NoError(t, c.Flags().Set("limit", "5"))

	config := &Config{Ranking: ranking.Options{MinScore: 40, Offset: 2, Limit: 10}}

	assert.Equal(t, ranking.Options{MinScore: 40, Offset: 2, Limit: 5}, rankingOptions(c, config))
}

func TestGetConfigDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Reset()
	viper.SetDefault("relevance.enabled", true)
	viper.SetDefault("relevance.min-similarity", relevance.DefaultMinSimilarity)
	viper.SetDefault("relevance.mismatch-confidence", relevance.DefaultMismatchConfidence)
	viper.Set("relevance.top-k", 3)
	viper.Set("scoring.hot-years", []int{2024})
	viper.Set("ranking.limit", 20)

	config, err := getConfig()
	require.NoError(t, err)

	assert.Equal(t, []int{2024}, config.Scoring.HotYears)
	assert.Equal(t, 20, config.Ranking.Limit)
	assert.Equal(t, relevance.DefaultSettings(), config.Relevance.Settings)
	assert.Equal(t, 3, config.Relevance.TopK)
	require.NotNil(t, config.AI.Gemini)
	assert.False(t, config.AI.Enabled)
}
