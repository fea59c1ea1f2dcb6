package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skill-matcher/internal/skills"
)

var scoreCmd = &cobra.Command{
	Use:   "score [text]",
	Short: "Extract skills from a profile text and score the skill profile",
	Run: func(cmd *cobra.Command, args []string) {
		score(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("file", "f", "", "read the text from a file, - for stdin")
	scoreCmd.Flags().StringSlice("llm-skill", nil, "externally extracted skill names to merge in")
	scoreCmd.Flags().String("evidence", "", `evaluation record as JSON, e.g. {"criteria": {"skills": 80}}`)
	scoreCmd.Flags().IntSlice("hot-year", nil, "hot skill years to use (overrides scoring.hot-years)")
}

type scoreOutput struct {
	Skills skills.SkillSet   `json:"skills"`
	Score  skills.SkillScore `json:"score"`
}

func score(cmd *cobra.Command, args []string) {
	logger, config := setup(cmd)
	extractor, tax := newExtractor(logger)

	file, _ := cmd.Flags().GetString("file")
	text, err := readText(args, file)
	if err != nil {
		logger.Fatal("reading input", zap.Error(err))
	}

	var evidence any
	if raw, _ := cmd.Flags().GetString("evidence"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &evidence); err != nil {
			logger.Fatal("parsing evidence", zap.Error(err))
		}
	}

	years := config.Scoring.HotYears
	if cmd.Flags().Changed("hot-year") {
		years, _ = cmd.Flags().GetIntSlice("hot-year")
	}

	external, _ := cmd.Flags().GetStringSlice("llm-skill")
	found := extractor.ExtractSkillsWithOther(text, external)

	scorer := skills.NewScorer(tax.HotSkills(), years, logger)
	result := scoreOutput{Skills: found, Score: scorer.Calculate(found, evidence)}

	if err := printJSON(result); err != nil {
		logger.Fatal("printing result", zap.Error(err))
	}
}
