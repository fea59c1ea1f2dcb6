package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skill-matcher/internal/dataset"
	"github.com/spigell/skill-matcher/internal/skills"
)

var matchCmd = &cobra.Command{
	Use:   "match [requirement text]",
	Short: "Compare a candidate's skills with the skills required by a text",
	Run: func(cmd *cobra.Command, args []string) {
		match(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("file", "f", "", "read the requirement text from a file, - for stdin")
	matchCmd.Flags().StringSlice("skills", nil, "candidate skills as a flat list")
	matchCmd.Flags().String("skills-file", "", "candidate skills as a categorized JSON/YAML map")
	matchCmd.Flags().String("candidate-text", "", "extract candidate skills from this text")
}

func match(cmd *cobra.Command, args []string) {
	logger, _ := setup(cmd)
	extractor, _ := newExtractor(logger)

	candidate, err := candidateSkills(cmd, extractor)
	if err != nil {
		logger.Fatal("reading candidate skills", zap.Error(err))
	}

	file, _ := cmd.Flags().GetString("file")
	text, err := readText(args, file)
	if err != nil {
		logger.Fatal("reading requirement text", zap.Error(err))
	}

	result := skills.NewMatcher(extractor, logger).MatchSkills(candidate, text)
	logger.Info("skills matched",
		zap.Int("matched", result.MatchedCount),
		zap.Int("required", result.RequiredCount),
	)

	if err := printJSON(result); err != nil {
		logger.Fatal("printing result", zap.Error(err))
	}
}

func candidateSkills(cmd *cobra.Command, extractor *skills.Extractor) (skills.SkillSet, error) {
	flags := cmd.Flags()

	switch {
	case flags.Changed("skills-file"):
		path, _ := flags.GetString("skills-file")
		raw, err := dataset.LoadSkillSet(path)
		if err != nil {
			return nil, err
		}
		return skills.FromMap(raw), nil
	case flags.Changed("skills"):
		names, _ := flags.GetStringSlice("skills")
		return extractor.Categorize(names), nil
	case flags.Changed("candidate-text"):
		text, _ := flags.GetString("candidate-text")
		return extractor.ExtractSkills(text), nil
	default:
		return nil, errors.New("one of --skills, --skills-file or --candidate-text is required")
	}
}
