package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractCmd = &cobra.Command{
	Use:   "extract [text]",
	Short: "Extract categorized skills from free text",
	Run: func(cmd *cobra.Command, args []string) {
		extract(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("file", "f", "", "read the text from a file, - for stdin")
	extractCmd.Flags().StringSlice("llm-skill", nil, "externally extracted skill names to merge in (unknown ones go to other)")
	extractCmd.Flags().Bool("flat", false, "print a sorted flat list instead of categories")
}

func extract(cmd *cobra.Command, args []string) {
	logger, _ := setup(cmd)
	extractor, _ := newExtractor(logger)

	file, _ := cmd.Flags().GetString("file")
	text, err := readText(args, file)
	if err != nil {
		logger.Fatal("reading input", zap.Error(err))
	}

	var result any
	external, _ := cmd.Flags().GetStringSlice("llm-skill")
	flat, _ := cmd.Flags().GetBool("flat")

	switch {
	case flat:
		result = extractor.ExtractSkillsFlat(text)
	case cmd.Flags().Changed("llm-skill"):
		result = extractor.ExtractSkillsWithOther(text, external)
	default:
		result = extractor.ExtractSkills(text)
	}

	if err := printJSON(result); err != nil {
		logger.Fatal("printing result", zap.Error(err))
	}
}
