package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skill-matcher/internal/relevance"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Detect the career field of a text",
	Run: func(cmd *cobra.Command, args []string) {
		classify(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringP("file", "f", "", "read the text from a file, - for stdin")
}

func classify(cmd *cobra.Command, args []string) {
	logger, _ := setup(cmd)

	file, _ := cmd.Flags().GetString("file")
	text, err := readText(args, file)
	if err != nil {
		logger.Fatal("reading input", zap.Error(err))
	}

	if err := printJSON(relevance.DetectCareerField(text)); err != nil {
		logger.Fatal("printing result", zap.Error(err))
	}
}
