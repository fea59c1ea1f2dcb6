package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skill-matcher/internal/dataset"
	"github.com/spigell/skill-matcher/internal/ranking"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score and order a candidate pool against job requirements",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("candidates", "c", "", "candidate pool file (JSON or YAML)")
	rankCmd.Flags().String("job", "", "job requirements file (JSON or YAML)")
	rankCmd.Flags().Bool("dump", false, "also write the result to a temporary file")
	addRankingFlags(rankCmd)

	rankCmd.MarkFlagRequired("candidates")
	rankCmd.MarkFlagRequired("job")
}

func rank(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup(cmd)
	extractor, _ := newExtractor(logger)

	candidatesFile, _ := cmd.Flags().GetString("candidates")
	candidates, err := dataset.LoadCandidates(candidatesFile)
	if err != nil {
		logger.Fatal("loading candidates", zap.Error(err))
	}

	jobFile, _ := cmd.Flags().GetString("job")
	job, err := dataset.LoadJob(jobFile)
	if err != nil {
		logger.Fatal("loading job requirements", zap.Error(err))
	}

	logger.Info("ranking candidates", zap.Int("count", len(candidates)), zap.String("job", job.Title))

	page, err := ranking.NewRanker(extractor, logger).Rank(ctx, *job, candidates, rankingOptions(cmd, config))
	if err != nil {
		logger.Fatal("ranking candidates", zap.Error(err))
	}

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		filename, err := dataset.DumpToTmpFile(page)
		if err != nil {
			logger.Fatal("dump results to file", zap.Error(err))
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
	}

	if err := printJSON(page); err != nil {
		logger.Fatal("printing result", zap.Error(err))
	}
}
