package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skill-matcher/internal/dataset"
	"github.com/spigell/skill-matcher/internal/ranking"
	"github.com/spigell/skill-matcher/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search a candidate pool with a free-text query",
	Run: func(cmd *cobra.Command, args []string) {
		runSearch(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("candidates", "c", "", "candidate pool file (JSON or YAML)")
	searchCmd.Flags().BoolP("interactive", "i", false, "keep asking for queries until an empty one")
	searchCmd.Flags().Bool("ai", false, "augment sparse queries with the configured language model (overrides ai.enabled)")
	addRankingFlags(searchCmd)

	searchCmd.MarkFlagRequired("candidates")
}

func runSearch(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	logger, config := setup(cmd)
	extractor, _ := newExtractor(logger)

	candidatesFile, _ := cmd.Flags().GetString("candidates")
	candidates, err := dataset.LoadCandidates(candidatesFile)
	if err != nil {
		logger.Fatal("loading candidates", zap.Error(err))
	}

	useAI := config.AI.Enabled
	if cmd.Flags().Changed("ai") {
		useAI, _ = cmd.Flags().GetBool("ai")
	}

	opts := []search.Option{search.WithLogger(logger)}
	if useAI {
		analyzer, err := newQueryAnalyzer(ctx, config.AI, logger)
		if err != nil {
			logger.Warn("skipping query augmentation", zap.Error(err))
		} else {
			opts = append(opts, search.WithAnalyzer(analyzer))
		}
	}
	searcher := search.NewSearcher(extractor, opts...)
	pageOpts := rankingOptions(cmd, config)

	if interactive, _ := cmd.Flags().GetBool("interactive"); !interactive {
		if err := searchOnce(ctx, searcher, strings.Join(args, " "), candidates, pageOpts); err != nil {
			logger.Fatal("searching candidates", zap.Error(err))
		}
		return
	}

	queryPrompt := promptui.Prompt{Label: "Query (empty to exit)"}
	for {
		query, err := queryPrompt.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return
		}
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if strings.TrimSpace(query) == "" {
			logger.Info("exiting", zap.String("reason", "empty query"))
			return
		}

		if err := searchOnce(ctx, searcher, query, candidates, pageOpts); err != nil {
			logger.Fatal("searching candidates", zap.Error(err))
		}
	}
}

func searchOnce(ctx context.Context, searcher *search.Searcher, query string, candidates []ranking.Candidate, opts ranking.Options) error {
	response, err := searcher.Search(ctx, query, candidates, opts)
	if err != nil {
		return err
	}
	return printJSON(response)
}
