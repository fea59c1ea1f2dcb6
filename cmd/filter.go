package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skill-matcher/internal/dataset"
	"github.com/spigell/skill-matcher/internal/filtering"
	"github.com/spigell/skill-matcher/internal/relevance"
)

var filterCmd = &cobra.Command{
	Use:   "filter-context [subject text]",
	Short: "Drop retrieved documents that are weak or from another career field than the subject",
	Run: func(cmd *cobra.Command, args []string) {
		filterContext(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().String("documents", "", "retrieved documents file (JSON or YAML)")
	filterCmd.Flags().String("field", "", "subject career field; detected from the subject text when empty")
	filterCmd.Flags().StringSlice("disable", nil, "filters to skip: min_similarity, career_field, top_k")
	filterCmd.Flags().Int("top-k", 0, "keep at most k documents (overrides relevance.top-k)")
	filterCmd.Flags().Bool("dump", false, "also write the kept documents to a temporary file")

	filterCmd.MarkFlagRequired("documents")
}

type filterOutput struct {
	Subject   relevance.Field      `json:"subject_field"`
	Documents []relevance.Document `json:"documents"`
	Reports   []filtering.Report   `json:"reports"`
	Filters   []filtering.Status   `json:"filters"`
}

func filterContext(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	logger, config := setup(cmd)

	path, _ := cmd.Flags().GetString("documents")
	docs, err := dataset.LoadDocuments(path)
	if err != nil {
		logger.Fatal("loading documents", zap.Error(err))
	}

	subject, err := subjectField(cmd, args)
	if err != nil {
		logger.Fatal("resolving subject field", zap.Error(err))
	}
	logger.Info("filtering context", zap.String("subject_field", string(subject)), zap.Int("documents", len(docs)))

	settings := config.Relevance.Settings
	filterCfg := &filtering.Config{
		MinSimilarity: settings.MinSimilarity,
		TopK:          config.Relevance.TopK,
	}
	if cmd.Flags().Changed("top-k") {
		filterCfg.TopK, _ = cmd.Flags().GetInt("top-k")
	}

	steps := filtering.Default()
	disabled, _ := cmd.Flags().GetStringSlice("disable")
	for _, name := range disabled {
		filtering.DisableByName(steps, name, "disabled by flag")
	}

	deps := filtering.Deps{
		Logger:  logger,
		Guard:   relevance.NewGuard(settings, logger),
		Subject: subject,
	}

	kept, reports, err := filtering.Run(ctx, filterCfg, deps, steps, docs)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		filename, err := dataset.DumpToTmpFile(kept)
		if err != nil {
			logger.Fatal("dump results to file", zap.Error(err))
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
	}

	out := filterOutput{Subject: subject, Documents: kept, Reports: reports, Filters: filtering.Describe(steps)}
	if err := printJSON(out); err != nil {
		logger.Fatal("printing result", zap.Error(err))
	}
}

func subjectField(cmd *cobra.Command, args []string) (relevance.Field, error) {
	if name, _ := cmd.Flags().GetString("field"); name != "" {
		field := relevance.Field(name)
		if _, ok := relevance.ProfileOf(field); !ok && field != relevance.Unknown {
			return "", fmt.Errorf("unknown career field %q", name)
		}
		return field, nil
	}

	text, err := readText(args, "")
	if err != nil {
		return "", err
	}
	return relevance.DetectCareerField(text).Field, nil
}
