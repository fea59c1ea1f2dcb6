package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skill-matcher/internal/logger"
	"github.com/spigell/skill-matcher/internal/ranking"
	"github.com/spigell/skill-matcher/internal/relevance"
	"github.com/spigell/skill-matcher/internal/skills"
	"github.com/spigell/skill-matcher/internal/taxonomy"
)

const (
	app = "skill-matcher"
)

type Config struct {
	Scoring   *ScoringConfig   `mapstructure:"scoring"`
	Ranking   ranking.Options  `mapstructure:"ranking"`
	Relevance *RelevanceConfig `mapstructure:"relevance"`
	AI        *AIConfig        `mapstructure:"ai"`
}

type ScoringConfig struct {
	// HotYears limits market relevance to these years. Empty means every known year.
	HotYears []int `mapstructure:"hot-years"`
}

type RelevanceConfig struct {
	relevance.Settings `mapstructure:",squash"`
	TopK               int `mapstructure:"top-k"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "skill-matcher extracts, scores and matches skills and ranks candidates against jobs and queries",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	viper.SetDefault("relevance.enabled", true)
	viper.SetDefault("relevance.min-similarity", relevance.DefaultMinSimilarity)
	viper.SetDefault("relevance.mismatch-confidence", relevance.DefaultMismatchConfidence)
	viper.SetDefault("ai.provider", "gemini")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is skill-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless it was requested explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}
	if config == nil {
		config = &Config{}
	}
	if config.Scoring == nil {
		config.Scoring = &ScoringConfig{}
	}
	if config.Relevance == nil {
		config.Relevance = &RelevanceConfig{Settings: relevance.DefaultSettings()}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}

	return config, nil
}

// setup builds the logger tagged with a run id and reads the config. Failures are fatal.
func setup(cmd *cobra.Command) (*zap.Logger, *Config) {
	base, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	l := logger.WithRun(base, cmd.Name())

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	l.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return l, config
}

func newExtractor(l *zap.Logger) (*skills.Extractor, *taxonomy.Taxonomy) {
	tax, err := taxonomy.Load()
	if err != nil {
		l.Fatal("loading skill taxonomy", zap.Error(err))
	}
	return skills.NewExtractor(tax, l), tax
}

// readText returns the content of file ("-" for stdin) or the joined arguments.
func readText(args []string, file string) (string, error) {
	switch file {
	case "":
		return strings.Join(args, " "), nil
	case "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %q: %w", file, err)
		}
		return string(data), nil
	}
}

func printJSON(v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(pretty))
	return err
}

// rankingOptions applies the pagination flags of cmd over the configured defaults.
func rankingOptions(cmd *cobra.Command, config *Config) ranking.Options {
	opts := config.Ranking
	flags := cmd.Flags()
	if flags.Changed("min-score") {
		opts.MinScore, _ = flags.GetInt("min-score")
	}
	if flags.Changed("offset") {
		opts.Offset, _ = flags.GetInt("offset")
	}
	if flags.Changed("limit") {
		opts.Limit, _ = flags.GetInt("limit")
	}
	return opts
}

func addRankingFlags(cmd *cobra.Command) {
	cmd.Flags().Int("min-score", 0, "drop results scoring below this value (overrides ranking.min-score)")
	cmd.Flags().Int("offset", 0, "skip this many results (overrides ranking.offset)")
	cmd.Flags().Int("limit", 0, "return at most this many results, 0 for all (overrides ranking.limit)")
}
