package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ai-interviewer/interviewer-cli/internal/filtering"
	"github.com/ai-interviewer/interviewer-cli/internal/logger"
	"github.com/ai-interviewer/interviewer-cli/internal/secrets"
	"github.com/ai-interviewer/interviewer-cli/internal/views"
)

type resultsOptions struct {
	code            string
	codeFile        string
	details         bool
	dump            bool
	recommendations []string
	minScore        float64
}

// codeEnv holds the access code when neither --code nor a code file is given.
const codeEnv = envPrefix + "_CODE"

var resultsOpts resultsOptions

var resultsCmd = &cobra.Command{
	Use:   "results <id>",
	Short: "Show scored submissions of an interview",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
		opts := resultsOpts
		if opts.codeFile == "" {
			opts.codeFile = s.config.CodeFile
		}
		return runResults(cmd.Context(), s, args[0], opts)
	}),
}

func init() {
	rootCmd.AddCommand(resultsCmd)

	resultsCmd.Flags().StringVarP(&resultsOpts.code, "code", "c", "", "HR access code")
	resultsCmd.Flags().StringVar(&resultsOpts.codeFile, "code-file", "", "file holding the HR access code")
	resultsCmd.Flags().BoolVar(&resultsOpts.details, "details", false, "show every answer with its score")
	resultsCmd.Flags().BoolVar(&resultsOpts.dump, "dump", false, "dump results to a temporary JSON file")
	resultsCmd.Flags().StringSliceVar(&resultsOpts.recommendations, "recommendation", nil, "keep only these recommendations (recommend, maybe, not_recommended, pending)")
	resultsCmd.Flags().Float64Var(&resultsOpts.minScore, "min-score", 0, "keep only submissions scoring at least this much")

	viper.BindPFlag("code-file", resultsCmd.Flags().Lookup("code-file"))
}

func runResults(ctx context.Context, s *session, id string, opts resultsOptions) error {
	code, err := secrets.Load(secrets.Source{
		Name:  "access code",
		Value: opts.code,
		File:  opts.codeFile,
		Env:   codeEnv,
	})
	if err != nil {
		return err
	}

	recommendation, err := filtering.NewRecommendation(opts.recommendations)
	if err != nil {
		return err
	}

	results, err := s.client.GetResults(ctx, id, code)
	if err != nil {
		return err
	}

	s.logger.Info("getting results", zap.String(logger.FieldInterviewID, id), zap.Int("count", results.Len()))

	filters := filtering.New([]filtering.Filter{
		recommendation,
		filtering.NewMinScore(opts.minScore),
	}, s.logger)

	results, err = filters.Run(ctx, results)
	if err != nil {
		return err
	}

	if opts.dump {
		filename, err := results.DumpToTmpFile()
		if err != nil {
			return err
		}
		s.logger.Info("dumping result to file", zap.String("filename", filename))
	}

	views.RenderResults(s.out, results, opts.details)
	return nil
}
