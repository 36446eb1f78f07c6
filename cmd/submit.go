package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ai-interviewer/interviewer-cli/internal/interviewer"
)

type submitOptions struct {
	name        string
	email       string
	answersFile string
}

var submitOpts submitOptions

var submitCmd = &cobra.Command{
	Use:   "submit <id>",
	Short: "Submit answers to an interview from a YAML or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
		return runSubmit(cmd.Context(), s, args[0], submitOpts)
	}),
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringVar(&submitOpts.name, "name", "", "candidate name")
	submitCmd.Flags().StringVar(&submitOpts.email, "email", "", "candidate email")
	submitCmd.Flags().StringVarP(&submitOpts.answersFile, "answers-file", "f", "", "file mapping question ids to answers")

	submitCmd.MarkFlagRequired("answers-file")
}

func runSubmit(ctx context.Context, s *session, id string, opts submitOptions) error {
	answers, err := interviewer.ReadAnswersFile(opts.answersFile)
	if err != nil {
		return err
	}

	return submit(ctx, s, id, &interviewer.SubmitAnswersRequest{
		CandidateName:  opts.name,
		CandidateEmail: opts.email,
		Answers:        answers,
	})
}
