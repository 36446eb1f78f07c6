package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ai-interviewer/interviewer-cli/internal/interviewer"
	"github.com/ai-interviewer/interviewer-cli/internal/logger"
	"github.com/ai-interviewer/interviewer-cli/internal/views"
)

var interviewShowOnly bool

var interviewCmd = &cobra.Command{
	Use:   "interview <id>",
	Short: "Take an interview as a candidate",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
		return runInterview(cmd.Context(), s, args[0], interviewShowOnly)
	}),
}

func init() {
	rootCmd.AddCommand(interviewCmd)

	interviewCmd.Flags().BoolVar(&interviewShowOnly, "show", false, "only print the questions")
}

func runInterview(ctx context.Context, s *session, id string, showOnly bool) error {
	iv, err := s.client.GetInterview(ctx, id)
	if err != nil {
		return err
	}

	views.RenderInterview(s.out, iv)

	if showOnly {
		return nil
	}

	if s.prompt == nil {
		return errors.New("answering needs a terminal, use the submit command with an answers file instead")
	}

	req, err := askSubmission(s.prompt, iv)
	if err != nil {
		return err
	}

	ok, err := s.prompt.Confirm(fmt.Sprintf("Submit %d answers", len(req.Answers)))
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Info("exiting", zap.String("reason", "submission not confirmed"))
		return nil
	}

	return submit(ctx, s, iv.ID, req)
}

func askSubmission(p prompter, iv *interviewer.Interview) (*interviewer.SubmitAnswersRequest, error) {
	name, err := p.Ask("Your name", required("name"))
	if err != nil {
		return nil, err
	}

	email, err := p.Ask("Your email", validEmail)
	if err != nil {
		return nil, err
	}

	req := &interviewer.SubmitAnswersRequest{
		CandidateName:  name,
		CandidateEmail: email,
		Answers:        make([]interviewer.Answer, 0, len(iv.Questions)),
	}

	for i, q := range iv.Questions {
		text, err := p.Ask(fmt.Sprintf("Answer %d/%d", i+1, len(iv.Questions)), required("answer"))
		if err != nil {
			return nil, err
		}
		req.Answers = append(req.Answers, interviewer.Answer{QuestionID: q.ID, Answer: text})
	}

	return req, nil
}

func submit(ctx context.Context, s *session, id string, req *interviewer.SubmitAnswersRequest) error {
	resp, err := s.client.SubmitAnswers(ctx, id, req)
	if err != nil {
		return err
	}

	s.logger.Info("answers submitted", zap.String(logger.FieldInterviewID, id), zap.Int("answers", len(req.Answers)))

	message := resp.Message
	if message == "" {
		message = "Your answers have been submitted."
	}
	fmt.Fprintln(s.out, message)
	return nil
}
