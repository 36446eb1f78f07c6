package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ai-interviewer/interviewer-cli/internal/interviewer"
	"github.com/ai-interviewer/interviewer-cli/internal/logger"
	"github.com/ai-interviewer/interviewer-cli/internal/views"
)

type createOptions struct {
	title        string
	requirements string
	skills       string
	interactive  bool
}

var createOpts createOptions

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an interview from a job description",
	Args:  cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, s *session, _ []string) error {
		return runCreate(cmd.Context(), s, createOpts)
	}),
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVarP(&createOpts.title, "title", "t", "", "job title")
	createCmd.Flags().StringVarP(&createOpts.requirements, "requirements", "r", "", "job requirements")
	createCmd.Flags().StringVarP(&createOpts.skills, "skills", "s", "", "comma separated key skills")
	createCmd.Flags().BoolVarP(&createOpts.interactive, "interactive", "i", false, "ask for every field, including the ones given as flags")
}

func runCreate(ctx context.Context, s *session, opts createOptions) error {
	if s.prompt != nil {
		if err := askCreateFields(s.prompt, &opts); err != nil {
			return err
		}
	} else if opts.interactive {
		return errors.New("interactive mode needs a terminal")
	}

	req := &interviewer.CreateInterviewRequest{
		JobTitle:        opts.title,
		JobRequirements: opts.requirements,
		KeySkills:       interviewer.SplitSkills(opts.skills),
	}

	resp, err := s.client.CreateInterview(ctx, req)
	if err != nil {
		return err
	}

	s.logger.Info("interview created",
		zap.String(logger.FieldInterviewID, resp.ID),
		zap.Int("questions", len(resp.Questions)),
	)

	views.RenderCreated(s.out, resp, s.client.ShareLinks(resp))
	return nil
}

// askCreateFields prompts for missing required fields, or for every field in
// interactive mode.
func askCreateFields(p prompter, opts *createOptions) error {
	var err error

	if opts.interactive || strings.TrimSpace(opts.title) == "" {
		if opts.title, err = p.Ask("Job title", required("job title")); err != nil {
			return err
		}
	}

	if opts.interactive || strings.TrimSpace(opts.requirements) == "" {
		if opts.requirements, err = p.Ask("Job requirements", required("job requirements")); err != nil {
			return err
		}
	}

	if opts.interactive {
		if opts.skills, err = p.Ask("Key skills (comma separated, optional)", nil); err != nil {
			return err
		}
	}

	return nil
}
