package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ai-interviewer/interviewer-cli/internal/views"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Show the interview token balance of this device",
	Args:  cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, s *session, _ []string) error {
		balance, err := s.client.GetTokenBalance(cmd.Context())
		if err != nil {
			return err
		}

		views.RenderBalance(s.out, balance)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
