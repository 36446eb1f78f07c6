package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ai-interviewer/interviewer-cli/internal/state"
)

var languageCmd = &cobra.Command{
	Use:   "language [code]",
	Short: "Show or change the interface language",
	Long:  "Show or change the interface language. Supported codes: " + languageCodes(),
	Args:  cobra.MaximumNArgs(1),
	RunE: withSession(func(_ *cobra.Command, s *session, args []string) error {
		if len(args) == 1 {
			if err := s.state.SetLanguage(args[0]); err != nil {
				return err
			}
		}

		fmt.Fprintln(s.out, s.state.Language())
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(languageCmd)
}

func languageCodes() string {
	codes := make([]string, 0, len(state.Languages))
	for _, l := range state.Languages {
		codes = append(codes, l.Code)
	}
	return strings.Join(codes, ", ")
}
