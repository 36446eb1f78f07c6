package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Print the device id sent with interview and payment requests",
	Args:  cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, s *session, _ []string) error {
		id, err := s.client.DeviceID(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(s.out, id)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(deviceCmd)
}
