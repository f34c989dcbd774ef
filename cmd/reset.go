package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all scheduling records",
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			return fmt.Errorf("reset wipes every scheduling record; rerun with --confirm")
		}
		withSessions, _ := cmd.Flags().GetBool("sessions")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		if err := s.Records.DeleteAll(ctx); err != nil {
			return err
		}
		fmt.Println("Scheduling records wiped.")

		if withSessions {
			if err := s.Sessions.DeleteAll(ctx); err != nil {
				return err
			}
			fmt.Println("Session history wiped.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("confirm", false, "Actually perform the reset")
	resetCmd.Flags().Bool("sessions", false, "Also wipe session history")
}
