package cmd

import (
	"attendance/models"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	lecturerName     string
	lecturerEmail    string
	lecturerPassword string
)

var lecturerCmd = &cobra.Command{
	Use:   "lecturer",
	Short: "Manage lecturer accounts",
}

var lecturerCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a lecturer account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := openDB(); err != nil {
			return err
		}
		lecturer, err := models.LecturerRegister(lecturerName, lecturerEmail, lecturerPassword)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created lecturer %d (%s)\n", lecturer.ID, lecturer.Email)
		return nil
	},
}

func init() {
	flags := lecturerCreateCmd.Flags()
	flags.StringVar(&lecturerName, "name", "", "full name")
	flags.StringVar(&lecturerEmail, "email", "", "login email")
	flags.StringVar(&lecturerPassword, "password", "", "login password")
	for _, f := range []string{"name", "email", "password"} {
		_ = lecturerCreateCmd.MarkFlagRequired(f)
	}
	lecturerCmd.AddCommand(lecturerCreateCmd)
	rootCmd.AddCommand(lecturerCmd)
}
