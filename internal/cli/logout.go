package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func NewLogoutCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deps.Sessions.Logout(); err != nil {
				return err
			}
			NewFormatter(os.Stdout).Success("Signed out")
			return nil
		},
	}
}
