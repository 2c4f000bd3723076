package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func NewHealthCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the gateway's health",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := NewFormatter(os.Stdout)

			status, err := deps.Client.Health(cmd.Context())
			if err != nil {
				return err
			}

			formatter.Success(fmt.Sprintf("Gateway is %s", status.Status))
			formatter.Field("version", status.Version)
			formatter.Field("uptime", fmt.Sprintf("%.0fs", status.Uptime))
			formatter.Field("cached meetings", fmt.Sprintf("%d", status.CachedMeetings))
			return nil
		},
	}
}
