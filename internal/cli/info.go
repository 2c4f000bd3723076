package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func NewInfoCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "info <meeting-id>",
		Short: "Show meeting details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := NewFormatter(os.Stdout)

			info, err := deps.Client.GetMeeting(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			formatter.Success(fmt.Sprintf("Meeting %s", args[0]))
			formatter.Field("cached", fmt.Sprintf("%t", info.Cached))
			for k, v := range info.Meeting {
				formatter.Field(k, fmt.Sprintf("%v", v))
			}

			if cfg, ok := deps.Sessions.Config(args[0]); ok {
				formatter.Info("Local meeting config")
				formatter.Field("host", cfg.HostEmail)
				formatter.Field("max participants", fmt.Sprintf("%d", cfg.MaxParticipants))
				formatter.Field("recording", fmt.Sprintf("%t", cfg.RecordingEnabled))
			}
			return nil
		},
	}
}
