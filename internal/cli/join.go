package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/appifylab/webinar-platform/internal/client"
	"github.com/appifylab/webinar-platform/internal/domain"
	"github.com/appifylab/webinar-platform/internal/session"
)

func NewJoinCmd(deps *Dependencies) *cobra.Command {
	var invite string
	var monitor bool

	cmd := &cobra.Command{
		Use:   "join [meeting-id]",
		Short: "Join a webinar and print the SDK session token",
		Long:  "Join a webinar by meeting id or invite link. Hosts join with the presenter preset; everyone else joins as a viewer. The printed token bootstraps the RealtimeKit SDK.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := NewFormatter(os.Stdout)

			sess, err := deps.Sessions.Current()
			if err != nil {
				return err
			}

			var meetingID, hostEmail string
			if len(args) > 0 {
				meetingID = args[0]
			}
			if invite != "" {
				meetingID, hostEmail, err = session.ParseInviteLink(invite)
				if err != nil {
					return err
				}
			}
			if meetingID == "" {
				return fmt.Errorf("provide a meeting id or an invite link")
			}

			isHost := deps.Sessions.IsHost(sess.Email, meetingID, hostEmail)
			preset := domain.PresetViewer
			displayName := sess.Name
			if isHost {
				preset = domain.PresetPresenter
				displayName = fmt.Sprintf("%s (Host)", sess.Name)
			}

			resp, err := deps.Client.JoinMeeting(cmd.Context(), meetingID, client.JoinRequest{
				Name:                displayName,
				PresetName:          preset,
				CustomParticipantID: fmt.Sprintf("%s_%d", sess.Email, time.Now().UnixMilli()),
			})
			if err != nil {
				return fmt.Errorf("failed to join meeting: %w", err)
			}

			_ = deps.Client.TrackEvent(cmd.Context(), "meeting_joined", map[string]any{
				"meetingId": meetingID,
				"userEmail": sess.Email,
				"role":      sess.Role,
				"isHost":    isHost,
			})

			if isHost {
				formatter.Success(fmt.Sprintf("Joined %s as host/presenter", meetingID))
			} else {
				formatter.Success(fmt.Sprintf("Joined %s as viewer", meetingID))
			}
			formatter.Field("preset", preset)
			formatter.Field("token", resp.Token)

			if !monitor {
				return nil
			}

			// Sample connection quality until interrupted, the way the
			// in-meeting screen does while a session is active.
			formatter.Info("Monitoring connection quality (Ctrl+C to stop)")
			sampler := client.NewQualitySampler(deps.Client, 10*time.Second, func(q client.Quality) {
				formatter.Field("connection", string(q))
			})
			sampler.Start(cmd.Context())
			defer sampler.Stop()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit
			formatter.Info("Left meeting")
			return nil
		},
	}

	cmd.Flags().StringVar(&invite, "invite", "", "Invite link instead of a raw meeting id")
	cmd.Flags().BoolVar(&monitor, "monitor", false, "Keep running and report connection quality")

	return cmd
}
