package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/appifylab/webinar-platform/internal/domain"
	"github.com/appifylab/webinar-platform/internal/session"
)

const (
	defaultRegion          = "ap-south-1"
	defaultMaxParticipants = 500
)

func NewCreateCmd(deps *Dependencies) *cobra.Command {
	var title string
	var region string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new webinar and print the invite link",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := NewFormatter(os.Stdout)

			sess, err := deps.Sessions.Current()
			if err != nil {
				return err
			}

			if title == "" {
				title = fmt.Sprintf("%s's Webinar", sess.Name)
			}

			resp, err := deps.Client.CreateMeeting(cmd.Context(), title, region)
			if err != nil {
				return fmt.Errorf("failed to create meeting: %w", err)
			}

			cfg := domain.MeetingConfig{
				ID:               resp.Meeting.ID,
				Title:            title,
				HostEmail:        sess.Email,
				MaxParticipants:  defaultMaxParticipants,
				RecordingEnabled: true,
				ChatEnabled:      true,
				CreatedAt:        time.Now().UTC(),
			}
			if err := deps.Sessions.RecordMeeting(cfg); err != nil {
				return err
			}

			inviteLink := session.BuildInviteLink(deps.Config.Origin, resp.Meeting.ID, sess.Email)

			_ = deps.Client.TrackEvent(cmd.Context(), "meeting_created", map[string]any{
				"meetingId":       resp.Meeting.ID,
				"hostEmail":       sess.Email,
				"maxParticipants": cfg.MaxParticipants,
			})

			formatter.Success("Webinar created")
			formatter.Field("meeting id", resp.Meeting.ID)
			formatter.Field("title", title)
			formatter.Field("host", sess.Email)
			formatter.Field("invite link", inviteLink)
			formatter.Info(fmt.Sprintf("Share this link with participants. Only %s will join as the host.", sess.Email))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Webinar title (default \"<your name>'s Webinar\")")
	cmd.Flags().StringVarP(&region, "region", "r", defaultRegion, "Preferred region for the meeting")

	return cmd
}
