package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/appifylab/webinar-platform/internal/session"
)

func NewLoginCmd(deps *Dependencies) *cobra.Command {
	var email string
	var name string
	var invite string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with your email and name",
		Long:  "Sign in with a self-asserted email and name. When an invite link is supplied, the email decides whether you are the meeting's host.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := NewFormatter(os.Stdout)

			var meetingID, hostEmail string
			if invite != "" {
				var err error
				meetingID, hostEmail, err = session.ParseInviteLink(invite)
				if err != nil {
					return err
				}
			}

			sess, err := deps.Sessions.Login(email, name, meetingID, hostEmail)
			if err != nil {
				return err
			}

			_ = deps.Client.TrackEvent(cmd.Context(), "user_login", map[string]any{
				"email":     sess.Email,
				"role":      sess.Role,
				"meetingId": orNone(meetingID),
			})

			formatter.Success(fmt.Sprintf("Signed in as %s <%s>", sess.Name, sess.Email))
			formatter.Field("role", string(sess.Role))
			formatter.Field("permissions", strings.Join(sess.Permissions, ", "))
			if meetingID != "" {
				formatter.Info(fmt.Sprintf("Invite accepted for meeting %s", meetingID))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Your email address")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Your display name")
	cmd.Flags().StringVar(&invite, "invite", "", "Invite link to a meeting you were asked to join")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
