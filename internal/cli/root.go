package cli

import (
	"github.com/spf13/cobra"

	"github.com/appifylab/webinar-platform/internal/client"
	"github.com/appifylab/webinar-platform/internal/session"
	"github.com/appifylab/webinar-platform/internal/version"
)

type Dependencies struct {
	Client   *client.Client
	Sessions *session.Store
	Config   *Config
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "webinarctl",
		Short: "Create and join webinars through the gateway",
		Long:  "A CLI front-end for the webinar platform gateway: sign in, create webinars, share invite links, and join as presenter or viewer.",
	}

	rootCmd.Version = version.Version

	rootCmd.AddCommand(NewLoginCmd(deps))
	rootCmd.AddCommand(NewLogoutCmd(deps))
	rootCmd.AddCommand(NewCreateCmd(deps))
	rootCmd.AddCommand(NewJoinCmd(deps))
	rootCmd.AddCommand(NewInfoCmd(deps))
	rootCmd.AddCommand(NewHealthCmd(deps))

	return rootCmd
}
