package admin

import (
	"github.com/convenehq/convene/cmd"
	"github.com/convenehq/convene/pkg/backend"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func tokenCommand() *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:                "token",
		Short:              "Inspect participant tokens",
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
	}

	resolveCmd := &cobra.Command{
		Use:   "resolve TOKEN",
		Short: "Show the meeting and contact behind a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			p, err := be.ResolveToken(ctx, args[0])
			if err != nil {
				return err
			}

			cmd.Printf("Meeting: %d (%s)\n", p.Meeting.ID, p.Meeting.Title)
			cmd.Printf("Status: %s\n", p.Meeting.Status)
			cmd.Printf("Contact: %s <%s>\n", p.Contact.Name, p.Contact.Email)
			cmd.Printf("Invited: %s\n", humanize.Time(p.Binding.InvitedAt))
			if p.Binding.Responded {
				cmd.Printf("Responded: %s\n", humanize.Time(p.Binding.RespondedAt))
			} else {
				cmd.Printf("Responded: no\n")
			}

			return nil
		},
	}

	tokenCmd.AddCommand(resolveCmd)

	return tokenCmd
}
