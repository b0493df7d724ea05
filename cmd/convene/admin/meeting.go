package admin

import (
	"strconv"
	"time"

	"github.com/caarlos0/duration"
	"github.com/caarlos0/tablewriter"
	"github.com/convenehq/convene/cmd"
	"github.com/convenehq/convene/pkg/backend"
	"github.com/convenehq/convene/pkg/proto"
	"github.com/dustin/go-humanize"
	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
)

func meetingCommand() *cobra.Command {
	meetingCmd := &cobra.Command{
		Use:                "meeting",
		Aliases:            []string{"meetings"},
		Short:              "Inspect meetings",
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
	}

	var organizerEmail string
	var since string
	listCmd := &cobra.Command{
		Use:     "list [PATTERN]",
		Aliases: []string{"ls"},
		Short:   "List an organizer's meetings, optionally filtered by a title pattern",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			organizer, err := commandOrganizer(cmd, organizerEmail)
			if err != nil {
				return err
			}

			meetings, err := be.Meetings(ctx, organizer)
			if err != nil {
				return err
			}

			if len(args) > 0 {
				g, err := glob.Compile(args[0])
				if err != nil {
					return err
				}

				filtered := meetings[:0]
				for _, m := range meetings {
					if g.Match(m.Title) {
						filtered = append(filtered, m)
					}
				}
				meetings = filtered
			}

			if since != "" {
				d, err := duration.Parse(since)
				if err != nil {
					return err
				}

				cutoff := time.Now().Add(-d)
				filtered := meetings[:0]
				for _, m := range meetings {
					if m.CreatedAt.After(cutoff) {
						filtered = append(filtered, m)
					}
				}
				meetings = filtered
			}

			if len(meetings) == 0 {
				cmd.Println("No meetings found")
				return nil
			}

			return tablewriter.Render(
				cmd.OutOrStdout(),
				meetings,
				[]string{"ID", "Title", "Status", "Created At"},
				func(m proto.Meeting) ([]string, error) {
					return []string{
						strconv.FormatInt(m.ID, 10),
						m.Title,
						m.Status.String(),
						humanize.Time(m.CreatedAt),
					}, nil
				},
			)
		},
	}

	listCmd.Flags().StringVarP(&organizerEmail, "organizer", "o", "", "organizer email, defaults to $CONVENE_ORGANIZER")
	listCmd.Flags().StringVar(&since, "since", "", "only meetings created within a duration (e.g. 2w, 5d4h)")

	infoCmd := &cobra.Command{
		Use:   "info ID",
		Short: "Show a meeting with its slots and participants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			organizer, err := commandOrganizer(cmd, organizerEmail)
			if err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}

			invite, err := be.Meeting(ctx, organizer, id)
			if err != nil {
				return err
			}

			cmd.Printf("Title: %s\n", invite.Meeting.Title)
			cmd.Printf("Status: %s\n", invite.Meeting.Status)
			if invite.Meeting.FinalizedSlot != "" {
				cmd.Printf("Finalized: %s\n", invite.Meeting.FinalizedSlot)
			}
			cmd.Printf("Created: %s\n", humanize.Time(invite.Meeting.CreatedAt))
			cmd.Printf("Slots:\n")
			for _, s := range invite.Slots {
				cmd.Printf("  %d: %s (%s)\n", s.ID, s.StartsAt.Format(time.RFC1123), s.Duration)
			}
			cmd.Printf("Participants:\n")
			for _, p := range invite.Participants {
				responded := "pending"
				if p.Binding.Responded {
					responded = "responded " + humanize.Time(p.Binding.RespondedAt)
				}
				cmd.Printf("  %s <%s>: %s\n", p.Contact.Name, p.Contact.Email, responded)
			}

			return nil
		},
	}

	infoCmd.Flags().StringVarP(&organizerEmail, "organizer", "o", "", "organizer email, defaults to $CONVENE_ORGANIZER")

	meetingCmd.AddCommand(
		listCmd,
		infoCmd,
	)

	return meetingCmd
}

// commandOrganizer resolves the organizer a command acts for, preferring the
// --organizer flag over the one in context.
func commandOrganizer(cmd *cobra.Command, email string) (proto.Organizer, error) {
	ctx := cmd.Context()
	if email != "" {
		return backend.FromContext(ctx).Organizer(ctx, email)
	}

	if o := proto.OrganizerFromContext(ctx); o != nil {
		return *o, nil
	}

	return proto.Organizer{}, proto.ErrOrganizerNotFound
}
