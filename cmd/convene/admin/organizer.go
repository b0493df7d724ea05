package admin

import (
	"strconv"

	"github.com/caarlos0/tablewriter"
	"github.com/convenehq/convene/cmd"
	"github.com/convenehq/convene/pkg/backend"
	"github.com/convenehq/convene/pkg/proto"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func organizerCommand() *cobra.Command {
	organizerCmd := &cobra.Command{
		Use:                "organizer",
		Aliases:            []string{"organizers"},
		Short:              "Manage organizer accounts",
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
	}

	var name string
	var password string
	var phrase string
	createCmd := &cobra.Command{
		Use:   "create EMAIL",
		Short: "Create a new organizer account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			email := args[0]

			if password == "" {
				password = uuid.NewString()
			}
			if phrase == "" {
				phrase = uuid.NewString()
			}

			organizer, err := be.Register(ctx, email, password, name, phrase)
			if err != nil {
				return err
			}

			cmd.PrintErrln("Organizer created")
			cmd.Printf("Email: %s\n", organizer.Email)
			cmd.Printf("Recovery phrase: %s\n", phrase)

			return nil
		},
	}

	createCmd.Flags().StringVarP(&name, "name", "n", "", "display name for the account")
	createCmd.Flags().StringVarP(&password, "password", "p", "", "password, generated when empty")
	createCmd.Flags().StringVarP(&phrase, "recovery-phrase", "r", "", "recovery phrase, generated when empty")

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List organizer accounts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			organizers, err := be.Organizers(ctx)
			if err != nil {
				return err
			}

			if len(organizers) == 0 {
				cmd.Println("No organizers found")
				return nil
			}

			return tablewriter.Render(
				cmd.OutOrStdout(),
				organizers,
				[]string{"ID", "Email", "Name", "Created At"},
				func(o proto.Organizer) ([]string, error) {
					return []string{
						strconv.FormatInt(o.ID, 10),
						o.Email,
						o.Name,
						humanize.Time(o.CreatedAt),
					}, nil
				},
			)
		},
	}

	infoCmd := &cobra.Command{
		Use:   "info EMAIL",
		Short: "Show information about an organizer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			organizer, err := be.Organizer(ctx, args[0])
			if err != nil {
				return err
			}

			cmd.Printf("Email: %s\n", organizer.Email)
			cmd.Printf("Name: %s\n", organizer.Name)
			cmd.Printf("Created: %s\n", humanize.Time(organizer.CreatedAt))

			return nil
		},
	}

	setNameCmd := &cobra.Command{
		Use:   "set-name EMAIL NAME",
		Short: "Change an organizer's display name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			organizer, err := be.Organizer(ctx, args[0])
			if err != nil {
				return err
			}

			return be.SetOrganizerName(ctx, organizer.ID, args[1])
		},
	}

	setPasswordCmd := &cobra.Command{
		Use:   "set-password EMAIL PASSWORD",
		Short: "Change an organizer's password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			organizer, err := be.Organizer(ctx, args[0])
			if err != nil {
				return err
			}

			return be.SetPassword(ctx, organizer.ID, args[1])
		},
	}

	organizerCmd.AddCommand(
		createCmd,
		infoCmd,
		listCmd,
		setNameCmd,
		setPasswordCmd,
	)

	return organizerCmd
}
