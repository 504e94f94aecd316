package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/BecomeWeasel/dapp-project/internal/cli"
	"github.com/BecomeWeasel/dapp-project/pkg/domain"
)

func roomsCmd() *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "List every room registered on the contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), rpcTimeout)
			defer cancel()

			rooms, err := appCtx.client.AllRooms(ctx, appCtx.from())
			if err != nil {
				return err
			}
			if activeOnly {
				rooms = domain.ActiveRooms(rooms)
			}
			return cli.Output(cmd.OutOrStdout(), cli.RoomColumns, appCtx.outputOpts(), rooms)
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "only rooms accepting bookings")
	return cmd
}
