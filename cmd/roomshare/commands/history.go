package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/BecomeWeasel/dapp-project/internal/cli"
)

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [room-id]",
		Short: "Show every rental ever recorded for a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), rpcTimeout)
			defer cancel()

			rents, err := appCtx.client.RoomHistory(ctx, appCtx.from(), roomID)
			if err != nil {
				return err
			}
			return cli.Output(cmd.OutOrStdout(), cli.RentColumns, appCtx.outputOpts(), rents)
		},
	}
}
