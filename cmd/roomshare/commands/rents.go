package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/BecomeWeasel/dapp-project/internal/cli"
)

func rentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rents",
		Short: "List the stays booked by your account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), rpcTimeout)
			defer cancel()

			// getMyRents filters by msg.sender, so the account must exist.
			from, err := appCtx.wallet.AccountAt(account)
			if err != nil {
				return err
			}
			rents, err := appCtx.client.MyRents(ctx, from)
			if err != nil {
				return err
			}
			return cli.Output(cmd.OutOrStdout(), cli.RentColumns, appCtx.outputOpts(), rents)
		},
	}
}
