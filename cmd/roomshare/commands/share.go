package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/BecomeWeasel/dapp-project/pkg/domain"
)

func shareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share [name] [location] [price-finney]",
		Short: "Register a room you own for rent",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, location := args[0], args[1]
			price, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil || price == 0 {
				return fmt.Errorf("price must be a positive number of finney, got %q", args[2])
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), rpcTimeout)
			defer cancel()

			sess, err := appCtx.login(ctx, cmd)
			if err != nil {
				return err
			}
			opts, err := appCtx.wallet.TransactOpts(ctx, sess.Address)
			if err != nil {
				return err
			}

			hash, err := appCtx.client.ShareRoom(ctx, opts, name, location, price)
			if err != nil {
				return err
			}
			cmd.Printf("room shared: %q in %s at %d finney/day (%s/day)\n",
				name, location, price, domain.FormatKRW(domain.ToKRW(price)))
			cmd.Println("tx " + appCtx.explorer.TxURL(hash))
			return nil
		},
	}
}
