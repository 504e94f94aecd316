package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

func deactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate [room-id]",
		Short: "Stop a room you own from taking bookings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOwnerOp(cmd, args[0], "deactivated", appCtx.client.MarkInactive)
		},
	}
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [room-id]",
		Short: "Clear the whole rental schedule of a room you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOwnerOp(cmd, args[0], "reset", appCtx.client.ResetBookings)
		},
	}
}

// runOwnerOp submits one of the owner-restricted transactions. Any failure
// gets the same fixed explanation, naming the room.
func runOwnerOp(cmd *cobra.Command, rawID, verb string,
	op func(context.Context, *bind.TransactOpts, uint64) (common.Hash, error)) error {
	roomID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		return err
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

	hash, err := op(ctx, opts, roomID)
	if err != nil {
		return fmt.Errorf("could not update room %d — only the room owner can do this", roomID)
	}
	cmd.Printf("room %d %s\n", roomID, verb)
	cmd.Println("tx " + appCtx.explorer.TxURL(hash))
	return nil
}
