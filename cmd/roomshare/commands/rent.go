package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/BecomeWeasel/dapp-project/pkg/domain"
	"github.com/BecomeWeasel/dapp-project/pkg/roomshare"
)

func rentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rent [room-id] [check-in] [check-out]",
		Short: "Book a stay and pay for it",
		Long: `Book a stay in a room between two dates and attach the payment.

Dates accept YYYY-MM-DD, YYYYMMDD or YYYY-MMDD. The total price is the
room's daily rate times the number of nights, paid in finney.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return err
			}
			checkIn, err := domain.ParseDate(args[1])
			if err != nil {
				return fmt.Errorf("check-in: %w", err)
			}
			checkOut, err := domain.ParseDate(args[2])
			if err != nil {
				return fmt.Errorf("check-out: %w", err)
			}
			if checkOut.Year() != checkIn.Year() {
				return fmt.Errorf("stay must fall within one year")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), rpcTimeout)
			defer cancel()

			room, err := appCtx.client.RoomByID(ctx, appCtx.from(), roomID)
			if err != nil {
				return err
			}
			if !room.IsActive {
				return fmt.Errorf("room %d is not accepting bookings", roomID)
			}

			in, out := domain.DayOfYear(checkIn), domain.DayOfYear(checkOut)
			total, err := domain.TotalPrice(in, out, room.Price)
			if err != nil {
				return err
			}

			sess, err := appCtx.login(ctx, cmd)
			if err != nil {
				return err
			}
			opts, err := appCtx.wallet.TransactOpts(ctx, sess.Address)
			if err != nil {
				return err
			}

			hash, err := appCtx.client.RentRoom(ctx, opts, roomID, checkIn.Year(), in, out, total)
			if err != nil {
				if roomshare.IsReverted(err) {
					return suggestDates(ctx, cmd, sess, roomID, checkIn.Year(), in, out)
				}
				return err
			}

			cmd.Printf("booked room %d, %s to %s: %d finney (%s)\n",
				roomID, domain.FormatDate(checkIn), domain.FormatDate(checkOut),
				total, domain.FormatKRW(domain.ToKRW(total)))
			cmd.Println("tx " + appCtx.explorer.TxURL(hash))
			return nil
		},
	}
}

// suggestDates runs the single recommendation follow-up after a rejected
// booking, showing the conflicting window for the same requested stay.
func suggestDates(ctx context.Context, cmd *cobra.Command, sess *domain.Session, roomID uint64, year, checkIn, checkOut int) error {
	nextFit, recErr := appCtx.client.RecommendDate(ctx, sess.Address, roomID, checkIn, checkOut)
	if recErr != nil {
		return fmt.Errorf("dates unavailable for room %d, and no alternative could be fetched", roomID)
	}
	from := domain.FormatDate(domain.DateFromDay(year, nextFit[0]))
	to := domain.FormatDate(domain.DateFromDay(year, nextFit[1]))
	return fmt.Errorf("dates taken: room %d is booked %s to %s, pick dates outside that window", roomID, from, to)
}
