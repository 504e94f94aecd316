package roomshare

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/BecomeWeasel/dapp-project/pkg/domain"
)

// DefaultGasLimit is the fixed computational-budget ceiling attached to
// every mutating call.
const DefaultGasLimit = 3_000_000

// roomFetchWorkers bounds the concurrent getRoomByRoomId fan-out.
const roomFetchWorkers = 4

// backend abstracts the bound contract and receipt wait so orchestration
// can be exercised without a chain.
type backend interface {
	Call(ctx context.Context, from common.Address, result *[]interface{}, method string, args ...interface{}) error
	Transact(opts *bind.TransactOpts, method string, args ...interface{}) (*types.Transaction, error)
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

type boundBackend struct {
	contract *bind.BoundContract
	node     bind.DeployBackend
}

func (b *boundBackend) Call(ctx context.Context, from common.Address, result *[]interface{}, method string, args ...interface{}) error {
	return b.contract.Call(&bind.CallOpts{Context: ctx, From: from}, result, method, args...)
}

func (b *boundBackend) Transact(opts *bind.TransactOpts, method string, args ...interface{}) (*types.Transaction, error) {
	return b.contract.Transact(opts, method, args...)
}

func (b *boundBackend) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	return bind.WaitMined(ctx, b.node, tx)
}

// Client invokes the RoomShare contract's remote operations.
type Client struct {
	backend  backend
	gasLimit uint64
}

// New binds the contract at addr on the given node.
func New(node *ethclient.Client, addr common.Address, contractABI abi.ABI, gasLimit uint64) *Client {
	if gasLimit == 0 {
		gasLimit = DefaultGasLimit
	}
	return &Client{
		backend: &boundBackend{
			contract: bind.NewBoundContract(addr, contractABI, node, node, node),
			node:     node,
		},
		gasLimit: gasLimit,
	}
}

// rawRoom mirrors the contract's Room tuple.
type rawRoom struct {
	Id       *big.Int
	Name     string
	Location string
	IsActive bool
	Price    *big.Int
	Owner    common.Address
}

func (r rawRoom) toDomain() domain.Room {
	return domain.Room{
		ID:       r.Id.Uint64(),
		Name:     r.Name,
		Location: r.Location,
		IsActive: r.IsActive,
		Price:    r.Price.Uint64(),
		Owner:    r.Owner,
	}
}

// rawRent mirrors the contract's Rent tuple.
type rawRent struct {
	Id           *big.Int
	RId          *big.Int
	YearOfRent   *big.Int
	CheckInDate  *big.Int
	CheckOutDate *big.Int
	Renter       common.Address
}

func (r rawRent) toDomain() domain.Rent {
	return domain.Rent{
		ID:       r.Id.Uint64(),
		RoomID:   r.RId.Uint64(),
		Year:     int(r.YearOfRent.Int64()),
		CheckIn:  int(r.CheckInDate.Int64()),
		CheckOut: int(r.CheckOutDate.Int64()),
		Renter:   r.Renter,
	}
}

// RoomCount returns the number of rooms ever registered (active or not).
func (c *Client) RoomCount(ctx context.Context, from common.Address) (uint64, error) {
	var out []interface{}
	if err := c.backend.Call(ctx, from, &out, "getRoomId"); err != nil {
		return 0, &CallError{Op: "roomshare.RoomCount", Kind: KindProvider, Reason: ReasonRPC, Err: err}
	}
	count := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	return count.Uint64(), nil
}

// RoomByID fetches a single room record by its index.
func (c *Client) RoomByID(ctx context.Context, from common.Address, roomID uint64) (domain.Room, error) {
	var out []interface{}
	if err := c.backend.Call(ctx, from, &out, "getRoomByRoomId", new(big.Int).SetUint64(roomID)); err != nil {
		return domain.Room{}, &CallError{Op: "roomshare.RoomByID", Kind: KindProvider, Reason: ReasonRPC, Err: err}
	}
	raw := *abi.ConvertType(out[0], new(rawRoom)).(*rawRoom)
	return raw.toDomain(), nil
}

// AllRooms fetches every registered room. The contract exposes no batch
// read, so rooms are fetched one index at a time through a bounded worker
// pool; results keep index order regardless of completion order.
func (c *Client) AllRooms(ctx context.Context, from common.Address) ([]domain.Room, error) {
	count, err := c.RoomCount(ctx, from)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	rooms := make([]domain.Room, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(roomFetchWorkers)
	for i := uint64(0); i < count; i++ {
		g.Go(func() error {
			room, err := c.RoomByID(gctx, from, i)
			if err != nil {
				return err
			}
			rooms[i] = room
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rooms, nil
}

// MyRents returns the rentals made by the calling account.
func (c *Client) MyRents(ctx context.Context, from common.Address) ([]domain.Rent, error) {
	return c.rentList(ctx, from, "roomshare.MyRents", "getMyRents")
}

// RoomHistory returns every rental ever recorded for a room.
func (c *Client) RoomHistory(ctx context.Context, from common.Address, roomID uint64) ([]domain.Rent, error) {
	return c.rentList(ctx, from, "roomshare.RoomHistory", "getRoomRentHistory", new(big.Int).SetUint64(roomID))
}

func (c *Client) rentList(ctx context.Context, from common.Address, op, method string, args ...interface{}) ([]domain.Rent, error) {
	var out []interface{}
	if err := c.backend.Call(ctx, from, &out, method, args...); err != nil {
		return nil, &CallError{Op: op, Kind: KindProvider, Reason: ReasonRPC, Err: err}
	}
	raws := *abi.ConvertType(out[0], new([]rawRent)).(*[]rawRent)
	rents := make([]domain.Rent, 0, len(raws))
	for _, r := range raws {
		rents = append(rents, r.toDomain())
	}
	return rents, nil
}

// RecommendDate asks the contract for the booked range blocking the
// requested stay, so the caller can suggest alternative dates.
func (c *Client) RecommendDate(ctx context.Context, from common.Address, roomID uint64, checkIn, checkOut int) ([2]int, error) {
	var out []interface{}
	err := c.backend.Call(ctx, from, &out, "recommendDate",
		new(big.Int).SetUint64(roomID), big.NewInt(int64(checkIn)), big.NewInt(int64(checkOut)))
	if err != nil {
		return [2]int{}, &CallError{Op: "roomshare.RecommendDate", Kind: KindProvider, Reason: ReasonRPC, Err: err}
	}
	pair := *abi.ConvertType(out[0], new([2]*big.Int)).(*[2]*big.Int)
	return [2]int{int(pair[0].Int64()), int(pair[1].Int64())}, nil
}

// ShareRoom registers a new listing owned by the transacting account.
func (c *Client) ShareRoom(ctx context.Context, opts *bind.TransactOpts, name, location string, price uint64) (common.Hash, error) {
	return c.transact(ctx, "roomshare.ShareRoom", opts, nil,
		"shareRoom", name, location, new(big.Int).SetUint64(price))
}

// RentRoom books a stay and attaches the total payment (finney → wei).
func (c *Client) RentRoom(ctx context.Context, opts *bind.TransactOpts, roomID uint64, year, checkIn, checkOut int, totalFinney uint64) (common.Hash, error) {
	return c.transact(ctx, "roomshare.RentRoom", opts, domain.FinneyToWei(totalFinney),
		"rentRoom", new(big.Int).SetUint64(roomID), big.NewInt(int64(year)),
		big.NewInt(int64(checkIn)), big.NewInt(int64(checkOut)))
}

// MarkInactive withdraws a room from the selector. Owner-restricted.
func (c *Client) MarkInactive(ctx context.Context, opts *bind.TransactOpts, roomID uint64) (common.Hash, error) {
	return c.transact(ctx, "roomshare.MarkInactive", opts, nil,
		"markRoomAsInactive", new(big.Int).SetUint64(roomID))
}

// ResetBookings clears a room's rental schedule. Owner-restricted.
func (c *Client) ResetBookings(ctx context.Context, opts *bind.TransactOpts, roomID uint64) (common.Hash, error) {
	return c.transact(ctx, "roomshare.ResetBookings", opts, nil,
		"initializeRoomShare", new(big.Int).SetUint64(roomID))
}

// transact submits a state-changing call with the fixed gas ceiling and
// waits for the mined receipt. A reverted receipt is a domain rejection;
// everything before mining is a provider failure.
func (c *Client) transact(ctx context.Context, op string, opts *bind.TransactOpts, value *big.Int, method string, args ...interface{}) (common.Hash, error) {
	opts.Context = ctx
	opts.GasLimit = c.gasLimit
	opts.Value = value

	tx, err := c.backend.Transact(opts, method, args...)
	if err != nil {
		log.Warn().Str("method", method).Err(err).Msg("transaction rejected by provider")
		return common.Hash{}, &CallError{Op: op, Kind: KindProvider, Reason: ReasonRPC, Err: err}
	}
	log.Debug().Str("method", method).Str("tx", tx.Hash().Hex()).Msg("transaction submitted")

	receipt, err := c.backend.WaitMined(ctx, tx)
	if err != nil {
		return tx.Hash(), &CallError{Op: op, Kind: KindProvider, Reason: ReasonRPC, Err: err}
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		log.Warn().Str("method", method).Str("tx", tx.Hash().Hex()).Msg("transaction reverted")
		return tx.Hash(), &CallError{Op: op, Kind: KindDomain, Reason: ReasonReverted}
	}
	return tx.Hash(), nil
}
