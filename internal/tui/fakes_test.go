package tui

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/BecomeWeasel/dapp-project/pkg/domain"
	"github.com/BecomeWeasel/dapp-project/pkg/roomshare"
)

var testAddr = common.HexToAddress("0x4147248382B8Dc4FB4269Ab7C57C24e3E2E38260")

type recommendCall struct {
	roomID             uint64
	checkIn, checkOut  int
}

// fakeLedger scripts contract behavior for model tests.
type fakeLedger struct {
	rooms   []domain.Room
	rents   []domain.Rent
	history []domain.Rent
	nextFit [2]int

	roomsErr  error
	rentErr   error
	shareErr  error
	manageErr error

	recommendCalls []recommendCall
	rentCalls      int
}

func (f *fakeLedger) AllRooms(context.Context, common.Address) ([]domain.Room, error) {
	return f.rooms, f.roomsErr
}

func (f *fakeLedger) MyRents(context.Context, common.Address) ([]domain.Rent, error) {
	return f.rents, nil
}

func (f *fakeLedger) RoomHistory(context.Context, common.Address, uint64) ([]domain.Rent, error) {
	return f.history, nil
}

func (f *fakeLedger) RecommendDate(_ context.Context, _ common.Address, roomID uint64, checkIn, checkOut int) ([2]int, error) {
	f.recommendCalls = append(f.recommendCalls, recommendCall{roomID: roomID, checkIn: checkIn, checkOut: checkOut})
	return f.nextFit, nil
}

func (f *fakeLedger) ShareRoom(context.Context, *bind.TransactOpts, string, string, uint64) (common.Hash, error) {
	return common.HexToHash("0x01"), f.shareErr
}

func (f *fakeLedger) RentRoom(context.Context, *bind.TransactOpts, uint64, int, int, int, uint64) (common.Hash, error) {
	f.rentCalls++
	return common.HexToHash("0x02"), f.rentErr
}

func (f *fakeLedger) MarkInactive(context.Context, *bind.TransactOpts, uint64) (common.Hash, error) {
	return common.HexToHash("0x03"), f.manageErr
}

func (f *fakeLedger) ResetBookings(context.Context, *bind.TransactOpts, uint64) (common.Hash, error) {
	return common.HexToHash("0x04"), f.manageErr
}

// fakeSigner hands out sessions and signing options without a keystore.
type fakeSigner struct {
	loginErr error
}

func (f *fakeSigner) Login(_ context.Context, index int, _ string) (*domain.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	sess := domain.NewSession(index, testAddr)
	sess.Balance = big.NewInt(1_000_000_000_000_000_000)
	return sess, nil
}

func (f *fakeSigner) TransactOpts(context.Context, common.Address) (*bind.TransactOpts, error) {
	return &bind.TransactOpts{From: testAddr}, nil
}

func (f *fakeSigner) Balance(context.Context, common.Address) (*big.Int, error) {
	return big.NewInt(1_000_000_000_000_000_000), nil
}

func revertedErr(op string) error {
	return &roomshare.CallError{Op: op, Kind: roomshare.KindDomain, Reason: roomshare.ReasonReverted}
}

// errNotReverted stands in for an RPC-level failure.
var errNotReverted = &roomshare.CallError{
	Op:     "roomshare.RentRoom",
	Kind:   roomshare.KindProvider,
	Reason: roomshare.ReasonRPC,
}

func mustDate(t testing.TB, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func testRooms() []domain.Room {
	return []domain.Room{
		{ID: 0, Name: "Sea View", Location: "Busan", IsActive: true, Price: 2, Owner: testAddr},
		{ID: 1, Name: "City Loft", Location: "Seoul", IsActive: false, Price: 5, Owner: testAddr},
	}
}
