package roomshare

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/BecomeWeasel/dapp-project/pkg/domain"
)

var (
	testOwner  = common.HexToAddress("0x4147248382B8Dc4FB4269Ab7C57C24e3E2E38260")
	testRenter = common.HexToAddress("0x00000000000000000000000000000000DeaDBeef")
)

// fakeBackend satisfies backend without a chain. Call results are served
// from in-memory fixtures; Transact/WaitMined outcomes are scripted.
type fakeBackend struct {
	mu      sync.Mutex
	rooms   []rawRoom
	rents   []rawRent
	nextFit [2]*big.Int

	callErrs map[string]error
	calls    []recordedCall

	transactErr   error
	waitErr       error
	receiptStatus uint64
	lastOpts      *bind.TransactOpts
	lastMethod    string
	lastArgs      []interface{}
}

type recordedCall struct {
	method string
	args   []interface{}
}

func (f *fakeBackend) Call(_ context.Context, _ common.Address, result *[]interface{}, method string, args ...interface{}) error {
	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{method: method, args: args})
	f.mu.Unlock()

	if err := f.callErrs[method]; err != nil {
		return err
	}

	switch method {
	case "getRoomId":
		*result = []interface{}{big.NewInt(int64(len(f.rooms)))}
	case "getRoomByRoomId":
		idx := args[0].(*big.Int).Int64()
		if idx < 0 || idx >= int64(len(f.rooms)) {
			return fmt.Errorf("no room at index %d", idx)
		}
		*result = []interface{}{f.rooms[idx]}
	case "getMyRents", "getRoomRentHistory":
		*result = []interface{}{f.rents}
	case "recommendDate":
		*result = []interface{}{f.nextFit}
	default:
		return fmt.Errorf("unexpected method %q", method)
	}
	return nil
}

func (f *fakeBackend) Transact(opts *bind.TransactOpts, method string, args ...interface{}) (*types.Transaction, error) {
	f.lastOpts = opts
	f.lastMethod = method
	f.lastArgs = args
	if f.transactErr != nil {
		return nil, f.transactErr
	}
	value := opts.Value
	if value == nil {
		value = big.NewInt(0)
	}
	to := testOwner
	return types.NewTx(&types.LegacyTx{
		Nonce:    1,
		To:       &to,
		Value:    value,
		Gas:      opts.GasLimit,
		GasPrice: big.NewInt(1),
	}), nil
}

func (f *fakeBackend) WaitMined(_ context.Context, _ *types.Transaction) (*types.Receipt, error) {
	if f.waitErr != nil {
		return nil, f.waitErr
	}
	return &types.Receipt{Status: f.receiptStatus}, nil
}

func (f *fakeBackend) callsFor(method string) []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedCall
	for _, c := range f.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

func newTestClient(f *fakeBackend) *Client {
	if f.receiptStatus == 0 && f.transactErr == nil && f.waitErr == nil {
		f.receiptStatus = types.ReceiptStatusSuccessful
	}
	return &Client{backend: f, gasLimit: DefaultGasLimit}
}

func makeRooms(n int) []rawRoom {
	rooms := make([]rawRoom, n)
	for i := range rooms {
		rooms[i] = rawRoom{
			Id:       big.NewInt(int64(i)),
			Name:     fmt.Sprintf("room-%d", i),
			Location: "Seoul",
			IsActive: i%2 == 0,
			Price:    big.NewInt(2),
			Owner:    testOwner,
		}
	}
	return rooms
}

func TestAllRoomsPreservesIndexOrder(t *testing.T) {
	f := &fakeBackend{rooms: makeRooms(7)}
	c := newTestClient(f)

	rooms, err := c.AllRooms(context.Background(), testRenter)
	if err != nil {
		t.Fatalf("AllRooms: %v", err)
	}
	if len(rooms) != 7 {
		t.Fatalf("AllRooms returned %d rooms, want 7", len(rooms))
	}
	for i, r := range rooms {
		if r.ID != uint64(i) {
			t.Errorf("rooms[%d].ID = %d, want %d", i, r.ID, i)
		}
		if want := fmt.Sprintf("room-%d", i); r.Name != want {
			t.Errorf("rooms[%d].Name = %q, want %q", i, r.Name, want)
		}
	}
}

func TestAllRoomsEmpty(t *testing.T) {
	f := &fakeBackend{}
	c := newTestClient(f)

	rooms, err := c.AllRooms(context.Background(), testRenter)
	if err != nil {
		t.Fatalf("AllRooms: %v", err)
	}
	if rooms != nil {
		t.Errorf("AllRooms on empty contract = %v, want nil", rooms)
	}
	// Only the count call should have gone out.
	if got := f.callsFor("getRoomByRoomId"); len(got) != 0 {
		t.Errorf("expected no per-index calls, got %d", len(got))
	}
}

func TestAllRoomsPropagatesFetchError(t *testing.T) {
	f := &fakeBackend{
		rooms:    makeRooms(3),
		callErrs: map[string]error{"getRoomByRoomId": errors.New("rpc: connection refused")},
	}
	c := newTestClient(f)

	_, err := c.AllRooms(context.Background(), testRenter)
	if err == nil {
		t.Fatal("AllRooms: expected error, got nil")
	}
	kind, ok := KindOf(err)
	if !ok || kind != KindProvider {
		t.Errorf("KindOf(err) = (%v, %v), want (KindProvider, true)", kind, ok)
	}
}

func TestRoomCountError(t *testing.T) {
	f := &fakeBackend{callErrs: map[string]error{"getRoomId": errors.New("boom")}}
	c := newTestClient(f)

	if _, err := c.RoomCount(context.Background(), testRenter); err == nil {
		t.Fatal("RoomCount: expected error, got nil")
	}
}

func TestMyRentsConversion(t *testing.T) {
	f := &fakeBackend{rents: []rawRent{{
		Id:           big.NewInt(1),
		RId:          big.NewInt(3),
		YearOfRent:   big.NewInt(2022),
		CheckInDate:  big.NewInt(10),
		CheckOutDate: big.NewInt(13),
		Renter:       testRenter,
	}}}
	c := newTestClient(f)

	rents, err := c.MyRents(context.Background(), testRenter)
	if err != nil {
		t.Fatalf("MyRents: %v", err)
	}
	if len(rents) != 1 {
		t.Fatalf("MyRents returned %d rents, want 1", len(rents))
	}
	want := domain.Rent{ID: 1, RoomID: 3, Year: 2022, CheckIn: 10, CheckOut: 13, Renter: testRenter}
	if rents[0] != want {
		t.Errorf("MyRents[0] = %+v, want %+v", rents[0], want)
	}
}

func TestRecommendDatePassesRequestedRange(t *testing.T) {
	f := &fakeBackend{nextFit: [2]*big.Int{big.NewInt(11), big.NewInt(14)}}
	c := newTestClient(f)

	got, err := c.RecommendDate(context.Background(), testRenter, 3, 10, 13)
	if err != nil {
		t.Fatalf("RecommendDate: %v", err)
	}
	if got != [2]int{11, 14} {
		t.Errorf("RecommendDate = %v, want [11 14]", got)
	}

	calls := f.callsFor("recommendDate")
	if len(calls) != 1 {
		t.Fatalf("expected 1 recommendDate call, got %d", len(calls))
	}
	args := calls[0].args
	if args[0].(*big.Int).Uint64() != 3 ||
		args[1].(*big.Int).Int64() != 10 ||
		args[2].(*big.Int).Int64() != 13 {
		t.Errorf("recommendDate args = %v, want room 3 range 10..13", args)
	}
}

func TestRentRoomAttachesPaymentAndGas(t *testing.T) {
	f := &fakeBackend{}
	c := newTestClient(f)

	opts := &bind.TransactOpts{From: testRenter}
	hash, err := c.RentRoom(context.Background(), opts, 3, 2022, 10, 13, 6)
	if err != nil {
		t.Fatalf("RentRoom: %v", err)
	}
	if hash == (common.Hash{}) {
		t.Error("RentRoom returned zero tx hash")
	}
	if f.lastMethod != "rentRoom" {
		t.Errorf("method = %q, want %q", f.lastMethod, "rentRoom")
	}
	if f.lastOpts.GasLimit != DefaultGasLimit {
		t.Errorf("gas limit = %d, want %d", f.lastOpts.GasLimit, DefaultGasLimit)
	}
	// 6 finney → 6×10^15 wei.
	if want := "6000000000000000"; f.lastOpts.Value.String() != want {
		t.Errorf("attached value = %s, want %s", f.lastOpts.Value, want)
	}
	if f.lastArgs[1].(*big.Int).Int64() != 2022 {
		t.Errorf("year arg = %v, want 2022", f.lastArgs[1])
	}
}

func TestShareRoomCarriesNoValue(t *testing.T) {
	f := &fakeBackend{}
	c := newTestClient(f)

	if _, err := c.ShareRoom(context.Background(), &bind.TransactOpts{From: testOwner}, "Sea View", "Busan", 2); err != nil {
		t.Fatalf("ShareRoom: %v", err)
	}
	if f.lastMethod != "shareRoom" {
		t.Errorf("method = %q, want %q", f.lastMethod, "shareRoom")
	}
	if f.lastOpts.Value != nil {
		t.Errorf("attached value = %v, want nil", f.lastOpts.Value)
	}
}

func TestRevertedTransactionIsDomainRejection(t *testing.T) {
	f := &fakeBackend{receiptStatus: types.ReceiptStatusFailed}
	f.transactErr = nil
	c := &Client{backend: f, gasLimit: DefaultGasLimit}

	hash, err := c.MarkInactive(context.Background(), &bind.TransactOpts{From: testRenter}, 3)
	if err == nil {
		t.Fatal("MarkInactive: expected error for reverted tx, got nil")
	}
	if !IsReverted(err) {
		t.Errorf("IsReverted = false, want true: %v", err)
	}
	if kind, _ := KindOf(err); kind != KindDomain {
		t.Errorf("KindOf = %v, want KindDomain", kind)
	}
	if hash == (common.Hash{}) {
		t.Error("expected tx hash to survive a revert")
	}
}

func TestTransactRejectionIsProviderFailure(t *testing.T) {
	f := &fakeBackend{transactErr: errors.New("nonce too low")}
	c := newTestClient(f)

	_, err := c.ResetBookings(context.Background(), &bind.TransactOpts{From: testRenter}, 3)
	if err == nil {
		t.Fatal("ResetBookings: expected error, got nil")
	}
	if IsReverted(err) {
		t.Error("IsReverted = true for a provider failure, want false")
	}
	if kind, _ := KindOf(err); kind != KindProvider {
		t.Errorf("KindOf = %v, want KindProvider", kind)
	}
}

func TestMutatingMethodNames(t *testing.T) {
	tests := []struct {
		name string
		call func(c *Client, opts *bind.TransactOpts) error
		want string
	}{
		{"deactivate", func(c *Client, o *bind.TransactOpts) error {
			_, err := c.MarkInactive(context.Background(), o, 1)
			return err
		}, "markRoomAsInactive"},
		{"reset", func(c *Client, o *bind.TransactOpts) error {
			_, err := c.ResetBookings(context.Background(), o, 1)
			return err
		}, "initializeRoomShare"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeBackend{}
			c := newTestClient(f)
			if err := tc.call(c, &bind.TransactOpts{From: testOwner}); err != nil {
				t.Fatalf("call: %v", err)
			}
			if f.lastMethod != tc.want {
				t.Errorf("method = %q, want %q", f.lastMethod, tc.want)
			}
		})
	}
}

func TestLoadABIEmbedded(t *testing.T) {
	parsed, err := LoadABI("")
	if err != nil {
		t.Fatalf("LoadABI: %v", err)
	}
	for _, method := range []string{
		"shareRoom", "rentRoom", "getRoomId", "getRoomByRoomId",
		"getMyRents", "getRoomRentHistory", "recommendDate",
		"markRoomAsInactive", "initializeRoomShare",
	} {
		if _, ok := parsed.Methods[method]; !ok {
			t.Errorf("embedded descriptor missing method %q", method)
		}
	}
	if parsed.Methods["rentRoom"].StateMutability != "payable" {
		t.Error("rentRoom should be payable")
	}
}
