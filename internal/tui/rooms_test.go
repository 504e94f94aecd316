package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BecomeWeasel/dapp-project/internal/browser"
	"github.com/BecomeWeasel/dapp-project/pkg/domain"
)

func newTestRoomsModel(l *fakeLedger) roomsModel {
	m := newRoomsModel(l, &fakeSigner{}, browser.NewExplorer(""))
	m.from = testAddr
	m.width = 80
	m.height = 24
	m.loading = false
	return m
}

func TestRoomsEmptyPlaceholder(t *testing.T) {
	m := newTestRoomsModel(&fakeLedger{})
	m, _ = m.Update(roomsLoadedMsg{rooms: nil})

	view := m.View()
	if !strings.Contains(view, "no rooms shared yet") {
		t.Errorf("expected empty placeholder, got:\n%s", view)
	}
}

func TestRoomsListRendersStatusAndPrice(t *testing.T) {
	m := newTestRoomsModel(&fakeLedger{})
	m, _ = m.Update(roomsLoadedMsg{rooms: testRooms()})

	view := m.View()
	for _, want := range []string{"Sea View", "Busan", "2 finney/day", "open"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in rooms view, got:\n%s", want, view)
		}
	}
}

func TestRoomsEnterOpensRentFormOnlyWhenActive(t *testing.T) {
	m := newTestRoomsModel(&fakeLedger{})
	m, _ = m.Update(roomsLoadedMsg{rooms: testRooms()})

	// Room 1 is inactive.
	m.cursor = 1
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.renting {
		t.Fatal("rent form opened for an inactive room")
	}
	if !strings.Contains(m.statusMsg, "1") {
		t.Errorf("status %q should name the room", m.statusMsg)
	}

	m.cursor = 0
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.renting {
		t.Fatal("rent form did not open for an active room")
	}
	if m.rentRoom.ID != 0 {
		t.Errorf("rentRoom.ID = %d, want 0", m.rentRoom.ID)
	}
}

func TestRoomsRentFormNormalizesDatesLive(t *testing.T) {
	m := newTestRoomsModel(&fakeLedger{})
	m, _ = m.Update(roomsLoadedMsg{rooms: testRooms()})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	for _, r := range "20260110" {
		m, _ = m.Update(keyMsg(string(r)))
	}

	view := m.View()
	if !strings.Contains(view, "2026-01-10") {
		t.Errorf("expected live-normalized date in form, got:\n%s", view)
	}
}

func TestRoomsRentFormShowsTotal(t *testing.T) {
	m := newTestRoomsModel(&fakeLedger{})
	m, _ = m.Update(roomsLoadedMsg{rooms: testRooms()})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.rentFields[fieldCheckIn] = "20260110"
	m.rentFields[fieldCheckOut] = "2026-0113"

	// 3 nights at 2 finney: 6 finney, 9600 KRW.
	view := m.View()
	if !strings.Contains(view, "total 6 finney") {
		t.Errorf("expected finney total in form, got:\n%s", view)
	}
	if !strings.Contains(view, "9600 KRW") {
		t.Errorf("expected KRW total in form, got:\n%s", view)
	}
}

func TestRoomsRejectedRentTriggersOneRecommendation(t *testing.T) {
	f := &fakeLedger{rooms: testRooms(), rentErr: revertedErr("roomshare.RentRoom"), nextFit: [2]int{10, 14}}
	m := newTestRoomsModel(f)
	m, _ = m.Update(roomsLoadedMsg{rooms: f.rooms})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.rentFields[fieldCheckIn] = "20260111"
	m.rentFields[fieldCheckOut] = "20260113"
	m.rentFocus = fieldCheckOut

	// Submit and run the resulting command chain by hand.
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a rent command")
	}
	msg := cmd()
	rent, ok := msg.(rentResultMsg)
	if !ok {
		t.Fatalf("expected rentResultMsg, got %T", msg)
	}

	m, cmd = m.Update(rent)
	if cmd == nil {
		t.Fatal("expected a recommendation follow-up after a rejected booking")
	}
	rec := cmd().(recommendMsg)
	m, _ = m.Update(rec)

	if len(f.recommendCalls) != 1 {
		t.Fatalf("RecommendDate called %d times, want exactly 1", len(f.recommendCalls))
	}
	call := f.recommendCalls[0]
	wantIn := domain.DayOfYear(mustDate(t, "2026-01-11"))
	wantOut := domain.DayOfYear(mustDate(t, "2026-01-13"))
	if call.roomID != 0 || call.checkIn != wantIn || call.checkOut != wantOut {
		t.Errorf("recommend args = %+v, want room 0 range %d..%d", call, wantIn, wantOut)
	}

	// The suggested window is surfaced as calendar dates.
	if !strings.Contains(m.statusMsg, "2026-01-10") || !strings.Contains(m.statusMsg, "2026-01-14") {
		t.Errorf("status %q should show the conflicting window as dates", m.statusMsg)
	}
}

func TestRoomsProviderFailureDoesNotRecommend(t *testing.T) {
	f := &fakeLedger{rooms: testRooms()}
	m := newTestRoomsModel(f)
	m, _ = m.Update(roomsLoadedMsg{rooms: f.rooms})

	m, cmd := m.Update(rentResultMsg{roomID: 0, year: 2026, checkIn: 10, checkOut: 12,
		err: errNotReverted})
	if cmd != nil {
		t.Error("expected no follow-up command for a provider failure")
	}
	if len(f.recommendCalls) != 0 {
		t.Errorf("RecommendDate called %d times for a provider failure, want 0", len(f.recommendCalls))
	}
	if !strings.Contains(m.statusMsg, "booking failed") {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestRoomsHistoryPreview(t *testing.T) {
	f := &fakeLedger{
		rooms:   testRooms(),
		history: []domain.Rent{{ID: 0, RoomID: 0, Year: 2026, CheckIn: 10, CheckOut: 12, Renter: testAddr}},
	}
	m := newTestRoomsModel(f)
	m, _ = m.Update(roomsLoadedMsg{rooms: f.rooms})

	m, cmd := m.Update(keyMsg("v"))
	if cmd == nil {
		t.Fatal("expected history load command")
	}
	m, _ = m.Update(cmd().(historyMsg))

	view := m.View()
	if !strings.Contains(view, "RENT HISTORY (1)") {
		t.Errorf("expected history section, got:\n%s", view)
	}
	if !strings.Contains(view, "2026-01-10") {
		t.Errorf("expected check-in date in history, got:\n%s", view)
	}
}
