package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ethereum/go-ethereum/common"

	"github.com/BecomeWeasel/dapp-project/internal/browser"
	"github.com/BecomeWeasel/dapp-project/pkg/domain"
	"github.com/BecomeWeasel/dapp-project/pkg/roomshare"
)

type rentField int

const (
	fieldCheckIn rentField = iota
	fieldCheckOut
	numRentFields
)

type roomsModel struct {
	ledger   ledger
	wallet   signer
	explorer browser.Explorer
	from     common.Address

	rooms   []domain.Room
	cursor  int
	loading bool
	err     error

	// rent form state
	renting    bool
	rentRoom   domain.Room
	rentFields [numRentFields]string
	rentFocus  rentField
	submitting bool

	// history preview for the selected room
	history    []domain.Rent
	historyFor uint64
	showHist   bool

	statusMsg string
	width     int
	height    int
}

type roomsLoadedMsg struct {
	rooms []domain.Room
	err   error
}

type historyMsg struct {
	roomID uint64
	rents  []domain.Rent
	err    error
}

// rentResultMsg carries the booking outcome plus the requested stay, so a
// rejection can be followed up with a recommendation for the same range.
type rentResultMsg struct {
	roomID   uint64
	year     int
	checkIn  int
	checkOut int
	hash     common.Hash
	err      error
}

type recommendMsg struct {
	year    int
	nextFit [2]int
	err     error
}

type copyResultMsg struct{ err error }

func newRoomsModel(l ledger, w signer, explorer browser.Explorer) roomsModel {
	return roomsModel{ledger: l, wallet: w, explorer: explorer, loading: true}
}

func (m roomsModel) load() tea.Cmd {
	l := m.ledger
	from := m.from
	return func() tea.Msg {
		rooms, err := l.AllRooms(context.Background(), from)
		return roomsLoadedMsg{rooms: rooms, err: err}
	}
}

func (m roomsModel) loadHistory(roomID uint64) tea.Cmd {
	l := m.ledger
	from := m.from
	return func() tea.Msg {
		rents, err := l.RoomHistory(context.Background(), from, roomID)
		return historyMsg{roomID: roomID, rents: rents, err: err}
	}
}

// recommend asks the contract for the conflicting window of the exact stay
// that was just rejected. Issued once per failed booking.
func (m roomsModel) recommend(roomID uint64, year, checkIn, checkOut int) tea.Cmd {
	l := m.ledger
	from := m.from
	return func() tea.Msg {
		nextFit, err := l.RecommendDate(context.Background(), from, roomID, checkIn, checkOut)
		return recommendMsg{year: year, nextFit: nextFit, err: err}
	}
}

func (m roomsModel) Init() tea.Cmd {
	return m.load()
}

func (m roomsModel) Update(msg tea.Msg) (roomsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case roomsLoadedMsg:
		m.loading = false
		m.rooms = msg.rooms
		m.err = msg.err
		if m.cursor >= len(m.rooms) {
			m.cursor = 0
		}
		return m, nil

	case historyMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("history failed: %v", msg.err)
			return m, nil
		}
		m.history = msg.rents
		m.historyFor = msg.roomID
		m.showHist = true
		return m, nil

	case rentResultMsg:
		m.submitting = false
		if msg.err != nil {
			if roomshare.IsReverted(msg.err) {
				m.statusMsg = "booking rejected — checking the schedule..."
				return m, m.recommend(msg.roomID, msg.year, msg.checkIn, msg.checkOut)
			}
			m.statusMsg = fmt.Sprintf("booking failed: %v", msg.err)
			return m, nil
		}
		m.renting = false
		m.rentFields = [numRentFields]string{}
		m.statusMsg = "booked! tx " + truncStr(msg.hash.Hex(), 14)
		return m, m.load()

	case recommendMsg:
		if msg.err != nil {
			m.statusMsg = "dates unavailable, and no alternative could be fetched"
			return m, nil
		}
		from := domain.DateFromDay(msg.year, msg.nextFit[0])
		to := domain.DateFromDay(msg.year, msg.nextFit[1])
		m.statusMsg = fmt.Sprintf("dates taken — room is booked %s to %s, pick dates outside that window",
			domain.FormatDate(from), domain.FormatDate(to))
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.statusMsg = "address copied!"
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		if m.renting {
			return m.updateRentForm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m roomsModel) updateList(msg tea.KeyMsg) (roomsModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.rooms)-1 {
			m.cursor++
			m.showHist = false
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.showHist = false
		}
	case "enter":
		if m.cursor < len(m.rooms) {
			room := m.rooms[m.cursor]
			if !room.IsActive {
				m.statusMsg = fmt.Sprintf("room %d is not accepting bookings", room.ID)
				return m, nil
			}
			m.renting = true
			m.rentRoom = room
			m.rentFields = [numRentFields]string{}
			m.rentFocus = fieldCheckIn
		}
	case "v":
		if m.cursor < len(m.rooms) {
			if m.showHist {
				m.showHist = false
				return m, nil
			}
			return m, m.loadHistory(m.rooms[m.cursor].ID)
		}
	case "c":
		if m.cursor < len(m.rooms) {
			owner := m.rooms[m.cursor].Owner.Hex()
			return m, func() tea.Msg {
				return copyResultMsg{err: clipboard.WriteAll(owner)}
			}
		}
	case "o":
		if m.cursor < len(m.rooms) {
			m.explorer.OpenAddress(m.rooms[m.cursor].Owner) //nolint:errcheck // best-effort browser open
		}
	case "r":
		m.loading = true
		m.showHist = false
		return m, m.load()
	}
	return m, nil
}

func (m roomsModel) updateRentForm(msg tea.KeyMsg) (roomsModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.renting = false
		m.rentFields = [numRentFields]string{}
	case "tab", "down":
		m.rentFocus = (m.rentFocus + 1) % numRentFields
	case "shift+tab", "up":
		m.rentFocus = (m.rentFocus - 1 + numRentFields) % numRentFields
	case "enter":
		if m.rentFocus == fieldCheckIn {
			m.rentFocus = fieldCheckOut
			return m, nil
		}
		return m.submitRent()
	default:
		f := &m.rentFields[m.rentFocus]
		*f = editRune(*f, msg.String())
	}
	return m, nil
}

// stay parses the form into day-of-year bounds and the total price.
func (m roomsModel) stay() (year, checkIn, checkOut int, total uint64, err error) {
	in, err := domain.ParseDate(m.rentFields[fieldCheckIn])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("check-in: %w", err)
	}
	out, err := domain.ParseDate(m.rentFields[fieldCheckOut])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("check-out: %w", err)
	}
	if out.Year() != in.Year() {
		return 0, 0, 0, 0, fmt.Errorf("stay must fall within one year")
	}
	checkIn = domain.DayOfYear(in)
	checkOut = domain.DayOfYear(out)
	total, err = domain.TotalPrice(checkIn, checkOut, m.rentRoom.Price)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return in.Year(), checkIn, checkOut, total, nil
}

func (m roomsModel) submitRent() (roomsModel, tea.Cmd) {
	year, checkIn, checkOut, total, err := m.stay()
	if err != nil {
		m.statusMsg = err.Error()
		return m, nil
	}

	m.submitting = true
	l := m.ledger
	w := m.wallet
	from := m.from
	roomID := m.rentRoom.ID
	return m, func() tea.Msg {
		opts, err := w.TransactOpts(context.Background(), from)
		if err != nil {
			return rentResultMsg{roomID: roomID, year: year, checkIn: checkIn, checkOut: checkOut, err: err}
		}
		hash, err := l.RentRoom(context.Background(), opts, roomID, year, checkIn, checkOut, total)
		return rentResultMsg{roomID: roomID, year: year, checkIn: checkIn, checkOut: checkOut, hash: hash, err: err}
	}
}

func (m roomsModel) View() string {
	if m.renting {
		return m.viewRentForm()
	}

	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render("ROOMS") + "\n")

	sepW := m.width - 2
	if sepW < 4 {
		sepW = 4
	}
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", sepW)) + "\n")

	if m.statusMsg != "" {
		b.WriteString(" " + okStyle.Render(m.statusMsg) + "\n")
	}

	if m.loading {
		b.WriteString(" " + dimStyle.Render("loading rooms..."))
		return b.String()
	}
	if m.err != nil {
		b.WriteString(" " + errStyle.Render(fmt.Sprintf("error: %v", m.err)))
		return b.String()
	}
	if len(m.rooms) == 0 {
		b.WriteString(" " + dimStyle.Render("no rooms shared yet — be the first (tab 3)"))
		return b.String()
	}

	return b.String() + m.viewRoomList()
}

func (m roomsModel) viewRoomList() string {
	var b strings.Builder

	available := m.height - 5
	if available < 6 {
		available = 6
	}
	maxVisible := available * 3 / 5
	if maxVisible < 3 {
		maxVisible = 3
	}

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}

	for i := start; i < len(m.rooms) && i < start+maxVisible; i++ {
		room := m.rooms[i]

		cursor := "  "
		nameStyle := dimStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			nameStyle = normalStyle.Bold(true)
		}

		dot := statusDot(room.IsActive) + " "

		// Right columns: price (18) + owner (20)
		priceCol := krwStyle.Render(fmt.Sprintf("%4d finney/day", room.Price))
		ownerCol := metaStyle.Render(room.OwnerShort())
		rightWidth := 18 + 20 + 2

		nameWidth := m.width - 4 - rightWidth
		if nameWidth < 16 {
			nameWidth = 16
		}
		label := fmt.Sprintf("%d · %s · %s", room.ID, room.Name, room.Location)
		label = truncStr(label, nameWidth)
		labelPadded := fmt.Sprintf("%-*s", nameWidth, label)

		line := cursor + dot + nameStyle.Render(labelPadded) + " " + priceCol + " " + ownerCol
		if i == m.cursor {
			b.WriteString(selectedRowBg.Render(line) + "\n")
		} else {
			b.WriteString(line + "\n")
		}
	}

	// Preview for the selected room
	if m.cursor < len(m.rooms) {
		room := m.rooms[m.cursor]
		b.WriteString("\n")

		header := " " + selectedStyle.Render(room.Name) + "  " + dimStyle.Render(room.Location)
		if room.IsActive {
			header += "  " + activeStyle.Render("open")
		} else {
			header += "  " + inactiveStyle.Render("closed")
		}
		header += "  " + krwStyle.Render(fmt.Sprintf("%s/day", domain.FormatKRW(domain.ToKRW(room.Price))))
		b.WriteString(header + "\n")
		b.WriteString(" " + metaStyle.Render("owner "+room.Owner.Hex()) + "\n")

		if m.showHist && m.historyFor == room.ID {
			b.WriteString(" " + sectionHeaderStyle.Render(fmt.Sprintf("RENT HISTORY (%d)", len(m.history))) + "\n")
			if len(m.history) == 0 {
				b.WriteString(" " + dimStyle.Render("never rented") + "\n")
			}
			for _, r := range m.history {
				line := fmt.Sprintf(" %s → %s  %s", r.CheckInDate(), r.CheckOutDate(), r.RenterShort())
				b.WriteString(" " + normalStyle.Render(line) + "\n")
			}
		}
	}

	return truncateToHeight(b.String(), m.height)
}

func (m roomsModel) viewRentForm() string {
	var b strings.Builder

	room := m.rentRoom
	b.WriteString(" " + dimStyle.Render("<- back (esc)") + "\n")
	b.WriteString(" " + sectionHeaderStyle.Render("BOOK") + " " + selectedStyle.Render(room.Name) +
		"  " + krwStyle.Render(fmt.Sprintf("%d finney/day", room.Price)) + "\n\n")

	labels := [numRentFields]string{"check-in", "check-out"}
	for i := rentField(0); i < numRentFields; i++ {
		cursor := " "
		style := metaStyle
		if i == m.rentFocus {
			cursor = ">"
			style = selectedStyle
		}
		fmt.Fprintf(&b, " %s %s: %s\n", cursor, style.Render(fmt.Sprintf("%-9s", labels[i])),
			inputStyle.Render(renderDateField(m.rentFields[i], i == m.rentFocus)))
	}

	b.WriteString("\n")
	if _, _, _, total, err := m.stay(); err == nil {
		quote := fmt.Sprintf("total %d finney  ·  %s", total, domain.FormatKRW(domain.ToKRW(total)))
		b.WriteString(" " + krwStyle.Render(quote) + "\n")
	} else if m.rentFields[fieldCheckIn] != "" && m.rentFields[fieldCheckOut] != "" {
		b.WriteString(" " + dimStyle.Render(err.Error()) + "\n")
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("submitting transaction..."))
	} else if m.statusMsg != "" {
		b.WriteString(" " + warnStyle.Render(m.statusMsg))
	}

	return truncateToHeight(b.String(), m.height)
}
