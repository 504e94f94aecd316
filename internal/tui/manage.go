package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ethereum/go-ethereum/common"
)

type manageAction int

const (
	actionDeactivate manageAction = iota
	actionReset
)

func (a manageAction) String() string {
	if a == actionReset {
		return "reset bookings"
	}
	return "deactivate"
}

// manageModel drives the owner-only operations: withdrawing a room from
// the listing and wiping its rental schedule.
type manageModel struct {
	ledger ledger
	wallet signer
	from   common.Address

	roomID     string
	editing    bool
	submitting bool
	statusMsg  string
	failed     bool
	width      int
	height     int
}

type manageResultMsg struct {
	action manageAction
	roomID uint64
	hash   common.Hash
	err    error
}

func newManageModel(l ledger, w signer) manageModel {
	return manageModel{ledger: l, wallet: w}
}

func (m manageModel) Init() tea.Cmd {
	return nil
}

func (m manageModel) Update(msg tea.Msg) (manageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case manageResultMsg:
		m.submitting = false
		if msg.err != nil {
			// The contract restricts both operations to the room's owner;
			// a failed attempt gets one fixed explanation.
			m.failed = true
			m.statusMsg = fmt.Sprintf("could not update room %d — only the room owner can do this", msg.roomID)
		} else {
			m.failed = false
			m.statusMsg = fmt.Sprintf("%s done for room %d, tx %s", msg.action, msg.roomID, truncStr(msg.hash.Hex(), 14))
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		m.statusMsg = ""
		m.failed = false
		if m.editing {
			switch msg.String() {
			case "enter", "esc":
				m.editing = false
			default:
				m.roomID = editDigits(m.roomID, msg.String())
			}
			return m, nil
		}
		switch msg.String() {
		case "i":
			m.editing = true
		case "d":
			return m.submit(actionDeactivate)
		case "x":
			return m.submit(actionReset)
		}
	}
	return m, nil
}

func (m manageModel) submit(action manageAction) (manageModel, tea.Cmd) {
	id, err := parseUint(m.roomID)
	if err != nil || m.roomID == "" {
		m.statusMsg = "set a room id first (press i)"
		return m, nil
	}

	m.submitting = true
	l := m.ledger
	w := m.wallet
	from := m.from
	return m, func() tea.Msg {
		opts, err := w.TransactOpts(context.Background(), from)
		if err != nil {
			return manageResultMsg{action: action, roomID: id, err: err}
		}
		var hash common.Hash
		if action == actionReset {
			hash, err = l.ResetBookings(context.Background(), opts, id)
		} else {
			hash, err = l.MarkInactive(context.Background(), opts, id)
		}
		return manageResultMsg{action: action, roomID: id, hash: hash, err: err}
	}
}

func (m manageModel) View() string {
	var b strings.Builder

	b.WriteString(" " + sectionHeaderStyle.Render("MANAGE YOUR ROOM") + "\n\n")

	cursor := " "
	style := metaStyle
	if m.editing {
		cursor = ">"
		style = selectedStyle
	}
	value := m.roomID
	if m.editing {
		value += "█"
	}
	if value == "" {
		value = inputPlaceholderStyle.Render("press i to set")
	} else {
		value = inputStyle.Render(value)
	}
	fmt.Fprintf(&b, " %s %s: %s\n\n", cursor, style.Render("room id"), value)

	b.WriteString(" " + helpEntry("d", "deactivate — stop taking bookings") + "\n")
	b.WriteString(" " + helpEntry("x", "reset — clear the whole rental schedule") + "\n")

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("submitting transaction..."))
	} else if m.statusMsg != "" {
		if m.failed {
			b.WriteString(" " + errStyle.Render(m.statusMsg))
		} else {
			b.WriteString(" " + okStyle.Render(m.statusMsg))
		}
	}

	return truncateToHeight(b.String(), m.height)
}
