package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ethereum/go-ethereum/common"

	"github.com/BecomeWeasel/dapp-project/pkg/domain"
)

type rentsModel struct {
	ledger  ledger
	from    common.Address
	rents   []domain.Rent
	cursor  int
	loading bool
	err     error
	width   int
	height  int
}

type rentsLoadedMsg struct {
	rents []domain.Rent
	err   error
}

func newRentsModel(l ledger) rentsModel {
	return rentsModel{ledger: l, loading: true}
}

func (m rentsModel) load() tea.Cmd {
	l := m.ledger
	from := m.from
	return func() tea.Msg {
		rents, err := l.MyRents(context.Background(), from)
		return rentsLoadedMsg{rents: rents, err: err}
	}
}

func (m rentsModel) Init() tea.Cmd {
	return m.load()
}

func (m rentsModel) Update(msg tea.Msg) (rentsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case rentsLoadedMsg:
		m.loading = false
		m.rents = msg.rents
		m.err = msg.err
		if m.cursor >= len(m.rents) {
			m.cursor = 0
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.rents)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m rentsModel) View() string {
	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render("MY RENTS") + "\n")

	sepW := m.width - 2
	if sepW < 4 {
		sepW = 4
	}
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", sepW)) + "\n")

	if m.loading {
		b.WriteString(" " + dimStyle.Render("loading rents..."))
		return b.String()
	}
	if m.err != nil {
		b.WriteString(" " + errStyle.Render(fmt.Sprintf("error: %v", m.err)))
		return b.String()
	}
	if len(m.rents) == 0 {
		b.WriteString(" " + dimStyle.Render("no stays booked yet — browse rooms (tab 1)"))
		return b.String()
	}

	for i, r := range m.rents {
		cursor := "  "
		style := dimStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			style = normalStyle.Bold(true)
		}
		line := fmt.Sprintf("room %-4d  %s → %s  (%d)", r.RoomID, r.CheckInDate(), r.CheckOutDate(), r.Year)
		b.WriteString(cursor + style.Render(line) + "\n")
	}

	return truncateToHeight(b.String(), m.height)
}
