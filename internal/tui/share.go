package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ethereum/go-ethereum/common"

	"github.com/BecomeWeasel/dapp-project/pkg/domain"
)

type shareField int

const (
	fieldName shareField = iota
	fieldLocation
	fieldPrice
	numShareFields
)

type shareModel struct {
	ledger ledger
	wallet signer
	from   common.Address

	fields     [numShareFields]string
	focus      shareField
	submitting bool
	statusMsg  string
	lastErr    error
	width      int
	height     int
}

type shareResultMsg struct {
	hash common.Hash
	err  error
}

func newShareModel(l ledger, w signer) shareModel {
	return shareModel{ledger: l, wallet: w}
}

func (m shareModel) Init() tea.Cmd {
	return nil
}

func (m shareModel) Update(msg tea.Msg) (shareModel, tea.Cmd) {
	switch msg := msg.(type) {
	case shareResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.lastErr = msg.err
			m.statusMsg = fmt.Sprintf("listing failed: %v", msg.err)
		} else {
			m.statusMsg = "room shared! tx " + truncStr(msg.hash.Hex(), 14)
			m.fields = [numShareFields]string{}
			m.focus = fieldName
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m shareModel) updateKeys(msg tea.KeyMsg) (shareModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.statusMsg = ""
	m.lastErr = nil

	switch msg.String() {
	case "ctrl+s":
		return m.submit()
	case "tab", "down", "enter":
		m.focus = (m.focus + 1) % numShareFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numShareFields) % numShareFields
	default:
		f := &m.fields[m.focus]
		if m.focus == fieldPrice {
			*f = editDigits(*f, msg.String())
		} else {
			*f = editRune(*f, msg.String())
		}
	}
	return m, nil
}

func (m shareModel) submit() (shareModel, tea.Cmd) {
	name := strings.TrimSpace(m.fields[fieldName])
	location := strings.TrimSpace(m.fields[fieldLocation])
	price, err := parseUint(m.fields[fieldPrice])

	if name == "" {
		m.statusMsg = "name is required"
		return m, nil
	}
	if location == "" {
		m.statusMsg = "location is required"
		return m, nil
	}
	if err != nil || price == 0 {
		m.statusMsg = "price must be a positive number of finney"
		return m, nil
	}

	m.submitting = true
	l := m.ledger
	w := m.wallet
	from := m.from
	return m, func() tea.Msg {
		opts, err := w.TransactOpts(context.Background(), from)
		if err != nil {
			return shareResultMsg{err: err}
		}
		hash, err := l.ShareRoom(context.Background(), opts, name, location, price)
		return shareResultMsg{hash: hash, err: err}
	}
}

func (m shareModel) View() string {
	var b strings.Builder

	b.WriteString(" " + sectionHeaderStyle.Render("SHARE A ROOM") + "\n\n")

	labels := [numShareFields]string{"name", "location", "price"}
	for i := shareField(0); i < numShareFields; i++ {
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = ">"
			style = selectedStyle
		}

		value := m.fields[i]
		if i == m.focus {
			value += "█"
		}
		if i == fieldPrice {
			fmt.Fprintf(&b, " %s %s: %s %s\n", cursor, style.Render(fmt.Sprintf("%-9s", labels[i])),
				inputStyle.Render(value), dimStyle.Render("finney/day"))
		} else {
			fmt.Fprintf(&b, " %s %s: %s\n", cursor, style.Render(fmt.Sprintf("%-9s", labels[i])),
				inputStyle.Render(value))
		}
	}

	// Live conversion hint under the price field
	if price, err := parseUint(m.fields[fieldPrice]); err == nil && price > 0 {
		b.WriteString("\n " + krwStyle.Render(fmt.Sprintf("≈ %s per day", domain.FormatKRW(domain.ToKRW(price)))) + "\n")
	} else {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("submitting listing..."))
	} else if m.statusMsg != "" {
		if m.lastErr != nil {
			b.WriteString(" " + errStyle.Render(m.statusMsg))
		} else {
			b.WriteString(" " + okStyle.Render(m.statusMsg))
		}
	}

	return truncateToHeight(b.String(), m.height)
}
