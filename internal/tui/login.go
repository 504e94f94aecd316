package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BecomeWeasel/dapp-project/pkg/domain"
)

type loginField int

const (
	fieldAccountIndex loginField = iota
	fieldPassphrase
	numLoginFields
)

// sessionMsg carries the outcome of a login attempt.
type sessionMsg struct {
	session *domain.Session
	err     error
}

type loginModel struct {
	wallet     signer
	fields     [numLoginFields]string
	focus      loginField
	submitting bool
	statusMsg  string
	frame      int
}

func newLoginModel(w signer) loginModel {
	m := loginModel{wallet: w}
	m.fields[fieldAccountIndex] = "0"
	return m
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionMsg:
		m.submitting = false
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("login failed: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		m.statusMsg = ""
		switch msg.String() {
		case "enter":
			if m.focus == fieldAccountIndex {
				m.focus = fieldPassphrase
				return m, nil
			}
			return m.submit()
		case "tab", "down":
			m.focus = (m.focus + 1) % numLoginFields
		case "shift+tab", "up":
			m.focus = (m.focus - 1 + numLoginFields) % numLoginFields
		default:
			f := &m.fields[m.focus]
			if m.focus == fieldAccountIndex {
				*f = editDigits(*f, msg.String())
			} else {
				*f = editRune(*f, msg.String())
			}
		}
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	index, err := strconv.Atoi(m.fields[fieldAccountIndex])
	if err != nil {
		m.statusMsg = "account index must be a number"
		return m, nil
	}
	passphrase := m.fields[fieldPassphrase]

	m.submitting = true
	w := m.wallet
	return m, func() tea.Msg {
		sess, err := w.Login(context.Background(), index, passphrase)
		return sessionMsg{session: sess, err: err}
	}
}

func (m loginModel) View() string {
	var b strings.Builder

	b.WriteString("\n " + sectionHeaderStyle.Render("UNLOCK WALLET") + "\n\n")

	labels := [numLoginFields]string{"account index", "passphrase"}
	for i := loginField(0); i < numLoginFields; i++ {
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = ">"
			style = selectedStyle
		}

		value := m.fields[i]
		if i == fieldPassphrase {
			value = strings.Repeat("*", len(value))
		}
		if i == m.focus {
			value += "█"
		}
		fmt.Fprintf(&b, " %s %s: %s\n", cursor, style.Render(fmt.Sprintf("%-13s", labels[i])), inputStyle.Render(value))
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("unlocking..."))
	} else if m.statusMsg != "" {
		b.WriteString(" " + errStyle.Render(m.statusMsg))
	} else {
		b.WriteString(" " + dimStyle.Render("keys never leave the local keystore"))
	}

	return b.String()
}
