// Package tui is the interactive terminal client for the RoomShare
// contract. A root model owns the tab chrome and a per-account session;
// each tab is a sub-model with its own Init/Update/View.
package tui

import (
	"context"
	"math/big"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/BecomeWeasel/dapp-project/internal/browser"
	"github.com/BecomeWeasel/dapp-project/pkg/domain"
)

// ledger is the contract surface the TUI consumes.
type ledger interface {
	AllRooms(ctx context.Context, from common.Address) ([]domain.Room, error)
	MyRents(ctx context.Context, from common.Address) ([]domain.Rent, error)
	RoomHistory(ctx context.Context, from common.Address, roomID uint64) ([]domain.Rent, error)
	RecommendDate(ctx context.Context, from common.Address, roomID uint64, checkIn, checkOut int) ([2]int, error)
	ShareRoom(ctx context.Context, opts *bind.TransactOpts, name, location string, price uint64) (common.Hash, error)
	RentRoom(ctx context.Context, opts *bind.TransactOpts, roomID uint64, year, checkIn, checkOut int, totalFinney uint64) (common.Hash, error)
	MarkInactive(ctx context.Context, opts *bind.TransactOpts, roomID uint64) (common.Hash, error)
	ResetBookings(ctx context.Context, opts *bind.TransactOpts, roomID uint64) (common.Hash, error)
}

// signer is the wallet surface the TUI consumes.
type signer interface {
	Login(ctx context.Context, index int, passphrase string) (*domain.Session, error)
	TransactOpts(ctx context.Context, addr common.Address) (*bind.TransactOpts, error)
	Balance(ctx context.Context, addr common.Address) (*big.Int, error)
}

type view int

const (
	viewRooms view = iota
	viewRents
	viewShare
	viewManage
)

// balanceMsg carries a refreshed account balance after a transaction.
type balanceMsg struct {
	balance *big.Int
	err     error
}

// App is the root Bubbletea model.
type App struct {
	ledger   ledger
	wallet   signer
	explorer browser.Explorer

	view    view
	rooms   roomsModel
	rents   rentsModel
	share   shareModel
	manage  manageModel
	login   loginModel
	session *domain.Session

	helpOpen   bool
	helpCursor int
	width      int
	height     int
	frame      int // logo shimmer animation frame
}

// NewApp creates a new TUI application.
func NewApp(l ledger, w signer, explorer browser.Explorer) App {
	return App{
		ledger:   l,
		wallet:   w,
		explorer: explorer,
		rooms:    newRoomsModel(l, w, explorer),
		rents:    newRentsModel(l),
		share:    newShareModel(l, w),
		manage:   newManageModel(l, w),
		login:    newLoginModel(w),
	}
}

func (a App) Init() tea.Cmd {
	return shimmerTickCmd()
}

func (a App) refreshBalance() tea.Cmd {
	w := a.wallet
	addr := a.session.Address
	return func() tea.Msg {
		bal, err := w.Balance(context.Background(), addr)
		return balanceMsg{balance: bal, err: err}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.rooms, _ = a.rooms.Update(bodyMsg)
		a.rents, _ = a.rents.Update(bodyMsg)
		a.share, _ = a.share.Update(bodyMsg)
		a.manage, _ = a.manage.Update(bodyMsg)

	case shimmerTickMsg:
		a.frame++
		a.login.frame = a.frame
		return a, shimmerTickCmd()

	case sessionMsg:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		if msg.err == nil && msg.session != nil {
			a.session = msg.session
			// Propagate identity, then load the default tab.
			a.rooms.from = a.session.Address
			a.rents.from = a.session.Address
			a.share.from = a.session.Address
			a.manage.from = a.session.Address
			return a, tea.Batch(a.rooms.Init(), a.rents.Init())
		}
		return a, cmd

	case balanceMsg:
		if msg.err == nil && a.session != nil {
			a.session.Balance = msg.balance
		}
		return a, nil

	case rentResultMsg:
		var cmd tea.Cmd
		a.rooms, cmd = a.rooms.Update(msg)
		if msg.err == nil {
			return a, tea.Batch(cmd, a.refreshBalance(), a.rents.load())
		}
		return a, cmd

	case shareResultMsg:
		var cmd tea.Cmd
		a.share, cmd = a.share.Update(msg)
		if msg.err == nil {
			return a, tea.Batch(cmd, a.refreshBalance(), a.rooms.load())
		}
		return a, cmd

	case manageResultMsg:
		var cmd tea.Cmd
		a.manage, cmd = a.manage.Update(msg)
		if msg.err == nil {
			return a, tea.Batch(cmd, a.refreshBalance(), a.rooms.load())
		}
		return a, cmd

	case tea.KeyMsg:
		// Login overlay captures all keys until a session exists.
		if a.session == nil {
			if msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
			var cmd tea.Cmd
			a.login, cmd = a.login.Update(msg)
			return a, cmd
		}

		// Help overlay captures all keys when open.
		if a.helpOpen {
			switch msg.String() {
			case "h", "esc":
				a.helpOpen = false
			case "q", "ctrl+c":
				return a, tea.Quit
			case "j", "down":
				if a.helpCursor < len(helpItems)-1 {
					a.helpCursor++
				}
			case "k", "up":
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			case "enter":
				item := helpItems[a.helpCursor]
				if item.url != "" {
					browser.OpenURL(item.url) //nolint:errcheck // best-effort browser open
				}
			}
			return a, nil
		}

		// Global keys (only when not editing)
		if !a.isEditing() {
			switch msg.String() {
			case "h":
				a.helpOpen = true
				a.helpCursor = 0
				return a, nil
			case "q", "ctrl+c":
				return a, tea.Quit
			case "y":
				addr := a.session.Address.Hex()
				return a, func() tea.Msg {
					return copyResultMsg{err: clipboard.WriteAll(addr)}
				}
			case "e":
				a.explorer.OpenAddress(a.session.Address) //nolint:errcheck // best-effort browser open
				return a, nil
			case "1":
				if a.view != viewRooms {
					a.view = viewRooms
					return a, a.rooms.Init()
				}
				return a, nil
			case "2":
				if a.view != viewRents {
					a.view = viewRents
					return a, a.rents.Init()
				}
				return a, nil
			case "3":
				if a.view != viewShare {
					a.view = viewShare
					return a, nil
				}
				return a, nil
			case "4":
				if a.view != viewManage {
					a.view = viewManage
					return a, nil
				}
				return a, nil
			}
		} else if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewRooms:
		a.rooms, cmd = a.rooms.Update(msg)
	case viewRents:
		a.rents, cmd = a.rents.Update(msg)
	case viewShare:
		a.share, cmd = a.share.Update(msg)
	case viewManage:
		a.manage, cmd = a.manage.Update(msg)
	}

	return a, cmd
}

func (a App) isEditing() bool {
	switch a.view {
	case viewRooms:
		return a.rooms.renting
	case viewShare:
		return true
	case viewManage:
		return a.manage.editing
	}
	return false
}

func (a App) View() string {
	// Header: centered shimmer logo
	logo := renderShimmerLogo(a.frame)

	// Session line below logo: address · balance · network warning
	statsLine := ""
	if a.session != nil {
		parts := []string{accentStyle.Render(a.session.ShortAddress())}
		if a.session.Balance != nil {
			parts = append(parts, etherStyle.Render(a.session.BalanceEther()+" ETH"))
		}
		statsLine = metaStyle.Render(strings.Join(parts, " · "))
		if a.session.NetworkWarning != "" {
			statsLine += "  " + warnStyle.Render("⚠ "+a.session.NetworkWarning)
		}
	}

	// Center the logo within terminal width
	logoWidth := lipgloss.Width(logo)
	logoPad := (a.width - logoWidth) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	if statsLine != "" {
		statsWidth := lipgloss.Width(statsLine)
		statsPad := (a.width - statsWidth) / 2
		if statsPad < 0 {
			statsPad = 0
		}
		header += "\n" + strings.Repeat(" ", statsPad) + statsLine
	} else {
		header += "\n"
	}

	// Tab bar: 4 equal-width columns spread across the terminal
	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Rooms", viewRooms},
		{"2", "Rents", viewRents},
		{"3", "Share", viewShare},
		{"4", "Manage", viewManage},
	}

	colWidth := a.width / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}
	centeredTabs := tabBar.String()

	// Body
	var body string
	var help string
	switch a.view {
	case viewRooms:
		body = a.rooms.View()
		if a.rooms.renting {
			help = " " + helpEntry("tab", "next field") + "  " + helpEntry("enter", "book") + "  " + helpEntry("esc", "cancel")
		} else {
			help = " " + helpEntry("1-4", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "rent") + "  " + helpEntry("v", "history") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("o", "explorer") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
		}
	case viewRents:
		body = a.rents.View()
		help = " " + helpEntry("1-4", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	case viewShare:
		body = a.share.View()
		help = " " + helpEntry("tab", "next field") + "  " + helpEntry("ctrl+s", "share") + "  " + helpEntry("1-4", "tabs")
	case viewManage:
		body = a.manage.View()
		if a.manage.editing {
			help = " " + helpEntry("enter", "select room") + "  " + helpEntry("esc", "cancel")
		} else {
			help = " " + helpEntry("1-4", "tabs") + "  " + helpEntry("i", "room id") + "  " + helpEntry("d", "deactivate") + "  " + helpEntry("x", "reset bookings") + "  " + helpEntry("q", "quit")
		}
	}

	// Login overlay
	if a.session == nil {
		body = a.login.View()
		help = " " + helpEntry("tab", "next field") + "  " + helpEntry("enter", "unlock") + "  " + helpEntry("ctrl+c", "quit")
	}

	// Help overlay
	if a.helpOpen {
		body = helpView(a.helpCursor)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	}

	// Chrome budget: header(2) + tabs(1) + help(1) = 4 lines + body
	chrome := 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return header + "\n" + centeredTabs + "\n" + body + "\n" + help
}
