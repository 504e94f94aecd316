package domain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// Session is the state created by a successful login: the selected account
// and its last known balance. It is held by the orchestrator and replaced
// wholesale on re-login; there is no partial teardown.
type Session struct {
	ID             uuid.UUID      `json:"id"`
	AccountIndex   int            `json:"account_index"`
	Address        common.Address `json:"address"`
	Balance        *big.Int       `json:"balance"` // wei
	NetworkWarning string         `json:"network_warning,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// NewSession builds a session for the account chosen at login.
func NewSession(index int, addr common.Address) *Session {
	return &Session{
		ID:           uuid.New(),
		AccountIndex: index,
		Address:      addr,
		CreatedAt:    time.Now(),
	}
}

// ShortAddress returns the session address truncated for header display.
func (s *Session) ShortAddress() string {
	return ShortAddress(s.Address, 12)
}

// BalanceEther renders the session balance in ether.
func (s *Session) BalanceEther() string {
	return FormatEther(s.Balance)
}
