package entity

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Cashier is the logged-in backend user operating the terminal.
type Cashier struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
}

// DisplayName is the name printed on receipts.
func (c Cashier) DisplayName() string {
	full := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if full == "" {
		return c.Username
	}
	return full
}

// TerminalSession is one cashier's login on this terminal. It owns the
// checkout for the lifetime of the login.
type TerminalSession struct {
	ID           uuid.UUID
	Cashier      Cashier
	BackendToken string
	CreatedAt    time.Time

	mu       sync.Mutex
	lastSeen time.Time
	checkout *Checkout
}

// NewTerminalSession opens a session with an empty checkout.
func NewTerminalSession(cashier Cashier, backendToken string) *TerminalSession {
	now := time.Now()
	return &TerminalSession{
		ID:           uuid.New(),
		Cashier:      cashier,
		BackendToken: backendToken,
		CreatedAt:    now,
		lastSeen:     now,
		checkout:     NewCheckout(),
	}
}

// Do runs fn with exclusive access to the checkout.
func (s *TerminalSession) Do(fn func(co *Checkout) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return fn(s.checkout)
}

// LastSeen is the last time the checkout was touched.
func (s *TerminalSession) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
