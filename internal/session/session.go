// Package session keeps the transaction list of each client session in
// memory. A session accepts at most one parse at a time and only replaces
// its list once a parse has fully succeeded.
package session

import (
	"errors"
	"sync"
	"time"

	"casha/finance-advisor/internal/currency"
	"casha/finance-advisor/internal/models"

	"github.com/google/uuid"
)

var (
	// ErrParseInFlight is returned by BeginParse while another parse runs.
	ErrParseInFlight = errors.New("a file is already being processed for this session")
	// ErrNotFound is returned for unknown session ids.
	ErrNotFound = errors.New("session not found")
	// ErrNoParse is returned by Commit and Abort without a matching BeginParse.
	ErrNoParse = errors.New("no parse in progress")
)

// Session holds one client's current transactions.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu           sync.Mutex
	parsing      bool
	transactions []models.Transaction
	currency     currency.Code
	updatedAt    time.Time
}

// Snapshot is a point-in-time copy of a session.
type Snapshot struct {
	ID           string               `json:"id"`
	Transactions []models.Transaction `json:"transactions"`
	Currency     currency.Code        `json:"currency"`
	Parsing      bool                 `json:"parsing"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// BeginParse marks a parse as running.
func (s *Session) BeginParse() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.parsing {
		return ErrParseInFlight
	}
	s.parsing = true
	return nil
}

// Commit replaces the transaction list and ends the running parse.
func (s *Session) Commit(transactions []models.Transaction, code currency.Code) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.parsing {
		return ErrNoParse
	}
	s.transactions = append([]models.Transaction(nil), transactions...)
	s.currency = code
	s.updatedAt = time.Now()
	s.parsing = false
	return nil
}

// Abort ends the running parse and keeps the previous list.
func (s *Session) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.parsing {
		return ErrNoParse
	}
	s.parsing = false
	return nil
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:           s.ID,
		Transactions: append([]models.Transaction{}, s.transactions...),
		Currency:     s.currency,
		Parsing:      s.parsing,
		UpdatedAt:    s.updatedAt,
	}
}

// Store indexes sessions by id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a new session with a random id.
func (st *Store) Create() *Session {
	s := &Session{ID: uuid.NewString(), CreatedAt: time.Now()}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session with id.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete forgets a session. Unknown ids are ignored.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len returns the number of sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
