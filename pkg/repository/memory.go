package repository

import (
	"context"
	"sync"

	"github.com/breachalert/breachalert/pkg/domain/interfaces"
	"github.com/breachalert/breachalert/pkg/domain/model"
	"github.com/breachalert/breachalert/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Memory implements Repository interface with in-memory storage. All data
// is lost on shutdown. A single RWMutex guards every map; mutations are
// last-writer-wins.
type Memory struct {
	mu           sync.RWMutex
	users        map[types.UserID]*model.User
	usersByEmail map[types.EmailAddress]types.UserID
	sessions     map[types.SessionID]*model.Session
	monitored    map[types.EmailAddress]*model.MonitoredEmail
	emailOrder   []types.EmailAddress
	scans        map[types.EmailAddress]*model.ScanResult
}

// NewMemory creates a new memory repository
func NewMemory() interfaces.Repository {
	return &Memory{
		users:        make(map[types.UserID]*model.User),
		usersByEmail: make(map[types.EmailAddress]types.UserID),
		sessions:     make(map[types.SessionID]*model.Session),
		monitored:    make(map[types.EmailAddress]*model.MonitoredEmail),
		scans:        make(map[types.EmailAddress]*model.ScanResult),
	}
}

// SaveUser saves a user. Fails if another user already holds the email.
func (m *Memory) SaveUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return goerr.New("user is nil")
	}
	if user.ID == "" {
		return goerr.New("user ID is empty")
	}

	email := user.Email.Normalize()

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.usersByEmail[email]; ok && existing != user.ID {
		return goerr.Wrap(model.ErrUserAlreadyExists, "email is taken",
			goerr.V("email", email))
	}

	userCopy := *user
	m.users[user.ID] = &userCopy
	m.usersByEmail[email] = user.ID

	return nil
}

// GetUser retrieves a user by ID
func (m *Memory) GetUser(ctx context.Context, id types.UserID) (*model.User, error) {
	if id == "" {
		return nil, goerr.New("user ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, goerr.New("user not found", goerr.V("userID", id))
	}

	// Return a copy to prevent external modification
	userCopy := *user
	return &userCopy, nil
}

// GetUserByEmail retrieves a user by normalized email address
func (m *Memory) GetUserByEmail(ctx context.Context, email types.EmailAddress) (*model.User, error) {
	if email.IsEmpty() {
		return nil, goerr.New("email is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	id, exists := m.usersByEmail[email.Normalize()]
	if !exists {
		return nil, goerr.New("user not found", goerr.V("email", email.Normalize()))
	}

	userCopy := *m.users[id]
	return &userCopy, nil
}

// SaveSession saves a session
func (m *Memory) SaveSession(ctx context.Context, session *model.Session) error {
	if session == nil {
		return goerr.New("session is nil")
	}
	if session.ID == "" {
		return goerr.New("session ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sessionCopy := *session
	m.sessions[session.ID] = &sessionCopy

	return nil
}

// GetSession retrieves a session by ID
func (m *Memory) GetSession(ctx context.Context, id types.SessionID) (*model.Session, error) {
	if id == "" {
		return nil, goerr.New("session ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrSessionNotFound, "no such session",
			goerr.V("sessionID", id))
	}

	sessionCopy := *session
	return &sessionCopy, nil
}

// DeleteSession deletes a session
func (m *Memory) DeleteSession(ctx context.Context, id types.SessionID) error {
	if id == "" {
		return goerr.New("session ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; !exists {
		return goerr.Wrap(model.ErrSessionNotFound, "no such session",
			goerr.V("sessionID", id))
	}

	delete(m.sessions, id)
	return nil
}

// AddMonitoredEmail inserts a monitored email with neutral defaults.
// Duplicate detection is case-insensitive on the normalized address.
func (m *Memory) AddMonitoredEmail(ctx context.Context, email types.EmailAddress) (*model.MonitoredEmail, error) {
	if email.IsEmpty() {
		return nil, goerr.New("email is empty")
	}

	normalized := email.Normalize()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.monitored[normalized]; exists {
		return nil, goerr.Wrap(model.ErrEmailAlreadyMonitored, "duplicate email",
			goerr.V("email", normalized))
	}

	record := model.NewMonitoredEmail(normalized)
	m.monitored[normalized] = record
	m.emailOrder = append(m.emailOrder, normalized)

	recordCopy := *record
	return &recordCopy, nil
}

// GetMonitoredEmail retrieves a single monitored email record
func (m *Memory) GetMonitoredEmail(ctx context.Context, email types.EmailAddress) (*model.MonitoredEmail, error) {
	if email.IsEmpty() {
		return nil, goerr.New("email is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	record, exists := m.monitored[email.Normalize()]
	if !exists {
		return nil, goerr.Wrap(model.ErrEmailNotFound, "email is not monitored",
			goerr.V("email", email.Normalize()))
	}

	recordCopy := *record
	return &recordCopy, nil
}

// RemoveMonitoredEmail deletes a monitored email and its scan history
func (m *Memory) RemoveMonitoredEmail(ctx context.Context, email types.EmailAddress) error {
	if email.IsEmpty() {
		return goerr.New("email is empty")
	}

	normalized := email.Normalize()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.monitored[normalized]; !exists {
		return goerr.Wrap(model.ErrEmailNotFound, "email is not monitored",
			goerr.V("email", normalized))
	}

	delete(m.monitored, normalized)
	delete(m.scans, normalized)
	for i, e := range m.emailOrder {
		if e == normalized {
			m.emailOrder = append(m.emailOrder[:i], m.emailOrder[i+1:]...)
			break
		}
	}

	return nil
}

// ListMonitoredEmails returns all records in insertion order
func (m *Memory) ListMonitoredEmails(ctx context.Context) ([]*model.MonitoredEmail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*model.MonitoredEmail, 0, len(m.emailOrder))
	for _, email := range m.emailOrder {
		recordCopy := *m.monitored[email]
		records = append(records, &recordCopy)
	}

	return records, nil
}

// RecordScanResult overwrites the scan-derived fields of a monitored email.
// Unknown emails are registered implicitly (upsert policy): results must
// never be dropped just because the address was added through another path.
func (m *Memory) RecordScanResult(ctx context.Context, email types.EmailAddress, result *model.ScanResult) (*model.MonitoredEmail, error) {
	if email.IsEmpty() {
		return nil, goerr.New("email is empty")
	}
	if result == nil {
		return nil, goerr.New("scan result is nil")
	}

	normalized := email.Normalize()

	m.mu.Lock()
	defer m.mu.Unlock()

	record, exists := m.monitored[normalized]
	if !exists {
		record = model.NewMonitoredEmail(normalized)
		m.monitored[normalized] = record
		m.emailOrder = append(m.emailOrder, normalized)
	}

	record.ApplyScan(result)

	recordCopy := *record
	return &recordCopy, nil
}

// SaveScanResult stores the latest scan result for an email
func (m *Memory) SaveScanResult(ctx context.Context, result *model.ScanResult) error {
	if result == nil {
		return goerr.New("scan result is nil")
	}
	if result.Email.IsEmpty() {
		return goerr.New("scan result email is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	resultCopy := *result
	m.scans[result.Email.Normalize()] = &resultCopy

	return nil
}

// GetLatestScanResult retrieves the most recent scan result for an email
func (m *Memory) GetLatestScanResult(ctx context.Context, email types.EmailAddress) (*model.ScanResult, error) {
	if email.IsEmpty() {
		return nil, goerr.New("email is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	result, exists := m.scans[email.Normalize()]
	if !exists {
		return nil, goerr.Wrap(model.ErrEmailNotFound, "no scan result",
			goerr.V("email", email.Normalize()))
	}

	resultCopy := *result
	return &resultCopy, nil
}

// Close closes the repository (no-op for memory)
func (m *Memory) Close() error {
	return nil
}
