package accounts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mvx-app/mvx/internal/models"
	"github.com/mvx-app/mvx/internal/shared"
	"github.com/mvx-app/mvx/internal/store"
)

// Manager owns the current user session and the persisted user registry.
type Manager struct {
	store   store.Store
	logger  *log.Logger
	current *models.User
	hooks   []func(*models.User)
}

// NewManager creates a Manager and rehydrates the current identity from the
// store, so favorites operations see the logged-in user across restarts.
func NewManager(s store.Store, logger *log.Logger) (*Manager, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	m := &Manager{store: s, logger: logger}

	raw, ok, err := s.Get(store.KeyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("failed to load current identity: %w", err)
	}
	if ok {
		var user models.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			// A corrupt identity record is treated as logged out rather than fatal.
			logger.Warn("discarding unreadable identity record", "error", err)
		} else {
			m.current = &user
		}
	}

	return m, nil
}

// OnIdentityChange registers a hook invoked with the new identity after every
// login, register, and logout (nil on logout). The favorites ledger uses this
// to load and clear its in-memory set.
func (m *Manager) OnIdentityChange(hook func(*models.User)) {
	m.hooks = append(m.hooks, hook)
}

// Current returns the logged-in identity, or nil when logged out.
func (m *Manager) Current() *models.User {
	return m.current
}

// Register creates a registry entry for a new account and logs it in.
// Email uniqueness is enforced with a case-sensitive exact match.
func (m *Manager) Register(name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email, and password are required", shared.ErrInvalidInput)
	}

	registry, err := m.loadRegistry()
	if err != nil {
		return nil, err
	}

	for _, account := range registry {
		if account.Email == email {
			return nil, shared.ErrDuplicateEmail
		}
	}

	account := models.Account{
		User: models.User{
			ID:    shared.GenerateID(),
			Name:  name,
			Email: email,
		},
		Password: password,
	}

	registry = append(registry, account)
	if err := m.saveRegistry(registry); err != nil {
		return nil, err
	}

	m.logger.Info("registered new account", "email", email)
	return m.establish(account.User)
}

// Login establishes the matching registry entry's public fields as the
// current identity. Both email and password must match exactly.
func (m *Manager) Login(email, password string) (*models.User, error) {
	registry, err := m.loadRegistry()
	if err != nil {
		return nil, err
	}

	for _, account := range registry {
		if account.Email == email && account.Password == password {
			m.logger.Info("login", "email", email)
			return m.establish(account.User)
		}
	}

	return nil, shared.ErrInvalidCredentials
}

// Logout clears the current identity. The registry and any persisted
// favorites stay on disk; only in-memory session state is dropped.
func (m *Manager) Logout() error {
	if m.current == nil {
		return nil
	}

	m.logger.Info("logout", "email", m.current.Email)
	m.current = nil

	if err := m.store.Remove(store.KeyCurrentUser); err != nil {
		return fmt.Errorf("failed to clear persisted identity: %w", err)
	}

	m.notify()
	return nil
}

// establish records user as the current identity and persists it.
func (m *Manager) establish(user models.User) (*models.User, error) {
	raw, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to encode identity: %w", err)
	}
	if err := m.store.Set(store.KeyCurrentUser, string(raw)); err != nil {
		return nil, fmt.Errorf("failed to persist identity: %w", err)
	}

	m.current = &user
	m.notify()
	return m.current, nil
}

func (m *Manager) notify() {
	for _, hook := range m.hooks {
		hook(m.current)
	}
}

// loadRegistry reads the persisted registry; an absent key is an empty registry.
func (m *Manager) loadRegistry() ([]models.Account, error) {
	raw, ok, err := m.store.Get(store.KeyRegistry)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var registry []models.Account
	if err := json.Unmarshal([]byte(raw), &registry); err != nil {
		return nil, fmt.Errorf("failed to decode registry: %w", err)
	}
	return registry, nil
}

func (m *Manager) saveRegistry(registry []models.Account) error {
	raw, err := json.Marshal(registry)
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}
	if err := m.store.Set(store.KeyRegistry, string(raw)); err != nil {
		return fmt.Errorf("failed to persist registry: %w", err)
	}
	return nil
}
