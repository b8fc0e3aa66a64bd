package auth

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"techquiz-core/models"
)

var (
	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"status"},
	)

	registrationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_registration_attempts_total",
			Help: "Total number of registration attempts",
		},
		[]string{"status"},
	)

	loginDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_login_duration_seconds",
			Help:    "Time spent processing login requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	logoutAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_logout_attempts_total",
			Help: "Total number of logout attempts",
		},
	)
)

// ErrLoginInFlight is returned when a second authentication request is
// issued while one is outstanding.
var ErrLoginInFlight = errors.New("authentication already in flight")

type State string

const (
	StateIdle           State = "idle"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
	StateFailed         State = "failed"
)

// Backend is the slice of the gateway the Manager needs.
type Backend interface {
	Login(ctx context.Context, payload *models.LoginPayload) (string, error)
	Register(ctx context.Context, payload *models.RegisterPayload) error
}

// Manager owns credential submission and the session token lifecycle. At
// most one authentication request is in flight at a time; a second call is
// rejected client-side so the form cannot double-submit.
type Manager struct {
	mu      sync.Mutex
	state   State
	session *Session
	backend Backend
	lastErr string
}

func NewManager(session *Session, backend Backend) *Manager {
	return &Manager{
		state:   StateIdle,
		session: session,
		backend: backend,
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LastError returns the user-facing message from the most recent failed
// authentication, cleared on the next success.
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *Manager) Session() *Session {
	return m.session
}

// Login submits validated credentials. On success the session token is
// stored and the manager becomes authenticated; on failure the error is
// surfaced and the manager returns to idle without retrying.
func (m *Manager) Login(ctx context.Context, payload *models.LoginPayload) error {
	if err := m.begin(); err != nil {
		return err
	}

	timer := prometheus.NewTimer(loginDuration)
	token, err := m.backend.Login(ctx, payload)
	timer.ObserveDuration()

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		loginAttempts.WithLabelValues("failure").Inc()
		m.state = StateFailed
		m.lastErr = err.Error()
		return err
	}

	loginAttempts.WithLabelValues("success").Inc()
	m.session.setToken(token)
	m.state = StateAuthenticated
	m.lastErr = ""
	return nil
}

// Register creates an account and records the registered email so the
// login form can prefill it.
func (m *Manager) Register(ctx context.Context, payload *models.RegisterPayload) error {
	if err := m.begin(); err != nil {
		return err
	}

	err := m.backend.Register(ctx, payload)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		registrationAttempts.WithLabelValues("failure").Inc()
		m.state = StateFailed
		m.lastErr = err.Error()
		return err
	}

	registrationAttempts.WithLabelValues("success").Inc()
	m.session.setLastRegistered(payload.Email)
	m.state = StateIdle
	m.lastErr = ""
	return nil
}

// ResetRegistered clears the prefill hint. Called when the user toggles
// between the login and registration forms.
func (m *Manager) ResetRegistered() {
	m.session.setLastRegistered("")
}

// Logout clears the session token. Idempotent.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.Active() {
		logoutAttempts.Inc()
	}
	m.session.clearToken()
	m.state = StateIdle
	m.lastErr = ""
}

// begin claims the single authentication slot. Failed is retryable, so any
// state other than authenticating may start a new request.
func (m *Manager) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateAuthenticating {
		log.Printf("Rejected duplicate authentication request")
		return ErrLoginInFlight
	}
	m.state = StateAuthenticating
	return nil
}
