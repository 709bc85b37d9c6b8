package session

import (
	"context"
	"strconv"
	"time"

	"nailstore-client/internal/api"
	"nailstore-client/internal/event"
	"nailstore-client/internal/logger"
	"nailstore-client/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const defaultRefreshInterval = 15 * time.Minute

// TokenSource reads the stored access token for the API client. It reads
// storage directly so the client and the manager share one source of truth.
func TokenSource(store storage.Store) api.TokenSource {
	return func() string {
		v, ok, err := store.Get(KeyAccessToken)
		if err != nil || !ok {
			return ""
		}
		return string(v)
	}
}

// Manager owns the auth lifecycle: login/register/change-password requests,
// the periodic token refresh, and the credential wipe that ends a session.
// Identity changes are broadcast on the bus.
type Manager struct {
	store    storage.Store
	bus      *event.Bus
	client   *api.Client
	interval time.Duration
}

func NewManager(store storage.Store, bus *event.Bus, client *api.Client, interval time.Duration) *Manager {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &Manager{store: store, bus: bus, client: client, interval: interval}
}

func (m *Manager) Login(ctx context.Context, username, password string) error {
	var resp tokenPair
	err := m.client.Post(ctx, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &resp)
	if err != nil {
		return err
	}

	if resp.Username == "" {
		resp.Username = username
	}
	m.persist(resp)

	logger.FromCtx(ctx).Info("logged in",
		zap.String("username", resp.Username),
		zap.String("role", resp.Role),
	)
	return nil
}

func (m *Manager) Register(ctx context.Context, username, email, password string) error {
	var resp tokenPair
	err := m.client.Post(ctx, "/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return err
	}

	if resp.Username == "" {
		resp.Username = username
	}
	m.persist(resp)

	logger.FromCtx(ctx).Info("registered", zap.String("username", resp.Username))
	return nil
}

func (m *Manager) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if !m.Current().LoggedIn() {
		return ErrNotLoggedIn
	}

	var resp tokenPair
	err := m.client.Post(ctx, "/auth/change-password", map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	}, &resp)
	if err != nil {
		return err
	}

	// Some backends rotate the token pair on password change.
	if resp.AccessToken != "" {
		m.set(KeyAccessToken, resp.AccessToken)
		if resp.RefreshToken != "" {
			m.set(KeyRefreshToken, resp.RefreshToken)
		}
	}
	return nil
}

// Logout wipes credentials synchronously and broadcasts the logged-out state.
func (m *Manager) Logout() {
	m.wipe()
	logger.L().Info("logged out")
}

// Run refreshes the token pair once immediately, then on every interval
// tick, until ctx is cancelled. A failed refresh ends the session: all
// credentials are wiped and a logged-out change is broadcast. No retry,
// no backoff; a single failure is terminal.
func (m *Manager) Run(ctx context.Context) {
	m.Refresh(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Refresh(ctx)
		}
	}
}

// Refresh exchanges the stored refresh token for a new pair. It does
// nothing when logged out, and ends the session on any failure.
func (m *Manager) Refresh(ctx context.Context) {
	refreshToken := m.get(KeyRefreshToken)
	if refreshToken == "" {
		return
	}

	var resp tokenPair
	err := m.client.Post(ctx, "/auth/refresh", map[string]string{
		"refreshToken": refreshToken,
	}, &resp)
	if err != nil || resp.AccessToken == "" {
		logger.FromCtx(ctx).Warn("token refresh failed, ending session", zap.Error(err))
		m.wipe()
		return
	}

	m.set(KeyAccessToken, resp.AccessToken)
	if resp.RefreshToken != "" {
		m.set(KeyRefreshToken, resp.RefreshToken)
	}
}

// Current returns a snapshot of the stored identity.
func (m *Manager) Current() Credentials {
	return Credentials{
		Username:     m.get(KeyUsername),
		Role:         m.get(KeyUserRole),
		AccessToken:  m.get(KeyAccessToken),
		RefreshToken: m.get(KeyRefreshToken),
	}
}

// IsAdmin requires both the stored admin role and a well-formed, unexpired
// access token; a role flag without a usable token means unauthenticated.
func (m *Manager) IsAdmin() bool {
	if m.get(KeyUserRole) != RoleAdmin {
		return false
	}

	token := m.get(KeyAccessToken)
	if token == "" {
		return false
	}

	// The backend verifies the signature; here we only need the claims.
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(time.Now()) {
		return false
	}
	return true
}

func (m *Manager) persist(pair tokenPair) {
	m.set(KeyAccessToken, pair.AccessToken)
	m.set(KeyRefreshToken, pair.RefreshToken)
	m.set(KeyUserRole, pair.Role)
	m.set(KeyIsAdmin, strconv.FormatBool(pair.Role == RoleAdmin))
	m.set(KeyUsername, pair.Username)

	m.bus.PublishAuthChange(event.AuthChange{
		Username: pair.Username,
		Role:     pair.Role,
		LoggedIn: true,
	})
}

func (m *Manager) wipe() {
	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyUserRole, KeyIsAdmin, KeyUsername} {
		if err := m.store.Delete(key); err != nil {
			logger.L().Warn("failed clearing credential", zap.String("key", key), zap.Error(err))
		}
	}
	m.bus.PublishAuthChange(event.AuthChange{LoggedIn: false})
}

func (m *Manager) get(key string) string {
	v, ok, err := m.store.Get(key)
	if err != nil {
		logger.L().Warn("failed reading credential", zap.String("key", key), zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	return string(v)
}

func (m *Manager) set(key, value string) {
	if err := m.store.Set(key, []byte(value)); err != nil {
		logger.L().Warn("failed storing credential", zap.String("key", key), zap.Error(err))
	}
}
