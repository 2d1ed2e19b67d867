package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/storefront/client/internal/api"
	"github.com/storefront/client/internal/domain/identity"
	"github.com/storefront/client/internal/storage"
)

// Auth owns the session lifecycle and, for admins, the user directory.
// Async flows follow idle → pending → fulfilled/rejected: while pending the
// loading flag is set and any previous error cleared; a rejected flow records
// the error message and leaves the previous session untouched.
type Auth struct {
	mu      sync.Mutex
	session identity.Session
	loading bool
	err     string

	users        []identity.User
	usersLoading bool
	usersErr     string

	client  *api.Client
	storage storage.Storage
	logger  *zap.Logger

	sessionSeq sequence
	usersSeq   sequence
}

// NewAuth creates an auth slice hydrated from durable storage. A persisted
// session whose token has expired is dropped rather than restored.
func NewAuth(st storage.Storage, logger *zap.Logger) *Auth {
	a := &Auth{
		storage: st,
		logger:  logger.Named("auth"),
	}

	var session identity.Session
	if hydrate(st, a.logger, storage.KeySession, &session) {
		if session.TokenExpired(time.Now()) {
			a.logger.Info("dropping expired persisted session")
			_ = st.Delete(context.Background(), storage.KeySession)
		} else {
			session.Authenticated = session.Token != ""
			a.session = session
		}
	}

	return a
}

// setClient binds the API client; called by the composed store after the
// client has been constructed with this slice as its token source.
func (a *Auth) setClient(client *api.Client) {
	a.client = client
}

// Login authenticates and, on success, stores and persists the session
func (a *Auth) Login(ctx context.Context, creds api.Credentials) error {
	ticket := a.sessionSeq.next()
	a.setPending()

	resp, err := a.client.Login(ctx, creds)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.loading = false
		a.err = errorMessage(err, "Login failed")
		return err
	}
	// The ticket gates fulfillments only: a rejection is always recorded,
	// but a success that lost the race (or raced a logout) must not
	// resurrect session state.
	if !a.sessionSeq.current(ticket) {
		a.logger.Debug("discarding stale login response")
		return nil
	}
	a.loading = false

	user := resp.User
	a.session = identity.NewSession(&user, resp.Token)
	a.persistLocked()
	return nil
}

// Register creates an account and, on success, stores and persists the session
func (a *Auth) Register(ctx context.Context, reg api.Registration) error {
	ticket := a.sessionSeq.next()
	a.setPending()

	resp, err := a.client.Register(ctx, reg)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.loading = false
		a.err = errorMessage(err, "Registration failed")
		return err
	}
	if !a.sessionSeq.current(ticket) {
		a.logger.Debug("discarding stale register response")
		return nil
	}
	a.loading = false

	user := resp.User
	a.session = identity.NewSession(&user, resp.Token)
	a.persistLocked()
	return nil
}

// FetchProfile refreshes the stored profile. A rejected fetch records the
// error but does not log the user out.
func (a *Auth) FetchProfile(ctx context.Context) error {
	ticket := a.sessionSeq.next()
	a.setPending()

	user, err := a.client.Profile(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.loading = false
		a.err = errorMessage(err, "Failed to get profile")
		return err
	}
	if !a.sessionSeq.current(ticket) {
		a.logger.Debug("discarding stale profile response")
		return nil
	}
	a.loading = false

	a.session.User = user
	a.persistLocked()
	return nil
}

// UpdateProfile submits profile changes and stores the returned profile
func (a *Auth) UpdateProfile(ctx context.Context, user identity.User) error {
	ticket := a.sessionSeq.next()
	a.setPending()

	updated, err := a.client.UpdateProfile(ctx, user)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.loading = false
		a.err = errorMessage(err, "Failed to update profile")
		return err
	}
	if !a.sessionSeq.current(ticket) {
		a.logger.Debug("discarding stale profile update response")
		return nil
	}
	a.loading = false

	a.session.User = updated
	a.persistLocked()
	return nil
}

// Logout clears the session and its durable copy. Synchronous, never calls
// the API; cart and wishlist state are untouched. Also serves as the
// client's central 401 hook.
func (a *Auth) Logout() {
	a.sessionSeq.next() // an in-flight fulfillment must not resurrect the session
	a.mu.Lock()
	defer a.mu.Unlock()

	a.session = identity.Session{}
	a.loading = false
	a.err = ""
	if err := a.storage.Delete(context.Background(), storage.KeySession); err != nil {
		a.logger.Error("failed to clear persisted session", zap.Error(err))
	}
}

// FetchAllUsers loads the user directory (admin)
func (a *Auth) FetchAllUsers(ctx context.Context) error {
	ticket := a.usersSeq.next()
	a.mu.Lock()
	a.usersLoading = true
	a.usersErr = ""
	a.mu.Unlock()

	users, err := a.client.AllUsers(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.usersLoading = false
		a.usersErr = errorMessage(err, "Failed to get users")
		return err
	}
	if !a.usersSeq.current(ticket) {
		a.logger.Debug("discarding stale user directory response")
		return nil
	}
	a.usersLoading = false

	a.users = users
	return nil
}

// UpdateUserRole changes one user's role (admin). On success the directory
// entry is patched in place, preserving order.
func (a *Auth) UpdateUserRole(ctx context.Context, userID string, role identity.Role) error {
	updated, err := a.client.UpdateUserRole(ctx, userID, role)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.usersErr = errorMessage(err, "Failed to update user role")
		return err
	}
	a.patchUserLocked(*updated)
	return nil
}

// ToggleUserStatus flips one user's active flag (admin), patching in place
func (a *Auth) ToggleUserStatus(ctx context.Context, userID string) error {
	updated, err := a.client.ToggleUserStatus(ctx, userID)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.usersErr = errorMessage(err, "Failed to update user status")
		return err
	}
	a.patchUserLocked(*updated)
	return nil
}

// Session returns a copy of the current session
func (a *Auth) Session() identity.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

// IsAuthenticated reports whether a session token is held
func (a *Auth) IsAuthenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Authenticated
}

// Token returns the current bearer token, or empty when anonymous.
// Used as the API client's token source.
func (a *Auth) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Token
}

// Role returns the current session's role, used by route guards
func (a *Auth) Role() identity.Role {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Role()
}

// IsAdmin reports whether the session holds the admin role
func (a *Auth) IsAdmin() bool {
	return a.Role() == identity.RoleAdmin
}

// Loading reports whether a session flow is pending
func (a *Auth) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

// Err returns the last session flow error message
func (a *Auth) Err() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// ClearError discards the last session flow error
func (a *Auth) ClearError() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.err = ""
}

// Users returns a copy of the admin user directory
func (a *Auth) Users() []identity.User {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]identity.User, len(a.users))
	copy(out, a.users)
	return out
}

// UsersLoading reports whether the directory fetch is pending
func (a *Auth) UsersLoading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.usersLoading
}

// UsersErr returns the last directory flow error message
func (a *Auth) UsersErr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.usersErr
}

// setPending marks a session flow as in flight
func (a *Auth) setPending() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = true
	a.err = ""
}

// patchUserLocked updates the directory entry matching the user's ID in
// place. Caller must hold a.mu.
func (a *Auth) patchUserLocked(updated identity.User) {
	for i := range a.users {
		if a.users[i].ID == updated.ID {
			a.users[i] = updated
			return
		}
	}
	a.logger.Warn("patched user not in directory", zap.String("userID", updated.ID))
}

// persistLocked mirrors the session to durable storage. Caller must hold a.mu.
func (a *Auth) persistLocked() {
	persist(a.storage, a.logger, storage.KeySession, a.session)
}
