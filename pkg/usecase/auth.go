package usecase

import (
	"context"
	"time"

	"github.com/breachalert/breachalert/pkg/domain/interfaces"
	"github.com/breachalert/breachalert/pkg/domain/model"
	"github.com/breachalert/breachalert/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/crypto/bcrypt"
)

const sessionDuration = 24 * time.Hour

// Auth implements AuthUseCase with repository-based storage
type Auth struct {
	repo interfaces.Repository
}

// NewAuth creates a new Auth use case
func NewAuth(repo interfaces.Repository) *Auth {
	return &Auth{
		repo: repo,
	}
}

// Register creates a new user account. The password is stored only as a
// bcrypt hash and is verified on login.
func (a *Auth) Register(ctx context.Context, name string, email types.EmailAddress, password string) (*model.User, error) {
	logger := ctxlog.From(ctx)

	if name == "" {
		return nil, goerr.New("name is required")
	}
	if email.IsEmpty() {
		return nil, goerr.New("email is required")
	}
	if password == "" {
		return nil, goerr.New("password is required")
	}

	if _, err := a.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, goerr.Wrap(model.ErrUserAlreadyExists, "registration rejected",
			goerr.V("email", email.Normalize()))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to hash password")
	}

	user := model.NewUser(name, email, hash)
	if err := a.repo.SaveUser(ctx, user); err != nil {
		return nil, goerr.Wrap(err, "failed to save user")
	}

	logger.Info("Registered new user",
		"userID", user.ID,
		"email", user.Email,
	)

	return user, nil
}

// Login verifies the credentials and creates a 24 hour session. Unknown
// email and wrong password are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, email types.EmailAddress, password string) (*model.User, *model.Session, error) {
	logger := ctxlog.From(ctx)

	if email.IsEmpty() || password == "" {
		return nil, nil, goerr.Wrap(model.ErrInvalidCredentials, "missing credentials")
	}

	user, err := a.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, nil, goerr.Wrap(model.ErrInvalidCredentials, "unknown email",
			goerr.V("email", email.Normalize()))
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, nil, goerr.Wrap(model.ErrInvalidCredentials, "password mismatch",
			goerr.V("email", email.Normalize()))
	}

	session, err := model.NewSession(user.ID, sessionDuration)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create session")
	}

	if err := a.repo.SaveSession(ctx, session); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to save session")
	}

	logger.Info("User logged in",
		"userID", user.ID,
		"sessionID", session.ID,
		"expiresAt", session.ExpiresAt,
	)

	return user, session, nil
}

// ValidateSession validates a session by ID and secret
func (a *Auth) ValidateSession(ctx context.Context, sessionID, sessionSecret string) (*model.Session, error) {
	if sessionID == "" || sessionSecret == "" {
		return nil, goerr.New("session ID and secret are required")
	}

	session, err := a.repo.GetSession(ctx, types.SessionID(sessionID))
	if err != nil {
		return nil, goerr.Wrap(err, "session not found")
	}

	if session.Secret.String() != sessionSecret {
		return nil, goerr.New("invalid session secret")
	}

	if session.IsExpired() {
		return nil, goerr.New("session expired")
	}

	return session, nil
}

// DeleteSession deletes a session
func (a *Auth) DeleteSession(ctx context.Context, sessionID string) error {
	logger := ctxlog.From(ctx)

	if sessionID == "" {
		return goerr.New("session ID is required")
	}

	if err := a.repo.DeleteSession(ctx, types.SessionID(sessionID)); err != nil {
		return goerr.Wrap(err, "failed to delete session")
	}

	logger.Info("Deleted session",
		"sessionID", sessionID,
	)

	return nil
}

// GetUserFromSession gets user information from a session
func (a *Auth) GetUserFromSession(ctx context.Context, sessionID string) (*model.User, error) {
	if sessionID == "" {
		return nil, goerr.New("session ID is required")
	}

	session, err := a.repo.GetSession(ctx, types.SessionID(sessionID))
	if err != nil {
		return nil, goerr.Wrap(err, "session not found")
	}

	if session.IsExpired() {
		return nil, goerr.New("session expired")
	}

	user, err := a.repo.GetUser(ctx, session.UserID)
	if err != nil {
		return nil, goerr.Wrap(err, "user not found")
	}

	return user, nil
}
