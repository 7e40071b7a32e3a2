package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/breachalert/breachalert/pkg/domain/model"
	"github.com/breachalert/breachalert/pkg/repository"
	"github.com/breachalert/breachalert/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestAuthRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a user with a hashed password", func(t *testing.T) {
		repo := repository.NewMemory()
		defer repo.Close()
		auth := usecase.NewAuth(repo)

		user, err := auth.Register(ctx, "Alice", "Alice@Example.com", "s3cret-pass")
		gt.NoError(t, err).Required()

		gt.True(t, user.ID != "")
		gt.Equal(t, user.Name, "Alice")
		gt.Equal(t, user.Email.String(), "alice@example.com")
		gt.Equal(t, user.Subscription.Plan, "free")

		// The plaintext password is never stored
		gt.True(t, len(user.PasswordHash) > 0)
		gt.True(t, string(user.PasswordHash) != "s3cret-pass")
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := repository.NewMemory()
		defer repo.Close()
		auth := usecase.NewAuth(repo)

		_, err := auth.Register(ctx, "Alice", "alice@example.com", "pass1")
		gt.NoError(t, err).Required()

		_, err = auth.Register(ctx, "Impostor", "ALICE@example.com", "pass2")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrUserAlreadyExists))
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		repo := repository.NewMemory()
		defer repo.Close()
		auth := usecase.NewAuth(repo)

		_, err := auth.Register(ctx, "", "a@b.com", "pass")
		gt.Error(t, err)

		_, err = auth.Register(ctx, "Alice", "", "pass")
		gt.Error(t, err)

		_, err = auth.Register(ctx, "Alice", "a@b.com", "")
		gt.Error(t, err)
	})
}

func TestAuthLogin(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*usecase.Auth, func()) {
		repo := repository.NewMemory()
		auth := usecase.NewAuth(repo)
		_, err := auth.Register(ctx, "Alice", "alice@example.com", "correct-password")
		gt.NoError(t, err).Required()
		return auth, func() { repo.Close() }
	}

	t.Run("valid credentials create a session", func(t *testing.T) {
		auth, cleanup := setup(t)
		defer cleanup()

		user, session, err := auth.Login(ctx, "Alice@Example.com", "correct-password")
		gt.NoError(t, err).Required()

		gt.Equal(t, user.Email.String(), "alice@example.com")
		gt.True(t, session.ID != "")
		gt.True(t, session.Secret != "")
		gt.Equal(t, session.UserID, user.ID)
		gt.False(t, session.IsExpired())
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		auth, cleanup := setup(t)
		defer cleanup()

		_, _, err := auth.Login(ctx, "alice@example.com", "wrong-password")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrInvalidCredentials))
	})

	t.Run("unknown email gets the same error as a bad password", func(t *testing.T) {
		auth, cleanup := setup(t)
		defer cleanup()

		_, _, err := auth.Login(ctx, "nobody@example.com", "correct-password")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrInvalidCredentials))
	})

	t.Run("missing credentials are rejected", func(t *testing.T) {
		auth, cleanup := setup(t)
		defer cleanup()

		_, _, err := auth.Login(ctx, "", "pass")
		gt.True(t, errors.Is(err, model.ErrInvalidCredentials))

		_, _, err = auth.Login(ctx, "alice@example.com", "")
		gt.True(t, errors.Is(err, model.ErrInvalidCredentials))
	})
}

func TestAuthSessions(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*usecase.Auth, *model.User, *model.Session, func()) {
		repo := repository.NewMemory()
		auth := usecase.NewAuth(repo)
		_, err := auth.Register(ctx, "Alice", "alice@example.com", "pass")
		gt.NoError(t, err).Required()
		user, session, err := auth.Login(ctx, "alice@example.com", "pass")
		gt.NoError(t, err).Required()
		return auth, user, session, func() { repo.Close() }
	}

	t.Run("validate with correct secret", func(t *testing.T) {
		auth, user, session, cleanup := setup(t)
		defer cleanup()

		validated, err := auth.ValidateSession(ctx, session.ID.String(), session.Secret.String())
		gt.NoError(t, err).Required()
		gt.Equal(t, validated.UserID, user.ID)
	})

	t.Run("validate with wrong secret fails", func(t *testing.T) {
		auth, _, session, cleanup := setup(t)
		defer cleanup()

		_, err := auth.ValidateSession(ctx, session.ID.String(), "wrong-secret")
		gt.Error(t, err)
	})

	t.Run("get user from session", func(t *testing.T) {
		auth, user, session, cleanup := setup(t)
		defer cleanup()

		retrieved, err := auth.GetUserFromSession(ctx, session.ID.String())
		gt.NoError(t, err).Required()
		gt.Equal(t, retrieved.ID, user.ID)
	})

	t.Run("deleted session no longer validates", func(t *testing.T) {
		auth, _, session, cleanup := setup(t)
		defer cleanup()

		gt.NoError(t, auth.DeleteSession(ctx, session.ID.String()))

		_, err := auth.ValidateSession(ctx, session.ID.String(), session.Secret.String())
		gt.Error(t, err)
	})
}
