package http

import (
	"context"

	"github.com/breachalert/breachalert/pkg/domain/model"
)

type ctxKey int

const sessionCtxKey ctxKey = iota

// withSession stores the authenticated session in the request context
func withSession(ctx context.Context, session *model.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, session)
}

// sessionFrom retrieves the authenticated session, nil if absent
func sessionFrom(ctx context.Context) *model.Session {
	session, _ := ctx.Value(sessionCtxKey).(*model.Session)
	return session
}
