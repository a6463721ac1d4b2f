package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type sessionDataKey struct{}

// SessionData is the caller identity resolved from a session token.
// Anonymous requests carry no SessionData at all.
type SessionData struct {
	UserID     uuid.UUID
	Username   string
	University string
}

func WithSessionData(ctx context.Context, sd *SessionData) context.Context {
	return context.WithValue(ctx, sessionDataKey{}, sd)
}

func GetSessionData(ctx context.Context) *SessionData {
	if ctx == nil {
		return nil
	}
	if sd, ok := ctx.Value(sessionDataKey{}).(*SessionData); ok {
		return sd
	}
	return nil
}

// UserID returns the signed-in user id, or uuid.Nil for anonymous callers.
func UserID(ctx context.Context) uuid.UUID {
	if sd := GetSessionData(ctx); sd != nil {
		return sd.UserID
	}
	return uuid.Nil
}

// University returns the signed-in user's affiliation, or "".
func University(ctx context.Context) string {
	if sd := GetSessionData(ctx); sd != nil {
		return sd.University
	}
	return ""
}
