package api

import (
	"context"
	"errors"

	"github.com/rpupo63/signature-homes-backend/gallery"
)

type keyType string

const (
	sessionIDKey    keyType = "sessionID"
	sessionStateKey keyType = "sessionState"
)

// ctxWithSession adds a loaded viewing session to the context
func ctxWithSession(ctx context.Context, id string, state gallery.State) context.Context {
	ctx = context.WithValue(ctx, sessionIDKey, id)
	return context.WithValue(ctx, sessionStateKey, state)
}

// ctxGetSession retrieves the session loaded by the session middleware
func ctxGetSession(ctx context.Context) (string, gallery.State, error) {
	id, ok := ctx.Value(sessionIDKey).(string)
	if !ok {
		return "", gallery.State{}, errors.New("session id not found in context")
	}
	state, ok := ctx.Value(sessionStateKey).(gallery.State)
	if !ok {
		return "", gallery.State{}, errors.New("session state not found in context")
	}
	return id, state, nil
}
