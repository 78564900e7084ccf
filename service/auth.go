package service

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-explorer/service/i"
	"github.com/google/uuid"
)

const sessionClaim = "sid"

var ErrInvalidToken = errors.New("invalid session token")

// SessionAuth hands out session tokens. A token only grants access to the
// session it was issued for.
type SessionAuth struct {
	tokenizer i.Tokenizer
	ttl       time.Duration
}

var _ i.SessionAuthenticator = &SessionAuth{}

func NewSessionAuth(tokenizer i.Tokenizer, ttl time.Duration) *SessionAuth {
	return &SessionAuth{tokenizer: tokenizer, ttl: ttl}
}

func (a *SessionAuth) Issue(sessionID uuid.UUID) (string, error) {
	return a.tokenizer.Generate(map[string]interface{}{
		sessionClaim: sessionID.String(),
	}, a.ttl)
}

func (a *SessionAuth) SessionID(token string) (uuid.UUID, error) {
	claims, err := a.tokenizer.Decode(token)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalidToken, err)
	}

	raw, ok := claims[sessionClaim].(string)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalidToken, err)
	}
	return id, nil
}
