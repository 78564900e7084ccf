package i

import "github.com/google/uuid"

// SessionAuthenticator issues and checks the tokens that grant access to a session.
type SessionAuthenticator interface {
	Issue(sessionID uuid.UUID) (string, error)
	SessionID(token string) (uuid.UUID, error)
}
