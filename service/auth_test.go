package service

import (
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-explorer/infrastruture/token"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionAuth(t *testing.T) {
	tokenizer := token.NewJwtService("test-secret", "explorer")
	auth := NewSessionAuth(tokenizer, time.Hour)

	t.Run("Issued token names its session", func(t *testing.T) {
		id := uuid.New()
		tok, err := auth.Issue(id)
		require.NoError(t, err)

		got, err := auth.SessionID(tok)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("Token without session claim", func(t *testing.T) {
		tok, err := tokenizer.Generate(map[string]interface{}{"user": "x"}, time.Hour)
		require.NoError(t, err)

		_, err = auth.SessionID(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Malformed session claim", func(t *testing.T) {
		tok, err := tokenizer.Generate(map[string]interface{}{sessionClaim: "not-a-uuid"}, time.Hour)
		require.NoError(t, err)

		_, err = auth.SessionID(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired token", func(t *testing.T) {
		expired := NewSessionAuth(tokenizer, -time.Minute)
		tok, err := expired.Issue(uuid.New())
		require.NoError(t, err)

		_, err = auth.SessionID(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
