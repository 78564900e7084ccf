package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunRecord(t *testing.T) {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	valid := RunConfig{
		SessionID:  uuid.New(),
		Rows:       5,
		Cols:       5,
		Moves:      40,
		Visited:    12,
		StartedAt:  started,
		FinishedAt: started.Add(90 * time.Second),
	}

	t.Run("Valid config", func(t *testing.T) {
		run, err := NewRunRecord(valid)
		require.NoError(t, err)
		assert.Equal(t, valid.SessionID, run.ID)
		assert.Equal(t, 90*time.Second, run.Duration())
	})

	t.Run("Invalid configs", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*RunConfig)
		}{
			{"Missing session", func(c *RunConfig) { c.SessionID = uuid.Nil }},
			{"Zero rows", func(c *RunConfig) { c.Rows = 0 }},
			{"Finished early", func(c *RunConfig) { c.FinishedAt = started.Add(-time.Second) }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				config := valid
				tt.mutate(&config)
				_, err := NewRunRecord(config)
				assert.ErrorIs(t, err, ErrInvalidRun)
			})
		}
	})
}
