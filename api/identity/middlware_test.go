package identity

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAuth struct {
	tokens map[string]uuid.UUID
}

func (f fakeAuth) Issue(id uuid.UUID) (string, error) {
	return id.String(), nil
}

func (f fakeAuth) SessionID(token string) (uuid.UUID, error) {
	id, ok := f.tokens[token]
	if !ok {
		return uuid.Nil, errors.New("bad token")
	}
	return id, nil
}

func TestAuthoriz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := uuid.New()

	router := gin.New()
	router.GET("/", Authoriz(fakeAuth{tokens: map[string]uuid.UUID{"good": id}}), func(c *gin.Context) {
		got, ok := SessionID(c)
		assert.True(t, ok)
		c.String(http.StatusOK, got.String())
	})

	tests := []struct {
		name   string
		target string
		header string
		status int
	}{
		{"Missing header", "/", "", http.StatusUnauthorized},
		{"Not bearer", "/", "Basic good", http.StatusUnauthorized},
		{"No token", "/", "Bearer", http.StatusUnauthorized},
		{"Unknown token", "/", "Bearer bad", http.StatusUnauthorized},
		{"Valid token", "/", "Bearer good", http.StatusOK},
		{"Lowercase scheme", "/", "bearer good", http.StatusOK},
		{"Query token", "/?access_token=good", "", http.StatusOK},
		{"Unknown query token", "/?access_token=bad", "", http.StatusUnauthorized},
		{"Header wins over query", "/?access_token=good", "Bearer bad", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, id.String(), w.Body.String())
			}
		})
	}
}
